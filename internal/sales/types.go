// Package sales defines the row kinds that flow through the pipeline:
// the untrusted raw feed record, the star-schema tables derived from it,
// and the shape of the revenue report read back out of the warehouse.
package sales

import "github.com/shopspring/decimal"

// RawColumns is the column contract of the raw sales feed, in file order.
// The extractor requires every column to be present; the quarantine sink
// writes rows back out in this order.
var RawColumns = []string{
	"order_id",
	"transaction_date",
	"customer_name",
	"product",
	"category",
	"price",
	"quantity",
	"total_amount",
}

// RawRecord is one row of the raw sales feed. All fields are kept as the
// strings read from the file: the feed is untrusted input, and numeric
// parsing is a validation concern, not an extraction concern. A malformed
// value must route the row to quarantine instead of failing the run.
type RawRecord struct {
	OrderID         string
	TransactionDate string
	CustomerName    string
	Product         string
	Category        string
	Price           string
	Quantity        string
	TotalAmount     string
}

// Fields returns the record's values in RawColumns order.
func (r RawRecord) Fields() []string {
	return []string{
		r.OrderID,
		r.TransactionDate,
		r.CustomerName,
		r.Product,
		r.Category,
		r.Price,
		r.Quantity,
		r.TotalAmount,
	}
}

// ProductDimension is one row of dim_product. ProductID is a surrogate key
// assigned in first-occurrence order within a single run; it carries no
// business meaning and is not stable across runs.
type ProductDimension struct {
	ProductID int
	Product   string
	Category  string
	Price     decimal.Decimal
}

// SalesFact is one row of fact_sales. ProductID references a
// ProductDimension row produced in the same run.
type SalesFact struct {
	OrderID         string
	TransactionDate string
	CustomerName    string
	ProductID       int
	Quantity        int
	TotalAmount     decimal.Decimal
}

// StarSchema holds the modeled tables for one run. The warehouse writer
// persists both tables as a single atomic unit.
type StarSchema struct {
	Products []ProductDimension
	Facts    []SalesFact
}

// CategoryRevenue is one row of the revenue-by-category report.
type CategoryRevenue struct {
	Category     string
	TotalRevenue decimal.Decimal
}
