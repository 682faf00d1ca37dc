// Package model derives the star schema from the clean partition: a
// deduplicated, surrogate-keyed product dimension and a fact table
// referencing it.
package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/salesmart/internal/sales"
	"github.com/shopspring/decimal"
)

// Build maps clean records to a StarSchema. It is a pure function of its
// input.
//
// Surrogate keys are assigned from an explicit counter in first-occurrence
// order, starting at 1. When the same product name appears with a different
// category or price in later rows, the first occurrence wins: later rows
// still map to the first-seen product_id and the dimension keeps the
// first-seen attributes.
//
// Build expects records that passed validation. A record whose numeric
// fields do not parse, or a product lookup that cannot be resolved,
// indicates a bug upstream and is returned as an error rather than dropped.
func Build(clean []sales.RawRecord) (*sales.StarSchema, error) {
	schema := &sales.StarSchema{
		Products: make([]sales.ProductDimension, 0),
		Facts:    make([]sales.SalesFact, 0, len(clean)),
	}

	productIDs := make(map[string]int)
	nextID := 1

	for _, r := range clean {
		if _, seen := productIDs[r.Product]; seen {
			continue
		}
		price, err := decimal.NewFromString(strings.TrimSpace(r.Price))
		if err != nil {
			return nil, fmt.Errorf("invariant violation: unvalidated price %q for order %s: %w", r.Price, r.OrderID, err)
		}
		productIDs[r.Product] = nextID
		schema.Products = append(schema.Products, sales.ProductDimension{
			ProductID: nextID,
			Product:   r.Product,
			Category:  r.Category,
			Price:     price,
		})
		nextID++
	}

	for _, r := range clean {
		productID, ok := productIDs[r.Product]
		if !ok {
			return nil, fmt.Errorf("invariant violation: product %q has no dimension row", r.Product)
		}

		quantity, err := strconv.Atoi(strings.TrimSpace(r.Quantity))
		if err != nil {
			return nil, fmt.Errorf("invariant violation: unvalidated quantity %q for order %s: %w", r.Quantity, r.OrderID, err)
		}
		total, err := decimal.NewFromString(strings.TrimSpace(r.TotalAmount))
		if err != nil {
			return nil, fmt.Errorf("invariant violation: unvalidated total_amount %q for order %s: %w", r.TotalAmount, r.OrderID, err)
		}

		schema.Facts = append(schema.Facts, sales.SalesFact{
			OrderID:         r.OrderID,
			TransactionDate: r.TransactionDate,
			CustomerName:    r.CustomerName,
			ProductID:       productID,
			Quantity:        quantity,
			TotalAmount:     total,
		})
	}

	return schema, nil
}
