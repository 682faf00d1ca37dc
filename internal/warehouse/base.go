package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/salesmart/internal/sales"
)

// Statements shared by all SQL backends. The column types are restricted to
// ones every supported backend accepts verbatim.
const (
	dropFactSQL = "DROP TABLE IF EXISTS fact_sales"
	dropDimSQL  = "DROP TABLE IF EXISTS dim_product"

	createDimSQL = `CREATE TABLE dim_product (
	product_id INTEGER NOT NULL,
	product TEXT NOT NULL,
	category TEXT NOT NULL,
	price DOUBLE PRECISION NOT NULL
)`

	createFactSQL = `CREATE TABLE fact_sales (
	order_id TEXT NOT NULL,
	transaction_date TEXT NOT NULL,
	customer_name TEXT NOT NULL,
	product_id INTEGER NOT NULL,
	quantity INTEGER NOT NULL,
	total_amount DOUBLE PRECISION NOT NULL
)`

	categoryRevenueSQL = `SELECT p.category, SUM(f.total_amount) AS total_revenue
FROM fact_sales f
JOIN dim_product p ON f.product_id = p.product_id
GROUP BY p.category
ORDER BY total_revenue DESC`
)

// BaseSQLAdapter provides the database/sql implementation of the warehouse
// writes shared by all backends. Embed it in concrete adapters; the only
// backend-specific parts are Connect and, for postgres, the placeholder
// style.
type BaseSQLAdapter struct {
	DB     *sql.DB
	Cfg    Config
	Logger *slog.Logger

	// Placeholder formats the n-th (1-based) statement parameter.
	// Nil means the "?" style.
	Placeholder func(n int) string
}

// Close closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB != nil {
		if b.Logger != nil {
			b.Logger.Debug("closing warehouse connection")
		}
		return b.DB.Close()
	}
	return nil
}

// ReplaceStarSchema drops and recreates dim_product and fact_sales inside a
// single transaction and inserts the run's rows. The dimension is written
// before the facts so the foreign keys always resolve.
func (b *BaseSQLAdapter) ReplaceStarSchema(ctx context.Context, schema *sales.StarSchema) error {
	if b.DB == nil {
		return fmt.Errorf("warehouse connection not established")
	}

	tx, err := b.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{dropFactSQL, dropDimSQL, createDimSQL, createFactSQL} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to prepare tables: %w", err)
		}
	}

	insertDim := fmt.Sprintf(
		"INSERT INTO dim_product (product_id, product, category, price) VALUES (%s)",
		b.placeholders(4),
	)
	dimStmt, err := tx.PrepareContext(ctx, insertDim)
	if err != nil {
		return fmt.Errorf("failed to prepare dimension insert: %w", err)
	}
	defer func() { _ = dimStmt.Close() }()

	for _, p := range schema.Products {
		if _, err := dimStmt.ExecContext(ctx, p.ProductID, p.Product, p.Category, p.Price.InexactFloat64()); err != nil {
			return fmt.Errorf("failed to insert dimension row %d: %w", p.ProductID, err)
		}
	}

	insertFact := fmt.Sprintf(
		"INSERT INTO fact_sales (order_id, transaction_date, customer_name, product_id, quantity, total_amount) VALUES (%s)",
		b.placeholders(6),
	)
	factStmt, err := tx.PrepareContext(ctx, insertFact)
	if err != nil {
		return fmt.Errorf("failed to prepare fact insert: %w", err)
	}
	defer func() { _ = factStmt.Close() }()

	for _, f := range schema.Facts {
		if _, err := factStmt.ExecContext(ctx,
			f.OrderID, f.TransactionDate, f.CustomerName, f.ProductID, f.Quantity, f.TotalAmount.InexactFloat64(),
		); err != nil {
			return fmt.Errorf("failed to insert fact row for order %s: %w", f.OrderID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit warehouse load: %w", err)
	}

	if b.Logger != nil {
		b.Logger.Debug("warehouse tables replaced",
			"dim_product", len(schema.Products), "fact_sales", len(schema.Facts))
	}

	return nil
}

// CategoryRevenue runs the revenue-by-category report query.
func (b *BaseSQLAdapter) CategoryRevenue(ctx context.Context) ([]sales.CategoryRevenue, error) {
	if b.DB == nil {
		return nil, fmt.Errorf("warehouse connection not established")
	}

	rows, err := b.DB.QueryContext(ctx, categoryRevenueSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query category revenue: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var report []sales.CategoryRevenue
	for rows.Next() {
		var r sales.CategoryRevenue
		if err := rows.Scan(&r.Category, &r.TotalRevenue); err != nil {
			return nil, fmt.Errorf("failed to scan category revenue: %w", err)
		}
		report = append(report, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category revenue: %w", err)
	}

	return report, nil
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}

// placeholders renders n statement parameters in the adapter's style.
func (b *BaseSQLAdapter) placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		if b.Placeholder != nil {
			parts[i] = b.Placeholder(i + 1)
		} else {
			parts[i] = "?"
		}
	}
	return strings.Join(parts, ", ")
}
