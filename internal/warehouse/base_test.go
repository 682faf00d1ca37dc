package warehouse

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/salesmart/internal/sales"
)

const (
	insertDimSQL  = "INSERT INTO dim_product (product_id, product, category, price) VALUES (?, ?, ?, ?)"
	insertFactSQL = "INSERT INTO fact_sales (order_id, transaction_date, customer_name, product_id, quantity, total_amount) VALUES (?, ?, ?, ?, ?, ?)"
)

func newMockAdapter(t *testing.T) (*BaseSQLAdapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &BaseSQLAdapter{DB: db}, mock
}

func testSchema() *sales.StarSchema {
	return &sales.StarSchema{
		Products: []sales.ProductDimension{
			{ProductID: 1, Product: "Widget", Category: "Accessories", Price: decimal.NewFromInt(25)},
		},
		Facts: []sales.SalesFact{
			{OrderID: "101", TransactionDate: "2023-10-01", CustomerName: "Alice", ProductID: 1, Quantity: 2, TotalAmount: decimal.NewFromInt(50)},
			{OrderID: "103", TransactionDate: "2023-10-01", CustomerName: "Bob", ProductID: 1, Quantity: 1, TotalAmount: decimal.NewFromInt(25)},
		},
	}
}

func expectTablePrep(mock sqlmock.Sqlmock) {
	for _, stmt := range []string{dropFactSQL, dropDimSQL, createDimSQL, createFactSQL} {
		mock.ExpectExec(stmt).WillReturnResult(sqlmock.NewResult(0, 0))
	}
}

func TestReplaceStarSchema_SingleTransaction(t *testing.T) {
	b, mock := newMockAdapter(t)

	mock.ExpectBegin()
	expectTablePrep(mock)

	dimStmt := mock.ExpectPrepare(insertDimSQL)
	dimStmt.ExpectExec().
		WithArgs(1, "Widget", "Accessories", 25.0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	factStmt := mock.ExpectPrepare(insertFactSQL)
	factStmt.ExpectExec().
		WithArgs("101", "2023-10-01", "Alice", 1, 2, 50.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	factStmt.ExpectExec().
		WithArgs("103", "2023-10-01", "Bob", 1, 1, 25.0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectCommit()

	require.NoError(t, b.ReplaceStarSchema(context.Background(), testSchema()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceStarSchema_EmptySchemaStillReplacesTables(t *testing.T) {
	b, mock := newMockAdapter(t)

	mock.ExpectBegin()
	expectTablePrep(mock)
	mock.ExpectPrepare(insertDimSQL)
	mock.ExpectPrepare(insertFactSQL)
	mock.ExpectCommit()

	schema := &sales.StarSchema{}
	require.NoError(t, b.ReplaceStarSchema(context.Background(), schema))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A failed insert rolls back, leaving the previous run's tables visible.
func TestReplaceStarSchema_RollsBackOnFailure(t *testing.T) {
	b, mock := newMockAdapter(t)

	mock.ExpectBegin()
	expectTablePrep(mock)

	dimStmt := mock.ExpectPrepare(insertDimSQL)
	dimStmt.ExpectExec().
		WithArgs(1, "Widget", "Accessories", 25.0).
		WillReturnError(fmt.Errorf("disk full"))
	mock.ExpectRollback()

	err := b.ReplaceStarSchema(context.Background(), testSchema())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert dimension row")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceStarSchema_NotConnected(t *testing.T) {
	b := &BaseSQLAdapter{}
	err := b.ReplaceStarSchema(context.Background(), testSchema())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not established")
}

func TestCategoryRevenue(t *testing.T) {
	b, mock := newMockAdapter(t)

	mock.ExpectQuery(categoryRevenueSQL).WillReturnRows(
		sqlmock.NewRows([]string{"category", "total_revenue"}).
			AddRow("Electronics", 3000.0).
			AddRow("Accessories", 75.0),
	)

	report, err := b.CategoryRevenue(context.Background())
	require.NoError(t, err)

	require.Len(t, report, 2)
	assert.Equal(t, "Electronics", report[0].Category)
	assert.Equal(t, "3000", report[0].TotalRevenue.String())
	assert.Equal(t, "Accessories", report[1].Category)
	assert.Equal(t, "75", report[1].TotalRevenue.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceholders(t *testing.T) {
	b := &BaseSQLAdapter{}
	assert.Equal(t, "?, ?, ?", b.placeholders(3))

	b.Placeholder = func(n int) string { return fmt.Sprintf("$%d", n) }
	assert.Equal(t, "$1, $2, $3", b.placeholders(3))
}

func TestNewAdapter_UnknownType(t *testing.T) {
	_, err := NewAdapter(Config{Type: "oracle"}, nil)
	require.Error(t, err)

	var unknownErr *UnknownAdapterError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "oracle", unknownErr.Type)
}

func TestNewAdapter_EmptyType(t *testing.T) {
	_, err := NewAdapter(Config{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not specified")
}
