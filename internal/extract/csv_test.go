package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/salesmart/internal/testutil"
)

func writeFeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feed.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestExtract_ReadsRecordsInFileOrder(t *testing.T) {
	path := writeFeed(t, `order_id,transaction_date,customer_name,product,category,price,quantity,total_amount
101,2023-10-01,Alice,Laptop,Electronics,1200,1,1200
102,2023-10-01,Bob,Mouse,Accessories,25,2,50
`)

	e := NewCSV(path, testutil.NewTestLogger(t))
	records, err := e.Extract(context.Background())
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "101", records[0].OrderID)
	assert.Equal(t, "Alice", records[0].CustomerName)
	assert.Equal(t, "Laptop", records[0].Product)
	assert.Equal(t, "1200", records[0].Price)
	assert.Equal(t, "102", records[1].OrderID)
	assert.Equal(t, "50", records[1].TotalAmount)
}

// Columns are mapped by header name, not position.
func TestExtract_ReorderedColumns(t *testing.T) {
	path := writeFeed(t, `product,order_id,price,customer_name,category,quantity,total_amount,transaction_date
Laptop,101,1200,Alice,Electronics,1,1200,2023-10-01
`)

	e := NewCSV(path, nil)
	records, err := e.Extract(context.Background())
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "101", records[0].OrderID)
	assert.Equal(t, "Laptop", records[0].Product)
	assert.Equal(t, "2023-10-01", records[0].TransactionDate)
}

func TestExtract_MissingRequiredColumn(t *testing.T) {
	path := writeFeed(t, `order_id,transaction_date,customer_name,product,category,quantity,total_amount
101,2023-10-01,Alice,Laptop,Electronics,1,1200
`)

	e := NewCSV(path, nil)
	_, err := e.Extract(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
	assert.Contains(t, err.Error(), "price")
}

// A short row is padded rather than aborting the run; the empty fields are
// left for validation to quarantine.
func TestExtract_ShortRowPadded(t *testing.T) {
	path := writeFeed(t, `order_id,transaction_date,customer_name,product,category,price,quantity,total_amount
101,2023-10-01,Alice
`)

	e := NewCSV(path, nil)
	records, err := e.Extract(context.Background())
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "Alice", records[0].CustomerName)
	assert.Equal(t, "", records[0].Price)
	assert.Equal(t, "", records[0].Quantity)
}

func TestExtract_EmptyFeed(t *testing.T) {
	path := writeFeed(t, `order_id,transaction_date,customer_name,product,category,price,quantity,total_amount
`)

	e := NewCSV(path, nil)
	records, err := e.Extract(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestExtract_MissingFile(t *testing.T) {
	e := NewCSV(filepath.Join(t.TempDir(), "nope.csv"), nil)
	_, err := e.Extract(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open source file")
}
