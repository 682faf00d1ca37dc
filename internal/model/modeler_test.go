package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/salesmart/internal/sales"
)

func cleanRecord(order, customer, product, category, price, qty, total string) sales.RawRecord {
	return sales.RawRecord{
		OrderID:         order,
		TransactionDate: "2023-10-01",
		CustomerName:    customer,
		Product:         product,
		Category:        category,
		Price:           price,
		Quantity:        qty,
		TotalAmount:     total,
	}
}

func TestBuild_DeduplicatesProducts(t *testing.T) {
	clean := []sales.RawRecord{
		cleanRecord("101", "Alice", "Widget", "Accessories", "25", "2", "50"),
		cleanRecord("102", "Bob", "Widget", "Accessories", "25", "1", "25"),
	}

	schema, err := Build(clean)
	require.NoError(t, err)

	require.Len(t, schema.Products, 1)
	require.Len(t, schema.Facts, 2)

	dim := schema.Products[0]
	assert.Equal(t, 1, dim.ProductID)
	assert.Equal(t, "Widget", dim.Product)
	assert.Equal(t, "Accessories", dim.Category)
	assert.Equal(t, "25", dim.Price.String())

	assert.Equal(t, dim.ProductID, schema.Facts[0].ProductID)
	assert.Equal(t, dim.ProductID, schema.Facts[1].ProductID)
}

func TestBuild_SurrogateKeysInFirstOccurrenceOrder(t *testing.T) {
	clean := []sales.RawRecord{
		cleanRecord("1", "A", "Laptop", "Electronics", "1200", "1", "1200"),
		cleanRecord("2", "B", "Mouse", "Accessories", "25", "2", "50"),
		cleanRecord("3", "C", "Laptop", "Electronics", "1200", "1", "1200"),
		cleanRecord("4", "D", "Monitor", "Electronics", "300", "2", "600"),
	}

	schema, err := Build(clean)
	require.NoError(t, err)

	require.Len(t, schema.Products, 3)
	assert.Equal(t, 1, schema.Products[0].ProductID)
	assert.Equal(t, "Laptop", schema.Products[0].Product)
	assert.Equal(t, 2, schema.Products[1].ProductID)
	assert.Equal(t, "Mouse", schema.Products[1].Product)
	assert.Equal(t, 3, schema.Products[2].ProductID)
	assert.Equal(t, "Monitor", schema.Products[2].Product)
}

// Same product name with a different price or category in later rows: the
// first occurrence wins, and later rows map to the first-seen key.
func TestBuild_FirstOccurrenceWinsOnConflict(t *testing.T) {
	clean := []sales.RawRecord{
		cleanRecord("1", "A", "Widget", "Accessories", "25", "1", "25"),
		cleanRecord("2", "B", "Widget", "Electronics", "30", "1", "30"),
	}

	schema, err := Build(clean)
	require.NoError(t, err)

	require.Len(t, schema.Products, 1)
	assert.Equal(t, "Accessories", schema.Products[0].Category)
	assert.Equal(t, "25", schema.Products[0].Price.String())

	require.Len(t, schema.Facts, 2)
	assert.Equal(t, 1, schema.Facts[0].ProductID)
	assert.Equal(t, 1, schema.Facts[1].ProductID)
}

func TestBuild_ReferentialIntegrity(t *testing.T) {
	clean := []sales.RawRecord{
		cleanRecord("1", "A", "Laptop", "Electronics", "1200", "1", "1200"),
		cleanRecord("2", "B", "Mouse", "Accessories", "25", "2", "50"),
		cleanRecord("3", "C", "Laptop", "Electronics", "1200", "2", "2400"),
	}

	schema, err := Build(clean)
	require.NoError(t, err)

	ids := make(map[int]bool)
	for _, p := range schema.Products {
		ids[p.ProductID] = true
	}
	for _, f := range schema.Facts {
		assert.True(t, ids[f.ProductID], "fact for order %s references unknown product_id %d", f.OrderID, f.ProductID)
	}
}

func TestBuild_FactCarriesOriginalFields(t *testing.T) {
	clean := []sales.RawRecord{
		cleanRecord("101", "Alice", "Widget", "Accessories", "25", "2", "50"),
	}

	schema, err := Build(clean)
	require.NoError(t, err)

	require.Len(t, schema.Facts, 1)
	f := schema.Facts[0]
	assert.Equal(t, "101", f.OrderID)
	assert.Equal(t, "2023-10-01", f.TransactionDate)
	assert.Equal(t, "Alice", f.CustomerName)
	assert.Equal(t, 2, f.Quantity)
	assert.Equal(t, "50", f.TotalAmount.String())
}

func TestBuild_EmptyInput(t *testing.T) {
	schema, err := Build(nil)
	require.NoError(t, err)

	assert.Empty(t, schema.Products)
	assert.Empty(t, schema.Facts)
}

// Records that bypassed validation surface as errors, not corrupt tables.
func TestBuild_UnvalidatedRecordFails(t *testing.T) {
	tests := []struct {
		name   string
		record sales.RawRecord
	}{
		{"bad price", cleanRecord("1", "A", "Widget", "X", "free", "1", "1")},
		{"bad quantity", cleanRecord("1", "A", "Widget", "X", "25", "two", "50")},
		{"bad total", cleanRecord("1", "A", "Widget", "X", "25", "2", "n/a")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build([]sales.RawRecord{tt.record})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invariant violation")
		})
	}
}
