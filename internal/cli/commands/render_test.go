package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Table(t *testing.T) {
	var buf bytes.Buffer
	err := render(&buf, "table", []string{"category", "total_revenue"}, [][]string{
		{"Electronics", "3000"},
		{"Accessories", "75"},
	}, nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Electronics")
	assert.Contains(t, out, "3000")
	assert.Contains(t, out, "(2 rows)")
}

func TestRender_TableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, "table", []string{"category"}, nil, nil))
	assert.Equal(t, "(0 rows)\n", buf.String())
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	value := []categoryRevenueOutput{{Category: "Accessories", TotalRevenue: "75"}}
	require.NoError(t, render(&buf, "json", nil, nil, value))

	out := buf.String()
	assert.Contains(t, out, `"category": "Accessories"`)
	assert.Contains(t, out, `"total_revenue": "75"`)
}

func TestRender_CSV(t *testing.T) {
	var buf bytes.Buffer
	err := render(&buf, "csv", []string{"category", "total_revenue"}, [][]string{
		{"Cables, Adapters", "120"},
		{`Say "hi"`, "5"},
	}, nil)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "category,total_revenue", lines[0])
	assert.Equal(t, `"Cables, Adapters",120`, lines[1])
	assert.Equal(t, `"Say ""hi""",5`, lines[2])
}

func TestRender_Markdown(t *testing.T) {
	var buf bytes.Buffer
	err := render(&buf, "md", []string{"stage", "rows"}, [][]string{
		{"extracted", "6"},
	}, nil)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "| stage | rows |", lines[0])
	assert.Equal(t, "| --- | --- |", lines[1])
	assert.Equal(t, "| extracted | 6 |", lines[2])
}
