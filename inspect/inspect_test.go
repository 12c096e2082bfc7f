package inspect_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xMihalich/chnative/block"
	"github.com/0xMihalich/chnative/chtype"
	"github.com/0xMihalich/chnative/inspect"
	"github.com/0xMihalich/chnative/table"
)

func writeChunk(t *testing.T, buf *bytes.Buffer, rows int) {
	t.Helper()

	vals := make([]table.Value, rows)
	for i := range vals {
		vals[i] = table.UInt(chtype.KindUInt32, uint64(i))
	}

	chunk := table.Chunk{
		NumRows: rows,
		Columns: []table.Column{
			{Name: "id", Type: "UInt32", Values: vals},
			{Name: "name", Type: "String", Values: repeatString(rows, "x")},
		},
	}

	require.NoError(t, block.WriteTo(buf, chunk))
}

func repeatString(n int, s string) []table.Value {
	vals := make([]table.Value, n)
	for i := range vals {
		vals[i] = table.String(chtype.KindString, []byte(s))
	}

	return vals
}

func TestSummarizeAcrossMultipleBlocks(t *testing.T) {
	var buf bytes.Buffer
	writeChunk(t, &buf, 3)
	writeChunk(t, &buf, 5)

	s, err := inspect.Summarize(&buf)
	require.NoError(t, err)

	assert.Equal(t, 2, s.NumBlocks)
	assert.Equal(t, 8, s.TotalRows)
	require.Len(t, s.Columns, 2)
	assert.Equal(t, "id", s.Columns[0].Name)
	assert.Equal(t, "UInt32", s.Columns[0].Type)
	assert.Equal(t, "name", s.Columns[1].Name)
	assert.Equal(t, "String", s.Columns[1].Type)
}

func TestSummarizeEmptyStream(t *testing.T) {
	s, err := inspect.Summarize(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Equal(t, 0, s.NumBlocks)
	assert.Equal(t, 0, s.TotalRows)
}

func TestSummaryStringContainsColumns(t *testing.T) {
	var buf bytes.Buffer
	writeChunk(t, &buf, 2)

	s, err := inspect.Summarize(&buf)
	require.NoError(t, err)

	out := s.String()
	assert.Contains(t, out, "Total rows: 2")
	assert.Contains(t, out, "id [ UInt32 ]")
	assert.Contains(t, out, "name [ String ]")
}
