package stream_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xMihalich/chnative/chlog"
	"github.com/0xMihalich/chnative/chtype"
	"github.com/0xMihalich/chnative/errs"
	"github.com/0xMihalich/chnative/stream"
	"github.com/0xMihalich/chnative/table"
)

type countingSink struct {
	n int
}

func (s *countingSink) Log(chlog.Event) { s.n++ }

func TestValidateBlockRowsBoundaries(t *testing.T) {
	assert.NoError(t, stream.ValidateBlockRows(1))
	assert.NoError(t, stream.ValidateBlockRows(1_048_576))
	assert.ErrorIs(t, stream.ValidateBlockRows(0), errs.ErrConfig)
	assert.ErrorIs(t, stream.ValidateBlockRows(1_048_577), errs.ErrConfig)
}

func TestWriterChunksAndReaderIterates(t *testing.T) {
	col := table.Column{Name: "n", Type: "UInt32"}
	for i := 0; i < 5; i++ {
		col.Values = append(col.Values, table.UInt(chtype.KindUInt32, uint64(i)))
	}

	mem, err := table.NewMemory([]table.Column{col})
	require.NoError(t, err)

	var buf bytes.Buffer
	w := stream.NewWriter(&buf, 2)
	require.NoError(t, w.WriteTable(mem))

	r := stream.NewReader(&buf)

	var total int
	for {
		b, err := r.Next()
		if err == io.EOF {
			break
		}

		require.NoError(t, err)
		total += b.NumRows
	}

	assert.Equal(t, 5, total)
}

func TestReaderNextCleanEOF(t *testing.T) {
	r := stream.NewReader(bytes.NewReader(nil))
	_, err := r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestWriteChunkInfersEmptyType(t *testing.T) {
	col := table.Column{Name: "n"} // Type left unset
	for i := 0; i < 3; i++ {
		col.Values = append(col.Values, table.UInt(chtype.KindUInt8, uint64(i)))
	}

	mem, err := table.NewMemory([]table.Column{col})
	require.NoError(t, err)

	var buf bytes.Buffer
	w := stream.NewWriter(&buf, 10)
	require.NoError(t, w.WriteTable(mem))

	r := stream.NewReader(&buf)
	b, err := r.Next()
	require.NoError(t, err)
	require.Len(t, b.Columns, 1)
	assert.Equal(t, "UInt8", b.Columns[0].Type)
}

func TestWriteChunkKeepsCallerSuppliedType(t *testing.T) {
	col := table.Column{Name: "n", Type: "UInt32"}
	col.Values = append(col.Values, table.UInt(chtype.KindUInt8, 1))

	var buf bytes.Buffer
	w := stream.NewWriter(&buf, 10)
	require.NoError(t, w.WriteChunk(table.Chunk{Columns: []table.Column{col}, NumRows: 1}))

	r := stream.NewReader(&buf)
	b, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "UInt32", b.Columns[0].Type)
}

func TestReadTableConcatenatesAllBlocks(t *testing.T) {
	col := table.Column{Name: "n", Type: "UInt32"}
	for i := 0; i < 5; i++ {
		col.Values = append(col.Values, table.UInt(chtype.KindUInt32, uint64(i)))
	}

	mem, err := table.NewMemory([]table.Column{col})
	require.NoError(t, err)

	var buf bytes.Buffer
	w := stream.NewWriter(&buf, 2) // forces multiple blocks
	require.NoError(t, w.WriteTable(mem))

	got, err := stream.ReadTable(&buf)
	require.NoError(t, err)
	assert.Equal(t, 5, got.NumRows())
	assert.Equal(t, []string{"n"}, got.ColumnNames())

	vals := got.Column("n")
	require.Len(t, vals, 5)
	for i, v := range vals {
		assert.Equal(t, uint64(i), v.U64)
	}
}

func TestSinkReceivesReadAndWriteEvents(t *testing.T) {
	col := table.Column{Name: "n", Type: "UInt32", Values: []table.Value{table.UInt(chtype.KindUInt32, 1)}}

	mem, err := table.NewMemory([]table.Column{col})
	require.NoError(t, err)

	var buf bytes.Buffer
	writeSink := &countingSink{}
	w := stream.NewWriter(&buf, 10)
	w.SetSink(writeSink)
	require.NoError(t, w.WriteTable(mem))
	assert.Greater(t, writeSink.n, 0)

	readSink := &countingSink{}
	r := stream.NewReader(&buf)
	r.SetSink(readSink)

	_, err = r.Next()
	require.NoError(t, err)
	assert.Greater(t, readSink.n, 0)
}
