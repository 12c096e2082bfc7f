package block_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xMihalich/chnative/block"
	"github.com/0xMihalich/chnative/chtype"
	"github.com/0xMihalich/chnative/errs"
	"github.com/0xMihalich/chnative/table"
)

func TestNullableUInt8GoldenBytes(t *testing.T) {
	chunk := table.Chunk{
		NumRows: 3,
		Columns: []table.Column{
			{
				Name: "n",
				Type: "Nullable(UInt8)",
				Values: []table.Value{
					table.NullValue(chtype.KindUInt8),
					table.UInt(chtype.KindUInt8, 5),
					table.NullValue(chtype.KindUInt8),
				},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, block.WriteTo(&buf, chunk))

	// header, then null mask 01 00 01, then payload 00 05 00
	want := append([]byte{0x01, 0x03, 0x01, 'n', 0x0f}, "Nullable(UInt8)"...)
	want = append(want, 0x01, 0x00, 0x01, 0x00, 0x05, 0x00)
	assert.Equal(t, want, buf.Bytes())

	b, err := block.ReadFrom(&buf)
	require.NoError(t, err)
	require.Len(t, b.Columns, 1)

	got := b.Columns[0].Values
	assert.True(t, got[0].Null)
	assert.False(t, got[1].Null)
	assert.Equal(t, uint64(5), got[1].U64)
	assert.True(t, got[2].Null)
}

func TestArrayUInt8GoldenBytes(t *testing.T) {
	chunk := table.Chunk{
		NumRows: 3,
		Columns: []table.Column{
			{
				Name: "a",
				Type: "Array(UInt8)",
				Values: []table.Value{
					{Kind: chtype.KindArray, Arr: []table.Value{
						table.UInt(chtype.KindUInt8, 1),
						table.UInt(chtype.KindUInt8, 2),
					}},
					{Kind: chtype.KindArray, Arr: nil},
					{Kind: chtype.KindArray, Arr: []table.Value{
						table.UInt(chtype.KindUInt8, 3),
					}},
				},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, block.WriteTo(&buf, chunk))

	// header, then cumulative UInt64 offsets 2, 2, 3, then flat 01 02 03
	want := append([]byte{0x01, 0x03, 0x01, 'a', 0x0c}, "Array(UInt8)"...)
	want = append(want,
		0x02, 0, 0, 0, 0, 0, 0, 0,
		0x02, 0, 0, 0, 0, 0, 0, 0,
		0x03, 0, 0, 0, 0, 0, 0, 0,
		0x01, 0x02, 0x03)
	assert.Equal(t, want, buf.Bytes())

	b, err := block.ReadFrom(&buf)
	require.NoError(t, err)

	got := b.Columns[0].Values
	require.Len(t, got[0].Arr, 2)
	assert.Equal(t, uint64(1), got[0].Arr[0].U64)
	assert.Equal(t, uint64(2), got[0].Arr[1].U64)
	assert.Empty(t, got[1].Arr)
	require.Len(t, got[2].Arr, 1)
	assert.Equal(t, uint64(3), got[2].Arr[0].U64)
}

func TestEmptyBlockRoundTrip(t *testing.T) {
	chunk := table.Chunk{NumRows: 0, Columns: nil}

	var buf bytes.Buffer
	require.NoError(t, block.WriteTo(&buf, chunk))

	b, err := block.ReadFrom(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, b.NumRows)
	assert.Empty(t, b.Columns)
}

func TestReadFromCleanEOF(t *testing.T) {
	_, err := block.ReadFrom(bytes.NewReader(nil))
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadFromTruncatedMidHeader(t *testing.T) {
	_, err := block.ReadFrom(bytes.NewReader([]byte{0x01}))
	assert.Error(t, err)
	assert.NotEqual(t, io.EOF, err)
}

func TestReadFromTruncatedMidStringColumn(t *testing.T) {
	chunk := table.Chunk{
		NumRows: 1,
		Columns: []table.Column{
			{Name: "s", Type: "String", Values: []table.Value{
				table.String(chtype.KindString, []byte("hello")),
			}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, block.WriteTo(&buf, chunk))

	full := buf.Bytes()

	// Truncate exactly at the String column's length-prefix byte: header
	// (column count, row count, name, type) survives intact but the
	// payload is entirely missing.
	headerLen := len(full) - 1 /* varint length byte */ - len("hello")
	truncated := full[:headerLen]

	_, err := block.ReadFrom(bytes.NewReader(truncated))
	require.Error(t, err)
	assert.NotErrorIs(t, err, io.EOF)
	assert.ErrorIs(t, err, errs.ErrTruncatedBlock)

	_, err = block.SkipCounting(bytes.NewReader(truncated))
	require.Error(t, err)
	assert.NotErrorIs(t, err, io.EOF)
	assert.ErrorIs(t, err, errs.ErrTruncatedBlock)
}

func TestSkipMatchesReadLength(t *testing.T) {
	chunk := table.Chunk{
		NumRows: 2,
		Columns: []table.Column{
			{Name: "x", Type: "UInt32", Values: []table.Value{
				table.UInt(chtype.KindUInt32, 10),
				table.UInt(chtype.KindUInt32, 20),
			}},
			{Name: "s", Type: "String", Values: []table.Value{
				table.String(chtype.KindString, []byte("ab")),
				table.String(chtype.KindString, []byte("cde")),
			}},
		},
	}

	var buf1, buf2 bytes.Buffer
	require.NoError(t, block.WriteTo(&buf1, chunk))
	require.NoError(t, block.WriteTo(&buf2, chunk))

	require.NoError(t, block.Skip(&buf1))
	assert.Equal(t, 0, buf1.Len())

	b, err := block.ReadFrom(&buf2)
	require.NoError(t, err)
	assert.Equal(t, 2, b.NumRows)
}
