package config_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xMihalich/chnative/chtype"
	"github.com/0xMihalich/chnative/compress"
	"github.com/0xMihalich/chnative/config"
	"github.com/0xMihalich/chnative/table"
)

func TestDefaultOptions(t *testing.T) {
	o, err := config.New()
	require.NoError(t, err)
	assert.Equal(t, 65_400, o.BlockRows)
	assert.False(t, o.MakeCompress)
	assert.Equal(t, compress.MethodNone, o.CompressMethod)
	assert.Equal(t, 0, o.CompressLevel)
}

func TestBlockRowsBoundaries(t *testing.T) {
	_, err := config.New(config.WithBlockRows(1))
	assert.NoError(t, err)

	_, err = config.New(config.WithBlockRows(1_048_576))
	assert.NoError(t, err)

	_, err = config.New(config.WithBlockRows(0))
	assert.Error(t, err)

	_, err = config.New(config.WithBlockRows(1_048_577))
	assert.Error(t, err)
}

func TestCompressionOptions(t *testing.T) {
	o, err := config.New(config.WithCompression(compress.MethodZSTD), config.WithCompressLevel(5))
	require.NoError(t, err)
	assert.True(t, o.MakeCompress)
	assert.Equal(t, compress.MethodZSTD, o.CompressMethod)
	assert.Equal(t, 5, o.CompressLevel)
}

func TestNegativeCompressLevelRejected(t *testing.T) {
	_, err := config.New(config.WithCompressLevel(-1))
	assert.Error(t, err)
}

func TestUnsupportedCompressMethodRejected(t *testing.T) {
	_, err := config.New(config.WithCompression(compress.MethodGorilla))
	assert.Error(t, err)
}

func tableWithOneUInt32Column(n int) *table.Memory {
	col := table.Column{Name: "n", Type: "UInt32"}
	for i := 0; i < n; i++ {
		col.Values = append(col.Values, table.UInt(chtype.KindUInt32, uint64(i)))
	}

	mem, err := table.NewMemory([]table.Column{col})
	if err != nil {
		panic(err)
	}

	return mem
}

func TestNewWriterAndOpenReaderRoundTripUncompressed(t *testing.T) {
	o, err := config.New()
	require.NoError(t, err)

	var buf bytes.Buffer
	w, closer := config.NewWriter(&buf, o)
	require.NoError(t, w.WriteTable(tableWithOneUInt32Column(5)))
	require.NoError(t, closer.Close())

	r, err := config.OpenReader(&buf, true)
	require.NoError(t, err)

	b, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, 5, b.NumRows)

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestNewWriterAndOpenReaderRoundTripCompressed(t *testing.T) {
	o, err := config.New(config.WithCompression(compress.MethodZSTD), config.WithCompressLevel(3))
	require.NoError(t, err)

	var buf bytes.Buffer
	w, closer := config.NewWriter(&buf, o)
	require.NoError(t, w.WriteTable(tableWithOneUInt32Column(5)))
	require.NoError(t, closer.Close())

	r, err := config.OpenReader(&buf, true)
	require.NoError(t, err)

	b, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, 5, b.NumRows)
}
