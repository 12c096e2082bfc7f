package infer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xMihalich/chnative/chtype"
	"github.com/0xMihalich/chnative/infer"
	"github.com/0xMihalich/chnative/table"
)

func TestInferAllNull(t *testing.T) {
	got, err := infer.Column([]table.Value{
		table.NullValue(chtype.KindString),
		table.NullValue(chtype.KindString),
	})
	require.NoError(t, err)
	assert.Equal(t, "Nothing", got.String())
}

func TestInferNullableWrapping(t *testing.T) {
	got, err := infer.Column([]table.Value{
		table.UInt(chtype.KindUInt8, 3),
		table.NullValue(chtype.KindUInt8),
	})
	require.NoError(t, err)
	assert.Equal(t, "Nullable(UInt8)", got.String())
}

func TestInferIntegerWidthLadder(t *testing.T) {
	cases := []struct {
		vals []table.Value
		want string
	}{
		{[]table.Value{table.UInt(chtype.KindUInt8, 0), table.UInt(chtype.KindUInt8, 200)}, "UInt8"},
		{[]table.Value{table.UInt(chtype.KindUInt8, 0), table.UInt(chtype.KindUInt8, 60000)}, "UInt16"},
		{[]table.Value{table.Int(chtype.KindInt8, -5), table.Int(chtype.KindInt8, 5)}, "Int8"},
		{[]table.Value{table.Int(chtype.KindInt8, -40000), table.Int(chtype.KindInt8, 5)}, "Int32"},
	}

	for _, c := range cases {
		got, err := infer.Column(c.vals)
		require.NoError(t, err)
		assert.Equal(t, c.want, got.String())
	}
}

func TestInferFloatMagnitude(t *testing.T) {
	got, err := infer.Column([]table.Value{
		table.Float64(1.5),
	})
	require.NoError(t, err)
	assert.Equal(t, "Float32", got.String())

	got, err = infer.Column([]table.Value{
		table.Float64(1e300),
	})
	require.NoError(t, err)
	assert.Equal(t, "Float64", got.String())
}

func TestInferFixedStringUniformLength(t *testing.T) {
	got, err := infer.Column([]table.Value{
		table.String(chtype.KindString, []byte("abc")),
		table.String(chtype.KindString, []byte("xyz")),
	})
	require.NoError(t, err)
	assert.Equal(t, "FixedString(3)", got.String())

	got, err = infer.Column([]table.Value{
		table.String(chtype.KindString, []byte("ab")),
		table.String(chtype.KindString, []byte("xyz")),
	})
	require.NoError(t, err)
	assert.Equal(t, "String", got.String())
}

func TestInferArrayWithNullable(t *testing.T) {
	got, err := infer.Column([]table.Value{
		{Kind: chtype.KindArray, Arr: []table.Value{
			table.UInt(chtype.KindUInt8, 1),
			table.NullValue(chtype.KindUInt8),
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Array(Nullable(UInt8))", got.String())
}

func TestInferTableBatch(t *testing.T) {
	mem, err := table.NewMemory([]table.Column{
		{Name: "n", Values: []table.Value{table.UInt(chtype.KindUInt8, 1), table.UInt(chtype.KindUInt8, 2)}},
		{Name: "s", Values: []table.Value{table.String(chtype.KindString, []byte("ab")), table.String(chtype.KindString, []byte("xyz"))}},
	})
	require.NoError(t, err)

	descs, err := infer.Table(mem)
	require.NoError(t, err)
	require.Len(t, descs, 2)
	assert.Equal(t, "UInt8", descs[0].String())
	assert.Equal(t, "String", descs[1].String())
}

func TestZoneForKnownAndUnknownOffset(t *testing.T) {
	assert.Equal(t, "Europe/Moscow", infer.ZoneFor("+0300"))
	assert.Equal(t, "UTC", infer.ZoneFor("+9999"))
}
