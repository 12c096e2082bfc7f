package column_test

import (
	"bytes"
	"io"
	"net/netip"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xMihalich/chnative/chtype"
	"github.com/0xMihalich/chnative/errs"
	"github.com/0xMihalich/chnative/table"
)

func TestStringRoundTrip(t *testing.T) {
	c := codecFor(t, "String")

	vals := []table.Value{
		table.String(chtype.KindString, []byte("hello")),
		table.String(chtype.KindString, nil),
		table.String(chtype.KindString, []byte("")),
	}

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf, vals))

	got, err := c.Read(&buf, len(vals))
	require.NoError(t, err)

	assert.Equal(t, "hello", string(got[0].Str))
	assert.Empty(t, got[1].Str)
	assert.Empty(t, got[2].Str)
}

func TestStringReadTruncatedAtLengthPrefix(t *testing.T) {
	c := codecFor(t, "String")

	_, err := c.Read(bytes.NewReader(nil), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, io.EOF)
	assert.ErrorIs(t, err, errs.ErrTruncatedBlock)

	err = c.Skip(bytes.NewReader(nil), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, io.EOF)
	assert.ErrorIs(t, err, errs.ErrTruncatedBlock)
}

func TestStringReadTruncatedMidPayload(t *testing.T) {
	c := codecFor(t, "String")

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf, []table.Value{table.String(chtype.KindString, []byte("hello"))}))

	truncated := buf.Bytes()[:buf.Len()-2] // keep the length byte, drop tail of the payload

	_, err := c.Read(bytes.NewReader(truncated), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrTruncatedBlock)
}

func TestFixedStringPadding(t *testing.T) {
	c := codecFor(t, "FixedString(6)")

	vals := []table.Value{table.String(chtype.KindFixedString, []byte("ab"))}

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf, vals))
	assert.Equal(t, 6, buf.Len())

	got, err := c.Read(&buf, 1)
	require.NoError(t, err)
	assert.Equal(t, "ab", string(got[0].TrimmedStr()))
	assert.Equal(t, 6, len(got[0].Str))
}

func TestDecimalRoundTrip(t *testing.T) {
	c := codecFor(t, "Decimal(18, 4)")

	vals := []table.Value{
		{Kind: chtype.KindDecimal, Dec: decimal.RequireFromString("123.4500")},
		{Kind: chtype.KindDecimal, Dec: decimal.RequireFromString("-9.0001")},
	}

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf, vals))

	got, err := c.Read(&buf, len(vals))
	require.NoError(t, err)

	for i := range vals {
		assert.True(t, vals[i].Dec.Equal(got[i].Dec), "want %s got %s", vals[i].Dec, got[i].Dec)
	}
}

func TestDecimalWideRoundTrip(t *testing.T) {
	c := codecFor(t, "Decimal(76, 2)")

	vals := []table.Value{
		{Kind: chtype.KindDecimal, Dec: decimal.RequireFromString("99999999999999999999999999999999.99")},
	}

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf, vals))
	assert.Equal(t, 32, buf.Len())

	got, err := c.Read(&buf, len(vals))
	require.NoError(t, err)
	assert.True(t, vals[0].Dec.Equal(got[0].Dec))
}

func TestDecimalWriteTruncatesTowardZero(t *testing.T) {
	c := codecFor(t, "Decimal(18, 2)")

	vals := []table.Value{
		{Kind: chtype.KindDecimal, Dec: decimal.RequireFromString("1.005")},
		{Kind: chtype.KindDecimal, Dec: decimal.RequireFromString("-1.005")},
	}

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf, vals))

	got, err := c.Read(&buf, len(vals))
	require.NoError(t, err)

	// Round(0) would give 1.01/-1.01; truncation toward zero gives 1.00/-1.00.
	assert.True(t, decimal.RequireFromString("1.00").Equal(got[0].Dec), "got %s", got[0].Dec)
	assert.True(t, decimal.RequireFromString("-1.00").Equal(got[1].Dec), "got %s", got[1].Dec)
}

func TestDecimalWideWriteTruncatesTowardZero(t *testing.T) {
	c := codecFor(t, "Decimal(76, 2)")

	vals := []table.Value{
		{Kind: chtype.KindDecimal, Dec: decimal.RequireFromString("1.005")},
		{Kind: chtype.KindDecimal, Dec: decimal.RequireFromString("-1.005")},
	}

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf, vals))

	got, err := c.Read(&buf, len(vals))
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("1.00").Equal(got[0].Dec), "got %s", got[0].Dec)
	assert.True(t, decimal.RequireFromString("-1.00").Equal(got[1].Dec), "got %s", got[1].Dec)
}

func TestUUIDRoundTrip(t *testing.T) {
	c := codecFor(t, "UUID")

	id := uuid.MustParse("c4f9703e-52b7-4855-8498-35e3e21bc1a0")
	vals := []table.Value{{Kind: chtype.KindUUID, UUID: id}}

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf, vals))

	got, err := c.Read(&buf, 1)
	require.NoError(t, err)
	assert.Equal(t, id, got[0].UUID)
}

func TestIPv4RoundTrip(t *testing.T) {
	c := codecFor(t, "IPv4")

	addr := netip.MustParseAddr("192.168.1.1")
	vals := []table.Value{{Kind: chtype.KindIPv4, IP: addr}}

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf, vals))

	got, err := c.Read(&buf, 1)
	require.NoError(t, err)
	assert.Equal(t, addr, got[0].IP)
}

func TestIPv6RoundTrip(t *testing.T) {
	c := codecFor(t, "IPv6")

	addr := netip.MustParseAddr("2001:db8::1")
	vals := []table.Value{{Kind: chtype.KindIPv6, IP: addr}}

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf, vals))

	got, err := c.Read(&buf, 1)
	require.NoError(t, err)
	assert.Equal(t, addr, got[0].IP)
}

func TestEnumRoundTrip(t *testing.T) {
	c := codecFor(t, "Enum8('a' = 1, 'b' = -2)")

	vals := []table.Value{
		table.String(chtype.KindEnum8, []byte("a")),
		table.String(chtype.KindEnum8, []byte("b")),
	}

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf, vals))

	got, err := c.Read(&buf, len(vals))
	require.NoError(t, err)
	assert.Equal(t, "a", string(got[0].Str))
	assert.Equal(t, int64(1), got[0].I64)
	assert.Equal(t, "b", string(got[1].Str))
	assert.Equal(t, int64(-2), got[1].I64)
}

func TestEnumWriteAcceptsCodeWithoutName(t *testing.T) {
	c := codecFor(t, "Enum8('a' = 1, 'b' = -2)")

	vals := []table.Value{
		{Kind: chtype.KindEnum8, I64: -2}, // code only, Str unset
	}

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf, vals))

	got, err := c.Read(&buf, len(vals))
	require.NoError(t, err)
	assert.Equal(t, "b", string(got[0].Str))
	assert.Equal(t, int64(-2), got[0].I64)
}

func TestEnumWriteUnknownCodeRejected(t *testing.T) {
	c := codecFor(t, "Enum8('a' = 1, 'b' = -2)")

	vals := []table.Value{{Kind: chtype.KindEnum8, I64: 99}}

	var buf bytes.Buffer
	err := c.Write(&buf, vals)
	assert.ErrorIs(t, err, errs.ErrInvalidEnumDescriptor)
}

func TestNullableRoundTrip(t *testing.T) {
	c := codecFor(t, "Nullable(Int32)")

	vals := []table.Value{
		table.Int(chtype.KindInt32, 42),
		table.NullValue(chtype.KindInt32),
		table.Int(chtype.KindInt32, -7),
	}

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf, vals))

	got, err := c.Read(&buf, len(vals))
	require.NoError(t, err)

	assert.False(t, got[0].Null)
	assert.Equal(t, int64(42), got[0].I64)
	assert.True(t, got[1].Null)
	assert.False(t, got[2].Null)
	assert.Equal(t, int64(-7), got[2].I64)
}

func TestArrayRoundTrip(t *testing.T) {
	c := codecFor(t, "Array(UInt8)")

	vals := []table.Value{
		{Kind: chtype.KindArray, Arr: []table.Value{
			table.UInt(chtype.KindUInt8, 1),
			table.UInt(chtype.KindUInt8, 2),
		}},
		{Kind: chtype.KindArray, Arr: nil},
		{Kind: chtype.KindArray, Arr: []table.Value{
			table.UInt(chtype.KindUInt8, 3),
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf, vals))

	got, err := c.Read(&buf, len(vals))
	require.NoError(t, err)

	require.Len(t, got[0].Arr, 2)
	assert.Equal(t, uint64(1), got[0].Arr[0].U64)
	assert.Equal(t, uint64(2), got[0].Arr[1].U64)
	assert.Empty(t, got[1].Arr)
	require.Len(t, got[2].Arr, 1)
	assert.Equal(t, uint64(3), got[2].Arr[0].U64)
}

func TestArrayOfNullable(t *testing.T) {
	c := codecFor(t, "Array(Nullable(String))")

	vals := []table.Value{
		{Kind: chtype.KindArray, Arr: []table.Value{
			table.String(chtype.KindString, []byte("x")),
			table.NullValue(chtype.KindString),
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf, vals))

	got, err := c.Read(&buf, 1)
	require.NoError(t, err)
	require.Len(t, got[0].Arr, 2)
	assert.Equal(t, "x", string(got[0].Arr[0].Str))
	assert.True(t, got[0].Arr[1].Null)
}

func TestLowCardinalityWriteUnsupported(t *testing.T) {
	c := codecFor(t, "LowCardinality(String)")

	err := c.Write(&bytes.Buffer{}, nil)
	assert.Error(t, err)
}

func TestNothingWriteAndRead(t *testing.T) {
	c := codecFor(t, "Nothing")

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf, []table.Value{{}, {}, {}}))
	assert.Equal(t, []byte("000"), buf.Bytes())

	got, err := c.Read(&buf, 3)
	require.NoError(t, err)

	for _, v := range got {
		assert.True(t, v.Null)
	}
}
