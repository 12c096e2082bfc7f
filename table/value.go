// Package table defines the abstract tabular front-end the Native codec
// consumes and produces: a dynamically-typed Value union, a Column/Chunk
// pair, and the Table interface an outer data-frame layer (pandas/polars
// equivalents — explicitly out of scope for this module) would implement.
package table

import (
	"math/big"
	"net/netip"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/0xMihalich/chnative/chtype"
)

// Value is a dynamically-typed column cell, discriminated by Kind.
//
// Only the field matching Kind is meaningful; the zero value of the others
// is unspecified. This mirrors the reference's dynamically-typed Python
// values with a Go-native tagged union instead.
type Value struct {
	Kind chtype.Kind
	Null bool

	I64 int64   // Int8/16/32/64, Date32 days, DateTime seconds, DateTime64 ticks, Enum code, Interval count
	U64 uint64  // UInt8/16/32/64, Date days
	Big *big.Int // Int128/256, UInt128/256

	F32 float32 // Float32, BFloat16
	F64 float64 // Float64

	Dec decimal.Decimal // Decimal(P,S)

	Str []byte // String, FixedString (raw, possibly NUL-padded), Enum name

	Bool bool

	UUID uuid.UUID
	IP   netip.Addr

	Arr []Value
}

// TrimmedStr returns Str with trailing NUL bytes removed, the documented
// opinionated trim for FixedString(N) values shorter than N (spec open
// question: the wire form is NUL-padded; this accessor is the convenience
// the reference leaves to the caller).
func (v Value) TrimmedStr() []byte {
	s := v.Str
	for len(s) > 0 && s[len(s)-1] == 0 {
		s = s[:len(s)-1]
	}

	return s
}

// IsNull reports whether this value represents a SQL NULL.
func (v Value) IsNull() bool { return v.Null }

// NullValue returns a null Value of the given kind.
func NullValue(kind chtype.Kind) Value {
	return Value{Kind: kind, Null: true}
}

// Int returns a signed integer Value.
func Int(kind chtype.Kind, v int64) Value {
	return Value{Kind: kind, I64: v}
}

// UInt returns an unsigned integer Value.
func UInt(kind chtype.Kind, v uint64) Value {
	return Value{Kind: kind, U64: v}
}

// BigInt returns a wide (128/256-bit) integer Value.
func BigInt(kind chtype.Kind, v *big.Int) Value {
	return Value{Kind: kind, Big: v}
}

// Float32 returns a Float32/BFloat16 Value.
func Float32(kind chtype.Kind, v float32) Value {
	return Value{Kind: kind, F32: v}
}

// Float64 returns a Float64 Value.
func Float64(v float64) Value {
	return Value{Kind: chtype.KindFloat64, F64: v}
}

// String returns a String/FixedString/Enum-name Value.
func String(kind chtype.Kind, s []byte) Value {
	return Value{Kind: kind, Str: s}
}

// BoolValue returns a Bool Value.
func BoolValue(b bool) Value {
	return Value{Kind: chtype.KindBool, Bool: b}
}

// Column is a named, homogeneously-typed sequence of Values.
type Column struct {
	Name string
	Type string // Native type descriptor text; empty requests inference on write
	Values []Value
}

// Chunk is a row-aligned group of Columns sharing a row count, the unit a
// Table yields for block encoding.
type Chunk struct {
	Columns []Column
	NumRows int
}

// Table is the abstract tabular data provider the Native codec reads from
// and writes to. A concrete front-end (pandas/polars equivalent) is out of
// scope for this module; Memory below is a minimal in-process
// implementation used for testing and for round-tripping without an
// external front-end.
type Table interface {
	// ColumnNames returns the table's column names in declared order.
	ColumnNames() []string
	// NumRows returns the total row count across the whole table.
	NumRows() int
	// Column returns the full (unchunked) value sequence for the named column.
	Column(name string) []Value
}
