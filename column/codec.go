// Package column implements the per-type Native column codecs: one
// Read/Write/Skip implementation per scalar or composite type, instantiated
// from a chtype.Descriptor for the duration of a single column's transfer
// (spec: codec instances are created at block-header parse time and
// discarded once the column is read or written).
package column

import (
	"fmt"
	"io"

	"github.com/0xMihalich/chnative/chtype"
	"github.com/0xMihalich/chnative/errs"
	"github.com/0xMihalich/chnative/table"
)

// Codec reads, writes, or skips exactly one column of a fixed row count.
type Codec interface {
	// Read decodes rows values from r.
	Read(r io.Reader, rows int) ([]table.Value, error)
	// Write encodes vals to w. len(vals) is the column's row count.
	Write(w io.Writer, vals []table.Value) error
	// Skip advances r past rows values without materializing them.
	Skip(r io.Reader, rows int) error
}

// New instantiates the Codec for a parsed type descriptor.
func New(d chtype.Descriptor) (Codec, error) {
	switch d.Kind {
	case chtype.KindUInt8, chtype.KindUInt16, chtype.KindUInt32, chtype.KindUInt64:
		return fixedIntCodec{kind: d.Kind, width: d.Width, signed: false}, nil
	case chtype.KindInt8, chtype.KindInt16, chtype.KindInt32, chtype.KindInt64:
		return fixedIntCodec{kind: d.Kind, width: d.Width, signed: true}, nil
	case chtype.KindUInt128, chtype.KindUInt256:
		return wideIntCodec{kind: d.Kind, width: d.Width, signed: false}, nil
	case chtype.KindInt128, chtype.KindInt256:
		return wideIntCodec{kind: d.Kind, width: d.Width, signed: true}, nil
	case chtype.KindFloat32:
		return float32Codec{}, nil
	case chtype.KindFloat64:
		return float64Codec{}, nil
	case chtype.KindBFloat16:
		return bfloat16Codec{}, nil
	case chtype.KindDecimal:
		return decimalCodec{precision: d.Precision, scale: d.Scale, width: d.Width}, nil
	case chtype.KindString:
		return stringCodec{}, nil
	case chtype.KindFixedString:
		return fixedStringCodec{n: d.FixedLen}, nil
	case chtype.KindBool:
		return boolCodec{}, nil
	case chtype.KindDate:
		return dateCodec{}, nil
	case chtype.KindDate32:
		return date32Codec{}, nil
	case chtype.KindDateTime:
		return dateTimeCodec{tz: d.TZ}, nil
	case chtype.KindDateTime64:
		return dateTime64Codec{precision: d.DateTimePrecision, tz: d.TZ}, nil
	case chtype.KindEnum8:
		return enumCodec{kind: chtype.KindEnum8, width: 1, byCode: d.EnumByCode, byName: d.EnumByName}, nil
	case chtype.KindEnum16:
		return enumCodec{kind: chtype.KindEnum16, width: 2, byCode: d.EnumByCode, byName: d.EnumByName}, nil
	case chtype.KindUUID:
		return uuidCodec{}, nil
	case chtype.KindIPv4:
		return ipv4Codec{}, nil
	case chtype.KindIPv6:
		return ipv6Codec{}, nil
	case chtype.KindNothing:
		return nothingCodec{}, nil
	case chtype.KindInterval:
		return intervalCodec{unit: d.Interval}, nil
	case chtype.KindNullable:
		inner, err := New(*d.Inner)
		if err != nil {
			return nil, err
		}

		return nullableCodec{innerKind: d.Inner.Kind, inner: inner}, nil
	case chtype.KindArray:
		inner, err := New(*d.Inner)
		if err != nil {
			return nil, err
		}

		return arrayCodec{innerDesc: *d.Inner, inner: inner}, nil
	case chtype.KindLowCardinality:
		return newLowCardinalityCodec(*d.Inner)
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedType, d.Kind)
	}
}

// skipBytes advances r by exactly n bytes, failing with ErrTruncatedBlock
// on a short read.
func skipBytes(r io.Reader, n int64) error {
	if n <= 0 {
		return nil
	}

	copied, err := io.CopyN(io.Discard, r, n)
	if err != nil {
		return fmt.Errorf("%w: expected %d bytes, got %d: %v", errs.ErrTruncatedBlock, n, copied, err)
	}

	return nil
}

func readFull(r io.Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrTruncatedBlock, err)
	}

	return nil
}
