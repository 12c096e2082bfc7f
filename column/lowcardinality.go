package column

import (
	"fmt"
	"io"

	"github.com/0xMihalich/chnative/chtype"
	"github.com/0xMihalich/chnative/errs"
	"github.com/0xMihalich/chnative/table"
)

// lowCardinalityCodec decodes LowCardinality(T) dictionary-encoded columns.
// Writing is unsupported (spec Non-goal: "LowCardinality is read-only").
//
// Wire layout (spec §4.3 "LowCardinality"):
//
//	[16 bytes opaque header, ignored]
//	[UInt64 dictionary size N]
//	[N values of T, index-size chosen from N]
//	[UInt64 total row count M]
//	[M indices, each index_width bytes, into the dictionary]
//
// When T is Nullable, dictionary index 0 is forced to NULL by convention
// rather than decoded from the wire.
type lowCardinalityCodec struct {
	inner    Codec
	nullable bool
	kind     chtype.Kind
}

func newLowCardinalityCodec(inner chtype.Descriptor) (Codec, error) {
	nullable := false
	d := inner

	if inner.Kind == chtype.KindNullable {
		nullable = true
		d = *inner.Inner
	}

	switch d.Kind {
	case chtype.KindString, chtype.KindFixedString,
		chtype.KindDate, chtype.KindDateTime,
		chtype.KindUInt8, chtype.KindUInt16, chtype.KindUInt32, chtype.KindUInt64,
		chtype.KindInt8, chtype.KindInt16, chtype.KindInt32, chtype.KindInt64,
		chtype.KindBFloat16, chtype.KindFloat32, chtype.KindFloat64:
	default:
		return nil, fmt.Errorf("%w: LowCardinality(%s)", errs.ErrUnsupportedType, d.Kind)
	}

	codec, err := New(d)
	if err != nil {
		return nil, err
	}

	return lowCardinalityCodec{inner: codec, nullable: nullable, kind: d.Kind}, nil
}

func indexWidth(count uint64) int {
	switch {
	case count <= 1<<8:
		return 1
	case count <= 1<<16:
		return 2
	case count <= 1<<32:
		return 4
	default:
		return 8
	}
}

func readUint64LE(r io.Reader) (uint64, error) {
	var buf [8]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}

	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(buf[i])
	}

	return v, nil
}

func readIndex(r io.Reader, width int) (uint64, error) {
	buf := make([]byte, width)
	if err := readFull(r, buf); err != nil {
		return 0, err
	}

	var v uint64
	for i := width - 1; i >= 0; i-- {
		v = v<<8 | uint64(buf[i])
	}

	return v, nil
}

func (c lowCardinalityCodec) Read(r io.Reader, rows int) ([]table.Value, error) {
	if err := skipBytes(r, 16); err != nil {
		return nil, err
	}

	dictSize, err := readUint64LE(r)
	if err != nil {
		return nil, err
	}

	dict, err := c.inner.Read(r, int(dictSize))
	if err != nil {
		return nil, err
	}

	if c.nullable && len(dict) > 0 {
		dict[0] = table.NullValue(c.kind)
	}

	total, err := readUint64LE(r)
	if err != nil {
		return nil, err
	}

	width := indexWidth(dictSize)
	out := make([]table.Value, total)

	for i := uint64(0); i < total; i++ {
		idx, err := readIndex(r, width)
		if err != nil {
			return nil, err
		}

		if idx >= uint64(len(dict)) {
			return nil, fmt.Errorf("%w: dictionary index %d out of range", errs.ErrInvalidTypeDescriptor, idx)
		}

		out[i] = dict[idx]
	}

	return out, nil
}

func (c lowCardinalityCodec) Write(w io.Writer, vals []table.Value) error {
	return errs.ErrLowCardinalityWriteUnsupported
}

func (c lowCardinalityCodec) Skip(r io.Reader, rows int) error {
	if err := skipBytes(r, 16); err != nil {
		return err
	}

	dictSize, err := readUint64LE(r)
	if err != nil {
		return err
	}

	if err := c.inner.Skip(r, int(dictSize)); err != nil {
		return err
	}

	total, err := readUint64LE(r)
	if err != nil {
		return err
	}

	width := indexWidth(dictSize)

	return skipBytes(r, int64(width)*int64(total))
}
