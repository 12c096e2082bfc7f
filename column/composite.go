package column

import (
	"io"

	"github.com/0xMihalich/chnative/chtype"
	"github.com/0xMihalich/chnative/table"
)

// nullableCodec encodes Nullable(T) as a UInt8 null mask for all rows
// (1 = NULL, 0 = present) followed by T's full payload for all rows,
// including null positions (their encoded value is whatever the caller
// supplied and is ignored on read) — spec §4.3 "Nullable".
type nullableCodec struct {
	innerKind chtype.Kind
	inner     Codec
}

func (c nullableCodec) Read(r io.Reader, rows int) ([]table.Value, error) {
	mask := make([]byte, rows)
	if err := readFull(r, mask); err != nil {
		return nil, err
	}

	vals, err := c.inner.Read(r, rows)
	if err != nil {
		return nil, err
	}

	for i := 0; i < rows; i++ {
		if mask[i] != 0 {
			vals[i] = table.NullValue(c.innerKind)
		}
	}

	return vals, nil
}

func (c nullableCodec) Write(w io.Writer, vals []table.Value) error {
	mask := make([]byte, len(vals))
	for i, v := range vals {
		if v.Null {
			mask[i] = 1
		}
	}

	if _, err := w.Write(mask); err != nil {
		return err
	}

	return c.inner.Write(w, vals)
}

func (c nullableCodec) Skip(r io.Reader, rows int) error {
	if err := skipBytes(r, int64(rows)); err != nil {
		return err
	}

	return c.inner.Skip(r, rows)
}

// arrayCodec encodes Array(T) as a cumulative UInt64 offset per row
// (running total of elements seen so far) followed by the flattened inner
// values for the grand total (spec §4.3 "Array").
type arrayCodec struct {
	innerDesc chtype.Descriptor
	inner     Codec
}

func (c arrayCodec) Read(r io.Reader, rows int) ([]table.Value, error) {
	offsets := make([]uint64, rows)

	for i := 0; i < rows; i++ {
		var buf [8]byte
		if err := readFull(r, buf[:]); err != nil {
			return nil, err
		}

		offsets[i] = uint64(buf[0]) | uint64(buf[1])<<8 | uint64(buf[2])<<16 | uint64(buf[3])<<24 |
			uint64(buf[4])<<32 | uint64(buf[5])<<40 | uint64(buf[6])<<48 | uint64(buf[7])<<56
	}

	var total uint64
	if rows > 0 {
		total = offsets[rows-1]
	}

	items, err := c.inner.Read(r, int(total))
	if err != nil {
		return nil, err
	}

	out := make([]table.Value, rows)
	var start uint64
	for i := 0; i < rows; i++ {
		end := offsets[i]
		out[i] = table.Value{Kind: chtype.KindArray, Arr: items[start:end]}
		start = end
	}

	return out, nil
}

func (c arrayCodec) Write(w io.Writer, vals []table.Value) error {
	var total uint64
	offsets := make([]uint64, len(vals))

	for i, v := range vals {
		total += uint64(len(v.Arr))
		offsets[i] = total
	}

	for _, off := range offsets {
		var buf [8]byte
		for j := 0; j < 8; j++ {
			buf[j] = byte(off >> (8 * j))
		}

		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}

	flat := make([]table.Value, 0, total)
	for _, v := range vals {
		flat = append(flat, v.Arr...)
	}

	return c.inner.Write(w, flat)
}

func (c arrayCodec) Skip(r io.Reader, rows int) error {
	var total uint64

	for i := 0; i < rows; i++ {
		var buf [8]byte
		if err := readFull(r, buf[:]); err != nil {
			return err
		}

		total = uint64(buf[0]) | uint64(buf[1])<<8 | uint64(buf[2])<<16 | uint64(buf[3])<<24 |
			uint64(buf[4])<<32 | uint64(buf[5])<<40 | uint64(buf[6])<<48 | uint64(buf[7])<<56
	}

	return c.inner.Skip(r, int(total))
}
