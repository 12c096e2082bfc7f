package column

import (
	"fmt"
	"io"

	"github.com/0xMihalich/chnative/chtype"
	"github.com/0xMihalich/chnative/errs"
	"github.com/0xMihalich/chnative/table"
	"github.com/0xMihalich/chnative/varint"
)

// readStringLen reads one String length prefix. Unlike a top-level block
// boundary, EOF here is always mid-column: even the bare io.EOF varint.Read
// returns on the very first byte is wrapped as ErrTruncatedBlock rather than
// propagated as a clean stream end (mirrors compress.ReadFrame's handling of
// its own nested reads).
func readStringLen(r io.Reader) (uint64, error) {
	n, err := varint.Read(r)
	if err != nil {
		return 0, fmt.Errorf("%w: reading string length: %v", errs.ErrTruncatedBlock, err)
	}

	return n, nil
}

// stringCodec encodes String as a VarInt byte length followed by the raw
// UTF-8 bytes (spec §4.2 "String"); an empty string still writes a single
// zero length byte and no payload.
type stringCodec struct{}

func (stringCodec) Read(r io.Reader, rows int) ([]table.Value, error) {
	out := make([]table.Value, rows)

	for i := 0; i < rows; i++ {
		n, err := readStringLen(r)
		if err != nil {
			return nil, err
		}

		if n == 0 {
			out[i] = table.String(chtype.KindString, nil)

			continue
		}

		buf := make([]byte, n)
		if err := readFull(r, buf); err != nil {
			return nil, err
		}

		out[i] = table.String(chtype.KindString, buf)
	}

	return out, nil
}

func (stringCodec) Write(w io.Writer, vals []table.Value) error {
	for _, v := range vals {
		if err := varint.Write(w, uint64(len(v.Str))); err != nil {
			return err
		}

		if len(v.Str) == 0 {
			continue
		}

		if _, err := w.Write(v.Str); err != nil {
			return err
		}
	}

	return nil
}

func (stringCodec) Skip(r io.Reader, rows int) error {
	for i := 0; i < rows; i++ {
		n, err := readStringLen(r)
		if err != nil {
			return err
		}

		if err := skipBytes(r, int64(n)); err != nil {
			return err
		}
	}

	return nil
}

// fixedStringCodec encodes FixedString(N) as exactly N raw bytes, NUL-padded
// on write when the value is shorter than N (spec §4.2 "FixedString",
// resolved Open Question: padding is NUL, trimming is the caller's choice
// via table.Value.TrimmedStr).
type fixedStringCodec struct {
	n int
}

func (c fixedStringCodec) Read(r io.Reader, rows int) ([]table.Value, error) {
	out := make([]table.Value, rows)
	buf := make([]byte, c.n*rows)

	if err := readFull(r, buf); err != nil {
		return nil, err
	}

	for i := 0; i < rows; i++ {
		cell := make([]byte, c.n)
		copy(cell, buf[i*c.n:(i+1)*c.n])
		out[i] = table.String(chtype.KindFixedString, cell)
	}

	return out, nil
}

func (c fixedStringCodec) Write(w io.Writer, vals []table.Value) error {
	buf := make([]byte, c.n*len(vals))

	for i, v := range vals {
		if len(v.Str) > c.n {
			return errs.ErrValueOutOfRange
		}

		copy(buf[i*c.n:], v.Str)
	}

	_, err := w.Write(buf)

	return err
}

func (c fixedStringCodec) Skip(r io.Reader, rows int) error {
	return skipBytes(r, int64(c.n)*int64(rows))
}
