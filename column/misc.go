package column

import (
	"io"

	"github.com/0xMihalich/chnative/chtype"
	"github.com/0xMihalich/chnative/table"
)

// nothingCodec encodes Nothing as a single placeholder byte per row, value
// 0x30 on write (resolved Open Question, matching the reference's choice of
// the ASCII digit '0' rather than a zero byte).
type nothingCodec struct{}

func (nothingCodec) Read(r io.Reader, rows int) ([]table.Value, error) {
	out := make([]table.Value, rows)
	buf := make([]byte, rows)

	if err := readFull(r, buf); err != nil {
		return nil, err
	}

	for i := 0; i < rows; i++ {
		out[i] = table.NullValue(chtype.KindNothing)
	}

	return out, nil
}

func (nothingCodec) Write(w io.Writer, vals []table.Value) error {
	buf := make([]byte, len(vals))
	for i := range buf {
		buf[i] = '0'
	}

	_, err := w.Write(buf)

	return err
}

func (nothingCodec) Skip(r io.Reader, rows int) error { return skipBytes(r, int64(rows)) }

// intervalCodec encodes an Interval* count as a signed Int64 (ClickHouse
// represents all Interval units with the same 8-byte wire width; the unit
// itself is metadata carried only in the type descriptor).
type intervalCodec struct {
	unit chtype.IntervalUnit
}

func (c intervalCodec) Read(r io.Reader, rows int) ([]table.Value, error) {
	vals, err := (fixedIntCodec{kind: chtype.KindInterval, width: 8, signed: true}).Read(r, rows)
	if err != nil {
		return nil, err
	}

	return vals, nil
}

func (c intervalCodec) Write(w io.Writer, vals []table.Value) error {
	return (fixedIntCodec{kind: chtype.KindInterval, width: 8, signed: true}).Write(w, vals)
}

func (c intervalCodec) Skip(r io.Reader, rows int) error { return skipBytes(r, 8*int64(rows)) }
