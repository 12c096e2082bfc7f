package column

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/0xMihalich/chnative/chtype"
	"github.com/0xMihalich/chnative/errs"
	"github.com/0xMihalich/chnative/table"
)

// dateCodec encodes Date as days-since-epoch, UInt16 (spec §4.2 "Date").
type dateCodec struct{}

func (dateCodec) Read(r io.Reader, rows int) ([]table.Value, error) {
	out := make([]table.Value, rows)
	buf := make([]byte, 2*rows)

	if err := readFull(r, buf); err != nil {
		return nil, err
	}

	for i := 0; i < rows; i++ {
		out[i] = table.UInt(chtype.KindDate, uint64(binary.LittleEndian.Uint16(buf[i*2:])))
	}

	return out, nil
}

func (dateCodec) Write(w io.Writer, vals []table.Value) error {
	buf := make([]byte, 2*len(vals))

	for i, v := range vals {
		if v.U64 > 0xFFFF {
			return fmt.Errorf("%w: Date day %d overflows UInt16", errs.ErrValueOutOfRange, v.U64)
		}

		binary.LittleEndian.PutUint16(buf[i*2:], uint16(v.U64))
	}

	_, err := w.Write(buf)

	return err
}

func (dateCodec) Skip(r io.Reader, rows int) error { return skipBytes(r, 2*int64(rows)) }

// date32Codec encodes Date32 as days-since-epoch, Int32 (spec §4.2 "Date32").
type date32Codec struct{}

func (date32Codec) Read(r io.Reader, rows int) ([]table.Value, error) {
	out := make([]table.Value, rows)
	buf := make([]byte, 4*rows)

	if err := readFull(r, buf); err != nil {
		return nil, err
	}

	for i := 0; i < rows; i++ {
		out[i] = table.Int(chtype.KindDate32, int64(int32(binary.LittleEndian.Uint32(buf[i*4:]))))
	}

	return out, nil
}

func (date32Codec) Write(w io.Writer, vals []table.Value) error {
	buf := make([]byte, 4*len(vals))

	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(int32(v.I64)))
	}

	_, err := w.Write(buf)

	return err
}

func (date32Codec) Skip(r io.Reader, rows int) error { return skipBytes(r, 4*int64(rows)) }

// dateTimeCodec encodes DateTime as seconds-since-epoch, Int32 wire width
// (spec §4.2 "DateTime"); the optional timezone is carried only as metadata
// for downstream rendering, not encoded on the wire.
type dateTimeCodec struct {
	tz string
}

func (c dateTimeCodec) Read(r io.Reader, rows int) ([]table.Value, error) {
	out := make([]table.Value, rows)
	buf := make([]byte, 4*rows)

	if err := readFull(r, buf); err != nil {
		return nil, err
	}

	for i := 0; i < rows; i++ {
		out[i] = table.Int(chtype.KindDateTime, int64(int32(binary.LittleEndian.Uint32(buf[i*4:]))))
	}

	return out, nil
}

func (c dateTimeCodec) Write(w io.Writer, vals []table.Value) error {
	buf := make([]byte, 4*len(vals))

	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(int32(v.I64)))
	}

	_, err := w.Write(buf)

	return err
}

func (c dateTimeCodec) Skip(r io.Reader, rows int) error { return skipBytes(r, 4*int64(rows)) }

// dateTime64Codec encodes DateTime64(P) as ticks-since-epoch at 10^-P second
// resolution, Int64 wire width (spec §4.2 "DateTime64"; precision 0 and
// precision >= 9 are rejected at descriptor-parse time).
type dateTime64Codec struct {
	precision int
	tz        string
}

func (c dateTime64Codec) Read(r io.Reader, rows int) ([]table.Value, error) {
	out := make([]table.Value, rows)
	buf := make([]byte, 8*rows)

	if err := readFull(r, buf); err != nil {
		return nil, err
	}

	for i := 0; i < rows; i++ {
		out[i] = table.Int(chtype.KindDateTime64, int64(binary.LittleEndian.Uint64(buf[i*8:])))
	}

	return out, nil
}

func (c dateTime64Codec) Write(w io.Writer, vals []table.Value) error {
	buf := make([]byte, 8*len(vals))

	for i, v := range vals {
		binary.LittleEndian.PutUint64(buf[i*8:], uint64(v.I64))
	}

	_, err := w.Write(buf)

	return err
}

func (c dateTime64Codec) Skip(r io.Reader, rows int) error { return skipBytes(r, 8*int64(rows)) }
