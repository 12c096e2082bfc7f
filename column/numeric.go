package column

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/0xMihalich/chnative/chtype"
	"github.com/0xMihalich/chnative/table"
)

// float32Codec encodes IEEE-754 binary32, little-endian (spec §4.2 "Float32").
type float32Codec struct{}

func (float32Codec) Read(r io.Reader, rows int) ([]table.Value, error) {
	out := make([]table.Value, rows)
	buf := make([]byte, 4*rows)

	if err := readFull(r, buf); err != nil {
		return nil, err
	}

	for i := 0; i < rows; i++ {
		bits := binary.LittleEndian.Uint32(buf[i*4:])
		out[i] = table.Float32(chtype.KindFloat32, math.Float32frombits(bits))
	}

	return out, nil
}

func (float32Codec) Write(w io.Writer, vals []table.Value) error {
	buf := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v.F32))
	}

	_, err := w.Write(buf)

	return err
}

func (float32Codec) Skip(r io.Reader, rows int) error { return skipBytes(r, 4*int64(rows)) }

// float64Codec encodes IEEE-754 binary64, little-endian (spec §4.2 "Float64").
type float64Codec struct{}

func (float64Codec) Read(r io.Reader, rows int) ([]table.Value, error) {
	out := make([]table.Value, rows)
	buf := make([]byte, 8*rows)

	if err := readFull(r, buf); err != nil {
		return nil, err
	}

	for i := 0; i < rows; i++ {
		bits := binary.LittleEndian.Uint64(buf[i*8:])
		out[i] = table.Float64(math.Float64frombits(bits))
	}

	return out, nil
}

func (float64Codec) Write(w io.Writer, vals []table.Value) error {
	buf := make([]byte, 8*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v.F64))
	}

	_, err := w.Write(buf)

	return err
}

func (float64Codec) Skip(r io.Reader, rows int) error { return skipBytes(r, 8*int64(rows)) }

// bfloat16Codec encodes the upper 16 bits of an IEEE-754 binary32 value, i.e.
// the truncated-mantissa brain-float format ClickHouse stores BFloat16 as
// (spec §4.2 "BFloat16": 2 bytes, equivalent to Float32 >> 16).
type bfloat16Codec struct{}

func bf16ToFloat32(bits uint16) float32 {
	return math.Float32frombits(uint32(bits) << 16)
}

func float32ToBf16(f float32) uint16 {
	return uint16(math.Float32bits(f) >> 16)
}

func (bfloat16Codec) Read(r io.Reader, rows int) ([]table.Value, error) {
	out := make([]table.Value, rows)
	buf := make([]byte, 2*rows)

	if err := readFull(r, buf); err != nil {
		return nil, err
	}

	for i := 0; i < rows; i++ {
		bits := binary.LittleEndian.Uint16(buf[i*2:])
		out[i] = table.Float32(chtype.KindBFloat16, bf16ToFloat32(bits))
	}

	return out, nil
}

func (bfloat16Codec) Write(w io.Writer, vals []table.Value) error {
	buf := make([]byte, 2*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint16(buf[i*2:], float32ToBf16(v.F32))
	}

	_, err := w.Write(buf)

	return err
}

func (bfloat16Codec) Skip(r io.Reader, rows int) error { return skipBytes(r, 2*int64(rows)) }

// boolCodec encodes Bool as a single byte, 0x00 or 0x01 (spec §4.2 "Bool").
type boolCodec struct{}

func (boolCodec) Read(r io.Reader, rows int) ([]table.Value, error) {
	out := make([]table.Value, rows)
	buf := make([]byte, rows)

	if err := readFull(r, buf); err != nil {
		return nil, err
	}

	for i := 0; i < rows; i++ {
		out[i] = table.BoolValue(buf[i] != 0)
	}

	return out, nil
}

func (boolCodec) Write(w io.Writer, vals []table.Value) error {
	buf := make([]byte, len(vals))
	for i, v := range vals {
		if v.Bool {
			buf[i] = 1
		}
	}

	_, err := w.Write(buf)

	return err
}

func (boolCodec) Skip(r io.Reader, rows int) error { return skipBytes(r, int64(rows)) }
