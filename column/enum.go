package column

import (
	"fmt"
	"io"

	"github.com/0xMihalich/chnative/chtype"
	"github.com/0xMihalich/chnative/errs"
	"github.com/0xMihalich/chnative/table"
)

// enumCodec encodes Enum8/Enum16 as a signed integer code (1 or 2 bytes)
// looked up against the descriptor's name/code table (spec §4.2 "Enum8",
// "Enum16"). The decoded Value carries both the resolved name (Str) and the
// raw code (I64) so callers never need to re-resolve it.
type enumCodec struct {
	kind   chtype.Kind
	width  int
	byCode map[int32]string
	byName map[string]int32
}

func (c enumCodec) readCode(r io.Reader) (int32, error) {
	var buf [2]byte
	if err := readFull(r, buf[:c.width]); err != nil {
		return 0, err
	}

	if c.width == 1 {
		return int32(int8(buf[0])), nil
	}

	return int32(int16(uint16(buf[0]) | uint16(buf[1])<<8)), nil
}

func (c enumCodec) writeCode(w io.Writer, code int32) error {
	if c.width == 1 {
		_, err := w.Write([]byte{byte(int8(code))})

		return err
	}

	u := uint16(int16(code))

	_, err := w.Write([]byte{byte(u), byte(u >> 8)})

	return err
}

func (c enumCodec) Read(r io.Reader, rows int) ([]table.Value, error) {
	out := make([]table.Value, rows)

	for i := 0; i < rows; i++ {
		code, err := c.readCode(r)
		if err != nil {
			return nil, err
		}

		name, ok := c.byCode[code]
		if !ok {
			return nil, fmt.Errorf("%w: code %d has no name in %s", errs.ErrInvalidEnumDescriptor, code, c.kind)
		}

		v := table.String(c.kind, []byte(name))
		v.I64 = int64(code)
		out[i] = v
	}

	return out, nil
}

// Write accepts either a name (v.Str) or a code (v.I64), matching names
// taking precedence; a value with neither a known name nor a known code is
// rejected.
func (c enumCodec) Write(w io.Writer, vals []table.Value) error {
	for _, v := range vals {
		code, ok := c.byName[string(v.Str)]
		if !ok {
			code, ok = int32(v.I64), c.hasCode(int32(v.I64))
		}

		if !ok {
			return fmt.Errorf("%w: name %q / code %d has no entry in %s", errs.ErrInvalidEnumDescriptor, v.Str, v.I64, c.kind)
		}

		if err := c.writeCode(w, code); err != nil {
			return err
		}
	}

	return nil
}

func (c enumCodec) hasCode(code int32) bool {
	_, ok := c.byCode[code]

	return ok
}

func (c enumCodec) Skip(r io.Reader, rows int) error {
	return skipBytes(r, int64(c.width)*int64(rows))
}
