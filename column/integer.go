package column

import (
	"fmt"
	"io"
	"math/big"

	"github.com/holiman/uint256"

	"github.com/0xMihalich/chnative/chtype"
	"github.com/0xMihalich/chnative/errs"
	"github.com/0xMihalich/chnative/table"
)

// fixedIntCodec handles UInt8/16/32/64 and Int8/16/32/64: two's-complement,
// little-endian, fixed width by table (spec §4.2 "Integers").
type fixedIntCodec struct {
	kind   chtype.Kind
	width  int
	signed bool
}

func (c fixedIntCodec) readRaw(r io.Reader) (uint64, error) {
	var buf [8]byte
	if err := readFull(r, buf[:c.width]); err != nil {
		return 0, err
	}

	var v uint64
	for i := c.width - 1; i >= 0; i-- {
		v = v<<8 | uint64(buf[i])
	}

	return v, nil
}

func (c fixedIntCodec) writeRaw(w io.Writer, v uint64) error {
	var buf [8]byte
	for i := 0; i < c.width; i++ {
		buf[i] = byte(v)
		v >>= 8
	}

	_, err := w.Write(buf[:c.width])

	return err
}

func (c fixedIntCodec) Read(r io.Reader, rows int) ([]table.Value, error) {
	out := make([]table.Value, rows)

	for i := 0; i < rows; i++ {
		raw, err := c.readRaw(r)
		if err != nil {
			return nil, err
		}

		if c.signed {
			shift := uint(64 - c.width*8)
			sv := int64(raw)
			if shift > 0 {
				sv = (sv << shift) >> shift
			}

			out[i] = table.Int(c.kind, sv)
		} else {
			out[i] = table.UInt(c.kind, raw)
		}
	}

	return out, nil
}

func (c fixedIntCodec) Write(w io.Writer, vals []table.Value) error {
	for _, v := range vals {
		var raw uint64
		if c.signed {
			if err := c.checkSignedRange(v.I64); err != nil {
				return err
			}

			raw = uint64(v.I64)
		} else {
			if err := c.checkUnsignedRange(v.U64); err != nil {
				return err
			}

			raw = v.U64
		}

		if err := c.writeRaw(w, raw); err != nil {
			return err
		}
	}

	return nil
}

func (c fixedIntCodec) Skip(r io.Reader, rows int) error {
	return skipBytes(r, int64(c.width)*int64(rows))
}

func (c fixedIntCodec) checkSignedRange(v int64) error {
	if c.width >= 8 {
		return nil
	}

	bits := uint(c.width * 8)
	max := int64(1)<<(bits-1) - 1
	min := -(int64(1) << (bits - 1))
	if v < min || v > max {
		return fmt.Errorf("%w: %d does not fit %s", errs.ErrValueOutOfRange, v, c.kind)
	}

	return nil
}

func (c fixedIntCodec) checkUnsignedRange(v uint64) error {
	if c.width >= 8 {
		return nil
	}

	bits := uint(c.width * 8)
	max := uint64(1)<<bits - 1
	if v > max {
		return fmt.Errorf("%w: %d does not fit %s", errs.ErrValueOutOfRange, v, c.kind)
	}

	return nil
}

// wideIntCodec handles UInt128/256 and Int128/256. Unsigned values use
// holiman/uint256 as the 256-bit arithmetic fast path; signed values need
// two's-complement semantics uint256.Int does not model and fall back to
// math/big (documented in DESIGN.md).
type wideIntCodec struct {
	kind   chtype.Kind
	width  int // 16 or 32
	signed bool
}

func reverseInPlace(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

func (c wideIntCodec) Read(r io.Reader, rows int) ([]table.Value, error) {
	out := make([]table.Value, rows)

	for i := 0; i < rows; i++ {
		buf := make([]byte, c.width)
		if err := readFull(r, buf); err != nil {
			return nil, err
		}

		be := append([]byte(nil), buf...)
		reverseInPlace(be)

		if !c.signed {
			var u uint256.Int
			u.SetBytes(be)
			out[i] = table.BigInt(c.kind, u.ToBig())

			continue
		}

		v := new(big.Int).SetBytes(be)
		mod := new(big.Int).Lsh(big.NewInt(1), uint(c.width*8))
		half := new(big.Int).Lsh(big.NewInt(1), uint(c.width*8-1))
		if v.Cmp(half) >= 0 {
			v.Sub(v, mod)
		}

		out[i] = table.BigInt(c.kind, v)
	}

	return out, nil
}

func (c wideIntCodec) Write(w io.Writer, vals []table.Value) error {
	mod := new(big.Int).Lsh(big.NewInt(1), uint(c.width*8))

	for _, v := range vals {
		val := v.Big
		if val == nil {
			val = big.NewInt(0)
		}

		var be []byte

		if !c.signed {
			if val.Sign() < 0 || val.BitLen() > c.width*8 {
				return fmt.Errorf("%w: %s does not fit %s", errs.ErrValueOutOfRange, val, c.kind)
			}

			var u uint256.Int
			u.SetFromBig(val)
			full := u.Bytes32()
			be = full[32-c.width:]
		} else {
			half := new(big.Int).Lsh(big.NewInt(1), uint(c.width*8-1))
			negHalf := new(big.Int).Neg(half)
			if val.Cmp(negHalf) < 0 || val.Cmp(new(big.Int).Sub(half, big.NewInt(1))) > 0 {
				return fmt.Errorf("%w: %s does not fit %s", errs.ErrValueOutOfRange, val, c.kind)
			}

			enc := new(big.Int).Mod(val, mod)
			fixed := make([]byte, c.width)
			b := enc.Bytes()
			copy(fixed[c.width-len(b):], b)
			be = fixed
		}

		le := append([]byte(nil), be...)
		reverseInPlace(le)

		if _, err := w.Write(le); err != nil {
			return err
		}
	}

	return nil
}

func (c wideIntCodec) Skip(r io.Reader, rows int) error {
	return skipBytes(r, int64(c.width)*int64(rows))
}
