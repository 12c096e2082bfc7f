package column

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/0xMihalich/chnative/chtype"
	"github.com/0xMihalich/chnative/errs"
	"github.com/0xMihalich/chnative/table"
)

// decimalCodec encodes Decimal(P,S) as a signed integer of width 4/8/16/32
// bytes (chosen by precision), value = rawInt / 10^scale. Only the
// canonical Decimal(P,S) form is writable; the Decimal32/64/128/256 alias
// spellings never reach the wire, matching the reference's own choice to
// always write Decimal(P,S) regardless of the alias used to declare it.
type decimalCodec struct {
	precision int
	scale     int
	width     int
}

func (c decimalCodec) fixed() fixedIntCodec {
	return fixedIntCodec{kind: chtype.KindDecimal, width: c.width, signed: true}
}

func (c decimalCodec) wide() wideIntCodec {
	return wideIntCodec{kind: chtype.KindDecimal, width: c.width, signed: true}
}

func (c decimalCodec) Read(r io.Reader, rows int) ([]table.Value, error) {
	divisor := decimal.New(1, int32(c.scale))

	out := make([]table.Value, rows)

	if c.width <= 8 {
		raws, err := c.fixed().Read(r, rows)
		if err != nil {
			return nil, err
		}

		for i, rv := range raws {
			unscaled := decimal.NewFromInt(rv.I64)
			out[i] = table.Value{Kind: chtype.KindDecimal, Dec: unscaled.Div(divisor)}
		}

		return out, nil
	}

	raws, err := c.wide().Read(r, rows)
	if err != nil {
		return nil, err
	}

	for i, rv := range raws {
		unscaled := decimal.NewFromBigInt(rv.Big, 0)
		out[i] = table.Value{Kind: chtype.KindDecimal, Dec: unscaled.Div(divisor)}
	}

	return out, nil
}

func (c decimalCodec) Write(w io.Writer, vals []table.Value) error {
	shift := decimal.New(1, int32(c.scale))

	if c.width <= 8 {
		ints := make([]table.Value, len(vals))
		for i, v := range vals {
			unscaled := v.Dec.Mul(shift).Truncate(0)
			if !unscaled.IsInteger() {
				return fmt.Errorf("%w: %s does not fit Decimal(%d,%d)", errs.ErrValueOutOfRange, v.Dec, c.precision, c.scale)
			}

			ints[i] = table.Int(chtype.KindDecimal, unscaled.IntPart())
		}

		return c.fixed().Write(w, ints)
	}

	ints := make([]table.Value, len(vals))
	for i, v := range vals {
		unscaled := v.Dec.Mul(shift).Truncate(0)
		ints[i] = table.BigInt(chtype.KindDecimal, unscaled.BigInt())
	}

	return c.wide().Write(w, ints)
}

func (c decimalCodec) Skip(r io.Reader, rows int) error {
	return skipBytes(r, int64(c.width)*int64(rows))
}
