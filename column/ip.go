package column

import (
	"io"
	"net/netip"

	"github.com/0xMihalich/chnative/chtype"
	"github.com/0xMihalich/chnative/errs"
	"github.com/0xMihalich/chnative/table"
)

// ipv4Codec encodes IPv4 as 4 bytes in reversed (big-to-little) octet order
// (spec §4.2 "IPv4").
type ipv4Codec struct{}

func (ipv4Codec) Read(r io.Reader, rows int) ([]table.Value, error) {
	out := make([]table.Value, rows)
	buf := make([]byte, 4*rows)

	if err := readFull(r, buf); err != nil {
		return nil, err
	}

	for i := 0; i < rows; i++ {
		b := buf[i*4 : (i+1)*4]
		addr := netip.AddrFrom4([4]byte{b[3], b[2], b[1], b[0]})
		out[i] = table.Value{Kind: chtype.KindIPv4, IP: addr}
	}

	return out, nil
}

func (ipv4Codec) Write(w io.Writer, vals []table.Value) error {
	buf := make([]byte, 4*len(vals))

	for i, v := range vals {
		if !v.IP.Is4() {
			return errs.ErrTypeMismatch
		}

		a4 := v.IP.As4()
		buf[i*4+0] = a4[3]
		buf[i*4+1] = a4[2]
		buf[i*4+2] = a4[1]
		buf[i*4+3] = a4[0]
	}

	_, err := w.Write(buf)

	return err
}

func (ipv4Codec) Skip(r io.Reader, rows int) error { return skipBytes(r, 4*int64(rows)) }

// ipv6Codec encodes IPv6 as 16 raw bytes, network byte order, no reordering
// (spec §4.2 "IPv6").
type ipv6Codec struct{}

func (ipv6Codec) Read(r io.Reader, rows int) ([]table.Value, error) {
	out := make([]table.Value, rows)
	buf := make([]byte, 16*rows)

	if err := readFull(r, buf); err != nil {
		return nil, err
	}

	for i := 0; i < rows; i++ {
		var a16 [16]byte
		copy(a16[:], buf[i*16:(i+1)*16])
		out[i] = table.Value{Kind: chtype.KindIPv6, IP: netip.AddrFrom16(a16)}
	}

	return out, nil
}

func (ipv6Codec) Write(w io.Writer, vals []table.Value) error {
	buf := make([]byte, 16*len(vals))

	for i, v := range vals {
		a16 := v.IP.As16()
		copy(buf[i*16:], a16[:])
	}

	_, err := w.Write(buf)

	return err
}

func (ipv6Codec) Skip(r io.Reader, rows int) error { return skipBytes(r, 16*int64(rows)) }
