package column

import (
	"io"

	"github.com/google/uuid"

	"github.com/0xMihalich/chnative/chtype"
	"github.com/0xMihalich/chnative/table"
)

// uuidCodec encodes UUID as 16 bytes split into two 8-byte halves, each half
// independently byte-reversed on the wire relative to RFC 4122 byte order
// (spec §4.2 "UUID"); the transform is its own inverse, so Read and Write
// share it.
type uuidCodec struct{}

func swapUUIDHalves(dst, src []byte) {
	for i := 0; i < 8; i++ {
		dst[i] = src[7-i]
	}

	for i := 0; i < 8; i++ {
		dst[8+i] = src[15-i]
	}
}

func (uuidCodec) Read(r io.Reader, rows int) ([]table.Value, error) {
	out := make([]table.Value, rows)
	buf := make([]byte, 16*rows)

	if err := readFull(r, buf); err != nil {
		return nil, err
	}

	for i := 0; i < rows; i++ {
		var wire [16]byte
		swapUUIDHalves(wire[:], buf[i*16:(i+1)*16])

		out[i] = table.Value{Kind: chtype.KindUUID, UUID: uuid.UUID(wire)}
	}

	return out, nil
}

func (uuidCodec) Write(w io.Writer, vals []table.Value) error {
	buf := make([]byte, 16*len(vals))

	for i, v := range vals {
		var wire [16]byte
		id := v.UUID
		swapUUIDHalves(wire[:], id[:])
		copy(buf[i*16:], wire[:])
	}

	_, err := w.Write(buf)

	return err
}

func (uuidCodec) Skip(r io.Reader, rows int) error { return skipBytes(r, 16*int64(rows)) }
