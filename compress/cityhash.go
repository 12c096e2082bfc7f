package compress

import (
	"encoding/binary"

	"github.com/go-faster/city"
)

// WireHash128 computes ClickHouse's checksum for a frame's 9-byte header
// plus payload and returns it already in the 16-byte wire layout.
//
// ClickHouse does not use stock CityHash128; it uses the CH128 variant
// go-faster/city exposes for exactly this purpose (the same function
// ClickHouse's own Go driver, ch-go, uses for block checksums). CH128
// returns the 128-bit digest as two uint64 halves; the wire form is each
// half written little-endian, low half first (spec §4.7 "byte-swap each
// 8-byte half" describes the same transform starting from a big-endian
// reference digest).
func WireHash128(header, payload []byte) [16]byte {
	lo, hi := city.CH128(append(append([]byte(nil), header...), payload...))

	var out [16]byte
	binary.LittleEndian.PutUint64(out[0:8], lo)
	binary.LittleEndian.PutUint64(out[8:16], hi)

	return out
}
