// Package varint implements ClickHouse Native's LEB128-style unsigned
// length prefix: the encoding used for column counts, row counts, and
// string lengths throughout the block format.
package varint

import (
	"fmt"
	"io"

	"github.com/0xMihalich/chnative/errs"
)

// MaxLen is the maximum number of bytes a varint can occupy on the wire.
// A 64-bit value needs at most 10 groups of 7 bits.
const MaxLen = 10

// Put encodes v into dst (which must have at least MaxLen bytes) and
// returns the number of bytes written.
func Put(dst []byte, v uint64) int {
	i := 0
	for v >= 0x80 {
		dst[i] = byte(v) | 0x80
		v >>= 7
		i++
	}
	dst[i] = byte(v)

	return i + 1
}

// Append encodes v and appends it to dst, returning the extended slice.
func Append(dst []byte, v uint64) []byte {
	var buf [MaxLen]byte
	n := Put(buf[:], v)

	return append(dst, buf[:n]...)
}

// Encode returns v encoded as a standalone byte slice.
func Encode(v uint64) []byte {
	var buf [MaxLen]byte
	n := Put(buf[:], v)

	return append([]byte(nil), buf[:n]...)
}

// Read decodes a varint from r.
//
// It fails with errs.ErrInvalidVarInt if the 10th byte still carries the
// continuation bit, or if EOF occurs mid-sequence. A clean EOF before any
// byte has been consumed is returned unchanged so callers can treat it as
// a stream boundary.
func Read(r io.Reader) (uint64, error) {
	var (
		x     uint64
		shift uint
		one   [1]byte
	)

	for i := 0; i < MaxLen; i++ {
		if _, err := io.ReadFull(r, one[:]); err != nil {
			if i == 0 && err == io.EOF {
				return 0, io.EOF
			}

			return 0, fmt.Errorf("%w: %v", errs.ErrInvalidVarInt, err)
		}

		b := one[0]
		x |= uint64(b&0x7f) << shift

		if b&0x80 == 0 {
			return x, nil
		}

		shift += 7
	}

	return 0, fmt.Errorf("%w: exceeds %d bytes", errs.ErrInvalidVarInt, MaxLen)
}

// ReadByteReader decodes a varint from a io.ByteReader, avoiding the
// one-byte-at-a-time io.Reader overhead when the caller already has a
// buffered source.
func ReadByteReader(r io.ByteReader) (uint64, error) {
	var x uint64
	var shift uint

	for i := 0; i < MaxLen; i++ {
		b, err := r.ReadByte()
		if err != nil {
			if i == 0 && err == io.EOF {
				return 0, io.EOF
			}

			return 0, fmt.Errorf("%w: %v", errs.ErrInvalidVarInt, err)
		}

		x |= uint64(b&0x7f) << shift

		if b&0x80 == 0 {
			return x, nil
		}

		shift += 7
	}

	return 0, fmt.Errorf("%w: exceeds %d bytes", errs.ErrInvalidVarInt, MaxLen)
}

// Write encodes v and writes it to w.
func Write(w io.Writer, v uint64) error {
	var buf [MaxLen]byte
	n := Put(buf[:], v)
	_, err := w.Write(buf[:n])

	return err
}
