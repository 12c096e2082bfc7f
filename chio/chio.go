// Package chio opens a Native byte stream transparently, whether or not it
// is wrapped in gzip, grounded on the reference implementation's
// NativeTransfer.open: sniff the first two bytes and strip gzip before
// the caller ever sees Native framing (spec §6 "Gzip transport").
package chio

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
)

// gzipMagic is the two leading bytes of every gzip member.
var gzipMagic = [2]byte{0x1f, 0x8b}

// Open wraps r so that a gzip-wrapped stream is transparently decompressed
// before any Native or compressed-frame content is read from it. A stream
// that does not start with the gzip magic is returned unwrapped, buffered
// only enough to have peeked at its first two bytes.
//
// The returned reader is always a *bufio.Reader, gzip-wrapped or not, so a
// caller can Peek it afterward (compress.Sniff relies on this to dispatch
// between compress.NewReader and stream.NewReader without consuming bytes).
func Open(r io.Reader) (*bufio.Reader, error) {
	br := bufio.NewReader(r)

	magic, err := br.Peek(2)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return br, nil
		}

		return nil, fmt.Errorf("chio: sniffing stream header: %w", err)
	}

	if magic[0] == gzipMagic[0] && magic[1] == gzipMagic[1] {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("chio: opening gzip member: %w", err)
		}

		return bufio.NewReader(gz), nil
	}

	return br, nil
}

// Sniff reports whether the leading bytes of b indicate a gzip wrapper,
// without consuming or allocating anything.
func Sniff(b []byte) bool {
	return len(b) >= 2 && b[0] == gzipMagic[0] && b[1] == gzipMagic[1]
}

// WriteCloser is the minimal sink interface a Native writer needs: it must
// be flushed/closed by the caller to finalize a gzip trailer, if one was
// applied.
type WriteCloser interface {
	io.Writer
	io.Closer
}

// nopCloser adapts a plain io.Writer to WriteCloser when no gzip wrapping
// is requested, so callers can always defer Close.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// Create wraps w for writing, applying gzip compression when compressed is
// true. The caller MUST Close the returned WriteCloser to flush a gzip
// trailer; closing a plain passthrough is a no-op.
func Create(w io.Writer, compressed bool) WriteCloser {
	if compressed {
		return gzip.NewWriter(w)
	}

	return nopCloser{w}
}
