package compress

import "io"

// Peeker is the minimal lookahead a Reader needs to sniff a stream without
// consuming it; *bufio.Reader (what chio.Open returns) satisfies it.
type Peeker interface {
	Peek(n int) ([]byte, error)
}

// Sniff reports whether the next bytes available from r look like a
// compressed block envelope: a CityHash128 prefix followed by a recognized
// method byte at offset 16 (spec §4.7 frame header). It is the dispatch a
// caller runs after chio.Open has stripped any gzip wrapping, to decide
// between handing r to NewReader (compressed) or stream.NewReader directly
// (plain Native blocks).
//
// Sniff never consumes bytes from r: if r does not implement Peek, it
// conservatively reports false rather than risk misreading an un-rewindable
// stream.
func Sniff(r io.Reader) bool {
	p, ok := r.(Peeker)
	if !ok {
		return false
	}

	header, err := p.Peek(headerSize + hashSize)
	if err != nil {
		return false
	}

	return Method(header[hashSize]).Recognized()
}
