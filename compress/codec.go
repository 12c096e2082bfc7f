// Package compress implements ClickHouse's block-level compression frame
// format: a CityHash128-checksummed envelope around NONE/LZ4/ZSTD payloads,
// plus a seekable reader over a concatenation of such frames.
package compress

import (
	"fmt"

	"github.com/0xMihalich/chnative/errs"
)

// Compressor compresses one payload into one frame body.
type Compressor interface {
	Compress(data []byte, level int) ([]byte, error)
}

// Decompressor decompresses one frame body back to its original payload.
//
// expectedSize is the frame's declared uncompressed_size; implementations
// use it as a sizing hint and MUST fall back to a hint-free retry rather
// than fail outright on historical files that lied about it (spec §4.7
// "Decompression fallback").
type Decompressor interface {
	Decompress(data []byte, expectedSize int) ([]byte, error)
}

// Codec combines compression and decompression for one Method.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[Method]Codec{
	MethodNone: noneCodec{},
	MethodLZ4:  lz4Codec{},
	MethodZSTD: zstdCodec{},
}

// CodecFor returns the registered Codec for method, or ErrMethodNotSupported
// for any recognized-but-unimplemented method in the ClickHouse codec
// enumeration (spec §4.7 "Method support").
func CodecFor(m Method) (Codec, error) {
	if c, ok := builtinCodecs[m]; ok {
		return c, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrMethodNotSupported, m)
}
