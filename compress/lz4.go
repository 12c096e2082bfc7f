package compress

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances; they carry an internal
// hash table that is worth reusing across frames.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// lz4Codec implements block-mode LZ4, matching ClickHouse's own choice of
// the header-less LZ4 block format (the frame envelope already carries the
// compressed/uncompressed sizes, so LZ4's own frame header would be
// redundant).
type lz4Codec struct{}

func (lz4Codec) Compress(data []byte, level int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	if n == 0 {
		// Incompressible input: lz4.CompressBlock returns n == 0 rather
		// than an expanded block. The block format allows a final
		// sequence with no match, so encode data as one literal-only
		// sequence — still a well-formed LZ4 block, just uncompressed.
		return encodeLiteralOnlyBlock(data), nil
	}

	return dst[:n], nil
}

// encodeLiteralOnlyBlock builds a minimal LZ4 block consisting of a single
// literal run and no match, which the format permits as a trailing
// sequence. Used when the real encoder declines to compress data that
// would not shrink, so the payload still decodes as valid LZ4.
func encodeLiteralOnlyBlock(data []byte) []byte {
	litLen := len(data)

	dst := make([]byte, 0, litLen+litLen/255+2)

	if litLen < 15 {
		dst = append(dst, byte(litLen<<4))
	} else {
		dst = append(dst, 0xF0)

		n := litLen - 15
		for n >= 255 {
			dst = append(dst, 0xFF)
			n -= 255
		}

		dst = append(dst, byte(n))
	}

	return append(dst, data...)
}

// Decompress tries the declared size first, then falls back to a doubling
// buffer search (spec §4.7 "Decompression fallback": historical files may
// lie about the uncompressed size).
func (lz4Codec) Decompress(data []byte, expectedSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	if expectedSize > 0 {
		buf := make([]byte, expectedSize)
		if n, err := lz4.UncompressBlock(data, buf); err == nil {
			return buf[:n], nil
		}
	}

	bufSize := len(data) * 4
	const maxSize = 128 * 1024 * 1024

	for bufSize <= maxSize {
		buf := make([]byte, bufSize)

		n, err := lz4.UncompressBlock(data, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxSize {
				bufSize *= 2

				continue
			}

			return nil, err
		}

		return buf[:n], nil
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}
