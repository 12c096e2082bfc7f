package compress

import (
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdCodec implements ZSTD via klauspost/compress, the pure-Go
// implementation rather than a cgo binding so the module stays cgo-free
// (spec §4.7 "ZSTD (configurable level)").
type zstdCodec struct{}

var zstdDecoderPool = sync.Pool{
	New: func() any {
		d, _ := zstd.NewReader(nil)

		return d
	},
}

var zstdEncoders sync.Map // level int -> *zstd.Encoder

func zstdEncoderForLevel(level int) (*zstd.Encoder, error) {
	if v, ok := zstdEncoders.Load(level); ok {
		return v.(*zstd.Encoder), nil
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(levelToSpeed(level)))
	if err != nil {
		return nil, err
	}

	actual, loaded := zstdEncoders.LoadOrStore(level, enc)
	if loaded {
		enc.Close()

		return actual.(*zstd.Encoder), nil
	}

	return enc, nil
}

// levelToSpeed maps a ClickHouse-style compress_level integer (0 = codec
// default, otherwise a zstd level roughly in [1, 22]) onto klauspost's
// coarser four-tier EncoderLevel.
func levelToSpeed(level int) zstd.EncoderLevel {
	switch {
	case level <= 0:
		return zstd.SpeedDefault
	case level <= 3:
		return zstd.SpeedFastest
	case level <= 9:
		return zstd.SpeedDefault
	case level <= 15:
		return zstd.SpeedBetterCompression
	default:
		return zstd.SpeedBestCompression
	}
}

func (zstdCodec) Compress(data []byte, level int) ([]byte, error) {
	enc, err := zstdEncoderForLevel(level)
	if err != nil {
		return nil, err
	}

	return enc.EncodeAll(data, make([]byte, 0, len(data))), nil
}

func (zstdCodec) Decompress(data []byte, expectedSize int) ([]byte, error) {
	dec, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(dec)

	var dst []byte
	if expectedSize > 0 {
		dst = make([]byte, 0, expectedSize)
	}

	out, err := dec.DecodeAll(data, dst)
	if err != nil {
		return nil, err
	}

	return out, nil
}
