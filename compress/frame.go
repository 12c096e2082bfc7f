package compress

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/0xMihalich/chnative/errs"
)

const (
	hashSize   = 16 // CityHash128 prefix
	headerSize = 9  // method(1) + compressed_size(4) + uncompressed_size(4)
)

// Frame is one decoded compression envelope frame.
type Frame struct {
	Method           Method
	CompressedSize   uint32 // payload_len + 9, as stored on the wire
	UncompressedSize uint32
	Payload          []byte // the compressed bytes, i.e. compressed_size - 9 of them
	Hash             [16]byte
	Valid            bool // false iff the recomputed hash did not match Hash
}

// Stats summarizes one frame for inspection/logging.
type Stats struct {
	Method           Method
	CompressedBytes  int
	UncompressedBytes int
	Ratio            float64
	Valid            bool
}

// Stats computes this frame's compression statistics.
func (f *Frame) Stats() Stats {
	ratio := 0.0
	if f.UncompressedSize > 0 {
		ratio = float64(f.CompressedSize-headerSize) / float64(f.UncompressedSize)
	}

	return Stats{
		Method:            f.Method,
		CompressedBytes:   int(f.CompressedSize) - headerSize,
		UncompressedBytes: int(f.UncompressedSize),
		Ratio:             ratio,
		Valid:             f.Valid,
	}
}

func (f *Frame) String() string {
	status := "valid"
	if !f.Valid {
		status = "hash-mismatch"
	}

	return fmt.Sprintf("Frame(method=%s, compressed=%d, uncompressed=%d, %s)",
		f.Method, f.CompressedSize-headerSize, f.UncompressedSize, status)
}

// ReadFrame reads one frame from r. A clean EOF before any byte of the
// frame is read is returned as io.EOF; any later EOF is ErrTruncatedBlock.
func ReadFrame(r io.Reader) (*Frame, error) {
	var hash [16]byte
	if _, err := io.ReadFull(r, hash[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}

		return nil, fmt.Errorf("%w: reading frame hash: %v", errs.ErrTruncatedBlock, err)
	}

	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("%w: reading frame header: %v", errs.ErrTruncatedBlock, err)
	}

	method := Method(header[0])
	compressedSize := binary.LittleEndian.Uint32(header[1:5])
	uncompressedSize := binary.LittleEndian.Uint32(header[5:9])

	if compressedSize < headerSize {
		return nil, fmt.Errorf("%w: compressed_size %d smaller than header", errs.ErrTruncatedBlock, compressedSize)
	}

	payload := make([]byte, compressedSize-headerSize)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("%w: reading frame payload: %v", errs.ErrTruncatedBlock, err)
	}

	want := WireHash128(header[:], payload)

	return &Frame{
		Method:           method,
		CompressedSize:   compressedSize,
		UncompressedSize: uncompressedSize,
		Payload:          payload,
		Hash:             hash,
		Valid:            want == hash,
	}, nil
}

// WriteFrame compresses data with method at level and writes the resulting
// frame to w.
func WriteFrame(w io.Writer, method Method, data []byte, level int) error {
	codec, err := CodecFor(method)
	if err != nil {
		return err
	}

	payload, err := codec.Compress(data, level)
	if err != nil {
		return err
	}

	var header [headerSize]byte
	header[0] = byte(method)
	binary.LittleEndian.PutUint32(header[1:5], uint32(len(payload)+headerSize))
	binary.LittleEndian.PutUint32(header[5:9], uint32(len(data)))

	hash := WireHash128(header[:], payload)

	if _, err := w.Write(hash[:]); err != nil {
		return err
	}

	if _, err := w.Write(header[:]); err != nil {
		return err
	}

	_, err = w.Write(payload)

	return err
}

// Decode decompresses this frame's payload back to the original bytes.
func (f *Frame) Decode() ([]byte, error) {
	codec, err := CodecFor(f.Method)
	if err != nil {
		return nil, err
	}

	return codec.Decompress(f.Payload, int(f.UncompressedSize))
}

// Recode recomputes this frame's hash from its current header and payload,
// clearing a hash-mismatch flag without touching the compressed bytes.
func (f *Frame) Recode() {
	var header [headerSize]byte
	header[0] = byte(f.Method)
	binary.LittleEndian.PutUint32(header[1:5], f.CompressedSize)
	binary.LittleEndian.PutUint32(header[5:9], f.UncompressedSize)

	f.Hash = WireHash128(header[:], f.Payload)
	f.Valid = true
}

// Repair decompresses and re-encodes the frame's payload with method,
// fixing both a stale compressed_size and a bad hash in one pass. It is a
// best-effort recovery for frames with historically unreliable metadata,
// not a substitute for rejecting genuinely corrupt input.
func (f *Frame) Repair(method Method, level int) error {
	data, err := f.Decode()
	if err != nil {
		return err
	}

	codec, err := CodecFor(method)
	if err != nil {
		return err
	}

	payload, err := codec.Compress(data, level)
	if err != nil {
		return err
	}

	f.Method = method
	f.Payload = payload
	f.CompressedSize = uint32(len(payload) + headerSize)
	f.UncompressedSize = uint32(len(data))
	f.Recode()

	return nil
}

// RepairStream reads frames from r, repairs any with a hash mismatch by
// recomputing the hash in place (Frame.Recode, not re-encoding the
// payload), and writes every frame to w. It stops at the first clean EOF.
func RepairStream(w io.Writer, r io.Reader) (repaired int, err error) {
	for {
		f, err := ReadFrame(r)
		if err == io.EOF {
			return repaired, nil
		}

		if err != nil {
			return repaired, err
		}

		if !f.Valid {
			f.Recode()
			repaired++
		}

		if err := writeFrameBytes(w, f); err != nil {
			return repaired, err
		}
	}
}

func writeFrameBytes(w io.Writer, f *Frame) error {
	if _, err := w.Write(f.Hash[:]); err != nil {
		return err
	}

	var header [headerSize]byte
	header[0] = byte(f.Method)
	binary.LittleEndian.PutUint32(header[1:5], f.CompressedSize)
	binary.LittleEndian.PutUint32(header[5:9], f.UncompressedSize)

	if _, err := w.Write(header[:]); err != nil {
		return err
	}

	_, err := w.Write(f.Payload)

	return err
}
