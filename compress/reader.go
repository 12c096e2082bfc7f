package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/0xMihalich/chnative/chlog"
	"github.com/0xMihalich/chnative/errs"
)

// Reader decompresses a full frame stream into an in-memory buffer and
// exposes it through the sequential-plus-seek interface the block engine
// expects (spec §4.7 "Read path").
type Reader struct {
	buf    *bytes.Reader
	frames []*Frame
	Strict bool // if true, a hash mismatch during loading is a hard error
	sink   chlog.Sink
}

// NewReader reads every frame from r, decompresses each, and concatenates
// the results into one seekable buffer. The frame events logged while
// loading are discarded; use NewReaderWithSink to receive them.
func NewReader(r io.Reader, strict bool) (*Reader, error) {
	return NewReaderWithSink(r, strict, chlog.NoopSink{})
}

// NewReaderWithSink is NewReader, logging frame decode events to sink.
func NewReaderWithSink(r io.Reader, strict bool, sink chlog.Sink) (*Reader, error) {
	var data []byte

	var frames []*Frame

	for {
		f, err := ReadFrame(r)
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, err
		}

		if !f.Valid {
			chlog.Warn(sink, "compression frame hash mismatch", map[string]any{"method": f.Method.String()})

			if strict {
				return nil, fmt.Errorf("%w: method=%s", errs.ErrHashMismatch, f.Method)
			}
		}

		plain, err := f.Decode()
		if err != nil {
			return nil, err
		}

		chlog.Debug(sink, "decoded compression frame", map[string]any{
			"method":      f.Method.String(),
			"compressed":  int(f.CompressedSize),
			"uncompressed": int(f.UncompressedSize),
		})

		data = append(data, plain...)
		frames = append(frames, f)
	}

	return &Reader{buf: bytes.NewReader(data), frames: frames, Strict: strict, sink: sink}, nil
}

// SetSink replaces this Reader's sink. A Reader logs only while its frames
// are loaded by the constructor, so a sink set afterwards receives no events.
func (r *Reader) SetSink(sink chlog.Sink) { r.sink = sink }

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (int, error) { return r.buf.Read(p) }

// ReadAt implements io.ReaderAt, the "read_into" equivalent for positioned
// reads.
func (r *Reader) ReadAt(p []byte, off int64) (int, error) { return r.buf.ReadAt(p, off) }

// Seek implements io.Seeker.
func (r *Reader) Seek(offset int64, whence int) (int64, error) { return r.buf.Seek(offset, whence) }

// Tell reports the current read offset.
func (r *Reader) Tell() int64 {
	pos, _ := r.buf.Seek(0, io.SeekCurrent)

	return pos
}

// Len returns the number of unread bytes remaining in the buffer.
func (r *Reader) Len() int { return r.buf.Len() }

// Frames returns the frames decoded while building this Reader, in stream
// order, for inspection/repair purposes.
func (r *Reader) Frames() []*Frame { return r.frames }
