package compress

import (
	"io"

	"github.com/0xMihalich/chnative/chlog"
)

// Writer wraps an underlying sink so every top-level Write call compresses
// its argument into exactly one frame (spec §4.7 "Write path": "No
// re-chunking — one caller-visible write maps to one frame on the wire").
type Writer struct {
	w      io.Writer
	Method Method
	Level  int
	sink   chlog.Sink
}

// NewWriter wraps w, compressing every Write call with method at level.
func NewWriter(w io.Writer, method Method, level int) *Writer {
	return &Writer{w: w, Method: method, Level: level, sink: chlog.NoopSink{}}
}

// SetSink installs sink for subsequent logging from this Writer.
func (w *Writer) SetSink(sink chlog.Sink) { w.sink = sink }

// Write compresses p into one frame and writes it to the underlying sink.
// It always reports len(p) consumed on success, matching io.Writer's
// contract even though the bytes on the wire differ in length.
func (w *Writer) Write(p []byte) (int, error) {
	if err := WriteFrame(w.w, w.Method, p, w.Level); err != nil {
		return 0, err
	}

	chlog.Debug(w.sink, "wrote compression frame", map[string]any{
		"method":       w.Method.String(),
		"uncompressed": len(p),
	})

	return len(p), nil
}

// Close closes the underlying sink if it implements io.Closer.
func (w *Writer) Close() error {
	if c, ok := w.w.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
