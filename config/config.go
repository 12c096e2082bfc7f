// Package config holds the top-level driver options recognised by this
// module (spec §6 "Configuration") and the functional-options constructor
// used to build a validated Options value.
package config

import (
	"fmt"
	"io"

	"github.com/0xMihalich/chnative/chio"
	"github.com/0xMihalich/chnative/compress"
	"github.com/0xMihalich/chnative/errs"
	"github.com/0xMihalich/chnative/internal/options"
	"github.com/0xMihalich/chnative/stream"
)

// Options is the resolved, validated configuration for a Native
// reader/writer pair.
type Options struct {
	BlockRows      int
	MakeCompress   bool
	CompressMethod compress.Method
	CompressLevel  int
}

// Default returns the options in effect absent any overrides.
func Default() Options {
	return Options{
		BlockRows:      stream.DefaultBlockRows,
		MakeCompress:   false,
		CompressMethod: compress.MethodNone,
		CompressLevel:  0,
	}
}

// Option mutates an in-progress Options value, optionally failing eagerly.
type Option = options.Option[*Options]

// WithBlockRows overrides the target row count per emitted block, rejecting
// a value outside [1, 1_048_576] at apply time.
func WithBlockRows(rows int) Option {
	return options.New(func(o *Options) error {
		if err := stream.ValidateBlockRows(rows); err != nil {
			return err
		}

		o.BlockRows = rows

		return nil
	})
}

// WithCompression enables the compression envelope on write using method,
// rejecting a method this module cannot compress/decompress.
func WithCompression(method compress.Method) Option {
	return options.New(func(o *Options) error {
		if !method.Supported() {
			return fmt.Errorf("%w: compress_method %s is not a supported write codec", errs.ErrConfig, method)
		}

		o.MakeCompress = true
		o.CompressMethod = method

		return nil
	})
}

// WithCompressLevel overrides the codec level used when MakeCompress is set.
func WithCompressLevel(level int) Option {
	return options.New(func(o *Options) error {
		if level < 0 {
			return fmt.Errorf("%w: compress_level %d must be >= 0", errs.ErrConfig, level)
		}

		o.CompressLevel = level

		return nil
	})
}

// New builds an Options from Default plus opts, applied in order; the
// first option to fail aborts with its error.
func New(opts ...Option) (Options, error) {
	o := Default()

	if err := options.Apply(&o, opts...); err != nil {
		return Options{}, err
	}

	return o, nil
}

// nopCloser is an io.Closer that does nothing, used when NewWriter has no
// compression layer to close.
type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewWriter builds a stream.Writer over w honoring o: blocks are chunked at
// o.BlockRows rows, and, when o.MakeCompress is set, wrapped in a
// compress.Writer using o.CompressMethod/o.CompressLevel before reaching w.
// The returned io.Closer closes that compression layer and must be closed
// once the caller is done writing; it is a no-op when compression is
// disabled.
func NewWriter(w io.Writer, o Options) (*stream.Writer, io.Closer) {
	if !o.MakeCompress {
		return stream.NewWriter(w, o.BlockRows), nopCloser{}
	}

	cw := compress.NewWriter(w, o.CompressMethod, o.CompressLevel)

	return stream.NewWriter(cw, o.BlockRows), cw
}

// OpenReader opens r for reading a Native stream, transparently stripping a
// gzip transport wrapper (chio.Open) and, if what remains looks like a
// compressed block envelope (compress.Sniff), the compression frames too.
// strict controls whether a compressed frame's checksum mismatch aborts the
// read (see compress.NewReaderWithSink).
func OpenReader(r io.Reader, strict bool) (*stream.Reader, error) {
	br, err := chio.Open(r)
	if err != nil {
		return nil, fmt.Errorf("config: opening stream: %w", err)
	}

	if !compress.Sniff(br) {
		return stream.NewReader(br), nil
	}

	cr, err := compress.NewReader(br, strict)
	if err != nil {
		return nil, fmt.Errorf("config: opening compressed frames: %w", err)
	}

	return stream.NewReader(cr), nil
}
