// Package stream iterates Native blocks over a byte stream and chunks a
// table.Table into row-bounded blocks on the write side.
package stream

import (
	"fmt"
	"io"

	"github.com/0xMihalich/chnative/block"
	"github.com/0xMihalich/chnative/chlog"
	"github.com/0xMihalich/chnative/errs"
	"github.com/0xMihalich/chnative/infer"
	"github.com/0xMihalich/chnative/table"
)

// MinBlockRows and MaxBlockRows bound the block_rows configuration option
// (spec §4.6: "block_rows MUST be in [1, 1_048_576]").
const (
	MinBlockRows = 1
	MaxBlockRows = 1_048_576

	// DefaultBlockRows is the target row count per emitted block absent an
	// explicit override (spec §6 configuration table).
	DefaultBlockRows = 65_400
)

// ValidateBlockRows rejects an out-of-range block_rows value with ConfigError.
func ValidateBlockRows(rows int) error {
	if rows < MinBlockRows || rows > MaxBlockRows {
		return fmt.Errorf("%w: block_rows %d outside [%d, %d]", errs.ErrConfig, rows, MinBlockRows, MaxBlockRows)
	}

	return nil
}

// Reader iterates blocks from an underlying Native byte stream.
type Reader struct {
	r    io.Reader
	sink chlog.Sink
}

// NewReader wraps r for block-by-block iteration.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, sink: chlog.NoopSink{}}
}

// SetSink installs sink for subsequent logging from this Reader.
func (s *Reader) SetSink(sink chlog.Sink) { s.sink = sink }

// Next reads the next block, returning io.EOF once the stream ends cleanly
// at a block boundary.
func (s *Reader) Next() (*block.Block, error) {
	b, err := block.ReadFrom(s.r)
	if err != nil {
		return nil, err
	}

	chlog.Debug(s.sink, "read block", map[string]any{"rows": b.NumRows, "columns": len(b.Columns)})

	return b, nil
}

// Skip advances past the next block without decoding it.
func (s *Reader) Skip() error {
	return block.Skip(s.r)
}

// ReadTable concatenates every block in r into one in-memory table,
// the read-side convenience counterpart to Writer.WriteTable.
func ReadTable(r io.Reader) (*table.Memory, error) {
	reader := NewReader(r)

	var cols []table.Column
	byName := make(map[string]int)

	for {
		b, err := reader.Next()
		if err != nil {
			if err == io.EOF {
				break
			}

			return nil, err
		}

		for _, bc := range b.Columns {
			idx, ok := byName[bc.Name]
			if !ok {
				idx = len(cols)
				byName[bc.Name] = idx
				cols = append(cols, table.Column{Name: bc.Name, Type: bc.Type})
			}

			cols[idx].Values = append(cols[idx].Values, bc.Values...)
		}
	}

	return table.NewMemory(cols)
}

// Writer chunks a table.Table into row-bounded blocks and writes each as
// one Native block to the underlying sink, in table row order.
type Writer struct {
	w         io.Writer
	blockRows int
	sink      chlog.Sink
}

// NewWriter wraps w, chunking writes at blockRows rows per block. blockRows
// must already satisfy ValidateBlockRows; NewWriter does not re-validate it
// so callers can share one validated configuration across writers.
func NewWriter(w io.Writer, blockRows int) *Writer {
	return &Writer{w: w, blockRows: blockRows, sink: chlog.NoopSink{}}
}

// SetSink installs sink for subsequent logging from this Writer.
func (s *Writer) SetSink(sink chlog.Sink) { s.sink = sink }

// WriteTable chunks t and writes one block per chunk, in order.
func (s *Writer) WriteTable(t table.Table) error {
	chunks := table.Chunks(t, s.blockRows)

	chlog.Info(s.sink, "writing table", map[string]any{"blocks": len(chunks), "block_rows": s.blockRows})

	for _, chunk := range chunks {
		if err := s.WriteChunk(chunk); err != nil {
			return err
		}
	}

	return nil
}

// WriteChunk writes a single pre-chunked block. A column whose Type is left
// empty is advisory-inferred from its own values before encoding (spec:
// inference is the fallback a caller-supplied descriptor always overrides).
func (s *Writer) WriteChunk(chunk table.Chunk) error {
	if err := resolveTypes(chunk.Columns); err != nil {
		return err
	}

	if err := block.WriteTo(s.w, chunk); err != nil {
		return err
	}

	chlog.Debug(s.sink, "wrote block", map[string]any{"rows": chunk.NumRows, "columns": len(chunk.Columns)})

	return nil
}

func resolveTypes(cols []table.Column) error {
	for i, c := range cols {
		if c.Type != "" {
			continue
		}

		desc, err := infer.Column(c.Values)
		if err != nil {
			return fmt.Errorf("stream: inferring type for column %q: %w", c.Name, err)
		}

		cols[i].Type = desc.String()
	}

	return nil
}
