// Package inspect produces a metadata summary of a Native stream without
// materializing most of its column values, grounded on the reference
// implementation's DataInfo: a compact report of column names, declared
// types, and total row count gathered by walking the stream once.
package inspect

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/0xMihalich/chnative/block"
)

// ColumnInfo describes one column's declared name and type text as written
// in the stream, taken from the first block of a stream.
type ColumnInfo struct {
	Name string
	Type string
}

// Summary is a metadata-only description of a Native stream: its columns
// (from the first block) and the total row count across every block.
type Summary struct {
	Columns   []ColumnInfo
	NumBlocks int
	TotalRows int
}

// Summarize walks every block in r, decoding the first block's column
// headers (and its values, which ReadFrom always decodes) and skipping
// every later block's payload without materializing it.
func Summarize(r io.Reader) (*Summary, error) {
	s := &Summary{}

	first, err := block.ReadFrom(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return s, nil
		}

		return nil, fmt.Errorf("inspect: reading first block: %w", err)
	}

	s.NumBlocks = 1
	s.TotalRows = first.NumRows
	s.Columns = make([]ColumnInfo, 0, len(first.Columns))

	for _, c := range first.Columns {
		s.Columns = append(s.Columns, ColumnInfo{Name: c.Name, Type: c.Type})
	}

	for {
		rows, err := block.SkipCounting(r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return s, nil
			}

			return nil, fmt.Errorf("inspect: skipping block %d: %w", s.NumBlocks, err)
		}

		s.NumBlocks++
		s.TotalRows += rows
	}
}

// String renders a human-readable report of the summary.
func (s *Summary) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Data info:\n──────────\n")
	fmt.Fprintf(&b, "Total columns: %d\n", len(s.Columns))
	fmt.Fprintf(&b, "Total rows: %d\n", s.TotalRows)
	fmt.Fprintf(&b, "Total blocks: %d\n\n", s.NumBlocks)
	fmt.Fprintf(&b, "Columns description:\n────────────────────\n")

	for i, c := range s.Columns {
		fmt.Fprintf(&b, "%3d. %s [ %s ]\n", i+1, c.Name, c.Type)
	}

	return b.String()
}
