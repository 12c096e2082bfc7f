// Package block implements the Native Block engine: reading, writing, and
// skipping the (num_columns, num_rows, Column[]) record that is the unit of
// transfer over a Native stream.
package block

import (
	"errors"
	"fmt"
	"io"

	"github.com/0xMihalich/chnative/chtype"
	"github.com/0xMihalich/chnative/column"
	"github.com/0xMihalich/chnative/errs"
	"github.com/0xMihalich/chnative/internal/pool"
	"github.com/0xMihalich/chnative/table"
	"github.com/0xMihalich/chnative/varint"
)

// Column is one decoded column of a Block: its declared name, its type
// descriptor text exactly as read from the stream, and its values.
type Column struct {
	Name string
	Type string
	Values []table.Value
}

// Block is one decoded Native block: an ordered set of equal-length columns.
type Block struct {
	NumRows int
	Columns []Column
}

// ReadFrom reads one block from r.
//
// A clean EOF before any byte of the header is read signals end of stream
// and is returned as io.EOF. An EOF after the block has started (including
// mid-header) is a format error, ErrTruncatedBlock.
func ReadFrom(r io.Reader) (*Block, error) {
	numCols, err := varint.Read(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}

		return nil, err
	}

	numRows, err := varint.Read(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading num_rows: %v", errs.ErrTruncatedBlock, err)
	}

	b := &Block{NumRows: int(numRows), Columns: make([]Column, 0, numCols)}

	for i := uint64(0); i < numCols; i++ {
		name, err := readString(r)
		if err != nil {
			return nil, fmt.Errorf("%w: reading column %d name: %v", errs.ErrTruncatedBlock, i, err)
		}

		typeText, err := readString(r)
		if err != nil {
			return nil, fmt.Errorf("%w: reading column %d type: %v", errs.ErrTruncatedBlock, i, err)
		}

		desc, err := chtype.Parse(typeText)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}

		codec, err := column.New(desc)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}

		vals, err := codec.Read(r, int(numRows))
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}

		b.Columns = append(b.Columns, Column{Name: name, Type: typeText, Values: vals})
	}

	return b, nil
}

// WriteTo encodes one block to w: column count, row count, then each
// column's header and payload, all buffered into a single pooled byte
// buffer and flushed in one write so a wrapping compression envelope sees
// whole blocks per frame.
func WriteTo(w io.Writer, chunk table.Chunk) error {
	buf := pool.GetBlockBuffer()
	defer pool.PutBlockBuffer(buf)

	buf.MustWrite(varint.Encode(uint64(len(chunk.Columns))))
	buf.MustWrite(varint.Encode(uint64(chunk.NumRows)))

	for _, col := range chunk.Columns {
		writeString(buf, col.Name)
		writeString(buf, col.Type)

		desc, err := chtype.Parse(col.Type)
		if err != nil {
			return fmt.Errorf("column %q: %w", col.Name, err)
		}

		codec, err := column.New(desc)
		if err != nil {
			return fmt.Errorf("column %q: %w", col.Name, err)
		}

		if err := codec.Write(buf, col.Values); err != nil {
			return fmt.Errorf("column %q: %w", col.Name, err)
		}
	}

	_, err := buf.WriteTo(w)

	return err
}

// Skip advances r past one block without materializing its values, as used
// by the inspection pass.
func Skip(r io.Reader) error {
	_, err := SkipCounting(r)

	return err
}

// SkipCounting advances r past one block without materializing its values
// and returns its declared row count, letting a caller accumulate a total
// row count across a stream without decoding every block.
func SkipCounting(r io.Reader) (int, error) {
	numCols, err := varint.Read(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, io.EOF
		}

		return 0, err
	}

	numRows, err := varint.Read(r)
	if err != nil {
		return 0, fmt.Errorf("%w: reading num_rows: %v", errs.ErrTruncatedBlock, err)
	}

	for i := uint64(0); i < numCols; i++ {
		name, err := readString(r)
		if err != nil {
			return 0, fmt.Errorf("%w: reading column %d name: %v", errs.ErrTruncatedBlock, i, err)
		}

		typeText, err := readString(r)
		if err != nil {
			return 0, fmt.Errorf("%w: reading column %d type: %v", errs.ErrTruncatedBlock, i, err)
		}

		desc, err := chtype.Parse(typeText)
		if err != nil {
			return 0, fmt.Errorf("column %q: %w", name, err)
		}

		codec, err := column.New(desc)
		if err != nil {
			return 0, fmt.Errorf("column %q: %w", name, err)
		}

		if err := codec.Skip(r, int(numRows)); err != nil {
			return 0, fmt.Errorf("column %q: %w", name, err)
		}
	}

	return int(numRows), nil
}

func readString(r io.Reader) (string, error) {
	n, err := varint.Read(r)
	if err != nil {
		return "", err
	}

	if n == 0 {
		return "", nil
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}

	return string(buf), nil
}

func writeString(w io.Writer, s string) {
	b := []byte(s)
	_, _ = w.Write(varint.Encode(uint64(len(b))))

	if len(b) > 0 {
		_, _ = w.Write(b)
	}
}
