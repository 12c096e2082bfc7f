package table

import "fmt"

// Memory is a slice-backed, in-process Table implementation.
//
// It is not a performance target: it exists so the codec is independently
// testable and usable without an external data-frame front-end.
type Memory struct {
	names []string
	types map[string]string
	cols  map[string][]Value
	rows  int
}

// NewMemory builds a Memory table from ordered columns, validating that
// every column has the same row count. A column's Type may be left empty to
// request inference at write time.
func NewMemory(columns []Column) (*Memory, error) {
	m := &Memory{
		names: make([]string, 0, len(columns)),
		types: make(map[string]string, len(columns)),
		cols:  make(map[string][]Value, len(columns)),
	}

	for i, c := range columns {
		if i == 0 {
			m.rows = len(c.Values)
		} else if len(c.Values) != m.rows {
			return nil, fmt.Errorf("table: column %q has %d rows, want %d", c.Name, len(c.Values), m.rows)
		}

		m.names = append(m.names, c.Name)
		m.types[c.Name] = c.Type
		m.cols[c.Name] = c.Values
	}

	return m, nil
}

func (m *Memory) ColumnNames() []string { return m.names }
func (m *Memory) NumRows() int          { return m.rows }
func (m *Memory) Column(name string) []Value { return m.cols[name] }

// Type returns the declared type descriptor text for name, or "" if none
// was given (leaving it to be inferred at write time).
func (m *Memory) Type(name string) string { return m.types[name] }

// TypedTable is implemented by a Table that can report a column's declared
// type descriptor text. Chunks uses it, when available, to carry a
// caller-supplied type through to the emitted Chunk; a Table that doesn't
// implement it (or that reports "") leaves the column's Type unset for the
// write path to infer.
type TypedTable interface {
	Type(name string) string
}

// Chunks splits t into row-aligned Chunks of at most blockRows rows each,
// preserving column order. A table with zero rows yields a single empty
// Chunk so callers can still emit one well-formed empty block.
func Chunks(t Table, blockRows int) []Chunk {
	names := t.ColumnNames()
	total := t.NumRows()

	typed, _ := t.(TypedTable)
	typeOf := func(name string) string {
		if typed == nil {
			return ""
		}

		return typed.Type(name)
	}

	if total == 0 {
		cols := make([]Column, len(names))
		for i, n := range names {
			cols[i] = Column{Name: n, Type: typeOf(n), Values: nil}
		}

		return []Chunk{{Columns: cols, NumRows: 0}}
	}

	var chunks []Chunk
	for start := 0; start < total; start += blockRows {
		end := start + blockRows
		if end > total {
			end = total
		}

		cols := make([]Column, len(names))
		for i, n := range names {
			full := t.Column(n)
			cols[i] = Column{Name: n, Type: typeOf(n), Values: full[start:end]}
		}

		chunks = append(chunks, Chunk{Columns: cols, NumRows: end - start})
	}

	return chunks
}
