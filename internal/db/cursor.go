package db

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
)

// Column describes one column of a result set, read once from the
// driver's schema metadata before the first row is fetched. The metadata
// rows are index-aligned with the scan destinations; Ordinal is 1-based
// for display.
type Column struct {
	Ordinal  int
	Name     string
	TypeName string

	// Length is reported for character types only; math.MaxInt64 marks
	// an unbounded ("max") type.
	Length    int64
	HasLength bool

	// Precision and Scale are reported for decimal-family types only.
	Precision  int64
	Scale      int64
	HasDecimal bool
}

// Cursor is a forward-only, single-pass iterator over one result set.
// Next returns io.EOF once the rows are exhausted; the returned slice is
// reused between calls and must not be retained.
type Cursor interface {
	Columns() []Column
	Next() ([]any, error)
}

// Renderer consumes a result set cursor to completion and writes its
// textual representation somewhere. Render is called once per result set,
// in statement order.
type Renderer interface {
	Render(cur Cursor) error
}

type rowsCursor struct {
	rows *sql.Rows
	cols []Column
	vals []any
	ptrs []any
}

func newCursor(rows *sql.Rows) (*rowsCursor, error) {
	types, err := rows.ColumnTypes()
	if err != nil {
		slog.Error("Error identifying columns", "error", err)
		return nil, fmt.Errorf("error identifying columns: %w", err)
	}

	cols := make([]Column, len(types))
	for i, ct := range types {
		col := Column{
			Ordinal:  i + 1,
			Name:     ct.Name(),
			TypeName: ct.DatabaseTypeName(),
		}
		if length, ok := ct.Length(); ok {
			col.Length = length
			col.HasLength = true
		}
		if precision, scale, ok := ct.DecimalSize(); ok {
			col.Precision = precision
			col.Scale = scale
			col.HasDecimal = true
		}
		cols[i] = col
	}

	return &rowsCursor{
		rows: rows,
		cols: cols,
		vals: make([]any, len(cols)),
		ptrs: make([]any, len(cols)),
	}, nil
}

func (c *rowsCursor) Columns() []Column {
	return c.cols
}

func (c *rowsCursor) Next() ([]any, error) {
	if !c.rows.Next() {
		if err := c.rows.Err(); err != nil {
			return nil, fmt.Errorf("generic row error: %w", err)
		}
		return nil, io.EOF
	}

	for i := range c.vals {
		c.vals[i] = nil
		c.ptrs[i] = &c.vals[i]
	}
	if err := c.rows.Scan(c.ptrs...); err != nil {
		return nil, fmt.Errorf("error scanning rows: %w", err)
	}

	for i, v := range c.vals {
		if b, ok := v.([]byte); ok {
			c.vals[i] = string(b)
		}
	}
	return c.vals, nil
}
