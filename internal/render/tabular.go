package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Irdis/rsqlcmd/internal/db"
)

// Tabular renders result sets as human-readable text: a header line naming
// the columns, then one block per row. Rows are streamed; each row is
// rendered and flushed before the next one is fetched, so output size is
// bounded by a single row regardless of the result set.
type Tabular struct {
	w          *bufio.Writer
	noNewlines bool
}

func NewTabular(w io.Writer, noNewlines bool) *Tabular {
	return &Tabular{
		w:          bufio.NewWriter(w),
		noNewlines: noNewlines,
	}
}

func (t *Tabular) Render(cur db.Cursor) error {
	cols := cur.Columns()
	if len(cols) == 0 {
		// Statement produced no results, as opposed to zero rows.
		return nil
	}

	var namer Namer
	t.w.WriteString("Table cols:")
	for _, col := range cols {
		fmt.Fprintf(t.w, " %d) %s", col.Ordinal, namer.Name(col.Name))
	}
	t.w.WriteString("\n\n")

	index := 0
	for {
		row, err := cur.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		index++
		fmt.Fprintf(t.w, "Row index #%d\n", index)
		for i, cell := range row {
			if IsNull(cell) {
				fmt.Fprintf(t.w, "%d. <NULL>\n", i+1)
			} else {
				fmt.Fprintf(t.w, "%d. %s\n", i+1, Format(cell, t.noNewlines))
			}
		}
		t.w.WriteByte('\n')

		if err := t.w.Flush(); err != nil {
			return err
		}
	}
	return t.w.Flush()
}
