package render

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/Irdis/rsqlcmd/internal/db"
)

// ChunkSize is the maximum number of rows batched into one INSERT
// statement.
const ChunkSize = 100

// Insert renders result sets as a table definition followed by chunked
// INSERT statements targeting a temp table #table<N>, where N counts the
// result sets rendered by this instance. Rows are accumulated into a
// reusable chunk buffer that is flushed and cleared every ChunkSize rows,
// so memory stays bounded for arbitrarily large result sets.
//
// Values are single-quoted without escaping embedded quote characters.
// Text containing a quote therefore yields invalid SQL; this mirrors the
// tool's long-standing output and is kept for replay compatibility.
type Insert struct {
	w          *bufio.Writer
	noNewlines bool
	chunkSize  int
	table      int
	chunk      bytes.Buffer
}

func NewInsert(w io.Writer, noNewlines bool) *Insert {
	return &Insert{
		w:          bufio.NewWriter(w),
		noNewlines: noNewlines,
		chunkSize:  ChunkSize,
	}
}

func (r *Insert) Render(cur db.Cursor) error {
	r.table++

	cols := cur.Columns()
	if len(cols) == 0 {
		fmt.Fprintf(r.w, "-- table%d empty\n\n", r.table)
		return r.w.Flush()
	}

	var namer Namer
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = namer.Name(col.Name)
	}

	fmt.Fprintf(r.w, "CREATE TABLE #table%d (\n", r.table)
	for i, col := range cols {
		fmt.Fprintf(r.w, "    [%s] %s,\n", names[i], typeSpec(col))
	}
	r.w.WriteString(")\n")

	prefix := fmt.Sprintf("INSERT INTO #table%d (%s) VALUES",
		r.table, strings.Join(names, ", "))

	r.chunk.Reset()
	count := 0
	for {
		row, err := cur.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		if count > 0 {
			r.chunk.WriteString(",\n")
		}
		r.writeRow(row)
		count++

		if count == r.chunkSize {
			if err := r.flushChunk(prefix); err != nil {
				return err
			}
			count = 0
		}
	}

	if count > 0 {
		if err := r.flushChunk(prefix); err != nil {
			return err
		}
	}
	return r.w.Flush()
}

func (r *Insert) writeRow(row []any) {
	r.chunk.WriteByte('(')
	for i, cell := range row {
		if i > 0 {
			r.chunk.WriteByte(',')
		}
		if IsNull(cell) {
			r.chunk.WriteString("NULL")
		} else {
			r.chunk.WriteByte('\'')
			r.chunk.WriteString(Format(cell, r.noNewlines))
			r.chunk.WriteByte('\'')
		}
	}
	r.chunk.WriteByte(')')
}

// flushChunk emits one INSERT statement from the accumulated rows and
// clears the buffer for reuse by the next chunk.
func (r *Insert) flushChunk(prefix string) error {
	r.w.WriteString(prefix)
	r.w.WriteByte('\n')
	r.w.Write(r.chunk.Bytes())
	r.w.WriteString("\n\n")
	r.chunk.Reset()
	return r.w.Flush()
}

func typeSpec(col db.Column) string {
	switch {
	case col.HasDecimal:
		return fmt.Sprintf("%s(%d, %d)", col.TypeName, col.Precision, col.Scale)
	case col.HasLength && col.Length == math.MaxInt64:
		return col.TypeName + "(max)"
	case col.HasLength:
		return fmt.Sprintf("%s(%d)", col.TypeName, col.Length)
	default:
		return col.TypeName
	}
}
