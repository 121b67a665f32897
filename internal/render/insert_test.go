package render

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/Irdis/rsqlcmd/internal/db"
)

func TestInsertOutput(t *testing.T) {
	cur := &fakeCursor{
		cols: []db.Column{
			{Ordinal: 1, Name: "id", TypeName: "INT4"},
			{Ordinal: 2, Name: "name", TypeName: "VARCHAR", Length: 50, HasLength: true},
			{Ordinal: 3, Name: "price", TypeName: "NUMERIC", Precision: 10, Scale: 2, HasDecimal: true},
		},
		rows: [][]any{
			{int64(1), "alice", "3.50"},
			{int64(2), nil, "0.99"},
		},
	}

	var buf bytes.Buffer
	if err := NewInsert(&buf, false).Render(cur); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := "CREATE TABLE #table1 (\n" +
		"    [id] INT4,\n" +
		"    [name] VARCHAR(50),\n" +
		"    [price] NUMERIC(10, 2),\n" +
		")\n" +
		"INSERT INTO #table1 (id, name, price) VALUES\n" +
		"('1','alice','3.50'),\n" +
		"('2',NULL,'0.99')\n" +
		"\n"
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestInsertChunking(t *testing.T) {
	rows := make([][]any, 250)
	for i := range rows {
		rows[i] = []any{int64(i)}
	}
	cur := &fakeCursor{cols: textCols("n"), rows: rows}

	var buf bytes.Buffer
	if err := NewInsert(&buf, false).Render(cur); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := buf.String()

	prefix := "INSERT INTO #table1 (n) VALUES"
	if got := strings.Count(out, prefix); got != 3 {
		t.Fatalf("expected 3 insert statements, got %d", got)
	}

	// Each statement carries its own row count and no trailing comma on
	// the chunk's last row.
	chunks := strings.Split(out, prefix+"\n")[1:]
	wantRows := []int{100, 100, 50}
	for i, chunk := range chunks {
		body := strings.TrimSuffix(chunk, "\n\n")
		lines := strings.Split(body, "\n")
		if len(lines) != wantRows[i] {
			t.Fatalf("chunk %d: got %d rows, want %d", i, len(lines), wantRows[i])
		}
		last := lines[len(lines)-1]
		if strings.HasSuffix(last, ",") {
			t.Fatalf("chunk %d: last row has trailing comma: %q", i, last)
		}
		for _, line := range lines[:len(lines)-1] {
			if !strings.HasSuffix(line, ",") {
				t.Fatalf("chunk %d: interior row lacks comma: %q", i, line)
			}
		}
	}
}

func TestInsertZeroColumns(t *testing.T) {
	var buf bytes.Buffer
	r := NewInsert(&buf, false)
	if err := r.Render(&fakeCursor{}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got := buf.String(); got != "-- table1 empty\n\n" {
		t.Fatalf("got %q", got)
	}
}

func TestInsertZeroRowsPrintsDefinitionOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := NewInsert(&buf, false).Render(&fakeCursor{cols: textCols("v")}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	want := "CREATE TABLE #table1 (\n    [v] VARCHAR,\n)\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestInsertTableCounterAdvances(t *testing.T) {
	var buf bytes.Buffer
	r := NewInsert(&buf, false)
	for i := 0; i < 3; i++ {
		if err := r.Render(&fakeCursor{}); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
	}
	for n := 1; n <= 3; n++ {
		marker := fmt.Sprintf("-- table%d empty", n)
		if !strings.Contains(buf.String(), marker) {
			t.Fatalf("missing %q in %q", marker, buf.String())
		}
	}
}

func TestInsertMaxLengthMarker(t *testing.T) {
	cur := &fakeCursor{
		cols: []db.Column{
			{Ordinal: 1, Name: "body", TypeName: "NVARCHAR", Length: math.MaxInt64, HasLength: true},
		},
	}

	var buf bytes.Buffer
	if err := NewInsert(&buf, false).Render(cur); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "[body] NVARCHAR(max),") {
		t.Fatalf("missing max marker in %q", buf.String())
	}
}

func TestInsertAnonymousColumns(t *testing.T) {
	cur := &fakeCursor{
		cols: textCols("", ""),
		rows: [][]any{{"a", "b"}},
	}

	var buf bytes.Buffer
	if err := NewInsert(&buf, false).Render(cur); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "INSERT INTO #table1 (NoName1, NoName2) VALUES") {
		t.Fatalf("unexpected prefix in %q", buf.String())
	}
}
