package export

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/Irdis/rsqlcmd/internal/db"
)

type fakeCursor struct {
	cols []db.Column
	rows [][]any
	pos  int
}

func (f *fakeCursor) Columns() []db.Column {
	return f.cols
}

func (f *fakeCursor) Next() ([]any, error) {
	if f.pos >= len(f.rows) {
		return nil, io.EOF
	}
	row := f.rows[f.pos]
	f.pos++
	return row, nil
}

func TestWorkbookRoundTrip(t *testing.T) {
	wb, err := NewWorkbook()
	if err != nil {
		t.Fatalf("NewWorkbook failed: %v", err)
	}

	cur := &fakeCursor{
		cols: []db.Column{
			{Ordinal: 1, Name: "id", TypeName: "INTEGER"},
			{Ordinal: 2, Name: "", TypeName: "TEXT"},
		},
		rows: [][]any{
			{int64(1), "alice"},
			{int64(2), nil},
		},
	}
	if err := wb.Render(cur); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// Zero-column result sets produce no sheet.
	if err := wb.Render(&fakeCursor{}); err != nil {
		t.Fatalf("Render of empty set failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := wb.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != "Result1" {
		t.Fatalf("sheets = %v", sheets)
	}

	cases := map[string]string{
		"A1": "id",
		"B1": "NoName1",
		"A2": "1",
		"B2": "alice",
		"A3": "2",
	}
	for cell, want := range cases {
		got, err := f.GetCellValue("Result1", cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s) failed: %v", cell, err)
		}
		if got != want {
			t.Fatalf("cell %s = %q, want %q", cell, got, want)
		}
	}
}
