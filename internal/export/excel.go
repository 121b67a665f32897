package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Irdis/rsqlcmd/internal/db"
	"github.com/Irdis/rsqlcmd/internal/render"
)

// Styles are int because excelize.File.NewStyle() returns style index
type Styles struct {
	Number   int
	DateTime int
}

func NewStyles(f *excelize.File) (*Styles, error) {
	dateStyle, err := f.NewStyle(&excelize.Style{
		NumFmt: 14,
	})
	if err != nil {
		return nil, err
	}

	decimalPlaces := 2
	numberStyle, err := f.NewStyle(&excelize.Style{
		NumFmt:        0,
		DecimalPlaces: &decimalPlaces,
	})
	if err != nil {
		return nil, err
	}

	return &Styles{
		Number:   numberStyle,
		DateTime: dateStyle,
	}, nil
}

// Workbook renders each result set as one sheet of an xlsx file, streamed
// row by row so large result sets never sit in memory. Zero-column result
// sets produce no sheet. Call Save once the run is complete.
type Workbook struct {
	f      *excelize.File
	styles *Styles
	sheets int
}

func NewWorkbook() (*Workbook, error) {
	f := excelize.NewFile()
	styles, err := NewStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Workbook{f: f, styles: styles}, nil
}

func (wb *Workbook) Render(cur db.Cursor) error {
	cols := cur.Columns()
	if len(cols) == 0 {
		return nil
	}

	wb.sheets++
	name := fmt.Sprintf("Result%d", wb.sheets)
	if wb.sheets == 1 {
		wb.f.SetSheetName(wb.f.GetSheetName(0), name)
	} else {
		if _, err := wb.f.NewSheet(name); err != nil {
			return err
		}
	}

	colsWidth, err := wb.writeSheet(name, cols, cur)
	if err != nil {
		return err
	}

	for i, colWidth := range colsWidth {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		wb.f.SetColWidth(name, colName, colName, colWidth)
	}
	wb.freezeHeader(name)

	return nil
}

func (wb *Workbook) writeSheet(name string, cols []db.Column, cur db.Cursor) (map[int]float64, error) {
	sw, err := wb.f.NewStreamWriter(name)
	if err != nil {
		return nil, err
	}

	var namer render.Namer
	headers := make([]any, len(cols))
	for i, col := range cols {
		headers[i] = namer.Name(col.Name)
	}
	if err := sw.SetRow("A1", headers); err != nil {
		return nil, err
	}

	colStyles := make(map[int]int, len(cols))
	for i, col := range cols {
		if style, ok := wb.columnStyle(col); ok {
			colStyles[i] = style
		}
	}

	colsWidth := make(map[int]float64, len(cols))
	rowCount := 0
	for {
		row, err := cur.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		rowData := make([]any, len(cols))
		for j, val := range row {
			if styleID, ok := colStyles[j]; ok {
				rowData[j] = excelize.Cell{
					Value:   val,
					StyleID: styleID,
				}
			} else {
				rowData[j] = val
			}

			colsWidth[j] = max(colsWidth[j], float64(len(fmt.Sprintf("%v", val))))
		}

		rowCount++
		cell, _ := excelize.CoordinatesToCellName(1, rowCount+1)
		if err := sw.SetRow(cell, rowData); err != nil {
			return nil, err
		}
	}

	if rowCount > 0 {
		lastCell, _ := excelize.CoordinatesToCellName(len(cols), rowCount+1)

		enabled := true
		err = sw.AddTable(&excelize.Table{
			Range:           fmt.Sprintf("A1:%s", lastCell),
			Name:            fmt.Sprintf("Table_%s", name),
			StyleName:       "TableStyleMedium2",
			ShowRowStripes:  &enabled,
			ShowFirstColumn: false,
			ShowLastColumn:  false,
		})
		if err != nil {
			return nil, err
		}
	}

	return colsWidth, sw.Flush()
}

func (wb *Workbook) columnStyle(col db.Column) (int, bool) {
	typeName := strings.ToUpper(col.TypeName)
	switch {
	case strings.Contains(typeName, "INT"),
		strings.Contains(typeName, "NUMERIC"),
		strings.Contains(typeName, "DECIMAL"),
		strings.Contains(typeName, "FLOAT"),
		strings.Contains(typeName, "REAL"),
		strings.Contains(typeName, "DOUBLE"):
		return wb.styles.Number, true
	case strings.Contains(typeName, "DATE"),
		strings.Contains(typeName, "TIME"):
		return wb.styles.DateTime, true
	default:
		return 0, false
	}
}

func (wb *Workbook) freezeHeader(name string) {
	wb.f.SetPanes(name, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomRight",
	})
}

// Save writes the workbook and releases it. A run that rendered no result
// sets still produces a valid file with one empty sheet.
func (wb *Workbook) Save(path string) error {
	defer wb.f.Close()
	return wb.f.SaveAs(path)
}
