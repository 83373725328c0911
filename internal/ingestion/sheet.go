package ingestion

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet is a plain cell grid extracted from the first worksheet of an
// uploaded workbook. Merged header cells are already expanded: the top-left
// value of a merged range is copied into every physical cell it spans, so the
// structure analyzer can treat each column independently.
type Sheet struct {
	Cells [][]string
}

// Cell returns the trimmed value at (row, col), or "" when out of range.
func (s *Sheet) Cell(row, col int) string {
	if row < 0 || row >= len(s.Cells) {
		return ""
	}
	r := s.Cells[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// Width reports the widest populated row, capped at the column scan bound.
func (s *Sheet) Width() int {
	w := 0
	for _, r := range s.Cells {
		if len(r) > w {
			w = len(r)
		}
	}
	if w > maxScanColumns {
		w = maxScanColumns
	}
	return w
}

// RowRecord maps a column identifier (original header text or placeholder) to
// the raw cell value for one data row.
type RowRecord map[string]string

// ReadWorkbook parses an uploaded .xlsx payload into a Sheet. Only the first
// worksheet is used. Raw cell values are kept so that numeric cells survive
// untouched by display formatting.
func ReadWorkbook(data []byte) (*Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %s: %w", sheetName, err)
	}

	sheet := &Sheet{Cells: rows}
	if merges, err := f.GetMergeCells(sheetName); err == nil {
		expandMerges(sheet, merges)
	}
	return sheet, nil
}

// expandMerges copies each merged range's top-left value across the whole
// range so header text spanning several columns lands on every column.
func expandMerges(sheet *Sheet, merges []excelize.MergeCell) {
	for _, m := range merges {
		startCol, startRow, err := excelize.CellNameToCoordinates(m.GetStartAxis())
		if err != nil {
			continue
		}
		endCol, endRow, err := excelize.CellNameToCoordinates(m.GetEndAxis())
		if err != nil {
			continue
		}
		value := sheet.Cell(startRow-1, startCol-1)
		if value == "" {
			value = strings.TrimSpace(m.GetCellValue())
		}
		if value == "" {
			continue
		}
		for r := startRow - 1; r <= endRow-1 && r < maxScanRows; r++ {
			for c := startCol - 1; c <= endCol-1 && c < maxScanColumns; c++ {
				setCell(sheet, r, c, value)
			}
		}
	}
}

// setCell writes value at (row, col), growing the grid as needed.
func setCell(sheet *Sheet, row, col int, value string) {
	for len(sheet.Cells) <= row {
		sheet.Cells = append(sheet.Cells, nil)
	}
	for len(sheet.Cells[row]) <= col {
		sheet.Cells[row] = append(sheet.Cells[row], "")
	}
	sheet.Cells[row][col] = value
}
