package ingestion

import (
	"fmt"
	"strconv"
	"strings"
)

// RawHeader is one column heading as literally present in the source sheet.
// Columns with no text on either header row are retained as placeholders so
// the column index stays stable between headers and data rows.
type RawHeader struct {
	Index       int
	Main        string
	Sub         string
	Key         string
	Placeholder bool
}

// Extraction is the structural result of analyzing one sheet: every column
// (mapped or not) and every data row until the first blank row after data.
type Extraction struct {
	Headers []RawHeader
	Rows    []RowRecord
}

// AnalyzeStructure detects the header row(s) of a sheet and extracts all
// columns and data rows.
//
// The first of the leading rows with more than two non-empty cells is the
// main header row. When the row immediately below it carries more than half
// as many non-empty cells, it is treated as a sub-header row (the merged
// "Earned Wages" / "Deductions" group style); data starts after the consumed
// header rows. A sheet with no detectable header row yields an empty
// extraction, which callers must treat as "nothing to import", not an error.
func AnalyzeStructure(sheet *Sheet) Extraction {
	headerRow, subHeaderRow, dataStart, found := detectHeaderRows(sheet)
	if !found {
		return Extraction{}
	}

	width := sheet.Width()
	headers := make([]RawHeader, 0, width)
	for col := 0; col < width; col++ {
		main := sheet.Cell(headerRow, col)
		sub := ""
		if subHeaderRow >= 0 {
			sub = sheet.Cell(subHeaderRow, col)
		}
		headers = append(headers, buildRawHeader(col, main, sub))
	}

	rows := extractDataRows(sheet, dataStart, headers)
	return Extraction{Headers: headers, Rows: rows}
}

func detectHeaderRows(sheet *Sheet) (headerRow, subHeaderRow, dataStart int, found bool) {
	subHeaderRow = -1
	for row := 0; row < headerScanRows; row++ {
		nonEmpty := countNonEmpty(sheet, row)
		if nonEmpty <= 2 {
			continue
		}
		headerRow = row
		dataStart = row + 1
		if row+1 < headerScanRows {
			nextNonEmpty := countNonEmpty(sheet, row+1)
			if nextNonEmpty > nonEmpty/2 && rowLooksLikeHeaders(sheet, row+1) {
				subHeaderRow = row + 1
				dataStart = row + 2
			}
		}
		return headerRow, subHeaderRow, dataStart, true
	}
	return 0, -1, 0, false
}

// rowLooksLikeHeaders reports whether every non-empty cell in the row is
// non-numeric text. A dense row right under the header row is only a
// sub-header row when it holds labels; the first data row of a flat sheet is
// just as dense but carries amounts.
func rowLooksLikeHeaders(sheet *Sheet, row int) bool {
	seen := false
	for col := 0; col < maxScanColumns; col++ {
		v := strings.TrimSpace(sheet.Cell(row, col))
		if v == "" {
			continue
		}
		seen = true
		if _, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64); err == nil {
			return false
		}
	}
	return seen
}

func countNonEmpty(sheet *Sheet, row int) int {
	n := 0
	for col := 0; col < maxScanColumns; col++ {
		if sheet.Cell(row, col) != "" {
			n++
		}
	}
	return n
}

func buildRawHeader(col int, main, sub string) RawHeader {
	h := RawHeader{Index: col, Main: main, Sub: sub}
	switch {
	case main == "" && sub == "":
		h.Key = placeholderKey(col)
		h.Placeholder = true
	case main != "" && sub != "":
		h.Key = main + "_" + sub
	case main != "":
		h.Key = main
	default:
		h.Key = sub
	}
	return h
}

func placeholderKey(col int) string {
	return fmt.Sprintf("Column_%d", col+1)
}

// extractDataRows reads rows sequentially from dataStart. A row with at least
// one non-empty cell is kept; the first fully-empty row after any data has
// been collected ends the block. Blank separator rows before the first data
// row are tolerated. Every header key appears in every record, blank or not.
func extractDataRows(sheet *Sheet, dataStart int, headers []RawHeader) []RowRecord {
	var rows []RowRecord
	for row := dataStart; row < dataStart+maxScanRows; row++ {
		if row >= len(sheet.Cells) {
			break
		}
		record := make(RowRecord, len(headers))
		hasData := false
		for _, h := range headers {
			value := sheet.Cell(row, h.Index)
			if value != "" {
				hasData = true
			}
			record[h.Key] = value
		}
		if hasData {
			rows = append(rows, record)
		} else if len(rows) > 0 {
			break
		}
	}
	return rows
}
