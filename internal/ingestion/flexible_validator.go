package ingestion

import "fmt"

// ColumnMapping records how one detected column was resolved. SuggestedField
// holds the canonical field name, or the raw header text when nothing in the
// dictionary matched (Category is then "other").
type ColumnMapping struct {
	DetectedColumn string     `json:"detected_column"`
	SuggestedField string     `json:"suggested_field"`
	Category       Category   `json:"category"`
	Confidence     Confidence `json:"confidence"`
}

// Canonical reports the canonical field this mapping points at, when any.
func (m ColumnMapping) Canonical() (CanonicalField, bool) {
	if m.Category == CategoryOther {
		return "", false
	}
	return CanonicalField(m.SuggestedField), true
}

// FlexibleResult is the outcome of the "any format welcome" ingestion path.
// There is no hard failure mode: malformed input degrades to fewer detected
// columns and rows plus warnings.
type FlexibleResult struct {
	IsValid           bool
	Data              []RowRecord
	DetectedColumns   []string
	SuggestedMappings []ColumnMapping
	Warnings          []string
	Info              []string
}

// ValidateFlexible extracts whatever columns and rows the sheet carries and
// suggests a canonical mapping for every detected column. Single-header-row
// and two-row grouped-header layouts are both handled; missing identity
// columns produce soft warnings, never a rejection.
func ValidateFlexible(sheet *Sheet) FlexibleResult {
	result := FlexibleResult{IsValid: true}

	if sheet == nil || len(sheet.Cells) == 0 {
		result.Warnings = append(result.Warnings, "Empty or invalid spreadsheet detected")
		return result
	}

	extraction := AnalyzeStructure(sheet)
	if len(extraction.Headers) == 0 {
		// Narrow sheets fall under the analyzer's header-density cutoff;
		// read them as a plain single-header-row layout.
		headers, rows := extractFlat(sheet)
		for i, h := range headers {
			extraction.Headers = append(extraction.Headers, RawHeader{Index: i, Main: h, Key: h})
		}
		extraction.Rows = rows
	}

	if len(extraction.Headers) == 0 {
		result.Warnings = append(result.Warnings, "No column headers found in the first row")
		return result
	}

	for _, h := range extraction.Headers {
		result.DetectedColumns = append(result.DetectedColumns, h.Key)
	}

	result.Info = append(result.Info, fmt.Sprintf("Detected %d columns in your spreadsheet", len(extraction.Headers)))
	result.SuggestedMappings = suggestMappings(extraction.Headers)
	result.Data = extraction.Rows
	result.Info = append(result.Info, fmt.Sprintf("Found %d data rows ready for payslip generation", len(extraction.Rows)))

	for _, expected := range []struct {
		field CanonicalField
		label string
	}{
		{FieldEmployeeName, "Employee Name"},
		{FieldEmployeeCode, "Employee Code"},
	} {
		if !hasMappedField(result.SuggestedMappings, expected.field) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Consider adding %q for better payslip organization", expected.label))
		}
	}

	return result
}

// suggestMappings resolves every extracted column. Grouped columns try the
// combined key first, then the sub-header alone, then the group name, so
// "Earned Wages_Basic" still lands on basic salary when only "Basic" is in
// the dictionary.
func suggestMappings(headers []RawHeader) []ColumnMapping {
	mappings := make([]ColumnMapping, 0, len(headers))
	for _, h := range headers {
		m := ColumnMapping{
			DetectedColumn: h.Key,
			SuggestedField: h.Key,
			Category:       CategoryOther,
			Confidence:     ConfidenceLow,
		}
		if !h.Placeholder {
			for _, candidate := range []string{h.Key, h.Sub, h.Main} {
				if candidate == "" {
					continue
				}
				if match, ok := Normalize(candidate); ok {
					m.SuggestedField = string(match.Field)
					m.Category = match.Category
					m.Confidence = match.Confidence
					break
				}
			}
		}
		mappings = append(mappings, m)
	}
	return mappings
}

func hasMappedField(mappings []ColumnMapping, field CanonicalField) bool {
	for _, m := range mappings {
		if f, ok := m.Canonical(); ok && f == field {
			return true
		}
	}
	return false
}

// extractFlat reads a single-header-row layout: headers from the first row
// until the first empty cell after any header, data rows below with the same
// stop-at-blank-after-data rule the structure analyzer uses.
func extractFlat(sheet *Sheet) ([]string, []RowRecord) {
	var headers []string
	for col := 0; col < maxScanColumns; col++ {
		v := sheet.Cell(0, col)
		if v != "" {
			headers = append(headers, v)
		} else if len(headers) > 0 {
			break
		}
	}
	if len(headers) == 0 {
		return nil, nil
	}

	var rows []RowRecord
	for row := 1; row <= maxScanRows; row++ {
		if row >= len(sheet.Cells) {
			break
		}
		record := make(RowRecord, len(headers))
		hasData := false
		for col, header := range headers {
			value := sheet.Cell(row, col)
			if value != "" {
				hasData = true
			}
			record[header] = value
		}
		if hasData {
			rows = append(rows, record)
		} else if len(rows) > 0 {
			break
		}
	}
	return headers, rows
}
