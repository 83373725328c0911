package ingestion

import (
	"fmt"
	"strings"
)

// RequiredColumns is the exact header set of the canonical payroll template.
// The strict path accepts nothing less.
var RequiredColumns = []string{
	"S.No",
	"Employee Code",
	"Employee Name",
	"Designation",
	"Basic",
	"HRA",
	"OS Rate",
	"Att. Incentive",
	"W Day",
	"Present",
	"OS Hours",
	"Basic_Earned",
	"HRA_Earned",
	"OS",
	"OTHER EARNING",
	"PERFORMANCE ALLOWANCE",
	"SKILL ALLOWANCE",
	"Att. Incentive / Att. Bonus",
	"Total Earning (Gross)",
	"PF",
	"ESIC",
	"PT",
	"Lunch / Dinner",
	"BANK",
	"Maintenance",
	"LIGHT BILL",
	"Other Deductions",
	"GPA",
	"Police Verification",
	"Hostel",
	"Total Deductions",
	"Net Payment",
	"TICKET",
	"FINAL NET PAY",
	"RETENTION ALLO",
	"Bank Name",
	"Bank Account Number",
	"IFSC Code",
	"SERVICE CHARGE",
}

// StrictResult is the outcome of validating against the fixed payroll
// template. Partial data is returned even on failure so the caller can show
// what was detected.
type StrictResult struct {
	IsValid        bool
	Errors         []string
	Warnings       []string
	MissingColumns []string
	ExtraColumns   []string
	Data           []RowRecord
}

// ValidateStrict checks a sheet against the canonical payroll template: all
// required columns must be present, and every data row must carry a non-empty
// Employee Name and Employee Code. Extra columns only warn. This is the one
// ingestion path allowed to reject a file.
func ValidateStrict(sheet *Sheet) StrictResult {
	var result StrictResult

	if sheet == nil || len(sheet.Cells) == 0 {
		result.Errors = append(result.Errors, "Empty or invalid spreadsheet file")
		return result
	}

	headers, rows := extractFlat(sheet)
	if len(headers) == 0 {
		result.Errors = append(result.Errors, "No headers found in spreadsheet file")
		return result
	}

	for _, required := range RequiredColumns {
		if !containsColumn(headers, required) {
			result.MissingColumns = append(result.MissingColumns, required)
		}
	}
	if len(result.MissingColumns) > 0 {
		result.Errors = append(result.Errors,
			"Missing required columns: "+strings.Join(result.MissingColumns, ", "))
	}

	for _, header := range headers {
		if !containsColumn(RequiredColumns, header) {
			result.ExtraColumns = append(result.ExtraColumns, header)
		}
	}
	if len(result.ExtraColumns) > 0 {
		result.Warnings = append(result.Warnings,
			"Extra columns detected: "+strings.Join(result.ExtraColumns, ", "))
	}

	for i, row := range rows {
		// Row numbering matches the spreadsheet: header on row 1, data from row 2.
		rowNum := i + 2
		if strings.TrimSpace(row["Employee Name"]) == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Employee Name is required", rowNum))
		}
		if strings.TrimSpace(row["Employee Code"]) == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Employee Code is required", rowNum))
		}
	}
	result.Data = rows

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found in spreadsheet file")
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

func containsColumn(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}
