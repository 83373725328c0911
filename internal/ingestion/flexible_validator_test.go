package ingestion_test

import (
	"testing"

	"payslip-portal/internal/ingestion"

	"github.com/stretchr/testify/assert"
)

func payrollSheet() *ingestion.Sheet {
	return &ingestion.Sheet{Cells: [][]string{
		{"Employee Name", "Employee Code", "Basic", "HRA", "PF", "FINAL NET PAY", "Remarks"},
		{"Asha Patel", "E001", "25000", "10000", "3000", "32000", "ok"},
		{"Ravi Shah", "E002", "22000", "9000", "2800", "28200", ""},
	}}
}

func TestValidateFlexible_HappyPath(t *testing.T) {
	result := ingestion.ValidateFlexible(payrollSheet())

	assert.True(t, result.IsValid)
	assert.Len(t, result.DetectedColumns, 7)
	assert.Len(t, result.Data, 2)
	assert.Len(t, result.SuggestedMappings, 7)
	assert.Contains(t, result.Info, "Detected 7 columns in your spreadsheet")
	assert.Contains(t, result.Info, "Found 2 data rows ready for payslip generation")
	assert.Empty(t, result.Warnings)

	byColumn := make(map[string]ingestion.ColumnMapping)
	for _, m := range result.SuggestedMappings {
		byColumn[m.DetectedColumn] = m
	}

	assert.Equal(t, string(ingestion.FieldEmployeeName), byColumn["Employee Name"].SuggestedField)
	assert.Equal(t, ingestion.ConfidenceHigh, byColumn["Employee Name"].Confidence)
	assert.Equal(t, string(ingestion.FieldNetSalary), byColumn["FINAL NET PAY"].SuggestedField)
	assert.Equal(t, ingestion.CategoryNetPay, byColumn["FINAL NET PAY"].Category)

	// Unrecognized columns are retained, not dropped.
	assert.Equal(t, ingestion.CategoryOther, byColumn["Remarks"].Category)
	assert.Equal(t, "Remarks", byColumn["Remarks"].SuggestedField)
}

func TestValidateFlexible_GroupedHeaderRows(t *testing.T) {
	sheet := &ingestion.Sheet{Cells: [][]string{
		{"Employee", "Earned Wages", "Earned Wages", "Deductions"},
		{"", "Basic", "HRA", "PF"},
		{"Asha", "25000", "10000", "3000"},
	}}

	result := ingestion.ValidateFlexible(sheet)

	assert.Equal(t,
		[]string{"Employee", "Earned Wages_Basic", "Earned Wages_HRA", "Deductions_PF"},
		result.DetectedColumns)

	// The sub-header row is part of the header, never a data row.
	assert.Len(t, result.Data, 1)
	assert.Equal(t, "Asha", result.Data[0]["Employee"])
	assert.Equal(t, "25000", result.Data[0]["Earned Wages_Basic"])
	assert.Equal(t, "10000", result.Data[0]["Earned Wages_HRA"])

	byColumn := make(map[string]ingestion.ColumnMapping)
	for _, m := range result.SuggestedMappings {
		byColumn[m.DetectedColumn] = m
	}
	assert.Equal(t, string(ingestion.FieldEmployeeName), byColumn["Employee"].SuggestedField)
	assert.Equal(t, string(ingestion.FieldBasicSalary), byColumn["Earned Wages_Basic"].SuggestedField)
	assert.Equal(t, string(ingestion.FieldHRA), byColumn["Earned Wages_HRA"].SuggestedField)
	assert.Equal(t, string(ingestion.FieldPFDeduction), byColumn["Deductions_PF"].SuggestedField)
}

func TestValidateFlexible_MissingIdentityColumnsWarn(t *testing.T) {
	sheet := &ingestion.Sheet{Cells: [][]string{
		{"Basic", "HRA", "PF"},
		{"25000", "10000", "3000"},
	}}

	result := ingestion.ValidateFlexible(sheet)

	assert.True(t, result.IsValid)
	assert.Len(t, result.Data, 1)
	assert.Contains(t, result.Warnings, `Consider adding "Employee Name" for better payslip organization`)
	assert.Contains(t, result.Warnings, `Consider adding "Employee Code" for better payslip organization`)
}

func TestValidateFlexible_EmptySheet(t *testing.T) {
	result := ingestion.ValidateFlexible(&ingestion.Sheet{})

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Data)
	assert.NotEmpty(t, result.Warnings)
}

func TestValidateFlexible_RowStopBoundary(t *testing.T) {
	sheet := &ingestion.Sheet{Cells: [][]string{
		{"Employee Name", "Basic", "Net"},
		{"Asha", "25000", "25000"},
		{"Ravi", "22000", "22000"},
		{"Mina", "20000", "20000"},
		{"", "", ""},
		{"Totals", "67000", "67000"},
		{"Sign-off", "", ""},
	}}

	result := ingestion.ValidateFlexible(sheet)

	assert.Len(t, result.Data, 3)
	assert.Equal(t, "Mina", result.Data[2]["Employee Name"])
}

func TestValidateFlexible_EveryHeaderKeyInEveryRow(t *testing.T) {
	result := ingestion.ValidateFlexible(payrollSheet())

	for _, row := range result.Data {
		for _, column := range result.DetectedColumns {
			_, present := row[column]
			assert.True(t, present, "column %q missing from row", column)
		}
	}
}
