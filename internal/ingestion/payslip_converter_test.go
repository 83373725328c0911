package ingestion_test

import (
	"testing"

	"payslip-portal/internal/ingestion"

	"github.com/stretchr/testify/assert"
)

func mappingsFor(headers ...string) []ingestion.ColumnMapping {
	result := ingestion.ValidateFlexible(&ingestion.Sheet{Cells: [][]string{headers}})
	return result.SuggestedMappings
}

func TestConvertFlexible_FallbackTotals(t *testing.T) {
	row := ingestion.RowRecord{
		"Employee Name":       "Asha Patel",
		"Basic":               "25000",
		"HRA":                 "10000",
		"Transport Allowance": "0",
		"Medical Allowance":   "0",
		"OTHER EARNING":       "0",
		"PF":                  "3000",
		"Tax":                 "0",
		"ESIC":                "0",
		"Other Deductions":    "0",
	}
	mappings := mappingsFor(
		"Employee Name", "Basic", "HRA", "Transport Allowance", "Medical Allowance",
		"OTHER EARNING", "PF", "Tax", "ESIC", "Other Deductions",
	)

	p := ingestion.ConvertFlexible(row, mappings)

	assert.Equal(t, "Asha Patel", p.EmployeeName)
	assert.Equal(t, 25000.0, p.BasicSalary)
	assert.Equal(t, 10000.0, p.HRA)
	assert.Equal(t, 35000.0, p.TotalEarningGross)
	assert.Equal(t, 3000.0, p.TotalDeductions)
	assert.Equal(t, 32000.0, p.NetSalary)
}

func TestConvertFlexible_SourceNetPayTakesPrecedence(t *testing.T) {
	row := ingestion.RowRecord{
		"Employee Name": "Ravi Shah",
		"Basic":         "25000",
		"HRA":           "10000",
		"PF":            "3000",
		"FINAL NET PAY": "37875",
	}
	mappings := mappingsFor("Employee Name", "Basic", "HRA", "PF", "FINAL NET PAY")

	p := ingestion.ConvertFlexible(row, mappings)

	// The components sum to 32000, but the uploaded ledger said 37875.
	assert.Equal(t, 37875.0, p.NetSalary)
	assert.Equal(t, 35000.0, p.TotalEarningGross)
}

func TestConvertFlexible_FallbackColumnChain(t *testing.T) {
	// None of these headers map via the dictionary pass used here; the
	// conventional-spelling chains must still find them.
	row := ingestion.RowRecord{
		"emp name":    "Mina Rao",
		"net payment": "28200",
	}
	mappings := []ingestion.ColumnMapping{
		{DetectedColumn: "emp name", SuggestedField: "emp name", Category: ingestion.CategoryOther, Confidence: ingestion.ConfidenceLow},
		{DetectedColumn: "net payment", SuggestedField: "net payment", Category: ingestion.CategoryOther, Confidence: ingestion.ConfidenceLow},
	}

	p := ingestion.ConvertFlexible(row, mappings)

	assert.Equal(t, "Mina Rao", p.EmployeeName)
	assert.Equal(t, 28200.0, p.NetSalary)
}

func TestConvertFlexible_PreservesOriginalRowAndExtras(t *testing.T) {
	row := ingestion.RowRecord{
		"Employee Name": "Asha Patel",
		"Basic":         "25000",
		"Remarks":       "transferred in March",
	}
	mappings := mappingsFor("Employee Name", "Basic", "Remarks")

	p := ingestion.ConvertFlexible(row, mappings)

	assert.Equal(t, row, p.OriginalData)
	assert.Equal(t, "transferred in March", p.ExtraFields["Remarks"])
	assert.Equal(t, mappings, p.ColumnMappings)
}

func TestConvertFlexible_Defaults(t *testing.T) {
	row := ingestion.RowRecord{"Employee Name": "Asha Patel"}
	p := ingestion.ConvertFlexible(row, mappingsFor("Employee Name"))

	assert.Equal(t, "General", p.Department)
	assert.Equal(t, ingestion.DefaultCompanyName, p.CompanyName)
	assert.NotEmpty(t, p.PayPeriod)
}

func TestConvertFlexible_NumericCoercion(t *testing.T) {
	row := ingestion.RowRecord{
		"Employee Name": "Asha Patel",
		"S.No":          "3",
		"W Day":         "26",
		"Present":       "24",
		"OS Hours":      "12.5",
		"Basic":         "1,25,000",
		"HRA":           "not a number",
	}
	mappings := mappingsFor("Employee Name", "S.No", "W Day", "Present", "OS Hours", "Basic", "HRA")

	p := ingestion.ConvertFlexible(row, mappings)

	assert.Equal(t, 3, p.SerialNumber)
	assert.Equal(t, 26, p.WorkingDays)
	assert.Equal(t, 24, p.PresentDays)
	assert.Equal(t, 12.5, p.OSHours)
	assert.Equal(t, 125000.0, p.BasicSalary)
	assert.Equal(t, 0.0, p.HRA)
}

func TestConvertStrict_CollapsesItemizedDeductions(t *testing.T) {
	row := ingestion.RowRecord{
		"S.No":          "1",
		"Employee Name": "Asha Patel",
		"Employee Code": "E001",
		"Designation":   "Supervisor",
		"Basic":         "18000",
		"HRA":           "7000",
		"Basic_Earned":  "18000",
		"HRA_Earned":    "7000",
		"PF":            "2160",
		"ESIC":          "300",
		"PT":            "200",

		"Other Deductions":    "100",
		"GPA":                 "50",
		"Police Verification": "25",
		"Hostel":              "0",
		"Lunch / Dinner":      "500",
		"BANK":                "0",
		"Maintenance":         "75",
		"LIGHT BILL":          "40",

		"Total Earning (Gross)": "25000",
		"Total Deductions":      "3450",
		"FINAL NET PAY":         "21550",
		"Bank Name":             "SBI",
		"Bank Account Number":   "123456789",
		"IFSC Code":             "SBIN0000001",
		"SERVICE CHARGE":        "0",
	}

	p := ingestion.ConvertStrict(row)

	assert.Equal(t, "Asha Patel", p.EmployeeName)
	assert.Equal(t, "E001", p.EmployeeCode)
	assert.Equal(t, "E001", p.EmployeeID)
	assert.Equal(t, 790.0, p.OtherDeductions) // 100+50+25+0+500+0+75+40
	assert.Equal(t, 25000.0, p.TotalEarningGross)
	assert.Equal(t, 3450.0, p.TotalDeductions)
	assert.Equal(t, 21550.0, p.NetSalary)
	assert.Equal(t, "SBI", p.BankName)
	assert.Equal(t, row, p.OriginalData)
}

func TestConvertStrict_ComputesTotalsWhenAbsent(t *testing.T) {
	row := ingestion.RowRecord{
		"Employee Name": "Ravi Shah",
		"Employee Code": "E002",
		"Basic_Earned":  "20000",
		"HRA_Earned":    "8000",
		"OS":            "1500",
		"PF":            "2400",
		"PT":            "200",
	}

	p := ingestion.ConvertStrict(row)

	assert.Equal(t, 29500.0, p.TotalEarningGross)
	assert.Equal(t, 2600.0, p.TotalDeductions)
	assert.Equal(t, 26900.0, p.NetSalary)
}
