package ingestion_test

import (
	"testing"

	"payslip-portal/internal/ingestion"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_ExactMatch(t *testing.T) {
	cases := []struct {
		header string
		field  ingestion.CanonicalField
	}{
		{"Employee Name", ingestion.FieldEmployeeName},
		{"employee_name", ingestion.FieldEmployeeName},
		{"HRA", ingestion.FieldHRA},
		{"house rent allowance", ingestion.FieldHRA},
		{"House Rent", ingestion.FieldHRA},
		{"FINAL NET PAY", ingestion.FieldNetSalary},
		{"Net Payment", ingestion.FieldNetSalary},
		{"take home", ingestion.FieldNetSalary},
		{"PF", ingestion.FieldPFDeduction},
		{"ESIC", ingestion.FieldInsuranceDeduction},
		{"PT", ingestion.FieldTaxDeduction},
		{"Basic", ingestion.FieldBasicSalary},
		{"W Day", ingestion.FieldWorkingDays},
		{"IFSC Code", ingestion.FieldIFSCCode},
	}

	for _, tc := range cases {
		match, ok := ingestion.Normalize(tc.header)
		assert.True(t, ok, "expected a match for %q", tc.header)
		assert.Equal(t, tc.field, match.Field, "header %q", tc.header)
		assert.Equal(t, ingestion.ConfidenceHigh, match.Confidence, "header %q", tc.header)
	}
}

func TestNormalize_SeparatorInsensitive(t *testing.T) {
	for _, header := range []string{"employee-name", "Employee_Name", "EMPLOYEE   NAME"} {
		match, ok := ingestion.Normalize(header)
		assert.True(t, ok)
		assert.Equal(t, ingestion.FieldEmployeeName, match.Field, "header %q", header)
	}
}

func TestNormalize_SubstringMatch(t *testing.T) {
	match, ok := ingestion.Normalize("Basic Pay Amount")
	assert.True(t, ok)
	assert.Equal(t, ingestion.FieldBasicSalary, match.Field)
	assert.Equal(t, ingestion.ConfidenceMedium, match.Confidence)
}

func TestNormalize_FuzzyMatch(t *testing.T) {
	// Not an exact or substring hit for any variant, but enough word
	// overlap with the house-rent variants to clear the fuzzy threshold.
	match, ok := ingestion.Normalize("Rent House Allow")
	assert.True(t, ok)
	assert.Equal(t, ingestion.FieldHRA, match.Field)
	assert.Equal(t, ingestion.ConfidenceLow, match.Confidence)
}

func TestNormalize_NoMatch(t *testing.T) {
	for _, header := range []string{"Favourite Colour", "ZZZZ", ""} {
		_, ok := ingestion.Normalize(header)
		assert.False(t, ok, "header %q should not match", header)
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	for _, header := range []string{"HRA", "Employee Name", "Favourite Colour", "net pay"} {
		first, okFirst := ingestion.Normalize(header)
		second, okSecond := ingestion.Normalize(header)
		assert.Equal(t, okFirst, okSecond)
		assert.Equal(t, first, second)
	}
}
