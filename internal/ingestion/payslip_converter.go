package ingestion

import (
	"strconv"
	"strings"
	"time"
)

// Company details stamped on records whose source sheet carries none.
const (
	DefaultCompanyName    = "RV Associates"
	DefaultCompanyAddress = "Aarya Exotica, opposite KD-10, Bil, Vadodara 391410"
)

// PayslipData is one canonical payslip record produced from a single source
// row. The fixed fields cover the well-known payroll columns; everything the
// dictionary could not map survives in ExtraFields, and the verbatim source
// row plus the mappings used to build the record are kept for audit.
type PayslipData struct {
	SerialNumber int
	EmployeeName string
	EmployeeID   string
	EmployeeCode string
	Designation  string
	Department   string
	PayPeriod    string

	BasicSalary        float64
	SalaryFixedPart    float64
	SalaryVariablePart float64

	WorkingDays int
	PresentDays int
	OSHours     float64

	EarnedBasic          float64
	EarnedHRA            float64
	EarnedOS             float64
	OtherEarning         float64
	PerformanceAllowance float64
	SkillAllowance       float64
	AttendanceIncentive  float64

	HRA                float64
	TransportAllowance float64
	MedicalAllowance   float64
	OtherAllowances    float64

	TotalEarningGross float64

	PFDeduction        float64
	TaxDeduction       float64
	InsuranceDeduction float64
	OtherDeductions    float64
	TotalDeductions    float64
	ServiceCharge      float64

	NetSalary float64

	BankName          string
	BankAccountNumber string
	IFSCCode          string

	CompanyName    string
	CompanyAddress string

	OriginalData   RowRecord
	ColumnMappings []ColumnMapping
	ExtraFields    map[string]string
}

// fallbackChain lists alternate source-column spellings tried, in order, when
// the mapping pass left a canonical field unset. First non-empty cell wins.
type fallbackChain struct {
	Field   CanonicalField
	Columns []string
}

var flexibleFallbacks = []fallbackChain{
	{FieldSerialNumber, []string{"S.No", "serial", "sno", "sr.no"}},
	{FieldEmployeeCode, []string{"Employee Code", "emp code", "empcode", "code"}},
	{FieldEmployeeName, []string{"Employee Name", "emp name", "name", "full name"}},
	{FieldEmployeeID, []string{"Employee Code", "emp code", "empcode", "code"}},
	{FieldDesignation, []string{"Designation", "position", "role", "job title"}},
	{FieldDepartment, []string{"Department", "dept", "division"}},
	{FieldBasicSalary, []string{"Basic", "basic salary", "basic pay"}},
	{FieldHRA, []string{"HRA", "house rent allowance"}},
	{FieldTransportAllowance, []string{"Transport Allowance", "transport", "conveyance"}},
	{FieldMedicalAllowance, []string{"Medical Allowance", "medical"}},
	{FieldOtherAllowances, []string{"OTHER EARNING", "other earning", "other earnings"}},
	{FieldWorkingDays, []string{"W Day", "working days", "work days"}},
	{FieldPresentDays, []string{"Present", "present days", "days present"}},
	{FieldOSHours, []string{"OS Hours", "overtime hours", "ot hours"}},
	{FieldEarnedBasic, []string{"Basic_Earned", "basic earned", "Basic"}},
	{FieldEarnedHRA, []string{"HRA_Earned", "hra earned", "HRA"}},
	{FieldEarnedOS, []string{"OS", "overtime", "ot"}},
	{FieldOtherEarning, []string{"OTHER EARNING", "other earning"}},
	{FieldPerformanceAllow, []string{"PERFORMANCE ALLOWANCE", "performance", "bonus"}},
	{FieldSkillAllowance, []string{"SKILL ALLOWANCE", "skill", "special allowance"}},
	{FieldAttendanceIncentive, []string{"Att. Incentive / Att. Bonus", "attendance incentive"}},
	{FieldTotalEarningGross, []string{"Total Earning (Gross)", "total earning", "gross", "gross salary"}},
	{FieldPFDeduction, []string{"PF", "provident fund", "epf"}},
	{FieldTaxDeduction, []string{"PT", "professional tax", "tax", "income tax"}},
	{FieldInsuranceDeduction, []string{"ESIC", "esi", "employee state insurance"}},
	{FieldOtherDeductions, []string{"Other Deductions", "other deduction", "misc deduction"}},
	{FieldNetSalary, []string{"FINAL NET PAY", "final net pay", "net payment", "net pay", "take home"}},
	{FieldBankName, []string{"Bank Name", "bank"}},
	{FieldBankAccountNumber, []string{"Bank Account Number", "account number", "acc no"}},
	{FieldIFSCCode, []string{"IFSC Code", "ifsc", "bank code"}},
	{FieldServiceCharge, []string{"SERVICE CHARGE", "service charge"}},
}

// ConvertFlexible builds a canonical payslip record from one raw row and the
// column mappings resolved for its sheet.
//
// Mapped columns are written first, coerced by their field kind. Conventional
// fallback column spellings then fill anything the mapping pass left unset.
// Totals are computed only when the source did not supply them directly: a
// sheet that carries its own net-pay column is trusted as-is, by design.
func ConvertFlexible(row RowRecord, mappings []ColumnMapping) PayslipData {
	p := newPayslipData()
	p.OriginalData = cloneRow(row)
	p.ColumnMappings = append([]ColumnMapping(nil), mappings...)

	supplied := make(map[CanonicalField]bool)
	for _, m := range mappings {
		raw := strings.TrimSpace(row[m.DetectedColumn])
		field, ok := m.Canonical()
		if !ok {
			p.ExtraFields[m.DetectedColumn] = raw
			continue
		}
		if raw == "" {
			continue
		}
		p.setField(field, raw)
		supplied[field] = true
	}

	for _, chain := range flexibleFallbacks {
		if supplied[chain.Field] {
			continue
		}
		if raw, ok := lookupColumn(row, chain.Columns); ok {
			p.setField(chain.Field, raw)
			supplied[chain.Field] = true
		}
	}

	p.finish(supplied)
	return p
}

// ConvertStrict builds a payslip record from a row of the fixed payroll
// template. Itemized canteen, advance and sundry deduction columns collapse
// into a single aggregate other-deductions figure.
func ConvertStrict(row RowRecord) PayslipData {
	p := newPayslipData()
	p.OriginalData = cloneRow(row)

	supplied := make(map[CanonicalField]bool)
	set := func(field CanonicalField, column string) {
		raw := strings.TrimSpace(row[column])
		if raw == "" {
			return
		}
		p.setField(field, raw)
		supplied[field] = true
	}

	set(FieldSerialNumber, "S.No")
	set(FieldEmployeeCode, "Employee Code")
	set(FieldEmployeeID, "Employee Code")
	set(FieldEmployeeName, "Employee Name")
	set(FieldDesignation, "Designation")
	set(FieldBasicSalary, "Basic")
	set(FieldHRA, "HRA")
	set(FieldWorkingDays, "W Day")
	set(FieldPresentDays, "Present")
	set(FieldOSHours, "OS Hours")
	set(FieldEarnedBasic, "Basic_Earned")
	set(FieldEarnedHRA, "HRA_Earned")
	set(FieldEarnedOS, "OS")
	set(FieldOtherEarning, "OTHER EARNING")
	set(FieldPerformanceAllow, "PERFORMANCE ALLOWANCE")
	set(FieldSkillAllowance, "SKILL ALLOWANCE")
	set(FieldAttendanceIncentive, "Att. Incentive / Att. Bonus")
	set(FieldTotalEarningGross, "Total Earning (Gross)")
	set(FieldPFDeduction, "PF")
	set(FieldTaxDeduction, "PT")
	set(FieldInsuranceDeduction, "ESIC")
	set(FieldTotalDeductions, "Total Deductions")
	set(FieldNetSalary, "FINAL NET PAY")
	set(FieldBankName, "Bank Name")
	set(FieldBankAccountNumber, "Bank Account Number")
	set(FieldIFSCCode, "IFSC Code")
	set(FieldServiceCharge, "SERVICE CHARGE")

	var other float64
	var otherSupplied bool
	for _, column := range []string{
		"Other Deductions", "GPA", "Police Verification", "Hostel",
		"Lunch / Dinner", "BANK", "Maintenance", "LIGHT BILL",
	} {
		raw := strings.TrimSpace(row[column])
		if raw == "" {
			continue
		}
		other += parseAmount(raw)
		otherSupplied = true
	}
	if otherSupplied {
		p.OtherDeductions = other
		supplied[FieldOtherDeductions] = true
	}

	p.finish(supplied)
	return p
}

func newPayslipData() PayslipData {
	return PayslipData{
		PayPeriod:      time.Now().Format("January 2006"),
		CompanyName:    DefaultCompanyName,
		CompanyAddress: DefaultCompanyAddress,
		ExtraFields:    make(map[string]string),
	}
}

// finish applies defaults and the fallback totals policy after all source
// columns have been consumed.
func (p *PayslipData) finish(supplied map[CanonicalField]bool) {
	if p.Department == "" {
		p.Department = "General"
	}

	if !supplied[FieldTotalEarningGross] {
		p.TotalEarningGross = firstNonZero(p.EarnedBasic, p.BasicSalary) +
			firstNonZero(p.EarnedHRA, p.HRA) +
			p.EarnedOS +
			firstNonZero(p.OtherEarning, p.OtherAllowances) +
			p.PerformanceAllowance +
			p.SkillAllowance +
			p.AttendanceIncentive +
			p.TransportAllowance +
			p.MedicalAllowance
	}

	if !supplied[FieldTotalDeductions] {
		p.TotalDeductions = p.PFDeduction + p.TaxDeduction + p.InsuranceDeduction +
			p.OtherDeductions + p.ServiceCharge
	}

	if !supplied[FieldNetSalary] {
		p.NetSalary = p.TotalEarningGross - p.TotalDeductions
	}
}

func (p *PayslipData) setField(field CanonicalField, raw string) {
	switch field {
	case FieldSerialNumber:
		p.SerialNumber = parseCount(raw)
	case FieldEmployeeName:
		p.EmployeeName = strings.TrimSpace(raw)
	case FieldEmployeeID:
		p.EmployeeID = strings.TrimSpace(raw)
	case FieldEmployeeCode:
		p.EmployeeCode = strings.TrimSpace(raw)
	case FieldDesignation:
		p.Designation = strings.TrimSpace(raw)
	case FieldDepartment:
		p.Department = strings.TrimSpace(raw)
	case FieldPayPeriod:
		p.PayPeriod = strings.TrimSpace(raw)
	case FieldBasicSalary:
		p.BasicSalary = parseAmount(raw)
	case FieldSalaryFixedPart:
		p.SalaryFixedPart = parseAmount(raw)
	case FieldSalaryVariablePart:
		p.SalaryVariablePart = parseAmount(raw)
	case FieldWorkingDays:
		p.WorkingDays = parseCount(raw)
	case FieldPresentDays:
		p.PresentDays = parseCount(raw)
	case FieldOSHours:
		p.OSHours = parseAmount(raw)
	case FieldEarnedBasic:
		p.EarnedBasic = parseAmount(raw)
	case FieldEarnedHRA:
		p.EarnedHRA = parseAmount(raw)
	case FieldEarnedOS:
		p.EarnedOS = parseAmount(raw)
	case FieldOtherEarning:
		p.OtherEarning = parseAmount(raw)
	case FieldPerformanceAllow:
		p.PerformanceAllowance = parseAmount(raw)
	case FieldSkillAllowance:
		p.SkillAllowance = parseAmount(raw)
	case FieldAttendanceIncentive:
		p.AttendanceIncentive = parseAmount(raw)
	case FieldHRA:
		p.HRA = parseAmount(raw)
	case FieldTransportAllowance:
		p.TransportAllowance = parseAmount(raw)
	case FieldMedicalAllowance:
		p.MedicalAllowance = parseAmount(raw)
	case FieldOtherAllowances:
		p.OtherAllowances = parseAmount(raw)
	case FieldTotalEarningGross:
		p.TotalEarningGross = parseAmount(raw)
	case FieldPFDeduction:
		p.PFDeduction = parseAmount(raw)
	case FieldTaxDeduction:
		p.TaxDeduction = parseAmount(raw)
	case FieldInsuranceDeduction:
		p.InsuranceDeduction = parseAmount(raw)
	case FieldOtherDeductions:
		p.OtherDeductions = parseAmount(raw)
	case FieldTotalDeductions:
		p.TotalDeductions = parseAmount(raw)
	case FieldNetSalary:
		p.NetSalary = parseAmount(raw)
	case FieldBankName:
		p.BankName = strings.TrimSpace(raw)
	case FieldBankAccountNumber:
		p.BankAccountNumber = strings.TrimSpace(raw)
	case FieldIFSCCode:
		p.IFSCCode = strings.TrimSpace(raw)
	case FieldServiceCharge:
		p.ServiceCharge = parseAmount(raw)
	case FieldCompanyName:
		p.CompanyName = strings.TrimSpace(raw)
	case FieldCompanyAddress:
		p.CompanyAddress = strings.TrimSpace(raw)
	}
}

// lookupColumn finds the first non-empty cell among the given column name
// spellings, comparing keys case- and separator-insensitively.
func lookupColumn(row RowRecord, columns []string) (string, bool) {
	for _, column := range columns {
		want := normalizeHeaderText(column)
		for key, value := range row {
			if normalizeHeaderText(key) != want {
				continue
			}
			if v := strings.TrimSpace(value); v != "" {
				return v, true
			}
		}
	}
	return "", false
}

func cloneRow(row RowRecord) RowRecord {
	out := make(RowRecord, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

func firstNonZero(values ...float64) float64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

// parseAmount reads a money or hours cell. Thousands separators are dropped;
// anything unparseable degrades to zero rather than failing the row.
func parseAmount(raw string) float64 {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseCount(raw string) int {
	return int(parseAmount(raw))
}
