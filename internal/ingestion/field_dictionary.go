package ingestion

// Category groups canonical payslip fields for mapping diagnostics.
type Category string

const (
	CategoryEmployeeInfo Category = "employee_info"
	CategoryEarnings     Category = "earnings"
	CategoryDeductions   Category = "deductions"
	CategoryNetPay       Category = "net_pay"
	CategoryBankDetails  Category = "bank_details"
	CategoryAttendance   Category = "attendance"
	CategoryOther        Category = "other"
)

// Confidence is the qualitative strength of a header-to-field match.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// CanonicalField identifies one of the well-known payslip attributes.
type CanonicalField string

const (
	FieldSerialNumber        CanonicalField = "serial_number"
	FieldEmployeeName        CanonicalField = "employee_name"
	FieldEmployeeID          CanonicalField = "employee_id"
	FieldEmployeeCode        CanonicalField = "employee_code"
	FieldDesignation         CanonicalField = "designation"
	FieldDepartment          CanonicalField = "department"
	FieldPayPeriod           CanonicalField = "pay_period"
	FieldBasicSalary         CanonicalField = "basic_salary"
	FieldSalaryFixedPart     CanonicalField = "salary_fixed_part"
	FieldSalaryVariablePart  CanonicalField = "salary_variable_part"
	FieldWorkingDays         CanonicalField = "working_days"
	FieldPresentDays         CanonicalField = "present_days"
	FieldOSHours             CanonicalField = "os_hours"
	FieldEarnedBasic         CanonicalField = "earned_basic"
	FieldEarnedHRA           CanonicalField = "earned_hra"
	FieldEarnedOS            CanonicalField = "earned_os"
	FieldOtherEarning        CanonicalField = "other_earning"
	FieldPerformanceAllow    CanonicalField = "performance_allowance"
	FieldSkillAllowance      CanonicalField = "skill_allowance"
	FieldAttendanceIncentive CanonicalField = "attendance_incentive"
	FieldHRA                 CanonicalField = "hra"
	FieldTransportAllowance  CanonicalField = "transport_allowance"
	FieldMedicalAllowance    CanonicalField = "medical_allowance"
	FieldOtherAllowances     CanonicalField = "other_allowances"
	FieldTotalEarningGross   CanonicalField = "total_earning_gross"
	FieldPFDeduction         CanonicalField = "pf_deduction"
	FieldTaxDeduction        CanonicalField = "tax_deduction"
	FieldInsuranceDeduction  CanonicalField = "insurance_deduction"
	FieldOtherDeductions     CanonicalField = "other_deductions"
	FieldTotalDeductions     CanonicalField = "total_deductions"
	FieldNetSalary           CanonicalField = "net_salary"
	FieldBankName            CanonicalField = "bank_name"
	FieldBankAccountNumber   CanonicalField = "bank_account_number"
	FieldIFSCCode            CanonicalField = "ifsc_code"
	FieldServiceCharge       CanonicalField = "service_charge"
	FieldCompanyName         CanonicalField = "company_name"
	FieldCompanyAddress      CanonicalField = "company_address"
)

// FieldKind drives cell coercion when a mapped value is written into a payslip.
type FieldKind int

const (
	KindString FieldKind = iota
	KindInt
	KindFloat
)

// Matching tunables. The threshold and the stopword list were calibrated
// against real uploaded ledgers; adjust only with new fixtures.
const fuzzyMatchThreshold = 0.6

var fuzzyStopwords = []string{"the", "and", "of", "to", "in", "for", "with", "by"}

// Scan bounds for malformed workbooks.
const (
	headerScanRows = 5
	maxScanColumns = 100
	maxScanRows    = 1000
)

type fieldSpec struct {
	Field    CanonicalField
	Category Category
	Kind     FieldKind
	Variants []string
}

// fieldDictionary is the process-wide registry of recognized header spellings.
// Declaration order is the tie-break order: within a match pass the first
// field whose variant matches wins. Loaded once, never mutated.
var fieldDictionary = []fieldSpec{
	{FieldSerialNumber, CategoryEmployeeInfo, KindInt,
		[]string{"serial_number", "s_no", "sno", "s.no", "sr_no", "sr no", "s no", "serial no", "sl no", "serial"}},
	{FieldEmployeeName, CategoryEmployeeInfo, KindString,
		[]string{"employee_name", "name", "emp_name", "employee name", "full name", "fullname", "staff name"}},
	{FieldEmployeeCode, CategoryEmployeeInfo, KindString,
		[]string{"employee_code", "emp_code", "code", "employee code", "emp code", "staff code", "empcode"}},
	{FieldEmployeeID, CategoryEmployeeInfo, KindString,
		[]string{"employee_id", "emp_id", "id", "employee id", "emp id", "staff id"}},
	{FieldDesignation, CategoryEmployeeInfo, KindString,
		[]string{"designation", "position", "job_title", "title", "role", "post"}},
	{FieldDepartment, CategoryEmployeeInfo, KindString,
		[]string{"department", "dept", "division", "section"}},
	{FieldPayPeriod, CategoryEmployeeInfo, KindString,
		[]string{"pay_period", "period", "month", "pay period", "salary period", "payroll period"}},

	{FieldBasicSalary, CategoryEarnings, KindFloat,
		[]string{"basic_salary", "basic", "base_salary", "basic pay", "base pay", "basic wage"}},
	{FieldSalaryFixedPart, CategoryEarnings, KindFloat,
		[]string{"salary_fixed_part", "fixed_part", "fixed salary", "fixed pay", "fixed component"}},
	{FieldSalaryVariablePart, CategoryEarnings, KindFloat,
		[]string{"salary_variable_part", "variable_part", "variable salary", "variable pay", "variable component"}},

	{FieldWorkingDays, CategoryAttendance, KindInt,
		[]string{"working_days", "w_day", "w day", "work days", "total days", "days"}},
	{FieldPresentDays, CategoryAttendance, KindInt,
		[]string{"present_days", "present", "attendance", "days present"}},
	{FieldOSHours, CategoryAttendance, KindFloat,
		[]string{"os_hours", "os hours", "overtime hours", "ot hours", "extra hours"}},

	{FieldEarnedBasic, CategoryEarnings, KindFloat,
		[]string{"earned_basic", "earned basic", "basic earned"}},
	{FieldEarnedHRA, CategoryEarnings, KindFloat,
		[]string{"earned_hra", "earned hra", "hra earned"}},
	{FieldEarnedOS, CategoryEarnings, KindFloat,
		[]string{"earned_os", "os", "overtime", "ot", "earned os", "earned overtime"}},
	{FieldOtherEarning, CategoryEarnings, KindFloat,
		[]string{"other_earning", "other earning", "other earnings", "misc earnings", "additional earnings"}},
	{FieldPerformanceAllow, CategoryEarnings, KindFloat,
		[]string{"performance_allowance", "performance", "performance bonus", "perf allowance"}},
	{FieldSkillAllowance, CategoryEarnings, KindFloat,
		[]string{"skill_allowance", "skill", "skill bonus", "technical allowance", "special allowance"}},
	{FieldAttendanceIncentive, CategoryEarnings, KindFloat,
		[]string{"attendance_incentive", "att_incentive", "att incentive", "attendance bonus", "att bonus"}},

	{FieldHRA, CategoryEarnings, KindFloat,
		[]string{"hra", "house_rent_allowance", "house rent allowance", "house rent", "rent allowance", "house allowance"}},
	{FieldTransportAllowance, CategoryEarnings, KindFloat,
		[]string{"transport_allowance", "transport", "conveyance", "travel allowance", "conveyance allowance"}},
	{FieldMedicalAllowance, CategoryEarnings, KindFloat,
		[]string{"medical_allowance", "medical", "health allowance", "medical benefit", "health benefit"}},
	{FieldOtherAllowances, CategoryEarnings, KindFloat,
		[]string{"other_allowances", "other allowances", "misc allowances", "miscellaneous allowances", "additional allowances"}},

	{FieldTotalEarningGross, CategoryEarnings, KindFloat,
		[]string{"total_earning_gross", "total earning", "gross earning", "total earnings", "gross", "gross salary", "total gross", "gross pay", "gross amount"}},

	{FieldPFDeduction, CategoryDeductions, KindFloat,
		[]string{"pf_deduction", "pf", "provident_fund", "provident fund", "epf", "pf contribution"}},
	{FieldTaxDeduction, CategoryDeductions, KindFloat,
		[]string{"tax_deduction", "tax", "income_tax", "income tax", "tds", "tax deducted at source", "pt", "professional tax", "prof tax"}},
	{FieldInsuranceDeduction, CategoryDeductions, KindFloat,
		[]string{"insurance_deduction", "insurance", "health_insurance", "life insurance", "insurance premium", "esic", "esi", "employee state insurance"}},
	{FieldOtherDeductions, CategoryDeductions, KindFloat,
		[]string{"other_deductions", "other deductions", "other deduction", "misc deductions", "misc deduction", "miscellaneous deductions", "additional deductions"}},
	{FieldTotalDeductions, CategoryDeductions, KindFloat,
		[]string{"total_deductions", "total deduction", "deductions", "total ded"}},

	{FieldNetSalary, CategoryNetPay, KindFloat,
		[]string{"net_salary", "net", "take_home", "take home", "net pay", "net payment", "in hand", "net amount", "final net pay", "final net"}},

	{FieldBankName, CategoryBankDetails, KindString,
		[]string{"bank_name", "bank name", "bank", "bank details"}},
	{FieldBankAccountNumber, CategoryBankDetails, KindString,
		[]string{"bank_account_number", "account_number", "account no", "acc no", "bank account", "account"}},
	{FieldIFSCCode, CategoryBankDetails, KindString,
		[]string{"ifsc_code", "ifsc", "ifsc code", "branch code", "bank code"}},
	{FieldServiceCharge, CategoryDeductions, KindFloat,
		[]string{"service_charge", "service charge", "bank charge", "charges"}},

	{FieldCompanyName, CategoryEmployeeInfo, KindString,
		[]string{"company_name", "company", "organization", "employer"}},
	{FieldCompanyAddress, CategoryEmployeeInfo, KindString,
		[]string{"company_address", "company address", "office address"}},
}

var fieldSpecByName = func() map[CanonicalField]*fieldSpec {
	m := make(map[CanonicalField]*fieldSpec, len(fieldDictionary))
	for i := range fieldDictionary {
		m[fieldDictionary[i].Field] = &fieldDictionary[i]
	}
	return m
}()

// KindOf reports the coercion kind registered for a canonical field.
func KindOf(field CanonicalField) FieldKind {
	if spec, ok := fieldSpecByName[field]; ok {
		return spec.Kind
	}
	return KindString
}

// CategoryOf reports the category a canonical field belongs to.
func CategoryOf(field CanonicalField) Category {
	if spec, ok := fieldSpecByName[field]; ok {
		return spec.Category
	}
	return CategoryOther
}
