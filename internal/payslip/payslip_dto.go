package payslip

import "payslip-portal/internal/ingestion"

type CreatePayslipRequest struct {
	SerialNumber int    `json:"serial_number"`
	EmployeeName string `json:"employee_name" binding:"required"`
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	Designation  string `json:"designation"`
	Department   string `json:"department"`
	PayPeriod    string `json:"pay_period" binding:"required"`

	BasicSalary        float64 `json:"basic_salary"`
	SalaryFixedPart    float64 `json:"salary_fixed_part"`
	SalaryVariablePart float64 `json:"salary_variable_part"`

	WorkingDays int     `json:"working_days"`
	PresentDays int     `json:"present_days"`
	OSHours     float64 `json:"os_hours"`

	EarnedBasic          float64 `json:"earned_basic"`
	EarnedHRA            float64 `json:"earned_hra"`
	EarnedOS             float64 `json:"earned_os"`
	OtherEarning         float64 `json:"other_earning"`
	PerformanceAllowance float64 `json:"performance_allowance"`
	SkillAllowance       float64 `json:"skill_allowance"`
	AttendanceIncentive  float64 `json:"attendance_incentive"`

	HRA                float64 `json:"hra"`
	TransportAllowance float64 `json:"transport_allowance"`
	MedicalAllowance   float64 `json:"medical_allowance"`
	OtherAllowances    float64 `json:"other_allowances"`

	TotalEarningGross float64 `json:"total_earning_gross"`

	PFDeduction        float64 `json:"pf_deduction"`
	TaxDeduction       float64 `json:"tax_deduction"`
	InsuranceDeduction float64 `json:"insurance_deduction"`
	OtherDeductions    float64 `json:"other_deductions"`
	TotalDeductions    float64 `json:"total_deductions"`
	ServiceCharge      float64 `json:"service_charge"`

	NetSalary *float64 `json:"net_salary"`

	BankName          string `json:"bank_name"`
	BankAccountNumber string `json:"bank_account_number"`
	IFSCCode          string `json:"ifsc_code"`

	CompanyName    string `json:"company_name"`
	CompanyAddress string `json:"company_address"`
}

type UpdatePayslipRequest struct {
	CreatePayslipRequest
}

type GetPayslipsFilterRequest struct {
	PayPeriod    string `form:"pay_period"`
	EmployeeCode string `form:"employee_code"`
	Department   string `form:"department"`
	Search       string `form:"search"`
}

type PayslipResponse struct {
	ID           string `json:"id"`
	SerialNumber int    `json:"serial_number"`
	EmployeeName string `json:"employee_name"`
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	Designation  string `json:"designation"`
	Department   string `json:"department"`
	PayPeriod    string `json:"pay_period"`

	BasicSalary        float64 `json:"basic_salary"`
	SalaryFixedPart    float64 `json:"salary_fixed_part"`
	SalaryVariablePart float64 `json:"salary_variable_part"`

	WorkingDays int     `json:"working_days"`
	PresentDays int     `json:"present_days"`
	OSHours     float64 `json:"os_hours"`

	EarnedBasic          float64 `json:"earned_basic"`
	EarnedHRA            float64 `json:"earned_hra"`
	EarnedOS             float64 `json:"earned_os"`
	OtherEarning         float64 `json:"other_earning"`
	PerformanceAllowance float64 `json:"performance_allowance"`
	SkillAllowance       float64 `json:"skill_allowance"`
	AttendanceIncentive  float64 `json:"attendance_incentive"`

	HRA                float64 `json:"hra"`
	TransportAllowance float64 `json:"transport_allowance"`
	MedicalAllowance   float64 `json:"medical_allowance"`
	OtherAllowances    float64 `json:"other_allowances"`

	TotalEarningGross float64 `json:"total_earning_gross"`

	PFDeduction        float64 `json:"pf_deduction"`
	TaxDeduction       float64 `json:"tax_deduction"`
	InsuranceDeduction float64 `json:"insurance_deduction"`
	OtherDeductions    float64 `json:"other_deductions"`
	TotalDeductions    float64 `json:"total_deductions"`
	ServiceCharge      float64 `json:"service_charge"`

	NetSalary float64 `json:"net_salary"`

	BankName          string `json:"bank_name"`
	BankAccountNumber string `json:"bank_account_number"`
	IFSCCode          string `json:"ifsc_code"`

	CompanyName    string `json:"company_name"`
	CompanyAddress string `json:"company_address"`

	OriginalData   map[string]string         `json:"original_data,omitempty"`
	ColumnMappings []ingestion.ColumnMapping `json:"column_mappings,omitempty"`
	ExtraFields    map[string]string         `json:"extra_fields,omitempty"`

	UploadID  *string `json:"upload_id,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type PeriodSummaryResponse struct {
	PayPeriod       string  `json:"pay_period"`
	PayslipCount    int64   `json:"payslip_count"`
	TotalGross      float64 `json:"total_gross"`
	TotalDeductions float64 `json:"total_deductions"`
	TotalNet        float64 `json:"total_net"`
	AverageNet      float64 `json:"average_net"`
	MinNet          float64 `json:"min_net"`
	MaxNet          float64 `json:"max_net"`
}

type FixZeroNetResponse struct {
	Scanned int `json:"scanned"`
	Fixed   int `json:"fixed"`
	Failed  int `json:"failed"`
}
