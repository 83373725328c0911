package payslip

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"payslip-portal/internal/ingestion"

	"github.com/google/uuid"
)

// JSONMap stores a string map as a jsonb column.
type JSONMap map[string]string

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			b = []byte(s)
		} else {
			return errors.New("jsonb scan: unsupported source type")
		}
	}
	return json.Unmarshal(b, m)
}

// JSONMappings stores the column mappings an import resolved, as jsonb.
type JSONMappings []ingestion.ColumnMapping

func (m JSONMappings) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMappings) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			b = []byte(s)
		} else {
			return errors.New("jsonb scan: unsupported source type")
		}
	}
	return json.Unmarshal(b, m)
}

type Payslip struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`

	SerialNumber int    `gorm:"not null;default:0"`
	EmployeeName string `gorm:"type:varchar(200);not null;index"`
	EmployeeID   string `gorm:"type:varchar(60);index"`
	EmployeeCode string `gorm:"type:varchar(60);index"`
	Designation  string `gorm:"type:varchar(120)"`
	Department   string `gorm:"type:varchar(120);not null;default:'General'"`
	PayPeriod    string `gorm:"type:varchar(40);not null;index:idx_period_employee"`

	BasicSalary        float64 `gorm:"not null;default:0"`
	SalaryFixedPart    float64 `gorm:"not null;default:0"`
	SalaryVariablePart float64 `gorm:"not null;default:0"`

	WorkingDays int     `gorm:"not null;default:0"`
	PresentDays int     `gorm:"not null;default:0"`
	OSHours     float64 `gorm:"column:os_hours;not null;default:0"`

	EarnedBasic          float64 `gorm:"not null;default:0"`
	EarnedHRA            float64 `gorm:"column:earned_hra;not null;default:0"`
	EarnedOS             float64 `gorm:"column:earned_os;not null;default:0"`
	OtherEarning         float64 `gorm:"not null;default:0"`
	PerformanceAllowance float64 `gorm:"not null;default:0"`
	SkillAllowance       float64 `gorm:"not null;default:0"`
	AttendanceIncentive  float64 `gorm:"not null;default:0"`

	HRA                float64 `gorm:"column:hra;not null;default:0"`
	TransportAllowance float64 `gorm:"not null;default:0"`
	MedicalAllowance   float64 `gorm:"not null;default:0"`
	OtherAllowances    float64 `gorm:"not null;default:0"`

	TotalEarningGross float64 `gorm:"not null;default:0"`

	PFDeduction        float64 `gorm:"column:pf_deduction;not null;default:0"`
	TaxDeduction       float64 `gorm:"not null;default:0"`
	InsuranceDeduction float64 `gorm:"not null;default:0"`
	OtherDeductions    float64 `gorm:"not null;default:0"`
	TotalDeductions    float64 `gorm:"not null;default:0"`
	ServiceCharge      float64 `gorm:"not null;default:0"`

	// Nullable so rows imported before the net column existed stay
	// distinguishable from a genuine zero.
	NetSalary *float64 `gorm:"index"`

	BankName          string `gorm:"type:varchar(120)"`
	BankAccountNumber string `gorm:"type:varchar(40)"`
	IFSCCode          string `gorm:"column:ifsc_code;type:varchar(20)"`

	CompanyName    string `gorm:"type:varchar(200);not null"`
	CompanyAddress string `gorm:"type:varchar(300)"`

	// Audit trail of the import that produced this record.
	OriginalData   JSONMap      `gorm:"type:jsonb"`
	ColumnMappings JSONMappings `gorm:"type:jsonb"`
	ExtraFields    JSONMap      `gorm:"type:jsonb"`

	UploadID *uuid.UUID `gorm:"type:uuid;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Payslip) TableName() string {
	return "payslips"
}

// FromData maps a converted import record onto a persistable payslip row.
func FromData(d ingestion.PayslipData) Payslip {
	net := d.NetSalary
	return Payslip{
		SerialNumber:         d.SerialNumber,
		EmployeeName:         d.EmployeeName,
		EmployeeID:           d.EmployeeID,
		EmployeeCode:         d.EmployeeCode,
		Designation:          d.Designation,
		Department:           d.Department,
		PayPeriod:            d.PayPeriod,
		BasicSalary:          d.BasicSalary,
		SalaryFixedPart:      d.SalaryFixedPart,
		SalaryVariablePart:   d.SalaryVariablePart,
		WorkingDays:          d.WorkingDays,
		PresentDays:          d.PresentDays,
		OSHours:              d.OSHours,
		EarnedBasic:          d.EarnedBasic,
		EarnedHRA:            d.EarnedHRA,
		EarnedOS:             d.EarnedOS,
		OtherEarning:         d.OtherEarning,
		PerformanceAllowance: d.PerformanceAllowance,
		SkillAllowance:       d.SkillAllowance,
		AttendanceIncentive:  d.AttendanceIncentive,
		HRA:                  d.HRA,
		TransportAllowance:   d.TransportAllowance,
		MedicalAllowance:     d.MedicalAllowance,
		OtherAllowances:      d.OtherAllowances,
		TotalEarningGross:    d.TotalEarningGross,
		PFDeduction:          d.PFDeduction,
		TaxDeduction:         d.TaxDeduction,
		InsuranceDeduction:   d.InsuranceDeduction,
		OtherDeductions:      d.OtherDeductions,
		TotalDeductions:      d.TotalDeductions,
		ServiceCharge:        d.ServiceCharge,
		NetSalary:            &net,
		BankName:             d.BankName,
		BankAccountNumber:    d.BankAccountNumber,
		IFSCCode:             d.IFSCCode,
		CompanyName:          d.CompanyName,
		CompanyAddress:       d.CompanyAddress,
		OriginalData:         JSONMap(d.OriginalData),
		ColumnMappings:       JSONMappings(d.ColumnMappings),
		ExtraFields:          JSONMap(d.ExtraFields),
	}
}

// Net returns the stored net salary, treating NULL as zero.
func (p *Payslip) Net() float64 {
	if p.NetSalary == nil {
		return 0
	}
	return *p.NetSalary
}
