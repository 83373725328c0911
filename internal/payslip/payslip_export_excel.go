package payslip

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// exportColumns is the header row of the generated workbook, matching the
// fixed payroll template so exported files round-trip through the strict
// import.
var exportColumns = []string{
	"S.No", "Employee Name", "Employee Code", "Designation", "Department",
	"Pay Period", "Basic", "HRA", "W Day", "Present", "OS Hours",
	"Basic_Earned", "HRA_Earned", "OS", "OTHER EARNING",
	"PERFORMANCE ALLOWANCE", "SKILL ALLOWANCE", "Att. Incentive / Att. Bonus",
	"Total Earning (Gross)", "PF", "ESIC", "PT", "Other Deductions",
	"SERVICE CHARGE", "Total Deductions", "FINAL NET PAY",
	"Bank Name", "Bank Account Number", "IFSC Code",
}

// buildPayslipWorkbook renders payslips as a single-sheet xlsx.
func buildPayslipWorkbook(payslips []Payslip) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	for i, name := range exportColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return nil, err
		}
	}

	for rowIdx, p := range payslips {
		values := []any{
			p.SerialNumber, p.EmployeeName, p.EmployeeCode, p.Designation,
			p.Department, p.PayPeriod, p.BasicSalary, p.HRA, p.WorkingDays,
			p.PresentDays, p.OSHours, p.EarnedBasic, p.EarnedHRA, p.EarnedOS,
			p.OtherEarning, p.PerformanceAllowance, p.SkillAllowance,
			p.AttendanceIncentive, p.TotalEarningGross, p.PFDeduction,
			p.InsuranceDeduction, p.TaxDeduction, p.OtherDeductions,
			p.ServiceCharge, p.TotalDeductions, p.Net(),
			p.BankName, p.BankAccountNumber, p.IFSCCode,
		}

		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
