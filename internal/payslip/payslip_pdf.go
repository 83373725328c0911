package payslip

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// rupees formats an amount with Indian digit grouping, e.g. "Rs. 1,25,000.00".
func rupees(v float64) string {
	p := message.NewPrinter(language.MustParse("en-IN"))
	return p.Sprintf("Rs. %v", number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// buildPayslipPDF renders one payslip as an A4 PDF document.
func buildPayslipPDF(p Payslip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, p.CompanyName)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, p.CompanyAddress)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Payslip for %s", p.PayPeriod))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s", p.EmployeeName))
	pdf.Ln(6)
	if p.EmployeeCode != "" {
		pdf.Cell(0, 7, fmt.Sprintf("Employee Code: %s", p.EmployeeCode))
		pdf.Ln(6)
	}
	if p.Designation != "" {
		pdf.Cell(0, 7, fmt.Sprintf("Designation: %s", p.Designation))
		pdf.Ln(6)
	}
	pdf.Cell(0, 7, fmt.Sprintf("Department: %s", p.Department))
	pdf.Ln(6)
	if p.WorkingDays > 0 {
		pdf.Cell(0, 7, fmt.Sprintf("Days: %d worked of %d", p.PresentDays, p.WorkingDays))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	writeAmountRow := func(label string, v float64) {
		if v == 0 {
			return
		}
		pdf.Cell(90, 6, label)
		pdf.CellFormat(60, 6, rupees(v), "", 0, "R", false, 0, "")
		pdf.Ln(6)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 8, "Earnings")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 10)
	writeAmountRow("Basic Salary", p.BasicSalary)
	writeAmountRow("HRA", p.HRA)
	writeAmountRow("Transport Allowance", p.TransportAllowance)
	writeAmountRow("Medical Allowance", p.MedicalAllowance)
	writeAmountRow("Other Allowances", p.OtherAllowances)
	writeAmountRow("Performance Allowance", p.PerformanceAllowance)
	writeAmountRow("Skill Allowance", p.SkillAllowance)
	writeAmountRow("Attendance Incentive", p.AttendanceIncentive)
	writeAmountRow("Overtime", p.EarnedOS)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(90, 7, "Gross Earnings")
	pdf.CellFormat(60, 7, rupees(p.TotalEarningGross), "T", 0, "R", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 8, "Deductions")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 10)
	writeAmountRow("Provident Fund", p.PFDeduction)
	writeAmountRow("Professional Tax", p.TaxDeduction)
	writeAmountRow("ESIC", p.InsuranceDeduction)
	writeAmountRow("Other Deductions", p.OtherDeductions)
	writeAmountRow("Service Charge", p.ServiceCharge)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(90, 7, "Total Deductions")
	pdf.CellFormat(60, 7, rupees(p.TotalDeductions), "T", 0, "R", false, 0, "")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(90, 9, "Net Salary")
	pdf.CellFormat(60, 9, rupees(p.Net()), "T", 0, "R", false, 0, "")
	pdf.Ln(12)

	if p.BankName != "" || p.BankAccountNumber != "" {
		pdf.SetFont("Helvetica", "", 9)
		pdf.Cell(0, 6, fmt.Sprintf("Bank: %s  A/C: %s  IFSC: %s",
			p.BankName, p.BankAccountNumber, p.IFSCCode))
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
