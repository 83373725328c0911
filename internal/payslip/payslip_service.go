package payslip

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"strings"
	"time"

	"payslip-portal/internal/ingestion"
	paysliperrors "payslip-portal/internal/payslip/errors"
	"payslip-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// netTolerance is the smallest difference treated as a real change when
// deciding whether a recalculation altered a stored amount.
const netTolerance = 0.01

//go:generate mockgen -source=payslip_service.go -destination=mock/payslip_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreatePayslipRequest) (PayslipResponse, error)
	GetAll(ctx context.Context, filter GetPayslipsFilterRequest) ([]PayslipResponse, error)
	GetByID(ctx context.Context, id string) (PayslipResponse, error)
	Update(ctx context.Context, id string, req UpdatePayslipRequest) (PayslipResponse, error)
	Delete(ctx context.Context, id string) error
	Recalculate(ctx context.Context, id string) (PayslipResponse, error)
	FixZeroNetSalaries(ctx context.Context) (FixZeroNetResponse, error)
	Summary(ctx context.Context, payPeriod string) (PeriodSummaryResponse, error)
	ListPeriods(ctx context.Context) ([]string, error)
	ExportExcel(ctx context.Context, filter GetPayslipsFilterRequest) ([]byte, error)
	ExportPDF(ctx context.Context, id string) ([]byte, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo, logger: zap.L()}
}

func (s *service) Create(ctx context.Context, req CreatePayslipRequest) (PayslipResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayslipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := validatePayslipRequest(req); err != nil {
		return PayslipResponse{}, err
	}

	p := &Payslip{ID: uuid.New()}
	applyRequest(p, req)

	if err := qtx.Create(ctx, p); err != nil {
		return PayslipResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayslipResponse{}, err
	}

	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context, filter GetPayslipsFilterRequest) ([]PayslipResponse, error) {
	payslips, err := s.repo.FindAll(ctx, QueryFilter{
		PayPeriod:    filter.PayPeriod,
		EmployeeCode: filter.EmployeeCode,
		Department:   filter.Department,
		Search:       filter.Search,
	})
	if err != nil {
		return nil, err
	}

	return mapToListResponse(payslips), nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayslipResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PayslipResponse{}, paysliperrors.ErrInvalidPayslipID
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, paysliperrors.ErrPayslipNotFound
		}
		return PayslipResponse{}, err
	}

	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdatePayslipRequest) (PayslipResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayslipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := uuid.Parse(id); err != nil {
		return PayslipResponse{}, paysliperrors.ErrInvalidPayslipID
	}
	if err := validatePayslipRequest(req.CreatePayslipRequest); err != nil {
		return PayslipResponse{}, err
	}

	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, paysliperrors.ErrPayslipNotFound
		}
		return PayslipResponse{}, err
	}

	applyRequest(p, req.CreatePayslipRequest)

	if err := qtx.Update(ctx, p); err != nil {
		return PayslipResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayslipResponse{}, err
	}

	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := uuid.Parse(id); err != nil {
		return paysliperrors.ErrInvalidPayslipID
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

// Recalculate rebuilds the gross, deduction and net totals of one payslip
// from its component amounts. Running it again on an already consistent
// record is a no-op.
func (s *service) Recalculate(ctx context.Context, id string) (PayslipResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayslipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := uuid.Parse(id); err != nil {
		return PayslipResponse{}, paysliperrors.ErrInvalidPayslipID
	}

	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, paysliperrors.ErrPayslipNotFound
		}
		return PayslipResponse{}, err
	}

	if recalcTotals(p) {
		if err := qtx.Update(ctx, p); err != nil {
			return PayslipResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return PayslipResponse{}, err
	}

	return mapToResponse(*p), nil
}

// FixZeroNetSalaries recalculates every payslip whose net salary is zero or
// missing. A failure on one record is logged and counted, never aborting the
// rest of the batch.
func (s *service) FixZeroNetSalaries(ctx context.Context) (FixZeroNetResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	payslips, err := s.repo.FindMissingNet(ctx)
	if err != nil {
		return FixZeroNetResponse{}, err
	}

	result := FixZeroNetResponse{Scanned: len(payslips)}

	for i := range payslips {
		p := payslips[i]
		if !recalcTotals(&p) {
			continue
		}

		if err := s.repo.Update(ctx, &p); err != nil {
			result.Failed++
			logger.Warn("net salary fix failed for payslip",
				zap.String("payslip_id", p.ID.String()),
				zap.String("employee_name", p.EmployeeName),
				zap.Error(err),
			)
			continue
		}
		result.Fixed++
	}

	logger.Info("net salary fix batch finished",
		zap.Int("scanned", result.Scanned),
		zap.Int("fixed", result.Fixed),
		zap.Int("failed", result.Failed),
	)

	return result, nil
}

func (s *service) Summary(ctx context.Context, payPeriod string) (PeriodSummaryResponse, error) {
	if err := validatePayPeriod(payPeriod); err != nil {
		return PeriodSummaryResponse{}, err
	}

	summary, err := s.repo.SummarizeByPeriod(ctx, payPeriod)
	if err != nil {
		return PeriodSummaryResponse{}, err
	}

	resp := PeriodSummaryResponse{
		PayPeriod:       summary.PayPeriod,
		PayslipCount:    summary.PayslipCount,
		TotalGross:      summary.TotalGross,
		TotalDeductions: summary.TotalDeductions,
		TotalNet:        summary.TotalNet,
		MinNet:          summary.MinNet,
		MaxNet:          summary.MaxNet,
	}
	if summary.PayslipCount > 0 {
		resp.AverageNet = summary.TotalNet / float64(summary.PayslipCount)
	}
	return resp, nil
}

func (s *service) ListPeriods(ctx context.Context) ([]string, error) {
	return s.repo.ListPeriods(ctx)
}

func (s *service) ExportExcel(ctx context.Context, filter GetPayslipsFilterRequest) ([]byte, error) {
	payslips, err := s.repo.FindAll(ctx, QueryFilter{
		PayPeriod:    filter.PayPeriod,
		EmployeeCode: filter.EmployeeCode,
		Department:   filter.Department,
		Search:       filter.Search,
	})
	if err != nil {
		return nil, err
	}
	if len(payslips) == 0 {
		return nil, paysliperrors.ErrNothingToExport
	}

	return buildPayslipWorkbook(payslips)
}

func (s *service) ExportPDF(ctx context.Context, id string) ([]byte, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, paysliperrors.ErrInvalidPayslipID
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, paysliperrors.ErrPayslipNotFound
		}
		return nil, err
	}

	return buildPayslipPDF(*p)
}

// recalcTotals recomputes the three totals from component amounts and reports
// whether any stored value actually changed.
func recalcTotals(p *Payslip) bool {
	gross := p.BasicSalary +
		p.HRA +
		p.TransportAllowance +
		p.MedicalAllowance +
		p.OtherAllowances +
		p.PerformanceAllowance

	deductions := p.PFDeduction +
		p.TaxDeduction +
		p.InsuranceDeduction +
		p.OtherDeductions

	net := gross - deductions

	changed := math.Abs(p.TotalEarningGross-gross) > netTolerance ||
		math.Abs(p.TotalDeductions-deductions) > netTolerance ||
		p.NetSalary == nil ||
		math.Abs(*p.NetSalary-net) > netTolerance

	if changed {
		p.TotalEarningGross = gross
		p.TotalDeductions = deductions
		p.NetSalary = &net
	}
	return changed
}

func validatePayslipRequest(req CreatePayslipRequest) error {
	if strings.TrimSpace(req.EmployeeName) == "" {
		return paysliperrors.ErrMissingEmployeeName
	}
	return validatePayPeriod(req.PayPeriod)
}

func validatePayPeriod(v string) error {
	if _, err := time.Parse("January 2006", v); err != nil {
		return paysliperrors.ErrInvalidPayPeriod
	}
	return nil
}

func applyRequest(p *Payslip, req CreatePayslipRequest) {
	p.SerialNumber = req.SerialNumber
	p.EmployeeName = strings.TrimSpace(req.EmployeeName)
	p.EmployeeID = req.EmployeeID
	p.EmployeeCode = req.EmployeeCode
	p.Designation = req.Designation
	p.Department = req.Department
	if p.Department == "" {
		p.Department = "General"
	}
	p.PayPeriod = req.PayPeriod

	p.BasicSalary = req.BasicSalary
	p.SalaryFixedPart = req.SalaryFixedPart
	p.SalaryVariablePart = req.SalaryVariablePart
	p.WorkingDays = req.WorkingDays
	p.PresentDays = req.PresentDays
	p.OSHours = req.OSHours
	p.EarnedBasic = req.EarnedBasic
	p.EarnedHRA = req.EarnedHRA
	p.EarnedOS = req.EarnedOS
	p.OtherEarning = req.OtherEarning
	p.PerformanceAllowance = req.PerformanceAllowance
	p.SkillAllowance = req.SkillAllowance
	p.AttendanceIncentive = req.AttendanceIncentive
	p.HRA = req.HRA
	p.TransportAllowance = req.TransportAllowance
	p.MedicalAllowance = req.MedicalAllowance
	p.OtherAllowances = req.OtherAllowances
	p.TotalEarningGross = req.TotalEarningGross
	p.PFDeduction = req.PFDeduction
	p.TaxDeduction = req.TaxDeduction
	p.InsuranceDeduction = req.InsuranceDeduction
	p.OtherDeductions = req.OtherDeductions
	p.TotalDeductions = req.TotalDeductions
	p.ServiceCharge = req.ServiceCharge
	p.BankName = req.BankName
	p.BankAccountNumber = req.BankAccountNumber
	p.IFSCCode = req.IFSCCode

	p.CompanyName = req.CompanyName
	if p.CompanyName == "" {
		p.CompanyName = ingestion.DefaultCompanyName
	}
	p.CompanyAddress = req.CompanyAddress
	if p.CompanyAddress == "" {
		p.CompanyAddress = ingestion.DefaultCompanyAddress
	}

	if req.NetSalary != nil {
		net := *req.NetSalary
		p.NetSalary = &net
	} else {
		recalcTotals(p)
	}
}

func mapToResponse(p Payslip) PayslipResponse {
	resp := PayslipResponse{
		ID:                   p.ID.String(),
		SerialNumber:         p.SerialNumber,
		EmployeeName:         p.EmployeeName,
		EmployeeID:           p.EmployeeID,
		EmployeeCode:         p.EmployeeCode,
		Designation:          p.Designation,
		Department:           p.Department,
		PayPeriod:            p.PayPeriod,
		BasicSalary:          p.BasicSalary,
		SalaryFixedPart:      p.SalaryFixedPart,
		SalaryVariablePart:   p.SalaryVariablePart,
		WorkingDays:          p.WorkingDays,
		PresentDays:          p.PresentDays,
		OSHours:              p.OSHours,
		EarnedBasic:          p.EarnedBasic,
		EarnedHRA:            p.EarnedHRA,
		EarnedOS:             p.EarnedOS,
		OtherEarning:         p.OtherEarning,
		PerformanceAllowance: p.PerformanceAllowance,
		SkillAllowance:       p.SkillAllowance,
		AttendanceIncentive:  p.AttendanceIncentive,
		HRA:                  p.HRA,
		TransportAllowance:   p.TransportAllowance,
		MedicalAllowance:     p.MedicalAllowance,
		OtherAllowances:      p.OtherAllowances,
		TotalEarningGross:    p.TotalEarningGross,
		PFDeduction:          p.PFDeduction,
		TaxDeduction:         p.TaxDeduction,
		InsuranceDeduction:   p.InsuranceDeduction,
		OtherDeductions:      p.OtherDeductions,
		TotalDeductions:      p.TotalDeductions,
		ServiceCharge:        p.ServiceCharge,
		NetSalary:            p.Net(),
		BankName:             p.BankName,
		BankAccountNumber:    p.BankAccountNumber,
		IFSCCode:             p.IFSCCode,
		CompanyName:          p.CompanyName,
		CompanyAddress:       p.CompanyAddress,
		OriginalData:         p.OriginalData,
		ColumnMappings:       p.ColumnMappings,
		ExtraFields:          p.ExtraFields,
		CreatedAt:            p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            p.UpdatedAt.Format(time.RFC3339),
	}

	if p.UploadID != nil {
		v := p.UploadID.String()
		resp.UploadID = &v
	}

	return resp
}

func mapToListResponse(payslips []Payslip) []PayslipResponse {
	resp := make([]PayslipResponse, len(payslips))
	for i, p := range payslips {
		resp[i] = mapToResponse(p)
	}
	return resp
}
