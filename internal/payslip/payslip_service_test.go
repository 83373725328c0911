package payslip_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"payslip-portal/internal/payslip"
	paysliperrors "payslip-portal/internal/payslip/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakePayslipRepository struct {
	withTxFn         func(tx *sql.Tx) payslip.Repository
	createFn         func(ctx context.Context, p *payslip.Payslip) error
	createBatchFn    func(ctx context.Context, payslips []*payslip.Payslip) error
	findAllFn        func(ctx context.Context, filter payslip.QueryFilter) ([]payslip.Payslip, error)
	findByIDFn       func(ctx context.Context, id string) (*payslip.Payslip, error)
	updateFn         func(ctx context.Context, p *payslip.Payslip) error
	deleteFn         func(ctx context.Context, id string) error
	findMissingNetFn func(ctx context.Context) ([]payslip.Payslip, error)
	summarizeFn      func(ctx context.Context, payPeriod string) (*payslip.PeriodSummary, error)
	listPeriodsFn    func(ctx context.Context) ([]string, error)
}

func (f *fakePayslipRepository) WithTx(tx *sql.Tx) payslip.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakePayslipRepository) Create(ctx context.Context, p *payslip.Payslip) error {
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}
	return nil
}

func (f *fakePayslipRepository) CreateBatch(ctx context.Context, payslips []*payslip.Payslip) error {
	if f.createBatchFn != nil {
		return f.createBatchFn(ctx, payslips)
	}
	return nil
}

func (f *fakePayslipRepository) FindAll(ctx context.Context, filter payslip.QueryFilter) ([]payslip.Payslip, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, filter)
	}
	return nil, nil
}

func (f *fakePayslipRepository) FindByID(ctx context.Context, id string) (*payslip.Payslip, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayslipRepository) Update(ctx context.Context, p *payslip.Payslip) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, p)
	}
	return nil
}

func (f *fakePayslipRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakePayslipRepository) FindMissingNet(ctx context.Context) ([]payslip.Payslip, error) {
	if f.findMissingNetFn != nil {
		return f.findMissingNetFn(ctx)
	}
	return nil, nil
}

func (f *fakePayslipRepository) SummarizeByPeriod(ctx context.Context, payPeriod string) (*payslip.PeriodSummary, error) {
	if f.summarizeFn != nil {
		return f.summarizeFn(ctx, payPeriod)
	}
	return &payslip.PeriodSummary{PayPeriod: payPeriod}, nil
}

func (f *fakePayslipRepository) ListPeriods(ctx context.Context) ([]string, error) {
	if f.listPeriodsFn != nil {
		return f.listPeriodsFn(ctx)
	}
	return nil, nil
}

type payslipServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service payslip.Service
	repo    *fakePayslipRepository
}

func setupPayslipServiceTest(t *testing.T) *payslipServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakePayslipRepository{}
	svc := payslip.NewService(db, repo)

	return &payslipServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestPayslipService_Create_ComputesTotals(t *testing.T) {
	ctx := context.Background()
	deps := setupPayslipServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	var created *payslip.Payslip
	deps.repo.createFn = func(ctx context.Context, p *payslip.Payslip) error {
		created = p
		return nil
	}

	resp, err := deps.service.Create(ctx, payslip.CreatePayslipRequest{
		EmployeeName:       "Asha Patel",
		PayPeriod:          "March 2025",
		BasicSalary:        25000,
		HRA:                10000,
		TransportAllowance: 1500,
		PFDeduction:        3000,
	})

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, 36500.0, resp.TotalEarningGross)
	assert.Equal(t, 3000.0, resp.TotalDeductions)
	assert.Equal(t, 33500.0, resp.NetSalary)
	assert.Equal(t, "General", resp.Department)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayslipService_Create_TrustsSuppliedNet(t *testing.T) {
	ctx := context.Background()
	deps := setupPayslipServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	resp, err := deps.service.Create(ctx, payslip.CreatePayslipRequest{
		EmployeeName: "Ravi Shah",
		PayPeriod:    "March 2025",
		BasicSalary:  25000,
		PFDeduction:  3000,
		NetSalary:    floatPtr(37875),
	})

	assert.NoError(t, err)
	assert.Equal(t, 37875.0, resp.NetSalary)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayslipService_Create_InvalidPeriod(t *testing.T) {
	ctx := context.Background()
	deps := setupPayslipServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, false)

	_, err := deps.service.Create(ctx, payslip.CreatePayslipRequest{
		EmployeeName: "Asha Patel",
		PayPeriod:    "2025-03",
	})

	assert.ErrorIs(t, err, paysliperrors.ErrInvalidPayPeriod)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayslipService_Recalculate_Idempotent(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	stored := payslip.Payslip{
		ID:                 id,
		EmployeeName:       "Asha Patel",
		PayPeriod:          "March 2025",
		BasicSalary:        25000,
		HRA:                10000,
		PFDeduction:        3000,
		TotalEarningGross:  1, // stale totals from a bad import
		TotalDeductions:    0,
		NetSalary:          floatPtr(0),
	}

	deps := setupPayslipServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)
	expectTx(t, deps.sqlMock, true)

	updates := 0
	deps.repo.findByIDFn = func(ctx context.Context, lookupID string) (*payslip.Payslip, error) {
		copy := stored
		return &copy, nil
	}
	deps.repo.updateFn = func(ctx context.Context, p *payslip.Payslip) error {
		updates++
		stored = *p
		return nil
	}

	first, err := deps.service.Recalculate(ctx, id.String())
	assert.NoError(t, err)
	assert.Equal(t, 35000.0, first.TotalEarningGross)
	assert.Equal(t, 3000.0, first.TotalDeductions)
	assert.Equal(t, 32000.0, first.NetSalary)
	assert.Equal(t, 1, updates)

	second, err := deps.service.Recalculate(ctx, id.String())
	assert.NoError(t, err)
	assert.Equal(t, first.TotalEarningGross, second.TotalEarningGross)
	assert.Equal(t, first.NetSalary, second.NetSalary)
	assert.Equal(t, 1, updates, "a consistent record must not be rewritten")
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayslipService_Recalculate_NotFound(t *testing.T) {
	ctx := context.Background()
	deps := setupPayslipServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, false)
	deps.repo.findByIDFn = func(ctx context.Context, id string) (*payslip.Payslip, error) {
		return nil, gorm.ErrRecordNotFound
	}

	_, err := deps.service.Recalculate(ctx, uuid.New().String())
	assert.ErrorIs(t, err, paysliperrors.ErrPayslipNotFound)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayslipService_FixZeroNetSalaries(t *testing.T) {
	ctx := context.Background()
	deps := setupPayslipServiceTest(t)
	defer deps.db.Close()

	broken := uuid.New()
	batch := []payslip.Payslip{
		{
			ID:           uuid.New(),
			EmployeeName: "Asha Patel",
			BasicSalary:  25000,
			HRA:          10000,
			PFDeduction:  3000,
			NetSalary:    floatPtr(0),
		},
		{
			ID:           broken,
			EmployeeName: "Ravi Shah",
			BasicSalary:  20000,
			NetSalary:    nil,
		},
		{
			ID:           uuid.New(),
			EmployeeName: "Mina Rao",
			BasicSalary:  18000,
			PFDeduction:  2160,
			NetSalary:    floatPtr(0),
		},
	}

	deps.repo.findMissingNetFn = func(ctx context.Context) ([]payslip.Payslip, error) {
		return batch, nil
	}
	deps.repo.updateFn = func(ctx context.Context, p *payslip.Payslip) error {
		if p.ID == broken {
			return errors.New("connection reset")
		}
		return nil
	}

	result, err := deps.service.FixZeroNetSalaries(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 3, result.Scanned)
	assert.Equal(t, 2, result.Fixed)
	assert.Equal(t, 1, result.Failed)
}

func TestPayslipService_FixZeroNetSalaries_NothingToFix(t *testing.T) {
	ctx := context.Background()
	deps := setupPayslipServiceTest(t)
	defer deps.db.Close()

	deps.repo.findMissingNetFn = func(ctx context.Context) ([]payslip.Payslip, error) {
		return nil, nil
	}

	result, err := deps.service.FixZeroNetSalaries(ctx)

	assert.NoError(t, err)
	assert.Equal(t, payslip.FixZeroNetResponse{}, result)
}

func TestPayslipService_GetByID_InvalidID(t *testing.T) {
	ctx := context.Background()
	deps := setupPayslipServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, paysliperrors.ErrInvalidPayslipID)
}

func TestPayslipService_Summary(t *testing.T) {
	ctx := context.Background()
	deps := setupPayslipServiceTest(t)
	defer deps.db.Close()

	deps.repo.summarizeFn = func(ctx context.Context, payPeriod string) (*payslip.PeriodSummary, error) {
		return &payslip.PeriodSummary{
			PayPeriod:       payPeriod,
			PayslipCount:    4,
			TotalGross:      140000,
			TotalDeductions: 12000,
			TotalNet:        128000,
			MinNet:          18000,
			MaxNet:          52000,
		}, nil
	}

	resp, err := deps.service.Summary(ctx, "March 2025")

	assert.NoError(t, err)
	assert.Equal(t, int64(4), resp.PayslipCount)
	assert.Equal(t, 32000.0, resp.AverageNet)
	assert.Equal(t, 18000.0, resp.MinNet)
	assert.Equal(t, 52000.0, resp.MaxNet)
}

func TestPayslipService_ExportExcel_Empty(t *testing.T) {
	ctx := context.Background()
	deps := setupPayslipServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.ExportExcel(ctx, payslip.GetPayslipsFilterRequest{PayPeriod: "March 2025"})
	assert.ErrorIs(t, err, paysliperrors.ErrNothingToExport)
}
