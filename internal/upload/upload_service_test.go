package upload_test

import (
	"context"
	"database/sql"
	"testing"

	"payslip-portal/internal/ingestion"
	"payslip-portal/internal/payslip"
	"payslip-portal/internal/upload"
	uploaderrors "payslip-portal/internal/upload/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type fakeUploadRepository struct {
	withTxFn       func(tx *sql.Tx) upload.Repository
	createFn       func(ctx context.Context, u *upload.Upload) error
	findAllFn      func(ctx context.Context) ([]upload.Upload, error)
	findByIDFn     func(ctx context.Context, id string) (*upload.Upload, error)
	updateStatusFn func(ctx context.Context, id string, status string) error
	deleteFn       func(ctx context.Context, id string) error
}

func (f *fakeUploadRepository) WithTx(tx *sql.Tx) upload.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeUploadRepository) Create(ctx context.Context, u *upload.Upload) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

func (f *fakeUploadRepository) FindAll(ctx context.Context) ([]upload.Upload, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeUploadRepository) FindByID(ctx context.Context, id string) (*upload.Upload, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUploadRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	if f.updateStatusFn != nil {
		return f.updateStatusFn(ctx, id, status)
	}
	return nil
}

func (f *fakeUploadRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

// fakeBatchRepository stubs just enough of the payslip repository for the
// import paths, which only ever batch-insert.
type fakeBatchRepository struct {
	createBatchFn func(ctx context.Context, payslips []*payslip.Payslip) error
}

func (f *fakeBatchRepository) WithTx(tx *sql.Tx) payslip.Repository { return f }

func (f *fakeBatchRepository) CreateBatch(ctx context.Context, payslips []*payslip.Payslip) error {
	if f.createBatchFn != nil {
		return f.createBatchFn(ctx, payslips)
	}
	return nil
}

func (f *fakeBatchRepository) Create(ctx context.Context, p *payslip.Payslip) error { return nil }

func (f *fakeBatchRepository) FindAll(ctx context.Context, filter payslip.QueryFilter) ([]payslip.Payslip, error) {
	return nil, nil
}

func (f *fakeBatchRepository) FindByID(ctx context.Context, id string) (*payslip.Payslip, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBatchRepository) Update(ctx context.Context, p *payslip.Payslip) error { return nil }
func (f *fakeBatchRepository) Delete(ctx context.Context, id string) error          { return nil }

func (f *fakeBatchRepository) FindMissingNet(ctx context.Context) ([]payslip.Payslip, error) {
	return nil, nil
}

func (f *fakeBatchRepository) SummarizeByPeriod(ctx context.Context, payPeriod string) (*payslip.PeriodSummary, error) {
	return &payslip.PeriodSummary{PayPeriod: payPeriod}, nil
}

func (f *fakeBatchRepository) ListPeriods(ctx context.Context) ([]string, error) { return nil, nil }

type fakeSerialCounter struct {
	next  int64
	calls int
}

func (f *fakeSerialCounter) NextSerial(ctx context.Context, companyName string, payPeriod string) (int64, error) {
	f.calls++
	return f.next, nil
}

type uploadServiceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  upload.Service
	repo     *fakeUploadRepository
	payslips *fakeBatchRepository
	serials  *fakeSerialCounter
}

func setupUploadServiceTest(t *testing.T) *uploadServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeUploadRepository{}
	payslips := &fakeBatchRepository{}
	serials := &fakeSerialCounter{next: 7}
	svc := upload.NewService(db, repo, payslips, serials)

	return &uploadServiceDeps{
		db:       db,
		sqlMock:  sqlMock,
		service:  svc,
		repo:     repo,
		payslips: payslips,
		serials:  serials,
	}
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

// workbookBytes builds a real .xlsx payload so the import paths exercise the
// actual workbook reader.
func workbookBytes(t *testing.T, rows [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			assert.NoError(t, err)
			assert.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}

	buf, err := f.WriteToBuffer()
	assert.NoError(t, err)
	return buf.Bytes()
}

// strictRow lays out cell values in the payroll template's column order.
func strictRow(values map[string]string) []string {
	row := make([]string, len(ingestion.RequiredColumns))
	for i, col := range ingestion.RequiredColumns {
		row[i] = values[col]
	}
	return row
}

func TestUploadService_ImportFlexible(t *testing.T) {
	ctx := context.Background()
	deps := setupUploadServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	var created *upload.Upload
	deps.repo.createFn = func(ctx context.Context, u *upload.Upload) error {
		created = u
		return nil
	}
	var inserted []*payslip.Payslip
	deps.payslips.createBatchFn = func(ctx context.Context, payslips []*payslip.Payslip) error {
		inserted = payslips
		return nil
	}

	data := workbookBytes(t, [][]string{
		{"Employee Name", "Employee Code", "Basic Salary", "HRA", "PF", "Net Salary"},
		{"Asha Kulkarni", "EMP001", "30000", "12000", "3600", "38400"},
	})

	resp, err := deps.service.ImportFlexible(ctx, "march.xlsx", "March 2025", data)
	assert.NoError(t, err)

	assert.Equal(t, 1, resp.Imported)
	assert.Equal(t, 0, resp.Failed)
	assert.NotEmpty(t, resp.UploadID)
	assert.Equal(t, "March 2025", resp.PayPeriod)

	assert.NotNil(t, created)
	assert.Equal(t, upload.StatusConverted, created.Status)
	assert.Equal(t, 1, created.RecordCount)
	assert.Equal(t, "march.xlsx", created.FileName)

	assert.Len(t, inserted, 1)
	p := inserted[0]
	assert.Equal(t, "Asha Kulkarni", p.EmployeeName)
	assert.Equal(t, "EMP001", p.EmployeeCode)
	assert.Equal(t, 38400.0, p.Net())
	assert.Equal(t, "March 2025", p.PayPeriod)
	assert.NotNil(t, p.UploadID)
	assert.Equal(t, created.ID, *p.UploadID)

	// The source row carried no serial, so one is issued.
	assert.Equal(t, 7, p.SerialNumber)
	assert.Equal(t, 1, deps.serials.calls)
}

func TestUploadService_ImportFlexible_GroupedHeaderRows(t *testing.T) {
	ctx := context.Background()
	deps := setupUploadServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	var inserted []*payslip.Payslip
	deps.payslips.createBatchFn = func(ctx context.Context, payslips []*payslip.Payslip) error {
		inserted = payslips
		return nil
	}

	// Grouped layout: a main header row with repeated section names and a
	// sub-header row underneath, the way exported salary registers arrive.
	data := workbookBytes(t, [][]string{
		{"Employee Name", "Employee Code", "Earned Wages", "Earned Wages", "Deductions"},
		{"", "", "Basic", "HRA", "PF"},
		{"Asha Kulkarni", "EMP001", "25000", "10000", "3000"},
	})

	resp, err := deps.service.ImportFlexible(ctx, "register.xlsx", "March 2025", data)
	assert.NoError(t, err)

	assert.Equal(t, 1, resp.Imported)
	assert.Equal(t, 0, resp.Failed)
	assert.Contains(t, resp.DetectedColumns, "Earned Wages_Basic")
	assert.Contains(t, resp.DetectedColumns, "Deductions_PF")

	assert.Len(t, inserted, 1)
	p := inserted[0]
	assert.Equal(t, "Asha Kulkarni", p.EmployeeName)
	assert.Equal(t, 25000.0, p.BasicSalary)
	assert.Equal(t, 10000.0, p.HRA)
	assert.Equal(t, 3000.0, p.PFDeduction)
	assert.Equal(t, 32000.0, p.Net())
}

func TestUploadService_ImportFlexible_UnreadableWorkbook(t *testing.T) {
	ctx := context.Background()
	deps := setupUploadServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.ImportFlexible(ctx, "broken.xlsx", "March 2025", []byte("not a workbook"))
	assert.ErrorIs(t, err, uploaderrors.ErrWorkbookUnreadable)
}

func TestUploadService_ImportFlexible_HeadersOnly(t *testing.T) {
	ctx := context.Background()
	deps := setupUploadServiceTest(t)
	defer deps.db.Close()

	deps.repo.createFn = func(ctx context.Context, u *upload.Upload) error {
		t.Fatal("nothing should be persisted for a workbook without data rows")
		return nil
	}

	data := workbookBytes(t, [][]string{
		{"Employee Name", "Employee Code"},
	})

	resp, err := deps.service.ImportFlexible(ctx, "empty.xlsx", "March 2025", data)
	assert.NoError(t, err)
	assert.Equal(t, 0, resp.Imported)
	assert.Empty(t, resp.UploadID)
	assert.Equal(t, []string{"Employee Name", "Employee Code"}, resp.DetectedColumns)
}

func TestUploadService_ValidateStrict_MissingColumns(t *testing.T) {
	ctx := context.Background()
	deps := setupUploadServiceTest(t)
	defer deps.db.Close()

	deps.repo.createFn = func(ctx context.Context, u *upload.Upload) error {
		t.Fatal("an invalid workbook must not be persisted")
		return nil
	}

	data := workbookBytes(t, [][]string{
		{"Employee Name", "Employee Code"},
		{"Asha Kulkarni", "EMP001"},
	})

	resp, err := deps.service.ValidateStrict(ctx, "", "partial.xlsx", data)
	assert.NoError(t, err)
	assert.False(t, resp.IsValid)
	assert.NotEmpty(t, resp.MissingColumns)
	assert.NotEmpty(t, resp.Errors)
	assert.Empty(t, resp.UploadID)
}

func TestUploadService_ValidateStrict_Valid(t *testing.T) {
	ctx := context.Background()
	deps := setupUploadServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	var created *upload.Upload
	deps.repo.createFn = func(ctx context.Context, u *upload.Upload) error {
		created = u
		return nil
	}

	data := workbookBytes(t, [][]string{
		ingestion.RequiredColumns,
		strictRow(map[string]string{
			"S.No":          "1",
			"Employee Name": "Asha Kulkarni",
			"Employee Code": "EMP001",
			"Basic_Earned":  "25000",
			"HRA_Earned":    "10000",
			"PF":            "3000",
		}),
	})

	resp, err := deps.service.ValidateStrict(ctx, "March payroll", "march.xlsx", data)
	assert.NoError(t, err)

	assert.True(t, resp.IsValid)
	assert.Equal(t, 1, resp.RecordCount)
	assert.NotEmpty(t, resp.UploadID)

	assert.NotNil(t, created)
	assert.Equal(t, created.ID.String(), resp.UploadID)
	assert.Equal(t, "March payroll", created.Name)
	assert.Equal(t, upload.StatusValidated, created.Status)
	assert.Len(t, created.Rows, 1)
	assert.Equal(t, "Asha Kulkarni", created.Rows[0].Data["Employee Name"])
}

func TestUploadService_ConvertUpload(t *testing.T) {
	ctx := context.Background()
	deps := setupUploadServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	uploadID := uuid.New()
	stored := &upload.Upload{
		ID:     uploadID,
		Name:   "March payroll",
		Status: upload.StatusValidated,
		Rows: []upload.UploadRow{
			{
				ID:       uuid.New(),
				UploadID: uploadID,
				RowIndex: 0,
				Data: upload.RowJSON{
					"Employee Name": "Asha Kulkarni",
					"Employee Code": "EMP001",
					"Basic_Earned":  "25000",
					"HRA_Earned":    "10000",
					"PF":            "3000",
				},
			},
		},
	}
	deps.repo.findByIDFn = func(ctx context.Context, id string) (*upload.Upload, error) {
		assert.Equal(t, uploadID.String(), id)
		return stored, nil
	}

	var inserted []*payslip.Payslip
	deps.payslips.createBatchFn = func(ctx context.Context, payslips []*payslip.Payslip) error {
		inserted = payslips
		return nil
	}
	var newStatus string
	deps.repo.updateStatusFn = func(ctx context.Context, id string, status string) error {
		newStatus = status
		return nil
	}

	resp, err := deps.service.ConvertUpload(ctx, uploadID.String(), "March 2025")
	assert.NoError(t, err)

	assert.Equal(t, 1, resp.Converted)
	assert.Equal(t, 0, resp.Failed)
	assert.Equal(t, upload.StatusConverted, newStatus)

	assert.Len(t, inserted, 1)
	p := inserted[0]
	assert.Equal(t, "Asha Kulkarni", p.EmployeeName)
	assert.Equal(t, "March 2025", p.PayPeriod)
	assert.Equal(t, 35000.0, p.TotalEarningGross)
	assert.Equal(t, 3000.0, p.TotalDeductions)
	assert.Equal(t, 32000.0, p.Net())
	assert.NotNil(t, p.UploadID)
	assert.Equal(t, uploadID, *p.UploadID)
}

func TestUploadService_ConvertUpload_AlreadyConverted(t *testing.T) {
	ctx := context.Background()
	deps := setupUploadServiceTest(t)
	defer deps.db.Close()

	uploadID := uuid.New()
	deps.repo.findByIDFn = func(ctx context.Context, id string) (*upload.Upload, error) {
		return &upload.Upload{ID: uploadID, Status: upload.StatusConverted}, nil
	}

	_, err := deps.service.ConvertUpload(ctx, uploadID.String(), "March 2025")
	assert.ErrorIs(t, err, uploaderrors.ErrUploadAlreadyConverted)
}

func TestUploadService_ConvertUpload_NotFound(t *testing.T) {
	ctx := context.Background()
	deps := setupUploadServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.ConvertUpload(ctx, uuid.New().String(), "March 2025")
	assert.ErrorIs(t, err, uploaderrors.ErrUploadNotFound)
}

func TestUploadService_GetByID_InvalidID(t *testing.T) {
	ctx := context.Background()
	deps := setupUploadServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, uploaderrors.ErrInvalidUploadID)
}

func TestUploadService_Delete(t *testing.T) {
	ctx := context.Background()
	deps := setupUploadServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	uploadID := uuid.New()
	deps.repo.findByIDFn = func(ctx context.Context, id string) (*upload.Upload, error) {
		return &upload.Upload{ID: uploadID, Status: upload.StatusValidated}, nil
	}

	var deleted string
	deps.repo.deleteFn = func(ctx context.Context, id string) error {
		deleted = id
		return nil
	}

	err := deps.service.Delete(ctx, uploadID.String())
	assert.NoError(t, err)
	assert.Equal(t, uploadID.String(), deleted)
}
