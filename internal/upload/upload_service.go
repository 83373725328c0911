package upload

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"payslip-portal/internal/ingestion"
	"payslip-portal/internal/payslip"
	"payslip-portal/internal/shared/contextutil"
	"payslip-portal/internal/shared/counter"
	uploaderrors "payslip-portal/internal/upload/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=upload_service.go -destination=mock/upload_service_mock.go -package=mock
type Service interface {
	// ImportFlexible reads any workbook, maps whatever columns it can and
	// converts every usable row straight into payslips. A row that fails to
	// convert is skipped and counted, never aborts the batch.
	ImportFlexible(ctx context.Context, fileName string, payPeriod string, data []byte) (ImportResultResponse, error)

	// ValidateStrict checks a workbook against the fixed payroll template and
	// retains its rows for review when it passes.
	ValidateStrict(ctx context.Context, name string, fileName string, data []byte) (StrictValidationResponse, error)

	// ConvertUpload turns the retained rows of a validated upload into
	// payslips.
	ConvertUpload(ctx context.Context, id string, payPeriod string) (ConvertResultResponse, error)

	GetAll(ctx context.Context) ([]UploadResponse, error)
	GetByID(ctx context.Context, id string) (UploadDetailResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	payslips payslip.Repository
	serials  counter.Repository
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, payslips payslip.Repository, serials counter.Repository) Service {
	return &service{
		db:       db,
		repo:     repo,
		payslips: payslips,
		serials:  serials,
		logger:   zap.L(),
	}
}

func (s *service) ImportFlexible(ctx context.Context, fileName string, payPeriod string, data []byte) (ImportResultResponse, error) {
	logger := contextutil.GetLogger(ctx)

	sheet, err := ingestion.ReadWorkbook(data)
	if err != nil {
		return ImportResultResponse{}, uploaderrors.ErrWorkbookUnreadable
	}

	result := ingestion.ValidateFlexible(sheet)

	resp := ImportResultResponse{
		PayPeriod:       payPeriod,
		DetectedColumns: result.DetectedColumns,
		Mappings:        result.SuggestedMappings,
		Warnings:        result.Warnings,
		Info:            result.Info,
	}
	if len(result.Data) == 0 {
		return resp, nil
	}

	uploadID := uuid.New()
	records := make([]*payslip.Payslip, 0, len(result.Data))

	for i, row := range result.Data {
		record, convErr := convertRow(func() ingestion.PayslipData {
			return ingestion.ConvertFlexible(row, result.SuggestedMappings)
		})
		if convErr != nil {
			resp.Failed++
			resp.Warnings = append(resp.Warnings,
				fmt.Sprintf("Row %d could not be converted and was skipped", i+2))
			logger.Warn("skipping unconvertible row",
				zap.Int("row", i+2),
				zap.String("file", fileName),
				zap.Error(convErr),
			)
			continue
		}

		// The form-supplied period wins unless the row carries its own.
		if payPeriod != "" && !rowSuppliedPayPeriod(row, result.SuggestedMappings) {
			record.PayPeriod = payPeriod
		}
		s.assignSerial(ctx, &record)

		p := payslip.FromData(record)
		p.ID = uuid.New()
		p.UploadID = &uploadID
		records = append(records, &p)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportResultResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	pqtx := s.payslips.WithTx(tx)

	batch := &Upload{
		ID:          uploadID,
		Name:        strings.TrimSuffix(fileName, ".xlsx"),
		FileName:    fileName,
		PayPeriod:   payPeriod,
		Status:      StatusConverted,
		RecordCount: len(records),
	}
	if err := qtx.Create(ctx, batch); err != nil {
		return ImportResultResponse{}, err
	}
	if err := pqtx.CreateBatch(ctx, records); err != nil {
		return ImportResultResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ImportResultResponse{}, err
	}

	resp.UploadID = uploadID.String()
	resp.Imported = len(records)

	logger.Info("flexible import complete",
		zap.String("upload_id", resp.UploadID),
		zap.String("file", fileName),
		zap.Int("imported", resp.Imported),
		zap.Int("failed", resp.Failed),
	)
	return resp, nil
}

func (s *service) ValidateStrict(ctx context.Context, name string, fileName string, data []byte) (StrictValidationResponse, error) {
	sheet, err := ingestion.ReadWorkbook(data)
	if err != nil {
		return StrictValidationResponse{}, uploaderrors.ErrWorkbookUnreadable
	}

	result := ingestion.ValidateStrict(sheet)

	resp := StrictValidationResponse{
		IsValid:        result.IsValid,
		RecordCount:    len(result.Data),
		Errors:         result.Errors,
		Warnings:       result.Warnings,
		MissingColumns: result.MissingColumns,
		ExtraColumns:   result.ExtraColumns,
	}
	if !result.IsValid {
		return resp, nil
	}

	if name == "" {
		name = strings.TrimSuffix(fileName, ".xlsx")
	}

	u := &Upload{
		ID:          uuid.New(),
		Name:        name,
		FileName:    fileName,
		Status:      StatusValidated,
		RecordCount: len(result.Data),
	}
	for i, row := range result.Data {
		u.Rows = append(u.Rows, UploadRow{
			ID:       uuid.New(),
			UploadID: u.ID,
			RowIndex: i,
			Data:     RowJSON(row),
		})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return StrictValidationResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, u); err != nil {
		return StrictValidationResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return StrictValidationResponse{}, err
	}

	resp.UploadID = u.ID.String()
	return resp, nil
}

func (s *service) ConvertUpload(ctx context.Context, id string, payPeriod string) (ConvertResultResponse, error) {
	logger := contextutil.GetLogger(ctx)

	if _, err := uuid.Parse(id); err != nil {
		return ConvertResultResponse{}, uploaderrors.ErrInvalidUploadID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ConvertResultResponse{}, uploaderrors.ErrUploadNotFound
		}
		return ConvertResultResponse{}, err
	}
	if u.Status == StatusConverted {
		return ConvertResultResponse{}, uploaderrors.ErrUploadAlreadyConverted
	}
	if len(u.Rows) == 0 {
		return ConvertResultResponse{}, uploaderrors.ErrNoRowsToConvert
	}

	resp := ConvertResultResponse{
		UploadID:  u.ID.String(),
		PayPeriod: payPeriod,
	}

	records := make([]*payslip.Payslip, 0, len(u.Rows))
	for _, row := range u.Rows {
		record, convErr := convertRow(func() ingestion.PayslipData {
			return ingestion.ConvertStrict(ingestion.RowRecord(row.Data))
		})
		if convErr != nil {
			resp.Failed++
			resp.Warnings = append(resp.Warnings,
				fmt.Sprintf("Row %d could not be converted and was skipped", row.RowIndex+2))
			logger.Warn("skipping unconvertible upload row",
				zap.String("upload_id", id),
				zap.Int("row_index", row.RowIndex),
				zap.Error(convErr),
			)
			continue
		}

		// The payroll template carries no pay-period column, so the request
		// value applies to every row.
		if payPeriod != "" {
			record.PayPeriod = payPeriod
		}
		s.assignSerial(ctx, &record)

		p := payslip.FromData(record)
		p.ID = uuid.New()
		p.UploadID = &u.ID
		records = append(records, &p)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ConvertResultResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	pqtx := s.payslips.WithTx(tx)

	if err := pqtx.CreateBatch(ctx, records); err != nil {
		return ConvertResultResponse{}, err
	}
	if err := qtx.UpdateStatus(ctx, id, StatusConverted); err != nil {
		return ConvertResultResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ConvertResultResponse{}, err
	}

	resp.Converted = len(records)

	logger.Info("upload converted",
		zap.String("upload_id", id),
		zap.Int("converted", resp.Converted),
		zap.Int("failed", resp.Failed),
	)
	return resp, nil
}

func (s *service) GetAll(ctx context.Context) ([]UploadResponse, error) {
	uploads, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]UploadResponse, 0, len(uploads))
	for _, u := range uploads {
		responses = append(responses, mapToResponse(u))
	}
	return responses, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UploadDetailResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UploadDetailResponse{}, uploaderrors.ErrInvalidUploadID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UploadDetailResponse{}, uploaderrors.ErrUploadNotFound
		}
		return UploadDetailResponse{}, err
	}

	resp := UploadDetailResponse{UploadResponse: mapToResponse(*u)}
	for _, row := range u.Rows {
		resp.Rows = append(resp.Rows, UploadRowResponse{
			RowIndex: row.RowIndex,
			Data:     map[string]string(row.Data),
		})
	}
	return resp, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return uploaderrors.ErrInvalidUploadID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uploaderrors.ErrUploadNotFound
		}
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

// assignSerial fills in a serial number for records whose source row did not
// carry one. A counter failure is logged and left at zero rather than failing
// the row.
func (s *service) assignSerial(ctx context.Context, record *ingestion.PayslipData) {
	if record.SerialNumber != 0 || s.serials == nil {
		return
	}
	next, err := s.serials.NextSerial(ctx, record.CompanyName, record.PayPeriod)
	if err != nil {
		s.logger.Warn("serial assignment failed",
			zap.String("company", record.CompanyName),
			zap.String("pay_period", record.PayPeriod),
			zap.Error(err),
		)
		return
	}
	record.SerialNumber = int(next)
}

// rowSuppliedPayPeriod reports whether the source row itself carries a
// non-empty pay-period value through one of the resolved mappings.
func rowSuppliedPayPeriod(row ingestion.RowRecord, mappings []ingestion.ColumnMapping) bool {
	for _, m := range mappings {
		field, ok := m.Canonical()
		if !ok || field != ingestion.FieldPayPeriod {
			continue
		}
		if strings.TrimSpace(row[m.DetectedColumn]) != "" {
			return true
		}
	}
	return false
}

// convertRow runs one row conversion, turning a panic from a pathological
// cell into an error so the batch can continue.
func convertRow(convert func() ingestion.PayslipData) (record ingestion.PayslipData, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("row conversion panicked: %v", r)
		}
	}()
	record = convert()
	return record, nil
}

func mapToResponse(u Upload) UploadResponse {
	return UploadResponse{
		ID:          u.ID.String(),
		Name:        u.Name,
		FileName:    u.FileName,
		PayPeriod:   u.PayPeriod,
		Status:      u.Status,
		RecordCount: u.RecordCount,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
