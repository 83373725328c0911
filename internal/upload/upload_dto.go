package upload

import (
	"time"

	"payslip-portal/internal/ingestion"
)

// ImportResultResponse reports a flexible import: how many rows became
// payslips, how many were skipped, and the diagnostics the validator and
// converter produced along the way.
type ImportResultResponse struct {
	UploadID  string `json:"upload_id"`
	PayPeriod string `json:"pay_period"`
	Imported  int    `json:"imported"`
	Failed    int    `json:"failed"`

	DetectedColumns []string                  `json:"detected_columns"`
	Mappings        []ingestion.ColumnMapping `json:"mappings"`
	Warnings        []string                  `json:"warnings,omitempty"`
	Info            []string                  `json:"info,omitempty"`
}

// StrictValidationResponse reports a strict validation pass. UploadID is set
// only when the workbook passed and its rows were retained.
type StrictValidationResponse struct {
	UploadID    string   `json:"upload_id,omitempty"`
	IsValid     bool     `json:"is_valid"`
	RecordCount int      `json:"record_count"`

	Errors         []string `json:"errors,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
	MissingColumns []string `json:"missing_columns,omitempty"`
	ExtraColumns   []string `json:"extra_columns,omitempty"`
}

// ConvertResultResponse reports converting a retained upload into payslips.
type ConvertResultResponse struct {
	UploadID  string   `json:"upload_id"`
	PayPeriod string   `json:"pay_period"`
	Converted int      `json:"converted"`
	Failed    int      `json:"failed"`
	Warnings  []string `json:"warnings,omitempty"`
}

type ConvertUploadRequest struct {
	PayPeriod string `json:"pay_period" binding:"required"`
}

type UploadResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	FileName    string    `json:"file_name"`
	PayPeriod   string    `json:"pay_period,omitempty"`
	Status      string    `json:"status"`
	RecordCount int       `json:"record_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UploadDetailResponse adds the retained rows to the upload metadata.
type UploadDetailResponse struct {
	UploadResponse
	Rows []UploadRowResponse `json:"rows,omitempty"`
}

type UploadRowResponse struct {
	RowIndex int               `json:"row_index"`
	Data     map[string]string `json:"data"`
}
