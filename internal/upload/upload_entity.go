package upload

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	// StatusValidated means the workbook passed strict validation and its
	// rows are retained for review before conversion.
	StatusValidated = "validated"
	// StatusConverted means the retained rows have been turned into payslips.
	StatusConverted = "converted"
)

// Upload groups one imported workbook: its metadata plus, on the strict path,
// the raw rows retained for review. The flexible path records the batch for
// audit but converts immediately, so no rows are kept.
type Upload struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null"`
	FileName    string    `gorm:"not null"`
	PayPeriod   string
	Status      string `gorm:"not null;default:'validated'"`
	RecordCount int    `gorm:"not null;default:0"`

	Rows []UploadRow `gorm:"foreignKey:UploadID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Upload) TableName() string {
	return "uploads"
}

// UploadRow is one verbatim source row retained from a strictly validated
// workbook. RowIndex preserves the original spreadsheet order.
type UploadRow struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	UploadID uuid.UUID `gorm:"type:uuid;index;not null"`
	RowIndex int       `gorm:"not null"`
	Data     RowJSON   `gorm:"type:jsonb;not null"`
}

func (UploadRow) TableName() string {
	return "upload_rows"
}

// RowJSON stores a raw source row as a jsonb column.
type RowJSON map[string]string

func (m RowJSON) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *RowJSON) Scan(value any) error {
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
