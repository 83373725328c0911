package document

import (
	"time"

	"github.com/google/uuid"
)

// Document is one archived compliance file. Unlike payslips, documents are
// soft-deleted: IsActive false hides them without losing the audit trail.
type Document struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"size:255;not null"`
	FileName    string    `gorm:"size:255;not null"`
	FilePath    string    `gorm:"size:500;not null"`
	Size        int64     `gorm:"not null"`
	ContentType string    `gorm:"size:100"`

	CompanyID     *uuid.UUID `gorm:"type:uuid;index"`
	DesignationID *uuid.UUID `gorm:"type:uuid;index"`

	// AccessCode gates downloads; empty means the document is open to any
	// authenticated user.
	AccessCode string `gorm:"size:100"`

	IsActive  bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Document) TableName() string {
	return "documents"
}

// DocumentAccessLog records one download attempt, successful or not.
type DocumentAccessLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocumentID uuid.UUID `gorm:"type:uuid;index;not null"`
	UserID     string    `gorm:"size:100"`
	Granted    bool      `gorm:"not null"`
	AccessedAt time.Time `gorm:"not null;autoCreateTime"`
}

func (DocumentAccessLog) TableName() string {
	return "document_access_logs"
}
