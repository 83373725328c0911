package designation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Designation is a job title payslips and documents are categorized under.
type Designation struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Title       string         `gorm:"size:255;not null;uniqueIndex"`
	Description string         `gorm:"size:500"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Designation) TableName() string {
	return "designations"
}
