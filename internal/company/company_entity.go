package company

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is a client organization whose payslips the portal serves. Name and
// Address are copied onto payslips at import time, so edits here never
// rewrite history.
type Company struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string         `gorm:"type:varchar(150);not null;uniqueIndex"`
	Address   string         `gorm:"type:varchar(500)"`
	Email     string         `gorm:"type:varchar(255);index"`
	IsActive  bool           `gorm:"not null;default:true"`
	CreatedAt time.Time      `gorm:"not null;default:now()"`
	UpdatedAt time.Time      `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Company) TableName() string {
	return "companies"
}
