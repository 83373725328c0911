package counter

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	// NextSerial issues the next payslip serial number for one company and
	// pay period.
	NextSerial(ctx context.Context, companyName string, payPeriod string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) NextSerial(ctx context.Context, companyName string, payPeriod string) (int64, error) {
	var nextValue int64

	// Atomic upsert-and-increment so concurrent imports for the same period
	// never hand out the same serial.
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO payslip_counters (company_name, pay_period, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (company_name, pay_period) DO UPDATE
		SET last_value = payslip_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, companyName, payPeriod).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
