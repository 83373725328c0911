package payslip

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type QueryFilter struct {
	PayPeriod    string
	EmployeeCode string
	Department   string
	Search       string
}

type PeriodSummary struct {
	PayPeriod       string
	PayslipCount    int64
	TotalGross      float64
	TotalDeductions float64
	TotalNet        float64
	MinNet          float64
	MaxNet          float64
}

//go:generate mockgen -source=payslip_repo.go -destination=mock/payslip_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Payslip) error
	CreateBatch(ctx context.Context, payslips []*Payslip) error
	FindAll(ctx context.Context, filter QueryFilter) ([]Payslip, error)
	FindByID(ctx context.Context, id string) (*Payslip, error)
	Update(ctx context.Context, p *Payslip) error
	Delete(ctx context.Context, id string) error
	// FindMissingNet returns every payslip whose net salary is zero or was
	// never set.
	FindMissingNet(ctx context.Context) ([]Payslip, error)
	SummarizeByPeriod(ctx context.Context, payPeriod string) (*PeriodSummary, error)
	ListPeriods(ctx context.Context) ([]string, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, p *Payslip) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) CreateBatch(ctx context.Context, payslips []*Payslip) error {
	if len(payslips) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(payslips).Error
}

func (r *repository) FindAll(ctx context.Context, filter QueryFilter) ([]Payslip, error) {
	db := r.db.WithContext(ctx).Model(&Payslip{})

	if filter.PayPeriod != "" {
		db = db.Where("pay_period = ?", filter.PayPeriod)
	}
	if filter.EmployeeCode != "" {
		db = db.Where("employee_code = ?", filter.EmployeeCode)
	}
	if filter.Department != "" {
		db = db.Where("department = ?", filter.Department)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		db = db.Where("employee_name ILIKE ? OR employee_code ILIKE ?", like, like)
	}

	var payslips []Payslip
	err := db.
		Order("pay_period DESC, serial_number ASC, employee_name ASC").
		Find(&payslips).Error
	return payslips, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Payslip, error) {
	var p Payslip
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) Update(ctx context.Context, p *Payslip) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Payslip{}, "id = ?", id).Error
}

func (r *repository) FindMissingNet(ctx context.Context) ([]Payslip, error) {
	var payslips []Payslip
	err := r.db.WithContext(ctx).
		Where("net_salary = 0 OR net_salary IS NULL").
		Order("created_at ASC").
		Find(&payslips).Error
	return payslips, err
}

func (r *repository) SummarizeByPeriod(ctx context.Context, payPeriod string) (*PeriodSummary, error) {
	var summary PeriodSummary
	err := r.db.WithContext(ctx).
		Model(&Payslip{}).
		Select(`pay_period,
			COUNT(*) AS payslip_count,
			COALESCE(SUM(total_earning_gross), 0) AS total_gross,
			COALESCE(SUM(total_deductions), 0) AS total_deductions,
			COALESCE(SUM(net_salary), 0) AS total_net,
			COALESCE(MIN(net_salary), 0) AS min_net,
			COALESCE(MAX(net_salary), 0) AS max_net`).
		Where("pay_period = ?", payPeriod).
		Group("pay_period").
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	if summary.PayPeriod == "" {
		summary.PayPeriod = payPeriod
	}
	return &summary, nil
}

func (r *repository) ListPeriods(ctx context.Context) ([]string, error) {
	var periods []string
	err := r.db.WithContext(ctx).
		Model(&Payslip{}).
		Distinct("pay_period").
		Order("pay_period DESC").
		Pluck("pay_period", &periods).Error
	return periods, err
}
