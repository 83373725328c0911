package upload

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=upload_repo.go -destination=mock/upload_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// Create inserts the upload together with any retained rows.
	Create(ctx context.Context, u *Upload) error
	FindAll(ctx context.Context) ([]Upload, error)
	// FindByID loads the upload with its retained rows.
	FindByID(ctx context.Context, id string) (*Upload, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, u *Upload) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Upload, error) {
	var uploads []Upload
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&uploads).Error
	return uploads, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Upload, error) {
	var u Upload
	err := r.db.WithContext(ctx).
		Preload("Rows", func(db *gorm.DB) *gorm.DB {
			return db.Order("row_index ASC")
		}).
		First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status string) error {
	return r.db.WithContext(ctx).
		Model(&Upload{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Upload{}, "id = ?", id).Error
}
