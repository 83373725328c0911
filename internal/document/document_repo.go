package document

import (
	"context"

	"gorm.io/gorm"
)

type QueryFilter struct {
	CompanyID     string
	DesignationID string
	Search        string
	// IncludeInactive also returns soft-deleted documents.
	IncludeInactive bool
}

//go:generate mockgen -source=document_repo.go -destination=mock/document_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, d *Document) error
	FindAll(ctx context.Context, filter QueryFilter) ([]Document, error)
	FindByID(ctx context.Context, id string) (*Document, error)
	Update(ctx context.Context, d *Document) error
	// Deactivate soft-deletes the document; the blob and the audit trail
	// stay.
	Deactivate(ctx context.Context, id string) error
	LogAccess(ctx context.Context, entry *DocumentAccessLog) error
	AccessLog(ctx context.Context, documentID string) ([]DocumentAccessLog, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, d *Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindAll(ctx context.Context, filter QueryFilter) ([]Document, error) {
	db := r.db.WithContext(ctx).Model(&Document{})

	if !filter.IncludeInactive {
		db = db.Where("is_active = ?", true)
	}
	if filter.CompanyID != "" {
		db = db.Where("company_id = ?", filter.CompanyID)
	}
	if filter.DesignationID != "" {
		db = db.Where("designation_id = ?", filter.DesignationID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		db = db.Where("title ILIKE ? OR file_name ILIKE ?", like, like)
	}

	var documents []Document
	err := db.Order("created_at DESC").Find(&documents).Error
	return documents, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Document, error) {
	var d Document
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) Update(ctx context.Context, d *Document) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *repository) Deactivate(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&Document{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *repository) LogAccess(ctx context.Context, entry *DocumentAccessLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) AccessLog(ctx context.Context, documentID string) ([]DocumentAccessLog, error) {
	var entries []DocumentAccessLog
	err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("accessed_at DESC").
		Find(&entries).Error
	return entries, err
}
