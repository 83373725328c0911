package designation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	designationerrors "payslip-portal/internal/designation/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// designationsAllKey caches the full designation list. Titles change rarely,
// so a long TTL is fine.
const (
	designationsAllKey = "designations:all"
	designationsAllTTL = 30 * time.Minute
)

//go:generate mockgen -source=designation_service.go -destination=mock/designation_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDesignationRequest) (DesignationResponse, error)
	GetAll(ctx context.Context) ([]DesignationResponse, error)
	GetByID(ctx context.Context, id string) (DesignationResponse, error)
	Update(ctx context.Context, id string, req UpdateDesignationRequest) (DesignationResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb ...*redis.Client) Service {
	s := &service{
		db:     db,
		repo:   repo,
		sf:     &singleflight.Group{},
		logger: zap.L(),
	}
	if len(rdb) > 0 {
		s.rdb = rdb[0]
	}
	return s
}

func (s *service) Create(ctx context.Context, req CreateDesignationRequest) (DesignationResponse, error) {
	title := strings.TrimSpace(req.Title)

	if existing, err := s.repo.FindByTitle(ctx, title); err == nil && existing != nil {
		return DesignationResponse{}, designationerrors.ErrDesignationAlreadyExists
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DesignationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	d := &Designation{
		ID:          uuid.New(),
		Title:       title,
		Description: strings.TrimSpace(req.Description),
	}
	if err := qtx.Create(ctx, d); err != nil {
		return DesignationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DesignationResponse{}, err
	}

	s.invalidateListCache(ctx)
	return mapToResponse(*d), nil
}

func (s *service) GetAll(ctx context.Context) ([]DesignationResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, designationsAllKey).Result()
		if err == nil {
			var resp []DesignationResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	// Collapse concurrent cache misses into one database query.
	v, err, _ := s.sf.Do(designationsAllKey, func() (any, error) {
		designations, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(designations)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, designationsAllKey, jsonData, designationsAllTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]DesignationResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (DesignationResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DesignationResponse{}, designationerrors.ErrInvalidDesignationID
	}

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DesignationResponse{}, designationerrors.ErrDesignationNotFound
		}
		return DesignationResponse{}, err
	}

	return mapToResponse(*d), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDesignationRequest) (DesignationResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DesignationResponse{}, designationerrors.ErrInvalidDesignationID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DesignationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	d, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DesignationResponse{}, designationerrors.ErrDesignationNotFound
		}
		return DesignationResponse{}, err
	}

	d.Title = strings.TrimSpace(req.Title)
	d.Description = strings.TrimSpace(req.Description)

	if err := qtx.Update(ctx, d); err != nil {
		return DesignationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DesignationResponse{}, err
	}

	s.invalidateListCache(ctx)
	return mapToResponse(*d), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return designationerrors.ErrInvalidDesignationID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return designationerrors.ErrDesignationNotFound
		}
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateListCache(ctx)
	return nil
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, designationsAllKey).Err(); err != nil {
		s.logger.Error("failed to invalidate designation cache",
			zap.String("key", designationsAllKey),
			zap.Error(err),
		)
	}
}

func mapToResponse(d Designation) DesignationResponse {
	resp := DesignationResponse{
		ID:          d.ID.String(),
		Title:       d.Title,
		Description: d.Description,
	}
	if !d.CreatedAt.IsZero() {
		resp.CreatedAt = d.CreatedAt.Format(time.RFC3339)
	}
	if !d.UpdatedAt.IsZero() {
		resp.UpdatedAt = d.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(designations []Designation) []DesignationResponse {
	res := make([]DesignationResponse, len(designations))
	for i, d := range designations {
		res[i] = mapToResponse(d)
	}
	return res
}
