package company

import (
	"context"
	"errors"
	"strings"

	companyerrors "payslip-portal/internal/company/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/company_service_mock.go -package=mock . Service
type Service interface {
	Create(ctx context.Context, req CreateCompanyRequest) (*CompanyResponse, error)
	GetAll(ctx context.Context) ([]CompanyResponse, error)
	GetByID(ctx context.Context, id string) (*CompanyResponse, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) (*CompanyResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateCompanyRequest) (*CompanyResponse, error) {
	name := strings.TrimSpace(req.Name)

	if existing, err := s.repo.GetByName(ctx, name); err == nil && existing != nil {
		return nil, companyerrors.ErrCompanyAlreadyExists
	}

	comp := &Company{
		Name:     name,
		Address:  strings.TrimSpace(req.Address),
		Email:    req.Email,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, comp); err != nil {
		return nil, err
	}

	return s.mapToResponse(comp), nil
}

func (s *service) GetAll(ctx context.Context) ([]CompanyResponse, error) {
	companies, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]CompanyResponse, 0, len(companies))
	for i := range companies {
		responses = append(responses, *s.mapToResponse(&companies[i]))
	}
	return responses, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*CompanyResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrCompanyNotFound
		}
		return nil, err
	}

	return s.mapToResponse(comp), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCompanyRequest) (*CompanyResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrCompanyNotFound
		}
		return nil, err
	}

	if req.Name != "" {
		comp.Name = strings.TrimSpace(req.Name)
	}
	if req.Address != "" {
		comp.Address = strings.TrimSpace(req.Address)
	}
	if req.Email != "" {
		comp.Email = req.Email
	}
	if req.IsActive != nil {
		comp.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, comp); err != nil {
		return nil, err
	}

	return s.mapToResponse(comp), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return companyerrors.ErrInvalidCompanyID
	}

	if _, err := s.repo.GetByID(ctx, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return companyerrors.ErrCompanyNotFound
		}
		return err
	}

	return s.repo.Delete(ctx, uid)
}

func (s *service) mapToResponse(c *Company) *CompanyResponse {
	return &CompanyResponse{
		ID:       c.ID.String(),
		Name:     c.Name,
		Address:  c.Address,
		Email:    c.Email,
		IsActive: c.IsActive,
	}
}
