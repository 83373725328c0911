package document

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	documenterrors "payslip-portal/internal/document/errors"
	"payslip-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StoreDocumentInput is everything the handler extracted from the multipart
// form.
type StoreDocumentInput struct {
	Title         string
	FileName      string
	ContentType   string
	CompanyID     string
	DesignationID string
	AccessCode    string
	Data          []byte
}

//go:generate mockgen -source=document_service.go -destination=mock/document_service_mock.go -package=mock
type Service interface {
	Store(ctx context.Context, in StoreDocumentInput) (DocumentResponse, error)
	GetAll(ctx context.Context, filter DocumentFilterRequest) ([]DocumentResponse, error)
	GetByID(ctx context.Context, id string) (DocumentResponse, error)
	Update(ctx context.Context, id string, req UpdateDocumentRequest) (DocumentResponse, error)
	Delete(ctx context.Context, id string) error
	// Download checks the access code, logs the attempt and returns the blob.
	Download(ctx context.Context, id string, accessCode string, userID string) (string, string, []byte, error)
	AccessLog(ctx context.Context, id string) ([]AccessLogResponse, error)
}

type service struct {
	repo    Repository
	storage Storage
	logger  *zap.Logger
}

func NewService(repo Repository, storage Storage) Service {
	return &service{repo: repo, storage: storage, logger: zap.L()}
}

func (s *service) Store(ctx context.Context, in StoreDocumentInput) (DocumentResponse, error) {
	if len(in.Data) == 0 {
		return DocumentResponse{}, documenterrors.ErrFileRequired
	}

	id := uuid.New()
	path := fmt.Sprintf("%s/%s", time.Now().Format("2006/01"), id.String()+"_"+in.FileName)

	if _, err := s.storage.Store(ctx, in.Data, path); err != nil {
		return DocumentResponse{}, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = in.FileName
	}

	// FilePath stays storage-relative so the blob can move with the base
	// directory.
	d := &Document{
		ID:          id,
		Title:       title,
		FileName:    in.FileName,
		FilePath:    path,
		Size:        int64(len(in.Data)),
		ContentType: in.ContentType,
		AccessCode:  in.AccessCode,
		IsActive:    true,
	}
	if in.CompanyID != "" {
		cid, err := uuid.Parse(in.CompanyID)
		if err != nil {
			return DocumentResponse{}, documenterrors.ErrInvalidDocumentID
		}
		d.CompanyID = &cid
	}
	if in.DesignationID != "" {
		did, err := uuid.Parse(in.DesignationID)
		if err != nil {
			return DocumentResponse{}, documenterrors.ErrInvalidDocumentID
		}
		d.DesignationID = &did
	}

	if err := s.repo.Create(ctx, d); err != nil {
		// The blob is orphaned if the insert fails; best effort cleanup.
		if rmErr := s.storage.Remove(ctx, path); rmErr != nil {
			s.logger.Warn("failed to remove orphaned document blob",
				zap.String("path", path), zap.Error(rmErr))
		}
		return DocumentResponse{}, err
	}

	return mapToResponse(*d), nil
}

func (s *service) GetAll(ctx context.Context, filter DocumentFilterRequest) ([]DocumentResponse, error) {
	documents, err := s.repo.FindAll(ctx, QueryFilter{
		CompanyID:     filter.CompanyID,
		DesignationID: filter.DesignationID,
		Search:        filter.Search,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]DocumentResponse, 0, len(documents))
	for _, d := range documents {
		responses = append(responses, mapToResponse(d))
	}
	return responses, nil
}

func (s *service) GetByID(ctx context.Context, id string) (DocumentResponse, error) {
	d, err := s.find(ctx, id)
	if err != nil {
		return DocumentResponse{}, err
	}
	return mapToResponse(*d), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDocumentRequest) (DocumentResponse, error) {
	d, err := s.find(ctx, id)
	if err != nil {
		return DocumentResponse{}, err
	}

	if req.Title != "" {
		d.Title = strings.TrimSpace(req.Title)
	}
	if req.CompanyID != "" {
		cid, err := uuid.Parse(req.CompanyID)
		if err != nil {
			return DocumentResponse{}, documenterrors.ErrInvalidDocumentID
		}
		d.CompanyID = &cid
	}
	if req.DesignationID != "" {
		did, err := uuid.Parse(req.DesignationID)
		if err != nil {
			return DocumentResponse{}, documenterrors.ErrInvalidDocumentID
		}
		d.DesignationID = &did
	}
	if req.AccessCode != nil {
		d.AccessCode = *req.AccessCode
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return DocumentResponse{}, err
	}
	return mapToResponse(*d), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	return s.repo.Deactivate(ctx, id)
}

func (s *service) Download(ctx context.Context, id string, accessCode string, userID string) (string, string, []byte, error) {
	logger := contextutil.GetLogger(ctx)

	d, err := s.find(ctx, id)
	if err != nil {
		return "", "", nil, err
	}

	granted := s.accessAllowed(d, accessCode)
	logEntry := &DocumentAccessLog{
		ID:         uuid.New(),
		DocumentID: d.ID,
		UserID:     userID,
		Granted:    granted,
	}
	if logErr := s.repo.LogAccess(ctx, logEntry); logErr != nil {
		logger.Warn("failed to record document access",
			zap.String("document_id", id), zap.Error(logErr))
	}

	if !granted {
		if accessCode == "" {
			return "", "", nil, documenterrors.ErrAccessCodeRequired
		}
		return "", "", nil, documenterrors.ErrAccessCodeMismatch
	}

	data, err := s.storage.Load(ctx, d.FilePath)
	if err != nil {
		return "", "", nil, err
	}
	return d.FileName, d.ContentType, data, nil
}

func (s *service) AccessLog(ctx context.Context, id string) ([]AccessLogResponse, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}

	entries, err := s.repo.AccessLog(ctx, id)
	if err != nil {
		return nil, err
	}

	responses := make([]AccessLogResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, AccessLogResponse{
			UserID:     e.UserID,
			Granted:    e.Granted,
			AccessedAt: e.AccessedAt,
		})
	}
	return responses, nil
}

func (s *service) find(ctx context.Context, id string) (*Document, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, documenterrors.ErrInvalidDocumentID
	}

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, documenterrors.ErrDocumentNotFound
		}
		return nil, err
	}
	if !d.IsActive {
		return nil, documenterrors.ErrDocumentNotFound
	}
	return d, nil
}

func (s *service) accessAllowed(d *Document, code string) bool {
	if d.AccessCode == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(d.AccessCode), []byte(code)) == 1
}

func mapToResponse(d Document) DocumentResponse {
	resp := DocumentResponse{
		ID:          d.ID.String(),
		Title:       d.Title,
		FileName:    d.FileName,
		Size:        d.Size,
		ContentType: d.ContentType,
		Protected:   d.AccessCode != "",
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if d.CompanyID != nil {
		resp.CompanyID = d.CompanyID.String()
	}
	if d.DesignationID != nil {
		resp.DesignationID = d.DesignationID.String()
	}
	return resp
}
