package upload

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"payslip-portal/internal/shared/apperror"
	"payslip-portal/internal/shared/response"
	uploaderrors "payslip-portal/internal/upload/errors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// maxWorkbookSize caps an uploaded workbook at 10 MB.
const maxWorkbookSize = 10 << 20

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.L()
	}
	return &Handler{service: service, logger: logger}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client, logger *zap.Logger) *Handler {
	h := NewHandler(service, logger)
	h.rdb = rdb
	return h
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("upload request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// readWorkbookFile pulls the "file" part out of the multipart form and reads
// it fully into memory.
func readWorkbookFile(c *gin.Context) (string, []byte, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", nil, uploaderrors.ErrFileRequired
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		return "", nil, uploaderrors.ErrUnsupportedFileType
	}
	if fileHeader.Size > maxWorkbookSize {
		return "", nil, apperror.New(
			apperror.CodeInvalidInput,
			"spreadsheet file exceeds the 10 MB limit",
			http.StatusRequestEntityTooLarge,
		)
	}

	data, err := readAll(fileHeader)
	if err != nil {
		return "", nil, uploaderrors.ErrWorkbookUnreadable
	}
	return filepath.Base(fileHeader.Filename), data, nil
}

func readAll(fileHeader *multipart.FileHeader) ([]byte, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxWorkbookSize))
}

// ImportFlexible accepts any workbook layout and imports it in one shot.
func (h *Handler) ImportFlexible(c *gin.Context) {
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	fileName, data, err := readWorkbookFile(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	payPeriod := c.PostForm("pay_period")

	resp, err := h.service.ImportFlexible(c.Request.Context(), fileName, payPeriod, data)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
			}
		}
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

// ValidateStrict checks a workbook against the payroll template and retains
// it for review when valid.
func (h *Handler) ValidateStrict(c *gin.Context) {
	fileName, data, err := readWorkbookFile(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	name := c.PostForm("name")

	resp, err := h.service.ValidateStrict(c.Request.Context(), name, fileName, data)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if !resp.IsValid {
		response.Error(c, http.StatusUnprocessableEntity, apperror.CodeInvalidSheet,
			"Spreadsheet failed strict validation", resp)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Convert(c *gin.Context) {
	var req ConvertUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	resp, err := h.service.ConvertUpload(c.Request.Context(), c.Param("id"), req.PayPeriod)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
