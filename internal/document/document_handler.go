package document

import (
	"io"
	"net/http"
	"path/filepath"

	documenterrors "payslip-portal/internal/document/errors"
	"payslip-portal/internal/shared/apperror"
	"payslip-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxDocumentSize caps an uploaded document at 25 MB.
const maxDocumentSize = 25 << 20

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("document.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("document request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.writeServiceError(c, documenterrors.ErrFileRequired)
		return
	}
	if fileHeader.Size > maxDocumentSize {
		response.Error(c, http.StatusRequestEntityTooLarge, apperror.CodeInvalidInput,
			"Document exceeds the 25 MB limit", nil)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.writeServiceError(c, documenterrors.ErrFileRequired)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxDocumentSize))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Store(c.Request.Context(), StoreDocumentInput{
		Title:         c.PostForm("title"),
		FileName:      filepath.Base(fileHeader.Filename),
		ContentType:   fileHeader.Header.Get("Content-Type"),
		CompanyID:     c.PostForm("company_id"),
		DesignationID: c.PostForm("designation_id"),
		AccessCode:    c.PostForm("access_code"),
		Data:          data,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	var filter DocumentFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	resp, err := h.service.GetAll(c.Request.Context(), filter)
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

func (h *Handler) Update(c *gin.Context) {
	var req UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
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

	c.Status(http.StatusNoContent)
}

// Download streams the blob. The access code travels in a header so it never
// lands in access logs of intermediaries.
func (h *Handler) Download(c *gin.Context) {
	userID := c.GetString("user_id")
	accessCode := c.GetHeader("X-Access-Code")

	fileName, contentType, data, err := h.service.Download(
		c.Request.Context(), c.Param("id"), accessCode, userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, contentType, data)
}

func (h *Handler) AccessLog(c *gin.Context) {
	resp, err := h.service.AccessLog(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
