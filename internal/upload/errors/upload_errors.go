package uploaderrors

import (
	"net/http"

	"payslip-portal/internal/shared/apperror"
)

var (
	ErrFileRequired = apperror.New(
		apperror.CodeInvalidInput,
		"a spreadsheet file is required",
		http.StatusBadRequest,
	)
	ErrUnsupportedFileType = apperror.New(
		apperror.CodeInvalidInput,
		"only .xlsx and .xls workbooks are supported",
		http.StatusBadRequest,
	)
	ErrWorkbookUnreadable = apperror.New(
		apperror.CodeInvalidSheet,
		"could not read the spreadsheet file",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidUploadID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid upload id",
		http.StatusBadRequest,
	)
	ErrUploadNotFound = apperror.New(
		apperror.CodeNotFound,
		"upload not found",
		http.StatusNotFound,
	)
	ErrUploadAlreadyConverted = apperror.New(
		apperror.CodeInvalidState,
		"upload has already been converted",
		http.StatusConflict,
	)
	ErrNoRowsToConvert = apperror.New(
		apperror.CodeInvalidState,
		"upload has no rows to convert",
		http.StatusConflict,
	)
)
