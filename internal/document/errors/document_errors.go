package documenterrors

import (
	"net/http"

	"payslip-portal/internal/shared/apperror"
)

var (
	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Document not found",
		http.StatusNotFound,
	)

	ErrInvalidDocumentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid document ID",
		http.StatusBadRequest,
	)

	ErrFileRequired = apperror.New(
		apperror.CodeInvalidInput,
		"A document file is required",
		http.StatusBadRequest,
	)

	ErrAccessCodeRequired = apperror.New(
		apperror.CodeForbidden,
		"This document requires an access code",
		http.StatusForbidden,
	)

	ErrAccessCodeMismatch = apperror.New(
		apperror.CodeForbidden,
		"Access code is incorrect",
		http.StatusForbidden,
	)
)
