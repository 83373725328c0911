package designationerrors

import (
	"net/http"

	"payslip-portal/internal/shared/apperror"
)

var (
	ErrDesignationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Designation not found",
		http.StatusNotFound,
	)

	ErrDesignationAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Designation with the same title already exists",
		http.StatusConflict,
	)

	ErrInvalidDesignationID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid designation ID",
		http.StatusBadRequest,
	)
)
