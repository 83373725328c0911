package paysliperrors

import (
	"net/http"

	"payslip-portal/internal/shared/apperror"
)

var (
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"payslip not found",
		http.StatusNotFound,
	)
	ErrInvalidPayslipID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payslip id",
		http.StatusBadRequest,
	)
	ErrInvalidPayPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"invalid pay period, expected e.g. 'March 2025'",
		http.StatusBadRequest,
	)
	ErrMissingEmployeeName = apperror.New(
		apperror.CodeInvalidInput,
		"employee name is required",
		http.StatusBadRequest,
	)
	ErrNothingToExport = apperror.New(
		apperror.CodeNotFound,
		"no payslips match the export filter",
		http.StatusNotFound,
	)
)
