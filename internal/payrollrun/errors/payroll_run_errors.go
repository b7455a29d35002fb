package payrollrunerrors

import (
	"net/http"

	"github.com/ekowhinson/HRMS-sub004/internal/shared/apperror"
)

var (
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"Period end must be on or after period start",
		http.StatusBadRequest,
	)
	ErrPeriodOverlap = apperror.New(
		apperror.CodeConflict,
		"A payroll run already covers part of this period",
		http.StatusConflict,
	)
	ErrRunNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payroll run not found",
		http.StatusNotFound,
	)
	ErrDuplicateRunNumber = apperror.New(
		apperror.CodeConflict,
		"Payroll run number already exists",
		http.StatusConflict,
	)
	ErrNoEmployees = apperror.New(
		apperror.CodeInvalidState,
		"No employees found for this company",
		http.StatusUnprocessableEntity,
	)
)
