package policyerrors

import (
	"net/http"

	"github.com/ekowhinson/HRMS-sub004/internal/shared/apperror"
)

var (
	ErrComponentCodeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A pay component with this code already exists",
		http.StatusConflict,
	)
	ErrComponentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Pay component not found",
		http.StatusNotFound,
	)
	ErrNoEffectiveTaxBrackets = apperror.New(
		apperror.CodeInvalidState,
		"No tax brackets are effective for the requested date",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidTaxBrackets = apperror.New(
		apperror.CodeInvalidState,
		"Tax brackets are not contiguous from zero with an unbounded top bracket",
		http.StatusUnprocessableEntity,
	)
	ErrNoEffectiveStatutoryRates = apperror.New(
		apperror.CodeInvalidState,
		"No statutory contribution rates are effective for the requested date",
		http.StatusUnprocessableEntity,
	)
	ErrNoBasicComponent = apperror.New(
		apperror.CodeInvalidState,
		"No pay component is flagged as the basic salary component",
		http.StatusUnprocessableEntity,
	)
)
