package contracterrors

import (
	"net/http"

	"github.com/sambizara/GRH-Back/internal/shared/apperror"
)

var (
	ErrInvalidContractID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid contract id",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid department id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_date must be after start_date",
		http.StatusBadRequest,
	)
	ErrEndDateRequired = apperror.New(
		apperror.CodeInvalidInput,
		"end_date is required for a fixed-term contract",
		http.StatusBadRequest,
	)
	ErrSalaryRequired = apperror.New(
		apperror.CodeInvalidInput,
		"salary is required for this contract type",
		http.StatusBadRequest,
	)
	ErrPositionRequired = apperror.New(
		apperror.CodeInvalidInput,
		"position is required for this contract type",
		http.StatusBadRequest,
	)
	ErrSalaryForbiddenForStage = apperror.New(
		apperror.CodeInvalidInput,
		"an internship contract cannot have a salary",
		http.StatusBadRequest,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"department not found",
		http.StatusNotFound,
	)
	ErrContractNotFound = apperror.New(
		apperror.CodeNotFound,
		"contract not found",
		http.StatusNotFound,
	)
	ErrContractOverlap = apperror.New(
		apperror.CodeConflict,
		"the user already has an active contract over this period",
		http.StatusConflict,
	)
	ErrPermanentNotRenewable = apperror.New(
		apperror.CodeInvalidInput,
		"a permanent (CDI) contract cannot be renewed",
		http.StatusBadRequest,
	)
)
