package leaveerrors

import (
	"net/http"

	"github.com/sambizara/GRH-Back/internal/shared/apperror"
)

var (
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_date must be strictly after start_date",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be APPROVED or REJECTED",
		http.StatusBadRequest,
	)
	ErrDeleteForbidden = apperror.New(
		apperror.CodeForbidden,
		"only the owner or an HR admin can delete this leave request",
		http.StatusForbidden,
	)
	ErrOwnerDeleteApproved = apperror.New(
		apperror.CodeForbidden,
		"an approved leave request can only be deleted by an HR admin",
		http.StatusForbidden,
	)
)
