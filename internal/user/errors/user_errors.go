package usererrors

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
	ErrEmployeeDetailsRequired = apperror.New(
		apperror.CodeInvalidInput,
		"employee details are required for role SALARIE",
		http.StatusBadRequest,
	)
	ErrInternDetailsRequired = apperror.New(
		apperror.CodeInvalidInput,
		"intern details are required for role STAGIAIRE",
		http.StatusBadRequest,
	)
	ErrDetailsRoleMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"role payload does not match the user role",
		http.StatusBadRequest,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"a user with this email already exists",
		http.StatusConflict,
	)
)
