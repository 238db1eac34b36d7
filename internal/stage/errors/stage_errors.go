package stageerrors

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
	ErrStageNotFound = apperror.New(
		apperror.CodeNotFound,
		"internship not found",
		http.StatusNotFound,
	)
	ErrInternNotFound = apperror.New(
		apperror.CodeNotFound,
		"intern not found",
		http.StatusNotFound,
	)
	ErrNotAnIntern = apperror.New(
		apperror.CodeInvalidInput,
		"the selected user is not an intern",
		http.StatusBadRequest,
	)
	ErrMentorNotFound = apperror.New(
		apperror.CodeNotFound,
		"mentor not found",
		http.StatusNotFound,
	)
	ErrMentorNotEmployee = apperror.New(
		apperror.CodeInvalidInput,
		"the mentor must be an employee",
		http.StatusBadRequest,
	)
	ErrInternAlreadyAssigned = apperror.New(
		apperror.CodeConflict,
		"the intern already has a pending or ongoing internship",
		http.StatusConflict,
	)
	ErrMentorAlreadyAssigned = apperror.New(
		apperror.CodeInvalidState,
		"this mentor is already assigned to the internship",
		http.StatusBadRequest,
	)
	ErrNotStageMentor = apperror.New(
		apperror.CodeForbidden,
		"you are not the mentor of this internship",
		http.StatusForbidden,
	)
	ErrAlreadyDecided = apperror.New(
		apperror.CodeInvalidState,
		"this internship assignment has already been decided",
		http.StatusBadRequest,
	)
	ErrRejectReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"a reason is required to reject an internship assignment",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid internship status",
		http.StatusBadRequest,
	)
)
