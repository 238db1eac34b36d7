package departmenterrors

import (
	"net/http"

	"github.com/sambizara/GRH-Back/internal/shared/apperror"
)

var (
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid department id",
		http.StatusBadRequest,
	)
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"department not found",
		http.StatusNotFound,
	)
	ErrNameTaken = apperror.New(
		apperror.CodeConflict,
		"a department with this name already exists",
		http.StatusConflict,
	)
	ErrResponsibleNotFound = apperror.New(
		apperror.CodeNotFound,
		"responsible user not found",
		http.StatusNotFound,
	)
)
