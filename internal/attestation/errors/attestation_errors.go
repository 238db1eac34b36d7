package attestationerrors

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
	ErrAttestationNotFound = apperror.New(
		apperror.CodeNotFound,
		"attestation not found",
		http.StatusNotFound,
	)
	ErrAlreadyDecided = apperror.New(
		apperror.CodeInvalidState,
		"the attestation has already been decided",
		http.StatusBadRequest,
	)
	ErrContentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"content is required when approving an attestation",
		http.StatusBadRequest,
	)
)
