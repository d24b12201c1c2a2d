package formerrors

import (
	"net/http"

	"github.com/apper-canvas/staffsync-program-correct/internal/shared/apperror"
)

var (
	ErrFormNotFound = apperror.New(
		apperror.CodeNotFound,
		"Form not found",
		http.StatusNotFound,
	)
	ErrFormClosed = apperror.New(
		apperror.CodeInvalidState,
		"Form is already closed",
		http.StatusConflict,
	)
	ErrSubmitInProgress = apperror.New(
		apperror.CodeInvalidState,
		"Form is already being submitted",
		http.StatusConflict,
	)
	ErrNotOnFinalStep = apperror.New(
		apperror.CodeInvalidState,
		"Form can only be submitted from the last step",
		http.StatusConflict,
	)
	ErrUnknownField = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown form field",
		http.StatusBadRequest,
	)
	ErrNotAnImage = apperror.New(
		apperror.CodeInvalidInput,
		"Photo must be an image",
		http.StatusBadRequest,
	)
	ErrEditRequiresRecord = apperror.New(
		apperror.CodeInvalidInput,
		"An existing employee is required to open an edit form",
		http.StatusBadRequest,
	)
)
