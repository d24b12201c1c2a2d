package workspaceerrors

import (
	"net/http"

	"github.com/apper-canvas/staffsync-program-correct/internal/shared/apperror"
)

var (
	ErrWorkspaceNotFound = apperror.New(
		apperror.CodeUnauthorized,
		"Session has expired",
		http.StatusUnauthorized,
	)
)
