package autherrors

import (
	"net/http"

	"github.com/apper-canvas/staffsync-program-correct/internal/shared/apperror"
)

var (
	ErrInvalidToken = apperror.New(
		apperror.CodeAuth,
		"Invalid authentication token",
		http.StatusUnauthorized,
	)

	ErrTokenExpired = apperror.New(
		apperror.CodeAuth,
		"Authentication token has expired",
		http.StatusUnauthorized,
	)

	ErrMissingUser = apperror.New(
		apperror.CodeAuth,
		"Authentication token carries no user",
		http.StatusUnauthorized,
	)

	ErrNotAuthenticated = apperror.New(
		apperror.CodeUnauthorized,
		"Not authenticated",
		http.StatusUnauthorized,
	)
)
