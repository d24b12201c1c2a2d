package apperror

import "net/http"

var (
	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)
)

func RequiredField(field string) *AppError {
	return New(CodeInvalidInput, field+" is required", http.StatusBadRequest)
}

func InvalidField(field string) *AppError {
	return New(CodeInvalidInput, field+" is invalid", http.StatusBadRequest)
}

// RemoteQuery wraps any failure reported by the record store. The message is
// the upstream message so it can be shown to the user verbatim.
func RemoteQuery(err error) *AppError {
	if err == nil {
		return nil
	}
	return Wrap(err, CodeRemoteQuery, err.Error(), http.StatusBadGateway)
}
