package auth

import "github.com/apper-canvas/staffsync-program-correct/internal/session"

// CallbackRequest is what the browser relays after the auth provider
// reports a result. A null token means the provider has no user.
type CallbackRequest struct {
	Token       *string `json:"token"`
	CurrentPath string  `json:"currentPath" binding:"required"`
}

type ErrorRequest struct {
	Message string `json:"message"`
}

type NextResponse struct {
	Next string `json:"next"`
}

type MeResponse struct {
	User            session.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
}

// CallbackResult carries the session to keep (empty when the session was
// cleared) and the path to navigate to.
type CallbackResult struct {
	SessionID string
	Next      string
}
