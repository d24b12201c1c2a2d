package auth

import (
	"net/http"

	"github.com/apper-canvas/staffsync-program-correct/internal/session"
	"github.com/apper-canvas/staffsync-program-correct/internal/shared/apperror"
	"github.com/apper-canvas/staffsync-program-correct/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const sessionMaxAge = 86400 * 7

type Handler struct {
	service      Service
	secureCookie bool
}

func NewHandler(s Service, secureCookie bool) *Handler {
	return &Handler{service: s, secureCookie: secureCookie}
}

// Callback receives the auth provider's result relayed by the browser.
func (h *Handler) Callback(c *gin.Context) {
	var req CallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	sessionID, _ := c.Cookie(session.CookieName)
	res, err := h.service.HandleCallback(c.Request.Context(), sessionID, req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.setSessionCookie(c, "", -1)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, NextResponse{Next: session.ErrorPath(httpErr.Message)})
		return
	}

	if res.SessionID != "" {
		h.setSessionCookie(c, res.SessionID, sessionMaxAge)
	} else {
		h.setSessionCookie(c, "", -1)
	}
	response.Success(c, http.StatusOK, NextResponse{Next: res.Next}, nil)
}

// Error receives an auth provider failure and answers with the error page.
func (h *Handler) Error(c *gin.Context) {
	var req ErrorRequest
	_ = c.ShouldBindJSON(&req)

	sessionID, _ := c.Cookie(session.CookieName)
	res := h.service.Fail(c.Request.Context(), sessionID, req.Message)

	h.setSessionCookie(c, "", -1)
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	sessionID, _ := c.Cookie(session.CookieName)
	res := h.service.Logout(c.Request.Context(), sessionID)

	h.setSessionCookie(c, "", -1)
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Me(c *gin.Context) {
	sessionID, _ := c.Cookie(session.CookieName)
	res, err := h.service.Me(c.Request.Context(), sessionID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     session.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
