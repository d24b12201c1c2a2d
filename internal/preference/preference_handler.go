package preference

import (
	"net/http"

	"github.com/apper-canvas/staffsync-program-correct/internal/middleware"
	"github.com/apper-canvas/staffsync-program-correct/internal/shared/apperror"
	"github.com/apper-canvas/staffsync-program-correct/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("preference.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("preference.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("preference request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetTheme(c *gin.Context) {
	c.Header("Accept-CH", HeaderPrefersColorScheme)
	c.Header("Vary", HeaderPrefersColorScheme)

	res, err := h.service.GetTheme(c.Request.Context(), c.GetString(middleware.ContextUserID), c.GetHeader(HeaderPrefersColorScheme))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) UpdateTheme(c *gin.Context) {
	var req UpdateThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.SetTheme(c.Request.Context(), c.GetString(middleware.ContextUserID), *req.DarkMode)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}
