package preference

import (
	"github.com/apper-canvas/staffsync-program-correct/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	prefs := r.Group("/preferences")
	{
		prefs.GET("/theme", middleware.RateLimitByUser(5, 10), handler.GetTheme)
		prefs.PUT("/theme", middleware.RateLimitByUser(2, 5), handler.UpdateTheme)
	}
}
