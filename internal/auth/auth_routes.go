package auth

import (
	"github.com/apper-canvas/staffsync-program-correct/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	auth := r.Group("/auth")
	{
		auth.POST("/callback", middleware.RateLimitByIP(1, 10), handler.Callback)
		auth.POST("/error", middleware.RateLimitByIP(1, 10), handler.Error)
		auth.POST("/logout", middleware.RateLimitByUser(2, 5), handler.Logout)
		auth.GET("/me", middleware.RateLimitByUser(5, 10), handler.Me)
	}
}
