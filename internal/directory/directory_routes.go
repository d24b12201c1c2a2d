package directory

import (
	"github.com/apper-canvas/staffsync-program-correct/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RegisterRoutes mounts the directory pages. rdb backs the create
// idempotency guard; nil disables it.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb redis.Cmdable) {
	r.GET("/login", handler.Login)
	r.GET("/signup", handler.Signup)
	r.GET("/callback", handler.Callback)
	r.GET("/error", handler.ErrorPage)

	r.GET("/", handler.Dashboard)
	r.GET("/dashboard", handler.Dashboard)
	r.GET("/home", handler.Home)

	create := []gin.HandlerFunc{middleware.RateLimitByUser(2, 5)}
	if rdb != nil {
		create = append(create, middleware.Idempotency(rdb))
	}
	create = append(create, handler.CreateEmployee)

	employees := r.Group("/employees")
	{
		employees.GET("", middleware.RateLimitByUser(10, 20), handler.ListEmployees)
		employees.POST("", create...)
		employees.GET("/:id", handler.GetEmployee)
		employees.PUT("/:id", middleware.RateLimitByUser(2, 5), handler.UpdateEmployee)
		employees.DELETE("/:id", middleware.RateLimitByUser(2, 5), handler.DeleteEmployee)
	}

	forms := r.Group("/forms")
	{
		forms.POST("", handler.OpenForm)
		forms.GET("/:formId", handler.GetForm)
		forms.PATCH("/:formId", handler.UpdateForm)
		forms.POST("/:formId/photo", handler.UploadPhoto)
		forms.DELETE("/:formId/photo", handler.RemovePhoto)
		forms.POST("/:formId/next", handler.NextStep)
		forms.POST("/:formId/back", handler.PreviousStep)
		forms.POST("/:formId/submit", middleware.RateLimitByUser(2, 5), handler.SubmitForm)
		forms.DELETE("/:formId", handler.CloseForm)
	}

	r.GET("/ws/employees", handler.LiveEmployees)
}
