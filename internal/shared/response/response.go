package response

import (
	"github.com/gin-gonic/gin"
)

type PaginationMeta struct {
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	Page       int   `json:"page,omitempty"`
	PageSize   int   `json:"pageSize,omitempty"`
}

func NewPaginationMeta(total int64, page, limit int) PaginationMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return PaginationMeta{
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   limit,
	}
}

type ApiEnvelope struct {
	Ok     bool            `json:"ok"`
	Data   any             `json:"data,omitempty"`
	Meta   *PaginationMeta `json:"meta,omitempty"`
	Notice *Notice         `json:"notice,omitempty"`
	Error  any             `json:"error,omitempty"`
}

// Notice is a transient, user-facing notification ("toast") attached to a
// response.
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

func SuccessNotice(message string) *Notice {
	return &Notice{Level: "success", Message: message}
}

func ErrorNotice(message string) *Notice {
	return &Notice{Level: "error", Message: message}
}

func Success(c *gin.Context, status int, data interface{}, meta *PaginationMeta) {
	c.JSON(status, ApiEnvelope{
		Ok:   true,
		Data: data,
		Meta: meta,
	})
}

func SuccessWithNotice(c *gin.Context, status int, data interface{}, notice *Notice) {
	c.JSON(status, ApiEnvelope{
		Ok:     true,
		Data:   data,
		Notice: notice,
	})
}

func Error(c *gin.Context, status int, errorCode string, message string, details interface{}) {
	c.JSON(status, ApiEnvelope{
		Ok: false,
		Error: map[string]interface{}{
			"code":    errorCode,
			"message": message,
			"details": details,
		},
	})
}

func ErrorWithNotice(c *gin.Context, status int, errorCode string, message string, details interface{}, notice *Notice) {
	c.JSON(status, ApiEnvelope{
		Ok:     false,
		Notice: notice,
		Error: map[string]interface{}{
			"code":    errorCode,
			"message": message,
			"details": details,
		},
	})
}
