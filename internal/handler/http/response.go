package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func ErrorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

func SuccessResponse(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// NoContentResponse 用于删除成功等无响应体的场景
func NoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
