package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader 是携带请求 ID 的响应/请求头
const RequestIDHeader = "X-Request-ID"

// RequestID 返回一个 Gin 中间件，为每个请求分配唯一 ID。
// 客户端已携带 X-Request-ID 时沿用，否则生成新的 UUID，
// 写回响应头并放入 Gin 上下文供日志中间件使用。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)
		c.Next()
	}
}
