package http

import (
	"errors"
	"net/http"

	"chirp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HandleServiceError 将 Service 层的业务错误映射为 HTTP 状态码：
// NotFound -> 404, 唯一约束冲突 -> 409, 认证失败 -> 401, 其余 -> 500。
// 存储层的 I/O 失败不重试，统一落到 500 的通用消息。
func HandleServiceError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrAuthenticationFailed) {
		ErrorResponse(c, http.StatusUnauthorized, err.Error())
	} else if errors.Is(err, service.ErrDuplicateUser) {
		ErrorResponse(c, http.StatusConflict, err.Error())
	} else if errors.Is(err, service.ErrUserNotFound) ||
		errors.Is(err, service.ErrPostNotFound) ||
		errors.Is(err, service.ErrCommentNotFound) {
		ErrorResponse(c, http.StatusNotFound, err.Error())
	} else {
		// Log the internal error for debugging
		logrus.WithError(err).Error("Unhandled internal server error")
		ErrorResponse(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
