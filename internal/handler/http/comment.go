package http

import (
	"net/http"

	"chirp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CommentHandler 封装了评论资源相关的 HTTP 处理逻辑
type CommentHandler struct {
	commentService *service.CommentService
}

// NewCommentHandler 创建 CommentHandler 实例
func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateCommentRequest 定义评论请求的结构体
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
	UserID  uint   `json:"userId" binding:"required"`
	PostID  uint   `json:"postId" binding:"required"`
}

// UpdateCommentRequest 定义评论更新请求的结构体
type UpdateCommentRequest struct {
	Content *string `json:"content" binding:"omitempty,min=1"`
}

// Create 处理评论请求 (POST /comments)
func (h *CommentHandler) Create(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.CreateComment: Invalid input format")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), req.UserID, req.PostID, req.Content)
	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": req.UserID, "post_id": req.PostID}).
			WithError(err).Warn("Handler.CreateComment: Create failed")
		HandleServiceError(c, err)
		return
	}

	logrus.WithField("comment_id", comment.ID).Info("Handler.CreateComment: Comment created successfully")
	SuccessResponse(c, http.StatusCreated, comment)
}

// Get 返回单条评论 (GET /comments/:id)
func (h *CommentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	comment, err := h.commentService.Get(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, comment)
}

// Update 更新评论 (PATCH /comments/:id)
func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.UpdateComment: Invalid input format")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), id, req.Content)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, comment)
}

// Delete 删除评论 (DELETE /comments/:id)
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), id); err != nil {
		HandleServiceError(c, err)
		return
	}
	NoContentResponse(c)
}
