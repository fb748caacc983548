package http

import (
	"net/http"

	"chirp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PostHandler 封装了帖子资源相关的 HTTP 处理逻辑
type PostHandler struct {
	postService *service.PostService
}

// NewPostHandler 创建 PostHandler 实例
func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePostRequest 定义发帖请求的结构体
type CreatePostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	UserID  uint   `json:"userId" binding:"required"`
}

// UpdatePostRequest 定义帖子更新请求的结构体
type UpdatePostRequest struct {
	Title   *string `json:"title" binding:"omitempty,min=1"`
	Content *string `json:"content" binding:"omitempty,min=1"`
}

// Create 处理发帖请求 (POST /posts)
func (h *PostHandler) Create(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.CreatePost: Invalid input format")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	post, err := h.postService.Create(c.Request.Context(), req.UserID, req.Title, req.Content)
	if err != nil {
		logrus.WithField("user_id", req.UserID).WithError(err).Warn("Handler.CreatePost: Create failed")
		HandleServiceError(c, err)
		return
	}

	logrus.WithField("post_id", post.ID).Info("Handler.CreatePost: Post created successfully")
	SuccessResponse(c, http.StatusCreated, post)
}

// List 返回全部帖子 (GET /posts)
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.postService.List(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, posts)
}

// Get 返回单个帖子 (GET /posts/:id)
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	post, err := h.postService.Get(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, post)
}

// ListComments 返回某帖子下的全部评论 (GET /posts/:id/comments)
func (h *PostHandler) ListComments(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	comments, err := h.postService.ListComments(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, comments)
}

// Update 更新帖子 (PATCH /posts/:id)
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.UpdatePost: Invalid input format")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	post, err := h.postService.Update(c.Request.Context(), id, req.Title, req.Content)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, post)
}

// Delete 删除帖子 (DELETE /posts/:id)，其评论级联删除
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.postService.Delete(c.Request.Context(), id); err != nil {
		HandleServiceError(c, err)
		return
	}
	NoContentResponse(c)
}
