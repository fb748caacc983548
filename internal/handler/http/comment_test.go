package http_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"chirp/internal/domain"
	handlerhttp "chirp/internal/handler/http"
	"chirp/internal/repository"
	"chirp/internal/repository/mocks"
	"chirp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupCommentRouter(mockCommentRepo *mocks.CommentRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	commentService := service.NewCommentService(mockCommentRepo)
	commentHandler := handlerhttp.NewCommentHandler(commentService)

	router := gin.New()
	router.POST("/comments", commentHandler.Create)
	router.PATCH("/comments/:id", commentHandler.Update)
	return router
}

func TestCommentHandler_Create_Created(t *testing.T) {
	// Arrange
	mockCommentRepo := new(mocks.CommentRepository)
	router := setupCommentRouter(mockCommentRepo)

	mockCommentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Comment")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Comment).ID = 11
		}).
		Return(nil).
		Once()

	body := bytes.NewBufferString(`{"content":"nice","userId":1,"postId":7}`)

	// Act
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/comments", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusCreated, w.Code, "Expected status 201 Created")
	assert.Contains(t, w.Body.String(), `"content":"nice"`)

	// Verify
	mockCommentRepo.AssertExpectations(t)
}

func TestCommentHandler_Create_PostNotFound(t *testing.T) {
	// Arrange: Post 缺失映射为 404
	mockCommentRepo := new(mocks.CommentRepository)
	router := setupCommentRouter(mockCommentRepo)

	mockCommentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Comment")).
		Return(repository.ErrPostNotFound).
		Once()

	body := bytes.NewBufferString(`{"content":"nice","userId":1,"postId":999}`)

	// Act
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/comments", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, w.Code, "Expected status 404 Not Found")

	// Verify
	mockCommentRepo.AssertExpectations(t)
}

func TestCommentHandler_Create_UserNotFound(t *testing.T) {
	// Arrange: User 缺失同样映射为 404
	mockCommentRepo := new(mocks.CommentRepository)
	router := setupCommentRouter(mockCommentRepo)

	mockCommentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Comment")).
		Return(repository.ErrUserNotFound).
		Once()

	body := bytes.NewBufferString(`{"content":"nice","userId":999,"postId":7}`)

	// Act
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/comments", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Verify
	mockCommentRepo.AssertExpectations(t)
}

func TestCommentHandler_Update_NotFound(t *testing.T) {
	// Arrange
	mockCommentRepo := new(mocks.CommentRepository)
	router := setupCommentRouter(mockCommentRepo)

	mockCommentRepo.On("FindByID", mock.Anything, uint(999)).
		Return(nil, repository.ErrCommentNotFound).
		Once()

	body := bytes.NewBufferString(`{"content":"updated"}`)

	// Act
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/comments/999", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Verify
	mockCommentRepo.AssertExpectations(t)
}
