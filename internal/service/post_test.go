package service_test

import (
	"context"
	"errors"
	"testing"

	"chirp/internal/domain"
	"chirp/internal/repository"
	"chirp/internal/repository/mocks"
	"chirp/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPostService_Create_Success(t *testing.T) {
	// Arrange
	mockPostRepo := new(mocks.PostRepository)
	mockCommentRepo := new(mocks.CommentRepository)
	postService := service.NewPostService(mockPostRepo, mockCommentRepo)
	ctx := context.Background()

	mockPostRepo.On("Create", ctx, mock.MatchedBy(func(post *domain.Post) bool {
		assert.Equal(t, "hi", post.Title)
		assert.Equal(t, "first post", post.Content)
		assert.Equal(t, uint(1), post.UserID)
		return true
	})).
		Run(func(args mock.Arguments) { // 模拟数据库填充 ID
			postArg := args.Get(1).(*domain.Post)
			postArg.ID = 7
		}).
		Return(nil).
		Once()

	// Act
	post, err := postService.Create(ctx, 1, "hi", "first post")

	// Assert
	assert.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, uint(7), post.ID)

	// Verify
	mockPostRepo.AssertExpectations(t)
}

func TestPostService_Create_AuthorNotFound(t *testing.T) {
	// Arrange: 作者不存在时应返回 NotFound，不会留下部分写入的帖子
	mockPostRepo := new(mocks.PostRepository)
	mockCommentRepo := new(mocks.CommentRepository)
	postService := service.NewPostService(mockPostRepo, mockCommentRepo)
	ctx := context.Background()

	mockPostRepo.On("Create", ctx, mock.AnythingOfType("*domain.Post")).Return(repository.ErrUserNotFound).Once()

	// Act
	post, err := postService.Create(ctx, 999, "hi", "content")

	// Assert
	require.Error(t, err)
	assert.Nil(t, post)
	assert.True(t, errors.Is(err, service.ErrUserNotFound))

	// Verify
	mockPostRepo.AssertExpectations(t)
}

func TestPostService_Get_NotFound(t *testing.T) {
	// Arrange
	mockPostRepo := new(mocks.PostRepository)
	mockCommentRepo := new(mocks.CommentRepository)
	postService := service.NewPostService(mockPostRepo, mockCommentRepo)
	ctx := context.Background()

	mockPostRepo.On("FindByID", ctx, uint(999)).Return(nil, repository.ErrPostNotFound).Once()

	// Act
	_, err := postService.Get(ctx, 999)

	// Assert
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrPostNotFound))

	// Verify
	mockPostRepo.AssertExpectations(t)
}

func TestPostService_Update_Success(t *testing.T) {
	// Arrange
	mockPostRepo := new(mocks.PostRepository)
	mockCommentRepo := new(mocks.CommentRepository)
	postService := service.NewPostService(mockPostRepo, mockCommentRepo)
	ctx := context.Background()
	postInDb := &domain.Post{ID: 7, Title: "old", Content: "old content", UserID: 1}
	newTitle := "new title"

	mockPostRepo.On("FindByID", ctx, uint(7)).Return(postInDb, nil).Once()
	mockPostRepo.On("Save", ctx, mock.MatchedBy(func(post *domain.Post) bool {
		assert.Equal(t, newTitle, post.Title)
		assert.Equal(t, "old content", post.Content, "未提供的字段应保持原值")
		assert.Equal(t, uint(1), post.UserID, "外键不在更新范围内")
		return true
	})).Return(nil).Once()

	// Act
	post, err := postService.Update(ctx, 7, &newTitle, nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, newTitle, post.Title)

	// Verify
	mockPostRepo.AssertExpectations(t)
}

func TestPostService_Delete_NotFound(t *testing.T) {
	// Arrange
	mockPostRepo := new(mocks.PostRepository)
	mockCommentRepo := new(mocks.CommentRepository)
	postService := service.NewPostService(mockPostRepo, mockCommentRepo)
	ctx := context.Background()

	mockPostRepo.On("Delete", ctx, uint(999)).Return(repository.ErrPostNotFound).Once()

	// Act
	err := postService.Delete(ctx, 999)

	// Assert
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrPostNotFound))

	// Verify
	mockPostRepo.AssertExpectations(t)
}

func TestPostService_ListComments_PostNotFound(t *testing.T) {
	// Arrange
	mockPostRepo := new(mocks.PostRepository)
	mockCommentRepo := new(mocks.CommentRepository)
	postService := service.NewPostService(mockPostRepo, mockCommentRepo)
	ctx := context.Background()

	mockPostRepo.On("FindByID", ctx, uint(999)).Return(nil, repository.ErrPostNotFound).Once()

	// Act
	_, err := postService.ListComments(ctx, 999)

	// Assert
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrPostNotFound))

	// Verify
	mockPostRepo.AssertExpectations(t)
	mockCommentRepo.AssertNotCalled(t, "FindByPost", mock.Anything, mock.Anything)
}

func TestPostService_ListComments_Success(t *testing.T) {
	// Arrange
	mockPostRepo := new(mocks.PostRepository)
	mockCommentRepo := new(mocks.CommentRepository)
	postService := service.NewPostService(mockPostRepo, mockCommentRepo)
	ctx := context.Background()
	postInDb := &domain.Post{ID: 7, Title: "hi", UserID: 1}
	commentsInDb := []domain.Comment{
		{ID: 1, Content: "nice", UserID: 1, PostID: 7},
		{ID: 2, Content: "agreed", UserID: 2, PostID: 7},
	}

	mockPostRepo.On("FindByID", ctx, uint(7)).Return(postInDb, nil).Once()
	mockCommentRepo.On("FindByPost", ctx, uint(7)).Return(commentsInDb, nil).Once()

	// Act
	comments, err := postService.ListComments(ctx, 7)

	// Assert
	require.NoError(t, err)
	assert.Len(t, comments, 2)
	assert.Equal(t, "nice", comments[0].Content)

	// Verify
	mockPostRepo.AssertExpectations(t)
	mockCommentRepo.AssertExpectations(t)
}
