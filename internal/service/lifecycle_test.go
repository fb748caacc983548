package service_test

import (
	"context"
	"testing"

	"chirp/internal/domain"
	"chirp/internal/repository"
	"chirp/internal/repository/mocks"
	"chirp/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestServices_UserDeletionRemovesOwnedResources 走完整的资源生命周期：
// 注册用户 -> 发帖 -> 评论 -> 删除用户，删除后用户及其名下的帖子和评论
// 全部不可见 (级联删除由数据库外键执行，仓库在删除后对三类 ID 都报 NotFound)。
func TestServices_UserDeletionRemovesOwnedResources(t *testing.T) {
	// Arrange
	mockUserRepo := new(mocks.UserRepository)
	mockPostRepo := new(mocks.PostRepository)
	mockCommentRepo := new(mocks.CommentRepository)

	userService := service.NewUserService(mockUserRepo, mockCommentRepo)
	postService := service.NewPostService(mockPostRepo, mockCommentRepo)
	commentService := service.NewCommentService(mockCommentRepo)

	ctx := context.Background()

	mockUserRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 1
		}).
		Return(nil).
		Once()
	mockPostRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Post")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Post).ID = 10
		}).
		Return(nil).
		Once()
	mockCommentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Comment")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Comment).ID = 100
		}).
		Return(nil).
		Once()
	mockUserRepo.On("Delete", mock.Anything, uint(1)).Return(nil).Once()
	// 删除之后，三类资源的查找都命中 NotFound
	mockUserRepo.On("FindByID", mock.Anything, uint(1)).
		Return(nil, repository.ErrUserNotFound).Once()
	mockPostRepo.On("FindByID", mock.Anything, uint(10)).
		Return(nil, repository.ErrPostNotFound).Once()
	mockCommentRepo.On("FindByID", mock.Anything, uint(100)).
		Return(nil, repository.ErrCommentNotFound).Once()

	// Act: 注册 -> 发帖 -> 评论
	alice, err := userService.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err, "注册不应失败")
	require.Equal(t, uint(1), alice.ID)

	post, err := postService.Create(ctx, alice.ID, "hello", "first post")
	require.NoError(t, err, "发帖不应失败")
	require.Equal(t, alice.ID, post.UserID, "帖子应归属于创建它的用户")

	comment, err := commentService.Create(ctx, alice.ID, post.ID, "nice post")
	require.NoError(t, err, "评论不应失败")
	require.Equal(t, post.ID, comment.PostID, "评论应归属于目标帖子")

	// Act: 删除用户
	require.NoError(t, userService.Delete(ctx, alice.ID), "删除用户不应失败")

	// Assert: 用户和其名下资源全部不可见
	_, err = userService.Get(ctx, alice.ID)
	assert.ErrorIs(t, err, service.ErrUserNotFound, "删除后用户不应可见")
	_, err = postService.Get(ctx, post.ID)
	assert.ErrorIs(t, err, service.ErrPostNotFound, "删除用户后其帖子不应可见")
	_, err = commentService.Get(ctx, comment.ID)
	assert.ErrorIs(t, err, service.ErrCommentNotFound, "删除用户后其评论不应可见")

	// Verify
	mockUserRepo.AssertExpectations(t)
	mockPostRepo.AssertExpectations(t)
	mockCommentRepo.AssertExpectations(t)
}
