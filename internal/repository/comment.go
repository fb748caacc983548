package repository

import (
	"context"

	"chirp/internal/domain"
)

// CommentRepository 定义了评论数据的存储和检索操作。
type CommentRepository interface {
	// Create 创建新评论。
	// 在同一个事务中先确认 UserID 和 PostID 都存在，再写入，全有或全无：
	// 用户缺失返回 ErrUserNotFound，帖子缺失返回 ErrPostNotFound，
	// 两种情况下都不会留下部分写入的评论。
	Create(ctx context.Context, comment *domain.Comment) error

	// FindByID 根据评论 ID 查找评论。
	// 如果评论不存在，应返回 ErrCommentNotFound。
	FindByID(ctx context.Context, id uint) (*domain.Comment, error)

	// FindByUser 返回某用户的全部评论，按 ID 升序。
	// 用户存在但没有评论时返回空切片，不是错误。
	FindByUser(ctx context.Context, userID uint) ([]domain.Comment, error)

	// FindByPost 返回某帖子下的全部评论，按 ID 升序。
	FindByPost(ctx context.Context, postID uint) ([]domain.Comment, error)

	// Save 更新已存在的评论 (基于 ID)。
	Save(ctx context.Context, comment *domain.Comment) error

	// Delete 删除指定评论，只删除其自身。
	// 评论不存在时返回 ErrCommentNotFound。
	Delete(ctx context.Context, id uint) error
}
