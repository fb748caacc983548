package repository

import (
	"context"

	"chirp/internal/domain"
)

// PostRepository 定义了帖子数据的存储和检索操作。
type PostRepository interface {
	// Create 创建新帖子。
	// 在同一个事务中先确认 post.UserID 对应的用户存在，再写入；
	// 用户不存在时返回 ErrUserNotFound 且不产生任何写入。
	Create(ctx context.Context, post *domain.Post) error

	// FindByID 根据帖子 ID 查找帖子。
	// 如果帖子不存在，应返回 ErrPostNotFound。
	FindByID(ctx context.Context, id uint) (*domain.Post, error)

	// FindAll 返回全部帖子，按 ID 升序。
	FindAll(ctx context.Context) ([]domain.Post, error)

	// Save 更新已存在的帖子 (基于 ID)。
	Save(ctx context.Context, post *domain.Post) error

	// Delete 删除指定帖子，数据库级联删除其 Comments。
	// 帖子不存在时返回 ErrPostNotFound。
	Delete(ctx context.Context, id uint) error
}
