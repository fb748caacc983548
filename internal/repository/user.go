package repository

import (
	"context"

	"chirp/internal/domain"
)

// UserRepository 定义了用户数据的存储和检索操作。
type UserRepository interface {
	// FindByUsername 根据用户名查找用户。
	// 如果用户不存在，应返回 ErrUserNotFound。
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindByID 根据用户 ID 查找用户。
	// 如果用户不存在，应返回 ErrUserNotFound。
	FindByID(ctx context.Context, id uint) (*domain.User, error)

	// FindAll 返回全部用户，按 ID 升序。
	FindAll(ctx context.Context) ([]domain.User, error)

	// Save 保存用户信息。
	// 如果用户已存在 (基于 ID)，则更新；否则创建新用户。
	// 违反 username/email 唯一约束时返回 ErrDuplicateEntry，
	// 由数据库的唯一索引做最终仲裁，并发的重复写入只会有一个成功。
	Save(ctx context.Context, user *domain.User) error

	// Delete 删除指定用户，数据库级联删除其 Posts 与 Comments。
	// 用户不存在时返回 ErrUserNotFound，而不是静默成功。
	Delete(ctx context.Context, id uint) error
}
