package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"chirp/internal/domain"
	"chirp/internal/repository"
)

// GormPostRepository 是 PostRepository 接口的 GORM 实现
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository 创建 GormPostRepository 实例
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	if db == nil {
		panic("database connection cannot be nil for GormPostRepository")
	}
	return &GormPostRepository{db: db}
}

// Create 实现创建帖子
// 存在性检查和插入放在同一个事务中，保证 check-then-write 的原子性：
// 用户缺失时不会留下任何写入。
func (r *GormPostRepository) Create(ctx context.Context, post *domain.Post) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.User{}).Where("id = ?", post.UserID).Count(&count).Error; err != nil {
			return fmt.Errorf("gorm: check user %d exists: %w", post.UserID, err)
		}
		if count == 0 {
			return repository.ErrUserNotFound
		}
		if err := tx.Create(post).Error; err != nil {
			return fmt.Errorf("gorm: create post (user: %d): %w", post.UserID, err)
		}
		return nil
	})
	return err
}

// FindByID 实现根据帖子 ID 查找帖子
func (r *GormPostRepository) FindByID(ctx context.Context, id uint) (*domain.Post, error) {
	var post domain.Post
	err := r.db.WithContext(ctx).First(&post, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPostNotFound
		}
		return nil, fmt.Errorf("gorm: find post by id %d: %w", id, err)
	}
	return &post, nil
}

// FindAll 实现查询全部帖子
func (r *GormPostRepository) FindAll(ctx context.Context) ([]domain.Post, error) {
	posts := []domain.Post{}
	err := r.db.WithContext(ctx).Order("id ASC").Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find all posts: %w", err)
	}
	return posts, nil
}

// Save 实现更新帖子
func (r *GormPostRepository) Save(ctx context.Context, post *domain.Post) error {
	result := r.db.WithContext(ctx).Save(post)
	if result.Error != nil {
		return fmt.Errorf("gorm: save post (id: %d): %w", post.ID, result.Error)
	}
	return nil
}

// Delete 实现删除帖子
// 该帖子下的 comments 由数据库的 ON DELETE CASCADE 外键级联删除。
func (r *GormPostRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Post{}, id)
	if result.Error != nil {
		return fmt.Errorf("gorm: delete post %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrPostNotFound
	}
	return nil
}
