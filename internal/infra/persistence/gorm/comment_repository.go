package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"chirp/internal/domain"
	"chirp/internal/repository"
)

// GormCommentRepository 是 CommentRepository 接口的 GORM 实现
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository 创建 GormCommentRepository 实例
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	if db == nil {
		panic("database connection cannot be nil for GormCommentRepository")
	}
	return &GormCommentRepository{db: db}
}

// Create 实现创建评论
// 两个外键的存在性检查和插入在同一个事务中完成，全有或全无：
// User 存在但 Post 缺失时同样不会产生任何写入。
func (r *GormCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.User{}).Where("id = ?", comment.UserID).Count(&count).Error; err != nil {
			return fmt.Errorf("gorm: check user %d exists: %w", comment.UserID, err)
		}
		if count == 0 {
			return repository.ErrUserNotFound
		}
		if err := tx.Model(&domain.Post{}).Where("id = ?", comment.PostID).Count(&count).Error; err != nil {
			return fmt.Errorf("gorm: check post %d exists: %w", comment.PostID, err)
		}
		if count == 0 {
			return repository.ErrPostNotFound
		}
		if err := tx.Create(comment).Error; err != nil {
			return fmt.Errorf("gorm: create comment (user: %d, post: %d): %w", comment.UserID, comment.PostID, err)
		}
		return nil
	})
	return err
}

// FindByID 实现根据评论 ID 查找评论
func (r *GormCommentRepository) FindByID(ctx context.Context, id uint) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.db.WithContext(ctx).First(&comment, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCommentNotFound
		}
		return nil, fmt.Errorf("gorm: find comment by id %d: %w", id, err)
	}
	return &comment, nil
}

// FindByUser 实现查询某用户的全部评论
// 没有评论时返回空切片而不是 nil，调用方序列化后得到 [] 而不是 null。
func (r *GormCommentRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Comment, error) {
	comments := []domain.Comment{}
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find comments by user %d: %w", userID, err)
	}
	return comments, nil
}

// FindByPost 实现查询某帖子下的全部评论
func (r *GormCommentRepository) FindByPost(ctx context.Context, postID uint) ([]domain.Comment, error) {
	comments := []domain.Comment{}
	err := r.db.WithContext(ctx).Where("post_id = ?", postID).Order("id ASC").Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find comments by post %d: %w", postID, err)
	}
	return comments, nil
}

// Save 实现更新评论
func (r *GormCommentRepository) Save(ctx context.Context, comment *domain.Comment) error {
	result := r.db.WithContext(ctx).Save(comment)
	if result.Error != nil {
		return fmt.Errorf("gorm: save comment (id: %d): %w", comment.ID, result.Error)
	}
	return nil
}

// Delete 实现删除评论，只删除评论自身
func (r *GormCommentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Comment{}, id)
	if result.Error != nil {
		return fmt.Errorf("gorm: delete comment %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrCommentNotFound
	}
	return nil
}
