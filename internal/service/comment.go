package service

import (
	"context"
	"errors"

	"chirp/internal/domain"
	"chirp/internal/repository"

	"github.com/sirupsen/logrus"
)

// CommentService 负责评论资源的业务逻辑。
type CommentService struct {
	commentRepo repository.CommentRepository
}

// NewCommentService 创建 CommentService 实例。
func NewCommentService(commentRepo repository.CommentRepository) *CommentService {
	if commentRepo == nil {
		panic("CommentRepository cannot be nil for CommentService")
	}
	return &CommentService{commentRepo: commentRepo}
}

// Create 创建评论。
// 两个外键都必须指向存在的记录：User 缺失返回 ErrUserNotFound，
// Post 缺失返回 ErrPostNotFound，两种情况都不会产生部分写入。
func (s *CommentService) Create(ctx context.Context, userID, postID uint, content string) (*domain.Comment, error) {
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "post_id": postID})

	comment := &domain.Comment{
		Content: content,
		UserID:  userID,
		PostID:  postID,
	}

	err := s.commentRepo.Create(ctx, comment)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logCtx.Warn("Create comment: Author not found")
			return nil, ErrUserNotFound
		}
		if errors.Is(err, repository.ErrPostNotFound) {
			logCtx.Warn("Create comment: Post not found")
			return nil, ErrPostNotFound
		}
		logCtx.WithError(err).Error("Create comment: Database error")
		return nil, ErrInternalServer
	}

	logCtx.WithField("comment_id", comment.ID).Info("Comment created successfully")
	return comment, nil
}

// Get 根据 ID 查找评论。
func (s *CommentService) Get(ctx context.Context, id uint) (*domain.Comment, error) {
	logCtx := logrus.WithField("comment_id", id)

	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			logCtx.Warn("Get comment: Not found")
			return nil, ErrCommentNotFound
		}
		logCtx.WithError(err).Error("Get comment: Repository error")
		return nil, ErrInternalServer
	}
	if comment == nil { // 防御
		logCtx.Warn("Get comment: Repository returned nil comment without error")
		return nil, ErrCommentNotFound
	}
	return comment, nil
}

// Update 更新评论的 content。外键不在更新范围内。
func (s *CommentService) Update(ctx context.Context, id uint, content *string) (*domain.Comment, error) {
	logCtx := logrus.WithField("comment_id", id)

	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			logCtx.Warn("Update comment: Not found")
			return nil, ErrCommentNotFound
		}
		logCtx.WithError(err).Error("Update comment: Repository error")
		return nil, ErrInternalServer
	}

	if content != nil {
		comment.Content = *content
	}

	if err := s.commentRepo.Save(ctx, comment); err != nil {
		logCtx.WithError(err).Error("Update comment: Database error")
		return nil, ErrInternalServer
	}

	logCtx.Info("Comment updated successfully")
	return comment, nil
}

// Delete 删除评论，只删除评论自身。
func (s *CommentService) Delete(ctx context.Context, id uint) error {
	logCtx := logrus.WithField("comment_id", id)

	err := s.commentRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			logCtx.Warn("Delete comment: Not found")
			return ErrCommentNotFound
		}
		logCtx.WithError(err).Error("Delete comment: Database error")
		return ErrInternalServer
	}

	logCtx.Info("Comment deleted successfully")
	return nil
}
