package service

import (
	"context"
	"errors"

	"chirp/internal/domain"
	"chirp/internal/repository"

	"github.com/sirupsen/logrus"
)

// PostService 负责帖子资源的业务逻辑。
type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

// NewPostService 创建 PostService 实例。
func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) *PostService {
	if postRepo == nil {
		panic("PostRepository cannot be nil for PostService")
	}
	if commentRepo == nil {
		panic("CommentRepository cannot be nil for PostService")
	}
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// Create 创建帖子。作者不存在时返回 ErrUserNotFound，不会留下部分写入。
func (s *PostService) Create(ctx context.Context, userID uint, title, content string) (*domain.Post, error) {
	logCtx := logrus.WithField("user_id", userID)

	post := &domain.Post{
		Title:   title,
		Content: content,
		UserID:  userID,
	}

	err := s.postRepo.Create(ctx, post)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logCtx.Warn("Create post: Author not found")
			return nil, ErrUserNotFound
		}
		logCtx.WithError(err).Error("Create post: Database error")
		return nil, ErrInternalServer
	}

	logCtx.WithField("post_id", post.ID).Info("Post created successfully")
	return post, nil
}

// List 返回全部帖子。
func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.postRepo.FindAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list posts")
		return nil, ErrInternalServer
	}
	return posts, nil
}

// Get 根据 ID 查找帖子。
func (s *PostService) Get(ctx context.Context, id uint) (*domain.Post, error) {
	logCtx := logrus.WithField("post_id", id)

	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			logCtx.Warn("Get post: Not found")
			return nil, ErrPostNotFound
		}
		logCtx.WithError(err).Error("Get post: Repository error")
		return nil, ErrInternalServer
	}
	if post == nil { // 防御
		logCtx.Warn("Get post: Repository returned nil post without error")
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Update 更新帖子的 title/content。外键和作者不在更新范围内。
func (s *PostService) Update(ctx context.Context, id uint, title, content *string) (*domain.Post, error) {
	logCtx := logrus.WithField("post_id", id)

	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			logCtx.Warn("Update post: Not found")
			return nil, ErrPostNotFound
		}
		logCtx.WithError(err).Error("Update post: Repository error")
		return nil, ErrInternalServer
	}

	if title != nil {
		post.Title = *title
	}
	if content != nil {
		post.Content = *content
	}

	if err := s.postRepo.Save(ctx, post); err != nil {
		logCtx.WithError(err).Error("Update post: Database error")
		return nil, ErrInternalServer
	}

	logCtx.Info("Post updated successfully")
	return post, nil
}

// Delete 删除帖子，其下的 Comments 由数据库级联删除。
func (s *PostService) Delete(ctx context.Context, id uint) error {
	logCtx := logrus.WithField("post_id", id)

	err := s.postRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			logCtx.Warn("Delete post: Not found")
			return ErrPostNotFound
		}
		logCtx.WithError(err).Error("Delete post: Database error")
		return ErrInternalServer
	}

	logCtx.Info("Post deleted successfully")
	return nil
}

// ListComments 返回某帖子下的全部评论。
// 帖子不存在返回 ErrPostNotFound；存在但没有评论时返回空切片。
func (s *PostService) ListComments(ctx context.Context, postID uint) ([]domain.Comment, error) {
	logCtx := logrus.WithField("post_id", postID)

	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			logCtx.Warn("List post comments: Post not found")
			return nil, ErrPostNotFound
		}
		logCtx.WithError(err).Error("List post comments: Repository error")
		return nil, ErrInternalServer
	}

	comments, err := s.commentRepo.FindByPost(ctx, postID)
	if err != nil {
		logCtx.WithError(err).Error("List post comments: Database error")
		return nil, ErrInternalServer
	}
	return comments, nil
}
