package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"chirp/internal/domain"
)

// CommentRepository 是 repository.CommentRepository 的 Mock 实现
type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *CommentRepository) FindByID(ctx context.Context, id uint) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	var comment *domain.Comment
	if args.Get(0) != nil {
		comment = args.Get(0).(*domain.Comment)
	}
	return comment, args.Error(1)
}

func (m *CommentRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Comment, error) {
	args := m.Called(ctx, userID)
	var comments []domain.Comment
	if args.Get(0) != nil {
		comments = args.Get(0).([]domain.Comment)
	}
	return comments, args.Error(1)
}

func (m *CommentRepository) FindByPost(ctx context.Context, postID uint) ([]domain.Comment, error) {
	args := m.Called(ctx, postID)
	var comments []domain.Comment
	if args.Get(0) != nil {
		comments = args.Get(0).([]domain.Comment)
	}
	return comments, args.Error(1)
}

func (m *CommentRepository) Save(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *CommentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
