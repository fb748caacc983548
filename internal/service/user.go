package service

import (
	"context"
	"errors"

	"chirp/internal/domain"
	"chirp/internal/repository"

	"github.com/sirupsen/logrus"
)

// UserService 负责用户资源的业务逻辑。
type UserService struct {
	userRepo    repository.UserRepository
	commentRepo repository.CommentRepository
}

// NewUserService 创建 UserService 实例。
func NewUserService(userRepo repository.UserRepository, commentRepo repository.CommentRepository) *UserService {
	if userRepo == nil {
		panic("UserRepository cannot be nil for UserService")
	}
	if commentRepo == nil {
		panic("CommentRepository cannot be nil for UserService")
	}
	return &UserService{
		userRepo:    userRepo,
		commentRepo: commentRepo,
	}
}

// Register 处理用户注册。
// 密码在这里 (首次持久化之前) 哈希一次，之后的资料更新不会再触碰密码字段。
func (s *UserService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	logCtx := logrus.WithFields(logrus.Fields{"username": username, "email": email})

	// 1. 哈希密码
	hashedPassword, err := hashPassword(password)
	if err != nil {
		logCtx.WithError(err).Error("Failed to hash password during registration")
		return nil, ErrInternalServer
	}

	// 2. 创建用户对象
	user := &domain.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
	}

	// 3. 保存用户 (调用 Repository 接口)
	// 唯一性由数据库的唯一索引仲裁，并发的重复注册只会有一个成功。
	err = s.userRepo.Save(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.WithError(err).Warn("Registration failed: Username or email already exists")
			return nil, ErrDuplicateUser
		}
		// 其他数据库错误
		logCtx.WithError(err).Error("Database error during user creation")
		return nil, ErrInternalServer
	}

	logCtx.WithField("user_id", user.ID).Info("User registered successfully")
	user.Password = "" // 清除密码哈希再返回
	return user, nil
}

// List 返回全部用户。
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list users")
		return nil, ErrInternalServer
	}
	for i := range users {
		users[i].Password = "" // 清除密码哈希再返回
	}
	return users, nil
}

// Get 根据 ID 查找用户。
func (s *UserService) Get(ctx context.Context, id uint) (*domain.User, error) {
	logCtx := logrus.WithField("user_id", id)

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logCtx.Warn("Get user: Not found")
			return nil, ErrUserNotFound
		}
		logCtx.WithError(err).Error("Get user: Repository error")
		return nil, ErrInternalServer
	}
	if user == nil { // 防御
		logCtx.Warn("Get user: Repository returned nil user without error")
		return nil, ErrUserNotFound
	}
	user.Password = ""
	return user, nil
}

// Update 更新用户资料。
// 只允许更新 username/email，密码不在更新范围内，不会被重新哈希。
func (s *UserService) Update(ctx context.Context, id uint, username, email *string) (*domain.User, error) {
	logCtx := logrus.WithField("user_id", id)

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logCtx.Warn("Update user: Not found")
			return nil, ErrUserNotFound
		}
		logCtx.WithError(err).Error("Update user: Repository error")
		return nil, ErrInternalServer
	}

	if username != nil {
		user.Username = *username
	}
	if email != nil {
		user.Email = *email
	}

	err = s.userRepo.Save(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.WithError(err).Warn("Update user: Username or email already taken")
			return nil, ErrDuplicateUser
		}
		logCtx.WithError(err).Error("Update user: Database error")
		return nil, ErrInternalServer
	}

	logCtx.Info("User updated successfully")
	user.Password = ""
	return user, nil
}

// Delete 删除用户，其 Posts 和 Comments (包括别人发在这些 Posts 下的 Comments)
// 由数据库级联删除。
func (s *UserService) Delete(ctx context.Context, id uint) error {
	logCtx := logrus.WithField("user_id", id)

	err := s.userRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logCtx.Warn("Delete user: Not found")
			return ErrUserNotFound
		}
		logCtx.WithError(err).Error("Delete user: Database error")
		return ErrInternalServer
	}

	logCtx.Info("User deleted successfully")
	return nil
}

// ListComments 返回某用户的全部评论。
// 用户不存在返回 ErrUserNotFound；存在但没有评论时返回空切片。
func (s *UserService) ListComments(ctx context.Context, userID uint) ([]domain.Comment, error) {
	logCtx := logrus.WithField("user_id", userID)

	// 先确认用户存在，区分 "没有评论" 和 "用户不存在"
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logCtx.Warn("List user comments: User not found")
			return nil, ErrUserNotFound
		}
		logCtx.WithError(err).Error("List user comments: Repository error")
		return nil, ErrInternalServer
	}

	comments, err := s.commentRepo.FindByUser(ctx, userID)
	if err != nil {
		logCtx.WithError(err).Error("List user comments: Database error")
		return nil, ErrInternalServer
	}
	return comments, nil
}
