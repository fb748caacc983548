package service

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrPostNotFound         = errors.New("post not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrDuplicateUser        = errors.New("username or email already exists")
	ErrInternalServer       = errors.New("internal server error")
)
