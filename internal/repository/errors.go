package repository

import "errors"

// 通用的存储库错误
var (
	// ErrNotFound 表示请求的记录未找到
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry 表示尝试插入或更新的数据违反了唯一约束
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
)

// 特定资源的错误。
// 不做成 ErrNotFound 的别名：CreateComment 这类操作需要区分是 User 还是 Post 缺失。
var (
	ErrUserNotFound    = errors.New("repository: user not found")
	ErrPostNotFound    = errors.New("repository: post not found")
	ErrCommentNotFound = errors.New("repository: comment not found")
)
