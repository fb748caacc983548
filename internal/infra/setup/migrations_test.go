package setup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// 级联删除完全由数据库外键承担：建表 SQL 一旦丢掉 ON DELETE CASCADE，
// 删除用户就会留下孤儿帖子和评论。把这些声明钉死在 DDL 常量上。
func TestCreateTableSQL_DeclaresCascadingForeignKeys(t *testing.T) {
	assert.Contains(t, createPostsTableSQL,
		"FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE",
		"posts.user_id 外键必须声明级联删除")
	assert.Contains(t, createCommentsTableSQL,
		"FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE",
		"comments.user_id 外键必须声明级联删除")
	assert.Contains(t, createCommentsTableSQL,
		"FOREIGN KEY (post_id) REFERENCES posts (id) ON DELETE CASCADE",
		"comments.post_id 外键必须声明级联删除")
}

// 注册冲突 (409) 由 users 表的唯一索引仲裁，并发重复写入只有一个成功。
func TestCreateTableSQL_DeclaresUniqueUserIndexes(t *testing.T) {
	assert.Contains(t, createUsersTableSQL, "UNIQUE INDEX idx_username (username)")
	assert.Contains(t, createUsersTableSQL, "UNIQUE INDEX idx_email (email)")
}
