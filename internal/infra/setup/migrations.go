package setup

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"chirp/internal/domain"
)

// MigrateDB handles all database migrations using the provided GORM DB instance.
// 外键的 ON DELETE CASCADE 必须在建表 SQL 中声明，级联删除由数据库负责，
// 所以 users/posts/comments 三张表都用自定义 SQL 创建而不是 AutoMigrate。
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}

	if err := migrateTable(db, "users", createUsersTableSQL, &domain.User{}); err != nil {
		return fmt.Errorf("failed to migrate users table: %w", err)
	}
	if err := migrateTable(db, "posts", createPostsTableSQL, &domain.Post{}); err != nil {
		return fmt.Errorf("failed to migrate posts table: %w", err)
	}
	if err := migrateTable(db, "comments", createCommentsTableSQL, &domain.Comment{}); err != nil {
		return fmt.Errorf("failed to migrate comments table: %w", err)
	}

	logrus.Info("Database migration completed successfully")
	return nil
}

// migrateTable 表不存在时用自定义 SQL 创建；已存在时交给 AutoMigrate 补齐列和索引。
// AutoMigrate 不会动已有的外键定义，级联语义保持建表时的声明。
func migrateTable(db *gorm.DB, table, createSQL string, model interface{}) error {
	var count int64
	err := db.Raw(
		"SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?",
		table,
	).Scan(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check table %s: %w", table, err)
	}

	if count == 0 {
		if err := db.Exec(createSQL).Error; err != nil {
			logrus.Errorf("Failed to create %s table: %v", table, err)
			return fmt.Errorf("failed to create %s table: %w", table, err)
		}
		logrus.Infof("%s table created successfully", table)
		return nil
	}

	if err := db.AutoMigrate(model); err != nil {
		logrus.Errorf("Failed to auto-migrate %s table: %v", table, err)
		return fmt.Errorf("failed to auto-migrate %s table: %w", table, err)
	}
	logrus.Infof("%s table schema checked/updated successfully", table)
	return nil
}

const createUsersTableSQL = `
CREATE TABLE users (
	id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
	username VARCHAR(191) NOT NULL, -- 限制长度以匹配索引
	email VARCHAR(191) NOT NULL,
	password TEXT NOT NULL,
	created_at DATETIME(3),
	updated_at DATETIME(3),
	UNIQUE INDEX idx_username (username),
	UNIQUE INDEX idx_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_general_ci;
`

const createPostsTableSQL = `
CREATE TABLE posts (
	id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
	title VARCHAR(191) NOT NULL,
	content TEXT NOT NULL,
	user_id BIGINT UNSIGNED NOT NULL,
	created_at DATETIME(3),
	updated_at DATETIME(3),
	INDEX idx_posts_user_id (user_id),
	CONSTRAINT fk_posts_user FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_general_ci;
`

const createCommentsTableSQL = `
CREATE TABLE comments (
	id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
	content TEXT NOT NULL,
	user_id BIGINT UNSIGNED NOT NULL,
	post_id BIGINT UNSIGNED NOT NULL,
	created_at DATETIME(3),
	updated_at DATETIME(3),
	INDEX idx_comments_user_id (user_id),
	INDEX idx_comments_post_id (post_id),
	CONSTRAINT fk_comments_user FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE,
	CONSTRAINT fk_comments_post FOREIGN KEY (post_id) REFERENCES posts (id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_general_ci;
`
