package database

import (
	"fmt"

	"gorm.io/gorm"
)

// EnsureSchema 确保两张聊天表存在。
// DDL 全部带 IF NOT EXISTS，在每次进程启动时重复执行是安全的。
func EnsureSchema(db *gorm.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS chat_sessions (
			session_id INT AUTO_INCREMENT PRIMARY KEY,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS chat_history (
			chat_id INT AUTO_INCREMENT PRIMARY KEY,
			session_id INT NOT NULL,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (session_id) REFERENCES chat_sessions(session_id)
		)`,
	}

	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to ensure chat schema: %w", err)
		}
	}
	return nil
}
