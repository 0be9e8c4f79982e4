// Package model 定义了与数据库表对应的 Go 结构体。
package model

import "time"

// ChatSession 定义了 chat_sessions 表的 ORM 模型。
// 会话是聚合根：只在创建时写入一行，之后既不更新也不删除。
type ChatSession struct {
	SessionID uint      `gorm:"column:session_id;primaryKey;autoIncrement" json:"session_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (ChatSession) TableName() string {
	return "chat_sessions"
}

// ChatHistory 定义了 chat_history 表的 ORM 模型。
// 每行是一次完整的问答交换，归属且仅归属一个会话；历史是只追加的日志。
type ChatHistory struct {
	ChatID    uint      `gorm:"column:chat_id;primaryKey;autoIncrement" json:"chat_id"`
	SessionID uint      `gorm:"column:session_id;not null;index" json:"session_id"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	Timestamp time.Time `gorm:"column:timestamp;autoCreateTime" json:"timestamp"`

	// Session 关联让 AutoMigrate（测试环境）生成与生产 DDL 一致的外键约束。
	Session ChatSession `gorm:"belongsTo;foreignKey:SessionID;references:SessionID" json:"-"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (ChatHistory) TableName() string {
	return "chat_history"
}
