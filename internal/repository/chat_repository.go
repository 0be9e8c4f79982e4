// Package repository 定义了与数据库进行数据交换的接口和实现。
package repository

import (
	"mheshimiwa-watch-go/internal/model"

	"gorm.io/gorm"
)

// ChatRepository 接口定义了会话与聊天历史的持久化操作。
// 历史表是只追加的：这里没有任何更新或删除操作。
type ChatRepository interface {
	// CreateSession 新建一个会话行并返回带生成主键的记录。
	CreateSession() (*model.ChatSession, error)
	// AppendEntry 向指定会话追加一条问答记录。
	// 不预先校验会话是否存在：无效的 session_id 由外键约束在插入时拒绝。
	AppendEntry(entry *model.ChatHistory) error
	// SaveExchange 持久化一次问答交换并返回实际使用的会话 ID。
	// sessionID 为 0 表示新开会话：建会话与写首条记录在同一个事务里完成，
	// 不会留下没有任何记录的孤儿会话。
	SaveExchange(sessionID uint, question, answer string) (uint, error)
	// FirstEntries 返回每个会话的第一条记录（chat_id 最小者），
	// 按时间倒序排列，最多 limit 条。
	FirstEntries(limit int) ([]model.ChatHistory, error)
	// SessionEntries 返回指定会话的全部记录，按时间正序（对话顺序）。
	// 会话不存在与会话没有记录不作区分，都返回空切片。
	SessionEntries(sessionID uint) ([]model.ChatHistory, error)
}

// chatRepository 是 ChatRepository 接口的 GORM 实现。
type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository 创建一个新的 ChatRepository 实例。
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// CreateSession 在数据库中创建一个新的会话记录。
func (r *chatRepository) CreateSession() (*model.ChatSession, error) {
	session := &model.ChatSession{}
	if err := r.db.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// AppendEntry 在数据库中追加一条聊天历史记录。
func (r *chatRepository) AppendEntry(entry *model.ChatHistory) error {
	return r.db.Create(entry).Error
}

// SaveExchange 在一个事务内持久化一次问答交换。
func (r *chatRepository) SaveExchange(sessionID uint, question, answer string) (uint, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if sessionID == 0 {
			session := &model.ChatSession{}
			if err := tx.Create(session).Error; err != nil {
				return err
			}
			sessionID = session.SessionID
		}
		return tx.Create(&model.ChatHistory{
			SessionID: sessionID,
			Question:  question,
			Answer:    answer,
		}).Error
	})
	if err != nil {
		return 0, err
	}
	return sessionID, nil
}

// FirstEntries 选出每个会话 chat_id 最小的那条记录，按时间倒序截取 limit 条。
// 时间相同的记录以 chat_id 倒序兜底，保证排序稳定。
func (r *chatRepository) FirstEntries(limit int) ([]model.ChatHistory, error) {
	var entries []model.ChatHistory
	err := r.db.Raw(`
		SELECT h.* FROM chat_history h
		JOIN (
			SELECT session_id, MIN(chat_id) AS first_id
			FROM chat_history
			GROUP BY session_id
		) f ON h.chat_id = f.first_id
		ORDER BY h.timestamp DESC, h.chat_id DESC
		LIMIT ?`, limit).Scan(&entries).Error
	return entries, err
}

// SessionEntries 检索指定会话的全部历史记录。
func (r *chatRepository) SessionEntries(sessionID uint) ([]model.ChatHistory, error) {
	entries := make([]model.ChatHistory, 0)
	err := r.db.Where("session_id = ?", sessionID).
		Order("timestamp asc, chat_id asc").
		Find(&entries).Error
	return entries, err
}
