package service

import (
	"mheshimiwa-watch-go/internal/model"
	"mheshimiwa-watch-go/internal/repository"
)

// defaultHistoryLimit 是 /chat-history 摘要的默认条数上限。
const defaultHistoryLimit = 10

// HistoryService 定义了聊天历史查询的接口。
type HistoryService interface {
	// RecentHistory 返回按月份分组的历史摘要：每个会话取第一个提问，
	// 时间倒序，最多 limit 条记录（limit 限制的是记录数，不是分组数）。
	RecentHistory(limit int) ([]model.MonthGroup, error)
	// SessionTranscript 返回一个会话的完整问答记录，按对话顺序排列。
	// 会话不存在时返回空切片而不是错误。
	SessionTranscript(sessionID uint) ([]model.TranscriptEntry, error)
}

type historyService struct {
	chatRepo repository.ChatRepository
}

// NewHistoryService 创建一个新的 HistoryService 实例。
func NewHistoryService(chatRepo repository.ChatRepository) HistoryService {
	return &historyService{chatRepo: chatRepo}
}

// RecentHistory 获取各会话的首条提问并按月份分组。
func (s *historyService) RecentHistory(limit int) ([]model.MonthGroup, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	entries, err := s.chatRepo.FirstEntries(limit)
	if err != nil {
		return nil, err
	}

	// 单趟分组：输入已按时间倒序，月份标签变化时开一个新组。
	// 不回头合并不相邻的同名月份组。
	groups := make([]model.MonthGroup, 0)
	for _, e := range entries {
		label := e.Timestamp.Format("January 2006")
		if len(groups) == 0 || groups[len(groups)-1].Date != label {
			groups = append(groups, model.MonthGroup{Date: label})
		}
		g := &groups[len(groups)-1]
		g.Chats = append(g.Chats, model.DigestEntry{
			Question:  e.Question,
			Timestamp: model.LocalTime(e.Timestamp),
			SessionID: e.SessionID,
		})
	}
	return groups, nil
}

// SessionTranscript 把会话的历史记录映射为响应 DTO。
func (s *historyService) SessionTranscript(sessionID uint) ([]model.TranscriptEntry, error) {
	entries, err := s.chatRepo.SessionEntries(sessionID)
	if err != nil {
		return nil, err
	}

	transcript := make([]model.TranscriptEntry, 0, len(entries))
	for _, e := range entries {
		transcript = append(transcript, model.TranscriptEntry{
			Question:  e.Question,
			Answer:    e.Answer,
			Timestamp: model.LocalTime(e.Timestamp),
		})
	}
	return transcript, nil
}
