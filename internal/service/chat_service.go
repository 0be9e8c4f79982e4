// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"errors"
	"fmt"

	"mheshimiwa-watch-go/internal/repository"
	"mheshimiwa-watch-go/pkg/llm"
)

// ErrUpstream 标记上游模型调用失败，handler 据此与存储失败区分开。
var ErrUpstream = errors.New("upstream completion failed")

// ChatService 定义了问答操作的接口。
type ChatService interface {
	// Ask 调用上游模型回答问题，成功后把这次问答追加到会话历史。
	// sessionID 为 0 表示新开会话；返回回答与实际使用的会话 ID。
	Ask(ctx context.Context, question string, sessionID uint) (string, uint, error)
}

type chatService struct {
	llmClient llm.Client
	chatRepo  repository.ChatRepository
}

// NewChatService 创建一个新的 ChatService 实例。
func NewChatService(llmClient llm.Client, chatRepo repository.ChatRepository) ChatService {
	return &chatService{
		llmClient: llmClient,
		chatRepo:  chatRepo,
	}
}

// Ask 先拿到上游回答，再写库。上游失败时不会写入任何记录。
func (s *chatService) Ask(ctx context.Context, question string, sessionID uint) (string, uint, error) {
	answer, err := s.llmClient.Complete(ctx, question)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	sid, err := s.chatRepo.SaveExchange(sessionID, question, answer)
	if err != nil {
		return "", 0, fmt.Errorf("failed to save exchange: %w", err)
	}
	return answer, sid, nil
}
