// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"

	"mheshimiwa-watch-go/internal/service"
	"mheshimiwa-watch-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// AskRequest 是 /ask 接口的请求体。
// session_id 省略或为 0 时新开一个会话。
type AskRequest struct {
	Question  string `json:"question" binding:"required"`
	SessionID uint   `json:"session_id"`
}

// ChatHandler 处理问答相关的 API 请求。
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler 创建一个新的 ChatHandler。
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Ask 处理一次提问：调用上游模型并持久化问答，返回回答与会话 ID。
// 失败统一返回带 error 字段的 JSON；上游失败是 502，存储失败是 500。
func (h *ChatHandler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	answer, sessionID, err := h.chatService.Ask(c.Request.Context(), req.Question, req.SessionID)
	if err != nil {
		log.Error("ask request failed", err)
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrUpstream) {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"answer":     answer,
		"session_id": sessionID,
	})
}
