package handler

import (
	"net/http"
	"strconv"

	"mheshimiwa-watch-go/internal/service"
	"mheshimiwa-watch-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// HistoryHandler 处理聊天历史查询的 API 请求。
type HistoryHandler struct {
	historyService service.HistoryService
}

// NewHistoryHandler 创建一个新的 HistoryHandler。
func NewHistoryHandler(historyService service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// ChatHistory 返回按月份分组的最近提问摘要。
// limit 非法或缺失时退回默认值，由 service 层统一处理。
func (h *HistoryHandler) ChatHistory(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		limit = 0
	}

	groups, err := h.historyService.RecentHistory(limit)
	if err != nil {
		log.Error("failed to retrieve chat history", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve chat history"})
		return
	}

	c.JSON(http.StatusOK, groups)
}

// SessionHistory 返回一个会话的完整问答记录。
// 不存在的会话返回空数组，与没有记录的会话不作区分。
func (h *HistoryHandler) SessionHistory(c *gin.Context) {
	sessionID, err := strconv.ParseUint(c.Param("session_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	transcript, err := h.historyService.SessionTranscript(uint(sessionID))
	if err != nil {
		log.Error("failed to retrieve session history", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve session history"})
		return
	}

	c.JSON(http.StatusOK, transcript)
}
