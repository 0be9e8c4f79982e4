package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mheshimiwa-watch-go/internal/model"
	"mheshimiwa-watch-go/internal/service"
	"mheshimiwa-watch-go/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	log.Init("error", "json", "")
}

// stubChatService 是 service.ChatService 的测试替身。
type stubChatService struct {
	answer    string
	sessionID uint
	err       error

	gotQuestion  string
	gotSessionID uint
}

func (s *stubChatService) Ask(_ context.Context, question string, sessionID uint) (string, uint, error) {
	s.gotQuestion = question
	s.gotSessionID = sessionID
	if s.err != nil {
		return "", 0, s.err
	}
	return s.answer, s.sessionID, nil
}

// stubHistoryService 是 service.HistoryService 的测试替身。
type stubHistoryService struct {
	groups     []model.MonthGroup
	transcript []model.TranscriptEntry
	err        error

	gotLimit     int
	gotSessionID uint
}

func (s *stubHistoryService) RecentHistory(limit int) ([]model.MonthGroup, error) {
	s.gotLimit = limit
	return s.groups, s.err
}

func (s *stubHistoryService) SessionTranscript(sessionID uint) ([]model.TranscriptEntry, error) {
	s.gotSessionID = sessionID
	return s.transcript, s.err
}

func newRouter(chat service.ChatService, history service.HistoryService) *gin.Engine {
	r := gin.New()
	r.POST("/ask", NewChatHandler(chat).Ask)
	r.GET("/chat-history", NewHistoryHandler(history).ChatHistory)
	r.GET("/session-history/:session_id", NewHistoryHandler(history).SessionHistory)
	return r
}

func postAsk(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/ask", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAskSuccess(t *testing.T) {
	chat := &stubChatService{answer: "X is ...", sessionID: 5}
	r := newRouter(chat, &stubHistoryService{})

	rec := postAsk(t, r, `{"question":"What is X?"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Answer    string `json:"answer"`
		SessionID uint   `json:"session_id"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "X is ...", resp.Answer)
	assert.Equal(t, uint(5), resp.SessionID)
	assert.Equal(t, "What is X?", chat.gotQuestion)
	assert.Equal(t, uint(0), chat.gotSessionID)
}

func TestAskForwardsSessionID(t *testing.T) {
	chat := &stubChatService{answer: "more", sessionID: 3}
	r := newRouter(chat, &stubHistoryService{})

	rec := postAsk(t, r, `{"question":"followup","session_id":3}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(3), chat.gotSessionID)
}

func TestAskMissingQuestion(t *testing.T) {
	r := newRouter(&stubChatService{}, &stubHistoryService{})

	rec := postAsk(t, r, `{"session_id":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestAskUpstreamFailureReturnsBadGateway(t *testing.T) {
	chat := &stubChatService{err: fmt.Errorf("%w: timeout", service.ErrUpstream)}
	r := newRouter(chat, &stubHistoryService{})

	rec := postAsk(t, r, `{"question":"q"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp["error"])
}

func TestAskPersistenceFailureReturnsInternalError(t *testing.T) {
	chat := &stubChatService{err: errors.New("failed to save exchange")}
	r := newRouter(chat, &stubHistoryService{})

	rec := postAsk(t, r, `{"question":"q"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestChatHistoryReturnsGroups(t *testing.T) {
	ts := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	history := &stubHistoryService{groups: []model.MonthGroup{
		{Date: "August 2026", Chats: []model.DigestEntry{
			{Question: "q", Timestamp: model.LocalTime(ts), SessionID: 1},
		}},
	}}
	r := newRouter(&stubChatService{}, history)

	req := httptest.NewRequest(http.MethodGet, "/chat-history?limit=5", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, history.gotLimit)

	var groups []model.MonthGroup
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &groups))
	require.Len(t, groups, 1)
	assert.Equal(t, "August 2026", groups[0].Date)
	// 时间按 ISO-8601 序列化
	assert.Contains(t, rec.Body.String(), "2026-08-20T10:00:00Z")
}

func TestChatHistoryBadLimitFallsBack(t *testing.T) {
	history := &stubHistoryService{}
	r := newRouter(&stubChatService{}, history)

	req := httptest.NewRequest(http.MethodGet, "/chat-history?limit=abc", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	// 非法 limit 由 service 层退回默认值，不报错
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, history.gotLimit)
}

func TestChatHistoryStorageFailure(t *testing.T) {
	history := &stubHistoryService{err: errors.New("connection lost")}
	r := newRouter(&stubChatService{}, history)

	req := httptest.NewRequest(http.MethodGet, "/chat-history", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestSessionHistoryReturnsTranscript(t *testing.T) {
	ts := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	history := &stubHistoryService{transcript: []model.TranscriptEntry{
		{Question: "q", Answer: "a", Timestamp: model.LocalTime(ts)},
	}}
	r := newRouter(&stubChatService{}, history)

	req := httptest.NewRequest(http.MethodGet, "/session-history/7", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(7), history.gotSessionID)

	var transcript []model.TranscriptEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &transcript))
	require.Len(t, transcript, 1)
	assert.Equal(t, "q", transcript[0].Question)
	assert.Equal(t, "a", transcript[0].Answer)
}

func TestSessionHistoryUnknownSessionIsEmptyArray(t *testing.T) {
	history := &stubHistoryService{transcript: []model.TranscriptEntry{}}
	r := newRouter(&stubChatService{}, history)

	req := httptest.NewRequest(http.MethodGet, "/session-history/999", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
}

func TestSessionHistoryInvalidID(t *testing.T) {
	r := newRouter(&stubChatService{}, &stubHistoryService{})

	req := httptest.NewRequest(http.MethodGet, "/session-history/abc", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
