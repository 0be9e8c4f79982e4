package model

// MonthGroup 是历史摘要里的一个月份分组。
// Date 是人类可读的月份标签，例如 "August 2026"。
type MonthGroup struct {
	Date  string        `json:"date"`
	Chats []DigestEntry `json:"chats"`
}

// DigestEntry 是摘要里的一条记录：某个会话的第一个提问。
type DigestEntry struct {
	Question  string    `json:"question"`
	Timestamp LocalTime `json:"timestamp"`
	SessionID uint      `json:"session_id"`
}

// TranscriptEntry 是会话完整记录里的一次问答。
type TranscriptEntry struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Timestamp LocalTime `json:"timestamp"`
}
