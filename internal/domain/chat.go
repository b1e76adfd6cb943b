package domain

import "time"

// ChatMessage is a single AI chat turn kept in the local retention store.
type ChatMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	IsUser    bool      `json:"isUser"`
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"userId"`
}

// NewChatMessage is the caller-supplied part of a ChatMessage.
type NewChatMessage struct {
	ID     string
	Text   string
	IsUser bool
}

// ChatSession is the per-user blob stored under ai_chat_messages_<userId>.
type ChatSession struct {
	Messages     []ChatMessage `json:"messages"`
	CreatedAt    time.Time     `json:"created_at"`
	LastActivity time.Time     `json:"last_activity"`
}

// ChatReply is what the AI chat hands back to the front end.
type ChatReply struct {
	Success  bool
	Response string
	Error    string
}
