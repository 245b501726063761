package domain

import "time"

// MessageRole identifies the author of a transcript entry.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is one entry in a chat transcript. Transcripts are the only state
// cached locally; plan state is always refetched from the backend.
type Message struct {
	ID        string
	SessionID string
	Role      MessageRole
	Content   string
	CreatedAt time.Time
}

// ChatSession groups the messages of one conversation with the assistant,
// scoped to a user.
type ChatSession struct {
	ID        string
	UserID    string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
