package chat

import (
	"strings"
	"time"
)

// Message is one entry in the visible conversation history. Assistant
// messages carry the structured Turn artifact; user and error messages are
// plain text.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Turn      *Turn     `json:"-"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleError     = "error"
)

func NewUserMessage(content string) Message {
	return Message{
		Role:      RoleUser,
		Content:   strings.TrimSpace(content),
		Timestamp: time.Now(),
	}
}

// NewAssistantMessage wraps a streamed turn. Content mirrors the turn's text
// so history persists without the segment structure.
func NewAssistantMessage(turn *Turn) Message {
	return Message{
		Role:      RoleAssistant,
		Content:   turn.Text(),
		Turn:      turn,
		Timestamp: turn.Timestamp,
	}
}

func NewErrorMessage(content string) Message {
	return Message{
		Role:      RoleError,
		Content:   content,
		Timestamp: time.Now(),
	}
}

func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

func (m Message) IsAssistant() bool {
	return m.Role == RoleAssistant
}

func (m Message) IsError() bool {
	return m.Role == RoleError
}

func (m Message) IsEmpty() bool {
	return strings.TrimSpace(m.Content) == "" && (m.Turn == nil || m.Turn.IsEmpty())
}
