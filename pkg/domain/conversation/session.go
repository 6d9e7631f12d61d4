package conversation

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Session is an unauthenticated conversation context. Possession of the ID
// is the credential; IDs are 128-bit random UUIDs.
type Session struct {
	ID         string    `json:"id"`
	Messages   []Message `json:"messages"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
}

func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:         uuid.New().String(),
		Messages:   []Message{},
		CreatedAt:  now,
		LastActive: now,
	}
}

// AppendExchange appends a user/assistant pair and truncates from the front
// until the history fits maxHistory. Callers must hold exclusive access.
func (s *Session) AppendExchange(user, assistant Message, maxHistory int) {
	s.Messages = append(s.Messages, user, assistant)
	if maxHistory > 0 && len(s.Messages) > maxHistory {
		s.Messages = s.Messages[len(s.Messages)-maxHistory:]
	}
}
