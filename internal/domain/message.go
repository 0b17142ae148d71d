package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ParseRole converts s to a Role, ignoring case and surrounding space.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleUser, RoleAssistant, RoleSystem:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

// Message is a single entry of a chat transcript.
type Message struct {
	ID      string    `json:"id"`
	Role    Role      `json:"role"`
	Author  string    `json:"author"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sentAt"`
}

// IsUser reports whether the message was written by the end user.
func (m Message) IsUser() bool {
	return m.Role == RoleUser
}
