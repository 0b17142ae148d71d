package handlers

import (
	"time"

	"github.com/nfrund/parley/internal/domain"
)

// ErrorResponse is the standard format for API error responses.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse is the JSON shape of a transcript message.
type MessageResponse struct {
	ID      string    `json:"id"`
	Role    string    `json:"role"`
	Author  string    `json:"author"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`
	URL     string    `json:"url"`
}

// NewMessageResponse creates a MessageResponse from a domain.Message.
func NewMessageResponse(m domain.Message) MessageResponse {
	return MessageResponse{
		ID:      m.ID,
		Role:    string(m.Role),
		Author:  m.Author,
		Content: m.Content,
		SentAt:  m.SentAt,
		URL:     "/messages/" + m.ID,
	}
}

// NewMessageResponses maps a slice of messages.
func NewMessageResponses(msgs []domain.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, NewMessageResponse(m))
	}
	return out
}
