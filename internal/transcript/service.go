package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nfrund/parley/internal/domain"
	"github.com/nfrund/parley/internal/pubsub"
)

// TopicMessageCreated carries the JSON encoding of every newly stored message.
const TopicMessageCreated = "transcript.message.created"

// PostInput is the caller-supplied part of a new message.
type PostInput struct {
	Role    string
	Author  string
	Content string
}

// Service is the transcript use-case layer.
type Service struct {
	store    Store
	pub      pubsub.Publisher
	pageSize int

	now   func() time.Time
	newID func() string
}

// NewService wires a Service. pageSize is used when callers pass no limit.
func NewService(store Store, pub pubsub.Publisher, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = 50
	}
	return &Service{
		store:    store,
		pub:      pub,
		pageSize: pageSize,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

// RoleLabel is the display name used when a message has no author.
func RoleLabel(r domain.Role) string {
	return cases.Title(language.English).String(string(r))
}

// Post validates in, stores the resulting message and announces it on
// TopicMessageCreated. A failed announcement is logged; the message is
// already stored at that point.
func (s *Service) Post(ctx context.Context, in PostInput) (domain.Message, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return domain.Message{}, domain.ErrEmptyContent
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return domain.Message{}, err
	}
	author := strings.TrimSpace(in.Author)
	if author == "" {
		author = RoleLabel(role)
	}

	msg := domain.Message{
		ID:      s.newID(),
		Role:    role,
		Author:  author,
		Content: content,
		SentAt:  s.now(),
	}
	if err := s.store.Append(ctx, msg); err != nil {
		return domain.Message{}, fmt.Errorf("failed to store message: %w", err)
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return msg, fmt.Errorf("failed to encode message: %w", err)
	}
	if err := s.pub.Publish(ctx, pubsub.Message{
		Topic:   TopicMessageCreated,
		UserID:  author,
		Payload: payload,
		Metadata: map[string]string{
			"timestamp": msg.SentAt.Format(time.RFC3339),
		},
	}); err != nil {
		slog.ErrorContext(ctx, "Failed to publish new message", "id", msg.ID, "error", err)
	}
	return msg, nil
}

// Recent returns up to limit of the newest messages, oldest first. A limit of
// zero or less uses the configured page size.
func (s *Service) Recent(ctx context.Context, limit int) ([]domain.Message, error) {
	if limit <= 0 {
		limit = s.pageSize
	}
	return s.store.Recent(ctx, limit)
}

// Get returns a single message.
func (s *Service) Get(ctx context.Context, id string) (domain.Message, error) {
	return s.store.Get(ctx, id)
}

// DecodeMessage decodes a TopicMessageCreated payload.
func DecodeMessage(payload []byte) (domain.Message, error) {
	var m domain.Message
	if err := json.Unmarshal(payload, &m); err != nil {
		return domain.Message{}, fmt.Errorf("failed to decode transcript message: %w", err)
	}
	return m, nil
}
