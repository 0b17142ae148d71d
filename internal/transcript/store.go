// Package transcript stores chat messages and announces new ones on the bus.
package transcript

import (
	"context"
	"fmt"
	"sync"

	"github.com/nfrund/parley/internal/domain"
)

// Store persists transcript messages in arrival order.
type Store interface {
	// Append adds msg to the end of the transcript.
	Append(ctx context.Context, msg domain.Message) error
	// Recent returns up to limit of the newest messages, oldest first.
	Recent(ctx context.Context, limit int) ([]domain.Message, error)
	// Get returns the message with the given id or domain.ErrNotFound.
	Get(ctx context.Context, id string) (domain.Message, error)
	Close(ctx context.Context) error
}

// MemoryStore is a bounded in-process Store. Once capacity is reached the
// oldest messages are evicted.
type MemoryStore struct {
	mu       sync.RWMutex
	capacity int
	messages []domain.Message
	byID     map[string]int // id -> absolute sequence number
	offset   int            // sequence number of messages[0]
}

// NewMemoryStore creates a MemoryStore holding at most capacity messages.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = 1
	}
	return &MemoryStore{
		capacity: capacity,
		byID:     make(map[string]int),
	}
}

// Append implements Store.
func (s *MemoryStore) Append(_ context.Context, msg domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[msg.ID]; exists {
		return fmt.Errorf("message %q already stored", msg.ID)
	}

	s.byID[msg.ID] = s.offset + len(s.messages)
	s.messages = append(s.messages, msg)

	if overflow := len(s.messages) - s.capacity; overflow > 0 {
		for _, old := range s.messages[:overflow] {
			delete(s.byID, old.ID)
		}
		s.messages = append([]domain.Message(nil), s.messages[overflow:]...)
		s.offset += overflow
	}
	return nil
}

// Recent implements Store.
func (s *MemoryStore) Recent(_ context.Context, limit int) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := 0
	if limit > 0 && limit < len(s.messages) {
		start = len(s.messages) - limit
	}
	out := make([]domain.Message, len(s.messages)-start)
	copy(out, s.messages[start:])
	return out, nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, id string) (domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seq, ok := s.byID[id]
	if !ok {
		return domain.Message{}, domain.ErrNotFound
	}
	return s.messages[seq-s.offset], nil
}

// Len returns the number of retained messages.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Close implements Store.
func (s *MemoryStore) Close(context.Context) error { return nil }
