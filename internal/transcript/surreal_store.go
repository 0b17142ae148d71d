package transcript

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/nfrund/parley/internal/domain"
)

const messageTable = "message"

// SurrealConfig holds the connection settings for SurrealStore.
type SurrealConfig struct {
	URL       string
	Namespace string
	Database  string
	User      string
	Pass      string
}

// messageRecord is the stored shape of a domain.Message. SentAt is kept as
// unix nanoseconds so ordering is a plain numeric sort.
type messageRecord struct {
	ID      *models.RecordID `json:"id,omitempty"`
	Role    string           `json:"role"`
	Author  string           `json:"author"`
	Content string           `json:"content"`
	SentAt  int64            `json:"sent_at"`
}

func (r messageRecord) toDomain() domain.Message {
	m := domain.Message{
		Role:    domain.Role(r.Role),
		Author:  r.Author,
		Content: r.Content,
		SentAt:  time.Unix(0, r.SentAt).UTC(),
	}
	if r.ID != nil {
		m.ID = fmt.Sprint(r.ID.ID)
	}
	return m
}

// SurrealStore is a Store backed by SurrealDB.
type SurrealStore struct {
	db *surrealdb.DB
}

// NewSurrealStore connects, signs in and selects the namespace/database.
func NewSurrealStore(ctx context.Context, cfg SurrealConfig) (*SurrealStore, error) {
	db, err := surrealdb.FromEndpointURLString(ctx, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to surrealdb: %w", err)
	}

	if cfg.User != "" {
		authData := &surrealdb.Auth{
			Username: cfg.User,
			Password: cfg.Pass,
		}
		if _, err = db.SignIn(ctx, authData); err != nil {
			db.Close(ctx)
			return nil, fmt.Errorf("failed to sign in: %w", err)
		}
	}

	if err = db.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to use namespace/db: %w", err)
	}

	slog.Info("Connected transcript store to SurrealDB", "namespace", cfg.Namespace, "database", cfg.Database)
	return &SurrealStore{db: db}, nil
}

// query runs a SurrealQL statement and returns the rows of its first result.
func query(ctx context.Context, db *surrealdb.DB, q string, params map[string]any) ([]messageRecord, error) {
	results, err := surrealdb.Query[[]messageRecord](ctx, db, q, params)
	if err != nil {
		return nil, fmt.Errorf("query execution failed: %w", err)
	}
	if results == nil || len(*results) == 0 {
		return nil, nil
	}
	return (*results)[0].Result, nil
}

// Append implements Store.
func (s *SurrealStore) Append(ctx context.Context, msg domain.Message) error {
	_, err := query(ctx, s.db, "CREATE type::thing($tb, $id) CONTENT $data", map[string]any{
		"tb": messageTable,
		"id": msg.ID,
		"data": map[string]any{
			"role":    string(msg.Role),
			"author":  msg.Author,
			"content": msg.Content,
			"sent_at": msg.SentAt.UnixNano(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// Recent implements Store.
func (s *SurrealStore) Recent(ctx context.Context, limit int) ([]domain.Message, error) {
	q := "SELECT * FROM type::table($tb) ORDER BY sent_at DESC"
	params := map[string]any{"tb": messageTable}
	if limit > 0 {
		q += " LIMIT $limit"
		params["limit"] = limit
	}

	records, err := query(ctx, s.db, q, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	out := make([]domain.Message, 0, len(records))
	for _, r := range records {
		out = append(out, r.toDomain())
	}
	slices.Reverse(out)
	return out, nil
}

// Get implements Store.
func (s *SurrealStore) Get(ctx context.Context, id string) (domain.Message, error) {
	records, err := query(ctx, s.db, "SELECT * FROM type::thing($tb, $id)", map[string]any{
		"tb": messageTable,
		"id": id,
	})
	if err != nil {
		return domain.Message{}, fmt.Errorf("failed to fetch message: %w", err)
	}
	if len(records) == 0 {
		return domain.Message{}, domain.ErrNotFound
	}
	return records[0].toDomain(), nil
}

// Close implements Store.
func (s *SurrealStore) Close(ctx context.Context) error {
	return s.db.Close(ctx)
}
