package transcript_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/parley/internal/domain"
	"github.com/nfrund/parley/internal/transcript"
)

func newSQLiteStore(t *testing.T, path string) *transcript.SQLiteStore {
	t.Helper()
	s, err := transcript.NewSQLiteStore(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestSQLiteStore_AppendRecentGet(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t, filepath.Join(t.TempDir(), "nested", "parley.db"))

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Append(ctx, msg(id)))
	}

	all, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids(all))

	last2, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, ids(last2))

	got, err := s.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, msg("b"), got)

	_, err = s.Get(ctx, "zzz")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSQLiteStore_DuplicateID(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t, filepath.Join(t.TempDir(), "parley.db"))

	require.NoError(t, s.Append(ctx, msg("a")))
	assert.Error(t, s.Append(ctx, msg("a")))
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "parley.db")
	sentAt := time.Date(2026, 10, 15, 9, 30, 0, 123, time.UTC)

	first, err := transcript.NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.Append(ctx, domain.Message{ID: "x", Role: domain.RoleAssistant, Author: "Bot", Content: "kept", SentAt: sentAt}))
	require.NoError(t, first.Close(ctx))

	second := newSQLiteStore(t, path)
	got, err := second.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Content)
	assert.Equal(t, domain.RoleAssistant, got.Role)
	assert.True(t, sentAt.Equal(got.SentAt))
}
