package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopmate/support-chat/internal/bot"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	conv := bot.NewConversation("s1")
	conv.AddUser("hello")
	require.NoError(t, s.Put(ctx, conv))

	got, err := s.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "hello", got.Messages[0].Content)

	require.NoError(t, s.Delete(ctx, "s1"))
	_, err = s.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_GetReturnsIsolatedCopy(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	conv := bot.NewConversation("s1")
	conv.AddUser("hello")
	require.NoError(t, s.Put(ctx, conv))

	// mutations after Put must not leak into the store
	conv.AddAssistant("leaked")
	conv.NeedsHumanAgent = true

	got, err := s.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got.Messages, 1)
	assert.False(t, got.NeedsHumanAgent)

	// mutations of a Get result must not either
	got.AddAssistant("also leaked")
	again, err := s.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, again.Messages, 1)
}

func TestMemoryStore_CleanupExpiresIdleSessions(t *testing.T) {
	s := NewMemoryStore(30 * time.Minute)
	ctx := context.Background()

	stale := bot.NewConversation("stale")
	stale.LastActivity = time.Now().Add(-time.Hour)
	fresh := bot.NewConversation("fresh")

	require.NoError(t, s.Put(ctx, stale))
	require.NoError(t, s.Put(ctx, fresh))

	removed := s.Cleanup(time.Now())
	assert.Equal(t, 1, removed)

	_, err := s.Get(ctx, "stale")
	assert.ErrorIs(t, err, ErrNotFound, "stale session should be expired")

	_, err = s.Get(ctx, "fresh")
	assert.NoError(t, err, "fresh session should survive")

	assert.Equal(t, 1, s.Len())
}

func TestMemoryStore_CleanupDisabledWithoutTTL(t *testing.T) {
	s := NewMemoryStore(0)
	stale := bot.NewConversation("stale")
	stale.LastActivity = time.Now().Add(-24 * time.Hour)
	require.NoError(t, s.Put(context.Background(), stale))

	assert.Equal(t, 0, s.Cleanup(time.Now()))
}
