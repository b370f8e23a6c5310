package session

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shopmate/support-chat/internal/bot"
)

// MemoryStore keeps sessions in a process-local map. Suitable for a
// single instance; use the Redis store when running more than one.
// Get and Put exchange deep copies, so callers can read and mutate the
// returned conversation without racing the sweep goroutine.
type MemoryStore struct {
	mu    sync.RWMutex
	convs map[string]*bot.Conversation
	ttl   time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		convs: make(map[string]*bot.Conversation),
		ttl:   ttl,
	}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*bot.Conversation, error) {
	s.mu.RLock()
	conv, ok := s.convs[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return conv.Clone(), nil
}

func (s *MemoryStore) Put(ctx context.Context, conv *bot.Conversation) error {
	s.mu.Lock()
	s.convs[conv.SessionID] = conv.Clone()
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.convs, sessionID)
	s.mu.Unlock()
	return nil
}

// Len reports the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.convs)
}

// Cleanup removes sessions idle longer than the store TTL and returns
// how many were dropped.
func (s *MemoryStore) Cleanup(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := now.Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, conv := range s.convs {
		if conv.LastActivity.Before(cutoff) {
			delete(s.convs, id)
			removed++
		}
	}
	return removed
}

// Sweep runs Cleanup on the given interval until the context ends.
func (s *MemoryStore) Sweep(ctx context.Context, interval time.Duration, log *logrus.Logger) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := s.Cleanup(now); n > 0 {
				log.WithField("removed", n).Info("session sweep: expired idle sessions")
			}
		}
	}
}
