package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shopmate/support-chat/internal/bot"
)

const keyPrefix = "chat:session:"

// RedisStore keeps each conversation as a JSON blob with a TTL that
// refreshes on every write, so idle sessions expire on their own.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func key(sessionID string) string { return keyPrefix + sessionID }

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*bot.Conversation, error) {
	raw, err := s.rdb.Get(ctx, key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session: get %s: %w", sessionID, err)
	}
	var conv bot.Conversation
	if err := json.Unmarshal(raw, &conv); err != nil {
		return nil, fmt.Errorf("session: decode %s: %w", sessionID, err)
	}
	return &conv, nil
}

func (s *RedisStore) Put(ctx context.Context, conv *bot.Conversation) error {
	raw, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("session: encode %s: %w", conv.SessionID, err)
	}
	if err := s.rdb.Set(ctx, key(conv.SessionID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("session: put %s: %w", conv.SessionID, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, key(sessionID)).Err(); err != nil {
		return fmt.Errorf("session: delete %s: %w", sessionID, err)
	}
	return nil
}
