package docstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each document in a hash and maintains one set per
// (field, value) pair for the exact-match queries.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "orders"
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) docKey(id string) string {
	return fmt.Sprintf("%s:doc:%s", s.prefix, id)
}

func (s *RedisStore) idxKey(field, value string) string {
	return fmt.Sprintf("%s:idx:%s:%s", s.prefix, field, value)
}

const contentField = "__content"

// Add writes documents and their field index entries in one pipeline.
func (s *RedisStore) Add(ctx context.Context, docs ...Document) error {
	pipe := s.rdb.Pipeline()
	for _, d := range docs {
		fields := make(map[string]string, len(d.Metadata)+1)
		for k, v := range d.Metadata {
			fields[k] = v
			if v != "" {
				pipe.SAdd(ctx, s.idxKey(k, v), d.ID)
			}
		}
		fields[contentField] = d.Content
		pipe.HSet(ctx, s.docKey(d.ID), fields)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// QueryByField returns up to limit documents whose metadata field has
// exactly the given value.
func (s *RedisStore) QueryByField(ctx context.Context, field, value string, limit int) ([]Document, error) {
	if limit <= 0 {
		limit = 10
	}
	ids, err := s.rdb.SMembers(ctx, s.idxKey(field, value)).Result()
	if err != nil {
		return nil, fmt.Errorf("docstore: members of %s=%s: %w", field, value, err)
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	pipe := s.rdb.Pipeline()
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, s.docKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("docstore: fetch documents: %w", err)
	}

	out := make([]Document, 0, len(ids))
	for i, cmd := range cmds {
		m, err := cmd.Result()
		if err != nil || len(m) == 0 {
			continue
		}
		doc := Document{ID: ids[i], Metadata: make(map[string]string, len(m))}
		for k, v := range m {
			if k == contentField {
				doc.Content = v
				continue
			}
			doc.Metadata[k] = v
		}
		out = append(out, doc)
	}
	return out, nil
}
