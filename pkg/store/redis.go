package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/parley-ai/parley/pkg/core"
)

const (
	redisKeyPrefix = "parley:debate:"
	redisIndexKey  = "parley:debates"
)

var _ Store = (*RedisStore)(nil)

// RedisStore implements DebateStore on Redis so a persistent backend can be
// substituted for the in-memory store without touching the orchestrator.
// Debates are JSON values; creation order is kept in a list.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed debate store from a redis:// URI.
func NewRedisStore(uri string) (*RedisStore, error) {
	opts, err := redis.ParseURL(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URI: %w", err)
	}
	return &RedisStore{client: redis.NewClient(opts)}, nil
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

// Create stores a new debate.
func (s *RedisStore) Create(ctx context.Context, debate *core.Debate) error {
	data, err := json.Marshal(debate)
	if err != nil {
		return fmt.Errorf("failed to marshal debate: %w", err)
	}

	ok, err := s.client.SetNX(ctx, redisKey(debate.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	if !ok {
		return fmt.Errorf("debate already exists: %s", debate.ID)
	}

	if err := s.client.RPush(ctx, redisIndexKey, debate.ID).Err(); err != nil {
		return fmt.Errorf("redis index update failed: %w", err)
	}
	return nil
}

// Get retrieves a debate by ID.
func (s *RedisStore) Get(ctx context.Context, id string) (*core.Debate, error) {
	data, err := s.client.Get(ctx, redisKey(id)).Bytes()
	if err == redis.Nil {
		return nil, core.NotFoundErrorf("debate %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var debate core.Debate
	if err := json.Unmarshal(data, &debate); err != nil {
		return nil, fmt.Errorf("failed to unmarshal debate: %w", err)
	}
	return &debate, nil
}

// Update replaces the stored state of an existing debate.
func (s *RedisStore) Update(ctx context.Context, debate *core.Debate) error {
	exists, err := s.client.Exists(ctx, redisKey(debate.ID)).Result()
	if err != nil {
		return fmt.Errorf("redis exists failed: %w", err)
	}
	if exists == 0 {
		return core.NotFoundErrorf("debate %s not found", debate.ID)
	}

	data, err := json.Marshal(debate)
	if err != nil {
		return fmt.Errorf("failed to marshal debate: %w", err)
	}
	if err := s.client.Set(ctx, redisKey(debate.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Delete removes a debate.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	deleted, err := s.client.Del(ctx, redisKey(id)).Result()
	if err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	if deleted == 0 {
		return core.NotFoundErrorf("debate %s not found", id)
	}
	if err := s.client.LRem(ctx, redisIndexKey, 1, id).Err(); err != nil {
		return fmt.Errorf("redis index update failed: %w", err)
	}
	return nil
}

// List returns all debates in creation order.
func (s *RedisStore) List(ctx context.Context) ([]*core.Debate, error) {
	ids, err := s.client.LRange(ctx, redisIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange failed: %w", err)
	}

	debates := make([]*core.Debate, 0, len(ids))
	for _, id := range ids {
		debate, err := s.Get(ctx, id)
		if err != nil {
			if core.IsKind(err, core.KindNotFound) {
				continue // index entry outlived the value
			}
			return nil, err
		}
		debates = append(debates, debate)
	}
	return debates, nil
}

// Close closes the Redis client.
func (s *RedisStore) Close(ctx context.Context) error {
	return s.client.Close()
}
