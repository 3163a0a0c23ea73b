package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "chapchap:session:"

// RedisSessionStore keeps each session as one hash, one field per checkpoint
// attribute, so a partial Save is a plain HSET merge.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) key(sessionId string) string {
	return redisKeyPrefix + sessionId
}

func (s *RedisSessionStore) Load(ctx context.Context, sessionId string) (*SessionState, error) {
	fields, err := s.client.HGetAll(ctx, s.key(sessionId)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis load session %s: %w", sessionId, err)
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	state := &SessionState{SessionId: sessionId, Stage: StageInit}
	for field, raw := range fields {
		if err := DecodeField(state, field, []byte(raw)); err != nil {
			return nil, err
		}
	}
	return state, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, sessionId string, update Update) error {
	if len(update) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(update)*2)
	for field, value := range update {
		raw, err := EncodeField(value)
		if err != nil {
			return err
		}
		values = append(values, field, raw)
	}

	if err := s.client.HSet(ctx, s.key(sessionId), values...).Err(); err != nil {
		return fmt.Errorf("redis save session %s: %w", sessionId, err)
	}
	return nil
}

func (s *RedisSessionStore) Clear(ctx context.Context, sessionId string) error {
	if err := s.client.Del(ctx, s.key(sessionId)).Err(); err != nil {
		return fmt.Errorf("redis clear session %s: %w", sessionId, err)
	}
	return nil
}
