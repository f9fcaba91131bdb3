package sessionstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"

	"github.com/bizdash/import-service/internal/application/importing"
)

const keyPrefix = "import:sessions"

// RedisStore shares sessions between API replicas. Sessions are stored as
// JSON and expire ttl after their last save.
type RedisStore[T any] struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore[T any](client *redis.Client, ttl time.Duration) *RedisStore[T] {
	return &RedisStore[T]{client: client, ttl: ttl}
}

func (s *RedisStore[T]) Save(ctx context.Context, sess *importing.Session[T]) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "encode session")
	}
	if err := s.client.Set(ctx, key(sess.ID), payload, s.ttl).Err(); err != nil {
		return errors.Wrap(err, "save session")
	}
	return nil
}

func (s *RedisStore[T]) Load(ctx context.Context, id string) (*importing.Session[T], error) {
	payload, err := s.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, importing.ErrSessionNotFound
		}
		return nil, errors.Wrap(err, "load session")
	}

	var sess importing.Session[T]
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, errors.Wrap(err, "decode session")
	}
	return &sess, nil
}

func (s *RedisStore[T]) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, key(id)).Err(); err != nil {
		return errors.Wrap(err, "delete session")
	}
	return nil
}

func key(id string) string {
	return keyPrefix + ":" + id
}
