package todo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const maxTxRetries = 5

// RedisStore keeps todos as JSON entries of a Redis list.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

// Ping checks the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// EnsureSeeded writes the seed list when the key does not exist yet.
func (s *RedisStore) EnsureSeeded(ctx context.Context) error {
	return s.transact(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, s.key).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		values := make([]interface{}, 0, 3)
		for _, t := range Seed() {
			data, err := json.Marshal(t)
			if err != nil {
				return err
			}
			values = append(values, data)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.RPush(ctx, s.key, values...)
			return nil
		})
		return err
	})
}

func (s *RedisStore) List(ctx context.Context) ([]Todo, error) {
	entries, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	todos := make([]Todo, 0, len(entries))
	for _, entry := range entries {
		var t Todo
		if err := json.Unmarshal([]byte(entry), &t); err != nil {
			return nil, fmt.Errorf("decode todo %q: %w", entry, err)
		}
		todos = append(todos, t)
	}

	return todos, nil
}

func (s *RedisStore) Create(ctx context.Context, text string) (Todo, error) {
	text, err := normalize(text)
	if err != nil {
		return Todo{}, err
	}

	var created Todo
	err = s.transact(ctx, func(tx *redis.Tx) error {
		n, err := tx.LLen(ctx, s.key).Result()
		if err != nil {
			return err
		}

		created = Todo{ID: int(n) + 1, Text: text}
		data, err := json.Marshal(created)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.RPush(ctx, s.key, data)
			return nil
		})
		return err
	})
	if err != nil {
		return Todo{}, fmt.Errorf("create todo: %w", err)
	}

	return created, nil
}

// transact runs fn under WATCH on the list key, retrying when another
// client modified the key in between.
func (s *RedisStore) transact(ctx context.Context, fn func(tx *redis.Tx) error) error {
	for i := 0; i < maxTxRetries; i++ {
		err := s.client.Watch(ctx, fn, s.key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return redis.TxFailedErr
}
