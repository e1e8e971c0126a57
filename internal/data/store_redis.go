package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each collection as a string value under prefix+key. Values never expire.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// OpenRedis connects to addr and checks the connection with a ping.
func OpenRedis(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return client, nil
}

func (s *RedisStore) Load(ctx context.Context, key string, dest any) error {
	doc, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNoCollection
		}
		return err
	}

	return json.Unmarshal(doc, dest)
}

func (s *RedisStore) Save(ctx context.Context, key string, value any) error {
	doc, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, s.prefix+key, doc, 0).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
