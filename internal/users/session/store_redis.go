// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/uniportal/internal/platform/apperr"
	"github.com/taibuivan/uniportal/internal/platform/constants"
	"github.com/taibuivan/uniportal/internal/platform/sec"
)

// RedisStore implements [Store] using Redis string keys with expiry.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis-backed session Store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// key hashes the session id so that a key listing never exposes live cookies.
func key(id string) string {
	return constants.RedisPrefixSession + sec.HashToken(id)
}

/*
Save serializes the record as JSON under the hashed id.
*/
func (store *RedisStore) Save(ctx context.Context, id string, record *Record, ttl time.Duration) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	if err := store.client.Set(ctx, key(id), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}
	return nil
}

/*
Get loads and decodes the record stored under the hashed id.

Returns:
  - error: apperr.NotFound if the key is absent or expired
*/
func (store *RedisStore) Get(ctx context.Context, id string) (*Record, error) {
	payload, err := store.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session introuvable ou expirée")
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	record := &Record{}
	if err := json.Unmarshal(payload, record); err != nil {
		return nil, fmt.Errorf("redis_session_decode_failed: %w", err)
	}
	return record, nil
}

/*
Delete removes the hashed key.
*/
func (store *RedisStore) Delete(ctx context.Context, id string) error {
	if err := store.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}
	return nil
}
