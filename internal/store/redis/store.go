// Package redis implements the key-value store on Redis, for kiosk
// deployments where several storefront terminals share session and cart
// state.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/Sakurayo-Crispita/saborreal-storefront/pkg/errors"
)

const keyPrefix = "storefront:"

// Store implements store.Store backed by a Redis server.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a Redis-backed store. A zero ttl means entries never expire.
func New(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Get decodes the value stored under key into dst.
func (s *Store) Get(ctx context.Context, key string, dst any) error {
	data, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return apperrors.NotFound("store entry", key)
		}
		return fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode store entry %s: %w", key, err)
	}
	return nil
}

// Set encodes v and stores it under key with the configured TTL.
func (s *Store) Set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode store entry %s: %w", key, err)
	}

	if err := s.client.Set(ctx, keyPrefix+key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes the entry for key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
