// Package session keeps server-side login sessions in Redis.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

// Store maps an opaque session id (the cookie value) to a user id.
type Store interface {
	Create(ctx context.Context, userID uuid.UUID) (string, error)
	Get(ctx context.Context, sessionID string) (uuid.UUID, error)
	Touch(ctx context.Context, sessionID string) error
	Destroy(ctx context.Context, sessionID string) error
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl, prefix: "session:"}
}

func (s *redisStore) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *redisStore) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	sessionID := uuid.NewString()
	if err := s.client.Set(ctx, s.key(sessionID), userID.String(), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return sessionID, nil
}

func (s *redisStore) Get(ctx context.Context, sessionID string) (uuid.UUID, error) {
	if sessionID == "" {
		return uuid.Nil, ErrSessionNotFound
	}

	raw, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrSessionNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to load session: %w", err)
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrSessionNotFound
	}
	return userID, nil
}

// Touch slides the expiry forward; every authenticated request calls it.
func (s *redisStore) Touch(ctx context.Context, sessionID string) error {
	ok, err := s.client.Expire(ctx, s.key(sessionID), s.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to refresh session: %w", err)
	}
	if !ok {
		return ErrSessionNotFound
	}
	return nil
}

func (s *redisStore) Destroy(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}
