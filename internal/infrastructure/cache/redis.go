package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"localbiz-backend/internal/config"
)

const (
	connectAttempts = 3
	connectBackoff  = 500 * time.Millisecond
)

// RedisClient holds the go-redis client shared by the session store.
type RedisClient struct {
	Client *redis.Client
	addr   string
}

func NewRedisClient(cfg config.RedisConfig) *RedisClient {
	return &RedisClient{
		addr: cfg.Host,
		Client: redis.NewClient(&redis.Options{
			Addr:         cfg.Host,
			Password:     cfg.Password,
			DB:           cfg.DB,
			PoolSize:     10,
			MinIdleConns: 2,
			MaxRetries:   3,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		}),
	}
}

// Connect pings until the server answers or attempts run out.
// Sessions cannot work without Redis, so callers treat the error as fatal.
func (r *RedisClient) Connect(ctx context.Context) error {
	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		log.Printf("[REDIS] Connecting to %s (attempt %d/%d)", r.addr, attempt, connectAttempts)

		if err = r.Client.Ping(ctx).Err(); err == nil {
			log.Println("[REDIS] Connected successfully")
			return nil
		}

		if attempt < connectAttempts {
			select {
			case <-ctx.Done():
				return fmt.Errorf("redis connect cancelled: %w", ctx.Err())
			case <-time.After(connectBackoff * time.Duration(attempt)):
			}
		}
	}
	return fmt.Errorf("redis ping failed after %d attempts: %w", connectAttempts, err)
}

func (r *RedisClient) Close() error {
	if r.Client == nil {
		return nil
	}
	return r.Client.Close()
}
