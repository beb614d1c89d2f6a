package persistence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures the read cache connection
type RedisOptions struct {
	Addrs    string
	Username string
	Password string
	DB       int
	PoolSize int
}

// NewRedisClient creates a universal Redis client for a comma separated address list and pings it
func NewRedisClient(ctx context.Context, opts RedisOptions) (redis.UniversalClient, error) {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        strings.Split(opts.Addrs, ","),
		Username:     opts.Username,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     opts.PoolSize,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addrs, err)
	}
	return client, nil
}
