package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"agenda-api/core/constants"
	"agenda-api/core/logger"

	"github.com/redis/go-redis/v9"
)

type Cache interface {
	AddToTokenBlacklist(ctx context.Context, token string) error
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
	IncrementLoginAttempt(ctx context.Context, identifier string) (int64, error)
	IsLoginBlocked(ctx context.Context, identifier string) (bool, error)
	ResetLoginAttempts(ctx context.Context, identifier string) error
	Del(ctx context.Context, key string) error
	Close() error
}

type redisCache struct {
	client *redis.Client
}

func NewCache(addr, password string) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Error("Failed to connect to redis", "addr", addr, "error", err)
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	logger.Info("Redis initialized", "addr", addr)
	return &redisCache{client: client}, nil
}

// tokens are hashed before being used as keys
func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return constants.RedisKeyTokenBlacklist + hex.EncodeToString(sum[:])
}

func (c *redisCache) AddToTokenBlacklist(ctx context.Context, token string) error {
	return c.client.Set(ctx, tokenKey(token), "1", constants.AccessTokenTTL).Err()
}

func (c *redisCache) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := c.client.Exists(ctx, tokenKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *redisCache) IncrementLoginAttempt(ctx context.Context, identifier string) (int64, error) {
	key := constants.RedisKeyLoginAttempt + identifier
	n, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := c.client.Expire(ctx, key, constants.BlockDuration).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (c *redisCache) IsLoginBlocked(ctx context.Context, identifier string) (bool, error) {
	n, err := c.client.Get(ctx, constants.RedisKeyLoginAttempt+identifier).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return n >= constants.MaxLoginAttempts, nil
}

func (c *redisCache) ResetLoginAttempts(ctx context.Context, identifier string) error {
	return c.client.Del(ctx, constants.RedisKeyLoginAttempt+identifier).Err()
}

func (c *redisCache) Del(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *redisCache) Close() error {
	return c.client.Close()
}
