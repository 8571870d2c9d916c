package repo

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"reversi_server/internal/bootstrap"
	errs "reversi_server/internal/errors"
)

const sessionKeyPrefix = "session:"

type RedisSessionStorage struct {
	cfg    bootstrap.Config
	client *redis.Client
}

func NewSessionRedisStorage(cfg bootstrap.Config, client *redis.Client) *RedisSessionStorage {
	return &RedisSessionStorage{
		cfg:    cfg,
		client: client,
	}
}

func (r *RedisSessionStorage) GetUserIDBySession(ctx context.Context, sessionID string) (string, error) {
	v, err := r.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return "", errs.ErrSessionNotFound
	}
	if err != nil {
		return "", errs.ErrStoreUnavailable
	}
	return v, nil
}

func (r *RedisSessionStorage) StoreSession(ctx context.Context, sessionID string, userID string) error {
	ttl := time.Duration(r.cfg.SessionTTLHours) * time.Hour
	return r.client.Set(ctx, sessionKeyPrefix+sessionID, userID, ttl).Err()
}

func (r *RedisSessionStorage) DeleteSession(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
