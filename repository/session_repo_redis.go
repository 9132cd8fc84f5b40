package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisSessionRepo struct {
	Client *redis.Client
	// TTL bounds how long an idle session value survives; zero keeps it forever.
	TTL time.Duration
}

func NewRedisSessionRepo(client *redis.Client, ttl time.Duration) *RedisSessionRepo {
	return &RedisSessionRepo{Client: client, TTL: ttl}
}

func redisSessionKey(sessionID, key string) string {
	return "admin_session:" + sessionID + ":" + key
}

func (r *RedisSessionRepo) Get(ctx context.Context, sessionID, key string) (string, error) {
	v, err := r.Client.Get(ctx, redisSessionKey(sessionID, key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return v, nil
}

func (r *RedisSessionRepo) Set(ctx context.Context, sessionID, key, value string) error {
	return r.Client.Set(ctx, redisSessionKey(sessionID, key), value, r.TTL).Err()
}

func (r *RedisSessionRepo) Delete(ctx context.Context, sessionID, key string) error {
	return r.Client.Del(ctx, redisSessionKey(sessionID, key)).Err()
}
