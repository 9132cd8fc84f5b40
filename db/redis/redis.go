package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

type RedisDB struct {
	Client *goredis.Client
	URL    string
}

func NewRedisDB(url string) *RedisDB {
	return &RedisDB{URL: url}
}

func (r *RedisDB) Connect(ctx context.Context) error {
	opts, err := goredis.ParseURL(r.URL)
	if err != nil {
		return err
	}
	r.Client = goredis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.Client.Ping(ctx).Err()
}

func (r *RedisDB) Disconnect(_ context.Context) error {
	if r.Client == nil {
		return nil
	}
	return r.Client.Close()
}
