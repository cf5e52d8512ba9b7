package persistence

import (
	"context"
	"errors"
	"fmt"
	"log"

	lowimpl "github.com/redis/go-redis/v9"
)

// RedisConf addresses the Redis server and key holding the document.
type RedisConf struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// Redis stores the document as a plain string value.
type Redis struct {
	Conf RedisConf

	internal *lowimpl.Client
}

var _ Backend = (*Redis)(nil)

// NewRedis creates the client. No connection is made until first use.
func NewRedis(conf RedisConf) *Redis {
	r := &Redis{Conf: conf}
	r.internal = lowimpl.NewClient(&lowimpl.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})
	log.Printf("persistence: redis client for %s db %d", conf.Addr, conf.DB)
	return r
}

// Ping checks connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	return r.internal.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	if r.internal == nil {
		return nil
	}
	return r.internal.Close()
}

func (r *Redis) Load(ctx context.Context) ([]byte, error) {
	val, err := r.internal.Get(ctx, r.Conf.Key).Bytes()
	if errors.Is(err, lowimpl.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", r.Conf.Key, err)
	}
	return val, nil
}

func (r *Redis) Save(ctx context.Context, data []byte) error {
	if err := r.internal.Set(ctx, r.Conf.Key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.Conf.Key, err)
	}
	return nil
}

func (r *Redis) Clear(ctx context.Context) error {
	if err := r.internal.Del(ctx, r.Conf.Key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", r.Conf.Key, err)
	}
	return nil
}
