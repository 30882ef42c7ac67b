package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/GregMSThompson/vehicle-dashboard/internal/errs"
	"github.com/GregMSThompson/vehicle-dashboard/internal/models"
)

const redisKeyPrefix = "dashboard:layout:"

// RedisLayouts stores each owner's layout as a JSON string without expiry.
type RedisLayouts struct {
	client redis.UniversalClient
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisLayouts connects to Redis and verifies the connection.
func NewRedisLayouts(ctx context.Context, cfg RedisConfig) (*RedisLayouts, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errs.NewDatabaseError("connect", "failed to reach redis", err)
	}
	return &RedisLayouts{client: client}, nil
}

// NewRedisLayoutsFromClient wraps an existing client.
func NewRedisLayoutsFromClient(client redis.UniversalClient) *RedisLayouts {
	return &RedisLayouts{client: client}
}

func redisKey(owner string) string {
	return redisKeyPrefix + owner
}

func (s *RedisLayouts) Close() error {
	return s.client.Close()
}

func (s *RedisLayouts) LoadLayout(ctx context.Context, owner string) ([]models.Widget, error) {
	payload, err := s.client.Get(ctx, redisKey(owner)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to get layout", err)
	}
	return decodeWidgets(payload)
}

func (s *RedisLayouts) SaveLayout(ctx context.Context, owner string, widgets []models.Widget) error {
	payload, err := encodeWidgets(widgets)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, redisKey(owner), payload, 0).Err(); err != nil {
		return errs.NewDatabaseError("update", "failed to save layout", err)
	}
	return nil
}
