package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisMarker struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisMarker(client *redis.Client, ttl time.Duration) *RedisMarker {
	return &RedisMarker{Client: client, TTL: ttl}
}

func (m *RedisMarker) Key(eventID string) string {
	return "geo-worker:event:" + eventID
}

func (m *RedisMarker) MarkProcessed(ctx context.Context, eventID string) (bool, error) {
	return m.Client.SetNX(ctx, m.Key(eventID), "1", m.TTL).Result()
}
