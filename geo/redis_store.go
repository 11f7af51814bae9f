package geo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// RedisStore keeps recently used entries in Redis in front of Next. Next is the
// source of truth: Redis errors are logged and never fail a lookup or a write.
type RedisStore struct {
	Client *redis.Client
	Next   Store
	TTL    time.Duration
}

func NewRedisStore(client *redis.Client, next Store, ttl time.Duration) *RedisStore {
	return &RedisStore{Client: client, Next: next, TTL: ttl}
}

func (s *RedisStore) Key(address string) string {
	return "geocode:" + address
}

func (s *RedisStore) Get(ctx context.Context, address string) (*Entry, error) {
	raw, err := s.Client.Get(ctx, s.Key(address)).Bytes()
	switch {
	case err == nil:
		var entry Entry
		if jsonErr := json.Unmarshal(raw, &entry); jsonErr == nil {
			return &entry, nil
		}
		log.WithField("address", address).Warn("dropping unreadable geocode entry from redis")
	case errors.Is(err, redis.Nil):
	default:
		log.WithError(err).WithField("address", address).Warn("redis geocode lookup failed")
	}

	entry, err := s.Next.Get(ctx, address)
	if err != nil {
		return nil, err
	}
	if entry != nil {
		s.remember(ctx, *entry)
	}
	return entry, nil
}

func (s *RedisStore) Upsert(ctx context.Context, entry Entry) error {
	if err := s.Next.Upsert(ctx, entry); err != nil {
		return err
	}
	s.remember(ctx, entry)
	return nil
}

func (s *RedisStore) remember(ctx context.Context, entry Entry) {
	payload, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := s.Client.Set(ctx, s.Key(entry.Address), payload, s.TTL).Err(); err != nil {
		log.WithError(err).WithField("address", entry.Address).Warn("redis geocode write failed")
	}
}

var _ Store = (*RedisStore)(nil)
