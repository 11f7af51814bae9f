package geo

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const DefaultRefreshWindow = 7 * 24 * time.Hour

// Entry is one cached lookup. Nil Coordinates is a negative result: the provider
// answered and found nothing.
type Entry struct {
	Address     string       `json:"address"`
	Coordinates *Coordinates `json:"coordinates"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type Store interface {
	// Get returns nil and no error on a miss.
	Get(ctx context.Context, address string) (*Entry, error)
	Upsert(ctx context.Context, entry Entry) error
}

// Resolver is what the ranking code depends on. Nil coordinates with a nil error
// mean the address is unresolvable; an error means the cache store failed.
type Resolver interface {
	Resolve(ctx context.Context, address string) (*Coordinates, error)
}

type PersistenceError struct {
	Op      string
	Address string
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("geocode cache %s %q: %v", e.Op, e.Address, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Cache resolves addresses through Store, asking Provider only on a miss or when
// the stored entry is older than the refresh window.
//
// Two concurrent misses for the same address both reach the provider and the
// later upsert wins. Both writes carry the same answer in practice, so this is
// left as is.
type Cache struct {
	store    Store
	provider Provider
	window   time.Duration
	now      func() time.Time
}

type Option func(*Cache)

func WithRefreshWindow(window time.Duration) Option {
	return func(c *Cache) {
		if window > 0 {
			c.window = window
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

func NewCache(store Store, provider Provider, opts ...Option) *Cache {
	c := &Cache{
		store:    store,
		provider: provider,
		window:   DefaultRefreshWindow,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) Resolve(ctx context.Context, address string) (*Coordinates, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, nil
	}

	entry, err := c.store.Get(ctx, address)
	if err != nil {
		return nil, &PersistenceError{Op: "lookup", Address: address, Err: err}
	}
	if entry != nil && c.fresh(entry) {
		return cloneCoordinates(entry.Coordinates), nil
	}

	coords, err := c.provider.Geocode(ctx, address)
	if err != nil {
		log.WithError(err).WithField("address", address).Warn("geocoding failed, address left unresolved")
		return nil, nil
	}
	if coords != nil && !coords.Valid() {
		log.WithFields(log.Fields{"address": address, "lat": coords.Lat, "lon": coords.Lon}).
			Warn("provider returned invalid coordinates, address left unresolved")
		return nil, nil
	}

	fresh := Entry{Address: address, Coordinates: cloneCoordinates(coords), UpdatedAt: c.now()}
	if err := c.store.Upsert(ctx, fresh); err != nil {
		return nil, &PersistenceError{Op: "upsert", Address: address, Err: err}
	}

	if coords == nil {
		log.WithField("address", address).Info("address not found by provider, negative result cached")
	}
	return cloneCoordinates(coords), nil
}

func (c *Cache) fresh(entry *Entry) bool {
	return c.now().Sub(entry.UpdatedAt) < c.window
}

func cloneCoordinates(c *Coordinates) *Coordinates {
	if c == nil {
		return nil
	}
	copied := *c
	return &copied
}

var _ Resolver = (*Cache)(nil)
