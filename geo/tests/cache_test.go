package tests

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/devmanorg/star-burger/geo"
	"github.com/devmanorg/star-burger/geo/mocks"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]geo.Entry
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: make(map[string]geo.Entry)}
}

func (s *memoryStore) Get(_ context.Context, address string) (*geo.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[address]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (s *memoryStore) Upsert(_ context.Context, entry geo.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.Address] = entry
	return nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

const redSquare = "Москва, Красная площадь, 1"

func TestCache_Resolve_HitWithinWindow(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	provider := mocks.NewProvider(t)
	clock := newClock()
	cache := geo.NewCache(store, provider, geo.WithClock(clock.Now))

	expected := &geo.Coordinates{Lat: 55.753595, Lon: 37.621031}
	provider.On("Geocode", mock.Anything, redSquare).Return(expected, nil).Once()

	first, err := cache.Resolve(ctx, redSquare)
	require.NoError(t, err)
	require.NotNil(t, first)

	clock.Advance(6 * 24 * time.Hour)
	second, err := cache.Resolve(ctx, redSquare)
	require.NoError(t, err)

	assert.Equal(t, *expected, *first)
	assert.Equal(t, *first, *second)
	provider.AssertNumberOfCalls(t, "Geocode", 1)
}

func TestCache_Resolve_NegativeResultRetriedAfterWindow(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	provider := mocks.NewProvider(t)
	clock := newClock()
	cache := geo.NewCache(store, provider, geo.WithClock(clock.Now))

	provider.On("Geocode", mock.Anything, "nowhere street").Return(nil, nil).Once()

	coords, err := cache.Resolve(ctx, "nowhere street")
	require.NoError(t, err)
	assert.Nil(t, coords)

	cached, _ := store.Get(ctx, "nowhere street")
	require.NotNil(t, cached)
	assert.Nil(t, cached.Coordinates)

	clock.Advance(3 * 24 * time.Hour)
	coords, err = cache.Resolve(ctx, "nowhere street")
	require.NoError(t, err)
	assert.Nil(t, coords)
	provider.AssertNumberOfCalls(t, "Geocode", 1)

	found := &geo.Coordinates{Lat: 55.7, Lon: 37.6}
	provider.On("Geocode", mock.Anything, "nowhere street").Return(found, nil).Once()

	clock.Advance(4*24*time.Hour + time.Second)
	coords, err = cache.Resolve(ctx, "nowhere street")
	require.NoError(t, err)
	require.NotNil(t, coords)
	assert.Equal(t, *found, *coords)
	provider.AssertNumberOfCalls(t, "Geocode", 2)

	cached, _ = store.Get(ctx, "nowhere street")
	assert.Equal(t, clock.Now(), cached.UpdatedAt)
}

func TestCache_Resolve_EntryExactlyWindowOldIsStale(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	provider := mocks.NewProvider(t)
	clock := newClock()
	cache := geo.NewCache(store, provider, geo.WithClock(clock.Now))

	old := &geo.Coordinates{Lat: 1, Lon: 2}
	require.NoError(t, store.Upsert(ctx, geo.Entry{Address: "a", Coordinates: old, UpdatedAt: clock.Now()}))
	clock.Advance(geo.DefaultRefreshWindow)

	renewed := &geo.Coordinates{Lat: 3, Lon: 4}
	provider.On("Geocode", mock.Anything, "a").Return(renewed, nil).Once()

	coords, err := cache.Resolve(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, *renewed, *coords)
}

func TestCache_Resolve_TransientFailureIsNotPersisted(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	provider := mocks.NewProvider(t)
	cache := geo.NewCache(store, provider, geo.WithClock(newClock().Now))

	provider.On("Geocode", mock.Anything, redSquare).
		Return(nil, errors.Wrap(geo.ErrProviderUnavailable, "timeout")).Twice()

	for i := 0; i < 2; i++ {
		coords, err := cache.Resolve(ctx, redSquare)
		require.NoError(t, err)
		assert.Nil(t, coords)
	}

	assert.Empty(t, store.entries)
	provider.AssertNumberOfCalls(t, "Geocode", 2)
}

func TestCache_Resolve_StaleEntryAndProviderDown(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	provider := mocks.NewProvider(t)
	clock := newClock()
	cache := geo.NewCache(store, provider, geo.WithClock(clock.Now))

	stale := geo.Entry{Address: redSquare, Coordinates: &geo.Coordinates{Lat: 55.75, Lon: 37.62}, UpdatedAt: clock.Now()}
	require.NoError(t, store.Upsert(ctx, stale))
	clock.Advance(8 * 24 * time.Hour)

	provider.On("Geocode", mock.Anything, redSquare).Return(nil, geo.ErrProviderUnavailable).Once()

	coords, err := cache.Resolve(ctx, redSquare)
	require.NoError(t, err)
	assert.Nil(t, coords)

	kept, _ := store.Get(ctx, redSquare)
	assert.Equal(t, stale, *kept)
}

func TestCache_Resolve_InvalidProviderCoordinatesAreNotPersisted(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	provider := mocks.NewProvider(t)
	cache := geo.NewCache(store, provider)

	provider.On("Geocode", mock.Anything, "x").Return(&geo.Coordinates{Lat: 120, Lon: 10}, nil).Once()

	coords, err := cache.Resolve(ctx, "x")
	require.NoError(t, err)
	assert.Nil(t, coords)
	assert.Empty(t, store.entries)
}

func TestCache_Resolve_BlankAddress(t *testing.T) {
	store := mocks.NewStore(t)
	provider := mocks.NewProvider(t)
	cache := geo.NewCache(store, provider)

	coords, err := cache.Resolve(context.Background(), "   ")
	assert.NoError(t, err)
	assert.Nil(t, coords)
}

func TestCache_Resolve_TrimsAddress(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	provider := mocks.NewProvider(t)
	cache := geo.NewCache(store, provider)

	provider.On("Geocode", mock.Anything, redSquare).Return(&geo.Coordinates{Lat: 55, Lon: 37}, nil).Once()

	_, err := cache.Resolve(ctx, "  "+redSquare+"\n")
	require.NoError(t, err)
	_, ok := store.entries[redSquare]
	assert.True(t, ok)
}

func TestCache_Resolve_PersistenceErrors(t *testing.T) {
	ctx := context.Background()
	dbDown := errors.New("connection refused")

	tests := []struct {
		name         string
		prepareMocks func(store *mocks.Store, provider *mocks.Provider)
		expectedOp   string
	}{
		{
			name: "lookup_fails",
			prepareMocks: func(store *mocks.Store, provider *mocks.Provider) {
				store.On("Get", mock.Anything, "addr").Return(nil, dbDown).Once()
			},
			expectedOp: "lookup",
		},
		{
			name: "upsert_fails",
			prepareMocks: func(store *mocks.Store, provider *mocks.Provider) {
				store.On("Get", mock.Anything, "addr").Return(nil, nil).Once()
				provider.On("Geocode", mock.Anything, "addr").Return(&geo.Coordinates{Lat: 1, Lon: 1}, nil).Once()
				store.On("Upsert", mock.Anything, mock.AnythingOfType("geo.Entry")).Return(dbDown).Once()
			},
			expectedOp: "upsert",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			store := mocks.NewStore(t)
			provider := mocks.NewProvider(t)
			testCase.prepareMocks(store, provider)

			coords, err := geo.NewCache(store, provider).Resolve(ctx, "addr")

			assert.Nil(t, coords)
			var persistenceErr *geo.PersistenceError
			require.True(t, errors.As(err, &persistenceErr))
			assert.Equal(t, testCase.expectedOp, persistenceErr.Op)
			assert.ErrorIs(t, err, dbDown)
		})
	}
}

func TestCache_Resolve_RefreshWindowOption(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	provider := mocks.NewProvider(t)
	clock := newClock()
	cache := geo.NewCache(store, provider, geo.WithClock(clock.Now), geo.WithRefreshWindow(time.Hour))

	provider.On("Geocode", mock.Anything, "a").Return(&geo.Coordinates{Lat: 1, Lon: 1}, nil).Twice()

	_, err := cache.Resolve(ctx, "a")
	require.NoError(t, err)
	clock.Advance(2 * time.Hour)
	_, err = cache.Resolve(ctx, "a")
	require.NoError(t, err)

	provider.AssertNumberOfCalls(t, "Geocode", 2)
}
