package tests

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/devmanorg/star-burger/geo"
	"github.com/devmanorg/star-burger/geo/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupStoreTestDB(t *testing.T) (*geo.PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return geo.NewPostgresStore(mockDB), sqlMock
}

func TestPostgresStore_Get(t *testing.T) {
	updated := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		prepareMocks  func(sqlMock sqlmock.Sqlmock)
		expectedEntry *geo.Entry
		wantErr       bool
	}{
		{
			name: "hit_with_coordinates",
			prepareMocks: func(sqlMock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"lat", "lon", "updated_at"}).AddRow(55.75, 37.62, updated)
				sqlMock.ExpectQuery("SELECT lat, lon, updated_at").WithArgs(redSquare).WillReturnRows(rows)
			},
			expectedEntry: &geo.Entry{Address: redSquare, Coordinates: &geo.Coordinates{Lat: 55.75, Lon: 37.62}, UpdatedAt: updated},
		},
		{
			name: "hit_negative",
			prepareMocks: func(sqlMock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"lat", "lon", "updated_at"}).AddRow(nil, nil, updated)
				sqlMock.ExpectQuery("SELECT lat, lon, updated_at").WithArgs(redSquare).WillReturnRows(rows)
			},
			expectedEntry: &geo.Entry{Address: redSquare, UpdatedAt: updated},
		},
		{
			name: "miss",
			prepareMocks: func(sqlMock sqlmock.Sqlmock) {
				sqlMock.ExpectQuery("SELECT lat, lon, updated_at").WithArgs(redSquare).WillReturnError(sql.ErrNoRows)
			},
		},
		{
			name: "db_error",
			prepareMocks: func(sqlMock sqlmock.Sqlmock) {
				sqlMock.ExpectQuery("SELECT lat, lon, updated_at").WithArgs(redSquare).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			store, sqlMock := setupStoreTestDB(t)
			testCase.prepareMocks(sqlMock)

			entry, err := store.Get(context.Background(), redSquare)

			if testCase.wantErr {
				assert.ErrorIs(t, err, sql.ErrConnDone)
			} else {
				require.NoError(t, err)
				assert.Equal(t, testCase.expectedEntry, entry)
			}
			assert.NoError(t, sqlMock.ExpectationsWereMet())
		})
	}
}

func TestPostgresStore_Upsert(t *testing.T) {
	updated := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("coordinates", func(t *testing.T) {
		store, sqlMock := setupStoreTestDB(t)
		sqlMock.ExpectExec("INSERT INTO geo_cache").
			WithArgs(redSquare, 55.75, 37.62, updated).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := store.Upsert(context.Background(), geo.Entry{
			Address:     redSquare,
			Coordinates: &geo.Coordinates{Lat: 55.75, Lon: 37.62},
			UpdatedAt:   updated,
		})
		require.NoError(t, err)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("negative_result_stores_nulls", func(t *testing.T) {
		store, sqlMock := setupStoreTestDB(t)
		sqlMock.ExpectExec("INSERT INTO geo_cache").
			WithArgs(redSquare, nil, nil, updated).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := store.Upsert(context.Background(), geo.Entry{Address: redSquare, UpdatedAt: updated})
		require.NoError(t, err)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("db_error", func(t *testing.T) {
		store, sqlMock := setupStoreTestDB(t)
		sqlMock.ExpectExec("INSERT INTO geo_cache").WillReturnError(sql.ErrConnDone)

		err := store.Upsert(context.Background(), geo.Entry{Address: redSquare, UpdatedAt: updated})
		assert.ErrorIs(t, err, sql.ErrConnDone)
	})
}

func setupRedisStore(t *testing.T) (*geo.RedisStore, *mocks.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	next := mocks.NewStore(t)
	return geo.NewRedisStore(client, next, geo.DefaultRefreshWindow), next, mr
}

func TestRedisStore_ReadThrough(t *testing.T) {
	ctx := context.Background()
	store, next, mr := setupRedisStore(t)

	entry := &geo.Entry{
		Address:     redSquare,
		Coordinates: &geo.Coordinates{Lat: 55.75, Lon: 37.62},
		UpdatedAt:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	next.On("Get", mock.Anything, redSquare).Return(entry, nil).Once()

	first, err := store.Get(ctx, redSquare)
	require.NoError(t, err)
	assert.Equal(t, entry, first)

	assert.True(t, mr.Exists(store.Key(redSquare)))
	assert.Equal(t, geo.DefaultRefreshWindow, mr.TTL(store.Key(redSquare)))

	second, err := store.Get(ctx, redSquare)
	require.NoError(t, err)
	assert.Equal(t, *entry.Coordinates, *second.Coordinates)
	assert.True(t, entry.UpdatedAt.Equal(second.UpdatedAt))
	next.AssertNumberOfCalls(t, "Get", 1)
}

func TestRedisStore_MissEverywhere(t *testing.T) {
	store, next, mr := setupRedisStore(t)
	next.On("Get", mock.Anything, "unknown").Return(nil, nil).Once()

	entry, err := store.Get(context.Background(), "unknown")

	require.NoError(t, err)
	assert.Nil(t, entry)
	assert.False(t, mr.Exists(store.Key("unknown")))
}

func TestRedisStore_UpsertWritesThrough(t *testing.T) {
	store, next, mr := setupRedisStore(t)
	entry := geo.Entry{Address: "nowhere", UpdatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	next.On("Upsert", mock.Anything, entry).Return(nil).Once()

	require.NoError(t, store.Upsert(context.Background(), entry))

	raw, err := mr.Get(store.Key("nowhere"))
	require.NoError(t, err)
	var cached geo.Entry
	require.NoError(t, json.Unmarshal([]byte(raw), &cached))
	assert.Nil(t, cached.Coordinates)
	assert.Equal(t, "nowhere", cached.Address)
}

func TestRedisStore_UpsertBackingStoreFails(t *testing.T) {
	store, next, mr := setupRedisStore(t)
	entry := geo.Entry{Address: "a", UpdatedAt: time.Now()}
	next.On("Upsert", mock.Anything, entry).Return(sql.ErrConnDone).Once()

	err := store.Upsert(context.Background(), entry)

	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.False(t, mr.Exists(store.Key("a")))
}

func TestRedisStore_RedisDownFallsBack(t *testing.T) {
	store, next, mr := setupRedisStore(t)
	mr.Close()

	entry := &geo.Entry{Address: "a", UpdatedAt: time.Now()}
	next.On("Get", mock.Anything, "a").Return(entry, nil).Once()
	next.On("Upsert", mock.Anything, *entry).Return(nil).Once()

	got, err := store.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, entry, got)
	assert.NoError(t, store.Upsert(context.Background(), *entry))
}
