package repository

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolverWithoutDatabaseURLIsEphemeral(t *testing.T) {
	var calls atomic.Int32
	open := func(ctx context.Context, url string) (*sql.DB, error) {
		calls.Add(1)
		return nil, errors.New("should not be called")
	}
	r := NewResolver("", "", open, discardLogger())

	assert.Equal(t, BackendEphemeral, r.Kind(context.Background()))
	assert.Equal(t, int32(0), calls.Load())

	u, err := r.GetUserByOpenID(context.Background(), DevUserOpenID)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.NoError(t, r.Close())
}

func TestResolverDegradesOnConnectFailure(t *testing.T) {
	var calls atomic.Int32
	open := func(ctx context.Context, url string) (*sql.DB, error) {
		calls.Add(1)
		return nil, errors.New("dial tcp: connection refused")
	}
	r := NewResolver("mysql://root@127.0.0.1:1/app", "", open, discardLogger())

	for i := 0; i < 3; i++ {
		sub, err := r.GetOrCreateSubscription(context.Background(), 42)
		require.NoError(t, err)
		assert.Equal(t, int64(1), sub.ID)
	}
	assert.Equal(t, BackendEphemeral, r.Kind(context.Background()))
	assert.Equal(t, int32(1), calls.Load(), "backend is resolved once")
}

func TestResolverUsesDurableBackend(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectQuery("FROM users WHERE openId").WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectClose()

	open := func(ctx context.Context, url string) (*sql.DB, error) { return db, nil }
	r := NewResolver("mysql://root@db:3306/app", "", open, discardLogger())

	u, err := r.GetUserByOpenID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.Equal(t, BackendDurable, r.Kind(context.Background()))

	require.NoError(t, r.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolverDoesNotSwallowDurableErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	mock.ExpectQuery("FROM campaigns WHERE id").WillReturnError(errors.New("lock wait timeout"))

	open := func(ctx context.Context, url string) (*sql.DB, error) { return db, nil }
	r := NewResolver("mysql://root@db:3306/app", "", open, discardLogger())

	_, err = r.GetCampaignByID(context.Background(), 1)
	var storeErr *StoreError
	assert.ErrorAs(t, err, &storeErr)
}
