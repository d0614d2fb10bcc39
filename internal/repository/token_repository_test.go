package repository

import (
	"context"
	"testing"
	"time"

	redisapp "wedsite/internal/storage/redis"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockedTokenRepo(t *testing.T) (*RedisTokenRepo, redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	return NewRedisTokenRepo(&redisapp.Client{Client: db}), mock
}

func TestRedisTokenRepo_SaveAndGet(t *testing.T) {
	repo, mock := newMockedTokenRepo(t)
	ctx := context.Background()

	key := "refresh:user-1:tok-1"
	mock.ExpectSet(key, "1", time.Hour).SetVal("OK")
	mock.ExpectGet(key).SetVal("1")

	require.NoError(t, repo.SaveRefreshToken(ctx, "user-1", "tok-1", time.Hour))

	ok, err := repo.GetRefreshToken(ctx, "user-1", "tok-1")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisTokenRepo_GetMissing(t *testing.T) {
	repo, mock := newMockedTokenRepo(t)

	mock.ExpectGet("refresh:user-1:gone").RedisNil()

	ok, err := repo.GetRefreshToken(context.Background(), "user-1", "gone")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisTokenRepo_DeleteAllUserTokens(t *testing.T) {
	repo, mock := newMockedTokenRepo(t)

	mock.ExpectKeys("refresh:user-1:*").SetVal([]string{"refresh:user-1:a", "refresh:user-1:b"})
	mock.ExpectDel("refresh:user-1:a", "refresh:user-1:b").SetVal(2)

	require.NoError(t, repo.DeleteAllUserTokens(context.Background(), "user-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
