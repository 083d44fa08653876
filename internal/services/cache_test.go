package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardKey(t *testing.T) {
	a, err := BoardKey("evaluate", map[string]int{"pick": 1})
	require.NoError(t, err)
	b, err := BoardKey("evaluate", map[string]int{"pick": 1})
	require.NoError(t, err)
	c, err := BoardKey("evaluate", map[string]int{"pick": 2})
	require.NoError(t, err)
	d, err := BoardKey("tiers", map[string]int{"pick": 1})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
	assert.Contains(t, a, "catdraft:board:evaluate:")

	_, err = BoardKey("evaluate", func() {})
	assert.Error(t, err)
}

func TestBoardCache_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewBoardCache(db, time.Minute)
	ctx := context.Background()

	t.Run("hit", func(t *testing.T) {
		mock.ExpectGet("k1").SetVal(`{"pick_index":3}`)
		data, ok, err := cache.Get(ctx, "k1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.JSONEq(t, `{"pick_index":3}`, string(data))
	})

	t.Run("miss", func(t *testing.T) {
		mock.ExpectGet("k2").RedisNil()
		data, ok, err := cache.Get(ctx, "k2")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, data)
	})

	t.Run("error", func(t *testing.T) {
		mock.ExpectGet("k3").SetErr(errors.New("connection refused"))
		_, ok, err := cache.Get(ctx, "k3")
		assert.Error(t, err)
		assert.False(t, ok)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardCache_SetAndInvalidate(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewBoardCache(db, 10*time.Minute)
	ctx := context.Background()

	mock.ExpectSet("k1", []byte(`{"round":2}`), 10*time.Minute).SetVal("OK")
	require.NoError(t, cache.Set(ctx, "k1", map[string]int{"round": 2}))

	mock.ExpectDel("k1", "k2").SetVal(2)
	require.NoError(t, cache.Invalidate(ctx, "k1", "k2"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardCache_Nil(t *testing.T) {
	var cache *BoardCache
	_, ok, err := cache.Get(context.Background(), "k")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, cache.Set(context.Background(), "k", 1))
	assert.NoError(t, cache.Invalidate(context.Background(), "k"))
}
