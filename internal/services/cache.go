package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const boardKeyPrefix = "catdraft:board:"

// BoardCache stores rendered draft boards keyed by a hash of the request that
// produced them. A nil *BoardCache is valid and never hits.
type BoardCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Entry
}

func NewBoardCache(client *redis.Client, ttl time.Duration) *BoardCache {
	return &BoardCache{
		client: client,
		ttl:    ttl,
		logger: logrus.WithField("component", "board_cache"),
	}
}

// ConnectRedis parses the URL and pings the server
func ConnectRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// BoardKey hashes every input that changes a board. parts are JSON encoded in order.
func BoardKey(kind string, parts ...interface{}) (string, error) {
	h := sha256.New()
	h.Write([]byte(kind))
	for _, p := range parts {
		data, err := json.Marshal(p)
		if err != nil {
			return "", fmt.Errorf("failed to hash cache key part: %w", err)
		}
		h.Write([]byte{0})
		h.Write(data)
	}
	return boardKeyPrefix + kind + ":" + hex.EncodeToString(h.Sum(nil)), nil
}

// SeasonBoardKey is the cache key for the board of a persisted draft. It is
// dropped whenever that draft changes.
func SeasonBoardKey(season int) string {
	return boardKeyPrefix + "season:" + strconv.Itoa(season)
}

// Get returns the cached payload. A miss is (nil, false, nil).
func (bc *BoardCache) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	if bc == nil {
		return nil, false, nil
	}
	result, err := bc.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		bc.logger.WithField("key", key).Debug("Cache miss for board")
		return nil, false, nil
	}
	if err != nil {
		bc.logger.WithError(err).WithField("key", key).Error("Failed to get board from cache")
		return nil, false, err
	}
	return json.RawMessage(result), true, nil
}

func (bc *BoardCache) Set(ctx context.Context, key string, value interface{}) error {
	if bc == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal board: %w", err)
	}
	if err := bc.client.Set(ctx, key, data, bc.ttl).Err(); err != nil {
		bc.logger.WithError(err).WithField("key", key).Error("Failed to set board in cache")
		return err
	}
	return nil
}

// Invalidate drops cached boards
func (bc *BoardCache) Invalidate(ctx context.Context, keys ...string) error {
	if bc == nil || len(keys) == 0 {
		return nil
	}
	return bc.client.Del(ctx, keys...).Err()
}
