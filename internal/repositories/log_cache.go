package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/exercise-tracker/internal/logger"
	"github.com/sbilibin2017/exercise-tracker/internal/models"
)

// LogCacheRepository caches whole user documents in Redis for log reads.
type LogCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached documents
}

// NewLogCacheRepository creates a new cache repository with the given TTL.
func NewLogCacheRepository(client *redis.Client, expiration time.Duration) *LogCacheRepository {
	return &LogCacheRepository{
		client: client,
		exp:    expiration,
	}
}

// setIfNotOlder overwrites the cached document unless the cached one has more entries.
// Logs only grow, so the entry count orders document versions.
var setIfNotOlder = redis.NewScript(`
local cur = redis.call('HGET', KEYS[1], 'entries')
if cur and tonumber(cur) > tonumber(ARGV[2]) then
	return 0
end
redis.call('HSET', KEYS[1], 'doc', ARGV[1], 'entries', ARGV[2])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

func logCacheKey(userID string) string {
	return fmt.Sprintf("exercise_log:%s", userID)
}

// Get returns the cached document, or nil on a cache miss.
func (r *LogCacheRepository) Get(ctx context.Context, userID string) (*models.UserDB, error) {
	key := logCacheKey(userID)

	val, err := r.client.HGet(ctx, key, "doc").Bytes()
	if err == redis.Nil {
		logger.Log.Debugw("cache miss", "key", key)
		return nil, nil
	}
	if err != nil {
		logger.Log.Infow("cache",
			"key", key,
			"error", err,
		)
		return nil, err
	}

	var user models.UserDB
	if err := json.Unmarshal(val, &user); err != nil {
		logger.Log.Infow("cache",
			"key", key,
			"value", string(val),
			"error", err,
		)
		return nil, err
	}

	logger.Log.Debugw("cache hit", "key", key, "entries", len(user.Logs))
	return &user, nil
}

// Set stores the document under the user's key with the configured TTL.
// A document older than the cached one is dropped, so a slow reader cannot
// replace the result of a later append.
func (r *LogCacheRepository) Set(ctx context.Context, user *models.UserDB) error {
	key := logCacheKey(user.UserID)

	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	stored, err := setIfNotOlder.Run(ctx, r.client,
		[]string{key},
		payload, len(user.Logs), r.exp.Milliseconds(),
	).Int()

	logger.Log.Infow("cache",
		"key", key,
		"entries", len(user.Logs),
		"stored", stored == 1,
		"error", err,
	)

	return err
}

// Delete drops the cached document of a user.
func (r *LogCacheRepository) Delete(ctx context.Context, userID string) error {
	key := logCacheKey(userID)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow("cache",
		"key", key,
		"result", "deleted",
		"error", err,
	)

	return err
}
