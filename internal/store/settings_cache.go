package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GregMSThompson/expense-tracker/internal/models"
	"github.com/GregMSThompson/expense-tracker/pkg/logger"
)

type settingsBackend interface {
	Get(ctx context.Context, uid string) (models.Settings, error)
	Set(ctx context.Context, uid string, settings models.Settings) error
}

// cachedSettingsStore is a read-through Redis cache in front of the settings
// document. Redis failures degrade to the backend.
type cachedSettingsStore struct {
	backend settingsBackend
	rdb     *redis.Client
	ttl     time.Duration
}

func NewCachedSettingsStore(backend settingsBackend, rdb *redis.Client, ttl time.Duration) *cachedSettingsStore {
	return &cachedSettingsStore{backend: backend, rdb: rdb, ttl: ttl}
}

func settingsKey(uid string) string {
	return "settings:" + uid
}

func (s *cachedSettingsStore) Get(ctx context.Context, uid string) (models.Settings, error) {
	log := logger.FromContext(ctx)
	key := settingsKey(uid)

	val, err := s.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		var cached models.Settings
		if jerr := json.Unmarshal([]byte(val), &cached); jerr == nil {
			return cached, nil
		}
		log.Warn("discarding malformed cached settings", "key", key)
	case !errors.Is(err, redis.Nil):
		log.Warn("settings cache read failed", "key", key, "error", err)
	}

	settings, err := s.backend.Get(ctx, uid)
	if err != nil {
		return models.Settings{}, err
	}

	b, err := json.Marshal(settings)
	if err == nil {
		err = s.rdb.Set(ctx, key, b, s.ttl).Err()
	}
	if err != nil {
		log.Warn("settings cache write failed", "key", key, "error", err)
	}
	return settings, nil
}

func (s *cachedSettingsStore) Set(ctx context.Context, uid string, settings models.Settings) error {
	if err := s.backend.Set(ctx, uid, settings); err != nil {
		return err
	}
	if err := s.rdb.Del(ctx, settingsKey(uid)).Err(); err != nil {
		logger.FromContext(ctx).Warn("settings cache invalidation failed", "uid", uid, "error", err)
	}
	return nil
}
