package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/set-night/astrocalc/internal/config"
	"github.com/set-night/astrocalc/internal/domain"
	"github.com/set-night/astrocalc/internal/kvstore"
)

// HoroscopeCacheService stores one horoscope text per user and day with a 24h lifetime
// counted from the write.
type HoroscopeCacheService struct {
	store kvstore.Store
	now   func() time.Time
}

func NewHoroscopeCacheService(store kvstore.Store) *HoroscopeCacheService {
	return &HoroscopeCacheService{store: store, now: time.Now}
}

func horoscopeKey(userID, day string) string {
	return config.HoroscopeCacheKeyPrefix + userID + "_" + day
}

func (s *HoroscopeCacheService) day(date time.Time) string {
	if date.IsZero() {
		date = s.now()
	}
	return date.Format(config.CacheDateLayout)
}

// GetCached returns the entry for userID on date (today when zero) and whether it is expired.
// A miss returns nil and true.
func (s *HoroscopeCacheService) GetCached(ctx context.Context, userID string, date time.Time) (*domain.CachedHoroscope, bool) {
	key := horoscopeKey(userID, s.day(date))
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			slog.Error("read horoscope cache", "error", err, "key", key)
		}
		return nil, true
	}

	var rec domain.CachedHoroscope
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		slog.Warn("undecodable horoscope cache entry", "error", err, "key", key)
		return nil, true
	}
	return &rec, rec.IsExpired(s.now())
}

func (s *HoroscopeCacheService) Cache(ctx context.Context, userID, comment string, date time.Time) error {
	now := s.now()
	day := s.day(date)
	rec := domain.CachedHoroscope{
		Comment:       comment,
		HoroscopeDate: day,
		UserID:        userID,
		CachedAt:      now,
		ExpiresAt:     now.Add(config.HoroscopeCacheTTL),
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode horoscope cache: %w", err)
	}
	if err := s.store.Set(ctx, horoscopeKey(userID, day), string(raw)); err != nil {
		return fmt.Errorf("write horoscope cache: %w", err)
	}
	return nil
}

// ClearExpiredCache removes expired and undecodable entries and returns how many were removed.
func (s *HoroscopeCacheService) ClearExpiredCache(ctx context.Context) int {
	keys, err := s.store.Keys(ctx, config.HoroscopeCacheKeyPrefix)
	if err != nil {
		slog.Error("list horoscope cache keys", "error", err)
		return 0
	}

	now := s.now()
	var removed int
	for _, key := range keys {
		if ctx.Err() != nil {
			slog.Warn("horoscope cache cleanup interrupted", "error", ctx.Err(), "removed", removed)
			break
		}
		raw, err := s.store.Get(ctx, key)
		if err != nil {
			if !errors.Is(err, kvstore.ErrNotFound) {
				slog.Warn("read horoscope cache entry", "error", err, "key", key)
			}
			continue
		}

		var rec domain.CachedHoroscope
		if err := json.Unmarshal([]byte(raw), &rec); err == nil && !rec.IsExpired(now) {
			continue
		}

		if err := s.store.Delete(ctx, key); err != nil {
			slog.Warn("delete horoscope cache entry", "error", err, "key", key)
			continue
		}
		removed++
	}

	if removed > 0 {
		slog.Info("expired horoscope cache cleared", "removed", removed, "scanned", len(keys))
	}
	return removed
}

// ClearUserCache removes every cached day for userID. Keys of other users that
// merely share the "<userID>_" prefix are left alone: only a date suffix matches.
func (s *HoroscopeCacheService) ClearUserCache(ctx context.Context, userID string) int {
	prefix := config.HoroscopeCacheKeyPrefix + userID + "_"
	keys, err := s.store.Keys(ctx, prefix)
	if err != nil {
		slog.Error("list user horoscope cache keys", "error", err, "user_id", userID)
		return 0
	}

	var removed int
	for _, key := range keys {
		if _, err := time.Parse(config.CacheDateLayout, strings.TrimPrefix(key, prefix)); err != nil {
			continue
		}
		if err := s.store.Delete(ctx, key); err != nil {
			slog.Warn("delete horoscope cache entry", "error", err, "key", key)
			continue
		}
		removed++
	}
	return removed
}
