// Package scheduler runs the periodic local-store housekeeping.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// ChatCleaner is implemented by *service.ChatHistoryService.
type ChatCleaner interface {
	CleanupExpired(ctx context.Context) int
}

// CacheCleaner is implemented by *service.HoroscopeCacheService.
type CacheCleaner interface {
	ClearExpiredCache(ctx context.Context) int
}

type Service struct {
	Chats    ChatCleaner
	Cache    CacheCleaner
	Timeout  time.Duration
	Schedule string
}

// Start runs one cleanup pass immediately and then on Schedule. Stop the returned cron on shutdown.
func (s *Service) Start(ctx context.Context) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(s.Schedule, func() { s.RunCleanup(ctx) }); err != nil {
		return nil, fmt.Errorf("schedule cleanup %q: %w", s.Schedule, err)
	}

	go s.RunCleanup(ctx)
	c.Start()
	slog.Info("cleanup scheduler started", "schedule", s.Schedule)
	return c, nil
}

// RunCleanup drops expired chat messages and horoscope cache entries.
func (s *Service) RunCleanup(ctx context.Context) (chats, cache int) {
	if ctx.Err() != nil {
		return 0, 0
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	start := time.Now()
	if s.Chats != nil {
		chats = s.Chats.CleanupExpired(ctx)
	}
	if s.Cache != nil {
		cache = s.Cache.ClearExpiredCache(ctx)
	}
	slog.Info("cleanup finished", "chats_rewritten", chats, "cache_removed", cache, "took", time.Since(start))
	return chats, cache
}
