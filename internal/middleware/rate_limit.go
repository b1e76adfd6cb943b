package middleware

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"golang.org/x/time/rate"

	"github.com/set-night/astrocalc/internal/config"
)

// LimiterStore keeps a token bucket per chat and forgets chats that went quiet.
type LimiterStore struct {
	mu              sync.Mutex
	limit           rate.Limit
	burst           int
	chats           map[int64]*limiterEntry
	cleanupInterval time.Duration
	idleLifetime    time.Duration
	stopCh          chan struct{}
	stopOnce        sync.Once
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLimiterStore allows limitPerMinute messages per chat with the given burst.
func NewLimiterStore(limitPerMinute, burst int) *LimiterStore {
	if limitPerMinute <= 0 {
		limitPerMinute = 12
	}
	if burst <= 0 {
		burst = 1
	}
	s := &LimiterStore{
		limit:           rate.Every(time.Minute / time.Duration(limitPerMinute)),
		burst:           burst,
		chats:           map[int64]*limiterEntry{},
		cleanupInterval: config.RateLimitCleanup,
		idleLifetime:    config.RateLimitIdleLifetime,
		stopCh:          make(chan struct{}),
	}
	go s.cleanupLoop()
	return s
}

func (s *LimiterStore) cleanupLoop() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.evictIdle(time.Now())
		case <-s.stopCh:
			return
		}
	}
}

func (s *LimiterStore) evictIdle(now time.Time) int {
	cutoff := now.Add(-s.idleLifetime)
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for id, e := range s.chats {
		if e.lastSeen.Before(cutoff) {
			delete(s.chats, id)
			n++
		}
	}
	return n
}

func (s *LimiterStore) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

func (s *LimiterStore) limiter(chatID int64) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.chats[chatID]; ok {
		e.lastSeen = time.Now()
		return e.limiter
	}
	l := rate.NewLimiter(s.limit, s.burst)
	s.chats[chatID] = &limiterEntry{limiter: l, lastSeen: time.Now()}
	return l
}

func (s *LimiterStore) Allow(chatID int64) bool {
	return s.limiter(chatID).Allow()
}

// RateLimit drops text messages from chats that exceed their budget. Callbacks are not limited.
func RateLimit(store *LimiterStore) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if update.Message == nil {
				next(ctx, b, update)
				return
			}

			chatID := update.Message.Chat.ID
			if !store.Allow(chatID) {
				slog.Debug("rate limited", "chat_id", chatID)
				b.SendMessage(ctx, &bot.SendMessageParams{
					ChatID: chatID,
					Text:   "⏳ Çok hızlı mesaj gönderiyorsunuz. Lütfen biraz bekleyin.",
				})
				return
			}

			next(ctx, b, update)
		}
	}
}
