package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/set-night/astrocalc/internal/config"
	"github.com/set-night/astrocalc/internal/domain"
	"github.com/set-night/astrocalc/internal/kvstore"
)

// ChatHistoryService keeps each user's AI chat in the local store, trimmed to the
// retention window and the message cap.
type ChatHistoryService struct {
	store kvstore.Store
	now   func() time.Time

	// mu serializes read-modify-write cycles; updates arrive on concurrent goroutines.
	mu sync.Mutex
}

func NewChatHistoryService(store kvstore.Store) *ChatHistoryService {
	return &ChatHistoryService{store: store, now: time.Now}
}

func chatKey(userID string) string {
	return config.ChatMessagesKeyPrefix + userID
}

// LoadMessages returns the user's messages that are still inside the retention window.
// Storage errors are logged and produce an empty list.
func (s *ChatHistoryService) LoadMessages(ctx context.Context, userID string) []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.read(ctx, chatKey(userID))
	if err != nil {
		slog.Error("load chat messages", "error", err, "user_id", userID)
		return []domain.ChatMessage{}
	}
	if session == nil {
		return []domain.ChatMessage{}
	}

	kept, removed := s.filter(session.Messages)
	if removed > 0 {
		session.Messages = kept
		if err := s.write(ctx, chatKey(userID), session); err != nil {
			slog.Error("compact chat messages", "error", err, "user_id", userID)
		}
	}
	return kept
}

// AddMessage stamps msg with the current time and appends it. The bool reports whether it was persisted.
func (s *ChatHistoryService) AddMessage(ctx context.Context, userID string, msg domain.NewChatMessage) (domain.ChatMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	stored := domain.ChatMessage{
		ID:        msg.ID,
		Text:      msg.Text,
		IsUser:    msg.IsUser,
		Timestamp: now,
		UserID:    userID,
	}
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}

	key := chatKey(userID)
	session, err := s.read(ctx, key)
	if err != nil {
		// An unreadable blob is replaced rather than blocking the chat.
		slog.Error("read chat messages before append", "error", err, "user_id", userID)
		session = nil
	}
	if session == nil {
		session = &domain.ChatSession{CreatedAt: now}
	}

	kept, _ := s.filter(session.Messages)
	kept = append(kept, stored)
	if len(kept) > config.MaxStoredMessages {
		kept = kept[len(kept)-config.MaxStoredMessages:]
	}
	session.Messages = kept
	session.LastActivity = now

	if err := s.write(ctx, key, session); err != nil {
		slog.Error("save chat message", "error", err, "user_id", userID)
		return stored, false
	}
	return stored, true
}

func (s *ChatHistoryService) ClearMessages(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, chatKey(userID)); err != nil {
		return fmt.Errorf("clear chat messages: %w", err)
	}
	return nil
}

// CleanupExpired applies the retention filter to every stored chat and returns how
// many blobs were rewritten.
func (s *ChatHistoryService) CleanupExpired(ctx context.Context) int {
	keys, err := s.store.Keys(ctx, config.ChatMessagesKeyPrefix)
	if err != nil {
		slog.Error("list chat keys", "error", err)
		return 0
	}

	var cleaned int
	for _, key := range keys {
		if ctx.Err() != nil {
			break
		}
		if s.cleanupKey(ctx, key) {
			cleaned++
		}
	}

	if cleaned > 0 {
		slog.Info("expired chat messages cleaned", "users", cleaned, "scanned", len(keys))
	}
	return cleaned
}

func (s *ChatHistoryService) cleanupKey(ctx context.Context, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID := strings.TrimPrefix(key, config.ChatMessagesKeyPrefix)
	session, err := s.read(ctx, key)
	if err != nil || session == nil {
		if err != nil {
			slog.Warn("skip unreadable chat blob", "error", err, "user_id", userID)
		}
		return false
	}

	kept, removed := s.filter(session.Messages)
	if removed == 0 {
		return false
	}
	session.Messages = kept
	if err := s.write(ctx, key, session); err != nil {
		slog.Error("rewrite chat blob", "error", err, "user_id", userID)
		return false
	}
	return true
}

// filter drops messages older than the retention window.
func (s *ChatHistoryService) filter(msgs []domain.ChatMessage) ([]domain.ChatMessage, int) {
	cutoff := s.now().Add(-config.ChatRetention)
	kept := make([]domain.ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		if !m.Timestamp.Before(cutoff) {
			kept = append(kept, m)
		}
	}
	return kept, len(msgs) - len(kept)
}

// read returns nil, nil when the key does not exist.
func (s *ChatHistoryService) read(ctx context.Context, key string) (*domain.ChatSession, error) {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var session domain.ChatSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("decode chat session: %w", err)
	}
	return &session, nil
}

func (s *ChatHistoryService) write(ctx context.Context, key string, session *domain.ChatSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode chat session: %w", err)
	}
	return s.store.Set(ctx, key, string(raw))
}
