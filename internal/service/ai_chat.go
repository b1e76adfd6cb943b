package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/set-night/astrocalc/internal/config"
	"github.com/set-night/astrocalc/internal/domain"
	"github.com/set-night/astrocalc/internal/webhook"
)

// WebhookPoster is implemented by *webhook.Client.
type WebhookPoster interface {
	Post(ctx context.Context, url string, payload any, opts webhook.Options) webhook.Result
}

const (
	msgEmptyQuestion = "Lütfen bir soru yazın."
	msgActiveRequest = "Önceki sorunuz hâlâ yanıtlanıyor, lütfen biraz bekleyin."
	msgEmptyAnswer   = "Yanıt alınamadı. Lütfen tekrar deneyin."
)

type AIChatService struct {
	history *ChatHistoryService
	poster  WebhookPoster
	url     string
	source  string
	now     func() time.Time

	inflight sync.Map // user id -> struct{}
}

func NewAIChatService(history *ChatHistoryService, poster WebhookPoster, url, source string) *AIChatService {
	return &AIChatService{
		history: history,
		poster:  poster,
		url:     url,
		source:  source,
		now:     time.Now,
	}
}

// SendAIChatMessage forwards question to the chat workflow and records both sides of the turn.
// Only one question per user may be in flight.
func (s *AIChatService) SendAIChatMessage(ctx context.Context, profile *domain.UserProfile, question string) domain.ChatReply {
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.ChatReply{Error: msgEmptyQuestion}
	}

	if _, busy := s.inflight.LoadOrStore(profile.ID, struct{}{}); busy {
		return domain.ChatReply{Error: msgActiveRequest}
	}
	defer s.inflight.Delete(profile.ID)

	s.history.AddMessage(ctx, profile.ID, domain.NewChatMessage{Text: question, IsUser: true})

	payload := webhook.NewChatPayload(question, profile.ID, profile.DisplayName(), s.source, s.now())
	res := s.poster.Post(ctx, s.url, payload, webhook.Options{
		Timeout: config.ChatWebhookTimeout,
		Retries: config.WebhookRetries,
	})
	if !res.Success {
		slog.Warn("chat webhook failed", "user_id", profile.ID, "status", res.StatusCode, "error", res.Error)
		return domain.ChatReply{Error: res.Error}
	}

	answer := webhook.FormatResponseToText(res.Body)
	if answer == "" {
		return domain.ChatReply{Error: msgEmptyAnswer}
	}

	s.history.AddMessage(ctx, profile.ID, domain.NewChatMessage{Text: answer})
	return domain.ChatReply{Success: true, Response: answer}
}

// IsBusy reports whether a question from userID is still waiting for an answer.
func (s *AIChatService) IsBusy(userID string) bool {
	_, ok := s.inflight.Load(userID)
	return ok
}
