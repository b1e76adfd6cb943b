package handler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/astrocalc/internal/domain"
	"github.com/set-night/astrocalc/internal/middleware"
	"github.com/set-night/astrocalc/internal/service"
	tg "github.com/set-night/astrocalc/internal/telegram"
)

func (h *Handler) handleDaily(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	profile := middleware.GetProfile(ctx)
	if profile == nil {
		return
	}
	h.sendDaily(ctx, b, update.Message.Chat.ID, profile)
}

func (h *Handler) sendDaily(ctx context.Context, b *bot.Bot, chatID int64, profile *domain.UserProfile) {
	sign, ok := service.SunSign(profile)
	if !ok {
		tg.Reply(ctx, b, chatID, "Günlük yorum için burcunu bilmem gerekiyor. Doğum bilgilerini /dogum ile ekleyebilirsin.")
		return
	}

	stopTyping := tg.StartTyping(ctx, b, chatID)
	horoscope, err := h.horoscopes.Daily(ctx, profile, time.Time{})
	stopTyping()

	if errors.Is(err, domain.ErrBirthDataMissing) {
		tg.Reply(ctx, b, chatID, "Günlük yorum için burcunu bilmem gerekiyor. Doğum bilgilerini /dogum ile ekleyebilirsin.")
		return
	}
	if err != nil {
		slog.Error("daily horoscope", "error", err, "user_id", profile.ID)
		tg.Reply(ctx, b, chatID, "❌ Günlük yorum hazırlanamadı. Lütfen daha sonra tekrar dene.")
		return
	}

	slog.Debug("daily horoscope served", "user_id", profile.ID, "source", horoscope.Source)
	if err := tg.SendLongMessage(ctx, b, chatID, formatHoroscope(horoscope, sign), nil); err != nil {
		slog.Error("send daily horoscope", "error", err, "user_id", profile.ID)
	}
}
