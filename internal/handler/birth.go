package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/astrocalc/internal/domain"
	"github.com/set-night/astrocalc/internal/middleware"
	"github.com/set-night/astrocalc/internal/service"
	tg "github.com/set-night/astrocalc/internal/telegram"
	"github.com/set-night/astrocalc/internal/webhook"
)

const birthFormHelp = "🪐 *Doğum haritası*\n\n" +
	"Bilgilerini tek mesajda şu biçimde gönder:\n" +
	"`/dogum %s`\n\n" +
	"Örnek:\n`/dogum Ayşe Yılmaz; 15.07.1990; 14:30; İstanbul`\n\n" +
	"Koordinatlar isteğe bağlıdır:\n`/dogum Ayşe Yılmaz; 15.07.1990; 14:30; İstanbul; 41.0082; 28.9784`"

// handleBirthForm parses the inline birth form, submits it and shows the reading.
func (h *Handler) handleBirthForm(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	profile := middleware.GetProfile(ctx)
	if profile == nil {
		return
	}

	chatID := update.Message.Chat.ID
	_, arg := commandArgs(update.Message.Text)
	if arg == "" {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      birthHelpText(),
			ParseMode: models.ParseModeMarkdownV1,
		})
		return
	}

	data, err := service.ParseBirthForm(arg)
	if err != nil {
		tg.Reply(ctx, b, chatID, "❌ "+userMessage(err))
		return
	}

	tg.Reply(ctx, b, chatID, "🔭 Doğum haritan hazırlanıyor, bu biraz sürebilir...")
	stopTyping := tg.StartTyping(ctx, b, chatID)
	interpretation, err := h.birthCharts.Submit(ctx, profile, data)
	stopTyping()

	if err != nil {
		var vErr *domain.ValidationError
		if !errors.As(err, &vErr) {
			slog.Error("submit birth chart", "error", err, "user_id", profile.ID)
			h.tgLogger.LogError(err, "handleBirthForm")
		}
		tg.Reply(ctx, b, chatID, "❌ "+userMessage(err))
		return
	}

	h.tgLogger.LogBirthChart(profile, interpretation)

	if err := tg.SendLongMessage(ctx, b, chatID, formatInterpretation(interpretation), tg.MainMenuKeyboard()); err != nil {
		slog.Error("send birth chart", "error", err, "user_id", profile.ID)
	}
}

// handleChart shows the most recent stored birth chart reading.
func (h *Handler) handleChart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	profile := middleware.GetProfile(ctx)
	if profile == nil {
		return
	}
	h.sendLatestChart(ctx, b, update.Message.Chat.ID, profile)
}

func (h *Handler) sendLatestChart(ctx context.Context, b *bot.Bot, chatID int64, profile *domain.UserProfile) {
	interpretation, err := h.birthCharts.Latest(ctx, profile.ID)
	if errors.Is(err, domain.ErrInterpretationNotFound) {
		tg.Reply(ctx, b, chatID, "Henüz bir doğum haritan yok. /dogum komutuyla oluşturabilirsin.")
		return
	}
	if err != nil {
		slog.Error("latest interpretation", "error", err, "user_id", profile.ID)
		tg.Reply(ctx, b, chatID, "❌ Doğum haritan yüklenemedi. Lütfen daha sonra tekrar dene.")
		return
	}

	if err := tg.SendLongMessage(ctx, b, chatID, formatInterpretation(interpretation), nil); err != nil {
		slog.Error("send birth chart", "error", err, "user_id", profile.ID)
	}
}

func birthHelpText() string {
	return fmt.Sprintf(birthFormHelp, service.BirthFormUsage)
}

// userMessage turns service errors into text that can be shown to the user.
func userMessage(err error) string {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	var whErr *webhook.Error
	if errors.As(err, &whErr) {
		return whErr.Message
	}
	return "Beklenmeyen bir hata oluştu. Lütfen daha sonra tekrar dene."
}
