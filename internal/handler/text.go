package handler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/astrocalc/internal/middleware"
	tg "github.com/set-night/astrocalc/internal/telegram"
)

// HandleDefault receives every update no registered handler matched.
func (h *Handler) HandleDefault(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	if strings.HasPrefix(update.Message.Text, "/") {
		tg.Reply(ctx, b, update.Message.Chat.ID, msgUnknownCommand)
		return
	}
	if update.Message.Text == "" {
		tg.Reply(ctx, b, update.Message.Chat.ID, "Şimdilik yalnızca yazılı mesajları yanıtlayabiliyorum.")
		return
	}
	h.HandleText(ctx, b, update)
}

// HandleText forwards a private text message to the AI chat.
func (h *Handler) HandleText(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	profile := middleware.GetProfile(ctx)
	if profile == nil {
		return
	}

	chatID := msg.Chat.ID
	if h.chat.IsBusy(profile.ID) {
		tg.Reply(ctx, b, chatID, "⏳ Önceki sorun hâlâ yanıtlanıyor, lütfen biraz bekle.")
		return
	}

	stopTyping := tg.StartTyping(ctx, b, chatID)
	reply := h.chat.SendAIChatMessage(ctx, profile, msg.Text)
	stopTyping()

	if !reply.Success {
		tg.Reply(ctx, b, chatID, "❌ "+reply.Error)
		return
	}

	if err := tg.SendLongMessage(ctx, b, chatID, reply.Response, nil); err != nil {
		slog.Error("send ai reply", "error", err, "user_id", profile.ID)
		h.tgLogger.LogError(err, "HandleText")
	}
}
