package handler

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/astrocalc/internal/middleware"
	tg "github.com/set-night/astrocalc/internal/telegram"
)

// handleDiagnostics runs the health checklist. Admin only.
func (h *Handler) handleDiagnostics(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	profile := middleware.GetProfile(ctx)
	if profile == nil || !profile.IsAdmin {
		return
	}

	chatID := update.Message.Chat.ID
	stopTyping := tg.StartTyping(ctx, b, chatID)
	report := h.diagnostics.Run(ctx)
	stopTyping()

	if !report.Healthy() {
		slog.Warn("diagnostics reported failures", "checks", len(report.Checks))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      formatDiagnostics(report),
		ParseMode: models.ParseModeMarkdownV1,
	})
}

// handleUserSearch lists profiles whose name contains the query. Admin only.
func (h *Handler) handleUserSearch(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	profile := middleware.GetProfile(ctx)
	if profile == nil || !profile.IsAdmin {
		return
	}

	chatID := update.Message.Chat.ID
	_, query := commandArgs(update.Message.Text)
	if query == "" {
		tg.Reply(ctx, b, chatID, "Kullanım: /kullanici <isim>")
		return
	}

	users, err := h.profiles.FindByName(ctx, query)
	if err != nil {
		slog.Error("find users by name", "error", err)
		tg.Reply(ctx, b, chatID, "❌ Arama başarısız oldu.")
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      formatUserList(query, users),
		ParseMode: models.ParseModeMarkdownV1,
	})
}
