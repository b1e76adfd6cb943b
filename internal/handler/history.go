package handler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/astrocalc/internal/config"
	"github.com/set-night/astrocalc/internal/domain"
	"github.com/set-night/astrocalc/internal/middleware"
	tg "github.com/set-night/astrocalc/internal/telegram"
)

func (h *Handler) handleHistory(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	profile := middleware.GetProfile(ctx)
	if profile == nil {
		return
	}
	h.sendHistoryPage(ctx, b, update.Message.Chat.ID, profile, 0, 0)
}

func (h *Handler) handleHistoryPage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: update.CallbackQuery.ID})

	profile := middleware.GetProfile(ctx)
	if profile == nil {
		return
	}

	page, ok := callbackPage(update.CallbackQuery.Data, tg.CallbackHistoryPage)
	if !ok {
		return
	}

	chatID, messageID := callbackTarget(update)
	if chatID == 0 {
		return
	}
	h.sendHistoryPage(ctx, b, chatID, profile, page, messageID)
}

func (h *Handler) sendHistoryPage(ctx context.Context, b *bot.Bot, chatID int64, profile *domain.UserProfile, page, messageID int) {
	msgs := h.history.LoadMessages(ctx, profile.ID)
	text, page, totalPages := historyPage(msgs, page, config.HistoryPageSize)

	var markup models.ReplyMarkup
	if totalPages > 1 {
		markup = tg.InlineKeyboard(tg.PaginationRow(page, totalPages, tg.CallbackHistoryPage))
	}
	editOrSend(ctx, b, chatID, messageID, text, markup)
}

// handleClear deletes the chat history. "/temizle hepsi" also drops cached horoscopes.
func (h *Handler) handleClear(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	profile := middleware.GetProfile(ctx)
	if profile == nil {
		return
	}

	chatID := update.Message.Chat.ID
	if err := h.history.ClearMessages(ctx, profile.ID); err != nil {
		slog.Error("clear chat history", "error", err, "user_id", profile.ID)
		tg.Reply(ctx, b, chatID, "❌ Sohbet geçmişi silinemedi. Lütfen daha sonra tekrar dene.")
		return
	}

	text := "🧹 Sohbet geçmişin silindi."
	if _, arg := commandArgs(update.Message.Text); isClearAll(arg) {
		removed := h.horoscopeCache.ClearUserCache(ctx, profile.ID)
		text += fmt.Sprintf("\n🗂 Önbellekteki %d günlük yorum da silindi.", removed)
	}
	tg.Reply(ctx, b, chatID, text)
}
