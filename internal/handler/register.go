package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	tg "github.com/set-night/astrocalc/internal/telegram"
)

// Register registers all command and callback handlers on the bot instance.
// Free text is not registered here: it arrives through HandleDefault.
func (h *Handler) Register() {
	// Commands. /burc also serves /burcum, see handleBurc.
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/burc", bot.MatchTypePrefix, h.handleBurc)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/uyum", bot.MatchTypePrefix, h.handleCompatibility)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/dogum", bot.MatchTypePrefix, h.handleBirthForm)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/harita", bot.MatchTypePrefix, h.handleChart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/gunluk", bot.MatchTypePrefix, h.handleDaily)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/gecmis", bot.MatchTypePrefix, h.handleHistory)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/temizle", bot.MatchTypePrefix, h.handleClear)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/profil", bot.MatchTypePrefix, h.handleProfile)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/tani", bot.MatchTypePrefix, h.handleDiagnostics)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/kullanici", bot.MatchTypePrefix, h.handleUserSearch)

	// Zodiac callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, tg.CallbackSign, bot.MatchTypePrefix, h.handleSignSelect)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, tg.CallbackCompatFirst, bot.MatchTypePrefix, h.handleCompatSelect)

	// Navigation callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, tg.CallbackMenu, bot.MatchTypePrefix, h.handleMenu)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, tg.CallbackHistoryPage+"_", bot.MatchTypePrefix, h.handleHistoryPage)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, tg.CallbackNoop, bot.MatchTypeExact, h.handleNoop)
}

// handleNoop acknowledges callbacks of non-interactive buttons such as the page indicator.
func (h *Handler) handleNoop(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery != nil {
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
		})
	}
}
