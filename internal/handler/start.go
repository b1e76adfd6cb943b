package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/astrocalc/internal/middleware"
	tg "github.com/set-night/astrocalc/internal/telegram"
)

const welcomeText = "🌌 Merhaba *%s*, Astrocalc'a hoş geldin!\n\n" +
	"Ben burçlar, doğum haritası ve günlük yorumlar konusunda yardımcı olan astroloji asistanınım.\n\n" +
	"📋 *Komutlar:*\n" +
	"/burc [burç] — Burç kartı\n" +
	"/burcum — Kendi burcun\n" +
	"/uyum [burç] [burç] — Burç uyumu\n" +
	"/dogum — Doğum haritası oluştur\n" +
	"/harita — Son doğum haritan\n" +
	"/gunluk — Günlük burç yorumun\n" +
	"/gecmis — Sohbet geçmişi\n" +
	"/temizle — Sohbet geçmişini sil\n" +
	"/profil — Profil bilgilerin\n\n" +
	"Astrolojiyle ilgili bir soru yazman yeterli, hemen yanıtlayayım! ✨"

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	profile := middleware.GetProfile(ctx)
	if profile == nil {
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        fmt.Sprintf(welcomeText, tg.EscapeMarkdown(profile.DisplayName())),
		ParseMode:   models.ParseModeMarkdownV1,
		ReplyMarkup: tg.MainMenuKeyboard(),
	})
}

// handleMenu routes the main menu buttons to the matching command.
func (h *Handler) handleMenu(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: update.CallbackQuery.ID})

	profile := middleware.GetProfile(ctx)
	chatID, _ := callbackTarget(update)
	if profile == nil || chatID == 0 {
		return
	}

	switch strings.TrimPrefix(update.CallbackQuery.Data, tg.CallbackMenu) {
	case "signs":
		h.sendSignPicker(ctx, b, chatID)
	case "daily":
		h.sendDaily(ctx, b, chatID, profile)
	case "chart":
		h.sendLatestChart(ctx, b, chatID, profile)
	case "history":
		h.sendHistoryPage(ctx, b, chatID, profile, 0, 0)
	}
}

// callbackTarget returns the chat and message a callback button belongs to.
func callbackTarget(update *models.Update) (int64, int) {
	if msg := update.CallbackQuery.Message.Message; msg != nil {
		return msg.Chat.ID, msg.ID
	}
	return 0, 0
}

// editOrSend edits messageID in place when it is set, otherwise sends a new message.
func editOrSend(ctx context.Context, b *bot.Bot, chatID int64, messageID int, text string, markup models.ReplyMarkup) {
	if messageID != 0 {
		_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:      chatID,
			MessageID:   messageID,
			Text:        text,
			ParseMode:   models.ParseModeMarkdownV1,
			ReplyMarkup: markup,
		})
		if err == nil {
			return
		}
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeMarkdownV1,
		ReplyMarkup: markup,
	})
}
