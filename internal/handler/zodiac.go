package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/astrocalc/internal/domain"
	"github.com/set-night/astrocalc/internal/middleware"
	"github.com/set-night/astrocalc/internal/service"
	tg "github.com/set-night/astrocalc/internal/telegram"
	"github.com/set-night/astrocalc/internal/zodiac"
)

// handleBurc serves both /burc [burç] and /burcum, which share a prefix.
func (h *Handler) handleBurc(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	cmd, arg, ok := signCommand(update.Message.Text)
	if !ok {
		tg.Reply(ctx, b, chatID, msgUnknownCommand)
		return
	}

	switch cmd {
	case "/burcum":
		h.handleMySign(ctx, b, chatID)
	case "/burc":
		if arg == "" {
			h.sendSignPicker(ctx, b, chatID)
			return
		}
		sign, ok := zodiac.ResolveSign(arg)
		if !ok {
			tg.Reply(ctx, b, chatID, fmt.Sprintf("❌ \"%s\" adında bir burç bulunamadı.", arg))
			h.sendSignPicker(ctx, b, chatID)
			return
		}
		h.sendSignCard(ctx, b, chatID, 0, sign)
	}
}

func (h *Handler) handleMySign(ctx context.Context, b *bot.Bot, chatID int64) {
	profile := middleware.GetProfile(ctx)
	if profile == nil {
		return
	}

	sign, ok := service.SunSign(profile)
	if !ok {
		tg.Reply(ctx, b, chatID, "Burcunu bilmiyorum. Doğum bilgilerini /dogum ile ekleyebilirsin.")
		return
	}
	h.sendSignCard(ctx, b, chatID, 0, sign)
}

func (h *Handler) sendSignPicker(ctx context.Context, b *bot.Bot, chatID int64) {
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "♈ Bir burç seç:",
		ReplyMarkup: tg.SignKeyboard(tg.CallbackSign),
	})
}

func (h *Handler) sendSignCard(ctx context.Context, b *bot.Bot, chatID int64, messageID int, sign domain.ZodiacSign) {
	markup := tg.InlineKeyboard(tg.ButtonRow(
		tg.InlineButton("💞 Uyumuna bak", tg.CallbackCompatFirst+sign.ID),
	))
	editOrSend(ctx, b, chatID, messageID, formatSignCard(sign), markup)
}

func (h *Handler) handleSignSelect(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	sign, ok := zodiac.GetSign(strings.TrimPrefix(update.CallbackQuery.Data, tg.CallbackSign))
	if !ok {
		tg.AnswerCallback(ctx, b, update.CallbackQuery, "Burç bulunamadı.")
		return
	}
	tg.AnswerCallback(ctx, b, update.CallbackQuery, "")

	chatID, messageID := callbackTarget(update)
	if chatID == 0 {
		return
	}
	h.sendSignCard(ctx, b, chatID, messageID, sign)
}

// handleCompatibility answers /uyum A B directly, or starts the two-step keyboard flow.
func (h *Handler) handleCompatibility(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	_, arg := commandArgs(update.Message.Text)
	names := strings.Fields(arg)

	if len(names) != 2 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        "💞 Uyumu hesaplamak için ilk burcu seç:\n\n_İpucu: /uyum Koç Aslan şeklinde de yazabilirsin._",
			ParseMode:   models.ParseModeMarkdownV1,
			ReplyMarkup: tg.SignKeyboard(tg.CallbackCompatFirst),
		})
		return
	}

	first, ok := zodiac.ResolveSign(names[0])
	if !ok {
		tg.Reply(ctx, b, chatID, fmt.Sprintf("❌ \"%s\" adında bir burç bulunamadı.", names[0]))
		return
	}
	second, ok := zodiac.ResolveSign(names[1])
	if !ok {
		tg.Reply(ctx, b, chatID, fmt.Sprintf("❌ \"%s\" adında bir burç bulunamadı.", names[1]))
		return
	}

	editOrSend(ctx, b, chatID, 0, formatCompatibility(zodiac.CalculateCompatibility(first, second)), nil)
}

// handleCompatSelect handles compat_<a> (pick the second sign) and compat_<a>_<b> (show result).
func (h *Handler) handleCompatSelect(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	rest := strings.TrimPrefix(update.CallbackQuery.Data, tg.CallbackCompatFirst)
	firstID, secondID, both := strings.Cut(rest, "_")

	first, ok := zodiac.GetSign(firstID)
	if !ok {
		tg.AnswerCallback(ctx, b, update.CallbackQuery, "Burç bulunamadı.")
		return
	}

	chatID, messageID := callbackTarget(update)
	if chatID == 0 {
		tg.AnswerCallback(ctx, b, update.CallbackQuery, "")
		return
	}

	if !both {
		tg.AnswerCallback(ctx, b, update.CallbackQuery, "")
		editOrSend(ctx, b, chatID, messageID,
			fmt.Sprintf("%s *%s* ile uyumu için ikinci burcu seç:", first.Symbol, first.Name),
			tg.SignKeyboard(tg.CallbackCompatFirst+first.ID+"_"))
		return
	}

	second, ok := zodiac.GetSign(secondID)
	if !ok {
		tg.AnswerCallback(ctx, b, update.CallbackQuery, "Burç bulunamadı.")
		return
	}
	tg.AnswerCallback(ctx, b, update.CallbackQuery, "")

	markup := tg.InlineKeyboard(tg.ButtonRow(
		tg.InlineButton("🔁 Başka bir burçla dene", tg.CallbackCompatFirst+first.ID),
	))
	editOrSend(ctx, b, chatID, messageID, formatCompatibility(zodiac.CalculateCompatibility(first, second)), markup)
}
