package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/astrocalc/internal/config"
	"github.com/set-night/astrocalc/internal/domain"
)

// TelegramLogger mirrors notable events into topics of an admin log chat.
// A nil logger or an unset chat id turns every call into a no-op.
type TelegramLogger struct {
	bot *bot.Bot
	cfg *config.Config
}

func NewTelegramLogger(b *bot.Bot, cfg *config.Config) *TelegramLogger {
	return &TelegramLogger{bot: b, cfg: cfg}
}

// Attach sets the bot used for sending. Until then every call is a no-op.
func (l *TelegramLogger) Attach(b *bot.Bot) {
	l.bot = b
}

type LogType string

const (
	LogTypeError        LogType = "error"
	LogTypeRegistration LogType = "registration"
	LogTypeBirthChart   LogType = "birthChart"
)

func (l *TelegramLogger) Log(logType LogType, message string) {
	if l == nil || l.bot == nil || l.cfg.LogTelegramChatID == 0 {
		return
	}

	topicID := l.topicID(logType)
	if topicID == 0 {
		return
	}

	if r := []rune(message); len(r) > config.MaxTelegramMessageLen {
		message = string(r[:config.MaxTelegramMessageLen-20]) + "\n\n... (kısaltıldı)"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := l.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          l.cfg.LogTelegramChatID,
		Text:            message,
		ParseMode:       models.ParseModeMarkdownV1,
		MessageThreadID: topicID,
	})
	if err != nil {
		slog.Error("failed to send telegram log", "type", logType, "error", err)
	}
}

func (l *TelegramLogger) LogError(err error, where string) {
	msg := fmt.Sprintf("❌ *Hata*\n\n*Yer:* %s\n*Hata:* `%s`\n*Zaman:* %s",
		EscapeMarkdown(where), err.Error(), time.Now().Format("2006-01-02 15:04:05"))
	l.Log(LogTypeError, msg)
}

func (l *TelegramLogger) LogRegistration(p *domain.UserProfile) {
	msg := fmt.Sprintf("👤 *Yeni kullanıcı*\n\n*ID:* `%d`\n*Ad:* %s",
		p.TelegramID, EscapeMarkdown(p.DisplayName()))
	if p.Username != "" {
		msg += "\n*Kullanıcı adı:* @" + EscapeMarkdown(p.Username)
	}
	l.Log(LogTypeRegistration, msg)
}

func (l *TelegramLogger) LogBirthChart(p *domain.UserProfile, in *domain.AstrologyInterpretation) {
	msg := fmt.Sprintf("🪐 *Doğum haritası*\n\n*Kullanıcı:* `%d`\n*Güneş:* %s\n*Ay:* %s\n*Yükselen:* %s",
		p.TelegramID, orDash(in.Reading.SunSign), orDash(in.Reading.MoonSign), orDash(in.Reading.RisingSign))
	l.Log(LogTypeBirthChart, msg)
}

func (l *TelegramLogger) topicID(logType LogType) int {
	switch logType {
	case LogTypeError:
		return l.cfg.LogTopicError
	case LogTypeRegistration:
		return l.cfg.LogTopicRegistration
	case LogTypeBirthChart:
		return l.cfg.LogTopicBirthChart
	default:
		return 0
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
