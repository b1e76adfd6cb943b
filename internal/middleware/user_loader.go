package middleware

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/astrocalc/internal/domain"
)

type ctxKey string

const ProfileKey ctxKey = "profile"

// GetProfile extracts the caller's profile from context.
func GetProfile(ctx context.Context) *domain.UserProfile {
	p, ok := ctx.Value(ProfileKey).(*domain.UserProfile)
	if !ok {
		return nil
	}
	return p
}

func WithProfile(ctx context.Context, p *domain.UserProfile) context.Context {
	return context.WithValue(ctx, ProfileKey, p)
}

// ProfileRegistrar is implemented by *service.ProfileService.
type ProfileRegistrar interface {
	GetOrRegister(ctx context.Context, telegramID int64, fullName, username string, isAdmin bool) (*domain.UserProfile, bool, error)
}

// RegistrationReporter is implemented by *telegram.TelegramLogger.
type RegistrationReporter interface {
	LogRegistration(p *domain.UserProfile)
}

// UserLoader loads or registers the sender's profile and stores it in the context.
// Updates from private chats only; group updates pass through without a profile.
func UserLoader(profiles ProfileRegistrar, cfg interface{ IsAdmin(int64) bool }, reporter RegistrationReporter) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			var from *models.User
			if update.Message != nil {
				if update.Message.Chat.Type == "private" {
					from = update.Message.From
				}
			} else if update.CallbackQuery != nil {
				from = &update.CallbackQuery.From
			}

			if from == nil {
				next(ctx, b, update)
				return
			}

			fullName := strings.TrimSpace(from.FirstName + " " + from.LastName)
			profile, created, err := profiles.GetOrRegister(ctx, from.ID, fullName, from.Username, cfg.IsAdmin(from.ID))
			if err != nil {
				slog.Error("load profile", "error", err, "telegram_id", from.ID)
			} else {
				ctx = WithProfile(ctx, profile)
				if created && reporter != nil {
					reporter.LogRegistration(profile)
				}
			}

			next(ctx, b, update)
		}
	}
}
