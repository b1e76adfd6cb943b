package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/set-night/astrocalc/internal/config"
	"github.com/set-night/astrocalc/internal/domain"
	"github.com/set-night/astrocalc/internal/webhook"
)

// HoroscopeRepository is implemented by *repository.Queries.
type HoroscopeRepository interface {
	GetDailyHoroscope(ctx context.Context, userID string, date time.Time) (*domain.DailyHoroscope, error)
	UpsertDailyHoroscope(ctx context.Context, userID string, date time.Time, comment string) error
}

type HoroscopeService struct {
	cache  *HoroscopeCacheService
	repo   HoroscopeRepository
	poster WebhookPoster
	url    string
	source string
	now    func() time.Time
}

func NewHoroscopeService(cache *HoroscopeCacheService, repo HoroscopeRepository, poster WebhookPoster, chatURL, source string) *HoroscopeService {
	return &HoroscopeService{
		cache:  cache,
		repo:   repo,
		poster: poster,
		url:    chatURL,
		source: source,
		now:    time.Now,
	}
}

// Daily returns the user's horoscope for date (today when zero). Lookup order is the local
// cache, the daily_horoscopes table, the chat workflow and finally a static text built
// from the sign.
func (s *HoroscopeService) Daily(ctx context.Context, profile *domain.UserProfile, date time.Time) (*domain.DailyHoroscope, error) {
	sign, ok := SunSign(profile)
	if !ok {
		return nil, domain.ErrBirthDataMissing
	}
	if date.IsZero() {
		date = s.now()
	}

	if rec, expired := s.cache.GetCached(ctx, profile.ID, date); rec != nil && !expired {
		return &domain.DailyHoroscope{
			UserID:        profile.ID,
			HoroscopeDate: date,
			Comment:       rec.Comment,
			Source:        domain.HoroscopeSourceCache,
			CreatedAt:     rec.CachedAt,
		}, nil
	}

	h, err := s.repo.GetDailyHoroscope(ctx, profile.ID, date)
	switch {
	case err == nil:
		s.writeCache(ctx, profile.ID, h.Comment, date)
		return h, nil
	case !errors.Is(err, domain.ErrHoroscopeNotFound):
		slog.Error("get daily horoscope", "error", err, "user_id", profile.ID)
	}

	if comment, ok := s.generate(ctx, profile, sign, date); ok {
		if err := s.repo.UpsertDailyHoroscope(ctx, profile.ID, date, comment); err != nil {
			slog.Error("save generated horoscope", "error", err, "user_id", profile.ID)
		}
		s.writeCache(ctx, profile.ID, comment, date)
		return &domain.DailyHoroscope{
			UserID:        profile.ID,
			HoroscopeDate: date,
			Comment:       comment,
			Source:        domain.HoroscopeSourceGenerated,
			CreatedAt:     s.now(),
		}, nil
	}

	return &domain.DailyHoroscope{
		UserID:        profile.ID,
		HoroscopeDate: date,
		Comment:       FallbackHoroscope(sign, date),
		Source:        domain.HoroscopeSourceFallback,
		CreatedAt:     s.now(),
	}, nil
}

func (s *HoroscopeService) generate(ctx context.Context, profile *domain.UserProfile, sign domain.ZodiacSign, date time.Time) (string, bool) {
	question := fmt.Sprintf("%s burcu için %s tarihli günlük burç yorumunu yazar mısın?",
		sign.Name, date.Format(config.BirthFormDateLayout))
	payload := webhook.NewChatPayload(question, profile.ID, profile.DisplayName(), s.source, s.now())

	res := s.poster.Post(ctx, s.url, payload, webhook.Options{
		Timeout: config.ChatWebhookTimeout,
		Retries: config.WebhookRetries,
	})
	if !res.Success {
		slog.Warn("horoscope generation failed", "user_id", profile.ID, "error", res.Error)
		return "", false
	}

	text := webhook.FormatResponseToText(res.Body)
	return text, text != ""
}

func (s *HoroscopeService) writeCache(ctx context.Context, userID, comment string, date time.Time) {
	if err := s.cache.Cache(ctx, userID, comment, date); err != nil {
		slog.Error("cache horoscope", "error", err, "user_id", userID)
	}
}

// FallbackHoroscope builds a short text from the sign's static traits. The day picks which traits are used.
func FallbackHoroscope(sign domain.ZodiacSign, date time.Time) string {
	n := date.YearDay()
	pick := func(list []string) string {
		if len(list) == 0 {
			return ""
		}
		return list[n%len(list)]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s için günün yorumu\n\n", sign.Symbol, sign.Name)
	if p := pick(sign.Traits.Positive); p != "" {
		fmt.Fprintf(&b, "Bugün %s yanınız öne çıkıyor. ", lowerTR(p))
	}
	if neg := pick(sign.Traits.Negative); neg != "" {
		fmt.Fprintf(&b, "%s olmamaya dikkat edin. ", neg)
	}
	if c := pick(sign.LuckyColors); c != "" {
		fmt.Fprintf(&b, "Şanslı renginiz %s", lowerTR(c))
		if len(sign.LuckyNumbers) > 0 {
			fmt.Fprintf(&b, ", şanslı sayınız %d", sign.LuckyNumbers[n%len(sign.LuckyNumbers)])
		}
		b.WriteString(".")
	}
	return strings.TrimSpace(b.String())
}

func lowerTR(s string) string {
	return strings.ToLowerSpecial(unicode.TurkishCase, s)
}
