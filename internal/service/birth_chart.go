package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/set-night/astrocalc/internal/config"
	"github.com/set-night/astrocalc/internal/domain"
	"github.com/set-night/astrocalc/internal/webhook"
	"github.com/set-night/astrocalc/internal/zodiac"
)

// BirthChartRepository is implemented by *repository.Queries.
type BirthChartRepository interface {
	InsertBirthChartData(ctx context.Context, userID string, data domain.BirthData) (*domain.BirthChartRecord, error)
	LatestBirthChartData(ctx context.Context, userID string) (*domain.BirthChartRecord, error)
	InsertInterpretation(ctx context.Context, userID string, reading domain.BirthChartReading, raw string) (*domain.AstrologyInterpretation, error)
	LatestInterpretation(ctx context.Context, userID string) (*domain.AstrologyInterpretation, error)
}

const BirthFormUsage = "Ad Soyad; GG.AA.YYYY; SS:DD; Doğum Yeri[; enlem; boylam]"

type BirthChartService struct {
	repo     BirthChartRepository
	profiles *ProfileService
	poster   WebhookPoster
	url      string
	source   string
	now      func() time.Time
}

func NewBirthChartService(repo BirthChartRepository, profiles *ProfileService, poster WebhookPoster, url, source string) *BirthChartService {
	return &BirthChartService{
		repo:     repo,
		profiles: profiles,
		poster:   poster,
		url:      url,
		source:   source,
		now:      time.Now,
	}
}

// ParseBirthForm reads "Ad Soyad; GG.AA.YYYY; SS:DD; Yer" with optional "; enlem; boylam".
// It only parses; Validate checks the values.
func ParseBirthForm(text string) (domain.BirthData, error) {
	parts := strings.Split(text, ";")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) != 4 && len(parts) != 6 {
		return domain.BirthData{}, &domain.ValidationError{
			Field:   "form",
			Message: "Bilgiler şu biçimde olmalı: " + BirthFormUsage,
		}
	}

	date, err := time.Parse(config.BirthFormDateLayout, parts[1])
	if err != nil {
		return domain.BirthData{}, &domain.ValidationError{
			Field:   "birthDate",
			Message: "Doğum tarihi GG.AA.YYYY biçiminde olmalı (ör. 15.07.1990).",
		}
	}

	data := domain.BirthData{
		FullName:   parts[0],
		BirthDate:  date,
		BirthTime:  parts[2],
		BirthPlace: parts[3],
	}

	if len(parts) == 6 {
		lat, err := decimal.NewFromString(strings.ReplaceAll(parts[4], ",", "."))
		if err != nil {
			return domain.BirthData{}, &domain.ValidationError{Field: "latitude", Message: "Enlem sayı olmalı (ör. 41.0082)."}
		}
		lon, err := decimal.NewFromString(strings.ReplaceAll(parts[5], ",", "."))
		if err != nil {
			return domain.BirthData{}, &domain.ValidationError{Field: "longitude", Message: "Boylam sayı olmalı (ör. 28.9784)."}
		}
		data.Latitude = decimal.NewNullDecimal(lat)
		data.Longitude = decimal.NewNullDecimal(lon)
	}
	return data, nil
}

// Submit validates and stores the birth data, asks the birth-chart workflow for a reading
// and stores it. The interpretation is returned to the caller.
func (s *BirthChartService) Submit(ctx context.Context, profile *domain.UserProfile, data domain.BirthData) (*domain.AstrologyInterpretation, error) {
	now := s.now()
	if err := data.Validate(now); err != nil {
		return nil, err
	}

	if _, err := s.repo.InsertBirthChartData(ctx, profile.ID, data); err != nil {
		return nil, fmt.Errorf("save birth data: %w", err)
	}
	if _, err := s.profiles.UpdateBirth(ctx, profile, data); err != nil {
		slog.Error("update profile birth fields", "error", err, "user_id", profile.ID)
	}

	payload := webhook.NewBirthDataPayload(data, profile.ID, s.source, now)
	res := s.poster.Post(ctx, s.url, payload, webhook.Options{
		Timeout: config.BirthChartWebhookTimeout,
		Retries: config.WebhookRetries,
	})
	if !res.Success {
		return nil, res.Err()
	}

	text := webhook.FormatResponseToText(res.Body)
	reading := webhook.ExtractBirthChart(text)
	if reading.SunSign == "" {
		if sign, ok := zodiac.GetSignByBirthDate(data.BirthDate); ok {
			reading.SunSign = sign.Name
		}
	}

	in, err := s.repo.InsertInterpretation(ctx, profile.ID, reading, string(res.Body))
	if err != nil {
		return nil, fmt.Errorf("save interpretation: %w", err)
	}
	return in, nil
}

func (s *BirthChartService) Latest(ctx context.Context, userID string) (*domain.AstrologyInterpretation, error) {
	return s.repo.LatestInterpretation(ctx, userID)
}

func (s *BirthChartService) LatestBirthData(ctx context.Context, userID string) (*domain.BirthChartRecord, error) {
	return s.repo.LatestBirthChartData(ctx, userID)
}
