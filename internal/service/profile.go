package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/set-night/astrocalc/internal/config"
	"github.com/set-night/astrocalc/internal/domain"
	"github.com/set-night/astrocalc/internal/repository"
	"github.com/set-night/astrocalc/internal/zodiac"
)

// ProfileRepository is implemented by *repository.Queries.
type ProfileRepository interface {
	GetProfileByTelegramID(ctx context.Context, telegramID int64) (*domain.UserProfile, error)
	GetProfileByID(ctx context.Context, id string) (*domain.UserProfile, error)
	RegisterProfile(ctx context.Context, telegramID int64, fullName, username string, isAdmin bool) (*domain.UserProfile, bool, error)
	UpdateProfile(ctx context.Context, arg repository.UpdateProfileParams) (*domain.UserProfile, error)
	FindProfilesByName(ctx context.Context, name string, limit int) ([]domain.UserProfile, error)
}

type ProfileService struct {
	repo ProfileRepository
}

func NewProfileService(repo ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// GetOrRegister returns the profile for telegramID, creating it on first contact.
// The bool is true for a newly created profile.
func (s *ProfileService) GetOrRegister(ctx context.Context, telegramID int64, fullName, username string, isAdmin bool) (*domain.UserProfile, bool, error) {
	p, created, err := s.repo.RegisterProfile(ctx, telegramID, strings.TrimSpace(fullName), username, isAdmin)
	if err != nil {
		return nil, false, fmt.Errorf("register profile: %w", err)
	}
	return p, created, nil
}

func (s *ProfileService) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.UserProfile, error) {
	return s.repo.GetProfileByTelegramID(ctx, telegramID)
}

func (s *ProfileService) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	return s.repo.GetProfileByID(ctx, id)
}

// UpdateBirth stores birth details on the profile and recomputes the sun sign.
func (s *ProfileService) UpdateBirth(ctx context.Context, profile *domain.UserProfile, data domain.BirthData) (*domain.UserProfile, error) {
	birthDate := data.BirthDate
	arg := repository.UpdateProfileParams{
		ID:         profile.ID,
		FullName:   strings.TrimSpace(data.FullName),
		BirthDate:  &birthDate,
		BirthTime:  data.BirthTime,
		BirthPlace: strings.TrimSpace(data.BirthPlace),
	}
	if sign, ok := zodiac.GetSignByBirthDate(birthDate); ok {
		arg.ZodiacSign = sign.ID
	}

	updated, err := s.repo.UpdateProfile(ctx, arg)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return updated, nil
}

// FindByName searches profiles by a case-insensitive name fragment.
func (s *ProfileService) FindByName(ctx context.Context, name string) ([]domain.UserProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	return s.repo.FindProfilesByName(ctx, name, config.UserSearchLimit)
}

// SunSign returns the stored sign, or derives it from the birth date.
func SunSign(profile *domain.UserProfile) (domain.ZodiacSign, bool) {
	if profile.ZodiacSign != "" {
		if sign, ok := zodiac.GetSign(profile.ZodiacSign); ok {
			return sign, true
		}
	}
	if profile.HasBirthDate() {
		return zodiac.GetSignByBirthDate(*profile.BirthDate)
	}
	return domain.ZodiacSign{}, false
}

// Age in whole years at now.
func Age(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}
