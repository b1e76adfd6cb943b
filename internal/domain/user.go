package domain

import (
	"time"
)

// UserProfile mirrors a user_profiles row.
type UserProfile struct {
	ID         string
	TelegramID int64
	FullName   string
	Username   string
	BirthDate  *time.Time
	BirthTime  string
	BirthPlace string
	ZodiacSign string
	IsAdmin    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (u *UserProfile) HasBirthDate() bool {
	return u.BirthDate != nil && !u.BirthDate.IsZero()
}

// DisplayName falls back to the username when no full name is stored.
func (u *UserProfile) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	if u.Username != "" {
		return u.Username
	}
	return "Gezgin"
}
