package domain

import "time"

// CachedHoroscope is stored under horoscope_cache_<userId>_<date>.
type CachedHoroscope struct {
	Comment       string    `json:"comment"`
	HoroscopeDate string    `json:"horoscope_date"`
	UserID        string    `json:"userId"`
	CachedAt      time.Time `json:"cached_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// IsExpired reports whether the entry is stale at now. The expiry instant itself counts as stale.
func (c *CachedHoroscope) IsExpired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

type HoroscopeSource string

const (
	HoroscopeSourceCache     HoroscopeSource = "cache"
	HoroscopeSourceDatabase  HoroscopeSource = "database"
	HoroscopeSourceGenerated HoroscopeSource = "generated"
	HoroscopeSourceFallback  HoroscopeSource = "fallback"
)

// DailyHoroscope maps to the daily_horoscopes table.
type DailyHoroscope struct {
	ID            string
	UserID        string
	HoroscopeDate time.Time
	Comment       string
	Source        HoroscopeSource
	CreatedAt     time.Time
}
