package config

import "time"

const (
	// Chat history retention
	ChatRetention     = 5 * 24 * time.Hour
	MaxStoredMessages = 500

	// Horoscope cache lifetime, counted from the write
	HoroscopeCacheTTL = 24 * time.Hour

	// Local store key prefixes
	ChatMessagesKeyPrefix   = "ai_chat_messages_"
	HoroscopeCacheKeyPrefix = "horoscope_cache_"

	// Webhook timeouts and retry policy
	ChatWebhookTimeout       = 60 * time.Second
	BirthChartWebhookTimeout = 90 * time.Second
	WebhookRetries           = 2
	WebhookRetryBaseDelay    = 1 * time.Second

	// Upper bound for one scheduled cleanup pass
	CleanupTimeout = 2 * time.Minute

	// Diagnostics check timeout
	DiagnosticsTimeout = 5 * time.Second

	// Telegram limits
	MaxTelegramMessageLen = 4096

	// Messages shown by /gecmis
	HistoryPageSize = 20

	// Users returned by name search
	UserSearchLimit = 20

	// Rate limiter housekeeping
	RateLimitBurst        = 5
	RateLimitCleanup      = 5 * time.Minute
	RateLimitIdleLifetime = 10 * time.Minute

	// Compatibility scores
	CompatibleScore = 85
	ModerateScore   = 45

	// Date layouts used on the wire and in cache keys
	CacheDateLayout     = "2006-01-02"
	WebhookDayLayout    = "02-01-2006"
	BirthFormDateLayout = "02.01.2006"
)
