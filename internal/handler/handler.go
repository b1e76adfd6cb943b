package handler

import (
	"github.com/go-telegram/bot"

	"github.com/set-night/astrocalc/internal/config"
	"github.com/set-night/astrocalc/internal/service"
	"github.com/set-night/astrocalc/internal/telegram"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot            *bot.Bot
	cfg            *config.Config
	profiles       *service.ProfileService
	chat           *service.AIChatService
	history        *service.ChatHistoryService
	birthCharts    *service.BirthChartService
	horoscopes     *service.HoroscopeService
	horoscopeCache *service.HoroscopeCacheService
	diagnostics    *service.DiagnosticsService
	tgLogger       *telegram.TelegramLogger
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot            *bot.Bot
	Cfg            *config.Config
	Profiles       *service.ProfileService
	Chat           *service.AIChatService
	History        *service.ChatHistoryService
	BirthCharts    *service.BirthChartService
	Horoscopes     *service.HoroscopeService
	HoroscopeCache *service.HoroscopeCacheService
	Diagnostics    *service.DiagnosticsService
	TgLogger       *telegram.TelegramLogger
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:            deps.Bot,
		cfg:            deps.Cfg,
		profiles:       deps.Profiles,
		chat:           deps.Chat,
		history:        deps.History,
		birthCharts:    deps.BirthCharts,
		horoscopes:     deps.Horoscopes,
		horoscopeCache: deps.HoroscopeCache,
		diagnostics:    deps.Diagnostics,
		tgLogger:       deps.TgLogger,
	}
}
