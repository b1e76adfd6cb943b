// Package httpapi exposes the static zodiac data and service health over HTTP.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/set-night/astrocalc/internal/domain"
)

// Diagnoser is implemented by *service.DiagnosticsService.
type Diagnoser interface {
	Run(ctx context.Context) domain.DiagnosticsReport
}

type API struct {
	diagnostics Diagnoser
	now         func() time.Time
}

func New(diagnostics Diagnoser) *API {
	return &API{diagnostics: diagnostics, now: time.Now}
}

// NewRouter wires the HTTP routes. diagnostics may be nil, in which case /diagnostics answers 503.
func NewRouter(diagnostics Diagnoser) http.Handler {
	api := New(diagnostics)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	r.Get("/health", api.handleHealth)
	r.Get("/diagnostics", api.handleDiagnostics)

	r.Route("/api", func(r chi.Router) {
		r.Get("/zodiac", api.handleListSigns)
		r.Get("/zodiac/by-date", api.handleSignByDate)
		r.Get("/zodiac/{sign}", api.handleGetSign)
		r.Get("/compatibility", api.handleCompatibility)
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
