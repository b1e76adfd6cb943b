package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/set-night/astrocalc/internal/config"
	"github.com/set-night/astrocalc/internal/domain"
	"github.com/set-night/astrocalc/internal/zodiac"
)

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   a.now().UTC().Format(time.RFC3339),
	})
}

func (a *API) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	if a.diagnostics == nil {
		RespondError(w, http.StatusServiceUnavailable, "diagnostics unavailable")
		return
	}

	report := a.diagnostics.Run(r.Context())
	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
	}
	RespondJSON(w, status, summarize(report))
}

type checkSummary struct {
	Name       string `json:"name"`
	OK         bool   `json:"ok"`
	DurationMS int64  `json:"duration_ms"`
}

type diagnosticsSummary struct {
	Status    string         `json:"status"`
	StartedAt time.Time      `json:"started_at"`
	Checks    []checkSummary `json:"checks"`
}

// summarize drops check details; they are only shown to admins via /tani.
func summarize(report domain.DiagnosticsReport) diagnosticsSummary {
	out := diagnosticsSummary{
		Status:    "ok",
		StartedAt: report.StartedAt,
		Checks:    make([]checkSummary, 0, len(report.Checks)),
	}
	if !report.Healthy() {
		out.Status = "degraded"
	}
	for _, c := range report.Checks {
		out.Checks = append(out.Checks, checkSummary{Name: c.Name, OK: c.OK, DurationMS: c.Duration.Milliseconds()})
	}
	return out
}

func (a *API) handleListSigns(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, zodiac.All())
}

// handleGetSign accepts an id or a Turkish name: /api/zodiac/aries, /api/zodiac/koc.
func (a *API) handleGetSign(w http.ResponseWriter, r *http.Request) {
	sign, ok := zodiac.ResolveSign(chi.URLParam(r, "sign"))
	if !ok {
		RespondError(w, http.StatusNotFound, "sign not found")
		return
	}
	RespondJSON(w, http.StatusOK, sign)
}

func (a *API) handleSignByDate(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		RespondError(w, http.StatusBadRequest, "date query parameter is required")
		return
	}

	date, err := time.Parse(config.CacheDateLayout, raw)
	if err != nil {
		RespondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	sign, ok := zodiac.GetSignByBirthDate(date)
	if !ok {
		RespondError(w, http.StatusNotFound, "sign not found")
		return
	}
	RespondJSON(w, http.StatusOK, sign)
}

func (a *API) handleCompatibility(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("a") == "" || q.Get("b") == "" {
		RespondError(w, http.StatusBadRequest, "a and b query parameters are required")
		return
	}

	first, ok := zodiac.ResolveSign(q.Get("a"))
	if !ok {
		RespondError(w, http.StatusNotFound, "sign a not found")
		return
	}
	second, ok := zodiac.ResolveSign(q.Get("b"))
	if !ok {
		RespondError(w, http.StatusNotFound, "sign b not found")
		return
	}

	RespondJSON(w, http.StatusOK, zodiac.CalculateCompatibility(first, second))
}
