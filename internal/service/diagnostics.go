package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/set-night/astrocalc/internal/config"
	"github.com/set-night/astrocalc/internal/domain"
	"github.com/set-night/astrocalc/internal/kvstore"
)

// Pinger is implemented by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DiagnosticsService runs the connectivity checklist shown by /tani and GET /diagnostics.
type DiagnosticsService struct {
	cfg        *config.Config
	db         Pinger
	store      kvstore.Store
	httpClient *http.Client
	now        func() time.Time
}

func NewDiagnosticsService(cfg *config.Config, db Pinger, store kvstore.Store) *DiagnosticsService {
	return &DiagnosticsService{
		cfg:        cfg,
		db:         db,
		store:      store,
		httpClient: &http.Client{Timeout: config.DiagnosticsTimeout},
		now:        time.Now,
	}
}

func (s *DiagnosticsService) Run(ctx context.Context) domain.DiagnosticsReport {
	report := domain.DiagnosticsReport{StartedAt: s.now()}

	checks := []struct {
		name string
		fn   func(context.Context) (string, error)
	}{
		{"config", s.checkConfig},
		{"database", s.checkDatabase},
		{"local_store", s.checkLocalStore},
		{"chat_webhook", func(ctx context.Context) (string, error) { return s.checkWebhook(ctx, s.cfg.ChatWebhookURL) }},
		{"birth_chart_webhook", func(ctx context.Context) (string, error) { return s.checkWebhook(ctx, s.cfg.BirthChartWebhookURL) }},
	}

	for _, c := range checks {
		checkCtx, cancel := context.WithTimeout(ctx, config.DiagnosticsTimeout)
		start := time.Now()
		detail, err := c.fn(checkCtx)
		cancel()

		check := domain.DiagnosticCheck{Name: c.name, OK: err == nil, Detail: detail, Duration: time.Since(start)}
		if err != nil {
			check.Detail = err.Error()
		}
		report.Checks = append(report.Checks, check)
	}
	return report
}

func (s *DiagnosticsService) checkConfig(context.Context) (string, error) {
	if s.cfg == nil {
		return "", errors.New("configuration not loaded")
	}
	for name, raw := range map[string]string{
		"N8N_CHAT_WEBHOOK_URL":        s.cfg.ChatWebhookURL,
		"N8N_BIRTH_CHART_WEBHOOK_URL": s.cfg.BirthChartWebhookURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return "", fmt.Errorf("%s is not a valid http(s) url", name)
		}
	}
	if s.cfg.BotToken == "" {
		return "", errors.New("BOT_TOKEN is empty")
	}
	return fmt.Sprintf("%d admin(s), token set: %t", len(s.cfg.AdminIDs), s.cfg.WebhookToken != ""), nil
}

func (s *DiagnosticsService) checkDatabase(ctx context.Context) (string, error) {
	if s.db == nil {
		return "", errors.New("database not configured")
	}
	if err := s.db.Ping(ctx); err != nil {
		return "", fmt.Errorf("ping: %w", err)
	}
	return "ping ok", nil
}

func (s *DiagnosticsService) checkLocalStore(ctx context.Context) (string, error) {
	key := "diagnostics_check_" + uuid.NewString()
	want := s.now().UTC().Format(time.RFC3339Nano)

	if err := s.store.Set(ctx, key, want); err != nil {
		return "", fmt.Errorf("write: %w", err)
	}
	defer s.store.Delete(context.WithoutCancel(ctx), key)

	got, err := s.store.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("read: %w", err)
	}
	if got != want {
		return "", errors.New("read back a different value")
	}
	return "write/read ok", nil
}

// checkWebhook treats any HTTP response as reachable. A GET does not trigger the workflow.
func (s *DiagnosticsService) checkWebhook(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", errors.New("invalid url")
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", errors.New(networkFailure(err))
	}
	resp.Body.Close()
	return fmt.Sprintf("HTTP %d", resp.StatusCode), nil
}

// networkFailure names the kind of transport error. The webhook URL is a secret
// for n8n, so the wrapped error text is never returned.
func networkFailure(err error) string {
	var dnsErr *net.DNSError
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	case errors.Is(err, syscall.ECONNREFUSED):
		return "connection refused"
	case errors.As(err, &dnsErr):
		return "dns lookup failed"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "unreachable"
	}
}
