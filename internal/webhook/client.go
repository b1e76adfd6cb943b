// Package webhook posts JSON to the n8n workflows and turns their replies into display text.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/set-night/astrocalc/internal/config"
)

type Options struct {
	// Timeout bounds each attempt separately.
	Timeout time.Duration
	// Retries is the number of extra attempts after a transport failure.
	Retries int
}

func DefaultOptions() Options {
	return Options{Timeout: config.ChatWebhookTimeout, Retries: config.WebhookRetries}
}

// Result is what callers get back from Post. Post never returns a Go error.
type Result struct {
	Success    bool
	StatusCode int
	Body       []byte
	Error      string

	kind  ErrorKind
	cause error
}

// Err is nil on success, otherwise a *Error carrying the user-facing message.
func (r Result) Err() error {
	if r.Success {
		return nil
	}
	return &Error{Kind: r.kind, StatusCode: r.StatusCode, Message: r.Error, Err: r.cause}
}

type Client struct {
	httpClient *http.Client
	token      string
	source     string
	retryBase  time.Duration
}

func NewClient(token, source string) *Client {
	return &Client{
		// Timeouts are applied per attempt through the request context.
		httpClient: &http.Client{},
		token:      token,
		source:     source,
		retryBase:  config.WebhookRetryBaseDelay,
	}
}

func (c *Client) Post(ctx context.Context, url string, payload any, opts Options) Result {
	body, err := json.Marshal(payload)
	if err != nil {
		return failure(KindEncode, 0, err)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = config.ChatWebhookTimeout
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}

	var last Result
	for attempt := 0; attempt <= opts.Retries; attempt++ {
		if attempt > 0 {
			delay := c.retryBase * time.Duration(1<<(attempt-1))
			slog.Warn("webhook attempt failed, retrying",
				"url", url, "attempt", attempt, "delay", delay, "error", last.cause)
			if err := sleep(ctx, delay); err != nil {
				return failure(KindCanceled, 0, err)
			}
		}

		var retry bool
		last, retry = c.attempt(ctx, url, body, opts.Timeout)
		if !retry {
			return last
		}
	}
	return last
}

// attempt performs one request. The bool reports whether the failure is worth retrying.
func (c *Client) attempt(ctx context.Context, url string, body []byte, timeout time.Duration) (Result, bool) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return failure(KindEncode, 0, fmt.Errorf("create request: %w", err)), false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.source != "" {
		req.Header.Set("X-Source", c.source)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportFailure(ctx, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportFailure(ctx, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := statusMessage(resp.StatusCode, extractMessage(respBody))
		return Result{
			StatusCode: resp.StatusCode,
			Body:       respBody,
			Error:      msg,
			kind:       KindHTTP,
			cause:      fmt.Errorf("unexpected status %d", resp.StatusCode),
		}, false
	}

	return Result{Success: true, StatusCode: resp.StatusCode, Body: respBody}, false
}

func transportFailure(parent context.Context, err error) (Result, bool) {
	if parent.Err() != nil {
		return failure(KindCanceled, 0, parent.Err()), false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return failure(KindTimeout, 0, err), true
	}
	return failure(KindTransport, 0, err), true
}

func failure(kind ErrorKind, status int, cause error) Result {
	return Result{StatusCode: status, Error: kindMessage(kind), kind: kind, cause: cause}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
