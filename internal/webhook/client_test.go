package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient() *Client {
	c := NewClient("secret", "astrocalc-test")
	c.retryBase = time.Millisecond
	return c
}

func TestPostSuccessSendsHeadersAndBody(t *testing.T) {
	var got ChatPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer secret" {
			t.Errorf("Authorization = %q", auth)
		}
		if src := r.Header.Get("X-Source"); src != "astrocalc-test" {
			t.Errorf("X-Source = %q", src)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Write([]byte(`{"output":"tamam"}`))
	}))
	defer srv.Close()

	now := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
	payload := NewChatPayload("Mars retrosu nedir?", "u1", "Ayşe Yılmaz", "astrocalc-test", now)

	res := newTestClient().Post(context.Background(), srv.URL, payload, DefaultOptions())
	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	if res.Err() != nil {
		t.Fatalf("Err() = %v, want nil", res.Err())
	}
	if FormatResponseToText(res.Body) != "tamam" {
		t.Fatalf("body = %s", res.Body)
	}
	if got.Question != "Mars retrosu nedir?" || got.Today != "05-03-2024" || got.FullName != "Ayşe Yılmaz" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestPostRateLimitedPassesMessageThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("Günlük soru limitinize ulaştınız."))
	}))
	defer srv.Close()

	res := newTestClient().Post(context.Background(), srv.URL, map[string]string{}, DefaultOptions())
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Error != "Günlük soru limitinize ulaştınız." {
		t.Fatalf("Error = %q, want raw body", res.Error)
	}
	if res.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("StatusCode = %d", res.StatusCode)
	}
}

func TestPostServerErrorIsPrefixedAndNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"oops"}`))
	}))
	defer srv.Close()

	res := newTestClient().Post(context.Background(), srv.URL, nil, Options{Timeout: time.Second, Retries: 3})
	if res.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(res.Error, "oops") || !strings.Contains(res.Error, "500") {
		t.Fatalf("Error = %q, want status prefix and message", res.Error)
	}
	if res.Error == "oops" {
		t.Fatal("expected a prefix on non-429 errors")
	}
	if calls.Load() != 1 {
		t.Fatalf("server called %d times, want 1", calls.Load())
	}

	var werr *Error
	if !errors.As(res.Err(), &werr) || werr.Kind != KindHTTP || werr.StatusCode != 500 {
		t.Fatalf("Err() = %#v", res.Err())
	}
}

func TestStatusMessages(t *testing.T) {
	cases := []struct {
		status int
		msg    string
		want   string
	}{
		{http.StatusTooManyRequests, "yavaş", "yavaş"},
		{http.StatusTooManyRequests, "", "Çok fazla istek gönderildi. Lütfen biraz bekleyin."},
		{http.StatusBadRequest, "eksik alan", "Geçersiz istek (400): eksik alan"},
		{http.StatusForbidden, "", "Yetkilendirme hatası (403)"},
		{http.StatusNotFound, "yok", "Servis bulunamadı (404): yok"},
		{http.StatusBadGateway, "x", "Sunucu hatası (502): x"},
		{http.StatusGatewayTimeout, "", "Zaman aşımı (504)"},
		{http.StatusTeapot, "çay", "İstek hatası (418): çay"},
	}

	for _, tc := range cases {
		if got := statusMessage(tc.status, tc.msg); got != tc.want {
			t.Fatalf("statusMessage(%d, %q) = %q, want %q", tc.status, tc.msg, got, tc.want)
		}
	}
}

func TestExtractMessage(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"message":"oops"}`, "oops"},
		{`{"error":"bad"}`, "bad"},
		{`{"error":{"message":"nested"}}`, "nested"},
		{`plain text`, "plain text"},
		{`<html><body><p>Bakımda</p></body></html>`, "Bakımda"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := extractMessage([]byte(tc.body)); got != tc.want {
			t.Fatalf("extractMessage(%q) = %q, want %q", tc.body, got, tc.want)
		}
	}
}

type flakyTransport struct {
	failures int
	calls    int
}

func (f *flakyTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("connection refused")
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(`"merhaba"`)),
		Header:     make(http.Header),
		Request:    r,
	}, nil
}

func TestPostRetriesTransportErrors(t *testing.T) {
	rt := &flakyTransport{failures: 2}
	c := newTestClient()
	c.httpClient = &http.Client{Transport: rt}

	res := c.Post(context.Background(), "http://webhook.invalid/hook", nil, Options{Timeout: time.Second, Retries: 2})
	if !res.Success {
		t.Fatalf("expected success after retries, got %q", res.Error)
	}
	if rt.calls != 3 {
		t.Fatalf("transport called %d times, want 3", rt.calls)
	}
}

func TestPostGivesUpAfterRetries(t *testing.T) {
	rt := &flakyTransport{failures: 10}
	c := newTestClient()
	c.httpClient = &http.Client{Transport: rt}

	res := c.Post(context.Background(), "http://webhook.invalid/hook", nil, Options{Timeout: time.Second, Retries: 2})
	if res.Success {
		t.Fatal("expected failure")
	}
	if rt.calls != 3 {
		t.Fatalf("transport called %d times, want 3", rt.calls)
	}
	if res.Error != kindMessage(KindTransport) {
		t.Fatalf("Error = %q", res.Error)
	}
}

func TestPostTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	res := newTestClient().Post(context.Background(), srv.URL, nil, Options{Timeout: 20 * time.Millisecond})
	if res.Success {
		t.Fatal("expected timeout failure")
	}

	var werr *Error
	if !errors.As(res.Err(), &werr) || werr.Kind != KindTimeout {
		t.Fatalf("Err() = %#v, want timeout", res.Err())
	}
}

func TestPostCanceledContextDoesNotRetry(t *testing.T) {
	rt := &flakyTransport{failures: 10}
	c := newTestClient()
	c.httpClient = &http.Client{Transport: rt}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := c.Post(ctx, "http://webhook.invalid/hook", nil, Options{Timeout: time.Second, Retries: 2})
	if res.Success {
		t.Fatal("expected failure")
	}
	if rt.calls > 1 {
		t.Fatalf("transport called %d times after cancel", rt.calls)
	}
}
