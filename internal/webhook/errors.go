package webhook

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

type ErrorKind int

const (
	KindTransport ErrorKind = iota + 1
	KindTimeout
	KindHTTP
	KindEncode
	KindCanceled
)

// Error is a failed webhook call. Message is safe to show to the user as-is.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

const maxErrorMessageRunes = 300

func kindMessage(kind ErrorKind) string {
	switch kind {
	case KindTimeout:
		return "İstek zaman aşımına uğradı. Lütfen daha sonra tekrar deneyin."
	case KindTransport:
		return "Sunucuya ulaşılamadı. İnternet bağlantınızı kontrol edip tekrar deneyin."
	case KindCanceled:
		return "İstek iptal edildi."
	case KindEncode:
		return "İstek hazırlanamadı."
	default:
		return "Beklenmeyen bir hata oluştu."
	}
}

// statusMessage builds the user-facing text for a non-2xx reply. 429 bodies are shown unchanged.
func statusMessage(status int, msg string) string {
	if status == http.StatusTooManyRequests {
		if msg == "" {
			return "Çok fazla istek gönderildi. Lütfen biraz bekleyin."
		}
		return msg
	}

	var prefix string
	switch {
	case status == http.StatusBadRequest:
		prefix = "Geçersiz istek"
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		prefix = "Yetkilendirme hatası"
	case status == http.StatusNotFound:
		prefix = "Servis bulunamadı"
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		prefix = "Zaman aşımı"
	case status >= 500:
		prefix = "Sunucu hatası"
	default:
		prefix = "İstek hatası"
	}

	if msg == "" {
		return fmt.Sprintf("%s (%d)", prefix, status)
	}
	return fmt.Sprintf("%s (%d): %s", prefix, status, msg)
}

// extractMessage pulls message/error out of a JSON body, falling back to the raw text.
func extractMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var obj map[string]any
	if json.Unmarshal([]byte(trimmed), &obj) == nil {
		for _, key := range []string{"message", "error"} {
			switch v := obj[key].(type) {
			case string:
				if v != "" {
					return truncate(v)
				}
			case map[string]any:
				if m, ok := v["message"].(string); ok && m != "" {
					return truncate(m)
				}
			}
		}
	}

	if looksLikeHTML(trimmed) {
		if text := htmlToText(trimmed); text != "" {
			return truncate(text)
		}
	}
	return truncate(trimmed)
}

func truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxErrorMessageRunes {
		return s
	}
	r := []rune(s)
	return string(r[:maxErrorMessageRunes]) + "…"
}
