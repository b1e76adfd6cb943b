package telegram

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/set-night/astrocalc/internal/config"
	"github.com/set-night/astrocalc/internal/domain"
)

func TestSplitMessage(t *testing.T) {
	if got := SplitMessage("kısa", 10); len(got) != 1 || got[0] != "kısa" {
		t.Fatalf("short text = %v", got)
	}

	text := strings.Repeat("ş", 25)
	parts := SplitMessage(text, 10)
	if len(parts) != 3 || strings.Join(parts, "") != text {
		t.Fatalf("split = %v", parts)
	}
	for _, p := range parts {
		if utf8.RuneCountInString(p) > 10 {
			t.Fatalf("part too long: %d runes", utf8.RuneCountInString(p))
		}
	}

	lines := "aaaaaaa\nbbbbbbbbbb"
	parts = SplitMessage(lines, 10)
	if parts[0] != "aaaaaaa\n" || parts[1] != "bbbbbbbbbb" {
		t.Fatalf("newline split = %q", parts)
	}
}

func TestFixMarkdown(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"düz metin", "düz metin"},
		{"`açık kod", "`açık kod`"},
		{"```\nblok", "```\nblok\n```"},
		{"`a` ve `b`", "`a` ve `b`"},
	}
	for _, tc := range cases {
		if got := FixMarkdown(tc.in); got != tc.want {
			t.Fatalf("FixMarkdown(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEscapeMarkdown(t *testing.T) {
	if got := EscapeMarkdown("ali_veli*[x]`"); got != "ali\\_veli\\*\\[x]\\`" {
		t.Fatalf("EscapeMarkdown = %q", got)
	}
}

func TestSignKeyboard(t *testing.T) {
	kb := SignKeyboard(CallbackSign)
	if len(kb.InlineKeyboard) != 4 {
		t.Fatalf("rows = %d, want 4", len(kb.InlineKeyboard))
	}
	first := kb.InlineKeyboard[0][0]
	if first.CallbackData != "sign_aries" || !strings.Contains(first.Text, "Koç") {
		t.Fatalf("first button = %+v", first)
	}
	last := kb.InlineKeyboard[3][2]
	if last.CallbackData != "sign_pisces" {
		t.Fatalf("last button = %+v", last)
	}
}

func TestPaginationRow(t *testing.T) {
	row := PaginationRow(0, 3, CallbackHistoryPage)
	if len(row) != 2 || row[1].CallbackData != "history_page_1" {
		t.Fatalf("first page row = %+v", row)
	}
	row = PaginationRow(2, 3, CallbackHistoryPage)
	if len(row) != 2 || row[0].CallbackData != "history_page_1" || row[1].Text != "3/3" {
		t.Fatalf("last page row = %+v", row)
	}
}

func TestTelegramLoggerWithoutBotIsNoop(t *testing.T) {
	var nilLogger *TelegramLogger
	nilLogger.LogError(errors.New("boom"), "test")

	l := NewTelegramLogger(nil, &config.Config{LogTelegramChatID: 1, LogTopicError: 2})
	l.LogError(errors.New("boom"), "test")
	l.LogRegistration(&domain.UserProfile{TelegramID: 7, FullName: "Ayşe"})
	l.LogBirthChart(&domain.UserProfile{TelegramID: 7}, &domain.AstrologyInterpretation{})

	if got := l.topicID(LogTypeBirthChart); got != 0 {
		t.Fatalf("unset birth chart topic = %d, want 0", got)
	}
	if got := l.topicID(LogTypeError); got != 2 {
		t.Fatalf("error topic = %d, want 2", got)
	}
}
