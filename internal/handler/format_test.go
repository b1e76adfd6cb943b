package handler

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/set-night/astrocalc/internal/domain"
	"github.com/set-night/astrocalc/internal/zodiac"
)

func TestCommandArgs(t *testing.T) {
	cases := []struct {
		text    string
		wantCmd string
		wantArg string
	}{
		{text: "/burc", wantCmd: "/burc"},
		{text: "/burc Koç", wantCmd: "/burc", wantArg: "Koç"},
		{text: "/BURCUM@astrocalc_bot", wantCmd: "/burcum"},
		{text: "/uyum@astrocalc_bot  Koç   Aslan ", wantCmd: "/uyum", wantArg: "Koç   Aslan"},
		{text: "/dogum Ayşe; 15.07.1990; 14:30; İzmir", wantCmd: "/dogum", wantArg: "Ayşe; 15.07.1990; 14:30; İzmir"},
	}

	for _, tc := range cases {
		cmd, arg := commandArgs(tc.text)
		if cmd != tc.wantCmd || arg != tc.wantArg {
			t.Fatalf("commandArgs(%q) = %q, %q; want %q, %q", tc.text, cmd, arg, tc.wantCmd, tc.wantArg)
		}
	}
}

func TestSignCommand(t *testing.T) {
	cases := []struct {
		text    string
		wantCmd string
		wantArg string
		ok      bool
	}{
		{text: "/burc", wantCmd: "/burc", ok: true},
		{text: "/burc Koç", wantCmd: "/burc", wantArg: "Koç", ok: true},
		{text: "/BURCUM@astrocalc_bot", wantCmd: "/burcum", ok: true},
		{text: "/burcx", wantCmd: "/burcx"},
		{text: "/burcumuz Aslan", wantCmd: "/burcumuz", wantArg: "Aslan"},
	}

	for _, tc := range cases {
		cmd, arg, ok := signCommand(tc.text)
		if cmd != tc.wantCmd || arg != tc.wantArg || ok != tc.ok {
			t.Fatalf("signCommand(%q) = %q, %q, %t; want %q, %q, %t", tc.text, cmd, arg, ok, tc.wantCmd, tc.wantArg, tc.ok)
		}
	}
}

func TestIsClearAll(t *testing.T) {
	cases := []struct {
		arg  string
		want bool
	}{
		{arg: "hepsi", want: true},
		{arg: "Hepsi", want: true},
		{arg: "HEPSİ", want: true},
		{arg: "  hepsi ", want: true},
		{arg: ""},
		{arg: "bazı"},
		{arg: "HEPSI", want: true},
		{arg: "hepsi değil"},
	}

	for _, tc := range cases {
		if got := isClearAll(tc.arg); got != tc.want {
			t.Fatalf("isClearAll(%q) = %t, want %t", tc.arg, got, tc.want)
		}
	}
}

func TestCallbackPage(t *testing.T) {
	if n, ok := callbackPage("history_page_3", "history_page"); !ok || n != 3 {
		t.Fatalf("got %d %v, want 3 true", n, ok)
	}
	for _, data := range []string{"history_page_", "history_page_x", "history_page_-1"} {
		if _, ok := callbackPage(data, "history_page"); ok {
			t.Fatalf("callbackPage(%q) should fail", data)
		}
	}
}

func TestFormatSignCard(t *testing.T) {
	aries, _ := zodiac.GetSign("aries")
	got := formatSignCard(aries)

	for _, want := range []string{"♈ *Koç*", "21 Mart - 19 Nisan", "Mars", "Cesur, Enerjik", "1, 8, 17", "Kırmızı"} {
		if !strings.Contains(got, want) {
			t.Fatalf("sign card missing %q:\n%s", want, got)
		}
	}
}

func TestFormatCompatibility(t *testing.T) {
	aries, _ := zodiac.GetSign("aries")
	leo, _ := zodiac.GetSign("leo")

	got := formatCompatibility(zodiac.CalculateCompatibility(aries, leo))
	if !strings.Contains(got, "Yüksek uyum") || !strings.Contains(got, "85/100") {
		t.Fatalf("unexpected compatibility text:\n%s", got)
	}
}

func TestFormatInterpretationDashesMissingSigns(t *testing.T) {
	got := formatInterpretation(&domain.AstrologyInterpretation{
		Reading: domain.BirthChartReading{SunSign: "Yengeç", Interpretation: "Duygusal bir yapın var."},
	})

	if !strings.Contains(got, "*Güneş burcu:* Yengeç") {
		t.Fatalf("missing sun sign:\n%s", got)
	}
	if !strings.Contains(got, "*Ay burcu:* -") || !strings.Contains(got, "*Yükselen:* -") {
		t.Fatalf("missing signs should render as dashes:\n%s", got)
	}
	if !strings.HasSuffix(got, "Duygusal bir yapın var.") {
		t.Fatalf("interpretation should close the message:\n%s", got)
	}
}

func TestFormatProfile(t *testing.T) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	birth := time.Date(1990, time.July, 15, 0, 0, 0, 0, time.UTC)

	got := formatProfile(&domain.UserProfile{
		FullName:   "Ayşe_Yılmaz",
		BirthDate:  &birth,
		BirthTime:  "14:30",
		BirthPlace: "İstanbul",
		ZodiacSign: "cancer",
	}, now)

	for _, want := range []string{`Ayşe\_Yılmaz`, "15.07.1990 (33 yaş)", "14:30", "♋ Yengeç"} {
		if !strings.Contains(got, want) {
			t.Fatalf("profile missing %q:\n%s", want, got)
		}
	}

	empty := formatProfile(&domain.UserProfile{FullName: "Ali"}, now)
	if !strings.Contains(empty, "/dogum") {
		t.Fatalf("profile without birth data should point to /dogum:\n%s", empty)
	}
}

func TestFormatDiagnostics(t *testing.T) {
	report := domain.DiagnosticsReport{Checks: []domain.DiagnosticCheck{
		{Name: "database", OK: true, Duration: 3 * time.Millisecond},
		{Name: "chat_webhook", OK: false, Detail: "connection refused"},
	}}

	got := formatDiagnostics(report)
	if !strings.Contains(got, "Sorunlu kontroller var") {
		t.Fatalf("unhealthy report should say so:\n%s", got)
	}
	if !strings.Contains(got, "✅ *database* (3 ms)") || !strings.Contains(got, `❌ *chat\_webhook*`) {
		t.Fatalf("unexpected check lines:\n%s", got)
	}
}

func TestFormatUserList(t *testing.T) {
	if got := formatUserList("zeynep", nil); !strings.Contains(got, "bulunamadı") {
		t.Fatalf("empty result text = %q", got)
	}

	got := formatUserList("ay", []domain.UserProfile{
		{FullName: "Ayşe", TelegramID: 42, Username: "ayse_k", ZodiacSign: "leo"},
	})
	if !strings.Contains(got, "`42`") || !strings.Contains(got, `@ayse\_k`) || !strings.Contains(got, "♌") {
		t.Fatalf("unexpected user list:\n%s", got)
	}
}

func TestHistoryPage(t *testing.T) {
	base := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	var msgs []domain.ChatMessage
	for i := range 5 {
		msgs = append(msgs, domain.ChatMessage{
			Text:      fmt.Sprintf("mesaj-%d", i),
			IsUser:    i%2 == 0,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
	}

	text, page, total := historyPage(msgs, 0, 2)
	if page != 0 || total != 3 {
		t.Fatalf("page/total = %d/%d, want 0/3", page, total)
	}
	if !strings.Contains(text, "mesaj-3") || !strings.Contains(text, "mesaj-4") || strings.Contains(text, "mesaj-2") {
		t.Fatalf("first page should hold the two newest messages:\n%s", text)
	}
	if strings.Index(text, "mesaj-3") > strings.Index(text, "mesaj-4") {
		t.Fatal("messages within a page should be oldest first")
	}

	text, page, _ = historyPage(msgs, 9, 2)
	if page != 2 {
		t.Fatalf("out of range page clamped to %d, want 2", page)
	}
	if !strings.Contains(text, "mesaj-0") || strings.Contains(text, "mesaj-1") {
		t.Fatalf("last page should hold only the oldest message:\n%s", text)
	}

	text, page, total = historyPage(nil, 0, 2)
	if page != 0 || total != 1 || !strings.Contains(text, "boş") {
		t.Fatalf("empty history = %q %d/%d", text, page, total)
	}
}

func TestSnippet(t *testing.T) {
	if got := snippet("kısa", 10); got != "kısa" {
		t.Fatalf("snippet = %q", got)
	}
	if got := snippet("çğıöşü", 3); got != "çğı..." {
		t.Fatalf("snippet should cut on runes, got %q", got)
	}
}
