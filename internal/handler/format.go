package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/set-night/astrocalc/internal/domain"
	"github.com/set-night/astrocalc/internal/service"
	tg "github.com/set-night/astrocalc/internal/telegram"
)

const historySnippetLen = 300

const msgUnknownCommand = "Bu komutu tanımıyorum. Komut listesi için /start yazabilirsin."

// commandArgs splits "/cmd@bot rest" into "/cmd" and the trimmed rest.
func commandArgs(text string) (string, string) {
	text = strings.TrimSpace(text)
	cmd, rest, _ := strings.Cut(text, " ")
	if at := strings.Index(cmd, "@"); at >= 0 {
		cmd = cmd[:at]
	}
	return strings.ToLower(cmd), strings.TrimSpace(rest)
}

// signCommand accepts only /burc and /burcum. The prefix route also delivers
// words like /burcx, which are reported as unknown.
func signCommand(text string) (string, string, bool) {
	cmd, arg := commandArgs(text)
	switch cmd {
	case "/burc", "/burcum":
		return cmd, arg, true
	}
	return cmd, arg, false
}

// isClearAll matches "hepsi" in Turkish casing (HEPSİ) and ASCII casing (HEPSI).
func isClearAll(arg string) bool {
	arg = strings.TrimSpace(arg)
	return strings.ToLowerSpecial(unicode.TurkishCase, arg) == "hepsi" || strings.EqualFold(arg, "hepsi")
}

// callbackPage parses the trailing page number of "<prefix>_<n>" callback data.
func callbackPage(data, prefix string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(data, prefix+"_"))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func formatSignCard(s domain.ZodiacSign) string {
	numbers := make([]string, len(s.LuckyNumbers))
	for i, n := range s.LuckyNumbers {
		numbers[i] = strconv.Itoa(n)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s *%s*\n_%s_\n\n", s.Symbol, s.Name, s.DateRange)
	fmt.Fprintf(&sb, "🔥 *Element:* %s\n", s.Element)
	fmt.Fprintf(&sb, "🪐 *Yönetici gezegen:* %s\n", s.Planet)
	fmt.Fprintf(&sb, "💎 *Taş:* %s\n", s.Gemstone)
	fmt.Fprintf(&sb, "🫀 *Vücut bölgesi:* %s\n\n", s.BodyPart)
	fmt.Fprintf(&sb, "✅ *Olumlu yönler:* %s\n", joinOrDash(s.Traits.Positive))
	fmt.Fprintf(&sb, "⚠️ *Zorlayıcı yönler:* %s\n\n", joinOrDash(s.Traits.Negative))
	fmt.Fprintf(&sb, "💞 *Uyumlu burçlar:* %s\n", joinOrDash(s.Compatibility))
	fmt.Fprintf(&sb, "🍀 *Şanslı sayılar:* %s\n", joinOrDash(numbers))
	fmt.Fprintf(&sb, "🎨 *Şanslı renkler:* %s", joinOrDash(s.LuckyColors))
	return sb.String()
}

func formatCompatibility(c domain.Compatibility) string {
	label := "🌗 Orta uyum"
	if c.Level == domain.CompatibilityCompatible {
		label = "💞 Yüksek uyum"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "*%s & %s*\n%s: *%d/100*\n\n", c.SignA, c.SignB, label, c.Score)
	sb.WriteString(c.Description)
	sb.WriteString("\n\n*Güçlü yanlar:*\n")
	for _, s := range c.Strengths {
		fmt.Fprintf(&sb, "• %s\n", s)
	}
	sb.WriteString("\n*Dikkat edilmesi gerekenler:*\n")
	for _, s := range c.Challenges {
		fmt.Fprintf(&sb, "• %s\n", s)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatInterpretation(in *domain.AstrologyInterpretation) string {
	var sb strings.Builder
	sb.WriteString("🪐 *Doğum Haritanız*\n\n")
	fmt.Fprintf(&sb, "☀️ *Güneş burcu:* %s\n", orDash(in.Reading.SunSign))
	fmt.Fprintf(&sb, "🌙 *Ay burcu:* %s\n", orDash(in.Reading.MoonSign))
	fmt.Fprintf(&sb, "⬆️ *Yükselen:* %s\n", orDash(in.Reading.RisingSign))
	if in.Reading.Interpretation != "" {
		sb.WriteString("\n")
		sb.WriteString(in.Reading.Interpretation)
	}
	if !in.CreatedAt.IsZero() {
		fmt.Fprintf(&sb, "\n\n_%s tarihinde oluşturuldu_", in.CreatedAt.Format("02.01.2006 15:04"))
	}
	return sb.String()
}

func formatHoroscope(h *domain.DailyHoroscope, sign domain.ZodiacSign) string {
	return fmt.Sprintf("%s *%s için günlük yorum* (%s)\n\n%s",
		sign.Symbol, sign.Name, h.HoroscopeDate.Format("02.01.2006"), h.Comment)
}

func formatProfile(p *domain.UserProfile, now time.Time) string {
	var sb strings.Builder
	sb.WriteString("👤 *Profiliniz*\n\n")
	fmt.Fprintf(&sb, "*Ad:* %s\n", tg.EscapeMarkdown(p.DisplayName()))
	if p.Username != "" {
		fmt.Fprintf(&sb, "*Kullanıcı adı:* @%s\n", tg.EscapeMarkdown(p.Username))
	}
	if p.HasBirthDate() {
		fmt.Fprintf(&sb, "*Doğum tarihi:* %s (%d yaş)\n", p.BirthDate.Format("02.01.2006"), service.Age(*p.BirthDate, now))
	} else {
		sb.WriteString("*Doğum tarihi:* -\n")
	}
	fmt.Fprintf(&sb, "*Doğum saati:* %s\n", orDash(p.BirthTime))
	fmt.Fprintf(&sb, "*Doğum yeri:* %s\n", tg.EscapeMarkdown(orDash(p.BirthPlace)))
	if sign, ok := service.SunSign(p); ok {
		fmt.Fprintf(&sb, "*Burç:* %s %s", sign.Symbol, sign.Name)
	} else {
		sb.WriteString("*Burç:* -\n\nDoğum bilgilerinizi /dogum ile ekleyebilirsiniz.")
	}
	return sb.String()
}

func formatDiagnostics(r domain.DiagnosticsReport) string {
	var sb strings.Builder
	status := "✅ Tüm kontroller başarılı"
	if !r.Healthy() {
		status = "❌ Sorunlu kontroller var"
	}
	fmt.Fprintf(&sb, "🩺 *Tanılama*\n%s\n\n", status)
	for _, c := range r.Checks {
		mark := "✅"
		if !c.OK {
			mark = "❌"
		}
		fmt.Fprintf(&sb, "%s *%s* (%d ms)\n", mark, tg.EscapeMarkdown(c.Name), c.Duration.Milliseconds())
		if c.Detail != "" {
			fmt.Fprintf(&sb, "    %s\n", tg.EscapeMarkdown(c.Detail))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatUserList(query string, users []domain.UserProfile) string {
	if len(users) == 0 {
		return fmt.Sprintf("🔍 \"%s\" için kullanıcı bulunamadı.", tg.EscapeMarkdown(query))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🔍 *\"%s\" için %d kullanıcı*\n\n", tg.EscapeMarkdown(query), len(users))
	for _, u := range users {
		fmt.Fprintf(&sb, "• %s `%d`", tg.EscapeMarkdown(u.DisplayName()), u.TelegramID)
		if u.Username != "" {
			fmt.Fprintf(&sb, " @%s", tg.EscapeMarkdown(u.Username))
		}
		if sign, ok := service.SunSign(&u); ok {
			fmt.Fprintf(&sb, " %s", sign.Symbol)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// historyPage renders one page of chat history. Page 0 holds the newest messages;
// each page is printed oldest first. The returned page is clamped into range.
func historyPage(msgs []domain.ChatMessage, page, size int) (string, int, int) {
	totalPages := (len(msgs) + size - 1) / size
	if totalPages == 0 {
		return "💬 Sohbet geçmişiniz boş. Bana bir soru yazarak başlayabilirsiniz.", 0, 1
	}
	if page >= totalPages {
		page = totalPages - 1
	}
	if page < 0 {
		page = 0
	}

	end := len(msgs) - page*size
	start := max(0, end-size)

	var sb strings.Builder
	fmt.Fprintf(&sb, "💬 *Sohbet geçmişi* (%d mesaj)\n\n", len(msgs))
	for _, m := range msgs[start:end] {
		who := "🔮 *Astrocalc*"
		if m.IsUser {
			who = "👤 *Siz*"
		}
		fmt.Fprintf(&sb, "%s _%s_\n%s\n\n", who, m.Timestamp.Format("02.01 15:04"), tg.EscapeMarkdown(snippet(m.Text, historySnippetLen)))
	}
	return strings.TrimRight(sb.String(), "\n"), page, totalPages
}

func snippet(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
