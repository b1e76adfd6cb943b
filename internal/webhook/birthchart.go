package webhook

import (
	"regexp"
	"strings"

	"github.com/set-night/astrocalc/internal/domain"
)

var (
	sunSignPattern    = regexp.MustCompile(`(?i)Güneş\s+Burcu\**\s*[:：]\s*\**\s*(\p{L}+)`)
	moonSignPattern   = regexp.MustCompile(`(?i)\bAy\s+Burcu\**\s*[:：]\s*\**\s*(\p{L}+)`)
	risingSignPattern = regexp.MustCompile(`(?i)Yükselen(?:\s+Bur(?:ç|cu))?\**\s*[:：]\s*\**\s*(\p{L}+)`)
)

const interpretationMarker = "Doğum Haritası Yorumu:"

// ExtractBirthChart picks the sign names and the interpretation out of a birth-chart reply.
// Missing signs are left empty. Without the section marker the whole text is the interpretation.
func ExtractBirthChart(text string) domain.BirthChartReading {
	var r domain.BirthChartReading
	r.SunSign = firstGroup(sunSignPattern, text)
	r.MoonSign = firstGroup(moonSignPattern, text)
	r.RisingSign = firstGroup(risingSignPattern, text)

	if i := strings.Index(text, interpretationMarker); i >= 0 {
		r.Interpretation = strings.TrimSpace(text[i+len(interpretationMarker):])
	} else {
		r.Interpretation = strings.TrimSpace(text)
	}
	r.Interpretation = strings.Trim(r.Interpretation, "* \n")
	return r
}

func firstGroup(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}
