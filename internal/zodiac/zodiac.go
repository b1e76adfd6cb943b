// Package zodiac holds the static sign table and the pure lookups built on it.
package zodiac

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/set-night/astrocalc/internal/config"
	"github.com/set-night/astrocalc/internal/domain"
)

var diacriticFolder = strings.NewReplacer(
	"ç", "c", "ğ", "g", "ı", "i", "ö", "o", "ş", "s", "ü", "u", "â", "a", "î", "i", "û", "u",
)

// fold lowercases with Turkish casing rules and strips Turkish diacritics.
func fold(s string) string {
	s = strings.ToLowerSpecial(unicode.TurkishCase, strings.TrimSpace(s))
	return diacriticFolder.Replace(s)
}

// All returns every sign, ordered Aries..Pisces.
func All() []domain.ZodiacSign {
	out := make([]domain.ZodiacSign, len(signs))
	for i, s := range signs {
		out[i] = clone(s)
	}
	return out
}

// GetSign looks a sign up by its id, ignoring case. No fuzzy matching is done.
func GetSign(key string) (domain.ZodiacSign, bool) {
	i, ok := byID[strings.ToLower(key)]
	if !ok {
		return domain.ZodiacSign{}, false
	}
	return clone(signs[i]), true
}

// ResolveSign accepts either a sign id or its Turkish name, e.g. "koc", "Koç" or "aries".
func ResolveSign(input string) (domain.ZodiacSign, bool) {
	key := fold(input)
	if i, ok := byID[key]; ok {
		return clone(signs[i]), true
	}
	if i, ok := byName[key]; ok {
		return clone(signs[i]), true
	}
	return domain.ZodiacSign{}, false
}

// GetSignByBirthDate maps a calendar date onto its tropical sign.
func GetSignByBirthDate(t time.Time) (domain.ZodiacSign, bool) {
	id := signIDForDate(t.Month(), t.Day())
	if id == "" {
		return domain.ZodiacSign{}, false
	}
	return GetSign(id)
}

func signIDForDate(month time.Month, day int) string {
	switch {
	case (month == time.March && day >= 21) || (month == time.April && day <= 19):
		return "aries"
	case (month == time.April && day >= 20) || (month == time.May && day <= 20):
		return "taurus"
	case (month == time.May && day >= 21) || (month == time.June && day <= 20):
		return "gemini"
	case (month == time.June && day >= 21) || (month == time.July && day <= 22):
		return "cancer"
	case (month == time.July && day >= 23) || (month == time.August && day <= 22):
		return "leo"
	case (month == time.August && day >= 23) || (month == time.September && day <= 22):
		return "virgo"
	case (month == time.September && day >= 23) || (month == time.October && day <= 22):
		return "libra"
	case (month == time.October && day >= 23) || (month == time.November && day <= 21):
		return "scorpio"
	case (month == time.November && day >= 22) || (month == time.December && day <= 21):
		return "sagittarius"
	case (month == time.December && day >= 22) || (month == time.January && day <= 19):
		return "capricorn"
	case (month == time.January && day >= 20) || (month == time.February && day <= 18):
		return "aquarius"
	case (month == time.February && day >= 19) || (month == time.March && day <= 20):
		return "pisces"
	}
	return ""
}

// CalculateCompatibility is a table lookup with two canned outcomes.
func CalculateCompatibility(a, b domain.ZodiacSign) domain.Compatibility {
	if slices.Contains(a.Compatibility, b.Name) {
		return domain.Compatibility{
			SignA:       a.Name,
			SignB:       b.Name,
			Level:       domain.CompatibilityCompatible,
			Score:       config.CompatibleScore,
			Description: fmt.Sprintf("%s ve %s birbirini doğal olarak tamamlayan iki burç. Aranızdaki enerji uyumlu ve destekleyici.", a.Name, b.Name),
			Strengths:   []string{"Güçlü duygusal bağ", "Ortak hedefler", "Karşılıklı anlayış"},
			Challenges:  []string{"Rutine kapılma riski", "Birbirini fazla hafife alma"},
		}
	}
	return domain.Compatibility{
		SignA:       a.Name,
		SignB:       b.Name,
		Level:       domain.CompatibilityModerate,
		Score:       config.ModerateScore,
		Description: fmt.Sprintf("%s ve %s farklı dünyalardan geliyor. Emek ve iletişimle dengeli bir ilişki kurulabilir.", a.Name, b.Name),
		Strengths:   []string{"Birbirinden öğrenme fırsatı", "Farklı bakış açıları"},
		Challenges:  []string{"İletişim kopuklukları", "Farklı beklentiler", "Sabır gerektiren anlar"},
	}
}

func clone(s domain.ZodiacSign) domain.ZodiacSign {
	s.Traits.Positive = slices.Clone(s.Traits.Positive)
	s.Traits.Negative = slices.Clone(s.Traits.Negative)
	s.Compatibility = slices.Clone(s.Compatibility)
	s.LuckyNumbers = slices.Clone(s.LuckyNumbers)
	s.LuckyColors = slices.Clone(s.LuckyColors)
	return s
}
