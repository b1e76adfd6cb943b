package webhook

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/set-night/astrocalc/internal/domain"
)

func TestExtractBirthChart(t *testing.T) {
	text := "**Güneş Burcu:** Koç\nAy Burcu: İkizler\nYükselen Burç: Terazi\n\nDoğum Haritası Yorumu:\nEnerjik ve meraklı bir yapın var."

	got := ExtractBirthChart(text)
	want := domain.BirthChartReading{
		SunSign:        "Koç",
		MoonSign:       "İkizler",
		RisingSign:     "Terazi",
		Interpretation: "Enerjik ve meraklı bir yapın var.",
	}
	if got != want {
		t.Fatalf("ExtractBirthChart() = %+v, want %+v", got, want)
	}
}

func TestExtractBirthChartLabelVariants(t *testing.T) {
	cases := []struct {
		name string
		text string
		sun  string
		moon string
		rise string
	}{
		{
			name: "possessive label",
			text: "Güneş Burcu: Koç\nAy Burcu: Yengeç\nYükselen Burcu: Aslan",
			sun:  "Koç", moon: "Yengeç", rise: "Aslan",
		},
		{
			name: "lowercase labels",
			text: "Güneş burcu: Koç\nAy burcu: Yengeç\nYükselen burç: Aslan",
			sun:  "Koç", moon: "Yengeç", rise: "Aslan",
		},
		{
			name: "uppercase labels with bold",
			text: "**GÜNEŞ BURCU:** Balık\n**AY BURCU:** Oğlak\n**YÜKSELEN BURCU:** Başak",
			sun:  "Balık", moon: "Oğlak", rise: "Başak",
		},
		{
			name: "bare rising label",
			text: "Yükselen: Terazi",
			rise: "Terazi",
		},
	}

	for _, tc := range cases {
		got := ExtractBirthChart(tc.text)
		if got.SunSign != tc.sun || got.MoonSign != tc.moon || got.RisingSign != tc.rise {
			t.Fatalf("%s: got sun=%q moon=%q rising=%q, want %q %q %q",
				tc.name, got.SunSign, got.MoonSign, got.RisingSign, tc.sun, tc.moon, tc.rise)
		}
	}
}

func TestExtractBirthChartWithoutMarker(t *testing.T) {
	got := ExtractBirthChart("  Yükselen: Aslan. Harita hazırlanamadı.  ")
	if got.RisingSign != "Aslan" || got.SunSign != "" || got.MoonSign != "" {
		t.Fatalf("unexpected signs: %+v", got)
	}
	if got.Interpretation != "Yükselen: Aslan. Harita hazırlanamadı." {
		t.Fatalf("Interpretation = %q", got.Interpretation)
	}
}

func TestNewBirthDataPayloadCoordinates(t *testing.T) {
	now := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	data := domain.BirthData{
		FullName:   "Ali Veli",
		BirthDate:  time.Date(1990, time.July, 15, 0, 0, 0, 0, time.UTC),
		BirthTime:  "08:45",
		BirthPlace: "İstanbul",
	}

	p := NewBirthDataPayload(data, "u1", "src", now)
	if p.Latitude != nil || p.Longitude != nil {
		t.Fatal("expected coordinates to be omitted")
	}
	if p.BirthDate != "1990-07-15" {
		t.Fatalf("BirthDate = %s", p.BirthDate)
	}

	data.Latitude = decimal.NewNullDecimal(decimal.RequireFromString("41.0082"))
	data.Longitude = decimal.NewNullDecimal(decimal.RequireFromString("28.9784"))
	p = NewBirthDataPayload(data, "u1", "src", now)
	if p.Latitude == nil || p.Latitude.String() != "41.0082" || p.Longitude.String() != "28.9784" {
		t.Fatalf("unexpected coordinates: %v %v", p.Latitude, p.Longitude)
	}
}
