package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var birthTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

var (
	maxLatitude  = decimal.NewFromInt(90)
	maxLongitude = decimal.NewFromInt(180)
)

// BirthData is the birth form as collected from the user. Coordinates are optional.
type BirthData struct {
	FullName   string
	BirthDate  time.Time
	BirthTime  string
	BirthPlace string
	Latitude   decimal.NullDecimal
	Longitude  decimal.NullDecimal
}

// Validate checks the form against now and returns a *ValidationError on the first problem.
func (b BirthData) Validate(now time.Time) error {
	if utf8.RuneCountInString(strings.TrimSpace(b.FullName)) < 2 {
		return &ValidationError{Field: "fullName", Message: "Ad soyad en az 2 karakter olmalı."}
	}
	if b.BirthDate.IsZero() {
		return &ValidationError{Field: "birthDate", Message: "Doğum tarihi gerekli."}
	}
	if b.BirthDate.Year() < 1900 {
		return &ValidationError{Field: "birthDate", Message: "Doğum tarihi 1900'den önce olamaz."}
	}
	if b.BirthDate.After(now) {
		return &ValidationError{Field: "birthDate", Message: "Doğum tarihi gelecekte olamaz."}
	}
	if !birthTimePattern.MatchString(b.BirthTime) {
		return &ValidationError{Field: "birthTime", Message: "Doğum saati SS:DD biçiminde olmalı (ör. 14:30)."}
	}
	if strings.TrimSpace(b.BirthPlace) == "" {
		return &ValidationError{Field: "birthPlace", Message: "Doğum yeri gerekli."}
	}
	if b.Latitude.Valid != b.Longitude.Valid {
		return &ValidationError{Field: "coordinates", Message: "Enlem ve boylam birlikte girilmeli."}
	}
	if b.Latitude.Valid && b.Latitude.Decimal.Abs().GreaterThan(maxLatitude) {
		return &ValidationError{Field: "latitude", Message: "Enlem -90 ile 90 arasında olmalı."}
	}
	if b.Longitude.Valid && b.Longitude.Decimal.Abs().GreaterThan(maxLongitude) {
		return &ValidationError{Field: "longitude", Message: "Boylam -180 ile 180 arasında olmalı."}
	}
	return nil
}

// BirthChartRecord maps to a birth_chart_data row.
type BirthChartRecord struct {
	ID        string
	UserID    string
	Data      BirthData
	CreatedAt time.Time
}

// BirthChartReading is what gets pulled out of the free-text webhook reply.
type BirthChartReading struct {
	SunSign        string
	MoonSign       string
	RisingSign     string
	Interpretation string
}

// AstrologyInterpretation maps to an astrology_interpretations row.
type AstrologyInterpretation struct {
	ID          string
	UserID      string
	Reading     BirthChartReading
	RawResponse string
	CreatedAt   time.Time
}
