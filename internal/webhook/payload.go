package webhook

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/set-night/astrocalc/internal/config"
	"github.com/set-night/astrocalc/internal/domain"
)

type ChatPayload struct {
	Question  string `json:"question"`
	UserID    string `json:"userId"`
	FullName  string `json:"full_name"`
	Today     string `json:"today"`
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
}

func NewChatPayload(question, userID, fullName, source string, now time.Time) ChatPayload {
	return ChatPayload{
		Question:  question,
		UserID:    userID,
		FullName:  fullName,
		Today:     now.Format(config.WebhookDayLayout),
		Timestamp: now.UTC().Format(time.RFC3339),
		Source:    source,
	}
}

type BirthDataPayload struct {
	FullName   string           `json:"fullName"`
	BirthDate  string           `json:"birthDate"`
	BirthTime  string           `json:"birthTime"`
	BirthPlace string           `json:"birthPlace"`
	UserID     string           `json:"userId"`
	Timestamp  string           `json:"timestamp"`
	Source     string           `json:"source"`
	Latitude   *decimal.Decimal `json:"latitude,omitempty"`
	Longitude  *decimal.Decimal `json:"longitude,omitempty"`
}

func NewBirthDataPayload(data domain.BirthData, userID, source string, now time.Time) BirthDataPayload {
	p := BirthDataPayload{
		FullName:   data.FullName,
		BirthDate:  data.BirthDate.Format(config.CacheDateLayout),
		BirthTime:  data.BirthTime,
		BirthPlace: data.BirthPlace,
		UserID:     userID,
		Timestamp:  now.UTC().Format(time.RFC3339),
		Source:     source,
	}
	if data.Latitude.Valid && data.Longitude.Valid {
		lat, lon := data.Latitude.Decimal, data.Longitude.Decimal
		p.Latitude = &lat
		p.Longitude = &lon
	}
	return p
}
