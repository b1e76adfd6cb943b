package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/set-night/astrocalc/internal/domain"
)

func (q *Queries) GetDailyHoroscope(ctx context.Context, userID string, date time.Time) (*domain.DailyHoroscope, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrHoroscopeNotFound
	}

	var h domain.DailyHoroscope
	var id uuid.UUID
	err = q.db.QueryRow(ctx, `
        SELECT id, horoscope_date, comment, created_at
        FROM daily_horoscopes
        WHERE user_id = $1 AND horoscope_date = $2`, uid, dateOnly(date),
	).Scan(&id, &h.HoroscopeDate, &h.Comment, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHoroscopeNotFound
		}
		return nil, fmt.Errorf("get daily horoscope: %w", err)
	}
	h.ID = id.String()
	h.UserID = userID
	h.Source = domain.HoroscopeSourceDatabase
	return &h, nil
}

// UpsertDailyHoroscope keeps one row per user and day, overwriting the comment.
func (q *Queries) UpsertDailyHoroscope(ctx context.Context, userID string, date time.Time, comment string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	_, err = q.db.Exec(ctx, `
        INSERT INTO daily_horoscopes (id, user_id, horoscope_date, comment)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (user_id, horoscope_date) DO UPDATE SET comment = EXCLUDED.comment`,
		uuid.New(), uid, dateOnly(date), comment)
	if err != nil {
		return fmt.Errorf("upsert daily horoscope: %w", err)
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
