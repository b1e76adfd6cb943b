package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/set-night/astrocalc/internal/domain"
)

func (q *Queries) InsertInterpretation(ctx context.Context, userID string, reading domain.BirthChartReading, raw string) (*domain.AstrologyInterpretation, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	id := uuid.New()
	in := &domain.AstrologyInterpretation{
		ID:          id.String(),
		UserID:      userID,
		Reading:     reading,
		RawResponse: raw,
	}
	err = q.db.QueryRow(ctx, `
        INSERT INTO astrology_interpretations (id, user_id, sun_sign, moon_sign, rising_sign, interpretation, raw_response)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at`,
		id, uid, reading.SunSign, reading.MoonSign, reading.RisingSign, reading.Interpretation, raw,
	).Scan(&in.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert interpretation: %w", err)
	}
	return in, nil
}

func (q *Queries) LatestInterpretation(ctx context.Context, userID string) (*domain.AstrologyInterpretation, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrInterpretationNotFound
	}

	var in domain.AstrologyInterpretation
	var id uuid.UUID
	err = q.db.QueryRow(ctx, `
        SELECT id, sun_sign, moon_sign, rising_sign, interpretation, raw_response, created_at
        FROM astrology_interpretations
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT 1`, uid,
	).Scan(&id, &in.Reading.SunSign, &in.Reading.MoonSign, &in.Reading.RisingSign,
		&in.Reading.Interpretation, &in.RawResponse, &in.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInterpretationNotFound
		}
		return nil, fmt.Errorf("latest interpretation: %w", err)
	}
	in.ID = id.String()
	in.UserID = userID
	return &in, nil
}
