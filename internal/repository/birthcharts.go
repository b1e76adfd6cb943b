package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/set-night/astrocalc/internal/domain"
)

func (q *Queries) InsertBirthChartData(ctx context.Context, userID string, data domain.BirthData) (*domain.BirthChartRecord, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	id := uuid.New()
	rec := &domain.BirthChartRecord{ID: id.String(), UserID: userID, Data: data}
	err = q.db.QueryRow(ctx, `
        INSERT INTO birth_chart_data (id, user_id, full_name, birth_date, birth_time, birth_place, latitude, longitude)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at`,
		id, uid, data.FullName, data.BirthDate, data.BirthTime, data.BirthPlace, data.Latitude, data.Longitude,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert birth chart data: %w", err)
	}
	return rec, nil
}

func (q *Queries) LatestBirthChartData(ctx context.Context, userID string) (*domain.BirthChartRecord, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrBirthDataMissing
	}

	var rec domain.BirthChartRecord
	var id uuid.UUID
	err = q.db.QueryRow(ctx, `
        SELECT id, full_name, birth_date, birth_time, birth_place, latitude, longitude, created_at
        FROM birth_chart_data
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT 1`, uid,
	).Scan(&id, &rec.Data.FullName, &rec.Data.BirthDate, &rec.Data.BirthTime, &rec.Data.BirthPlace,
		&rec.Data.Latitude, &rec.Data.Longitude, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBirthDataMissing
		}
		return nil, fmt.Errorf("latest birth chart data: %w", err)
	}
	rec.ID = id.String()
	rec.UserID = userID
	return &rec, nil
}
