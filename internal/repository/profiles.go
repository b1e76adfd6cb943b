package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/set-night/astrocalc/internal/domain"
)

const profileColumns = `id, telegram_id, full_name, username, birth_date, birth_time,
    birth_place, zodiac_sign, is_admin, created_at, updated_at`

func scanProfile(row pgx.Row) (*domain.UserProfile, error) {
	var p domain.UserProfile
	var id uuid.UUID
	var birth pgtype.Date
	err := row.Scan(&id, &p.TelegramID, &p.FullName, &p.Username, &birth, &p.BirthTime,
		&p.BirthPlace, &p.ZodiacSign, &p.IsAdmin, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.ID = id.String()
	p.BirthDate = pgDateToTimePtr(birth)
	return &p, nil
}

func (q *Queries) GetProfileByTelegramID(ctx context.Context, telegramID int64) (*domain.UserProfile, error) {
	p, err := scanProfile(q.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM user_profiles WHERE telegram_id = $1`, telegramID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get profile by telegram id: %w", err)
	}
	return p, nil
}

func (q *Queries) GetProfileByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	p, err := scanProfile(q.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM user_profiles WHERE id = $1`, uid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// RegisterProfile inserts a profile for telegramID, or refreshes the username of an existing
// one. The bool reports whether a new row was created.
func (q *Queries) RegisterProfile(ctx context.Context, telegramID int64, fullName, username string, isAdmin bool) (*domain.UserProfile, bool, error) {
	var p domain.UserProfile
	var id uuid.UUID
	var birth pgtype.Date
	var inserted bool
	err := q.db.QueryRow(ctx, `
        INSERT INTO user_profiles (id, telegram_id, full_name, username, is_admin)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (telegram_id) DO UPDATE
            SET username = EXCLUDED.username,
                is_admin = user_profiles.is_admin OR EXCLUDED.is_admin,
                updated_at = NOW()
        RETURNING `+profileColumns+`, (xmax = 0) AS inserted`,
		uuid.New(), telegramID, fullName, username, isAdmin,
	).Scan(&id, &p.TelegramID, &p.FullName, &p.Username, &birth, &p.BirthTime,
		&p.BirthPlace, &p.ZodiacSign, &p.IsAdmin, &p.CreatedAt, &p.UpdatedAt, &inserted)
	if err != nil {
		return nil, false, fmt.Errorf("register profile: %w", err)
	}
	p.ID = id.String()
	p.BirthDate = pgDateToTimePtr(birth)
	return &p, inserted, nil
}

type UpdateProfileParams struct {
	ID         string
	FullName   string
	BirthDate  *time.Time
	BirthTime  string
	BirthPlace string
	ZodiacSign string
}

func (q *Queries) UpdateProfile(ctx context.Context, arg UpdateProfileParams) (*domain.UserProfile, error) {
	uid, err := uuid.Parse(arg.ID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	p, err := scanProfile(q.db.QueryRow(ctx, `
        UPDATE user_profiles
        SET full_name = $2, birth_date = $3, birth_time = $4, birth_place = $5,
            zodiac_sign = $6, updated_at = NOW()
        WHERE id = $1
        RETURNING `+profileColumns,
		uid, arg.FullName, timePtrToPgDate(arg.BirthDate), arg.BirthTime, arg.BirthPlace, arg.ZodiacSign))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}

// FindProfilesByName does a case-insensitive substring match on full_name.
func (q *Queries) FindProfilesByName(ctx context.Context, name string, limit int) ([]domain.UserProfile, error) {
	pattern := "%" + escapeLike(strings.ToLower(strings.TrimSpace(name))) + "%"
	rows, err := q.db.Query(ctx, `
        SELECT `+profileColumns+`
        FROM user_profiles
        WHERE LOWER(full_name) LIKE $1
        ORDER BY full_name
        LIMIT $2`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("find profiles: %w", err)
	}
	defer rows.Close()

	var out []domain.UserProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
