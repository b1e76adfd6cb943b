package repository

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// pgDateToTimePtr converts a nullable DATE to *time.Time.
func pgDateToTimePtr(d pgtype.Date) *time.Time {
	if d.Valid {
		t := d.Time
		return &t
	}
	return nil
}

// timePtrToPgDate converts *time.Time to a nullable DATE. Zero times are stored as NULL.
func timePtrToPgDate(t *time.Time) pgtype.Date {
	if t == nil || t.IsZero() {
		return pgtype.Date{Valid: false}
	}
	return pgtype.Date{Time: dateOnly(*t), Valid: true}
}
