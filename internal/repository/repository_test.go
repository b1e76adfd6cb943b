package repository

import (
	"context"
	"errors"
	"io/fs"
	"math/rand/v2"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	astrocalc "github.com/set-night/astrocalc"
	"github.com/set-night/astrocalc/internal/domain"
)

// setupDB needs a disposable Postgres in DATABASE_URL.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	migrations, err := fs.Sub(astrocalc.MigrationsFS, "migrations")
	if err != nil {
		t.Fatalf("sub migrations fs: %v", err)
	}
	if err := RunMigrations(url, migrations); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := NewPool(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func registerTestProfile(t *testing.T, q *Queries, name string) *domain.UserProfile {
	t.Helper()
	telegramID := rand.Int64N(1<<40) + 1
	p, created, err := q.RegisterProfile(context.Background(), telegramID, name, "tester", false)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !created {
		t.Fatalf("expected a new profile for telegram id %d", telegramID)
	}
	t.Cleanup(func() {
		q.db.Exec(context.Background(), "DELETE FROM user_profiles WHERE telegram_id = $1", telegramID)
	})
	return p
}

func TestProfileLifecycle(t *testing.T) {
	q := New(setupDB(t))
	ctx := context.Background()

	p := registerTestProfile(t, q, "Zeynep Kaya")

	again, created, err := q.RegisterProfile(ctx, p.TelegramID, "Başka İsim", "yeni_kullanici", false)
	if err != nil {
		t.Fatalf("re-register: %v", err)
	}
	if created || again.ID != p.ID {
		t.Fatal("re-registration should return the existing profile")
	}
	if again.FullName != "Zeynep Kaya" || again.Username != "yeni_kullanici" {
		t.Fatalf("unexpected profile after re-register: %+v", again)
	}

	birth := time.Date(1992, time.August, 30, 0, 0, 0, 0, time.UTC)
	updated, err := q.UpdateProfile(ctx, UpdateProfileParams{
		ID:         p.ID,
		FullName:   "Zeynep Kaya",
		BirthDate:  &birth,
		BirthTime:  "06:15",
		BirthPlace: "İzmir",
		ZodiacSign: "virgo",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.HasBirthDate() || updated.ZodiacSign != "virgo" {
		t.Fatalf("unexpected profile after update: %+v", updated)
	}

	found, err := q.FindProfilesByName(ctx, "zeynep", 20)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	var hit bool
	for _, f := range found {
		if f.ID == p.ID {
			hit = true
		}
	}
	if !hit {
		t.Fatal("expected case-insensitive name search to find the profile")
	}

	if _, err := q.GetProfileByTelegramID(ctx, -1); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("missing profile err = %v", err)
	}
}

func TestBirthChartAndInterpretation(t *testing.T) {
	q := New(setupDB(t))
	ctx := context.Background()
	p := registerTestProfile(t, q, "Mehmet Demir")

	if _, err := q.LatestBirthChartData(ctx, p.ID); !errors.Is(err, domain.ErrBirthDataMissing) {
		t.Fatalf("expected ErrBirthDataMissing, got %v", err)
	}

	data := domain.BirthData{
		FullName:   "Mehmet Demir",
		BirthDate:  time.Date(1985, time.January, 10, 0, 0, 0, 0, time.UTC),
		BirthTime:  "23:05",
		BirthPlace: "Ankara",
		Latitude:   decimal.NewNullDecimal(decimal.RequireFromString("39.9334")),
		Longitude:  decimal.NewNullDecimal(decimal.RequireFromString("32.8597")),
	}
	if _, err := q.InsertBirthChartData(ctx, p.ID, data); err != nil {
		t.Fatalf("insert birth data: %v", err)
	}

	rec, err := q.LatestBirthChartData(ctx, p.ID)
	if err != nil {
		t.Fatalf("latest birth data: %v", err)
	}
	if rec.Data.BirthPlace != "Ankara" || !rec.Data.Latitude.Valid || !rec.Data.Latitude.Decimal.Equal(data.Latitude.Decimal) {
		t.Fatalf("unexpected record: %+v", rec)
	}

	reading := domain.BirthChartReading{SunSign: "Oğlak", MoonSign: "Yay", Interpretation: "Kararlı."}
	if _, err := q.InsertInterpretation(ctx, p.ID, reading, "raw"); err != nil {
		t.Fatalf("insert interpretation: %v", err)
	}
	latest, err := q.LatestInterpretation(ctx, p.ID)
	if err != nil {
		t.Fatalf("latest interpretation: %v", err)
	}
	if latest.Reading != reading || latest.RawResponse != "raw" {
		t.Fatalf("unexpected interpretation: %+v", latest)
	}
}

func TestDailyHoroscopeUpsert(t *testing.T) {
	q := New(setupDB(t))
	ctx := context.Background()
	p := registerTestProfile(t, q, "Elif Şahin")
	day := time.Date(2024, time.June, 1, 15, 0, 0, 0, time.UTC)

	if _, err := q.GetDailyHoroscope(ctx, p.ID, day); !errors.Is(err, domain.ErrHoroscopeNotFound) {
		t.Fatalf("expected ErrHoroscopeNotFound, got %v", err)
	}

	if err := q.UpsertDailyHoroscope(ctx, p.ID, day, "ilk"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := q.UpsertDailyHoroscope(ctx, p.ID, day, "ikinci"); err != nil {
		t.Fatalf("upsert again: %v", err)
	}

	h, err := q.GetDailyHoroscope(ctx, p.ID, day)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if h.Comment != "ikinci" || h.Source != domain.HoroscopeSourceDatabase {
		t.Fatalf("unexpected horoscope: %+v", h)
	}
}
