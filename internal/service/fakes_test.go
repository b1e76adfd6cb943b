package service

import (
	"context"
	"sync"
	"time"

	"github.com/set-night/astrocalc/internal/domain"
	"github.com/set-night/astrocalc/internal/repository"
	"github.com/set-night/astrocalc/internal/webhook"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{t: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type postCall struct {
	URL     string
	Payload any
	Options webhook.Options
}

// fakePoster replays results in order; the last one repeats.
type fakePoster struct {
	mu      sync.Mutex
	results []webhook.Result
	calls   []postCall
	block   chan struct{}
}

func okResult(body string) webhook.Result {
	return webhook.Result{Success: true, StatusCode: 200, Body: []byte(body)}
}

func (p *fakePoster) Post(ctx context.Context, url string, payload any, opts webhook.Options) webhook.Result {
	if p.block != nil {
		<-p.block
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, postCall{URL: url, Payload: payload, Options: opts})
	if len(p.results) == 0 {
		return okResult(`""`)
	}
	r := p.results[0]
	if len(p.results) > 1 {
		p.results = p.results[1:]
	}
	return r
}

func (p *fakePoster) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

type fakeRepo struct {
	mu              sync.Mutex
	profiles        map[string]*domain.UserProfile
	birthData       []domain.BirthChartRecord
	interpretations []domain.AstrologyInterpretation
	horoscopes      map[string]string
	horoscopeErr    error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		profiles:   map[string]*domain.UserProfile{},
		horoscopes: map[string]string{},
	}
}

func (r *fakeRepo) GetProfileByTelegramID(_ context.Context, telegramID int64) (*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.TelegramID == telegramID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeRepo) GetProfileByID(_ context.Context, id string) (*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) RegisterProfile(ctx context.Context, telegramID int64, fullName, username string, isAdmin bool) (*domain.UserProfile, bool, error) {
	if p, err := r.GetProfileByTelegramID(ctx, telegramID); err == nil {
		return p, false, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p := &domain.UserProfile{
		ID:         "user-" + username,
		TelegramID: telegramID,
		FullName:   fullName,
		Username:   username,
		IsAdmin:    isAdmin,
	}
	r.profiles[p.ID] = p
	cp := *p
	return &cp, true, nil
}

func (r *fakeRepo) UpdateProfile(_ context.Context, arg repository.UpdateProfileParams) (*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[arg.ID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	p.FullName = arg.FullName
	p.BirthDate = arg.BirthDate
	p.BirthTime = arg.BirthTime
	p.BirthPlace = arg.BirthPlace
	p.ZodiacSign = arg.ZodiacSign
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) FindProfilesByName(_ context.Context, name string, limit int) ([]domain.UserProfile, error) {
	return nil, nil
}

func (r *fakeRepo) InsertBirthChartData(_ context.Context, userID string, data domain.BirthData) (*domain.BirthChartRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := domain.BirthChartRecord{ID: "bc", UserID: userID, Data: data}
	r.birthData = append(r.birthData, rec)
	return &rec, nil
}

func (r *fakeRepo) LatestBirthChartData(_ context.Context, userID string) (*domain.BirthChartRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.birthData) == 0 {
		return nil, domain.ErrBirthDataMissing
	}
	rec := r.birthData[len(r.birthData)-1]
	return &rec, nil
}

func (r *fakeRepo) InsertInterpretation(_ context.Context, userID string, reading domain.BirthChartReading, raw string) (*domain.AstrologyInterpretation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	in := domain.AstrologyInterpretation{ID: "in", UserID: userID, Reading: reading, RawResponse: raw}
	r.interpretations = append(r.interpretations, in)
	return &in, nil
}

func (r *fakeRepo) LatestInterpretation(_ context.Context, userID string) (*domain.AstrologyInterpretation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.interpretations) == 0 {
		return nil, domain.ErrInterpretationNotFound
	}
	in := r.interpretations[len(r.interpretations)-1]
	return &in, nil
}

func (r *fakeRepo) GetDailyHoroscope(_ context.Context, userID string, date time.Time) (*domain.DailyHoroscope, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.horoscopeErr != nil {
		return nil, r.horoscopeErr
	}
	c, ok := r.horoscopes[userID+date.Format("2006-01-02")]
	if !ok {
		return nil, domain.ErrHoroscopeNotFound
	}
	return &domain.DailyHoroscope{UserID: userID, HoroscopeDate: date, Comment: c, Source: domain.HoroscopeSourceDatabase}, nil
}

func (r *fakeRepo) UpsertDailyHoroscope(_ context.Context, userID string, date time.Time, comment string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.horoscopes[userID+date.Format("2006-01-02")] = comment
	return nil
}
