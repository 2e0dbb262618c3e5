package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"bettrack/internal/models/db_models"
	"bettrack/internal/models/response_models"

	"github.com/google/uuid"
)

// In-memory stand-ins for the repository layer so the service logic can
// be exercised without a database.

var errDBDown = errors.New("database unavailable")

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*db_models.User

	failIncrement bool
}

func newFakeUserRepo(users ...*db_models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*db_models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*db_models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*db_models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByGoogleID(_ context.Context, googleID string) (*db_models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Insert(_ context.Context, user *db_models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *db_models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) IncrementUsage(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failIncrement {
		return errDBDown
	}
	if u, ok := r.users[id]; ok {
		u.UsageCount++
	}
	return nil
}

func (r *fakeUserRepo) ResetUsage(_ context.Context, id uuid.UUID, resetDate time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.UsageCount = 0
		u.UsageResetDate = resetDate
	}
	return nil
}

func (r *fakeUserRepo) SetGoogleTokens(_ context.Context, id uuid.UUID, accessToken, refreshToken string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.GoogleAccessToken = &accessToken
		if refreshToken != "" {
			u.GoogleRefreshToken = &refreshToken
		}
	}
	return nil
}

func (r *fakeUserRepo) SetSheetLink(_ context.Context, id uuid.UUID, spreadsheetID, spreadsheetURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.SpreadsheetID = &spreadsheetID
		u.SpreadsheetURL = &spreadsheetURL
		u.SheetsConnected = true
	}
	return nil
}

func (r *fakeUserRepo) ClearSheetLink(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.SpreadsheetID = nil
		u.SpreadsheetURL = nil
		u.SheetsConnected = false
	}
	return nil
}

type fakeBetRepo struct {
	mu   sync.Mutex
	bets []db_models.Bet
}

func (r *fakeBetRepo) Insert(_ context.Context, bet *db_models.Bet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if bet.ID == uuid.Nil {
		bet.ID = uuid.New()
	}
	r.bets = append(r.bets, *bet)
	return nil
}

func (r *fakeBetRepo) HistoryPage(_ context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Bet, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var mine []db_models.Bet
	for i := len(r.bets) - 1; i >= 0; i-- {
		if r.bets[i].UserID == userID {
			mine = append(mine, r.bets[i])
		}
	}

	total := int64(len(mine))
	start := (page - 1) * pageSize
	if start >= len(mine) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(mine) {
		end = len(mine)
	}
	return mine[start:end], total, nil
}

func (r *fakeBetRepo) MarkSynced(_ context.Context, betID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bets {
		if r.bets[i].ID == betID {
			r.bets[i].SyncedToSheets = true
		}
	}
	return nil
}

type stubExtractor struct {
	fields response_models.BetFields
	raw    []byte
	err    error
	calls  int
}

func (e *stubExtractor) ExtractBetSlip(context.Context, string) (response_models.BetFields, []byte, error) {
	e.calls++
	if e.err != nil {
		return response_models.BetFields{}, nil, e.err
	}
	return e.fields, e.raw, nil
}

type stubSheets struct {
	mu         sync.Mutex
	appendErr  error
	appendRows int
}

func (s *stubSheets) Status(context.Context, uuid.UUID) (response_models.SheetsStatus, error) {
	return response_models.SheetsStatus{}, nil
}

func (s *stubSheets) EnsureLinked(context.Context, uuid.UUID) (response_models.SheetLink, error) {
	return response_models.SheetLink{}, nil
}

func (s *stubSheets) Append(context.Context, *db_models.User, response_models.BetFields, time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appendErr != nil {
		return s.appendErr
	}
	s.appendRows++
	return nil
}

func (s *stubSheets) SyncBet(context.Context, uuid.UUID, response_models.BetFields) error {
	return s.appendErr
}

func (s *stubSheets) Unlink(context.Context, uuid.UUID) error {
	return nil
}
