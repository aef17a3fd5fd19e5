package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/Austin-Patrician/eastmoney/internal/common"
	"github.com/Austin-Patrician/eastmoney/internal/dbx"
	"github.com/Austin-Patrician/eastmoney/internal/server/models"
	"github.com/Austin-Patrician/eastmoney/internal/server/repositories/funds"
	"github.com/Austin-Patrician/eastmoney/internal/server/repositories/settings"
	"github.com/Austin-Patrician/eastmoney/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// --- users ---

type memUsers struct {
	mu     sync.Mutex
	byID   map[string]*models.User
	seq    int
	getErr error

	createCalls int
	// createErr, when set, is returned by Create after the lookups pass,
	// simulating a concurrent insert that won the race.
	createErr error
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]*models.User{}} }

func (r *memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, x := range r.byID {
		if x.Username == u.Username {
			return nil, common.ErrUsernameExists
		}
		if x.Email == u.Email {
			return nil, common.ErrEmailExists
		}
	}
	r.seq++
	c := *u
	c.ID = "u-" + strconv.Itoa(r.seq)
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.byID[c.ID] = &c
	out := c
	return &out, nil
}

func (r *memUsers) find(match func(*models.User) bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	for _, u := range r.byID {
		if match(u) {
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r *memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Username == username })
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r *memUsers) UpdatePassword(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *memUsers) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.byID, id)
	return nil
}

// --- funds ---

type memFunds struct {
	mu    sync.Mutex
	items []*models.Fund
	seq   int
	err   error
}

func (r *memFunds) List(_ context.Context, userID string) ([]*models.Fund, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []*models.Fund{}
	for _, f := range r.items {
		if f.UserID == userID {
			c := *f
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memFunds) Create(_ context.Context, f *models.Fund) (*models.Fund, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, x := range r.items {
		if x.UserID == f.UserID && x.FundCode == f.FundCode {
			return nil, common.ErrFundExists
		}
	}
	r.seq++
	c := *f
	c.ID = "f-" + strconv.Itoa(r.seq)
	if c.ScheduleInterval == "" {
		c.ScheduleInterval = models.DefaultScheduleInterval
	}
	c.CreatedAt = time.Unix(int64(r.seq), 0)
	c.UpdatedAt = c.CreatedAt
	r.items = append(r.items, &c)
	out := c
	return &out, nil
}

func (r *memFunds) GetByID(_ context.Context, userID, id string) (*models.Fund, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.items {
		if f.ID == id && f.UserID == userID {
			c := *f
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memFunds) Update(_ context.Context, f *models.Fund) (*models.Fund, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for i, x := range r.items {
		if x.ID == f.ID && x.UserID == f.UserID {
			c := *f
			r.items[i] = &c
			out := c
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memFunds) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, f := range r.items {
		if f.ID == id && f.UserID == userID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

// --- settings ---

type memSettings struct {
	mu        sync.Mutex
	byUser    map[string]*models.Settings
	getErr    error
	upsertErr error
	upserts   int
}

func newMemSettings() *memSettings { return &memSettings{byUser: map[string]*models.Settings{}} }

func (r *memSettings) GetByUserID(_ context.Context, userID string) (*models.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	s, ok := r.byUser[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *s
	return &c, nil
}

func (r *memSettings) Upsert(_ context.Context, s *models.Settings) (*models.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts++
	if r.upsertErr != nil {
		return nil, r.upsertErr
	}
	c := *s
	if existing, ok := r.byUser[s.UserID]; ok {
		c.ID = existing.ID
	} else if c.ID == "" {
		c.ID = "s-" + s.UserID
	}
	r.byUser[s.UserID] = &c
	out := c
	return &out, nil
}

// --- manager, transactor, searcher ---

type fakeRepoManager struct {
	users    *memUsers
	funds    *memFunds
	settings *memSettings
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{users: newMemUsers(), funds: &memFunds{}, settings: newMemSettings()}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return m.users }
func (m *fakeRepoManager) Funds(dbx.DBTX) funds.Repository              { return m.funds }
func (m *fakeRepoManager) Settings(dbx.DBTX) settings.Repository        { return m.settings }

type fakeTransactor struct {
	calls int
	err   error
}

func (t *fakeTransactor) WithinTx(ctx context.Context, fn dbx.TxFunc) error {
	t.calls++
	if t.err != nil {
		return t.err
	}
	return fn(ctx, nil)
}

type fakeSearcher struct {
	gotKeyword string
	out        []json.RawMessage
	err        error
}

func (s *fakeSearcher) SearchFunds(_ context.Context, keyword string) ([]json.RawMessage, error) {
	s.gotKeyword = keyword
	return s.out, s.err
}

