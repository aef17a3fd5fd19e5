package httpapi

import (
	"context"
	"encoding/json"

	"github.com/Austin-Patrician/eastmoney/internal/server/models"
	"github.com/Austin-Patrician/eastmoney/internal/server/services"
)

type fakeUsers struct {
	registerFn func(services.RegisterInput) (*services.AuthResult, error)
	loginFn    func(services.LoginInput) (*services.AuthResult, error)
	getFn      func(userID string) (*models.User, error)
	changeFn   func(userID string, in services.ChangePasswordInput) error
}

func (f *fakeUsers) Register(_ context.Context, in services.RegisterInput) (*services.AuthResult, error) {
	return f.registerFn(in)
}

func (f *fakeUsers) Login(_ context.Context, in services.LoginInput) (*services.AuthResult, error) {
	return f.loginFn(in)
}

func (f *fakeUsers) GetCurrentUser(_ context.Context, userID string) (*models.User, error) {
	return f.getFn(userID)
}

func (f *fakeUsers) ChangePassword(_ context.Context, userID string, in services.ChangePasswordInput) error {
	return f.changeFn(userID, in)
}

type fakeFunds struct {
	gotUserID string
	gotID     string
	gotPatch  models.FundPatch

	list    []*models.Fund
	fund    *models.Fund
	results []json.RawMessage
	err     error
}

func (f *fakeFunds) List(_ context.Context, userID string) ([]*models.Fund, error) {
	f.gotUserID = userID
	return f.list, f.err
}

func (f *fakeFunds) Add(_ context.Context, userID string, in services.FundInput) (*models.Fund, error) {
	f.gotUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	return &models.Fund{ID: "f1", FundCode: in.FundCode, FundName: in.FundName, FocusBoards: []string{}}, nil
}

func (f *fakeFunds) Update(_ context.Context, userID, id string, patch models.FundPatch) (*models.Fund, error) {
	f.gotUserID, f.gotID, f.gotPatch = userID, id, patch
	return f.fund, f.err
}

func (f *fakeFunds) Delete(_ context.Context, userID, id string) error {
	f.gotUserID, f.gotID = userID, id
	return f.err
}

func (f *fakeFunds) Search(_ context.Context, keyword string) ([]json.RawMessage, error) {
	return f.results, f.err
}

type fakeSettings struct {
	gotUserID string
	st        *models.Settings
	err       error
}

func (f *fakeSettings) Get(_ context.Context, userID string) (*models.Settings, error) {
	f.gotUserID = userID
	return f.st, f.err
}

func (f *fakeSettings) Update(_ context.Context, userID string, patch models.SettingsPatch) (*models.Settings, error) {
	f.gotUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	st := *f.st
	patch.Apply(&st)
	return &st, nil
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

type fakeProbe bool

func (p fakeProbe) Health(context.Context) bool { return bool(p) }
