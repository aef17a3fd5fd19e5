package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Austin-Patrician/eastmoney/internal/client/models"
)

var errBoom = errors.New("boom")

// fakeClient implements client.Client for the service tests.
type fakeClient struct {
	session *models.Session
	authErr error

	me    *models.User
	meErr error

	funds    []models.Fund
	fundsErr error
	added    *models.NewFund
	addErr   error
	deleted  string
	delErr   error
	searched string
	results  []json.RawMessage

	pingErr error

	loggedOut bool

	lastUsername string
	lastEmail    string
	lastPassword string
}

func (f *fakeClient) Register(_ context.Context, username, email string, password []byte) (*models.Session, error) {
	f.lastUsername, f.lastEmail, f.lastPassword = username, email, string(password)
	if f.authErr != nil {
		return nil, f.authErr
	}
	return f.session, nil
}

func (f *fakeClient) Login(_ context.Context, email string, password []byte) (*models.Session, error) {
	f.lastEmail, f.lastPassword = email, string(password)
	if f.authErr != nil {
		return nil, f.authErr
	}
	return f.session, nil
}

func (f *fakeClient) Logout() { f.loggedOut = true }

func (f *fakeClient) Me(context.Context) (*models.User, error) { return f.me, f.meErr }

func (f *fakeClient) ListFunds(context.Context) ([]models.Fund, error) { return f.funds, f.fundsErr }

func (f *fakeClient) AddFund(_ context.Context, nf models.NewFund) (*models.Fund, error) {
	f.added = &nf
	if f.addErr != nil {
		return nil, f.addErr
	}
	return &models.Fund{ID: "f-new", FundCode: nf.FundCode, FundName: nf.FundName}, nil
}

func (f *fakeClient) DeleteFund(_ context.Context, id string) error {
	f.deleted = id
	return f.delErr
}

func (f *fakeClient) SearchFunds(_ context.Context, keyword string) ([]json.RawMessage, error) {
	f.searched = keyword
	return f.results, nil
}

func (f *fakeClient) Ping(context.Context) error { return f.pingErr }
