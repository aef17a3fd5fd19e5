package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/Austin-Patrician/eastmoney/internal/client/models"
)

type fakeAuth struct {
	user *models.User

	regUser, regEmail, regPass string
	loginEmail, loginPass      string
	authErr                    error

	meErr   error
	pingErr error
}

func (f *fakeAuth) Register(_ context.Context, username, email string, password []byte) (*models.User, error) {
	f.regUser, f.regEmail, f.regPass = username, email, string(password)
	if f.authErr != nil {
		return nil, f.authErr
	}
	f.user = &models.User{ID: "u1", Username: username, Email: email}
	return f.user, nil
}

func (f *fakeAuth) Login(_ context.Context, email string, password []byte) (*models.User, error) {
	f.loginEmail, f.loginPass = email, string(password)
	if f.authErr != nil {
		return nil, f.authErr
	}
	f.user = &models.User{ID: "u1", Username: "alice", Email: email}
	return f.user, nil
}

func (f *fakeAuth) Me(context.Context) (*models.User, error) {
	if f.meErr != nil {
		return nil, f.meErr
	}
	return f.user, nil
}

func (f *fakeAuth) Logout() { f.user = nil }

func (f *fakeAuth) CurrentUser() *models.User { return f.user }

func (f *fakeAuth) Ping(context.Context) error { return f.pingErr }

type fakeFunds struct {
	funds   []models.Fund
	added   *models.NewFund
	deleted string
	keyword string
	results []json.RawMessage
	err     error
}

func (f *fakeFunds) List(context.Context) ([]models.Fund, error) { return f.funds, f.err }

func (f *fakeFunds) Add(_ context.Context, nf models.NewFund) (*models.Fund, error) {
	f.added = &nf
	if f.err != nil {
		return nil, f.err
	}
	return &models.Fund{ID: "f1", FundCode: nf.FundCode, FundName: nf.FundName}, nil
}

func (f *fakeFunds) Delete(_ context.Context, id string) error {
	f.deleted = id
	return f.err
}

func (f *fakeFunds) Search(_ context.Context, keyword string) ([]json.RawMessage, error) {
	f.keyword = keyword
	return f.results, f.err
}

// newTestApp returns an App writing to the returned buffer.
func newTestApp(auth *fakeAuth, funds *fakeFunds) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		authService: auth,
		fundService: funds,
		reader:      bufio.NewReader(strings.NewReader("")),
		out:         &out,
	}, &out
}

// stubInputs answers text prompts from answers in order and returns
// password for every password prompt.
func stubInputs(t *testing.T, answers []string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			return "", io.EOF
		}
		i++
		return answers[i-1], nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return append([]byte(nil), password...), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}
