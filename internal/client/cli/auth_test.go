package cli

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/Austin-Patrician/eastmoney/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Success(t *testing.T) {
	f := &fakeAuth{}
	a, out := newTestApp(f, &fakeFunds{})
	stubInputs(t, []string{"alice", "alice@example.org"}, []byte("secret"))

	require.NoError(t, a.Register(context.Background()))
	assert.Equal(t, "alice", f.regUser)
	assert.Equal(t, "alice@example.org", f.regEmail)
	assert.Equal(t, "secret", f.regPass)
	assert.Contains(t, out.String(), "Registered and logged in as alice")
	assert.True(t, a.isLoggedIn())
}

func TestRegister_ServiceError(t *testing.T) {
	f := &fakeAuth{authErr: errors.New("Username already exists")}
	a, _ := newTestApp(f, &fakeFunds{})
	stubInputs(t, []string{"alice", "alice@example.org"}, []byte("secret"))

	require.EqualError(t, a.Register(context.Background()), "Username already exists")
	assert.False(t, a.isLoggedIn())
}

func TestRegister_InputError(t *testing.T) {
	f := &fakeAuth{}
	a, _ := newTestApp(f, &fakeFunds{})
	stubInputs(t, []string{"alice"}, []byte("secret"))

	require.ErrorIs(t, a.Register(context.Background()), io.EOF)
	assert.Empty(t, f.regUser)
}

func TestLogin(t *testing.T) {
	f := &fakeAuth{}
	a, out := newTestApp(f, &fakeFunds{})
	stubInputs(t, []string{"alice@example.org"}, []byte("pw"))

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, "alice@example.org", f.loginEmail)
	assert.Equal(t, "pw", f.loginPass)
	assert.Contains(t, out.String(), "Logged in as alice")
}

func TestLogin_Failure(t *testing.T) {
	f := &fakeAuth{authErr: errors.New("Invalid credentials")}
	a, out := newTestApp(f, &fakeFunds{})
	stubInputs(t, []string{"alice@example.org"}, []byte("bad"))

	require.Error(t, a.Login(context.Background()))
	assert.NotContains(t, out.String(), "Logged in")
}

func TestMe(t *testing.T) {
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	f := &fakeAuth{user: &models.User{ID: "u1", Username: "alice", Email: "a@b.co", CreatedAt: created}}
	a, out := newTestApp(f, &fakeFunds{})

	require.NoError(t, a.Me(context.Background()))
	assert.Contains(t, out.String(), "Username: alice")
	assert.Contains(t, out.String(), "Since:    2024-03-01")
}

func TestMe_NotLoggedIn(t *testing.T) {
	a, _ := newTestApp(&fakeAuth{}, &fakeFunds{})
	require.ErrorIs(t, a.Me(context.Background()), errNotLoggedIn)
}

func TestLogout(t *testing.T) {
	f := &fakeAuth{user: &models.User{Username: "alice"}}
	a, out := newTestApp(f, &fakeFunds{})

	require.NoError(t, a.Logout(context.Background()))
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Logged out")
}
