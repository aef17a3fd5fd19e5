// Package services contains application services for the eastmoney CLI.
// This file defines the authentication service: register, login, the
// current-user probe and the in-memory session.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Austin-Patrician/eastmoney/internal/client/client"
	"github.com/Austin-Patrician/eastmoney/internal/client/models"
)

// ErrMissingInput is returned before any request is sent when a required
// value is blank.
var ErrMissingInput = errors.New("required value is empty")

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register / Login: authenticate against the server and start a session.
//   - Me: fetch the account behind the session; an expired or rejected token
//     ends the session.
//   - Logout: forget the session locally.
//   - CurrentUser: the session's user, nil when logged out.
//   - Ping: check server liveness.
type AuthService interface {
	Register(ctx context.Context, username, email string, password []byte) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Me(ctx context.Context) (*models.User, error)
	Logout()
	CurrentUser() *models.User
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client

	mu   sync.RWMutex
	user *models.User
}

func NewAuthService(client client.Client) AuthService {
	return &authService{client: client}
}

func (a *authService) Register(ctx context.Context, username, email string, password []byte) (*models.User, error) {
	username, email = strings.TrimSpace(username), strings.TrimSpace(email)
	if username == "" || email == "" || len(password) == 0 {
		return nil, fmt.Errorf("username, email and password: %w", ErrMissingInput)
	}

	sess, err := a.client.Register(ctx, username, email, password)
	if err != nil {
		return nil, fmt.Errorf("register error: %w", err)
	}
	a.setUser(&sess.User)
	return &sess.User, nil
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || len(password) == 0 {
		return nil, fmt.Errorf("email and password: %w", ErrMissingInput)
	}

	sess, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	a.setUser(&sess.User)
	return &sess.User, nil
}

func (a *authService) Me(ctx context.Context) (*models.User, error) {
	u, err := a.client.Me(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.Logout()
		}
		return nil, err
	}
	a.setUser(u)
	return u, nil
}

func (a *authService) Logout() {
	a.client.Logout()
	a.setUser(nil)
}

func (a *authService) CurrentUser() *models.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) setUser(u *models.User) {
	a.mu.Lock()
	a.user = u
	a.mu.Unlock()
}
