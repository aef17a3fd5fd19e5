package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/Austin-Patrician/eastmoney/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errNotLoggedIn = errors.New("not logged in, use 'login' or 'register' first")

// Register prompts for username, email and password, creates the account
// and starts a session with the returned token.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Register(ctx, username, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered and logged in as %s\n", u.Username)
	return nil
}

// Login prompts for email and password. A failed login leaves any earlier
// session untouched.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", u.Username)
	return nil
}

// Me prints the account behind the current token.
func (a *App) Me(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	u, err := a.authService.Me(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "ID:       %s\nUsername: %s\nEmail:    %s\nSince:    %s\n",
		u.ID, u.Username, u.Email, u.CreatedAt.Format("2006-01-02"))
	return nil
}

// Logout drops the in-memory token.
func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
