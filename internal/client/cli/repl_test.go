package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool
	err      error

	calls []string
	args  [][]string
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) Register(context.Context) error { return f.record("register") }

func (f *fakeExec) Me(context.Context) error { return f.record("me") }

func (f *fakeExec) ListFunds(context.Context) error { return f.record("list") }

func (f *fakeExec) AddFund(context.Context) error { return f.record("addfund") }

func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}

func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}

func (f *fakeExec) DeleteFund(_ context.Context, args []string) error {
	f.args = append(f.args, args)
	return f.record("delfund")
}

func (f *fakeExec) SearchFunds(_ context.Context, args []string) error {
	f.args = append(f.args, args)
	return f.record("search")
}

// capturePrintln collects everything printed through printlnFn.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprintln(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func reader(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, reader(
		"help",
		"login",
		"help",
		"me",
		"",
		"l",
		"funds",
		"addfund",
		"delfund f1",
		"search bond fund",
		"logout",
		"exit",
		"me",
	))

	assert.Equal(t, []string{"login", "me", "list", "list", "addfund", "delfund", "search", "logout"}, exec.calls)
	assert.Equal(t, [][]string{{"f1"}, {"bond", "fund"}}, exec.args)
}

func TestRunREPL_HelpDependsOnLogin(t *testing.T) {
	lines := capturePrintln(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, reader("help", "quit"))
	require.Contains(t, *lines, "Available commands: register, login, exit\n")

	*lines = nil
	runREPL(context.Background(), &fakeExec{loggedIn: true}, func() string { return "" }, reader("help", "quit"))
	require.Contains(t, *lines, "Available commands: me, (l)ist, addfund, delfund, search, logout, exit\n")
}

func TestRunREPL_PrintsErrorsAndContinues(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{err: errors.New("boom")}
	runREPL(context.Background(), exec, func() string { return "s" }, reader("me", "foobar", "list"))

	assert.Equal(t, []string{"me", "list"}, exec.calls)
	assert.Contains(t, *lines, "Error: boom\n")
	assert.Contains(t, *lines, "Unknown command: foobar\n")
	assert.Contains(t, *lines, "em s> \n")
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	capturePrintln(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, reader("login"))
	assert.Empty(t, exec.calls)
}
