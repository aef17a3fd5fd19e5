package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Me(ctx context.Context) error
	Logout(ctx context.Context) error
	ListFunds(ctx context.Context) error
	AddFund(ctx context.Context) error
	DeleteFund(ctx context.Context, args []string) error
	SearchFunds(ctx context.Context, args []string) error
}

// runREPL reads a line from reader, parses the first token as the command,
// and dispatches to methods on 'a'. The loop exits on EOF, when ctx is done,
// or when the user types "exit" or "quit".
//
//	Not logged in:
//	  - help               show available commands
//	  - register           create an account and log in
//	  - login              authenticate
//	  - exit | quit        leave the program
//
//	Logged in:
//	  - help               show available commands
//	  - me                 show the current account
//	  - (l)ist | funds     list watched funds
//	  - addfund            add a fund (interactive)
//	  - delfund [id]       remove a fund
//	  - search [keyword]   search funds via the data service
//	  - logout             forget the session
//	  - exit | quit        leave the program
//
// Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("em %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: me, (l)ist, addfund, delfund, search, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "me":
			cmdErr = a.Me(ctx)

		case "l", "list", "funds":
			cmdErr = a.ListFunds(ctx)

		case "addfund":
			cmdErr = a.AddFund(ctx)

		case "delfund":
			cmdErr = a.DeleteFund(ctx, args)

		case "search":
			cmdErr = a.SearchFunds(ctx, args)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}
