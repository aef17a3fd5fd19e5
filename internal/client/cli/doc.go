// Package cli provides the interactive eastmoney command-line client.
//
// It wires configuration, the REST API client and the client services into
// a small REPL. The session token lives in memory only; quitting the
// program logs the user out.
//
// Key features:
//   - Register / Login / Logout and "me"
//   - List, add, delete and search watched funds
//   - A background connectivity watcher that shows online/offline status
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
