// Package client talks to the eastmoney REST API.
//
// # Overview
//
// Client is the transport-agnostic contract used by the CLI services;
// RESTClient implements it over HTTP/JSON. A successful Register or Login
// keeps the returned bearer token in memory and attaches it to every
// following request until Logout. Nothing is persisted to disk.
//
// # Error Handling
//
// Server replies are mapped onto sentinel errors that callers match with
// errors.Is: ErrUnauthorized (401), ErrNotFound (404) and ErrUnavailable
// (transport failures and 502/503/504). The server's own message is kept in
// the wrapped error text. Any other non-2xx reply is returned as a
// *netx.StatusError.
package client
