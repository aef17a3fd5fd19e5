// Package common contains shared constants and sentinel errors used across
// the server and client components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the only accepted authorization scheme, including the
// separating space.
const BearerScheme = "Bearer "
