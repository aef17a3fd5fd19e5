// Package auth issues and verifies bearer tokens and hashes passwords.
//
// Tokens are stateless HS256 JWTs. There is no revocation list and no
// server-side session table: a correctly signed token is accepted until it
// expires, so the TTL is the only bound on a leaked token's usefulness.
package auth

import (
	"errors"
	"time"

	"github.com/Austin-Patrician/eastmoney/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is the payload a token carries.
type Identity struct {
	UserID   string
	Username string
	Email    string
}

// Claims is the JWT body: the registered claims plus the identity fields.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// TokenConfig is the immutable configuration of a TokenIssuer.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
}

// TokenIssuer signs and verifies tokens with a shared secret.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewTokenIssuer validates cfg and returns an issuer that reads the wall clock.
func NewTokenIssuer(cfg TokenConfig) (*TokenIssuer, error) {
	return NewTokenIssuerWithClock(cfg, time.Now)
}

// NewTokenIssuerWithClock is NewTokenIssuer with an explicit clock.
func NewTokenIssuerWithClock(cfg TokenConfig, now func() time.Time) (*TokenIssuer, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token secret is empty")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)
	return &TokenIssuer{secret: secret, ttl: cfg.TTL, issuer: cfg.Issuer, now: now}, nil
}

// TTL is the default token lifetime.
func (t *TokenIssuer) TTL() time.Duration { return t.ttl }

// Issue signs id with an expiry of now+ttl. A non-positive ttl means the
// configured default.
func (t *TokenIssuer) Issue(id Identity, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = t.ttl
	}
	now := t.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:   id.UserID,
		Username: id.Username,
		Email:    id.Email,
	})

	return token.SignedString(t.secret)
}

// Verify checks the signature, then the expiry, and returns the identity.
// Every failure, whatever its cause, is common.ErrInvalidToken.
func (t *TokenIssuer) Verify(tokenString string) (*Identity, error) {
	claims := &Claims{}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	}
	if t.issuer != "" {
		opts = append(opts, jwt.WithIssuer(t.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, opts...)
	if err != nil || !token.Valid || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}

	return &Identity{UserID: claims.UserID, Username: claims.Username, Email: claims.Email}, nil
}
