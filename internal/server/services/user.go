// Package services contains server-side business logic. This file implements
// UserService, which registers users, logs them in and issues their tokens.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Austin-Patrician/eastmoney/internal/common"
	"github.com/Austin-Patrician/eastmoney/internal/dbx"
	"github.com/Austin-Patrician/eastmoney/internal/server/auth"
	"github.com/Austin-Patrician/eastmoney/internal/server/models"
	"github.com/Austin-Patrician/eastmoney/internal/server/repositories/repomanager"
)

// AuthResult is what a successful registration or login returns.
type AuthResult struct {
	Token string
	User  *models.User
}

// UserService provides authentication-related operations:
// - Register: create users and issue their first token
// - Login: verify credentials and issue a token
// - GetCurrentUser: load the user a verified token names
// - ChangePassword: replace the stored hash after re-checking the old secret
type UserService struct {
	db          dbx.DBTX
	tx          dbx.Transactor
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
	tokens      *auth.TokenIssuer
	decoyHash   string
}

// decoySecret is hashed once at construction; the hash is compared against
// when the email is unknown so that both login failures cost one bcrypt
// comparison. A var so tests can make hashing fail.
var decoySecret = "decoy-password"

// NewUserService constructs a UserService. Reads go through db; the
// registration check-and-insert runs inside tx.
func NewUserService(db dbx.DBTX, tx dbx.Transactor, m repomanager.RepositoryManager,
	hasher *auth.PasswordHasher, tokens *auth.TokenIssuer) (*UserService, error) {
	decoy, err := hasher.Hash(decoySecret)
	if err != nil {
		return nil, fmt.Errorf("decoy hash: %w", err)
	}
	return &UserService{
		db:          db,
		tx:          tx,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		decoyHash:   decoy,
	}, nil
}

// Register creates a user and returns a token carrying {id, username}.
// A taken username is reported before a taken email. The unique constraints
// decide races between concurrent registrations, which surface as the same
// conflict errors.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %v", common.ErrorInternal, err)
	}

	var user *models.User
	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if err := ensureAbsent(repo.GetByUsername(ctx, in.Username)); err != nil {
			if errors.Is(err, common.ErrAlreadyExists) {
				return common.ErrUsernameExists
			}
			return err
		}
		if err := ensureAbsent(repo.GetByEmail(ctx, in.Email)); err != nil {
			if errors.Is(err, common.ErrAlreadyExists) {
				return common.ErrEmailExists
			}
			return err
		}

		created, err := repo.Create(ctx, &models.User{
			Username:     in.Username,
			Email:        in.Email,
			PasswordHash: hash,
		})
		if err != nil {
			return err
		}
		user = created
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: register: %v", common.ErrorInternal, err)
	}

	token, err := s.tokens.Issue(auth.Identity{UserID: user.ID, Username: user.Username}, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: issue token: %v", common.ErrorInternal, err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Login checks the credentials and returns a token carrying
// {id, username, email}. An unknown email and a wrong password both yield
// common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := in.Validate(); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(in.Password, s.decoyHash)
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: login: %v", common.ErrorInternal, err)
	}
	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	token, err := s.tokens.Issue(auth.Identity{UserID: user.ID, Username: user.Username, Email: user.Email}, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: issue token: %v", common.ErrorInternal, err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

// GetCurrentUser loads the user named by a verified token. A user deleted
// after the token was issued yields common.ErrorNotFound.
func (s *UserService) GetCurrentUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: get user: %v", common.ErrorInternal, err)
	}
	return user, nil
}

// ChangePassword replaces the user's password after checking the current
// one. A wrong current password yields common.ErrWrongPassword. Tokens
// issued before the change stay valid until they expire.
func (s *UserService) ChangePassword(ctx context.Context, userID string, in ChangePasswordInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return fmt.Errorf("%w: get user: %v", common.ErrorInternal, err)
	}
	if !s.hasher.Verify(in.CurrentPassword, user.PasswordHash) {
		return common.ErrWrongPassword
	}

	hash, err := s.hasher.Hash(in.NewPassword)
	if err != nil {
		return fmt.Errorf("%w: hash password: %v", common.ErrorInternal, err)
	}
	if err := repo.UpdatePassword(ctx, userID, hash); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return fmt.Errorf("%w: update password: %v", common.ErrorInternal, err)
	}
	return nil
}

// ensureAbsent turns a lookup result into nil when nothing was found and
// common.ErrAlreadyExists when something was.
func ensureAbsent(_ *models.User, err error) error {
	switch {
	case err == nil:
		return common.ErrAlreadyExists
	case errors.Is(err, common.ErrorNotFound):
		return nil
	default:
		return err
	}
}
