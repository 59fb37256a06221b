package service

import (
	"context"
	"errors"

	"github.com/finconsgroup/zooadmin/internal/sandbox/domain"
	"github.com/finconsgroup/zooadmin/internal/sandbox/store"
	"github.com/finconsgroup/zooadmin/pkg/cryptox"
	"github.com/finconsgroup/zooadmin/pkg/httpx"
)

// ErrInvalidLogin is returned for unknown usernames and wrong passwords
// alike, so callers cannot probe which usernames exist.
var ErrInvalidLogin = errors.New("invalid username or password")

// AuthService authenticates Basic auth credentials against the user
// store. It implements httpx.IdentityVerifier.
type AuthService struct {
	Store store.Store
}

// Login verifies a username/password pair and returns the full user
// record for the login response body.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.User, error) {
	u, err := s.Store.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidLogin
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return domain.User{}, ErrInvalidLogin
		}
		return domain.User{}, err
	}

	return u, nil
}

// VerifyBasic implements httpx.IdentityVerifier for the authn middleware.
func (s *AuthService) VerifyBasic(ctx context.Context, username, password string) (httpx.Identity, error) {
	u, err := s.Login(ctx, username, password)
	if err != nil {
		return httpx.Identity{}, err
	}
	return httpx.Identity{
		ID:           u.ID,
		Username:     u.Username,
		Role:         u.Role,
		OperatorType: u.OperatorType,
	}, nil
}
