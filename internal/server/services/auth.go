// Package services contains the server-side business logic: login
// orchestration and user lifecycle management over the user repository.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/userstorer/internal/common"
	"github.com/dmitrijs2005/userstorer/internal/server/auth"
	"github.com/dmitrijs2005/userstorer/internal/server/models"
	"github.com/dmitrijs2005/userstorer/internal/server/repositories/users"
)

// TokenResponse is the transient result of a successful login; it is never
// persisted.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// AuthService orchestrates login: credential verification, the login audit
// write, and token issuance.
type AuthService struct {
	repo     users.Repository
	hasher   *auth.PasswordHasher
	keys     *auth.KeyProvider
	issuer   string
	validity time.Duration
}

// NewAuthService constructs an AuthService. Empty issuer and zero validity
// fall back to auth.DefaultIssuer and auth.TokenValidity.
func NewAuthService(repo users.Repository, hasher *auth.PasswordHasher, keys *auth.KeyProvider, issuer string, validity time.Duration) *AuthService {
	if issuer == "" {
		issuer = auth.DefaultIssuer
	}
	if validity == 0 {
		validity = auth.TokenValidity
	}
	return &AuthService{repo: repo, hasher: hasher, keys: keys, issuer: issuer, validity: validity}
}

// Login verifies the credentials and returns a signed bearer token. An
// unknown email and a wrong password produce the identical
// common.ErrInvalidCredentials, so callers cannot enumerate accounts. On
// success the user's lastLogin/modified timestamps are persisted before the
// token is signed; this is an audit trail, not a revocation mechanism.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	now := models.NowMillis()
	user.LastLogin = now
	user.Modified = now

	if _, err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	key, err := s.keys.GetPrivateKey(ctx)
	if err != nil {
		return nil, err
	}

	token, err := auth.IssueToken(user, now.Time, key, s.issuer, s.validity)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.validity.Seconds()),
	}, nil
}
