// Package services contains server-side business logic on top of the
// repositories: account lifecycle and owner-scoped task operations.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/server/auth"
	"github.com/dmitrijs2005/taskboard/internal/server/config"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/users"
	"github.com/dmitrijs2005/taskboard/internal/server/validation"
)

// UserService handles registration, login, token validation, and profile
// updates. Tokens are stateless: validation never touches the store.
type UserService struct {
	repo                  users.Repository
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using the users repository and
// server config.
func NewUserService(repo users.Repository, cfg *config.Config) *UserService {
	return &UserService{
		repo:                  repo,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// memberSinceSnapshot renders the human-readable signup date stored on the
// account, e.g. "August 31, 2026".
func memberSinceSnapshot(t time.Time) string {
	return t.Format("January 2, 2006")
}

// Register validates the input, hashes the secret, persists the user, and
// mints a session token. The plaintext secret is not retained anywhere past
// this call. A duplicate email yields common.ErrorEmailTaken.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	email = validation.NormalizeEmail(email)

	v := validation.New()
	v.CheckName(name)
	v.CheckEmail(email)
	v.CheckPassword(password)
	if err := v.Err(); err != nil {
		return nil, "", err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		MemberSince:  memberSinceSnapshot(time.Now()),
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorEmailTaken) {
			return nil, "", common.ErrorEmailTaken
		}
		return nil, "", common.ErrorInternal
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Authenticate verifies the credentials and mints a fresh session token.
// An unknown email and a wrong password are indistinguishable to the caller:
// both yield common.ErrorUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.repo.GetByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", common.ErrorInternal
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", common.ErrorUnauthorized
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// ValidateToken resolves the bearer token to a user identifier without a
// store lookup. Errors are common.ErrTokenExpired or common.ErrInvalidToken.
func (s *UserService) ValidateToken(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}

// UpdateProfile applies name and/or email changes. Nil means "leave as is".
// The secret cannot be changed through this path. An email colliding with a
// different account yields common.ErrorEmailTaken.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, name, email *string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	if name != nil {
		user.Name = strings.TrimSpace(*name)
	}
	if email != nil {
		user.Email = validation.NormalizeEmail(*email)
	}

	v := validation.New()
	v.CheckName(user.Name)
	v.CheckEmail(user.Email)
	if err := v.Err(); err != nil {
		return nil, err
	}

	user, err = s.repo.Update(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorEmailTaken):
			return nil, common.ErrorEmailTaken
		case errors.Is(err, common.ErrorNotFound):
			return nil, common.ErrorNotFound
		default:
			return nil, common.ErrorInternal
		}
	}

	return user, nil
}

func (s *UserService) generateToken(userID string) (string, error) {
	return auth.GenerateToken(userID, s.jwtSecret, s.tokenValidityDuration)
}
