// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/taskboard/internal/platform/apperr"
	"github.com/taibuivan/taskboard/internal/platform/constants"
	"github.com/taibuivan/taskboard/internal/platform/sec"
	"github.com/taibuivan/taskboard/pkg/textnorm"
	"github.com/taibuivan/taskboard/pkg/uuidv7"
)

// # Contracts & Types

// TokenIssuer signs bearer tokens for an identity.
type TokenIssuer interface {
	Issue(identityID string, timeToLive time.Duration) (string, error)
}

// Session is the body returned by register and login.
type Session struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// Service implements registration, login and identity resolution.
type Service struct {
	users   UserRepository
	tokens  TokenIssuer
	missing MissingAccountCache
	logger  *slog.Logger
}

// NewService constructs a new [Service]. missing may be nil.
func NewService(users UserRepository, tokens TokenIssuer, missing MissingAccountCache, logger *slog.Logger) *Service {
	return &Service{users: users, tokens: tokens, missing: missing, logger: logger}
}

// # Registration Flow

// RegisterInput holds the data required to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Country  string
}

/*
Register creates an account and signs a long-lived token for it.

Description: The email is normalized before the uniqueness check and the
username is derived from its local part. Usernames are not unique.

Parameters:
  - ctx: context.Context
  - input: RegisterInput (already shape-validated by the handler)

Returns:
  - *Session: The new account and a token valid for 7 days
  - error: apperr.Conflict "Email already registered" or storage errors
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	email := textnorm.Email(input.Email)

	_, err := service.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apperr.Conflict("Email already registered")
	case !apperr.HasCode(err, "NOT_FOUND"):
		return nil, err
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuidv7.New(),
		Name:         textnorm.Text(input.Name),
		Email:        email,
		PasswordHash: hashedPassword,
		Country:      textnorm.Text(input.Country),
		Username:     textnorm.LocalPart(email),
	}

	// A concurrent registration can still win the race; the store reports it as Conflict.
	if err := service.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := service.tokens.Issue(user.ID, constants.RegisterTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "user_registered", slog.String("user_id", user.ID))

	return &Session{User: user, Token: token}, nil
}

// # Authentication Flow

// LoginInput holds login credentials.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login verifies credentials and signs a 24-hour token.

Description: Unknown email and wrong password produce the same error so that
callers cannot discover registered addresses.

Parameters:
  - ctx: context.Context
  - input: LoginInput

Returns:
  - *Session: The account and its token
  - error: apperr.Unauthorized "Invalid credentials" or storage errors
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	invalid := apperr.Unauthorized("Invalid credentials")

	email := textnorm.Email(input.Email)
	if email == "" || input.Password == "" {
		return nil, invalid
	}

	user, err := service.users.FindByEmail(ctx, email)
	if err != nil {
		if apperr.HasCode(err, "NOT_FOUND") {
			return nil, invalid
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, invalid
	}

	token, err := service.tokens.Issue(user.ID, constants.LoginTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &Session{User: user, Token: token}, nil
}

// # Identity Resolution

/*
ResolveIdentity loads the caller referenced by a verified token.

Description: Implements middleware.IdentityResolver. The account row is read
on every call, so a deleted account stops authenticating immediately. Ids
already known to be absent are refused before the read; cache failures are
logged and ignored.

Returns:
  - *sec.Identity: The caller snapshot
  - error: apperr.NotFound when the account no longer exists, or storage errors
*/
func (service *Service) ResolveIdentity(ctx context.Context, userID string) (*sec.Identity, error) {
	if service.missing != nil {
		missing, err := service.missing.IsMissing(ctx, userID)
		if err != nil {
			service.logger.WarnContext(ctx, "missing_account_cache_read_failed", slog.String("error", err.Error()))
		}
		if missing {
			return nil, apperr.NotFound(resourceUser)
		}
	}

	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		if service.missing != nil && apperr.HasCode(err, "NOT_FOUND") {
			if cacheErr := service.missing.MarkMissing(ctx, userID); cacheErr != nil {
				service.logger.WarnContext(ctx, "missing_account_cache_write_failed", slog.String("error", cacheErr.Error()))
			}
		}
		return nil, err
	}

	return user.Identity(), nil
}
