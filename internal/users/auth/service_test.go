// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taskboard/internal/platform/apperr"
	"github.com/taibuivan/taskboard/internal/platform/sec"
	"github.com/taibuivan/taskboard/internal/users/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// # Test Doubles

type missingSet struct {
	mu      sync.Mutex
	ids     map[string]bool
	failing bool
}

func newMissingSet() *missingSet {
	return &missingSet{ids: make(map[string]bool)}
}

func (cache *missingSet) IsMissing(_ context.Context, userID string) (bool, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	if cache.failing {
		return false, errors.New("cache down")
	}
	return cache.ids[userID], nil
}

func (cache *missingSet) MarkMissing(_ context.Context, userID string) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	if cache.failing {
		return errors.New("cache down")
	}
	cache.ids[userID] = true
	return nil
}

type fixture struct {
	users   *auth.MemoryUserRepository
	tokens  *sec.TokenService
	missing *missingSet
	service *auth.Service
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tokens, err := sec.NewTokenService(testSecret, "taskboard.test")
	require.NoError(t, err)

	users := auth.NewMemoryUserRepository()
	missing := newMissingSet()
	return &fixture{
		users:   users,
		tokens:  tokens,
		missing: missing,
		service: auth.NewService(users, tokens, missing, discardLogger()),
	}
}

func (f *fixture) register(t *testing.T, email, password string) *auth.Session {
	t.Helper()
	session, err := f.service.Register(context.Background(), auth.RegisterInput{
		Name:     "Alice",
		Email:    email,
		Password: password,
		Country:  "NZ",
	})
	require.NoError(t, err)
	return session
}

// # Registration

func TestRegister_CreatesAccount(t *testing.T) {
	f := newFixture(t)

	session := f.register(t, "  Alice@Example.com ", "secret123")

	assert.Equal(t, "alice@example.com", session.User.Email)
	assert.Equal(t, "alice", session.User.Username)
	assert.NotEmpty(t, session.User.ID)
	assert.NotEqual(t, "secret123", session.User.PasswordHash)
	assert.False(t, session.User.CreatedAt.IsZero())

	userID, err := f.tokens.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, userID)
}

func TestRegister_DuplicateEmailIsCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice@example.com", "secret123")

	_, err := f.service.Register(context.Background(), auth.RegisterInput{
		Name: "Other", Email: "ALICE@example.com", Password: "secret456", Country: "AU",
	})

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
	assert.Equal(t, 400, appErr.HTTPStatus)
	assert.Equal(t, "Email already registered", appErr.Message)
}

func TestRegister_UsernamesMayRepeat(t *testing.T) {
	f := newFixture(t)

	first := f.register(t, "sam@one.example", "secret123")
	second := f.register(t, "sam@two.example", "secret123")

	assert.Equal(t, first.User.Username, second.User.Username)
	assert.NotEqual(t, first.User.ID, second.User.ID)
}

// # Login

func TestLogin_ValidCredentials(t *testing.T) {
	f := newFixture(t)
	registered := f.register(t, "alice@example.com", "secret123")

	session, err := f.service.Login(context.Background(), auth.LoginInput{
		Email: "Alice@Example.com", Password: "secret123",
	})
	require.NoError(t, err)

	userID, err := f.tokens.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, userID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice@example.com", "secret123")

	tests := []auth.LoginInput{
		{Email: "alice@example.com", Password: "wrong"},
		{Email: "nobody@example.com", Password: "secret123"},
		{Email: "", Password: ""},
		{Email: "alice@example.com", Password: ""},
	}

	for _, input := range tests {
		session, err := f.service.Login(context.Background(), input)
		assert.Nil(t, session)
		require.Error(t, err)

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, 401, appErr.HTTPStatus)
		assert.Equal(t, "Invalid credentials", appErr.Message)
	}
}

// # Identity Resolution

func TestResolveIdentity_ReadsAccountEveryTime(t *testing.T) {
	f := newFixture(t)
	registered := f.register(t, "alice@example.com", "secret123")
	ctx := context.Background()

	identity, err := f.service.ResolveIdentity(ctx, registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", identity.Email)

	// Same cache, but the account is gone from the credential store
	emptied := auth.NewService(auth.NewMemoryUserRepository(), f.tokens, f.missing, discardLogger())
	identity, err = emptied.ResolveIdentity(ctx, registered.User.ID)
	assert.Nil(t, identity)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "User not found", appErr.Message)
}

func TestResolveIdentity_RemembersMissingAccounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ghost := "0190a5f2-7c1e-7b3a-9d4e-1f2a3b4c5d6e"

	_, err := f.service.ResolveIdentity(ctx, ghost)
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
	assert.True(t, f.missing.ids[ghost])

	registered := f.register(t, "alice@example.com", "secret123")
	assert.False(t, f.missing.ids[registered.User.ID])

	_, err = f.service.ResolveIdentity(ctx, registered.User.ID)
	require.NoError(t, err)
}

func TestResolveIdentity_CacheFailureFallsThrough(t *testing.T) {
	f := newFixture(t)
	registered := f.register(t, "alice@example.com", "secret123")
	f.missing.failing = true

	identity, err := f.service.ResolveIdentity(context.Background(), registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, identity.UserID)

	_, err = f.service.ResolveIdentity(context.Background(), "0190a5f2-7c1e-7b3a-9d4e-1f2a3b4c5d6e")
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
}

func TestNewService_NilCache(t *testing.T) {
	tokens, err := sec.NewTokenService(testSecret, "taskboard.test")
	require.NoError(t, err)
	service := auth.NewService(auth.NewMemoryUserRepository(), tokens, nil, discardLogger())

	session, err := service.Register(context.Background(), auth.RegisterInput{
		Name: "Bob", Email: "bob@example.com", Password: "secret123", Country: "US",
	})
	require.NoError(t, err)

	identity, err := service.ResolveIdentity(context.Background(), session.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", identity.Username)

	_, err = service.ResolveIdentity(context.Background(), "0190a5f2-7c1e-7b3a-9d4e-1f2a3b4c5d6e")
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
}
