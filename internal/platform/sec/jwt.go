// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, JWT signing) from
// the domain logic. The authentication gate depends on it through the
// [middleware.TokenVerifier] interface, and the auth service through
// [auth.TokenIssuer].
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the shortest signing secret [NewTokenService] accepts.
const MinSecretLength = 32

// Verification failures. Callers match them with [errors.Is].
var (
	// ErrTokenMalformed means the token could not be parsed or lacks required claims.
	ErrTokenMalformed = errors.New("sec: token is malformed")

	// ErrTokenSignature means the signature does not verify under the server secret.
	ErrTokenSignature = errors.New("sec: token signature is invalid")

	// ErrTokenExpired means the signature is valid but the expiry has elapsed.
	ErrTokenExpired = errors.New("sec: token has expired")
)

// AuthClaims represents the payload embedded inside a bearer token.
//
// Only the identity id is carried. Everything else about the caller is
// looked up on every request so deleted accounts stop working immediately.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"userId"`
}

// TokenService issues and verifies HS256 bearer tokens.
type TokenService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewTokenService creates a new TokenService signing with secret.
//
// There is deliberately no built-in default: an empty or short secret is a
// configuration error.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("sec: signing secret must be at least %d bytes", MinSecretLength)
	}

	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}, nil
}

// WithClock returns a copy of the service that reads the current time from now.
func (service *TokenService) WithClock(now func() time.Time) *TokenService {
	clone := *service
	clone.now = now
	return &clone
}

// Issue creates a signed token for identityID that expires after timeToLive.
func (service *TokenService) Issue(identityID string, timeToLive time.Duration) (string, error) {
	currentTime := service.now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identityID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID: identityID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and expiry of tokenString and returns the
// embedded identity id.
//
// The error is always one of [ErrTokenMalformed], [ErrTokenSignature] or
// [ErrTokenExpired], wrapping the parser's own error.
func (service *TokenService) Verify(tokenString string) (string, error) {
	claims := &AuthClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (any, error) {
			return service.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return "", fmt.Errorf("%w: %w", ErrTokenSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", fmt.Errorf("%w: %w", ErrTokenExpired, err)
	default:
		return "", fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}

	if claims.UserID == "" {
		return "", fmt.Errorf("%w: missing userId claim", ErrTokenMalformed)
	}

	return claims.UserID, nil
}
