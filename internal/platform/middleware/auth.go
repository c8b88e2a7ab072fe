// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/taskboard/internal/platform/apperr"
	"github.com/taibuivan/taskboard/internal/platform/constants"
	"github.com/taibuivan/taskboard/internal/platform/ctxutil"
	"github.com/taibuivan/taskboard/internal/platform/respond"
	"github.com/taibuivan/taskboard/internal/platform/sec"
)

// TokenVerifier checks a bearer token and returns the identity id it carries.
//
// Defining it here decouples the gate from [sec.TokenService] so tests can
// inject a stub.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// IdentityResolver loads the current state of an identity by id.
//
// It must return an error carrying apperr code NOT_FOUND when the identity
// no longer exists.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, userID string) (*sec.Identity, error)
}

// Authenticate rejects requests without a valid bearer token.
//
// # Flow
//  1. Read the Authorization header; the "Bearer " prefix is optional.
//  2. Verify signature and expiry via [TokenVerifier].
//  3. Load the identity via [IdentityResolver] (deleted users are refused).
//  4. Inject [*sec.Identity] into the request context.
//
// Every failure is a 401 and the downstream handler never runs.
func Authenticate(verifier TokenVerifier, resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			logger := ctxutil.GetLogger(request.Context())

			// 1. Token extraction
			token := strings.TrimSpace(request.Header.Get(constants.HeaderAuthorization))
			token = strings.TrimSpace(strings.TrimPrefix(token, constants.BearerPrefix))
			if token == "" {
				respond.Error(writer, request, apperr.Unauthorized("No token provided"))
				return
			}

			// 2. Signature and expiry
			userID, err := verifier.Verify(token)
			if err != nil {
				logger.WarnContext(request.Context(), "auth_token_rejected", slog.String("error", err.Error()))
				respond.Error(writer, request, apperr.Unauthorized("Please authenticate"))
				return
			}

			// 3. Identity lookup
			identity, err := resolver.ResolveIdentity(request.Context(), userID)
			if err != nil {
				if apperr.HasCode(err, "NOT_FOUND") {
					respond.Error(writer, request, apperr.Unauthorized("User not found"))
					return
				}
				logger.ErrorContext(request.Context(), "auth_identity_lookup_failed",
					slog.String("user_id", userID),
					slog.String("error", err.Error()),
				)
				respond.Error(writer, request, apperr.Unauthorized("Please authenticate"))
				return
			}

			// 4. Context injection
			authenticated := *identity
			authenticated.Token = token
			recordCaller(request.Context(), authenticated.UserID)

			ctx := ctxutil.WithIdentity(request.Context(), &authenticated)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
