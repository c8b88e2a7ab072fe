// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/taibuivan/taskboard/internal/platform/constants"
)

// # Cross-Origin Resource Sharing

// CORS allows the configured frontend origins to call the API.
//
// Tokens travel in the Authorization header rather than cookies, so
// credentials are not enabled.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch,
			http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", constants.HeaderAuthorization, constants.HeaderXRequestID},
		ExposedHeaders: []string{constants.HeaderXRequestID, constants.HeaderRetryAfter},
		MaxAge:         300,
	})
}
