// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract for accounts.
//
// Lookups that match nothing return apperr.NotFound("User"). Writes that
// collide with another account's email return apperr.Conflict.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - ctx: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity (including the password hash)
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(ctx context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account registered under a normalized email.

		Parameters:
		  - ctx: context.Context
		  - email: string (already trimmed and case-folded)

		Returns:
		  - *User: Hydrated entity (including the password hash)
		  - error: apperr.NotFound or storage failures
	*/
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Create persists a new account. CreatedAt and UpdatedAt are set by the store.
	Create(ctx context.Context, user *User) error

	// Update persists name, email and country. The password hash is never
	// touched. UpdatedAt is refreshed by the store.
	Update(ctx context.Context, user *User) error
}

// # Missing Account Cache

// MissingAccountCache remembers account ids the credential store reported
// as absent, so replayed tokens of deleted accounts are refused without a
// database round trip. Account ids are never reused, so a remembered miss
// cannot hide an account that exists.
type MissingAccountCache interface {
	IsMissing(ctx context.Context, userID string) (bool, error)
	MarkMissing(ctx context.Context, userID string) error
}
