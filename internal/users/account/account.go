// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles reading and updating the caller's own profile.

# Architecture

  - Domain: This package depends on the auth package for the User entity and
    its repository; it owns no table of its own.
  - Policy: Profile updates go through a strict whitelist. A body naming any
    attribute outside {name, email, country} is rejected as a whole.
*/
package account

import (
	"context"

	"github.com/taibuivan/taskboard/internal/platform/whitelist"
	"github.com/taibuivan/taskboard/internal/users/auth"
)

// # Repository Contracts

// AccountRepository is the slice of [auth.UserRepository] this package needs.
type AccountRepository interface {
	FindByID(ctx context.Context, id string) (*auth.User, error)
	Update(ctx context.Context, user *auth.User) error
}

// # Update Policy

// ProfilePolicy lists the attributes PATCH /users/profile may change.
var ProfilePolicy = whitelist.Strict(auth.FieldName, auth.FieldEmail, auth.FieldCountry)

// ProfilePatch is the decoded, whitelisted profile update. Nil means "leave unchanged".
type ProfilePatch struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Country *string `json:"country"`
}
