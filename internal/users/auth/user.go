// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements account registration, login and identity resolution.

It owns the credential store (the users.account table) and is the only
package that reads password hashes. Other packages see accounts through
[sec.Identity] or through the [User] returned by [Service.Profile].

# Architecture

  - Service: Register, Login and ResolveIdentity use cases.
  - Repository: [UserRepository] with PostgreSQL and in-memory implementations.
  - Cache: optional Redis read-through for identity resolution.
*/
package auth

import (
	"time"

	"github.com/taibuivan/taskboard/internal/platform/sec"
)

// # Domain Entities

// User represents a registered account.
//
// JSON names follow the frontend, which reads `_id` directly.
type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialized.
	Country      string    `json:"country"`
	Username     string    `json:"username"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity projects the account into the caller snapshot used by the gate.
func (user *User) Identity() *sec.Identity {
	return &sec.Identity{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
	}
}

// clone returns a copy that callers may mutate freely.
func (user *User) clone() *User {
	copied := *user
	return &copied
}

// # Field Identifiers

const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldCountry  = "country"
)

// # Constraints

const (
	// PasswordMinLength is the shortest password accepted at registration.
	PasswordMinLength = 6

	// PasswordMaxBytes is bcrypt's input limit; longer passwords are refused
	// rather than silently truncated.
	PasswordMaxBytes = 72

	// NameMaxLength bounds free-text profile fields.
	NameMaxLength = 100
)
