// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"sync"
	"time"

	"github.com/taibuivan/taskboard/internal/platform/apperr"
)

// MemoryUserRepository is an in-process [UserRepository].
//
// It backs the handler and end-to-end tests and enforces the same email
// uniqueness the database does.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*User
	byEmail map[string]string
	now     func() time.Time
}

// NewMemoryUserRepository creates an empty in-memory store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[string]*User),
		byEmail: make(map[string]string),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// FindByID implements [UserRepository].
func (repository *MemoryUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	user, ok := repository.byID[id]
	if !ok {
		return nil, apperr.NotFound(resourceUser)
	}
	return user.clone(), nil
}

// FindByEmail implements [UserRepository].
func (repository *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	id, ok := repository.byEmail[email]
	if !ok {
		return nil, apperr.NotFound(resourceUser)
	}
	return repository.byID[id].clone(), nil
}

// Create implements [UserRepository].
func (repository *MemoryUserRepository) Create(_ context.Context, user *User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, taken := repository.byEmail[user.Email]; taken {
		return apperr.Conflict("Email already registered")
	}

	now := repository.now()
	user.CreatedAt = now
	user.UpdatedAt = now

	repository.byID[user.ID] = user.clone()
	repository.byEmail[user.Email] = user.ID
	return nil
}

// Update implements [UserRepository].
func (repository *MemoryUserRepository) Update(_ context.Context, user *User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.byID[user.ID]
	if !ok {
		return apperr.NotFound(resourceUser)
	}
	if owner, taken := repository.byEmail[user.Email]; taken && owner != user.ID {
		return apperr.Conflict("Email already registered")
	}

	delete(repository.byEmail, stored.Email)
	stored.Name = user.Name
	stored.Email = user.Email
	stored.Country = user.Country
	stored.UpdatedAt = repository.now()
	repository.byEmail[stored.Email] = stored.ID

	user.UpdatedAt = stored.UpdatedAt
	return nil
}
