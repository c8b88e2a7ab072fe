// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project

import "context"

// Repository defines the persistence contract for projects.
//
// Every method that takes an ownerID matches on id AND owner. No match, for
// whatever reason, is apperr.NotFound("Project").
type Repository interface {
	// ListByOwner returns the owner's projects, oldest first. Never nil.
	ListByOwner(ctx context.Context, ownerID string) ([]*Project, error)

	FindOwned(ctx context.Context, id, ownerID string) (*Project, error)

	// Create persists project. The store sets CreatedAt and UpdatedAt.
	Create(ctx context.Context, project *Project) error

	// UpdateOwned applies patch in a single statement and returns the result.
	UpdateOwned(ctx context.Context, id, ownerID string, patch Patch) (*Project, error)

	DeleteOwned(ctx context.Context, id, ownerID string) error
}
