// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"
	"time"
)

// Repository defines the persistence contract for tasks.
//
// Methods taking an assigneeID match on id AND assignee; no match is
// apperr.NotFound("Task").
type Repository interface {
	// ListByProject returns the tasks filed under projectID, oldest first. Never nil.
	ListByProject(ctx context.Context, projectID string) ([]*Task, error)

	FindAssigned(ctx context.Context, id, assigneeID string) (*Task, error)

	// Create persists task. CreatedAt is set by the store.
	Create(ctx context.Context, task *Task) error

	// UpdateAssigned applies patch atomically. A status moving into
	// completed stamps CompletedAt with now.
	UpdateAssigned(ctx context.Context, id, assigneeID string, patch Patch, now time.Time) (*Task, error)

	DeleteAssigned(ctx context.Context, id, assigneeID string) error
}
