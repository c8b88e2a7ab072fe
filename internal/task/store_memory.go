// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/taskboard/internal/platform/apperr"
)

// MemoryRepository is an in-process [Repository] used by tests.
//
// It does not check that assignees exist; the Postgres store relies on the
// foreign key for that.
type MemoryRepository struct {
	mu    sync.RWMutex
	tasks map[string]*Task
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{tasks: make(map[string]*Task)}
}

func copyTask(t *Task) *Task {
	copied := *t
	if t.CompletedAt != nil {
		stamp := *t.CompletedAt
		copied.CompletedAt = &stamp
	}
	return &copied
}

// assigned returns the stored task when it exists and is assigned to assigneeID.
// Callers must hold the lock.
func (repository *MemoryRepository) assigned(id, assigneeID string) (*Task, error) {
	t, ok := repository.tasks[id]
	if !ok || t.AssignedTo != assigneeID {
		return nil, apperr.NotFound(resourceTask)
	}
	return t, nil
}

func (repository *MemoryRepository) ListByProject(_ context.Context, projectID string) ([]*Task, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	tasks := make([]*Task, 0)
	for _, t := range repository.tasks {
		if t.Project == projectID {
			tasks = append(tasks, copyTask(t))
		}
	}

	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID < tasks[j].ID
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (repository *MemoryRepository) FindAssigned(_ context.Context, id, assigneeID string) (*Task, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	t, err := repository.assigned(id, assigneeID)
	if err != nil {
		return nil, err
	}
	return copyTask(t), nil
}

func (repository *MemoryRepository) Create(_ context.Context, task *Task) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	task.CreatedAt = time.Now().UTC()
	repository.tasks[task.ID] = copyTask(task)
	return nil
}

func (repository *MemoryRepository) UpdateAssigned(_ context.Context, id, assigneeID string, patch Patch, now time.Time) (*Task, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	t, err := repository.assigned(id, assigneeID)
	if err != nil {
		return nil, err
	}

	patch.applyTo(t, now)
	return copyTask(t), nil
}

func (repository *MemoryRepository) DeleteAssigned(_ context.Context, id, assigneeID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, err := repository.assigned(id, assigneeID); err != nil {
		return err
	}
	delete(repository.tasks, id)
	return nil
}
