// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/taskboard/internal/platform/apperr"
)

// MemoryRepository is an in-process [Repository] used by tests.
type MemoryRepository struct {
	mu       sync.RWMutex
	projects map[string]*Project
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{projects: make(map[string]*Project)}
}

// owned returns the stored project when it exists and belongs to ownerID.
// Callers must hold the lock.
func (repository *MemoryRepository) owned(id, ownerID string) (*Project, error) {
	p, ok := repository.projects[id]
	if !ok || p.Owner != ownerID {
		return nil, apperr.NotFound(resourceProject)
	}
	return p, nil
}

func (repository *MemoryRepository) ListByOwner(_ context.Context, ownerID string) ([]*Project, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	projects := make([]*Project, 0)
	for _, p := range repository.projects {
		if p.Owner == ownerID {
			copied := *p
			projects = append(projects, &copied)
		}
	}

	sort.Slice(projects, func(i, j int) bool {
		if projects[i].CreatedAt.Equal(projects[j].CreatedAt) {
			return projects[i].ID < projects[j].ID
		}
		return projects[i].CreatedAt.Before(projects[j].CreatedAt)
	})
	return projects, nil
}

func (repository *MemoryRepository) FindOwned(_ context.Context, id, ownerID string) (*Project, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	p, err := repository.owned(id, ownerID)
	if err != nil {
		return nil, err
	}
	copied := *p
	return &copied, nil
}

func (repository *MemoryRepository) Create(_ context.Context, project *Project) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now

	copied := *project
	repository.projects[project.ID] = &copied
	return nil
}

func (repository *MemoryRepository) UpdateOwned(_ context.Context, id, ownerID string, patch Patch) (*Project, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	p, err := repository.owned(id, ownerID)
	if err != nil {
		return nil, err
	}

	patch.applyTo(p)
	p.UpdatedAt = time.Now().UTC()

	copied := *p
	return &copied, nil
}

func (repository *MemoryRepository) DeleteOwned(_ context.Context, id, ownerID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, err := repository.owned(id, ownerID); err != nil {
		return err
	}
	delete(repository.projects, id)
	return nil
}
