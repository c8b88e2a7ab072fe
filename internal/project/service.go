// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/taskboard/internal/platform/apperr"
	"github.com/taibuivan/taskboard/internal/platform/validate"
	"github.com/taibuivan/taskboard/internal/platform/whitelist"
	"github.com/taibuivan/taskboard/internal/task"
	"github.com/taibuivan/taskboard/pkg/pointer"
	"github.com/taibuivan/taskboard/pkg/textnorm"
	"github.com/taibuivan/taskboard/pkg/uuidv7"
)

// TaskLister reads the tasks filed under a project. [task.Service] satisfies it.
type TaskLister interface {
	ListByProject(ctx context.Context, projectID string) ([]*task.Task, error)
}

// # Service Layer

// Service implements the project use cases. Every method takes the caller's
// id and only ever touches projects the caller owns.
type Service struct {
	projectRepository Repository
	tasks             TaskLister
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(repo Repository, tasks TaskLister, logger *slog.Logger) *Service {
	return &Service{
		projectRepository: repo,
		tasks:             tasks,
		logger:            logger,
	}
}

// List returns the caller's projects.
func (service *Service) List(ctx context.Context, ownerID string) ([]*Project, error) {
	projects, err := service.projectRepository.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("project_service_list_failed: %w", err)
	}
	return projects, nil
}

// Get returns one of the caller's projects.
func (service *Service) Get(ctx context.Context, id, ownerID string) (*Project, error) {
	if !uuidv7.Valid(id) {
		return nil, apperr.NotFound(resourceProject)
	}

	project, err := service.projectRepository.FindOwned(ctx, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("project_service_get_failed: %w", err)
	}
	return project, nil
}

/*
ListTasks returns the tasks filed under one of the caller's projects.

Returns:
  - []*task.Task: Never nil
  - error: apperr NOT_FOUND "Project not found" unless the caller owns the project
*/
func (service *Service) ListTasks(ctx context.Context, id, ownerID string) ([]*task.Task, error) {
	if _, err := service.Get(ctx, id, ownerID); err != nil {
		return nil, err
	}

	tasks, err := service.tasks.ListByProject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("project_service_list_tasks_failed: %w", err)
	}
	return tasks, nil
}

/*
Create stores a new project owned by the caller.

Description: The body is read with the project's open policy. Title is
required, description defaults to empty and status to "active". Ids,
ownership and timestamps in the body are ignored.

Parameters:
  - ctx: context.Context
  - ownerID: string (the caller)
  - requested: whitelist.Fields

Returns:
  - *Project: The stored project
  - error: apperr VALIDATION_ERROR or storage failures
*/
func (service *Service) Create(ctx context.Context, ownerID string, requested whitelist.Fields) (*Project, error) {
	patch, err := decodePatch(requested)
	if err != nil {
		return nil, err
	}

	v := &validate.Validator{}
	if patch.Title == nil {
		v.Required(FieldTitle, "")
	}
	if err := validatePatch(v, &patch); err != nil {
		return nil, err
	}

	project := &Project{
		ID:          uuidv7.New(),
		Title:       pointer.Val(patch.Title),
		Description: pointer.Val(patch.Description),
		Status:      pointer.Fallback(patch.Status, StatusActive),
		Owner:       ownerID,
	}

	if err := service.projectRepository.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("project_service_create_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "project_created",
		slog.String("project_id", project.ID),
		slog.String("owner_id", ownerID),
	)
	return project, nil
}

/*
Update applies a partial update to one of the caller's projects.

Description: Every key passes the open policy; the known attributes are
applied and the rest have nothing to bind to. A body with no known attribute
returns the project unchanged.

Returns:
  - *Project: The project after the update
  - error: apperr NOT_FOUND "Project not found", VALIDATION_ERROR or storage failures
*/
func (service *Service) Update(ctx context.Context, id, ownerID string, requested whitelist.Fields) (*Project, error) {
	if !uuidv7.Valid(id) {
		return nil, apperr.NotFound(resourceProject)
	}

	patch, err := decodePatch(requested)
	if err != nil {
		return nil, err
	}
	if err := validatePatch(&validate.Validator{}, &patch); err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		return service.Get(ctx, id, ownerID)
	}

	project, err := service.projectRepository.UpdateOwned(ctx, id, ownerID, patch)
	if err != nil {
		return nil, fmt.Errorf("project_service_update_failed: %w", err)
	}
	return project, nil
}

// Delete removes one of the caller's projects. Its tasks are left in place.
func (service *Service) Delete(ctx context.Context, id, ownerID string) error {
	if !uuidv7.Valid(id) {
		return apperr.NotFound(resourceProject)
	}

	if err := service.projectRepository.DeleteOwned(ctx, id, ownerID); err != nil {
		return fmt.Errorf("project_service_delete_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "project_deleted",
		slog.String("project_id", id),
		slog.String("owner_id", ownerID),
	)
	return nil
}

func decodePatch(requested whitelist.Fields) (Patch, error) {
	var patch Patch

	permitted, err := UpdatePolicy.Apply(requested)
	if err != nil {
		return patch, err
	}
	if err := permitted.Decode(&patch); err != nil {
		return patch, err
	}
	return patch, nil
}

// validatePatch normalizes the text attributes in place and checks them.
func validatePatch(v *validate.Validator, patch *Patch) error {
	if patch.Title != nil {
		title := textnorm.Text(*patch.Title)
		patch.Title = &title
		v.Required(FieldTitle, title).MaxLen(FieldTitle, title, TitleMaxLength)
	}
	if patch.Description != nil {
		description := textnorm.Text(*patch.Description)
		patch.Description = &description
	}
	if patch.Status != nil {
		status := textnorm.Text(*patch.Status)
		patch.Status = &status
		v.Required(FieldStatus, status)
	}
	return v.Err()
}
