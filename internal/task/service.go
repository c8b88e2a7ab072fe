// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/taskboard/internal/platform/apperr"
	"github.com/taibuivan/taskboard/internal/platform/validate"
	"github.com/taibuivan/taskboard/internal/platform/whitelist"
	"github.com/taibuivan/taskboard/pkg/pointer"
	"github.com/taibuivan/taskboard/pkg/textnorm"
	"github.com/taibuivan/taskboard/pkg/uuidv7"
)

// # Service Layer

// Service implements the task use cases.
type Service struct {
	taskRepository Repository
	logger         *slog.Logger
	now            func() time.Time
}

// NewService constructs a new [Service] with its dependencies.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		taskRepository: repo,
		logger:         logger,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// WithClock returns a copy of the service that stamps completion times from now.
func (service *Service) WithClock(now func() time.Time) *Service {
	clone := *service
	clone.now = now
	return &clone
}

// ListByProject returns every task filed under projectID.
//
// No ownership check happens here; callers that expose it must guard the
// project first.
func (service *Service) ListByProject(ctx context.Context, projectID string) ([]*Task, error) {
	tasks, err := service.taskRepository.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("task_service_list_failed: %w", err)
	}
	return tasks, nil
}

/*
Create files a new task.

Description: Any authenticated caller may create a task under any project and
assign it to any account. The project reference is not checked; the assignee
must exist.

Parameters:
  - ctx: context.Context
  - creatorID: string (logged only)
  - input: CreateInput

Returns:
  - *Task: The stored task
  - error: apperr VALIDATION_ERROR or storage failures
*/
func (service *Service) Create(ctx context.Context, creatorID string, input CreateInput) (*Task, error) {
	v := &validate.Validator{}
	title := textnorm.Text(pointer.Val(input.Title))
	description := textnorm.Text(pointer.Val(input.Description))
	projectID := pointer.Val(input.Project)
	assignee := pointer.Val(input.AssignedTo)

	v.Required(FieldTitle, title).MaxLen(FieldTitle, title, TitleMaxLength)
	v.Required(FieldDescription, description)
	v.UUID(FieldProject, projectID)
	v.UUID(FieldAssignedTo, assignee)

	status := StatusPending
	if input.Status != nil {
		v.OneOf(FieldStatus, *input.Status, Statuses...)
		status = Status(*input.Status)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	task := &Task{
		ID:          uuidv7.New(),
		Title:       title,
		Description: description,
		Status:      status,
		Project:     projectID,
		AssignedTo:  assignee,
	}
	if status == StatusCompleted {
		stamp := service.now()
		task.CompletedAt = &stamp
	}

	if err := service.taskRepository.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("task_service_create_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "task_created",
		slog.String("task_id", task.ID),
		slog.String("project_id", projectID),
		slog.String("created_by", creatorID),
	)
	return task, nil
}

/*
Update applies a partial update to a task assigned to the caller.

Description: Keys outside [UpdatePolicy] are dropped. A status change into
"completed" stamps completedAt atomically with the write.

Parameters:
  - ctx: context.Context
  - id: string
  - assigneeID: string (the caller)
  - requested: whitelist.Fields

Returns:
  - *Task: The task after the update
  - error: apperr NOT_FOUND "Task not found", VALIDATION_ERROR or storage failures
*/
func (service *Service) Update(ctx context.Context, id, assigneeID string, requested whitelist.Fields) (*Task, error) {
	if !uuidv7.Valid(id) {
		return nil, apperr.NotFound(resourceTask)
	}

	permitted, err := UpdatePolicy.Apply(requested)
	if err != nil {
		return nil, err
	}

	var patch Patch
	if err := permitted.Decode(&patch); err != nil {
		return nil, err
	}
	if err := validatePatch(&patch); err != nil {
		return nil, err
	}

	task, err := service.taskRepository.UpdateAssigned(ctx, id, assigneeID, patch, service.now())
	if err != nil {
		return nil, fmt.Errorf("task_service_update_failed: %w", err)
	}

	if patch.Status != nil {
		service.logger.InfoContext(ctx, "task_status_changed",
			slog.String("task_id", id),
			slog.String("status", string(task.Status)),
		)
	}
	return task, nil
}

// Delete removes a task assigned to the caller.
func (service *Service) Delete(ctx context.Context, id, assigneeID string) error {
	if !uuidv7.Valid(id) {
		return apperr.NotFound(resourceTask)
	}

	if err := service.taskRepository.DeleteAssigned(ctx, id, assigneeID); err != nil {
		return fmt.Errorf("task_service_delete_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "task_deleted", slog.String("task_id", id))
	return nil
}

// validatePatch normalizes text fields in place and checks them.
func validatePatch(patch *Patch) error {
	v := &validate.Validator{}
	if patch.Title != nil {
		title := textnorm.Text(*patch.Title)
		patch.Title = &title
		v.Required(FieldTitle, title).MaxLen(FieldTitle, title, TitleMaxLength)
	}
	if patch.Description != nil {
		description := textnorm.Text(*patch.Description)
		patch.Description = &description
		v.Required(FieldDescription, description)
	}
	if patch.Status != nil {
		v.OneOf(FieldStatus, *patch.Status, Statuses...)
	}
	return v.Err()
}
