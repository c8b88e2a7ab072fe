// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package task manages tasks filed under projects.

# Authorization

Update and delete are allowed only to the task's assignee; anyone else gets
the same 404 as for a missing task. Creating a task and listing a project's
tasks by id are open to any authenticated caller.

# Completion

When an update moves status into "completed", completedAt is stamped in the
same statement. Leaving "completed" does not clear it.
*/
package task

import (
	"time"

	"github.com/taibuivan/taskboard/internal/platform/whitelist"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every valid [Status] in display order.
var Statuses = []string{string(StatusPending), string(StatusInProgress), string(StatusCompleted)}

// Task is a unit of work under a project, assigned to one account.
type Task struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Project     string     `json:"project"`
	AssignedTo  string     `json:"assignedTo"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt"`
}

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldStatus      = "status"
	FieldProject     = "project"
	FieldAssignedTo  = "assignedTo"
)

// TitleMaxLength bounds task titles.
const TitleMaxLength = 200

// UpdatePolicy is the whitelist applied to PATCH /tasks/{id}.
var UpdatePolicy = whitelist.Lenient(FieldTitle, FieldDescription, FieldStatus)

// Patch carries the fields an update may change. Nil means "leave unchanged".
type Patch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// IsEmpty reports whether the patch changes nothing.
func (patch Patch) IsEmpty() bool {
	return patch.Title == nil && patch.Description == nil && patch.Status == nil
}

// applyTo mutates task as the database UPDATE would, stamping completion at now.
func (patch Patch) applyTo(task *Task, now time.Time) {
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		next := Status(*patch.Status)
		if next == StatusCompleted && task.Status != StatusCompleted {
			stamped := now
			task.CompletedAt = &stamped
		}
		task.Status = next
	}
}

// CreateInput is the body of POST /tasks.
type CreateInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Project     *string `json:"project"`
	AssignedTo  *string `json:"assignedTo"`
}
