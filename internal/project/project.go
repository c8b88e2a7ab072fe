// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package project manages the caller's projects.

# Ownership

Every lookup is filtered by owner. A project that exists but belongs to
someone else is reported exactly like one that does not exist, so callers
cannot discover other users' ids.

# Updates

Project updates use the open whitelist: every key in the body is offered to
the project, which applies the attributes it knows (title, description,
status) and ignores the rest. `_id`, `owner` and the timestamps are system
managed and never taken from a body.
*/
package project

import (
	"time"

	"github.com/taibuivan/taskboard/internal/platform/whitelist"
)

// StatusActive is the status of a newly created project.
const StatusActive = "active"

// Project is a container for tasks, owned by one account.
type Project struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Owner       string    `json:"owner"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldStatus      = "status"
)

// TitleMaxLength bounds project titles.
const TitleMaxLength = 200

// UpdatePolicy is the whitelist applied to PATCH /projects/{id}.
var UpdatePolicy = whitelist.Open()

// Patch carries the project attributes a body may set. Nil means "leave unchanged".
type Patch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// IsEmpty reports whether the patch changes nothing.
func (patch Patch) IsEmpty() bool {
	return patch.Title == nil && patch.Description == nil && patch.Status == nil
}

func (patch Patch) applyTo(project *Project) {
	if patch.Title != nil {
		project.Title = *patch.Title
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.Status != nil {
		project.Status = *patch.Status
	}
}
