// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/taskboard/internal/platform/request"
	"github.com/taibuivan/taskboard/internal/platform/respond"
)

// Handler implements the HTTP layer for tasks. Mount it behind the
// authentication gate.
type Handler struct {
	taskService *Service
}

// NewHandler constructs a new task [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{taskService: service}
}

// Routes returns a [chi.Router] for /tasks.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.createTask)
	router.Patch("/{id}", handler.updateTask)
	router.Delete("/{id}", handler.deleteTask)

	return router
}

// # Task Endpoints

/*
POST /api/tasks.

Request:
  - body: {title, description, status?, project, assignedTo}

Response:
  - 201: Task
  - 400: Validation failure or unknown assignee
*/
func (handler *Handler) createTask(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	task, err := handler.taskService.Create(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, task)
}

/*
PATCH /api/tasks/{id}.

Request:
  - body: any of {title, description, status}; other keys are ignored

Response:
  - 200: Task
  - 404: "Task not found" unless the caller is the assignee
*/
func (handler *Handler) updateTask(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	fields, err := requestutil.DecodeFields(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	task, err := handler.taskService.Update(request.Context(), requestutil.Param(request, "id"), userID, fields)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, task)
}

// DELETE /api/tasks/{id}. 404 unless the caller is the assignee.
func (handler *Handler) deleteTask(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.taskService.Delete(request.Context(), requestutil.Param(request, "id"), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Task deleted successfully")
}
