// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/taskboard/internal/platform/request"
	"github.com/taibuivan/taskboard/internal/platform/respond"
)

// Handler implements the HTTP layer for projects. Mount it behind the
// authentication gate.
type Handler struct {
	projectService *Service
}

// NewHandler constructs a new project [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{projectService: service}
}

// Routes returns a [chi.Router] for /projects.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listProjects)
	router.Post("/", handler.createProject)

	router.Route("/{id}", func(r chi.Router) {
		r.Get("/", handler.getProject)
		r.Patch("/", handler.updateProject)
		r.Delete("/", handler.deleteProject)
		r.Get("/tasks", handler.listProjectTasks)
	})

	return router
}

// # Project Endpoints

// GET /api/projects. The caller's projects, oldest first.
func (handler *Handler) listProjects(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	projects, err := handler.projectService.List(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, projects)
}

/*
POST /api/projects.

Request:
  - body: {title, description?, status?}

Response:
  - 201: Project owned by the caller
  - 400: Validation failure
*/
func (handler *Handler) createProject(writer http.ResponseWriter, request *http.Request) {
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

	project, err := handler.projectService.Create(request.Context(), userID, fields)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, project)
}

// GET /api/projects/{id}. 404 unless the caller owns it.
func (handler *Handler) getProject(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	project, err := handler.projectService.Get(request.Context(), requestutil.Param(request, "id"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, project)
}

/*
PATCH /api/projects/{id}.

Request:
  - body: any of {title, description, status}

Response:
  - 200: Project
  - 404: "Project not found" unless the caller owns it
*/
func (handler *Handler) updateProject(writer http.ResponseWriter, request *http.Request) {
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

	project, err := handler.projectService.Update(request.Context(), requestutil.Param(request, "id"), userID, fields)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, project)
}

func (handler *Handler) deleteProject(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.projectService.Delete(request.Context(), requestutil.Param(request, "id"), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Project deleted successfully")
}

// GET /api/projects/{id}/tasks. 404 unless the caller owns the project.
func (handler *Handler) listProjectTasks(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tasks, err := handler.projectService.ListTasks(request.Context(), requestutil.Param(request, "id"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tasks)
}
