package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"taskflow/internal/auth"
	"taskflow/internal/domain"
	"taskflow/internal/pkg/logger"
	"taskflow/internal/service"
)

type TaskHandler struct {
	taskService *service.TaskService
	logger      *logger.Logger
}

func NewTaskHandler(taskService *service.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger.Component("handler/task"),
	}
}

func (h *TaskHandler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Patch("/{id}/assign", h.Assign)
	r.Patch("/{id}/complete", h.Complete)
	r.Patch("/{id}/close", h.Close)

	return r
}

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type TaskResponse struct {
	Task *domain.Task `json:"task"`
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	task, err := h.taskService.Create(r.Context(), actor, req.Title, req.Description)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeTask(w, task, http.StatusCreated, h.logger)
}

type ListTasksResponse struct {
	Tasks []*domain.Task `json:"tasks"`
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	tasks, err := h.taskService.List(r.Context(), actor)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(ListTasksResponse{Tasks: tasks}); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

type AssignTaskRequest struct {
	ExecutantID int64 `json:"executant_id"`
}

func (h *TaskHandler) Assign(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	taskID, err := taskIDParam(r)
	if err != nil {
		h.logger.Warn("invalid task id", "error", err)
		http.Error(w, "invalid task id", http.StatusBadRequest)
		return
	}

	var req AssignTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	task, err := h.taskService.Assign(r.Context(), actor, taskID, req.ExecutantID)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeTask(w, task, http.StatusOK, h.logger)
}

func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	taskID, err := taskIDParam(r)
	if err != nil {
		h.logger.Warn("invalid task id", "error", err)
		http.Error(w, "invalid task id", http.StatusBadRequest)
		return
	}

	task, err := h.taskService.Complete(r.Context(), actor, taskID)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeTask(w, task, http.StatusOK, h.logger)
}

func (h *TaskHandler) Close(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	taskID, err := taskIDParam(r)
	if err != nil {
		h.logger.Warn("invalid task id", "error", err)
		http.Error(w, "invalid task id", http.StatusBadRequest)
		return
	}

	task, err := h.taskService.Close(r.Context(), actor, taskID)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeTask(w, task, http.StatusOK, h.logger)
}

func taskIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func writeTask(w http.ResponseWriter, task *domain.Task, status int, logger *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(TaskResponse{Task: task}); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}
