package api

import (
	"log/slog"
	"math"
	"net/http"

	"github.com/phrazzld/tasksum-api/internal/api/shared"
	"github.com/phrazzld/tasksum-api/internal/platform/logger"
	"github.com/phrazzld/tasksum-api/internal/service"
	"github.com/phrazzld/tasksum-api/internal/store"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	tasks  service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(tasks service.TaskService, logger *slog.Logger) *TaskHandler {
	if tasks == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("task service cannot be nil for TaskHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

// CreateTask handles POST /tasks requests.
// The summary is generated before the task is stored; nothing is stored
// when summarization fails.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		respondWithError(w, r, err)
		return
	}
	req.Normalize()
	if err := shared.ValidateRequest(&req); err != nil {
		respondWithError(w, r, err)
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), req.Title, req.Description)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	log.Debug("task created", slog.Int64("task_id", task.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// GetTask handles GET /tasks/{id} requests
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	task, err := h.tasks.GetTask(r.Context(), id)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateTask handles PUT and PATCH /tasks/{id} requests. Both verbs apply
// only the fields present in the body.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		respondWithError(w, r, err)
		return
	}
	req.Normalize()
	if err := shared.ValidateRequest(&req); err != nil {
		respondWithError(w, r, err)
		return
	}

	task, err := h.tasks.UpdateTask(r.Context(), id, req.ToDomain())
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	log.Debug("task updated", slog.Int64("task_id", task.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /tasks/{id} requests
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), id); err != nil {
		respondWithError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeleteTaskResponse{ID: id, Deleted: true})
}

// ListTasks handles GET /tasks requests, newest first.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	limit, err := getQueryInt(r, "limit", store.DefaultListLimit, 1, store.MaxListLimit)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	offset, err := getQueryInt(r, "offset", 0, 0, math.MaxInt32)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	tasks, err := h.tasks.ListTasks(r.Context(), limit, offset)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskListResponse{
		Tasks:  tasksToResponse(tasks),
		Limit:  limit,
		Offset: offset,
	})
}
