package api

import (
	"strings"
	"time"

	"github.com/phrazzld/tasksum-api/internal/domain"
)

// CreateTaskRequest defines the payload for POST /tasks.
type CreateTaskRequest struct {
	Title       string `json:"title"       validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"required,min=5,max=5000"`
}

// Normalize trims surrounding whitespace from every field.
func (r *CreateTaskRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
}

// UpdateTaskRequest defines the payload for PUT and PATCH /tasks/{id}.
// Omitted fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title"       validate:"omitnil,min=1,max=200"`
	Description *string `json:"description" validate:"omitnil,min=5,max=5000"`
}

// Normalize trims surrounding whitespace from every provided field.
func (r *UpdateTaskRequest) Normalize() {
	r.Title = trimPtr(r.Title)
	r.Description = trimPtr(r.Description)
}

// ToDomain converts the request into a domain.TaskUpdate.
func (r *UpdateTaskRequest) ToDomain() domain.TaskUpdate {
	return domain.TaskUpdate{Title: r.Title, Description: r.Description}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}

// TaskResponse is the JSON representation of a task. Summary is null until
// one has been generated.
type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Summary     *string   `json:"summary"`
	CreatedAt   time.Time `json:"created_at"`
}

// TaskListResponse is returned by GET /tasks.
type TaskListResponse struct {
	Tasks  []TaskResponse `json:"tasks"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// DeleteTaskResponse confirms a deletion.
type DeleteTaskResponse struct {
	ID      int64 `json:"id"`
	Deleted bool  `json:"deleted"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func taskToResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Summary:     t.Summary,
		CreatedAt:   t.CreatedAt.UTC(),
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskToResponse(t))
	}
	return out
}
