package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/tasksum-api/internal/domain"
)

// Pagination bounds for TaskStore.List.
const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// TaskStore defines the interface for task persistence.
type TaskStore interface {
	// Create inserts a new task. The ID and CreatedAt assigned by storage
	// are written back onto task on success.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// GetByIDForUpdate retrieves a task and locks its row until the
	// surrounding transaction ends. Only meaningful on a store bound to a
	// transaction via WithTx.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Task, error)

	// Update saves title, description and summary of an existing task.
	// ID and CreatedAt are never changed.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// List returns tasks newest first.
	// Returns an empty slice if there are none in range.
	List(ctx context.Context, limit, offset int) ([]*domain.Task, error)

	// WithTx returns a TaskStore that runs its queries on tx.
	WithTx(tx *sql.Tx) TaskStore

	// DB returns the underlying database handle used to start transactions.
	DB() *sql.DB
}
