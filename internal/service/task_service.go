package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/tasksum-api/internal/domain"
	"github.com/phrazzld/tasksum-api/internal/platform/logger"
	"github.com/phrazzld/tasksum-api/internal/store"
	"github.com/phrazzld/tasksum-api/internal/summary"
)

// TaskService provides task-related operations
type TaskService interface {
	// CreateTask validates the input, summarizes the description and persists
	// the task. Nothing is stored when summarization fails.
	CreateTask(ctx context.Context, title, description string) (*domain.Task, error)

	// GetTask retrieves a task by its ID
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	// UpdateTask applies a partial update. The summary is regenerated only
	// when the description changes.
	UpdateTask(ctx context.Context, id int64, update domain.TaskUpdate) (*domain.Task, error)

	// DeleteTask removes a task
	DeleteTask(ctx context.Context, id int64) error

	// ListTasks returns a page of tasks, newest first
	ListTasks(ctx context.Context, limit, offset int) ([]*domain.Task, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks      store.TaskStore
	summarizer summary.Summarizer
	logger     *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	tasks store.TaskStore,
	summarizer summary.Summarizer,
	logger *slog.Logger,
) (TaskService, error) {
	if tasks == nil {
		return nil, &TaskServiceError{Operation: "create_service", Message: "task store cannot be nil"}
	}
	if summarizer == nil {
		return nil, &TaskServiceError{Operation: "create_service", Message: "summarizer cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:      tasks,
		summarizer: summarizer,
		logger:     logger.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(ctx context.Context, title, description string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(title, description)
	if err != nil {
		log.Debug("task input failed validation", slog.String("error", err.Error()))
		return nil, err
	}

	text, err := s.summarizer.Summarize(ctx, task.Description)
	if err != nil {
		log.Warn("failed to summarize new task", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("create_task", "failed to summarize description", err)
	}
	task.SetSummary(text)

	if err := s.tasks.Create(ctx, task); err != nil {
		log.Error("failed to save task", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created", slog.Int64("task_id", task.ID))
	return task, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, NewTaskServiceError("get_task", "failed to retrieve task", err)
	}
	return task, nil
}

// UpdateTask implements TaskService.UpdateTask.
// The task is loaded first so an unknown ID fails before the summarizer is
// called, and the summary for a new description is fetched before the row
// lock is taken. If a concurrent update left the locked row needing a
// summary that was not prepared, it is generated inside the transaction.
func (s *taskServiceImpl) UpdateTask(ctx context.Context, id int64, update domain.TaskUpdate) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.Int64("task_id", id))

	update = update.Normalize()
	if err := update.Validate(); err != nil {
		log.Debug("task update failed validation", slog.String("error", err.Error()))
		return nil, err
	}

	current, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, NewTaskServiceError("update_task", "failed to retrieve task", err)
	}
	if update.IsEmpty() {
		return current, nil
	}

	var prepared *string
	if current.DescriptionChanged(update) {
		text, err := s.summarizer.Summarize(ctx, *update.Description)
		if err != nil {
			log.Warn("failed to summarize updated description", slog.String("error", err.Error()))
			return nil, NewTaskServiceError("update_task", "failed to summarize description", err)
		}
		prepared = &text
	}

	var updated *domain.Task
	err = store.RunInTransaction(ctx, s.tasks.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.tasks.WithTx(tx)

		locked, err := txStore.GetByIDForUpdate(ctx, id)
		if err != nil {
			return NewTaskServiceError("update_task", "failed to lock task", err)
		}

		if locked.Apply(update) {
			if prepared == nil {
				log.Info("description changed concurrently, summarizing inside transaction")
				text, err := s.summarizer.Summarize(ctx, locked.Description)
				if err != nil {
					return NewTaskServiceError("update_task", "failed to summarize description", err)
				}
				prepared = &text
			}
			locked.SetSummary(*prepared)
		}

		if err := txStore.Update(ctx, locked); err != nil {
			return NewTaskServiceError("update_task", "failed to save task", err)
		}
		updated = locked
		return nil
	})
	if err != nil {
		log.Warn("task update failed", slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("task updated", slog.Bool("summary_regenerated", prepared != nil))
	return updated, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted", slog.Int64("task_id", id))
	return nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context, limit, offset int) ([]*domain.Task, error) {
	tasks, err := s.tasks.List(ctx, limit, offset)
	if err != nil {
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}
