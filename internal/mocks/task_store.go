package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/phrazzld/tasksum-api/internal/domain"
	"github.com/phrazzld/tasksum-api/internal/store"
)

// MockTaskStore is an in-memory store.TaskStore. Tasks are copied on the way
// in and out so callers cannot mutate stored state. WithTx returns the same
// store; writes made inside a rolled-back transaction are not undone.
type MockTaskStore struct {
	// Optional overrides, consulted before the in-memory behaviour
	CreateFn  func(ctx context.Context, task *domain.Task) error
	GetByIDFn func(ctx context.Context, id int64) (*domain.Task, error)
	UpdateFn  func(ctx context.Context, task *domain.Task) error
	DeleteFn  func(ctx context.Context, id int64) error
	ListFn    func(ctx context.Context, limit, offset int) ([]*domain.Task, error)

	db *sql.DB

	mu     sync.Mutex
	tasks  map[int64]domain.Task
	nextID int64
	calls  map[string]int
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates an empty store. A nil db is replaced by NewNoopDB.
func NewMockTaskStore(db *sql.DB) *MockTaskStore {
	if db == nil {
		db = NewNoopDB()
	}
	return &MockTaskStore{
		db:     db,
		tasks:  make(map[int64]domain.Task),
		nextID: 1,
		calls:  make(map[string]int),
	}
}

func (m *MockTaskStore) record(method string) {
	m.mu.Lock()
	m.calls[method]++
	m.mu.Unlock()
}

// Calls returns how many times method was invoked.
func (m *MockTaskStore) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// Len returns the number of stored tasks.
func (m *MockTaskStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Seed stores a copy of task under a fresh ID and returns that ID.
func (m *MockTaskStore) Seed(task domain.Task) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	task.ID = m.nextID
	m.nextID++
	m.tasks[task.ID] = cloneTask(task)
	return task.ID
}

// Create implements store.TaskStore.
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	if err := task.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	task.ID = m.nextID
	m.nextID++
	m.tasks[task.ID] = cloneTask(*task)
	return nil
}

// GetByID implements store.TaskStore.
func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	m.record("GetByID")
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.get(id)
}

// GetByIDForUpdate implements store.TaskStore. It does not lock.
func (m *MockTaskStore) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Task, error) {
	m.record("GetByIDForUpdate")
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.get(id)
}

func (m *MockTaskStore) get(id int64) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	out := cloneTask(task)
	return &out, nil
}

// Update implements store.TaskStore.
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	m.record("Update")
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	if err := task.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.tasks[task.ID]
	if !ok {
		return store.ErrTaskNotFound
	}
	updated := cloneTask(*task)
	updated.CreatedAt = existing.CreatedAt
	m.tasks[task.ID] = updated
	return nil
}

// Delete implements store.TaskStore.
func (m *MockTaskStore) Delete(ctx context.Context, id int64) error {
	m.record("Delete")
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

// List implements store.TaskStore, newest (highest ID) first.
func (m *MockTaskStore) List(ctx context.Context, limit, offset int) ([]*domain.Task, error) {
	m.record("List")
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset)
	}
	if limit <= 0 {
		limit = store.DefaultListLimit
	}
	if limit > store.MaxListLimit {
		limit = store.MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]int64, 0, len(m.tasks))
	for id := range m.tasks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	out := make([]*domain.Task, 0, limit)
	for i := offset; i < len(ids) && len(out) < limit; i++ {
		task := cloneTask(m.tasks[ids[i]])
		out = append(out, &task)
	}
	return out, nil
}

// WithTx implements store.TaskStore by returning the same store.
func (m *MockTaskStore) WithTx(*sql.Tx) store.TaskStore {
	m.record("WithTx")
	return m
}

// DB implements store.TaskStore.
func (m *MockTaskStore) DB() *sql.DB {
	return m.db
}

func cloneTask(t domain.Task) domain.Task {
	if t.Summary != nil {
		s := *t.Summary
		t.Summary = &s
	}
	return t
}
