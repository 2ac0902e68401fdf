//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/phrazzld/tasksum-api/internal/domain"
	"github.com/phrazzld/tasksum-api/internal/platform/postgres"
	"github.com/phrazzld/tasksum-api/internal/store"
	"github.com/phrazzld/tasksum-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestTask(t *testing.T, s store.TaskStore, title, description string) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(title, description)
	require.NoError(t, err)
	require.NoError(t, s.Create(context.Background(), task))
	return task
}

func TestPostgresTaskStore_Lifecycle(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	ctx := context.Background()

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		s := postgres.NewPostgresTaskStore(db, nil).WithTx(tx)

		task := createTestTask(t, s, "Buy milk", "Go to store and buy milk")
		assert.Positive(t, task.ID)

		second := createTestTask(t, s, "Walk dog", "Take the dog around the block")
		assert.Greater(t, second.ID, task.ID, "ids increase monotonically")

		got, err := s.GetByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "Buy milk", got.Title)
		assert.Nil(t, got.Summary)

		got.SetSummary("Buy milk at store")
		got.Title = "Buy oat milk"
		require.NoError(t, s.Update(ctx, got))

		locked, err := s.GetByIDForUpdate(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "Buy oat milk", locked.Title)
		require.NotNil(t, locked.Summary)
		assert.Equal(t, "Buy milk at store", *locked.Summary)
		assert.WithinDuration(t, task.CreatedAt, locked.CreatedAt, time.Millisecond, "created_at preserved")

		require.NoError(t, s.Delete(ctx, task.ID))
		_, err = s.GetByID(ctx, task.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.ErrorIs(t, s.Delete(ctx, task.ID), store.ErrTaskNotFound)
	})
}

func TestPostgresTaskStore_ListNewestFirst(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	ctx := context.Background()

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		s := postgres.NewPostgresTaskStore(db, nil).WithTx(tx)

		older := createTestTask(t, s, "A", "First task description")
		newer := createTestTask(t, s, "B", "Second task description")

		// now() is fixed for the whole transaction, so ties fall back to id.
		page, err := s.List(ctx, 2, 0)
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, newer.ID, page[0].ID)
		assert.Equal(t, older.ID, page[1].ID)

		next, err := s.List(ctx, 1, 1)
		require.NoError(t, err)
		require.Len(t, next, 1)
		assert.Equal(t, older.ID, next[0].ID)
	})
}

func TestPostgresTaskStore_CheckConstraint(t *testing.T) {
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		_, err := tx.ExecContext(context.Background(),
			`INSERT INTO tasks (title, description) VALUES ('   ', 'valid description')`)
		require.Error(t, err)
		assert.True(t, postgres.IsCheckConstraintViolation(err))
		assert.ErrorIs(t, postgres.MapError(err), store.ErrInvalidEntity)
	})
}
