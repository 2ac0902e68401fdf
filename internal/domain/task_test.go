package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewTask(t *testing.T) {
	t.Parallel()

	t.Run("valid task", func(t *testing.T) {
		t.Parallel()
		before := time.Now().UTC()

		task, err := NewTask("  Buy milk ", "Go to store and buy milk\n")

		require.NoError(t, err)
		assert.Equal(t, "Buy milk", task.Title, "title should be trimmed")
		assert.Equal(t, "Go to store and buy milk", task.Description, "description should be trimmed")
		assert.Zero(t, task.ID, "id is assigned by storage")
		assert.Nil(t, task.Summary)
		assert.False(t, task.HasSummary())
		assert.False(t, task.CreatedAt.Before(before))
		assert.Equal(t, time.UTC, task.CreatedAt.Location())
	})

	testCases := []struct {
		name        string
		title       string
		description string
		field       string
		cause       error
	}{
		{name: "empty title", title: "", description: "A valid description", field: "title", cause: ErrEmptyContent},
		{name: "blank title", title: "   \t", description: "A valid description", field: "title", cause: ErrEmptyContent},
		{name: "title too long", title: strings.Repeat("x", MaxTitleLength+1), description: "A valid description", field: "title", cause: ErrContentTooLong},
		{name: "empty description", title: "Title", description: "", field: "description", cause: ErrEmptyContent},
		{name: "description too short", title: "Title", description: "abcd", field: "description", cause: ErrContentTooShort},
		{name: "description too long", title: "Title", description: strings.Repeat("y", MaxDescriptionLength+1), field: "description", cause: ErrContentTooLong},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			task, err := NewTask(tc.title, tc.description)

			require.Error(t, err)
			assert.Nil(t, task)
			assert.ErrorIs(t, err, ErrValidation)
			assert.ErrorIs(t, err, tc.cause)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tc.field, vErr.Field)
			assert.NotEmpty(t, vErr.Message)
		})
	}
}

func TestTaskLengthCountsCharacters(t *testing.T) {
	t.Parallel()

	// Five runes, fifteen bytes
	_, err := NewTask("タイトル", "日本語です")
	assert.NoError(t, err)

	_, err = NewTask(strings.Repeat("é", MaxTitleLength), "A valid description")
	assert.NoError(t, err, "limit applies to characters, not bytes")
}

func TestTask_Apply(t *testing.T) {
	t.Parallel()

	newTask := func() *Task {
		task, err := NewTask("Buy milk", "Go to store and buy milk")
		require.NoError(t, err)
		task.ID = 7
		task.SetSummary("Buy milk at store")
		return task
	}

	t.Run("title only keeps summary", func(t *testing.T) {
		t.Parallel()
		task := newTask()

		changed := task.Apply(TaskUpdate{Title: strPtr("Buy oat milk")})

		assert.False(t, changed)
		assert.Equal(t, "Buy oat milk", task.Title)
		require.NotNil(t, task.Summary)
		assert.Equal(t, "Buy milk at store", *task.Summary)
	})

	t.Run("new description clears summary", func(t *testing.T) {
		t.Parallel()
		task := newTask()

		changed := task.Apply(TaskUpdate{Description: strPtr("Walk the dog around the block")})

		assert.True(t, changed)
		assert.Equal(t, "Walk the dog around the block", task.Description)
		assert.Nil(t, task.Summary)
	})

	t.Run("identical description is not a change", func(t *testing.T) {
		t.Parallel()
		task := newTask()

		changed := task.Apply(TaskUpdate{Description: strPtr("Go to store and buy milk")})

		assert.False(t, changed)
		assert.True(t, task.HasSummary())
	})

	t.Run("empty update leaves task untouched", func(t *testing.T) {
		t.Parallel()
		task := newTask()
		original := *task

		assert.False(t, task.Apply(TaskUpdate{}))
		assert.Equal(t, original.Title, task.Title)
		assert.Equal(t, original.Description, task.Description)
		assert.Equal(t, original.ID, task.ID)
		assert.Equal(t, original.CreatedAt, task.CreatedAt)
	})
}

func TestTaskUpdate(t *testing.T) {
	t.Parallel()

	t.Run("normalize trims provided fields", func(t *testing.T) {
		t.Parallel()
		u := TaskUpdate{Title: strPtr("  padded  ")}.Normalize()

		require.NotNil(t, u.Title)
		assert.Equal(t, "padded", *u.Title)
		assert.Nil(t, u.Description)
	})

	t.Run("normalize does not alias input", func(t *testing.T) {
		t.Parallel()
		in := strPtr(" value ")
		u := TaskUpdate{Title: in}.Normalize()
		assert.Equal(t, " value ", *in)
		assert.Equal(t, "value", *u.Title)
	})

	t.Run("is empty", func(t *testing.T) {
		t.Parallel()
		assert.True(t, TaskUpdate{}.IsEmpty())
		assert.False(t, TaskUpdate{Description: strPtr("x")}.IsEmpty())
	})

	t.Run("validate rejects provided empty fields", func(t *testing.T) {
		t.Parallel()
		err := TaskUpdate{Title: strPtr("")}.Validate()
		assert.ErrorIs(t, err, ErrValidation)

		err = TaskUpdate{Description: strPtr("tiny")}.Validate()
		assert.ErrorIs(t, err, ErrContentTooShort)
	})

	t.Run("validate accepts omitted fields", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, TaskUpdate{}.Validate())
		assert.NoError(t, TaskUpdate{Title: strPtr("New title")}.Validate())
	})
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := NewValidationError("id", "has invalid format", ErrInvalidID)
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, ErrInvalidID)
	assert.Equal(t, "validation failed for field id: has invalid format", err.Error())

	defaulted := NewValidationError("title", "is required", nil)
	assert.ErrorIs(t, defaulted, ErrValidation)
	assert.NotErrorIs(t, defaulted, ErrInvalidID)
}
