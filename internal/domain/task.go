package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Field limits for Task content, measured in characters.
const (
	MinTitleLength       = 1
	MaxTitleLength       = 200
	MinDescriptionLength = 5
	MaxDescriptionLength = 5000
)

// Task is the sole persisted entity. Summary is derived from Description by
// the summarizer and is nil until a summary has been generated for the
// current description.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Summary     *string   `json:"summary"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewTask creates a Task from raw user input. Title and description are
// trimmed before validation. The ID is left at zero for storage to assign.
func NewTask(title, description string) (*Task, error) {
	task := &Task{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks that the task's content satisfies the field constraints.
func (t *Task) Validate() error {
	if err := ValidateTitle(t.Title); err != nil {
		return err
	}
	return ValidateDescription(t.Description)
}

// SetSummary records a summary generated from the current description.
func (t *Task) SetSummary(summary string) {
	t.Summary = &summary
}

// HasSummary reports whether a summary has been generated.
func (t *Task) HasSummary() bool {
	return t.Summary != nil && *t.Summary != ""
}

// Apply writes the provided fields of u onto the task. When the description
// changes the existing summary no longer describes it and is cleared; the
// caller is expected to set a fresh one. It reports whether the description
// changed.
func (t *Task) Apply(u TaskUpdate) bool {
	if u.Title != nil {
		t.Title = *u.Title
	}

	changed := t.DescriptionChanged(u)
	if changed {
		t.Description = *u.Description
		t.Summary = nil
	}
	return changed
}

// DescriptionChanged reports whether applying u would replace the description.
func (t *Task) DescriptionChanged(u TaskUpdate) bool {
	return u.Description != nil && *u.Description != t.Description
}

// TaskUpdate is a partial change to a Task. Nil fields are left untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
}

// Normalize returns a copy of u with every provided field trimmed.
func (u TaskUpdate) Normalize() TaskUpdate {
	out := TaskUpdate{}
	if u.Title != nil {
		title := strings.TrimSpace(*u.Title)
		out.Title = &title
	}
	if u.Description != nil {
		description := strings.TrimSpace(*u.Description)
		out.Description = &description
	}
	return out
}

// Validate checks the provided fields against the same constraints as NewTask.
func (u TaskUpdate) Validate() error {
	if u.Title != nil {
		if err := ValidateTitle(*u.Title); err != nil {
			return err
		}
	}
	if u.Description != nil {
		if err := ValidateDescription(*u.Description); err != nil {
			return err
		}
	}
	return nil
}

// IsEmpty reports whether the update carries no fields.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil
}

// ValidateTitle checks a task title.
func ValidateTitle(title string) error {
	return validateLength("title", title, MinTitleLength, MaxTitleLength)
}

// ValidateDescription checks a task description.
func ValidateDescription(description string) error {
	return validateLength("description", description, MinDescriptionLength, MaxDescriptionLength)
}

func validateLength(field, value string, minLen, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(field, "cannot be empty", ErrEmptyContent)
	}

	n := utf8.RuneCountInString(value)
	if n < minLen {
		return NewValidationError(field,
			fmt.Sprintf("must be at least %d characters", minLen), ErrContentTooShort)
	}
	if n > maxLen {
		return NewValidationError(field,
			fmt.Sprintf("must be at most %d characters", maxLen), ErrContentTooLong)
	}
	return nil
}
