package task

import (
	"errors"
	"strings"
)

// Validation messages for the insert shape.
const (
	MsgTitleBlank       = "Title may not be blank"
	MsgDescriptionBlank = "Description may not be blank"
)

// ErrNotFound is returned when no task has the requested ID.
var ErrNotFound = errors.New("task not found")

// ValidationError collects every constraint violation of an Insert.
type ValidationError struct {
	Messages []string
}

// Error renders the violations as a single line.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("Validation errors:")
	for _, msg := range e.Messages {
		b.WriteString(" ")
		b.WriteString(msg)
	}
	return b.String()
}

// Insert is the client-supplied shape for creating or editing a task.
// Fields outside this shape are never read from the request.
type Insert struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate returns a *ValidationError when title or description is blank.
func (in Insert) Validate() error {
	var msgs []string
	if strings.TrimSpace(in.Title) == "" {
		msgs = append(msgs, MsgTitleBlank)
	}
	if strings.TrimSpace(in.Description) == "" {
		msgs = append(msgs, MsgDescriptionBlank)
	}
	if len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return nil
}
