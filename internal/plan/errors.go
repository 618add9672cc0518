package plan

import (
	"errors"
	"fmt"
)

// Sentinel errors for plan loading and validation.
var (
	// ErrNoPlanFile indicates the plan file does not exist.
	ErrNoPlanFile = errors.New("plan file not found")
	// ErrMissingField indicates a required field (e.g. id, title) is empty.
	ErrMissingField = errors.New("required field missing")
	// ErrDuplicateID indicates two or more tasks share the same ID.
	ErrDuplicateID = errors.New("duplicate task ID")
	// ErrUnknownDep indicates a task depends on an ID that does not exist.
	ErrUnknownDep = errors.New("task depends on unknown task ID")
	// ErrSelfDep indicates a task lists itself as a dependency.
	ErrSelfDep = errors.New("task depends on itself")
	// ErrBadDuration indicates a non-positive or non-finite duration.
	ErrBadDuration = errors.New("estimated duration must be a positive number")
	// ErrBadID indicates a task ID that is not a positive integer.
	ErrBadID = errors.New("task ID must be a positive integer")
)

// Category classifies a validation error for programmatic handling.
type Category string

const (
	// CatMissingField indicates a required field is empty.
	CatMissingField Category = "missing_field"
	// CatDuplicateID indicates two or more tasks share the same ID.
	CatDuplicateID Category = "duplicate_id"
	// CatUnknownDep indicates a dependency references a non-existent task.
	CatUnknownDep Category = "unknown_dep"
	// CatSelfDep indicates a task depends on itself.
	CatSelfDep Category = "self_dep"
	// CatBadDuration indicates an out-of-range duration value.
	CatBadDuration Category = "bad_duration"
	// CatBadID indicates a non-positive task ID.
	CatBadID Category = "bad_id"
)

// ValidationError records a validation problem with task context. Task
// lists often come from an AI generation service and are treated as
// untrusted input, so errors carry enough context to point at the
// offending record.
type ValidationError struct {
	Category Category // Machine-readable category for programmatic handling
	TaskID   int      // 0 when the problem is not tied to a task
	Field    string
	Err      error
}

// Error returns a human-readable string including task context.
func (e *ValidationError) Error() string {
	if e.TaskID != 0 {
		return fmt.Sprintf("task %d: %v", e.TaskID, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
