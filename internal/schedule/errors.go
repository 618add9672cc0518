package schedule

import "errors"

// Sentinel errors for schedule validation. All of them are detected during
// the validation pre-pass, before any scheduling pass runs, so a failed
// call never produces partial output.
var (
	// ErrCyclicDependency indicates a circular dependency among tasks.
	ErrCyclicDependency = errors.New("cyclic dependency")
	// ErrUnknownDependency indicates a task depends on an ID absent from the input.
	ErrUnknownDependency = errors.New("unknown dependency")
	// ErrInvalidDuration indicates a non-positive or non-finite task duration.
	ErrInvalidDuration = errors.New("invalid duration")
	// ErrConfiguration indicates unusable schedule settings, such as an
	// empty working-day set while working hours are being respected.
	ErrConfiguration = errors.New("invalid schedule configuration")
	// ErrDuplicateTask indicates two input tasks share the same ID.
	ErrDuplicateTask = errors.New("duplicate task ID")
)
