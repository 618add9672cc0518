package plan

import (
	"fmt"
	"math"
)

// Validate checks a plan for structural correctness: required fields,
// positive unique IDs, sane durations, and dependency references that
// resolve within the plan. Cycle detection is left to the scheduler's own
// pre-pass, which reports the cycle members.
func Validate(p *Plan) []ValidationError {
	var errs []ValidationError

	if p.Name == "" {
		errs = append(errs, ValidationError{
			Category: CatMissingField,
			Field:    "plan.name",
			Err:      fmt.Errorf("%w: plan.name", ErrMissingField),
		})
	}

	ids := make(map[int]bool, len(p.Tasks))
	for _, t := range p.Tasks {
		if t.ID <= 0 {
			errs = append(errs, ValidationError{
				Category: CatBadID,
				TaskID:   t.ID,
				Field:    "id",
				Err:      fmt.Errorf("%w: got %d", ErrBadID, t.ID),
			})
			continue
		}
		if ids[t.ID] {
			errs = append(errs, ValidationError{
				Category: CatDuplicateID,
				TaskID:   t.ID,
				Err:      fmt.Errorf("%w: %d", ErrDuplicateID, t.ID),
			})
		}
		ids[t.ID] = true

		if t.Title == "" {
			errs = append(errs, ValidationError{
				Category: CatMissingField,
				TaskID:   t.ID,
				Field:    "title",
				Err:      fmt.Errorf("%w: title", ErrMissingField),
			})
		}
		if t.EstimatedDurationHours <= 0 ||
			math.IsNaN(t.EstimatedDurationHours) ||
			math.IsInf(t.EstimatedDurationHours, 0) {
			errs = append(errs, ValidationError{
				Category: CatBadDuration,
				TaskID:   t.ID,
				Field:    "estimated_duration_hours",
				Err:      fmt.Errorf("%w: got %v", ErrBadDuration, t.EstimatedDurationHours),
			})
		}
	}

	for _, t := range p.Tasks {
		for _, dep := range t.Dependencies {
			if dep == t.ID {
				errs = append(errs, ValidationError{
					Category: CatSelfDep,
					TaskID:   t.ID,
					Field:    "depends_on",
					Err:      fmt.Errorf("%w: %d", ErrSelfDep, t.ID),
				})
				continue
			}
			if !ids[dep] {
				errs = append(errs, ValidationError{
					Category: CatUnknownDep,
					TaskID:   t.ID,
					Field:    "depends_on",
					Err:      fmt.Errorf("%w: %d depends on %d", ErrUnknownDep, t.ID, dep),
				})
			}
		}
	}
	return errs
}
