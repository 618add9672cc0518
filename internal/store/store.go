// Package store persists plan documents in a local SQLite database.
// Each plan is a single row embedding its task list as a JSON document;
// scheduling runs rewrite the whole document, never individual fields.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/lodestarhq/lodestar/internal/plan"
)

// ErrPlanNotFound is returned when a plan ID has no stored document.
var ErrPlanNotFound = errors.New("plan not found")

// Summary is a lightweight listing row for a stored plan.
type Summary struct {
	ID         string
	Name       string
	TotalTasks int
	UpdatedAt  time.Time
}

// Store is the repository interface the rest of the application talks to.
// The scheduler itself never touches it; persisting a schedule is the
// caller's separate transaction.
type Store interface {
	Save(ctx context.Context, p *plan.Plan) error
	Get(ctx context.Context, id string) (*plan.Plan, error)
	List(ctx context.Context) ([]Summary, error)
	Delete(ctx context.Context, id string) error
	Close() error
}
