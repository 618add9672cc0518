package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lodestarhq/lodestar/internal/config"
	"github.com/lodestarhq/lodestar/internal/plan"
	"github.com/lodestarhq/lodestar/internal/store"
)

// resolvePlan loads the plan named by the positional argument. A path
// ending in .toml is read from disk; anything else is treated as a stored
// plan ID.
func resolvePlan(ctx context.Context, cfg config.Config, arg string) (*plan.Plan, error) {
	if strings.HasSuffix(arg, ".toml") {
		return plan.Load(arg)
	}

	st, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	return st.Get(ctx, arg)
}

// parseStart parses a --start flag value.
func parseStart(value string) (time.Time, error) {
	start, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing --start: %w", err)
	}
	return start, nil
}

// validatePlan runs plan validation and reports every problem before
// returning an error, so the user sees the full list in one pass.
func validatePlan(cmd *cobra.Command, p *plan.Plan) error {
	errs := plan.Validate(p)
	if len(errs) == 0 {
		return nil
	}
	for _, e := range errs {
		fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s\n", e.Error())
	}
	return fmt.Errorf("plan has %d validation error(s)", len(errs))
}
