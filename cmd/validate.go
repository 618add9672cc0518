package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lodestarhq/lodestar/internal/config"
	"github.com/lodestarhq/lodestar/internal/schedule"
)

var validateCmd = &cobra.Command{
	Use:   "validate <plan.toml | plan-id>",
	Short: "Check a plan's tasks, dependencies, and settings",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	p, err := resolvePlan(cmd.Context(), cfg, args[0])
	if err != nil {
		return err
	}
	if err := validatePlan(cmd, p); err != nil {
		return err
	}

	// A structurally valid plan can still hide a dependency cycle; a dry
	// scheduling run surfaces it with the cycle members named.
	if _, err := schedule.Schedule(p.ScheduleTasks(), mergeSettings(cfg, p)); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "✗ %v\n", err)
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "✓ plan %q is valid (%d tasks)\n", p.Name, len(p.Tasks))
	return nil
}
