package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lodestarhq/lodestar/internal/config"
	"github.com/lodestarhq/lodestar/internal/schedule"
	"github.com/lodestarhq/lodestar/internal/ui"
)

var statsCmd = &cobra.Command{
	Use:   "stats <plan.toml | plan-id>",
	Short: "Show schedule statistics for a plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().String("start", "", "project start instant (RFC 3339; default now)")
	statsCmd.Flags().Bool("json", false, "emit statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	p, err := resolvePlan(cmd.Context(), cfg, args[0])
	if err != nil {
		return err
	}
	if err := validatePlan(cmd, p); err != nil {
		return err
	}

	settings := mergeSettings(cfg, p)
	if startFlag, _ := cmd.Flags().GetString("start"); startFlag != "" {
		start, err := parseStart(startFlag)
		if err != nil {
			return err
		}
		settings.ProjectStart = start
	}

	scheduled, err := schedule.Schedule(p.ScheduleTasks(), settings)
	if err != nil {
		return err
	}
	stats := schedule.ComputeStatistics(scheduled)

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}
	fmt.Fprint(cmd.OutOrStdout(), ui.Stats(stats))
	return nil
}
