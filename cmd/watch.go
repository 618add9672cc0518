package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lodestarhq/lodestar/internal/config"
	"github.com/lodestarhq/lodestar/internal/plan"
	"github.com/lodestarhq/lodestar/internal/schedule"
	"github.com/lodestarhq/lodestar/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch <plan.toml>",
	Short: "Re-run the scheduler whenever the plan file changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().String("start", "", "project start instant (RFC 3339; default now)")
	watchCmd.Flags().Bool("timeline", false, "render a day-scale timeline instead of a table")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	w, err := plan.NewWatcher(args[0])
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	// Schedule once up front, then on every change.
	rescheduleAndRender(cmd, cfg, args[0])

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case change := <-w.Changes:
			if change.Kind == plan.ChangeRemoved {
				fmt.Fprintf(cmd.ErrOrStderr(), "plan file removed: %s\n", change.File)
				continue
			}
			rescheduleAndRender(cmd, cfg, args[0])
		case <-sig:
			return nil
		}
	}
}

// rescheduleAndRender loads, validates, and schedules the plan, printing
// either the result or the failure. Errors are not fatal in watch mode;
// the next file change gets another chance.
func rescheduleAndRender(cmd *cobra.Command, cfg config.Config, path string) {
	p, err := plan.Load(path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "✗ %v\n", err)
		return
	}
	if err := validatePlan(cmd, p); err != nil {
		return
	}

	settings := mergeSettings(cfg, p)
	if startFlag, _ := cmd.Flags().GetString("start"); startFlag != "" {
		start, err := parseStart(startFlag)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "✗ %v\n", err)
			return
		}
		settings.ProjectStart = start
	}

	scheduled, err := schedule.Schedule(p.ScheduleTasks(), settings)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "✗ %v\n", err)
		return
	}

	if timeline, _ := cmd.Flags().GetBool("timeline"); timeline {
		fmt.Fprint(cmd.OutOrStdout(), ui.Timeline(scheduled, 100))
	} else {
		fmt.Fprint(cmd.OutOrStdout(), ui.Table(scheduled))
	}
}
