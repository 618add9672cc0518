package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lodestarhq/lodestar/internal/config"
	"github.com/lodestarhq/lodestar/internal/plan"
	"github.com/lodestarhq/lodestar/internal/schedule"
	"github.com/lodestarhq/lodestar/internal/store"
	"github.com/lodestarhq/lodestar/internal/telemetry"
	"github.com/lodestarhq/lodestar/internal/ui"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule <plan.toml | plan-id>",
	Short: "Compute a critical-path schedule for a plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchedule,
}

func init() {
	scheduleCmd.Flags().String("start", "", "project start instant (RFC 3339; default now)")
	scheduleCmd.Flags().Bool("save", false, "persist the scheduled plan to the database")
	scheduleCmd.Flags().Bool("json", false, "emit the annotated task list as JSON")
	scheduleCmd.Flags().Bool("timeline", false, "render a day-scale timeline instead of a table")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := config.Load()

	var tel *telemetry.Emitter
	if cfg.TelemetryPath != "" {
		var err error
		if tel, err = telemetry.NewEmitter(cfg.TelemetryPath); err != nil {
			return err
		}
		defer tel.Close()
	}

	p, err := resolvePlan(ctx, cfg, args[0])
	if err != nil {
		return err
	}
	_ = tel.Emit(telemetry.Event{Kind: telemetry.KindRunStart, PlanID: p.ID, Data: p.Name})

	if err := validatePlan(cmd, p); err != nil {
		_ = tel.Emit(telemetry.Event{Kind: telemetry.KindRunFailed, PlanID: p.ID, Data: err.Error()})
		return err
	}
	_ = tel.Emit(telemetry.Event{Kind: telemetry.KindValidated, PlanID: p.ID})

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
		_ = tel.Emit(telemetry.Event{Kind: telemetry.KindRunFailed, PlanID: p.ID, Data: err.Error()})
		return err
	}
	p.ApplySchedule(scheduled)
	_ = tel.Emit(telemetry.Event{Kind: telemetry.KindScheduled, PlanID: p.ID, Data: len(scheduled)})

	if save, _ := cmd.Flags().GetBool("save"); save {
		st, err := store.Open(ctx, cfg.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Save(ctx, p); err != nil {
			return err
		}
		_ = tel.Emit(telemetry.Event{Kind: telemetry.KindPersisted, PlanID: p.ID})
		fmt.Fprintf(cmd.ErrOrStderr(), "saved plan %s\n", p.ID)
	}

	defer func() {
		_ = tel.Emit(telemetry.Event{Kind: telemetry.KindRunDone, PlanID: p.ID})
	}()

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(p.Tasks)
	}
	if timeline, _ := cmd.Flags().GetBool("timeline"); timeline {
		fmt.Fprint(cmd.OutOrStdout(), ui.Timeline(scheduled, 100))
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), ui.Table(scheduled))
	return nil
}

// mergeSettings layers plan-file settings over the session config.
// Plan-level values win; config supplies the rest.
func mergeSettings(cfg config.Config, p *plan.Plan) schedule.Settings {
	return p.Settings.Overlay(cfg.ScheduleSettings())
}
