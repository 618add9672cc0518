package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lodestarhq/lodestar/internal/config"
	"github.com/lodestarhq/lodestar/internal/plan"
	"github.com/lodestarhq/lodestar/internal/store"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage stored plans (list, show, import, delete)",
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored plans",
	Args:  cobra.NoArgs,
	RunE:  runPlanList,
}

var planShowCmd = &cobra.Command{
	Use:   "show <plan-id>",
	Short: "Print a stored plan as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanShow,
}

var planImportCmd = &cobra.Command{
	Use:   "import <plan.toml>",
	Short: "Import a plan file into the database",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanImport,
}

var planDeleteCmd = &cobra.Command{
	Use:   "delete <plan-id>",
	Short: "Delete a stored plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanDelete,
}

func init() {
	planCmd.AddCommand(planListCmd, planShowCmd, planImportCmd, planDeleteCmd)
	rootCmd.AddCommand(planCmd)
}

func openStore(cmd *cobra.Command) (*store.SQLite, error) {
	return store.Open(cmd.Context(), config.Load().DBPath)
}

func runPlanList(cmd *cobra.Command, _ []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	plans, err := st.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no stored plans")
		return nil
	}
	for _, p := range plans {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %-30s  %3d tasks  %s\n",
			p.ID, p.Name, p.TotalTasks, p.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runPlanShow(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	p, err := st.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

func runPlanImport(cmd *cobra.Command, args []string) error {
	p, err := plan.Load(args[0])
	if err != nil {
		return err
	}
	if err := validatePlan(cmd, p); err != nil {
		return err
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Save(cmd.Context(), p); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "imported plan %q as %s\n", p.Name, p.ID)
	return nil
}

func runPlanDelete(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "deleted plan %s\n", args[0])
	return nil
}
