package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tempo-track/tempo/internal/daemon"
)

func init() {
	goalAddCmd.Flags().Float64Var(&goalTargetHours, "hours", 0, "Target hours for the goal")
	goalCmd.AddCommand(goalAddCmd)
	goalCmd.AddCommand(goalDoneCmd)
	goalCmd.AddCommand(goalListCmd)
	rootCmd.AddCommand(goalCmd)
}

var goalTargetHours float64

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage goals",
}

var goalAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a new goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalAdd,
}

var goalDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a goal completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalDone,
}

var goalListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List goals",
	RunE:    runGoalList,
}

func runGoalAdd(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	goal, err := d.Tracker.AddGoal(cmd.Context(), args[0], goalTargetHours)
	if err != nil {
		return err
	}
	fmt.Printf("Created goal %s (%s)\n", goal.Title, goal.ID)
	return nil
}

func runGoalDone(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	newly, err := d.Tracker.CompleteGoal(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Println("Goal completed.")
	for _, a := range newly {
		fmt.Printf("🏆 Achievement unlocked: %s — %s\n", a.Title, a.Description)
	}
	return nil
}

func runGoalList(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	goals, err := d.Tracker.Goals(cmd.Context())
	if err != nil {
		return err
	}

	if len(goals) == 0 {
		fmt.Println("No goals yet. Run 'tempo goal add <title>' to create one.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tTARGET\tSTATUS\tCREATED")
	for _, g := range goals {
		fmt.Fprintf(w, "%s\t%s\t%.0fh\t%s\t%s\n",
			g.ID,
			g.Title,
			g.TargetHours,
			g.Status,
			g.CreatedAt.Format("2006-01-02"),
		)
	}
	return w.Flush()
}
