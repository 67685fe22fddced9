package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tempo-track/tempo/internal/daemon"
)

func init() {
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(resetCmd)
}

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"ach"},
	Short:   "Show achievement progress",
	RunE:    runAchievements,
}

func runAchievements(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	all, err := d.Engine.Achievements(cmd.Context())
	if err != nil {
		return err
	}

	unlocked := 0
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ACHIEVEMENT\tTIER\tPROGRESS\tUNLOCKED")
	for _, a := range all {
		status := "-"
		if a.State.Unlocked {
			unlocked++
			status = a.State.UnlockedAt.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%d%%\t%s\n", a.Title, a.Tier, a.State.Progress, status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d of %d unlocked\n", unlocked, len(all))
	return nil
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run an achievement evaluation pass",
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	newly, err := d.Tracker.Check(cmd.Context())
	if err != nil {
		return err
	}

	if len(newly) == 0 {
		fmt.Println("Nothing new. Keep going.")
		return nil
	}
	for _, a := range newly {
		fmt.Printf("🏆 Achievement unlocked: %s — %s\n", a.Title, a.Description)
	}
	return nil
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe achievement state and reseed the catalog",
	RunE:  runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Engine.Reset(cmd.Context()); err != nil {
		return err
	}
	fmt.Println("Achievement state reset.")
	return nil
}
