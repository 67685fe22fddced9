package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tempo-track/tempo/internal/daemon"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show focus statistics",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	snap, err := d.Tracker.Snapshot(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Sessions:        %d (%.1f hours)\n", snap.TotalSessions, snap.TotalHours)
	fmt.Printf("Current streak:  %d days\n", snap.CurrentStreak)
	fmt.Printf("Longest streak:  %d days\n", snap.LongestStreak)
	fmt.Printf("Longest session: %d minutes\n", snap.LongestSessionMinutes)
	fmt.Printf("Goals:           %d completed, %d active\n", snap.CompletedGoals, snap.ActiveGoals)
	if len(snap.CategoriesUsed) > 0 {
		fmt.Printf("Categories:      %s\n", strings.Join(snap.CategoriesUsed, ", "))
	}
	fmt.Printf("Early bird / night owl / weekend: %d / %d / %d\n",
		snap.EarlyBirdSessions, snap.NightOwlSessions, snap.WeekendSessions)
	return nil
}
