package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tempo-track/tempo/internal/daemon"
)

func init() {
	logCmd.Flags().IntVarP(&logMinutes, "minutes", "m", 0, "Session length in minutes (required)")
	logCmd.Flags().StringVarP(&logCategory, "category", "c", "", "Session category (e.g. writing, code)")
	logCmd.Flags().StringVar(&logNote, "note", "", "Optional note")
	logCmd.Flags().StringVar(&logAt, "at", "", "Start time (RFC 3339); defaults to now minus the duration")
	_ = logCmd.MarkFlagRequired("minutes")
	rootCmd.AddCommand(logCmd)
}

var (
	logMinutes  int
	logCategory string
	logNote     string
	logAt       string
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a finished focus session",
	RunE:  runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	if logMinutes <= 0 {
		return fmt.Errorf("minutes must be positive")
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	duration := time.Duration(logMinutes) * time.Minute
	startedAt := time.Now().Add(-duration)
	if logAt != "" {
		startedAt, err = time.Parse(time.RFC3339, logAt)
		if err != nil {
			return fmt.Errorf("parse --at: %w", err)
		}
	}

	_, newly, err := d.Tracker.LogSession(cmd.Context(), startedAt, duration, logCategory, logNote)
	if err != nil {
		return err
	}

	fmt.Printf("Logged %dm", logMinutes)
	if logCategory != "" {
		fmt.Printf(" of %s", logCategory)
	}
	fmt.Println(".")

	for _, a := range newly {
		fmt.Printf("🏆 Achievement unlocked: %s — %s\n", a.Title, a.Description)
	}
	return nil
}
