package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tempo-track/tempo/internal/daemon"
)

func init() {
	rootCmd.AddCommand(sessionsCmd)
}

var sessionsCmd = &cobra.Command{
	Use:     "sessions",
	Aliases: []string{"ls"},
	Short:   "List logged focus sessions",
	RunE:    runSessions,
}

func runSessions(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	sessions, err := d.Tracker.Sessions(cmd.Context())
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions yet. Run 'tempo log -m 25' to get started.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tDURATION\tCATEGORY\tNOTE")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%dm\t%s\t%s\n",
			s.StartedAt.Format("2006-01-02 15:04"),
			int(s.Duration.Minutes()),
			s.Category,
			s.Note,
		)
	}
	return w.Flush()
}
