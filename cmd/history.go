package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fakeyudi/clausesense/internal/activity"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the gateway activity log",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := newClient().History(cmd.Context())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			cmd.Println("no activity yet")
			return nil
		}

		// Sort by timestamp rather than trusting server order; the
		// mirror already orders most-recent-first, like the review
		// screen sidebar.
		mirror := activity.NewMirror()
		mirror.Replace(entries)
		for i, e := range mirror.Entries() {
			if historyLimit > 0 && i >= historyLimit {
				break
			}
			cmd.Printf("%s  %-8s  %s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Type, e.Summary())
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "show at most this many entries (0 = all)")
	rootCmd.AddCommand(historyCmd)
}
