package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/curie-network/curie/internal/daemon"
)

var leaderboardLimit int

func init() {
	leaderboardCmd.Flags().IntVar(&leaderboardLimit, "limit", 10, "number of rows")
	rootCmd.AddCommand(leaderboardCmd)
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show contributors ranked by priority score",
	RunE:  runLeaderboard,
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	entries := d.Recognition.Leaderboard(leaderboardLimit)
	if len(entries) == 0 {
		fmt.Println("No contributions recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tCONTRIBUTOR\tPRIORITY\tLEVEL\tORDER\tBADGES\tQUALIFIED")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%.1f\t%s\t#%d\t%d\t%d\n",
			e.Rank, e.ContributorID, e.PriorityScore, e.RecognitionLevel,
			e.SubmissionOrder, e.BadgeCount, e.QualifiedSubs)
	}
	return w.Flush()
}
