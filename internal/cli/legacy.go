package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/curie-network/curie/internal/daemon"
)

var legacyLimit int

func init() {
	legacyCmd.Flags().IntVar(&legacyLimit, "limit", 50, "number of rows")
	rootCmd.AddCommand(legacyCmd)
}

var legacyCmd = &cobra.Command{
	Use:   "legacy",
	Short: "Show early contributors with their legacy status labels",
	RunE:  runLegacy,
}

func runLegacy(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	contributors := d.Recognition.LegacyContributors(legacyLimit)
	if len(contributors) == 0 {
		fmt.Println("No contributions recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tCONTRIBUTOR\tLEGACY STATUS\tFIRST CONTRIBUTION")
	for _, c := range contributors {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			c.Rank, c.ContributorID, c.LegacyStatus, c.FirstContribution.Format("2006-01-02"))
	}
	return w.Flush()
}
