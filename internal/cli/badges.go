package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/curie-network/curie/internal/app/recognition"
)

func init() {
	rootCmd.AddCommand(badgesCmd)
}

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "List the badge catalog",
	RunE:  runBadges,
}

func runBadges(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BADGE\tNAME\tRARITY\tDESCRIPTION")
	for _, def := range recognition.BadgeCatalog() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", def.Type, def.Name, def.Rarity, def.Description)
	}
	return w.Flush()
}
