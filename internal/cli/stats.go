package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/curie-network/curie/internal/daemon"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recognition ledger and history statistics",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	stats := d.Recognition.Statistics()

	fmt.Println("Recognition ledger")
	fmt.Printf("  Contributors:          %d\n", stats.TotalContributors)
	fmt.Printf("  Submissions:           %d\n", stats.TotalSubmissions)
	fmt.Printf("  Qualified submissions: %d\n", stats.QualifiedSubmissions)
	fmt.Printf("  Categories tracked:    %d\n", stats.CategoriesTracked)

	if len(stats.BadgesAwarded) > 0 {
		fmt.Println("  Badges awarded:")
		types := make([]string, 0, len(stats.BadgesAwarded))
		for t := range stats.BadgesAwarded {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			fmt.Printf("    %-20s %d\n", t, stats.BadgesAwarded[t])
		}
	}

	evals, err := d.DB.EvaluationCount()
	if err != nil {
		return err
	}
	fmt.Println("History")
	fmt.Printf("  Evaluations stored:    %d\n", evals)
	return nil
}
