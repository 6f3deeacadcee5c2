package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/curie-network/curie/internal/daemon"
	"github.com/curie-network/curie/internal/domain"
)

var recordFlags struct {
	contributor string
	category    string
	hash        string
	date        string
	coherence   float64
	jsonOut     bool
}

func init() {
	recordCmd.Flags().StringVar(&recordFlags.contributor, "contributor", "", "contributor identifier (required)")
	recordCmd.Flags().StringVar(&recordFlags.category, "category", "", "research category (required)")
	recordCmd.Flags().StringVar(&recordFlags.hash, "hash", "", "submission hash")
	recordCmd.Flags().StringVar(&recordFlags.date, "date", "", "submission date (YYYY-MM-DD, defaults to now)")
	recordCmd.Flags().Float64Var(&recordFlags.coherence, "coherence", 0, "coherence score in [0,1]")
	recordCmd.Flags().BoolVar(&recordFlags.jsonOut, "json", false, "print raw JSON")
	rootCmd.AddCommand(recordCmd)
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a contribution in the recognition ledger",
	RunE:  runRecord,
}

func runRecord(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	when := time.Now().UTC()
	if recordFlags.date != "" {
		when, err = time.Parse("2006-01-02", recordFlags.date)
		if err != nil {
			return fmt.Errorf("parse date: %w", err)
		}
	}

	update, err := d.Recognition.RecordContribution(
		recordFlags.contributor, recordFlags.hash, recordFlags.category, when, recordFlags.coherence)
	if err != nil {
		if domain.IsPersistence(err) {
			fmt.Fprintf(os.Stderr, "warning: ledger save failed, update applied in memory only: %v\n", err)
		} else {
			return err
		}
	}

	if recordFlags.jsonOut {
		return json.NewEncoder(os.Stdout).Encode(update)
	}

	fmt.Printf("Contributor %s\n", update.ContributorID)
	fmt.Printf("  Submission order:  #%d\n", update.SubmissionOrder)
	fmt.Printf("  Recognition level: %s\n", update.RecognitionLevel)
	fmt.Printf("  Priority score:    %.1f\n", update.PriorityScore)
	fmt.Printf("  Badges:            %d total\n", update.TotalBadges)
	for _, b := range update.NewBadges {
		fmt.Printf("  ★ new badge: %s (%s)\n", b.Name, b.Rarity)
	}
	return nil
}
