package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/curie-network/curie/internal/daemon"
	"github.com/curie-network/curie/internal/domain"
)

var evaluateFlags struct {
	title       string
	description string
	evidence    string
	category    string
	contributor string
	jsonOut     bool
}

func init() {
	evaluateCmd.Flags().StringVar(&evaluateFlags.title, "title", "", "submission title (required)")
	evaluateCmd.Flags().StringVar(&evaluateFlags.description, "description", "", "submission description (required)")
	evaluateCmd.Flags().StringVar(&evaluateFlags.evidence, "evidence", "", "supporting evidence")
	evaluateCmd.Flags().StringVar(&evaluateFlags.category, "category", "", "research category (required)")
	evaluateCmd.Flags().StringVar(&evaluateFlags.contributor, "contributor", "", "contributor identifier")
	evaluateCmd.Flags().BoolVar(&evaluateFlags.jsonOut, "json", false, "print raw JSON")
	rootCmd.AddCommand(evaluateCmd)
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score a submission against the fixed evaluation criteria",
	RunE:  runEvaluate,
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	sub := domain.Submission{
		ID:          uuid.NewString(),
		Title:       evaluateFlags.title,
		Description: evaluateFlags.description,
		Evidence:    evaluateFlags.evidence,
		Category:    evaluateFlags.category,
		Contributor: evaluateFlags.contributor,
	}

	eval, err := d.Scoring.Evaluate(sub)
	if err != nil {
		return err
	}

	if _, err := d.DB.InsertEvaluation(eval, sub.Contributor, sub.Category); err != nil {
		fmt.Fprintf(os.Stderr, "warning: evaluation history write failed: %v\n", err)
	}

	if evaluateFlags.jsonOut {
		return json.NewEncoder(os.Stdout).Encode(eval)
	}

	fmt.Printf("Submission %s\n", eval.SubmissionID)
	fmt.Printf("  Novelty:        %.2f\n", eval.Scores.Novelty)
	fmt.Printf("  Significance:   %.2f\n", eval.Scores.Significance)
	fmt.Printf("  Verification:   %.2f\n", eval.Scores.Verification)
	fmt.Printf("  Documentation:  %.2f\n", eval.Scores.Documentation)
	fmt.Printf("  Overall:        %.2f (%s)\n", eval.OverallScore, eval.Status)
	for _, rec := range eval.Recommendations {
		fmt.Printf("  → %s\n", rec)
	}
	return nil
}
