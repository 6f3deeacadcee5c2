package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/curie-network/curie/internal/daemon"
	"github.com/curie-network/curie/internal/domain"
)

var allocateFlags struct {
	epoch   int
	jsonOut bool
}

func init() {
	allocateCmd.Flags().IntVar(&allocateFlags.epoch, "epoch", 0, "reward epoch (defaults to configured current epoch)")
	allocateCmd.Flags().BoolVar(&allocateFlags.jsonOut, "json", false, "print raw JSON")
	rootCmd.AddCommand(allocateCmd)
}

var allocateCmd = &cobra.Command{
	Use:   "allocate <evaluations.json>",
	Short: "Allocate epoch token rewards for a batch of evaluations",
	Long: `Reads a JSON array of evaluations (as produced by "curie evaluate --json")
and allocates token rewards for every approved item. Rejected items are
skipped; per-item failures do not abort the batch.`,
	Args: cobra.ExactArgs(1),
	RunE: runAllocate,
}

func runAllocate(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read evaluations: %w", err)
	}

	var evals []domain.Evaluation
	if err := json.Unmarshal(data, &evals); err != nil {
		// Accept a single evaluation object as well.
		var one domain.Evaluation
		if err2 := json.Unmarshal(data, &one); err2 != nil {
			return fmt.Errorf("parse evaluations: %w", err)
		}
		evals = []domain.Evaluation{one}
	}

	epoch := allocateFlags.epoch
	if epoch == 0 {
		epoch = d.Config.Rewards.CurrentEpoch
	}

	result := d.Allocator.AllocateBatch(evals, epoch)

	for _, alloc := range result.Allocations {
		if _, err := d.DB.InsertAllocation(alloc); err != nil {
			fmt.Fprintf(os.Stderr, "warning: allocation history write failed: %v\n", err)
		}
	}

	if allocateFlags.jsonOut {
		return json.NewEncoder(os.Stdout).Encode(result)
	}

	for _, alloc := range result.Allocations {
		fmt.Printf("%s  base %.2f  bonuses %.2f  epoch %.2f  total %.2f\n",
			alloc.SubmissionID, alloc.BaseTokens, alloc.BonusTotal(), alloc.EpochBonus, alloc.TotalTokens)
	}
	for _, be := range result.Errors {
		fmt.Fprintf(os.Stderr, "item %d: %s\n", be.Index, be.Message)
	}

	sum := result.Summary
	fmt.Printf("\nEpoch %d: %d allocated, %d failed, %d skipped; %.2f tokens total (avg %.2f)\n",
		sum.Epoch, sum.SuccessfulAllocations, sum.FailedAllocations,
		sum.TotalEvaluations-sum.SuccessfulAllocations-sum.FailedAllocations,
		sum.TotalTokensAllocated, sum.AverageTokens)
	return nil
}
