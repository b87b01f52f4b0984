package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/beltworks/beltrunner/internal/storage"
)

var flagRecordsLimit int

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Show run history and lifetime stats",
	Long: `Display recent runs and lifetime totals.

Examples:
  beltrunner records
  beltrunner records --limit 5
  beltrunner records --db ./runs.db`,
	Run: runRecords,
}

func init() {
	recordsCmd.Flags().IntVar(&flagRecordsLimit, "limit", 15, "How many recent runs to show")
}

func runRecords(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	runs, err := store.RecentRuns(flagRecordsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Run Records")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Fly one with 'beltrunner fly'.")
		return
	}

	fmt.Printf("  %-16s  %-7s  %-18s  %7s  %5s  %6s  %5s  %s\n",
		"When", "Danger", "Outcome", "Value", "Units", "Relics", "Time", "Seed")
	fmt.Printf("  %-16s  %-7s  %-18s  %7s  %5s  %6s  %5s  %s\n",
		"----", "------", "-------", "-----", "-----", "------", "----", "----")

	for _, r := range runs {
		outcome := "complete"
		if r.Status != "won" {
			outcome = r.Reason
		}
		fmt.Printf("  %-16s  %-7s  %-18s  %7d  %5d  %6d  %2d:%02d  %d\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Danger, outcome,
			r.DeliveredValue, r.DeliveredUnits, r.RareDelivered,
			r.Duration/60, r.Duration%60, r.Seed)
	}

	stats, err := store.Stats()
	if err != nil {
		return
	}

	fmt.Println()
	fmt.Printf("Lifetime: %d runs, %d wins, %d cr hauled, best %d cr, %d relics\n",
		stats.Runs, stats.Wins, stats.TotalValue, stats.BestValue, stats.RareDelivered)

	if credits, err := store.Credits(); err == nil {
		fmt.Printf("Wallet: %d cr\n", credits)
	}
}
