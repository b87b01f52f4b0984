package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/beltworks/beltrunner/internal/platform/tui"
	"github.com/beltworks/beltrunner/internal/storage"
)

var hangarCmd = &cobra.Command{
	Use:   "hangar",
	Short: "Buy and sell ship upgrades",
	Long: `Open the hangar and spend banked credits on the ship.

Credits come from delivered ore; upgrades persist between runs. Selling
a level pays back half of what it cost.

Controls:
  Up/Down/j/k  - Move
  Enter        - Buy the next level
  S            - Sell one level
  Esc/B        - Back
  Q            - Quit

Examples:
  beltrunner hangar
  beltrunner hangar --db ./runs.db`,
	Run: runHangar,
}

func runHangar(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	width, height := termSize()
	if _, err := tui.RunHangar(store, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
