// beltrunner is a terminal space-mining arcade: fly a mining craft through
// an asteroid belt, drill ore, and haul it to the freighter before the
// mission clock or the pirates end the run.
//
// Usage:
//
//	beltrunner fly               - Fly a run in the terminal
//	beltrunner menu              - Interactive menu (fly, records, hangar)
//	beltrunner replay            - Step a seeded run headless, print the digest
//	beltrunner records           - Show run history and lifetime stats
//	beltrunner hangar            - Buy and sell ship upgrades
//	beltrunner serve             - Start SSH server for remote play
//
// Global flags:
//
//	--db <path>      - Runs database path (default: ~/.beltrunner/beltrunner.db)
//	--config <path>  - Tuning config YAML path
//	--fps <rate>     - Simulation tick rate (default: 30)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/beltworks/beltrunner/internal/config"
	"github.com/beltworks/beltrunner/internal/sim"
	"github.com/beltworks/beltrunner/internal/storage"
	"github.com/beltworks/beltrunner/internal/upgrades"
)

var (
	// Global flags
	flagFPS    int
	flagConfig string
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "beltrunner",
	Short: "Belt Runner - Space mining runs in your terminal",
	Long: `Belt Runner is a terminal arcade about hauling ore off an asteroid belt.

Drill rocks with the grabber arm, sling cargo at raiders if you have to,
and dock with the freighter before the mission clock runs out.

Available commands:
  fly      - Fly a run directly
  menu     - Interactive menu (fly, records, hangar)
  replay   - Step a seeded run headless and print the digest
  records  - View run history
  hangar   - Spend banked credits on ship upgrades
  serve    - Start SSH server for remote play

Examples:
  beltrunner fly
  beltrunner fly --danger hard --seed 1234
  beltrunner replay --seed 1234 --script run.script
  beltrunner serve --ssh :2222
  beltrunner records`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Simulation tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to tuning config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.beltrunner/beltrunner.db", "Path to runs database")

	// Add subcommands
	rootCmd.AddCommand(flyCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(hangarCmd)
	rootCmd.AddCommand(serveCmd)
}

// openStoreOrWarn opens the runs database, warning and returning nil when
// it cannot. Flying works without it; outcomes just won't persist.
func openStoreOrWarn() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		return nil
	}
	return store
}

// loadTuningOrWarn loads the tuning config, falling back to the built-in
// baseline when the load fails.
func loadTuningOrWarn() config.TuningConfig {
	cfg, err := config.LoadTuning(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using built-in tuning\n", err)
		return config.DefaultTuningConfig()
	}
	return cfg
}

// loadModsFor reads the persisted loadout and converts it to run
// modifiers. A nil or unreadable store means a bare hull.
func loadModsFor(store *storage.Store) sim.RunModifiers {
	if store == nil {
		return sim.RunModifiers{}
	}
	saved, err := store.Loadout()
	if err != nil {
		return sim.RunModifiers{}
	}
	return upgrades.ModifiersFor(upgrades.ParseLoadout(saved))
}

// termSize probes the terminal, falling back to 100x30.
func termSize() (int, int) {
	width, height := 100, 30
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}
