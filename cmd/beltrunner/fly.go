package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/beltworks/beltrunner/internal/config"
	"github.com/beltworks/beltrunner/internal/platform/tui"
)

var (
	flagFlySeed   uint32
	flagFlyDanger string
)

var flyCmd = &cobra.Command{
	Use:   "fly",
	Short: "Fly a mining run",
	Long: `Start a mining run directly, skipping the menu.

Controls:
  W/S        - Throttle up/down
  A/D        - Yaw left/right
  Up/Down    - Pitch
  X          - Brake
  G          - Grab/release the nearest rock
  Space      - Drill (hold)
  C          - Sling a cargo slug
  F          - Fire the autocannon
  Enter      - Dock (inside the dock ring)
  P          - Pause
  R          - Restart (after the run ends)
  Q/Ctrl+C   - Quit

Danger presets:
  easy   - Late, soft pirates and slightly richer rocks
  normal - The baseline belt
  hard   - Early, tough pirates and rich rocks
  custom - Whatever the config file says, untouched

Examples:
  beltrunner fly
  beltrunner fly --danger hard
  beltrunner fly --seed 1234 --danger easy
  beltrunner fly --config ./my-tuning.yaml`,
	Run: runFly,
}

func init() {
	flyCmd.Flags().Uint32Var(&flagFlySeed, "seed", 0, "Run seed (0 = time-derived)")
	flyCmd.Flags().StringVar(&flagFlyDanger, "danger", "normal", "Danger preset: easy, normal, hard, custom")
}

func runFly(_ *cobra.Command, _ []string) {
	danger, err := config.ParseDanger(flagFlyDanger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := loadTuningOrWarn()
	config.ApplyDanger(&cfg, danger)

	store := openStoreOrWarn()
	if store != nil {
		defer store.Close()
	}

	width, height := termSize()
	params := tui.RunParams{
		Seed:     flagFlySeed,
		Danger:   string(danger),
		Mods:     loadModsFor(store),
		Tun:      cfg.Tuning(),
		TickRate: flagFPS,
		ScreenW:  width,
		ScreenH:  height,
	}

	if _, err := tui.RunFlight(store, params); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
