package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/beltworks/beltrunner/internal/config"
	"github.com/beltworks/beltrunner/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Start Belt Runner in interactive menu mode.

Pick a danger preset with left/right on the Fly row, then launch. After a
run ends you return here; the records table and the hangar are one
keypress away.

Controls:
  Up/Down/j/k  - Navigate
  Left/Right   - Cycle danger preset
  Enter        - Select
  Q            - Quit

Examples:
  beltrunner menu
  beltrunner menu --fps 60
  beltrunner menu --db ./runs.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStoreOrWarn()
	if store != nil {
		defer store.Close()
	}

	tuningCfg := loadTuningOrWarn()
	width, height := termSize()
	danger := config.DangerNormal

	for {
		result, err := tui.RunMenu(store, danger, width, height)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Carry resizes and the danger pick across the loop.
		width, height = result.Width, result.Height
		danger = result.Danger

		if result.Quit {
			return
		}

		switch result.Choice {
		case tui.MenuFly:
			cfg := tuningCfg
			config.ApplyDanger(&cfg, danger)

			params := tui.RunParams{
				Danger:   string(danger),
				Mods:     loadModsFor(store),
				Tun:      cfg.Tuning(),
				TickRate: flagFPS,
				ScreenW:  width,
				ScreenH:  height,
			}

			back, err := tui.RunFlight(store, params)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return
			}
			if !back {
				return
			}

		case tui.MenuRecords:
			back, err := tui.RunRecords(store, width, height)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return
			}
			if !back {
				return
			}

		case tui.MenuHangar:
			back, err := tui.RunHangar(store, width, height)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return
			}
			if !back {
				return
			}

		default:
			return
		}
	}
}
