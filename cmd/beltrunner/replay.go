package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/beltworks/beltrunner/internal/config"
	"github.com/beltworks/beltrunner/internal/core"
	"github.com/beltworks/beltrunner/internal/sim"
)

var (
	flagReplaySeed   uint32
	flagReplayDanger string
	flagReplayScript string
	flagReplaySteps  int
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Step a seeded run headless and print the digest",
	Long: `Step a run without a terminal UI and print the final state digest.

The same seed, tuning, and script always produce the same digest, so two
machines can compare runs line by line. Replays fly a bare hull; the
digest depends only on the seed, the tuning, and the script.

The script is a text file of input directives:

  # step  actions (comma-separated, "none" clears)
  0       throttle_up
  1       none
  30      yaw_left,drill
  90      none

A directive's actions are held every step until the next directive. Edge
actions (grab, dock, throttle_up/down, launch_cargo, fire) trigger once
on the rising edge of a hold; release with "none" before pressing one
again. Without a script the run coasts on empty input.

Actions: throttle_up, throttle_down, brake, yaw_left, yaw_right,
pitch_up, pitch_down, grab, drill, launch_cargo, fire, dock, none.

Examples:
  beltrunner replay --seed 1234
  beltrunner replay --seed 1234 --danger hard --script run.script
  beltrunner replay --seed 1234 --steps 600`,
	Run: runReplay,
}

func init() {
	replayCmd.Flags().Uint32Var(&flagReplaySeed, "seed", 1, "Run seed")
	replayCmd.Flags().StringVar(&flagReplayDanger, "danger", "normal", "Danger preset: easy, normal, hard, custom")
	replayCmd.Flags().StringVar(&flagReplayScript, "script", "", "Path to input script")
	replayCmd.Flags().IntVar(&flagReplaySteps, "steps", 0, "Max steps (0 = until the run ends)")
}

// scriptActions maps script slugs to flight actions.
var scriptActions = map[string]core.Action{
	"throttle_up":   core.ActionThrottleUp,
	"throttle_down": core.ActionThrottleDown,
	"brake":         core.ActionBrake,
	"yaw_left":      core.ActionYawLeft,
	"yaw_right":     core.ActionYawRight,
	"pitch_up":      core.ActionPitchUp,
	"pitch_down":    core.ActionPitchDown,
	"grab":          core.ActionGrab,
	"drill":         core.ActionDrill,
	"launch_cargo":  core.ActionLaunchCargo,
	"fire":          core.ActionFireWeapon,
	"dock":          core.ActionDock,
}

// scriptDirective is one parsed script line: from this step on, feed this
// frame every step until the next directive.
type scriptDirective struct {
	step  int
	frame core.InputFrame
}

func runReplay(_ *cobra.Command, _ []string) {
	danger, err := config.ParseDanger(flagReplayDanger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := loadTuningOrWarn()
	config.ApplyDanger(&cfg, danger)
	tun := cfg.Tuning()

	var directives []scriptDirective
	if flagReplayScript != "" {
		directives, err = parseScript(flagReplayScript)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	fps := flagFPS
	if fps <= 0 {
		fps = 30
	}
	dt := 1.0 / float64(fps)

	maxSteps := flagReplaySteps
	if maxSteps <= 0 {
		// The countdown ends every run by the mission clock; one extra
		// second of steps covers the final tick.
		maxSteps = int(tun.MissionTime/dt) + fps
	}

	run := sim.NewRunTuned(flagReplaySeed, sim.RunModifiers{}, tun)

	frame := core.NewInputFrame()
	next := 0
	steps := 0
	for ; steps < maxSteps && run.Status == sim.StatusActive; steps++ {
		for next < len(directives) && directives[next].step <= steps {
			frame = directives[next].frame.Clone()
			next++
		}
		run.Step(dt, frame)
	}

	printDigest(run, danger, steps)
}

// parseScript reads input directives, one per line, skipping blanks and
// # comments. Steps must be non-decreasing.
func parseScript(path string) ([]scriptDirective, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	var directives []scriptDirective
	lineNo := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("script line %d: want \"<step> <actions>\", got %q", lineNo, line)
		}

		step, err := strconv.Atoi(fields[0])
		if err != nil || step < 0 {
			return nil, fmt.Errorf("script line %d: bad step %q", lineNo, fields[0])
		}
		if n := len(directives); n > 0 && step < directives[n-1].step {
			return nil, fmt.Errorf("script line %d: step %d out of order", lineNo, step)
		}

		frame := core.NewInputFrame()
		for _, name := range strings.Split(fields[1], ",") {
			name = strings.TrimSpace(name)
			if name == "none" || name == "" {
				continue
			}
			action, ok := scriptActions[name]
			if !ok {
				return nil, fmt.Errorf("script line %d: unknown action %q", lineNo, name)
			}
			frame.Set(action)
		}

		directives = append(directives, scriptDirective{step: step, frame: frame})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	return directives, nil
}

// printDigest writes the final run state in a fixed, diffable format.
func printDigest(run *sim.Run, danger config.DangerPreset, steps int) {
	hud := run.HudSnapshot()

	fmt.Printf("seed       %d\n", flagReplaySeed)
	fmt.Printf("danger     %s\n", danger)
	fmt.Printf("steps      %d\n", steps)
	fmt.Printf("elapsed    %.2f\n", run.Elapsed)
	fmt.Printf("status     %s\n", run.Status)
	if run.Reason != "" {
		fmt.Printf("reason     %s\n", run.Reason)
	}
	fmt.Printf("pos        %.3f %.3f %.3f\n", run.Player.Pos.X, run.Player.Pos.Y, run.Player.Pos.Z)
	fmt.Printf("hull       %.2f\n", run.Player.Hull)
	fmt.Printf("hold       %.2f/%.0f (%d units, %d cr)\n",
		hud.CargoUsed, hud.CargoCapacity, hud.CargoUnits, hud.CargoValue)
	fmt.Printf("delivered  %d cr (%d units, %d relics)\n",
		run.DeliveredValue, run.DeliveredUnits, run.RareDelivered)
	fmt.Printf("depletions %d\n", run.Depletions)
	fmt.Printf("pirate     %s\n", run.Pirate.State)
}
