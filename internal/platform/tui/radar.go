package tui

import (
	"fmt"
	"strings"

	"github.com/beltworks/beltrunner/internal/core"
	"github.com/beltworks/beltrunner/internal/sim"
)

// Flight screen layout.
const (
	hudPanelWidth = 30
	eventRows     = 3
	minFlightW    = 60
	minFlightH    = 18
	bigRockRadius = 3.5 // at or above this a rock draws as 'O'
)

// drawFlight renders the whole flight screen: top status line, the radar
// on the left, the readout panel on the right, and the event feed along
// the bottom. Overlays go on last.
func drawFlight(s *core.Screen, run *sim.Run, hud sim.HudSnapshot, paused bool) {
	s.Clear()

	w, h := s.Width(), s.Height()
	if w < minFlightW || h < minFlightH {
		s.DrawTextCentered(h/2, "Window too small")
		s.DrawTextCentered(h/2+1, fmt.Sprintf("Need at least %dx%d", minFlightW, minFlightH))
		return
	}

	drawStatusLine(s, hud, paused)

	radar := core.NewRect(0, 1, w-hudPanelWidth, h-1-eventRows)
	drawRadar(s, radar, run)
	drawHudPanel(s, w-hudPanelWidth+1, 1, hud)
	drawEventFeed(s, h-eventRows, w-hudPanelWidth, hud.Events)

	switch {
	case hud.Status == sim.StatusWon:
		drawOutcomeBox(s, "MISSION COMPLETE", core.ColorBrightGreen,
			fmt.Sprintf("Banked %d cr in %s", hud.DeliveredValue, fmtClock(hud.Elapsed)),
			fmt.Sprintf("%d units delivered, %d relics", hud.DeliveredUnits, hud.RareDelivered),
			"R new run   B menu   Q quit")
	case hud.Status == sim.StatusLost:
		drawOutcomeBox(s, "RUN LOST", core.ColorBrightRed,
			strings.ToUpper(hud.Reason),
			fmt.Sprintf("Banked %d cr before the end", hud.DeliveredValue),
			"R retry   B menu   Q quit")
	case paused:
		drawOutcomeBox(s, "PAUSED", core.ColorBrightYellow,
			"P resume   B menu   Q quit")
	}
}

// drawStatusLine draws the top row: mission clock on the left, dock state
// in the middle, banked value on the right.
func drawStatusLine(s *core.Screen, hud sim.HudSnapshot, paused bool) {
	clockColor := core.ColorBrightWhite
	if hud.Countdown < 20 {
		clockColor = core.ColorBrightRed
	} else if hud.Countdown < 60 {
		clockColor = core.ColorBrightYellow
	}
	s.DrawTextColored(1, 0, "T-"+fmtClock(hud.Countdown), clockColor)

	switch {
	case paused && hud.Status == sim.StatusActive:
		s.DrawTextCentered(0, "[ PAUSED ]")
	case hud.Docked:
		mid := (s.Width() - len("[ DOCKED ]")) / 2
		s.DrawTextColored(mid, 0, "[ DOCKED ]", core.ColorBrightCyan)
	}

	banked := fmt.Sprintf("banked %d cr", hud.DeliveredValue)
	s.DrawTextColored(s.Width()-len(banked)-1, 0, banked, core.ColorBrightGreen)
}

// drawRadar projects the field top-down into the given rect. World X maps
// to columns and world Z to rows, so yaw zero points up the screen.
// Altitude is not shown here; the panel carries it as a number.
func drawRadar(s *core.Screen, r core.Rect, run *sim.Run) {
	s.DrawBox(r, core.ColorGray)

	bound := run.Tun.TravelBound
	innerW, innerH := r.W-2, r.H-2
	if innerW < 2 || innerH < 2 || bound <= 0 {
		return
	}

	project := func(p core.Vec3) (int, int) {
		fx := (p.X + bound) / (2 * bound)
		fz := (p.Z + bound) / (2 * bound)
		x := r.X + 1 + int(core.ClampF(fx, 0, 1)*float64(innerW-1))
		y := r.Y + 1 + int(core.ClampF(fz, 0, 1)*float64(innerH-1))
		return x, y
	}

	grabbed := run.GrabbedRockID()
	for i := range run.Asteroids {
		a := &run.Asteroids[i]
		x, y := project(a.Pos)
		switch {
		case a.Reserve <= 0:
			s.SetCell(x, y, '.', core.ColorGray)
		case a.ID == grabbed:
			s.SetCell(x, y, rockGlyph(a.Radius), core.ColorBrightCyan)
		default:
			s.SetCell(x, y, rockGlyph(a.Radius), core.ColorWhite)
		}
	}

	for i := range run.Shots {
		sh := &run.Shots[i]
		x, y := project(sh.Pos)
		if sh.Kind == sim.ShotWeapon {
			s.SetCell(x, y, '+', core.ColorBrightYellow)
		} else {
			s.SetCell(x, y, '*', sh.Color)
		}
	}

	fx, fy := project(run.Freighter.Pos)
	s.SetCell(fx, fy, 'F', core.ColorBrightBlue)

	if run.Pirate.Present() {
		px, py := project(run.Pirate.Pos)
		if run.Pirate.State == sim.PirateDisabled {
			s.SetCell(px, py, 'x', core.ColorGray)
		} else {
			s.SetCell(px, py, '!', core.ColorBrightRed)
		}
	}

	playerColor := core.ColorBrightGreen
	if run.Docked {
		playerColor = core.ColorBrightCyan
	}
	x, y := project(run.Player.Pos)
	s.SetCell(x, y, '@', playerColor)
}

func rockGlyph(radius float64) rune {
	if radius >= bigRockRadius {
		return 'O'
	}
	return 'o'
}

// drawHudPanel draws the right-hand readout column.
func drawHudPanel(s *core.Screen, x, y int, hud sim.HudSnapshot) {
	hullFrac := 0.0
	if hud.MaxHull > 0 {
		hullFrac = hud.Hull / hud.MaxHull
	}
	s.DrawText(x, y, "HULL ")
	s.DrawTextColored(x+5, y, bar(hullFrac, 10), fracColor(hullFrac))
	s.DrawText(x+17, y, fmt.Sprintf("%3.0f/%.0f", hud.Hull, hud.MaxHull))
	y++

	s.DrawText(x, y, "THR  ")
	s.DrawTextColored(x+5, y, bar(hud.Throttle, 10), core.ColorCyan)
	s.DrawText(x+17, y, fmt.Sprintf("%3.0f%%", hud.Throttle*100))
	y++

	s.DrawText(x, y, fmt.Sprintf("SPD  %5.1f", hud.Speed))
	y += 2

	cargoFrac := 0.0
	if hud.CargoCapacity > 0 {
		cargoFrac = hud.CargoUsed / hud.CargoCapacity
	}
	s.DrawText(x, y, "HOLD ")
	s.DrawTextColored(x+5, y, bar(cargoFrac, 10), fullColor(cargoFrac))
	s.DrawText(x+17, y, fmt.Sprintf("%.1f/%.0f", hud.CargoUsed, hud.CargoCapacity))
	y++
	for _, line := range hud.Cargo {
		s.DrawTextColored(x+2, y, fmt.Sprintf("%-9s x%-3d %4d cr", line.Label, line.Units, line.Value), line.Color)
		y++
	}
	if hud.RareAboard > 0 {
		s.DrawTextColored(x+2, y, fmt.Sprintf("relic case x%d", hud.RareAboard), core.ColorBrightMagenta)
		y++
	}
	s.DrawText(x, y, fmt.Sprintf("AMMO %d", hud.Ammo))
	y += 2

	// Navigation block.
	s.DrawText(x, y, fmt.Sprintf("FRGT %5.1fm %s", hud.FreighterDist, bearingGlyph(hud.FreighterBearing)))
	y++
	switch {
	case hud.Docked:
		s.DrawTextColored(x+2, y, "docked", core.ColorBrightCyan)
		y++
		s.DrawText(x, y, "LOAD ")
		s.DrawTextColored(x+5, y, bar(hud.UnloadProgress, 10), core.ColorBrightGreen)
		y++
		s.DrawText(x, y, "HULL ")
		s.DrawTextColored(x+5, y, bar(hud.RepairProgress, 10), core.ColorBrightGreen)
		y++
	case hud.InDockRange:
		s.DrawTextColored(x+2, y, "DOCK READY  press enter", core.ColorBrightCyan)
		y++
	case hud.InApproach:
		s.DrawTextColored(x+2, y, "in approach, slow down", core.ColorCyan)
		y++
	}
	y++

	if hud.GrabbedRockID >= 0 {
		s.DrawTextColored(x, y, fmt.Sprintf("ROCK #%d grabbed", hud.GrabbedRockID), core.ColorBrightCyan)
	} else if hud.NearestRockID >= 0 {
		txt := fmt.Sprintf("ROCK #%d %5.1fm", hud.NearestRockID, hud.NearestRockDist)
		if hud.GrabberInRange {
			txt += "  in range"
		}
		s.DrawText(x, y, txt)
	} else {
		s.DrawTextColored(x, y, "field mined out", core.ColorGray)
	}
	y += 2

	drawPirateBlock(s, x, y, hud.Pirate)
}

func drawPirateBlock(s *core.Screen, x, y int, p sim.PirateReadout) {
	switch p.State {
	case sim.PirateQuiet:
		s.DrawTextColored(x, y, "PIRATE no contacts", core.ColorGray)
	case sim.PirateIncoming:
		s.DrawTextColored(x, y, fmt.Sprintf("PIRATE %5.1fm", p.Dist), core.ColorBrightRed)
		s.DrawTextColored(x, y+1, fmt.Sprintf("board in %s", fmtClock(p.BoardTimer)), core.ColorBrightRed)
		s.DrawTextColored(x, y+2, "hull "+bar(p.HullFrac, 10), core.ColorRed)
	case sim.PirateBoarding:
		s.DrawTextColored(x, y, "PIRATE BOARDING", core.ColorBrightRed)
	case sim.PirateDisabled:
		s.DrawTextColored(x, y, "PIRATE disabled", core.ColorGray)
	}
}

// drawEventFeed draws the newest events at the bottom, oldest of the
// window first so new lines appear to push upward.
func drawEventFeed(s *core.Screen, y, w int, events []sim.Event) {
	n := eventRows
	if len(events) < n {
		n = len(events)
	}
	// events is newest-first; draw the n newest with the newest on the
	// bottom row.
	for i := 0; i < n; i++ {
		ev := events[i]
		row := y + eventRows - 1 - i
		text := ev.Text
		if len(text) > w-2 {
			text = text[:w-2]
		}
		s.DrawTextColored(1, row, text, toneColors[ev.Tone])
	}
}

// drawOutcomeBox draws a centered framed box with a title line and body
// lines, clearing the cells behind it.
func drawOutcomeBox(s *core.Screen, title string, c core.Color, lines ...string) {
	width := len(title)
	for _, l := range lines {
		if len(l) > width {
			width = len(l)
		}
	}
	width += 6
	height := len(lines) + 4

	box := core.NewRect((s.Width()-width)/2, (s.Height()-height)/2, width, height)
	s.DrawRect(box, ' ', core.ColorDefault)
	s.DrawBox(box, c)
	s.DrawTextColored(box.X+(width-len(title))/2, box.Y+1, title, c)
	for i, l := range lines {
		s.DrawText(box.X+(width-len(l))/2, box.Y+3+i, l)
	}
}

// bar renders a fixed-width meter like [####------].
func bar(frac float64, width int) string {
	frac = core.ClampF(frac, 0, 1)
	filled := int(frac*float64(width) + 0.5)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// fracColor colors a meter that is good when full (hull).
func fracColor(frac float64) core.Color {
	switch {
	case frac > 0.5:
		return core.ColorBrightGreen
	case frac > 0.25:
		return core.ColorBrightYellow
	default:
		return core.ColorBrightRed
	}
}

// fullColor colors a meter that demands attention when full (cargo).
func fullColor(frac float64) core.Color {
	switch {
	case frac >= 1:
		return core.ColorBrightRed
	case frac > 0.75:
		return core.ColorBrightYellow
	default:
		return core.ColorBrightGreen
	}
}

// bearingGlyph points the pilot at the freighter. Positive bearing means
// the target is to the right of the nose.
func bearingGlyph(bearing float64) string {
	switch {
	case bearing > 2.6 || bearing < -2.6:
		return "v"
	case bearing > 0.2:
		return ">"
	case bearing < -0.2:
		return "<"
	default:
		return "^"
	}
}

// fmtClock formats seconds as m:ss, floored at zero.
func fmtClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
