package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/beltworks/beltrunner/internal/core"
	"github.com/beltworks/beltrunner/internal/sim"
)

// colorStyles maps screen colors to lipgloss styles, built once at init.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// toneColors maps event tones to screen colors for the feed at the bottom
// of the flight view.
var toneColors = map[sim.Tone]core.Color{
	sim.ToneInfo: core.ColorGray,
	sim.ToneGood: core.ColorBrightGreen,
	sim.ToneWarn: core.ColorBrightYellow,
	sim.ToneBad:  core.ColorBrightRed,
}

// RenderScreen converts a screen buffer to a string with ANSI colors.
// Consecutive cells with the same color are grouped into a single styled
// write to keep the output small for SSH sessions.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height() + s.Height())

	for y := 0; y < s.Height(); y++ {
		x := 0
		for x < s.Width() {
			runColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				c := s.GetCell(x, y)
				if c.Color != runColor {
					break
				}
				run.WriteRune(c.Rune)
				x++
			}

			text := run.String()
			if style, ok := colorStyles[runColor]; ok && runColor != core.ColorDefault {
				sb.WriteString(style.Render(text))
			} else {
				sb.WriteString(text)
			}
		}
		if y < s.Height()-1 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}
