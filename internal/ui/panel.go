package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a bar for a fraction in [0, 1] with a percentage.
func ProgressBar(fraction float64, width int) string {
	if width < 5 {
		width = 5
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	t := Current()
	filled := int(fraction * float64(width))
	bar := strings.Repeat(t.BarFull, filled) + strings.Repeat(t.BarEmpty, width-filled)
	return fmt.Sprintf("%s %3d%%", bar, int(fraction*100+0.5))
}

// PanelString frames lines in a box using the current theme.
func PanelString(lines []string) string {
	t := Current()
	border := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
	return border.Render(strings.Join(lines, "\n"))
}

// Panel writes a framed box to stdout.
func Panel(lines []string) {
	fmt.Fprintln(stdout, PanelString(lines))
}
