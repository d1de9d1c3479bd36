package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tasks/internal/model"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name                                       string
	Title, Muted, Accent, Success, Error, Busy lipgloss.Style
	Pending                                    lipgloss.Style
	Border                                     lipgloss.Border
	BorderColor                                lipgloss.TerminalColor
	BoxTodo, BoxUnderway, BoxComplete          string
	SymOK, SymFail                             string
	BarFull, BarEmpty                          string
}

var current = classic()

// SetTheme switches the active theme. Unknown names fall back to classic.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Name:        "neon",
			Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Busy:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			Pending:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("13"),
			BoxTodo:     "◻",
			BoxUnderway: "◧",
			BoxComplete: "◼",
			SymOK:       "✔",
			SymFail:     "✖",
			BarFull:     "█",
			BarEmpty:    "░",
		}
	case "mono":
		plain := lipgloss.NewStyle()
		current = Theme{
			Name:        "mono",
			Title:       plain,
			Muted:       plain,
			Accent:      plain,
			Success:     plain,
			Error:       plain,
			Busy:        plain,
			Pending:     plain,
			Border:      lipgloss.ASCIIBorder(),
			BorderColor: lipgloss.NoColor{},
			BoxTodo:     "[ ]",
			BoxUnderway: "[~]",
			BoxComplete: "[x]",
			SymOK:       "ok",
			SymFail:     "error:",
			BarFull:     "#",
			BarEmpty:    "-",
		}
	default:
		current = classic()
	}
}

func classic() Theme {
	return Theme{
		Name:        "classic",
		Title:       lipgloss.NewStyle().Bold(true),
		Muted:       lipgloss.NewStyle().Faint(true),
		Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Busy:        lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Pending:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Border:      lipgloss.NormalBorder(),
		BorderColor: lipgloss.Color("8"),
		BoxTodo:     "☐",
		BoxUnderway: "◐",
		BoxComplete: "☑",
		SymOK:       "✔",
		SymFail:     "✖",
		BarFull:     "█",
		BarEmpty:    "░",
	}
}

// Current exposes what renderers need.
func Current() Theme { return current }

// Box returns the themed glyph for s.
func (t Theme) Box(s model.Status) string {
	switch s {
	case model.StatusComplete:
		return t.BoxComplete
	case model.StatusUnderway:
		return t.BoxUnderway
	default:
		return t.BoxTodo
	}
}

// StatusStyle returns the color used for items with status s.
func (t Theme) StatusStyle(s model.Status) lipgloss.Style {
	switch s {
	case model.StatusComplete:
		return t.Success
	case model.StatusUnderway:
		return t.Busy
	default:
		return t.Pending
	}
}
