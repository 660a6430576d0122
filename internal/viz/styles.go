package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles carries the lipgloss styles for one theme. The model rebuilds
// it when the theme cycles so every panel recolors together.
type Styles struct {
	Canvas    lipgloss.Style
	Stats     lipgloss.Style
	Header    lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Accent    lipgloss.Style
	Graph     lipgloss.Style
	Help      lipgloss.Style
	Running   lipgloss.Style
	Paused    lipgloss.Style
	Recording lipgloss.Style
	Notice    lipgloss.Style
}

func NewStyles(th Theme) Styles {
	return Styles{
		Canvas: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(th.Muted).
			Foreground(th.Primary),
		Stats: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(th.Muted).
			Padding(1, 2).
			Width(42),
		Header:    lipgloss.NewStyle().Foreground(th.Primary).Bold(true).MarginBottom(1),
		Label:     lipgloss.NewStyle().Foreground(th.Muted).Width(14),
		Value:     lipgloss.NewStyle().Foreground(th.Text),
		Accent:    lipgloss.NewStyle().Foreground(th.Accent).Bold(true),
		Graph:     lipgloss.NewStyle().Foreground(th.Secondary).Padding(1, 0),
		Help:      lipgloss.NewStyle().Foreground(th.Muted).MarginTop(1),
		Running:   lipgloss.NewStyle().Foreground(th.Success).Bold(true),
		Paused:    lipgloss.NewStyle().Foreground(th.Warning).Bold(true),
		Recording: lipgloss.NewStyle().Foreground(th.Warning).Bold(true).Blink(true),
		Notice:    lipgloss.NewStyle().Foreground(th.Accent),
	}
}

// ProgressBar renders a fixed-width bar for a ratio in [0, 1].
func (s Styles) ProgressBar(ratio float64, width int) string {
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if ratio > 0.8 {
		return s.Paused.Render(bar)
	}
	return s.Value.Render(bar)
}

// Separator renders a decorative horizontal rule.
func (s Styles) Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", maxInt(mid-2, 0))
	right := strings.Repeat("─", maxInt(width-mid-2, 0))
	return s.Help.Render(left + " ◆ " + right)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
