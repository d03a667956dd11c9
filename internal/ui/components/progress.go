package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/primagen/primagen/internal/ui/theme"
)

// ProgressBar renders session progress as a caption followed by a filled
// track. Caption and track together span Width cells.
type ProgressBar struct {
	Caption string
	Done    int
	Total   int
	Width   int
}

func (p ProgressBar) View() string {
	caption := ""
	if p.Caption != "" {
		caption = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Caption) + "  "
	}

	track := p.Width - lipgloss.Width(caption)
	if track < 4 {
		track = 4
	}

	filled := 0
	if p.Total > 0 {
		filled = track * p.Done / p.Total
	}
	if filled < 0 {
		filled = 0
	}
	if filled > track {
		filled = track
	}

	bar := lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", track-filled))

	return caption + bar
}
