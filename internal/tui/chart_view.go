package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/netzero/internal/solar"
)

// Plain-mode bar characters.
const (
	plainOffsetChar    = "#"
	plainRemainingChar = "."
)

// RenderChart draws the pie proportions as a horizontal bar of width cells
// followed by a legend with percentages. An empty chart renders the legend
// with an empty bar.
func RenderChart(data solar.ChartData, width int, styled bool) string {
	if width < 1 {
		width = 1
	}
	offsetCells := 0
	if data.Total() > 0 {
		offsetCells = int(math.Round(data.Offset.Percent / 100 * float64(width)))
	}
	remainingCells := width - offsetCells
	if data.Total() == 0 {
		remainingCells = 0
	}

	var sb strings.Builder
	title := data.Title
	if styled {
		title = LabelStyle.Bold(true).Render(title)
	}
	sb.WriteString(title)
	sb.WriteString("\n")

	if styled {
		sb.WriteString(lipgloss.NewStyle().Foreground(ColorOffset).Render(strings.Repeat(IconBlock, offsetCells)))
		sb.WriteString(lipgloss.NewStyle().Foreground(ColorRemaining).Render(strings.Repeat(IconBlock, remainingCells)))
	} else {
		sb.WriteString("[")
		sb.WriteString(strings.Repeat(plainOffsetChar, offsetCells))
		sb.WriteString(strings.Repeat(plainRemainingChar, remainingCells))
		sb.WriteString("]")
	}
	sb.WriteString("\n")

	sb.WriteString(legendEntry(data.Offset, plainOffsetChar, ColorOffset, styled))
	sb.WriteString(legendEntry(data.Remaining, plainRemainingChar, ColorRemaining, styled))
	return sb.String()
}

func legendEntry(s solar.ChartSlice, plainMarker string, color lipgloss.Color, styled bool) string {
	marker := plainMarker
	if styled {
		marker = lipgloss.NewStyle().Foreground(color).Render(IconBlock)
	}
	return fmt.Sprintf("%s %s %.1f%% (%s)\n", marker, s.Label, s.Percent, solar.FormatKg(s.Value))
}
