package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/netzero/internal/solar"
)

// AppTitle heads the interactive form and styled summaries.
const AppTitle = "Solar Panel Calculator for Net-Zero Carbon Emissions"

const (
	minLabelWidth = 20
	borderPadding = 2
)

// RenderLines renders label/value lines. Styled output colors labels and
// values; plain output aligns them with spaces only.
func RenderLines(lines []solar.ResultLine, styled bool) string {
	width := minLabelWidth
	for _, l := range lines {
		if n := lipgloss.Width(l.Label); n > width {
			width = n
		}
	}

	var sb strings.Builder
	for _, l := range lines {
		label := l.Label + ":" + strings.Repeat(" ", width-lipgloss.Width(l.Label)+1)
		value := l.Value
		if styled {
			label = LabelStyle.Render(label)
			if value == solar.NetZeroReachedTitle {
				value = OKStyle.Render(IconCheck + " " + value)
			} else {
				value = ValueStyle.Render(value)
			}
		}
		sb.WriteString(label)
		sb.WriteString(value)
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderOffsetSummary renders an offset result with its chart and
// equivalencies, boxed when styled.
func RenderOffsetSummary(res solar.OffsetResult, precision int, styled bool, width int) string {
	var content strings.Builder

	if res.NetZeroReached {
		msg := solar.NetZeroReachedTitle
		if styled {
			msg = OKStyle.Render(IconCheck + " " + msg)
		}
		content.WriteString(msg)
		content.WriteString("\n\n")
	}

	content.WriteString(RenderLines(solar.OffsetLines(res, precision), styled))

	if text := solar.EquivalencyText(solar.Equivalencies(res.CarbonOffset)); text != "" {
		content.WriteString("\n")
		if styled {
			text = MutedStyle.Render(text)
		}
		content.WriteString(text)
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(RenderChart(solar.ChartFor(res), chartWidth(width), styled))

	if !styled {
		return content.String()
	}
	return HeaderStyle.Render(AppTitle) + "\n" + BoxStyle.Width(width-borderPadding).Render(content.String()) + "\n"
}

// RenderPlanSummary renders a plan result.
func RenderPlanSummary(res solar.PlanResult, precision int, styled bool, width int) string {
	content := RenderLines(solar.PlanLines(res, precision), styled)
	if !styled {
		return content
	}
	return HeaderStyle.Render("Net-Zero Installation Plan") + "\n" + BoxStyle.Width(width-borderPadding).Render(content) + "\n"
}

// RenderWarnings renders parse warnings, one per line.
func RenderWarnings(warnings []string, styled bool) string {
	var sb strings.Builder
	for _, w := range warnings {
		line := fmt.Sprintf("%s %s", IconWarning, w)
		if styled {
			line = WarningStyle.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

func chartWidth(width int) int {
	const (
		minBar = 10
		inset  = 8
	)
	if width-inset < minBar {
		return minBar
	}
	return width - inset
}
