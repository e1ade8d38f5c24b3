package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

const (
	minColumnWidth = 6
	columnPadding  = 2
)

// NewResultTable builds a table model sized to its content.
func NewResultTable(headers []string, rows [][]string) table.Model {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = max(minColumnWidth, lipgloss.Width(h))
	}
	for _, r := range rows {
		for i := 0; i < len(r) && i < len(widths); i++ {
			widths[i] = max(widths[i], lipgloss.Width(r[i]))
		}
	}

	columns := make([]table.Column, len(headers))
	for i, h := range headers {
		columns[i] = table.Column{Title: h, Width: widths[i] + columnPadding}
	}
	tableRows := make([]table.Row, len(rows))
	for i, r := range rows {
		tableRows[i] = table.Row(r)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithHeight(len(rows)+1),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)
	return t
}

// RenderTable renders rows under headers. Styled output uses the table
// component; plain output is space-aligned text.
func RenderTable(headers []string, rows [][]string, styled bool) string {
	if styled {
		return NewResultTable(headers, rows).View() + "\n"
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len([]rune(h))
	}
	for _, r := range rows {
		for i := 0; i < len(r) && i < len(widths); i++ {
			widths[i] = max(widths[i], len([]rune(r[i])))
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i, c := range cells {
			if i >= len(widths) {
				break
			}
			sb.WriteString(c)
			if i < len(widths)-1 {
				sb.WriteString(strings.Repeat(" ", widths[i]-len([]rune(c))+columnPadding))
			}
		}
		sb.WriteString("\n")
	}
	writeRow(headers)
	sep := make([]string, len(headers))
	for i := range headers {
		sep[i] = strings.Repeat("-", widths[i])
	}
	writeRow(sep)
	for _, r := range rows {
		writeRow(r)
	}
	return sb.String()
}
