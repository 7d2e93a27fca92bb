package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// maxColumnWidth caps a column; longer cells are truncated with "..."
const maxColumnWidth = 60

// Table is a box-drawn table. Style, when set, picks the style of a data
// cell; cells default to the theme's value style.
type Table struct {
	Headers []string
	Rows    [][]string
	Style   func(t Theme, col int, value string) lipgloss.Style
	Summary string
}

func (tb Table) widths() []int {
	widths := make([]int, len(tb.Headers))
	for i, h := range tb.Headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range tb.Rows {
		for i := range widths {
			if i < len(row) {
				widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
			}
		}
	}
	for i := range widths {
		widths[i] = min(widths[i], maxColumnWidth)
	}
	return widths
}

// Render writes the table to w using a theme bound to w
func (tb Table) Render(w io.Writer) error {
	theme := NewTheme(w)
	widths := tb.widths()

	var sb strings.Builder
	border := func(left, fill, sep, right string) {
		sb.WriteString(theme.Border.Render(left))
		for i, cw := range widths {
			sb.WriteString(theme.Border.Render(strings.Repeat(fill, cw+2)))
			if i < len(widths)-1 {
				sb.WriteString(theme.Border.Render(sep))
			}
		}
		sb.WriteString(theme.Border.Render(right))
		sb.WriteString("\n")
	}
	row := func(cells []string, style func(col int, value string) lipgloss.Style) {
		sb.WriteString(theme.Border.Render(Vertical))
		for i, cw := range widths {
			value := ""
			if i < len(cells) {
				value = cells[i]
			}
			sb.WriteString(style(i, value).Render(" " + padRight(value, cw) + " "))
			sb.WriteString(theme.Border.Render(Vertical))
		}
		sb.WriteString("\n")
	}

	border(TopLeft, Horizontal, TopT, TopRight)
	row(tb.Headers, func(int, string) lipgloss.Style { return theme.Header })
	border(LeftT, Horizontal, Cross, RightT)
	for _, r := range tb.Rows {
		row(r, func(col int, value string) lipgloss.Style {
			if tb.Style != nil {
				return tb.Style(theme, col, value)
			}
			return theme.Value
		})
	}
	border(BottomLeft, Horizontal, BottomT, BottomRight)

	if tb.Summary != "" {
		sb.WriteString(theme.Muted.Render("  " + tb.Summary))
		sb.WriteString("\n")
	}

	_, err := fmt.Fprint(w, sb.String())
	return err
}
