package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vietdv277/rdsctl/internal/invoke"
)

// Box drawing characters
const (
	TopLeft     = "╭"
	TopRight    = "╮"
	BottomLeft  = "╰"
	BottomRight = "╯"
	Horizontal  = "─"
	Vertical    = "│"
	LeftT       = "├"
	RightT      = "┤"
	TopT        = "┬"
	BottomT     = "┴"
	Cross       = "┼"
)

// Color palette
const (
	ColorBorder  = "240"
	ColorHeader  = "252"
	ColorKey     = "214"
	ColorName    = "81"
	ColorValue   = "252"
	ColorCurrent = "82"
	ColorMuted   = "240"
	ColorHint    = "245"
	ColorLow     = "82"
	ColorMedium  = "214"
	ColorHigh    = "203"
)

// Theme is a set of styles bound to one output. Colors are dropped when
// the output is not a terminal.
type Theme struct {
	Border  lipgloss.Style
	Header  lipgloss.Style
	Key     lipgloss.Style
	Name    lipgloss.Style
	Value   lipgloss.Style
	Current lipgloss.Style
	Muted   lipgloss.Style
	Hint    lipgloss.Style
	Error   lipgloss.Style

	impact map[invoke.Impact]lipgloss.Style
}

// NewTheme builds a theme for output written to w
func NewTheme(w io.Writer) Theme {
	return newTheme(lipgloss.NewRenderer(w))
}

func newTheme(r *lipgloss.Renderer) Theme {
	color := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}
	return Theme{
		Border:  color(ColorBorder),
		Header:  color(ColorHeader).Bold(true),
		Key:     color(ColorKey),
		Name:    color(ColorName),
		Value:   color(ColorValue),
		Current: color(ColorCurrent),
		Muted:   color(ColorMuted),
		Hint:    color(ColorHint),
		Error:   color(ColorHigh).Bold(true),
		impact: map[invoke.Impact]lipgloss.Style{
			invoke.ImpactNone:   color(ColorMuted),
			invoke.ImpactLow:    color(ColorLow),
			invoke.ImpactMedium: color(ColorMedium),
			invoke.ImpactHigh:   color(ColorHigh).Bold(true),
		},
	}
}

// Impact returns the style for an impact level
func (t Theme) Impact(i invoke.Impact) lipgloss.Style {
	if s, ok := t.impact[i]; ok {
		return s
	}
	return t.Value
}

// Default is the theme for the terminal the process writes to
var Default = newTheme(lipgloss.DefaultRenderer())

// padRight pads a string to the specified display width using runewidth
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "...")
	}
	return s + strings.Repeat(" ", width-sw)
}
