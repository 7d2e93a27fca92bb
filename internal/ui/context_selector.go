package ui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vietdv277/rdsctl/internal/config"
)

const (
	listHeight       = 8
	detailLabelWidth = 12
	minWidth         = 60
	maxWidth         = 120
)

// ErrSelectionCancelled is returned when the selector is closed without a choice
var ErrSelectionCancelled = fmt.Errorf("selection cancelled")

// contextItem holds display data for a single context entry.
type contextItem struct {
	name    string
	ctx     *config.Context
	current bool
}

func (c contextItem) profile() string {
	if c.ctx.Profile == "" {
		return "-"
	}
	return c.ctx.Profile
}

func (c contextItem) region() string {
	if c.ctx.Region == "" {
		return "-"
	}
	return c.ctx.Region
}

func (c contextItem) endpoint() string {
	if c.ctx.EndpointURL == "" {
		return "default"
	}
	return c.ctx.EndpointURL
}

// ContextModel is the bubbletea model for interactive context selection.
type ContextModel struct {
	list[contextItem]
	selected     string
	termWidth    int
	contentWidth int
	colWidths    []int // [Name, Profile, Region]
	theme        Theme
}

func newContextModel(items []contextItem) ContextModel {
	m := ContextModel{
		list: newList(items, listHeight, func(c contextItem, q string) bool {
			return containsFold(q, c.name, c.ctx.Profile, c.ctx.Region)
		}),
		termWidth: 80,
		theme:     Default,
	}
	m.calculateContextWidths()
	return m
}

func (m *ContextModel) calculateContextWidths() {
	m.contentWidth = min(max(m.termWidth-2, minWidth), maxWidth)

	profW, regW := 10, 10
	for _, item := range m.items {
		profW = max(profW, runewidth.StringWidth(item.profile()))
		regW = max(regW, runewidth.StringWidth(item.region()))
	}

	// cursor+marker(3) + name + sp(2) + profile + sp(2) + region
	nameW := max(m.contentWidth-(3+2+profW+2+regW), 10)
	m.colWidths = []int{nameW, profW, regW}
}

// Init implements tea.Model.
func (m ContextModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model.
func (m ContextModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.calculateContextWidths()
		return m, nil

	case tea.KeyMsg:
		if m.handleKey(msg) {
			if item, ok := m.current(); ok && !m.cancelled {
				m.selected = item.name
			}
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m ContextModel) line(content string) string {
	b := m.theme.Border
	return b.Render(Vertical) + content + b.Render(Vertical) + "\n"
}

func (m ContextModel) rule(left, right string) string {
	b := m.theme.Border
	return b.Render(left) + b.Render(strings.Repeat(Horizontal, m.contentWidth)) + b.Render(right) + "\n"
}

// View implements tea.Model.
func (m ContextModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	w := m.contentWidth
	blank := m.line(strings.Repeat(" ", w))

	sb.WriteString(m.rule(TopLeft, TopRight))
	sb.WriteString(m.line(m.theme.Name.Render(padRight(" > "+m.search, w))))
	sb.WriteString(blank)

	start, end, pad := m.window()
	for i := start; i < end; i++ {
		sb.WriteString(m.renderContextRow(i))
	}
	sb.WriteString(strings.Repeat(blank, pad))

	sb.WriteString(blank)
	sb.WriteString(m.rule(LeftT, RightT))
	sb.WriteString(m.renderContextDetailsPanel())
	sb.WriteString(m.rule(BottomLeft, BottomRight))
	sb.WriteString(statusBar(m.theme, w+2,
		fmt.Sprintf("  %d/%d contexts", len(m.filtered), len(m.items)),
		"[Enter:select] [Esc:quit]"))

	return sb.String()
}

func (m ContextModel) renderContextRow(idx int) string {
	item := m.filtered[idx]
	t := m.theme

	// 3-char prefix: space + cursor(>) + current-marker(*)
	cursor, marker := " ", " "
	if idx == m.cursor {
		cursor = ">"
	}
	if item.current {
		marker = "*"
	}

	nameStyle := t.Name
	if item.current {
		nameStyle = t.Current
	}

	var line strings.Builder
	line.WriteString(" " + cursor + marker)
	line.WriteString(nameStyle.Render(padRight(item.name, m.colWidths[0])) + "  ")
	line.WriteString(t.Muted.Render(padRight(item.profile(), m.colWidths[1])) + "  ")
	line.WriteString(t.Value.Render(padRight(item.region(), m.colWidths[2])))

	plainWidth := 3 + m.colWidths[0] + 2 + m.colWidths[1] + 2 + m.colWidths[2]
	if plainWidth < m.contentWidth {
		line.WriteString(strings.Repeat(" ", m.contentWidth-plainWidth))
	}
	return m.line(line.String())
}

func (m ContextModel) renderContextDetailsPanel() string {
	var sb strings.Builder
	w := m.contentWidth
	t := m.theme

	sb.WriteString(m.line(t.Header.Render(padRight(" Context Details", w))))
	sb.WriteString(m.line(t.Muted.Render(padRight(" "+strings.Repeat(Horizontal, 20), w))))

	item, ok := m.current()
	if !ok {
		sb.WriteString(m.line(t.Muted.Render(padRight(" No contexts found", w))))
		sb.WriteString(strings.Repeat(m.line(strings.Repeat(" ", w)), 4))
		return sb.String()
	}

	details := []struct {
		label string
		value string
		style lipgloss.Style
	}{
		{"Context:", item.name, t.Name},
		{"Profile:", item.profile(), t.Muted},
		{"Region:", item.region(), t.Value},
		{"Endpoint:", item.endpoint(), t.Value},
	}

	for _, d := range details {
		valueText := d.value
		maxValueWidth := w - 1 - detailLabelWidth
		if runewidth.StringWidth(valueText) > maxValueWidth {
			valueText = runewidth.Truncate(valueText, maxValueWidth, "...")
		}

		plainWidth := 1 + detailLabelWidth + runewidth.StringWidth(valueText)
		line := t.Muted.Render(" "+padRight(d.label, detailLabelWidth)) + d.style.Render(valueText)
		if plainWidth < w {
			line += strings.Repeat(" ", w-plainWidth)
		}
		sb.WriteString(m.line(line))
	}

	sb.WriteString(m.line(strings.Repeat(" ", w)))
	return sb.String()
}

func contextItems(contexts map[string]*config.Context, current string) []contextItem {
	names := make([]string, 0, len(contexts))
	for name := range contexts {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]contextItem, len(names))
	for i, name := range names {
		items[i] = contextItem{name: name, ctx: contexts[name], current: name == current}
	}
	return items
}

// SelectContext runs the interactive context selector TUI and returns the selected context name.
// The current context is pre-highlighted in the list.
func SelectContext(contexts map[string]*config.Context, current string) (string, error) {
	if len(contexts) == 0 {
		return "", fmt.Errorf("no contexts available")
	}

	items := contextItems(contexts, current)
	m := newContextModel(items)

	// Pre-position cursor on the current context
	for i, item := range items {
		if item.current {
			m.cursor = i
			break
		}
	}

	finalModel, err := tea.NewProgram(m).Run()
	if err != nil {
		return "", fmt.Errorf("error running selector: %w", err)
	}

	result := finalModel.(ContextModel)
	if result.cancelled {
		return "", ErrSelectionCancelled
	}
	return result.selected, nil
}
