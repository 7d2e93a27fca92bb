package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// list is the cursor, scroll window and type-to-filter state shared by the
// interactive selectors.
type list[T any] struct {
	items     []T
	filtered  []T
	cursor    int
	offset    int
	search    string
	height    int
	quitting  bool
	cancelled bool

	// match reports whether an item contains the lower-cased query
	match func(item T, query string) bool
}

func newList[T any](items []T, height int, match func(T, string) bool) list[T] {
	return list[T]{items: items, filtered: items, height: height, match: match}
}

// handleKey applies a key press. It returns true when the selector should
// exit; the choice is current() unless cancelled is set.
func (l *list[T]) handleKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		l.quitting, l.cancelled = true, true
		return true
	case tea.KeyEnter:
		if len(l.filtered) > 0 {
			l.quitting = true
			return true
		}
	case tea.KeyUp:
		if l.cursor > 0 {
			l.cursor--
			l.offset = min(l.offset, l.cursor)
		}
	case tea.KeyDown:
		if l.cursor < len(l.filtered)-1 {
			l.cursor++
			if l.cursor >= l.offset+l.height {
				l.offset = l.cursor - l.height + 1
			}
		}
	case tea.KeyBackspace:
		if len(l.search) > 0 {
			l.search = l.search[:len(l.search)-1]
			l.filter()
		}
	case tea.KeyRunes:
		l.search += string(msg.Runes)
		l.filter()
	}
	return false
}

func (l *list[T]) filter() {
	if l.search == "" {
		l.filtered = l.items
	} else {
		query := strings.ToLower(l.search)
		l.filtered = nil
		for _, item := range l.items {
			if l.match(item, query) {
				l.filtered = append(l.filtered, item)
			}
		}
	}
	l.cursor = max(min(l.cursor, len(l.filtered)-1), 0)
	l.offset = 0
}

func (l *list[T]) current() (T, bool) {
	if len(l.filtered) == 0 {
		var zero T
		return zero, false
	}
	return l.filtered[l.cursor], true
}

// window returns the bounds of the visible rows and the number of blank
// rows needed to keep the list height fixed.
func (l *list[T]) window() (start, end, blank int) {
	end = min(l.offset+l.height, len(l.filtered))
	return l.offset, end, l.offset + l.height - end
}

func containsFold(query string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// statusBar renders the line under a selector box: a count on the left and
// key hints flush right.
func statusBar(t Theme, width int, info, hints string) string {
	pad := max(width-runewidth.StringWidth(info)-runewidth.StringWidth(hints), 1)
	return info + strings.Repeat(" ", pad) + t.Hint.Render(hints) + "\n"
}
