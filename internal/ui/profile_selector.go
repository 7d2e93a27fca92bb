package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vietdv277/rdsctl/internal/aws"
)

const profileListHeight = 10

// ProfileModel represents the bubbletea model for profile selection
type ProfileModel struct {
	list[aws.Profile]
	selected      *aws.Profile
	contentWidth  int
	activeProfile string
	theme         Theme
}

// NewProfileModel creates a new profile selector model
func NewProfileModel(profiles []aws.Profile, activeProfile string) ProfileModel {
	return ProfileModel{
		list: newList(profiles, profileListHeight, func(p aws.Profile, q string) bool {
			return containsFold(q, p.Name, p.Region)
		}),
		contentWidth:  78,
		activeProfile: activeProfile,
		theme:         Default,
	}
}

// Init implements tea.Model
func (m ProfileModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model
func (m ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.contentWidth = min(max(msg.Width-2, minWidth), maxWidth)
		return m, nil

	case tea.KeyMsg:
		if m.handleKey(msg) {
			if p, ok := m.current(); ok && !m.cancelled {
				m.selected = &p
			}
			return m, tea.Quit
		}
	}

	return m, nil
}

// View implements tea.Model
func (m ProfileModel) View() string {
	if m.quitting {
		return ""
	}

	t := m.theme
	w := m.contentWidth
	line := func(content string) string {
		return t.Border.Render(Vertical) + content + t.Border.Render(Vertical) + "\n"
	}
	rule := func(left, right string) string {
		return t.Border.Render(left+strings.Repeat(Horizontal, w)+right) + "\n"
	}

	var sb strings.Builder
	sb.WriteString(rule(TopLeft, TopRight))
	sb.WriteString(line(t.Header.Render(padRight(" Select AWS Profile", w))))
	sb.WriteString(rule(LeftT, RightT))
	sb.WriteString(line(t.Name.Render(padRight(" > "+m.search, w))))
	sb.WriteString(line(strings.Repeat(" ", w)))

	start, end, blank := m.window()
	for i := start; i < end; i++ {
		p := m.filtered[i]
		prefix := "   "
		switch {
		case p.Name == m.activeProfile:
			prefix = " ● "
		case i == m.cursor:
			prefix = " > "
		}
		nameStyle := t.Name
		if p.Name == m.activeProfile {
			nameStyle = t.Current
		}
		region := p.Region
		if region == "" {
			region = "-"
		}
		content := prefix + nameStyle.Render(padRight(p.Name, 30)) + "  " + t.Muted.Render(padRight(region, 20))
		if pad := w - (3 + 30 + 2 + 20); pad > 0 {
			content += strings.Repeat(" ", pad)
		}
		sb.WriteString(line(content))
	}
	sb.WriteString(strings.Repeat(line(strings.Repeat(" ", w)), blank))

	sb.WriteString(rule(BottomLeft, BottomRight))

	sb.WriteString(statusBar(t, w+2,
		fmt.Sprintf("  %d/%d profiles", len(m.filtered), len(m.items)),
		"[Enter:select] [Esc:cancel]"))

	return sb.String()
}

// SelectProfile displays an interactive selector for AWS profiles
func SelectProfile(profiles []aws.Profile, activeProfile string) (*aws.Profile, error) {
	if len(profiles) == 0 {
		return nil, fmt.Errorf("no profiles available")
	}

	finalModel, err := tea.NewProgram(NewProfileModel(profiles, activeProfile)).Run()
	if err != nil {
		return nil, fmt.Errorf("error running selector: %w", err)
	}

	result := finalModel.(ProfileModel)
	if result.cancelled {
		return nil, ErrSelectionCancelled
	}
	return result.selected, nil
}

// ProfileTable lists profiles with the active one marked
func ProfileTable(profiles []aws.Profile, activeProfile string) Table {
	rows := make([][]string, len(profiles))
	for i, p := range profiles {
		marker := ""
		if p.Name == activeProfile {
			marker = "●"
		}
		region := p.Region
		if region == "" {
			region = "-"
		}
		sso := ""
		if p.SSO {
			sso = "sso"
		}
		rows[i] = []string{marker, p.Name, region, p.Source, sso}
	}

	return Table{
		Headers: []string{"", "NAME", "REGION", "SOURCE", "AUTH"},
		Rows:    rows,
		Style: func(t Theme, col int, value string) lipgloss.Style {
			switch col {
			case 0:
				return t.Current
			case 1:
				return t.Name
			default:
				return t.Muted
			}
		},
		Summary: fmt.Sprintf("%d profiles", len(profiles)),
	}
}
