package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietdv277/rdsctl/internal/aws"
	"github.com/vietdv277/rdsctl/internal/config"
)

func testContextModel() ContextModel {
	return newContextModel(contextItems(map[string]*config.Context{
		"prod":    {Profile: "prod-admin", Region: "eu-west-1"},
		"staging": {Profile: "stage", Region: "us-east-1"},
		"local":   {Region: "us-east-1", EndpointURL: "http://localhost:4566"},
	}, "staging"))
}

func update(m ContextModel, msg tea.Msg) ContextModel {
	next, _ := m.Update(msg)
	return next.(ContextModel)
}

func TestContextModelNavigation(t *testing.T) {
	m := testContextModel()
	require.Len(t, m.items, 3)
	assert.Equal(t, "local", m.items[0].name)
	assert.True(t, m.items[2].current)

	m = update(m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "prod", m.selected)
	assert.True(t, m.quitting)
	assert.False(t, m.cancelled)
}

func TestContextModelFilter(t *testing.T) {
	m := testContextModel()
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("us-east")})
	require.Len(t, m.filtered, 2)

	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Empty(t, m.filtered)
	assert.Contains(t, m.View(), "No contexts found")

	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.cancelled)
	assert.Empty(t, m.View())
}

func TestContextModelView(t *testing.T) {
	view := testContextModel().View()
	assert.Contains(t, view, "prod-admin")
	assert.Contains(t, view, "3/3 contexts")
	assert.Contains(t, view, "http://localhost:4566")
}

func TestProfileModel(t *testing.T) {
	profiles := []aws.Profile{
		{Name: "default", Region: "us-east-1"},
		{Name: "prod", Region: "eu-west-1"},
	}
	m := NewProfileModel(profiles, "prod")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("eu")})
	m = next.(ProfileModel)
	require.Len(t, m.filtered, 1)
	assert.Contains(t, m.View(), "1/2 profiles")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(ProfileModel)
	require.NotNil(t, m.selected)
	assert.Equal(t, "prod", m.selected.Name)
}

func TestProfileTable(t *testing.T) {
	tb := ProfileTable([]aws.Profile{{Name: "prod", Source: "config", SSO: true}}, "prod")
	require.Len(t, tb.Rows, 1)
	assert.Equal(t, []string{"●", "prod", "-", "config", "sso"}, tb.Rows[0])
	assert.Equal(t, "1 profiles", tb.Summary)
}
