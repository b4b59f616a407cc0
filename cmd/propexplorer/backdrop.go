package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// backdrop renders the explorer behind the detail modal. The overlay needs a
// tea.Model; input still goes to the explorer's own Update.
type backdrop struct{ m *Model }

func (b backdrop) Init() tea.Cmd                       { return nil }
func (b backdrop) Update(tea.Msg) (tea.Model, tea.Cmd) { return b, nil }

func (b backdrop) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		b.m.renderHeader(), b.m.renderContent(), b.m.renderStatus())
}
