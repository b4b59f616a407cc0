// Package fielddetail shows every selected object's value of one inspector
// field, either as a modal or as a bottom pane.
package fielddetail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DisplayMode determines how the detail view is shown
type DisplayMode int

const (
	ModeModal DisplayMode = iota // Popup overlay
	ModePane                     // Bottom pane
)

// ParseMode maps "pane" to ModePane and anything else to ModeModal.
func ParseMode(s string) DisplayMode {
	if strings.EqualFold(strings.TrimSpace(s), "pane") {
		return ModePane
	}
	return ModeModal
}

// Instance is one selected object's value of the field.
type Instance struct {
	Object string
	Value  string
}

// Field is what the detail view shows.
type Field struct {
	Path      string
	Caption   string
	Type      string
	ReadOnly  bool
	Mixed     bool
	Instances []Instance
}

// Model shows detailed information about one field
type Model struct {
	field       *Field
	displayMode DisplayMode
	viewport    viewport.Model
	width       int
	height      int
	visible     bool
}

// New creates a new detail model
func New(mode DisplayMode) Model {
	return Model{
		displayMode: mode,
		viewport:    viewport.New(0, 0),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Show displays details for a field
func (m *Model) Show(f Field) {
	m.field = &f
	m.visible = true
	m.viewport.GotoTop()
	m.updateContent()
}

// Hide closes the detail view
func (m *Model) Hide() {
	m.visible = false
	m.field = nil
}

// IsVisible returns whether the detail view is currently shown
func (m *Model) IsVisible() bool {
	return m.visible
}

// DisplayMode returns the current display mode
func (m *Model) DisplayMode() DisplayMode {
	return m.displayMode
}

// Field returns the shown field, or nil.
func (m *Model) Field() *Field {
	return m.field
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewportSize()
		m.updateContent()
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// updateViewportSize adjusts viewport dimensions based on display mode
func (m *Model) updateViewportSize() {
	switch m.displayMode {
	case ModeModal:
		// 60% of the screen minus border (2) and padding (4 cols, 2 rows)
		m.viewport.Width = max(int(float64(m.width)*0.6)-6, 10)
		m.viewport.Height = max(int(float64(m.height)*0.6)-4, 3)
	case ModePane:
		m.viewport.Width = max(m.width-4, 10)
		m.viewport.Height = max(m.height/3-4, 3)
	}
}

// updateContent generates the detailed view content
func (m *Model) updateContent() {
	if m.field == nil {
		m.viewport.SetContent("")
		return
	}
	f := m.field

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	b.WriteString(titleStyle.Render(fmt.Sprintf("Field: %s", f.Caption)))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Path:   %s\n", f.Path)
	fmt.Fprintf(&b, "Type:   %s\n", f.Type)
	access := "read-write"
	if f.ReadOnly {
		access = "read-only"
	}
	fmt.Fprintf(&b, "Access: %s\n", access)
	if f.Mixed {
		b.WriteString("Values differ between the selected objects\n")
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("Values (%d):\n", len(f.Instances)))
	b.WriteString(strings.Repeat("─", max(m.viewport.Width-2, 1)))
	b.WriteString("\n")
	width := 0
	for _, in := range f.Instances {
		width = max(width, len(in.Object))
	}
	for _, in := range f.Instances {
		fmt.Fprintf(&b, "%-*s  %s\n", width, in.Object, in.Value)
	}

	m.viewport.SetContent(b.String())
}

// View renders the detail view
func (m Model) View() string {
	if !m.visible || m.field == nil {
		return ""
	}

	switch m.displayMode {
	case ModeModal:
		return m.viewModal()
	case ModePane:
		return m.viewPane()
	default:
		return ""
	}
}

// viewModal renders as a centered popup
func (m Model) viewModal() string {
	// The overlay package handles centering, so we just render the box
	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(1, 2)

	return borderStyle.Render(m.viewport.View())
}

// viewPane renders as a bottom pane
func (m Model) viewPane() string {
	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return borderStyle.Render(m.viewport.View())
}
