package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/joshuapare/propkit/cmd/propexplorer/fielddetail"
	"github.com/joshuapare/propkit/internal/demo"
)

// View renders the entire UI
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	// The overlay is recreated each render so it sees the latest state
	if m.detail.IsVisible() && m.detail.DisplayMode() == fielddetail.ModeModal {
		detailOverlay := overlay.New(
			&m.detail,
			backdrop{&m},
			overlay.Center,
			overlay.Center,
			0,
			0,
		)
		return detailOverlay.View()
	}

	parts := []string{m.renderHeader(), m.renderContent()}
	if m.detail.IsVisible() {
		parts = append(parts, m.detail.View())
	}
	parts = append(parts, m.renderStatus())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderHeader renders the title and the inspected objects
func (m Model) renderHeader() string {
	title := headerStyle.Render("Property Inspector")

	names := make([]string, 0, len(m.session.Presenter.Selection()))
	for _, v := range m.session.Presenter.Selection() {
		names = append(names, demo.NameOf(v.Ref()))
	}
	sel := "Nothing selected"
	if len(names) > 0 {
		sel = "Inspecting: " + strings.Join(names, ", ")
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, selectionStyle.Render(sel))
}

func (m Model) objectWidth() int {
	return max(m.width/3, 20)
}

func (m Model) inspectorWidth() int {
	return max(m.width-m.objectWidth(), 30)
}

// renderContent renders the object list and the inspector side by side
func (m Model) renderContent() string {
	height := max(m.inspector.Height, 3)

	objTitle := fmt.Sprintf("Objects (%d)", len(m.session.Scene.Objects))
	if n := len(m.marked); n > 0 {
		objTitle = fmt.Sprintf("Objects (%d, %d marked)", len(m.session.Scene.Objects), n)
	}
	objList := lipgloss.NewStyle().
		Width(m.objectWidth() - 4).
		Height(height).
		Render(m.renderObjects())

	inspTitle := "Inspector"
	if len(m.rows) > 0 {
		inspTitle = fmt.Sprintf("Inspector [%d/%d]", m.rowCursor+1, len(m.rows))
	}
	insp := lipgloss.NewStyle().
		Width(m.inspectorWidth() - 4).
		Height(height).
		Render(m.inspectorView())

	objStyle, inspStyle := activePaneStyle, paneStyle
	if m.focusedPane == InspectorPane {
		objStyle, inspStyle = paneStyle, activePaneStyle
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		objStyle.Render(lipgloss.JoinVertical(lipgloss.Left, objTitle, objList)),
		inspStyle.Render(lipgloss.JoinVertical(lipgloss.Left, inspTitle, insp)),
	)
}

// inspectorView renders the rows through a copy of the viewport so the
// cursor and edit state are always current.
func (m Model) inspectorView() string {
	vp := m.inspector
	vp.SetContent(m.renderRows())
	vp.SetYOffset(int(m.session.Panel.ScrollOffset()))
	return vp.View()
}

// renderObjects renders one line per scene object
func (m Model) renderObjects() string {
	inspected := make(map[string]bool)
	for _, k := range m.session.Selected() {
		inspected[k] = true
	}

	var b strings.Builder
	for i, o := range m.session.Scene.Objects {
		mark := "[ ]"
		if m.marked[i] {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s", mark, truncate(demo.NameOf(o.Target), max(m.objectWidth()-10, 8)))
		switch {
		case i == m.objCursor && m.focusedPane == ObjectPane:
			line = cursorStyle.Render(line)
		case inspected[o.Key]:
			line = inspectedStyle.Render(line)
		}
		b.WriteString(line)
		if i < len(m.session.Scene.Objects)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// renderRows renders the inspector rows; the viewport scrolls them
func (m Model) renderRows() string {
	lines := make([]string, len(m.rows))
	for i, r := range m.rows {
		lines[i] = m.renderRow(i, r)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(i int, r demo.Row) string {
	indent := strings.Repeat("  ", r.Depth)
	var line string
	switch r.Kind {
	case demo.RowHeader:
		arrow := "▾"
		if r.Group.Collapsed {
			arrow = "▸"
		}
		line = indent + groupStyle.Render(arrow+" "+r.Text)
	case demo.RowLabel:
		line = indent + readOnlyStyle.Render(r.Text)
	case demo.RowField:
		text := r.Text
		switch {
		case m.inputMode == EditMode && r.Path == m.editPath:
			text = promptStyle.Render(m.input.View())
		case r.Mixed:
			text = mixedStyle.Render(text)
		case r.ReadOnly:
			text = readOnlyStyle.Render(text)
		}
		line = indent + captionStyle.Render(r.Caption+": ") + text
		if r.Error != "" {
			line += "  " + errorStyle.Render(r.Error)
		}
	}
	if i == m.rowCursor && m.focusedPane == InspectorPane && m.inputMode == NormalMode {
		return cursorStyle.Render(line)
	}
	return line
}

// renderStatus renders the status bar with help text
func (m Model) renderStatus() string {
	if m.inputMode == EditMode {
		prompt := promptStyle.Render("Edit "+m.editPath+": ") + "enter to apply, esc to cancel"
		return statusStyle.Width(m.width).Render(prompt)
	}

	if m.statusMessage != "" {
		return statusStyle.Width(m.width).Render(promptStyle.Render(m.statusMessage))
	}

	var help []string
	switch {
	case m.detail.IsVisible():
		help = []string{"ESC: Close Detail", "↑/↓: Scroll", "q: Quit"}
	case m.focusedPane == ObjectPane:
		help = []string{"↑/↓: Navigate", "Space: Mark", "Enter: Inspect", "Tab: Inspector", "?: Help", "q: Quit"}
	default:
		help = []string{"↑/↓: Navigate", "Enter: Edit", "←/→: Step", "i: Details", "^Z/^Y: Undo/Redo", "?: Help", "q: Quit"}
	}
	for i, h := range help {
		help[i] = helpStyle.Render(h)
	}
	status := strings.Join(help, " │ ")
	if n := m.session.History.Applied(); n > 0 {
		status += " │ " + fmt.Sprintf("%d edit(s)", n)
	}
	return statusStyle.Width(m.width).Render(status)
}

// renderHelpOverlay renders the full key reference
func (m Model) renderHelpOverlay() string {
	var b strings.Builder
	b.WriteString(helpTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(helpKeyStyle.Render(h.Key))
			b.WriteString(helpDescStyle.Render(h.Desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(helpDescStyle.Render("Press ? or esc to close"))
	return activePaneStyle.Render(b.String())
}
