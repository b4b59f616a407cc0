package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/propkit/cmd/propexplorer/fielddetail"
	"github.com/joshuapare/propkit/inspect/editors"
	"github.com/joshuapare/propkit/internal/demo"
	"github.com/joshuapare/propkit/internal/logger"
	"github.com/joshuapare/propkit/pkg/value"
)

// Update handles all messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		model, _ := (&m.detail).Update(msg)
		m.detail = *model.(*fielddetail.Model)
		return m, nil

	case frameMsg:
		if err := m.frame(); err != nil {
			m.err = err
			return m, nil
		}
		return m, m.tick()

	case modifiedMsg:
		m.statusMessage = fmt.Sprintf("Modified %s", strings.Join(msg.Paths, ", "))
		return m, tea.Batch(waitForModified(m.modified), clearStatusAfter(2*time.Second))

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.inputMode == EditMode {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// frame runs one presenter frame and re-renders the inspector. Only fatal
// engine errors are returned.
func (m *Model) frame() error {
	if err := m.session.Update(); err != nil {
		logger.Error("frame failed", "frame", m.frames, "error", err)
		return err
	}
	m.frames++
	m.refreshRows()
	return nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// If help is showing, handle help keys
	if m.showHelp {
		if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	}

	// If detail view is open, handle its keys
	if m.detail.IsVisible() {
		switch {
		case key.Matches(msg, m.keys.Esc), key.Matches(msg, m.keys.Detail):
			m.detail.Hide()
		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down),
			key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
			model, cmd := (&m.detail).Update(msg)
			m.detail = *model.(*fielddetail.Model)
			return m, cmd
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	if m.inputMode == EditMode {
		return m.handleEditKey(msg)
	}

	// Global keys
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		if m.focusedPane == ObjectPane {
			m.focusedPane = InspectorPane
		} else {
			m.focusedPane = ObjectPane
		}
		return m, nil
	case key.Matches(msg, m.keys.Undo):
		return m.handleUndo(false)
	case key.Matches(msg, m.keys.Redo):
		return m.handleUndo(true)
	}

	if m.focusedPane == ObjectPane {
		return m.handleObjectKey(msg)
	}
	return m.handleInspectorKey(msg)
}

func (m Model) handleObjectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.session.Scene.Objects)
	switch {
	case key.Matches(msg, m.keys.Up):
		m.objCursor = max(m.objCursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.objCursor = min(m.objCursor+1, count-1)
	case key.Matches(msg, m.keys.Home):
		m.objCursor = 0
	case key.Matches(msg, m.keys.End):
		m.objCursor = count - 1
	case key.Matches(msg, m.keys.Mark):
		if m.marked[m.objCursor] {
			delete(m.marked, m.objCursor)
		} else {
			m.marked[m.objCursor] = true
		}
	case key.Matches(msg, m.keys.Enter):
		return m.inspectObjects()
	case key.Matches(msg, m.keys.Esc):
		m.marked = make(map[int]bool)
		if err := m.session.Presenter.Deselect(); err != nil {
			return m.withStatus(fmt.Sprintf("Deselect failed: %v", err))
		}
		m.refreshRows()
	}
	return m, nil
}

// inspectObjects selects the marked objects, or the one under the cursor.
func (m Model) inspectObjects() (tea.Model, tea.Cmd) {
	var keys []string
	for i, o := range m.session.Scene.Objects {
		if m.marked[i] {
			keys = append(keys, o.Key)
		}
	}
	if len(keys) == 0 {
		keys = []string{m.session.Scene.Objects[m.objCursor].Key}
	}
	if err := m.session.Select(keys...); err != nil {
		return m.withStatus(fmt.Sprintf("Select failed: %v", err))
	}
	logger.Debug("inspecting", "keys", keys)
	m.rowCursor = 0
	m.refreshRows()
	m.focusedPane = InspectorPane
	return m, nil
}

func (m Model) handleInspectorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := max(m.inspector.Height, 1)
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveRow(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveRow(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveRow(-page)
	case key.Matches(msg, m.keys.PageDown):
		m.moveRow(page)
	case key.Matches(msg, m.keys.Home):
		m.moveRow(-len(m.rows))
	case key.Matches(msg, m.keys.End):
		m.moveRow(len(m.rows))
	case key.Matches(msg, m.keys.Enter):
		return m.activateRow()
	case key.Matches(msg, m.keys.Left):
		return m.stepRow(-1)
	case key.Matches(msg, m.keys.Right):
		return m.stepRow(1)
	case key.Matches(msg, m.keys.Detail):
		return m.showDetail()
	case key.Matches(msg, m.keys.CopyValue):
		if r := m.currentRow(); r != nil && r.Kind == demo.RowField {
			return m.copyToClipboard(r.Text, "value")
		}
	case key.Matches(msg, m.keys.CopyPath):
		if r := m.currentRow(); r != nil && r.Path != "" {
			return m.copyToClipboard(r.Path, "path")
		}
	}
	return m, nil
}

func (m *Model) moveRow(delta int) {
	if len(m.rows) == 0 {
		m.rowCursor = 0
		return
	}
	m.rowCursor = min(max(m.rowCursor+delta, 0), len(m.rows)-1)
	m.syncScroll()
}

func (m *Model) currentRow() *demo.Row {
	if m.rowCursor < 0 || m.rowCursor >= len(m.rows) {
		return nil
	}
	return &m.rows[m.rowCursor]
}

// activateRow starts editing a field or toggles a group.
func (m Model) activateRow() (tea.Model, tea.Cmd) {
	r := m.currentRow()
	if r == nil {
		return m, nil
	}
	switch r.Kind {
	case demo.RowHeader:
		r.Group.Toggle()
		m.refreshRows()
		return m, nil
	case demo.RowField:
		if r.ReadOnly {
			return m.withStatus(fmt.Sprintf("%s is read-only", r.Caption))
		}
		m.inputMode = EditMode
		m.editPath = r.Path
		text := r.Text
		if r.Mixed {
			text = ""
		}
		m.input.SetValue(text)
		m.input.CursorEnd()
		return m, m.input.Focus()
	}
	return m, nil
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.stopEditing()
		return m, nil
	case tea.KeyEnter:
		path, text := m.editPath, m.input.Value()
		m.stopEditing()
		if err := m.session.Input(path, text); err != nil {
			return m.withStatus(err.Error())
		}
		// Written by the next frame.
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) stopEditing() {
	m.inputMode = NormalMode
	m.editPath = ""
	m.input.Blur()
	m.input.SetValue("")
}

// stepRow cycles an enum field or flips a bool field.
func (m Model) stepRow(step int) (tea.Model, tea.Cmd) {
	r := m.currentRow()
	if r == nil || r.Kind != demo.RowField || r.ReadOnly {
		return m, nil
	}
	n := m.session.Presenter.Find(r.Path)
	if n == nil || n.Values() == nil || n.Values().Len() == 0 {
		return m, nil
	}
	cur := n.Values().At(0)
	var next value.Value
	switch cur.Kind() {
	case value.EnumKind:
		v, err := editors.Cycle(cur, step)
		if err != nil {
			return m.withStatus(err.Error())
		}
		next = v
	case value.BoolKind:
		next = value.Bool(!cur.AsBool() || r.Mixed)
	default:
		return m, nil
	}
	if err := m.session.Input(r.Path, next.String()); err != nil {
		return m.withStatus(err.Error())
	}
	return m, nil
}

func (m Model) handleUndo(redo bool) (tea.Model, tea.Cmd) {
	op, apply := "Undo", m.session.Undo
	if redo {
		op, apply = "Redo", m.session.Redo
	}
	e, err := apply()
	if err != nil {
		return m.withStatus(fmt.Sprintf("%s: %v", op, err))
	}
	m.refreshRows()
	return m.withStatus(fmt.Sprintf("%s %q", op, e.Label))
}

// showDetail opens the per-object values of the field under the cursor.
func (m Model) showDetail() (tea.Model, tea.Cmd) {
	r := m.currentRow()
	if r == nil || r.Kind != demo.RowField {
		return m, nil
	}
	n := m.session.Presenter.Find(r.Path)
	if n == nil || n.Values() == nil {
		return m, nil
	}
	vals := n.Values()
	f := fielddetail.Field{
		Path:     r.Path,
		Caption:  r.Caption,
		ReadOnly: r.ReadOnly,
		Mixed:    vals.HasDifferentValues(),
	}
	if vals.Len() > 0 {
		f.Type = vals.At(0).Type()
	}
	for i, target := range m.session.Presenter.Selection() {
		if i >= vals.Len() {
			break
		}
		f.Instances = append(f.Instances, fielddetail.Instance{
			Object: demo.NameOf(target.Ref()),
			Value:  demo.Format(vals.At(i)),
		})
	}
	m.detail.Show(f)
	return m, nil
}

func (m Model) copyToClipboard(text, what string) (tea.Model, tea.Cmd) {
	if err := clipboard.WriteAll(text); err != nil {
		logger.Warn("clipboard write failed", "error", err)
		return m.withStatus(fmt.Sprintf("Copy failed: %v", err))
	}
	return m.withStatus(fmt.Sprintf("Copied %s: %s", what, truncate(text, 40)))
}

func (m Model) withStatus(msg string) (tea.Model, tea.Cmd) {
	m.statusMessage = msg
	return m, clearStatusAfter(2 * time.Second)
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// refreshRows re-reads the inspector rows and keeps the cursor in range.
func (m *Model) refreshRows() {
	m.rows = m.session.Rows()
	if m.rowCursor >= len(m.rows) {
		m.rowCursor = max(len(m.rows)-1, 0)
	}
	m.syncScroll()
}

// resize lays out the panes for the window size.
func (m *Model) resize() {
	height := max(m.height-headerHeight-statusHeight-paneChrome, 3)
	m.inspector.Width = max(m.inspectorWidth()-4, 10)
	m.inspector.Height = height
	m.session.Panel.Height = height
	m.syncScroll()
}

// syncScroll keeps the cursor row visible. The offset lives in the layout
// panel so that it survives the rebuild on a selection change.
func (m *Model) syncScroll() {
	m.session.Panel.ScrollToRow(m.rowCursor)
	m.inspector.SetContent(m.renderRows())
	m.inspector.SetYOffset(int(m.session.Panel.ScrollOffset()))
}
