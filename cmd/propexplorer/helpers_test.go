package main

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/propkit/cmd/propexplorer/fielddetail"
	"github.com/joshuapare/propkit/internal/demo"
)

// TestHelper provides utilities for testing the explorer
type TestHelper struct {
	t     *testing.T
	model Model
}

// NewTestHelper creates a test helper over a fresh sample scene with a
// 120x40 window
func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()
	m, err := NewModel(demo.NewScene(), Config{DetailMode: fielddetail.ModeModal, FPS: DefaultFPS})
	require.NoError(t, err)
	h := &TestHelper{t: t, model: m}
	t.Cleanup(func() { h.model.Close() })
	return h.SendWindowSize(120, 40)
}

// send feeds msg to the model but does not execute the returned command
func (h *TestHelper) send(msg tea.Msg) tea.Cmd {
	updated, cmd := h.model.Update(msg)
	h.model = updated.(Model)
	return cmd
}

// SendKey simulates a key press
func (h *TestHelper) SendKey(keyType tea.KeyType) *TestHelper {
	h.send(tea.KeyMsg{Type: keyType})
	return h
}

// SendKeyRune simulates a character key press
func (h *TestHelper) SendKeyRune(r rune) *TestHelper {
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return h
}

// Type sends each rune of s as a key press
func (h *TestHelper) Type(s string) *TestHelper {
	for _, r := range s {
		h.SendKeyRune(r)
	}
	return h
}

// SendWindowSize simulates a window resize
func (h *TestHelper) SendWindowSize(width, height int) *TestHelper {
	h.send(tea.WindowSizeMsg{Width: width, Height: height})
	return h
}

// Frame delivers one frame tick
func (h *TestHelper) Frame() *TestHelper {
	h.send(frameMsg(time.Now()))
	return h
}

// Inspect selects the objects at the given scene indices through the object
// pane
func (h *TestHelper) Inspect(indices ...int) *TestHelper {
	h.t.Helper()
	require.Equal(h.t, ObjectPane, h.model.focusedPane)
	for _, idx := range indices {
		h.SendKey(tea.KeyHome)
		for i := 0; i < idx; i++ {
			h.SendKey(tea.KeyDown)
		}
		if len(indices) > 1 {
			h.SendKey(tea.KeySpace)
		}
	}
	return h.SendKey(tea.KeyEnter)
}

// CursorTo moves the inspector cursor to the first row with the given path,
// or the given group title when no field matches
func (h *TestHelper) CursorTo(pathOrTitle string) *TestHelper {
	h.t.Helper()
	idx := -1
	for i, r := range h.model.rows {
		if r.Path == pathOrTitle || (r.Kind == demo.RowHeader && r.Text == pathOrTitle) {
			idx = i
			break
		}
	}
	require.NotEqual(h.t, -1, idx, "no row %q", pathOrTitle)
	h.SendKey(tea.KeyHome)
	for i := 0; i < idx; i++ {
		h.SendKey(tea.KeyDown)
	}
	require.Equal(h.t, idx, h.model.rowCursor)
	return h
}

// Row returns the row with the given path
func (h *TestHelper) Row(path string) demo.Row {
	h.t.Helper()
	for _, r := range h.model.rows {
		if r.Path == path {
			return r
		}
	}
	h.t.Fatalf("no row %q", path)
	return demo.Row{}
}

// GetModel returns the current model
func (h *TestHelper) GetModel() Model {
	return h.model
}

// GetView returns the rendered view
func (h *TestHelper) GetView() string {
	return h.model.View()
}

// Actor returns the scene actor at index i
func (h *TestHelper) Actor(i int) *demo.Actor {
	return h.model.session.Scene.Objects[i].Target.(*demo.Actor)
}
