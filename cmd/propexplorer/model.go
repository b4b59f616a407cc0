package main

import (
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/propkit/cmd/propexplorer/fielddetail"
	"github.com/joshuapare/propkit/inspect/presenter"
	"github.com/joshuapare/propkit/internal/demo"
	"github.com/joshuapare/propkit/internal/logger"
)

// Pane represents which pane is focused
type Pane int

const (
	ObjectPane Pane = iota
	InspectorPane
)

// InputMode represents different input modes
type InputMode int

const (
	NormalMode InputMode = iota
	EditMode
)

// DefaultFPS is the inspector frame rate when PROPKIT_FPS is unset.
const DefaultFPS = 30

// Layout constants
const (
	headerHeight = 2 // title line plus selection line
	statusHeight = 1
	paneChrome   = 3 // border (2) plus title line
)

// Config holds the environment-driven settings of the explorer.
type Config struct {
	DetailMode fielddetail.DisplayMode
	FPS        int
}

// ConfigFromEnv reads PROPKIT_DETAIL_MODE ("modal" or "pane") and
// PROPKIT_FPS.
func ConfigFromEnv() Config {
	cfg := Config{
		DetailMode: fielddetail.ParseMode(os.Getenv("PROPKIT_DETAIL_MODE")),
		FPS:        DefaultFPS,
	}
	if v := os.Getenv("PROPKIT_FPS"); v != "" {
		if fps, err := strconv.Atoi(v); err == nil && fps > 0 {
			cfg.FPS = fps
		} else {
			logger.Warn("ignoring PROPKIT_FPS", "value", v)
		}
	}
	return cfg
}

// Model is the main application model
type Model struct {
	session *demo.Session
	cfg     Config
	keys    KeyMap

	focusedPane Pane
	width       int
	height      int

	// Object list
	objCursor int
	marked    map[int]bool

	// Inspector
	rows      []demo.Row
	rowCursor int
	inspector viewport.Model

	// Field editing
	inputMode InputMode
	input     textinput.Model
	editPath  string

	detail   fielddetail.Model
	showHelp bool

	// Status message for temporary feedback
	statusMessage string

	// Modification events from the presenter
	modified <-chan presenter.ModifiedEvent
	frames   int

	err error
}

// NewModel creates the explorer over scene with nothing inspected.
func NewModel(scene *demo.Scene, cfg Config) (Model, error) {
	if cfg.FPS <= 0 {
		cfg.FPS = DefaultFPS
	}
	s, err := demo.Open(scene, demo.Options{Logger: logger.Component("presenter")})
	if err != nil {
		return Model{}, err
	}

	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 256

	m := Model{
		session:     s,
		cfg:         cfg,
		keys:        DefaultKeyMap(),
		focusedPane: ObjectPane,
		marked:      make(map[int]bool),
		inspector:   viewport.New(0, 0),
		input:       input,
		detail:      fielddetail.New(cfg.DetailMode),
		modified:    s.Presenter.Modified(),
	}
	m.refreshRows()
	return m, nil
}

// Init starts the frame loop and the modification listener
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), waitForModified(m.modified))
}

// Close releases the session
func (m *Model) Close() {
	if m.session != nil {
		m.session.Close()
	}
}

// Messages

// frameMsg drives one presenter frame
type frameMsg time.Time

// modifiedMsg carries a presenter modification event
type modifiedMsg presenter.ModifiedEvent

type clearStatusMsg struct{}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.cfg.FPS), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// waitForModified turns the next event of ch into a message. It yields
// nothing once ch is closed.
func waitForModified(ch <-chan presenter.ModifiedEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return modifiedMsg(ev)
	}
}

// Session returns the inspector session (for testing)
func (m *Model) Session() *demo.Session {
	return m.session
}
