package demo

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joshuapare/propkit/inspect/accessor"
	"github.com/joshuapare/propkit/inspect/editor"
	"github.com/joshuapare/propkit/inspect/editors"
	"github.com/joshuapare/propkit/inspect/layout"
	"github.com/joshuapare/propkit/inspect/presenter"
	"github.com/joshuapare/propkit/inspect/undo"
	"github.com/joshuapare/propkit/pkg/value"
)

var (
	// ErrUnknownPath indicates a member path with no leaf editor.
	ErrUnknownPath = errors.New("demo: unknown member path")

	// ErrRejected indicates input the member's editor could not parse.
	ErrRejected = errors.New("demo: input rejected")
)

// DefaultHeight is the panel height of a session without one.
const DefaultHeight = 40

// Options configures a Session. The zero value is usable.
type Options struct {
	Logger    *slog.Logger // Default: the presenter's component logger
	Height    int          // Visible panel rows. Default: DefaultHeight
	UndoLimit int          // Default: undo.DefaultLimit
}

// Session is one inspector over a scene: the panel, the presenter that
// builds editors into it and the undo history its edits are recorded in.
type Session struct {
	Scene     *Scene
	Panel     *layout.Scroll
	Presenter *presenter.Presenter
	History   *undo.History

	keys []string
}

// Open starts a session over scene with nothing selected.
func Open(scene *Scene, opts Options) (*Session, error) {
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	history := undo.New(undo.Options{Limit: opts.UndoLimit})
	panel := layout.NewScroll(opts.Height)
	p, err := presenter.New(panel, presenter.Options{
		Logger:   opts.Logger,
		Undo:     history.Sink(),
		Registry: NewRegistry(),
	})
	if err != nil {
		return nil, fmt.Errorf("open presenter: %w", err)
	}
	return &Session{Scene: scene, Panel: panel, Presenter: p, History: history}, nil
}

// Select inspects the objects with the given keys.
func (s *Session) Select(keys ...string) error {
	targets, err := s.Scene.Lookup(keys...)
	if err != nil {
		return err
	}
	if err := s.Presenter.Select(targets...); err != nil {
		return err
	}
	s.keys = append(s.keys[:0], keys...)
	return nil
}

// Selected returns the keys of the inspected objects.
func (s *Session) Selected() []string {
	return append([]string(nil), s.keys...)
}

// Input types text into the field of the member at path. The edit is written
// by the next Update.
func (s *Session) Input(path, text string) error {
	n := s.Presenter.Find(path)
	if n == nil {
		return fmt.Errorf("%w: %s", ErrUnknownPath, path)
	}
	f := editors.FieldOf(n)
	if f == nil {
		return fmt.Errorf("%w: %s is a group", ErrUnknownPath, path)
	}
	if f.ReadOnly() {
		return fmt.Errorf("%w: %s", accessor.ErrReadOnly, path)
	}
	f.Input(text)
	if msg := f.Error(); msg != "" {
		return fmt.Errorf("%w: %s: %s", ErrRejected, path, msg)
	}
	return nil
}

// Edit is Input followed by Update.
func (s *Session) Edit(path, text string) error {
	if err := s.Input(path, text); err != nil {
		return err
	}
	return s.Update()
}

// Update runs one presenter frame.
func (s *Session) Update() error {
	return s.Presenter.Update()
}

// Undo reverts the newest edit and refreshes the editors.
func (s *Session) Undo() (undo.Entry, error) {
	e, err := s.History.Undo()
	if err != nil {
		return undo.Entry{}, err
	}
	return e, s.Update()
}

// Redo reapplies the newest undone edit and refreshes the editors.
func (s *Session) Redo() (undo.Entry, error) {
	e, err := s.History.Redo()
	if err != nil {
		return undo.Entry{}, err
	}
	return e, s.Update()
}

// Close releases the presenter.
func (s *Session) Close() {
	s.Presenter.Close()
}

// RowKind classifies a rendered row.
type RowKind int

const (
	RowLabel RowKind = iota
	RowHeader
	RowField
)

// Row is one visible line of the inspector.
type Row struct {
	Kind  RowKind
	Depth int

	// Text is the label text, the group title or the field's value.
	Text     string
	Caption  string
	Path     string
	Mixed    bool
	ReadOnly bool
	Error    string
	Group    *layout.Panel
	Field    *layout.Field
}

// Rows lists the visible rows of the panel in order.
func (s *Session) Rows() []Row {
	paths := make(map[*layout.Field]string)
	s.Presenter.Root().Walk(func(n *editor.Node) bool {
		if f := editors.FieldOf(n); f != nil {
			paths[f] = n.Path()
		}
		return true
	})

	var rows []Row
	layout.Walk(s.Panel, func(e layout.Element, depth int) bool {
		switch e := e.(type) {
		case *layout.Panel:
			if e.Title != "" {
				rows = append(rows, Row{Kind: RowHeader, Depth: depth, Text: e.Title, Group: e})
			}
		case *layout.Field:
			rows = append(rows, Row{
				Kind:     RowField,
				Depth:    depth,
				Text:     e.Text(),
				Caption:  e.Caption,
				Path:     paths[e],
				Mixed:    e.Mixed(),
				ReadOnly: e.ReadOnly(),
				Error:    e.Error(),
				Field:    e,
			})
		case *layout.Label:
			rows = append(rows, Row{Kind: RowLabel, Depth: depth, Text: e.Text})
		}
		return true
	})
	return rows
}

// Change is one member that differs between the snapshots of an undo entry.
type Change struct {
	Object string
	Path   string
	Before value.Value
	After  value.Value
}

// Changes lists the leaf members an undo entry changed.
func Changes(e undo.Entry) []Change {
	var out []Change
	for _, i := range e.Changed() {
		name := NameOf(e.Objects[i].Ref())
		diff(name, "", e.Before[i], e.After[i], &out)
	}
	return out
}

func diff(object, path string, before, after value.Value, out *[]Change) {
	if before.Equal(after) {
		return
	}
	if before.Kind() != value.StructKind || after.Kind() != value.StructKind ||
		before.Type() == colorType {
		*out = append(*out, Change{Object: object, Path: path, Before: before, After: after})
		return
	}
	for _, f := range before.Fields() {
		af, _ := after.Field(f.Name)
		diff(object, join(path, f.Name), f.Value, af, out)
	}
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return strings.Join([]string{path, name}, ".")
}
