// Package presenter owns an inspector's selection and the editor tree built
// for it, and drives the per-frame refresh.
//
// Typical use from a host's frame loop:
//
//	p, err := presenter.New(layout.NewScroll(40), presenter.Options{
//		Undo: history.Sink(),
//	})
//	if err != nil {
//		return err
//	}
//	defer p.Close()
//
//	p.Select(&actor)
//	for range frames {
//		if err := p.Update(); err != nil {
//			return err
//		}
//	}
//
// The tree is rebuilt wholesale on every selection change: its shape depends
// on the selected types, and selection changes are rare compared to frames.
package presenter

import (
	"context"
	"errors"
	"log/slog"

	"github.com/joshuapare/propkit/inspect/editor"
	"github.com/joshuapare/propkit/inspect/editors"
	"github.com/joshuapare/propkit/inspect/event"
	"github.com/joshuapare/propkit/inspect/layout"
	"github.com/joshuapare/propkit/inspect/values"
	"github.com/joshuapare/propkit/internal/logger"
	"github.com/joshuapare/propkit/pkg/value"
)

// ErrClosed indicates use of a closed presenter.
var ErrClosed = errors.New("presenter: closed")

// Options configures a Presenter. The zero value is usable.
type Options struct {
	Logger    *slog.Logger      // Default: the package logger tagged component=presenter
	Undo      editor.UndoSink   // Receives one scope per edited frame. Nil disables undo
	UndoLabel string            // Default: editor.DefaultUndoLabel
	Registry  *editors.Registry // Default: editors.NewRegistry()
}

// SelectionEvent is published after the editor tree was rebuilt for a new
// selection. Ctx is cancelled when the next selection arrives.
type SelectionEvent struct {
	Objects []value.Value
	Ctx     context.Context
}

// ModifiedEvent is published after a frame wrote edits through a sync point.
type ModifiedEvent struct {
	Node  *editor.Node
	Paths []string
}

// Presenter binds a selection to an editor tree inside a scroll panel.
//
// The presenter is NOT thread-safe. Call it from the host's UI loop.
type Presenter struct {
	opts  Options
	log   *slog.Logger
	panel layout.Scrollable

	tree      *editor.Tree
	root      *editor.Node
	selection *values.Container

	selected *event.Bus[SelectionEvent]
	modified *event.Bus[ModifiedEvent]
	closed   bool
}

// New returns a presenter with an empty selection built into panel.
func New(panel layout.Scrollable, opts Options) (*Presenter, error) {
	if opts.Logger == nil {
		opts.Logger = logger.Component("presenter")
	}
	if opts.Registry == nil {
		opts.Registry = editors.NewRegistry()
	}

	p := &Presenter{
		opts:      opts,
		log:       opts.Logger,
		panel:     panel,
		tree:      editor.NewTree(),
		selection: values.NewSelection(nil),
		selected:  event.NewBus[SelectionEvent](event.DefaultBuffer),
		modified:  event.NewBus[ModifiedEvent](event.DefaultBuffer),
	}
	p.root = p.tree.NewSyncPoint(opts.Registry.Root(), editor.SyncOptions{Label: opts.UndoLabel})
	if err := p.root.Initialize(p, panel, p.selection); err != nil {
		return nil, err
	}
	return p, nil
}

// Select replaces the selection with objs, usually pointers to structs.
// Reselecting the one object that is already selected does nothing.
func (p *Presenter) Select(objs ...any) error {
	targets := make([]value.Value, len(objs))
	for i, o := range objs {
		targets[i] = value.Ref(o)
	}
	return p.SelectValues(targets)
}

// SelectValues is Select for targets that are already values.
func (p *Presenter) SelectValues(targets []value.Value) error {
	if p.closed {
		return ErrClosed
	}
	if len(targets) == 1 && p.selection.Len() == 1 &&
		targets[0].Kind() == value.RefKind && p.selection.At(0).Equal(targets[0]) {
		return nil
	}
	if err := p.selection.Reset(targets); err != nil {
		return err
	}
	return p.OnSelectionChanged()
}

// Deselect clears the selection.
func (p *Presenter) Deselect() error {
	if p.closed {
		return ErrClosed
	}
	if p.selection.Len() == 0 {
		return nil
	}
	return p.SelectValues(nil)
}

// OnSelectionChanged rebuilds the editor tree for the current selection and
// publishes a SelectionEvent. Unflushed edits of the old tree are dropped.
func (p *Presenter) OnSelectionChanged() error {
	offset := p.panel.ScrollOffset()

	p.panel.LockChildren()
	p.panel.DisposeChildren()
	p.root.Cleanup()
	err := p.root.Initialize(p, p.panel, p.selection)
	p.panel.UnlockChildren()
	p.panel.SetScrollOffset(offset)

	if err != nil {
		p.log.Error("selection build failed", "count", p.selection.Len(), "error", err)
	} else {
		p.log.Debug("selection changed", "count", p.selection.Len(), "nodes", p.tree.Len())
	}

	ctx := p.selected.Next()
	p.selected.Notify(SelectionEvent{Objects: p.selection.Values(), Ctx: ctx})
	return err
}

// Update runs one frame: pending edits are written, grouped into one undo
// scope per sync point, and every editor pulls fresh values. Call it once per
// rendered frame. Only fatal errors are returned; failing members are logged
// and skipped.
func (p *Presenter) Update() error {
	if p.closed {
		return ErrClosed
	}
	if err := p.root.RefreshRoot(); err != nil {
		p.log.Error("inspector update failed", "error", err)
		return err
	}
	return nil
}

// Close drops the editor tree and closes the event subscriptions.
func (p *Presenter) Close() {
	if p.closed {
		return
	}
	p.closed = true
	p.panel.DisposeChildren()
	p.root.Cleanup()
	p.selected.Close()
	p.modified.Close()
}

// SelectionChanged returns a subscription to selection events. Events are
// dropped for a subscriber that has not read the previous one.
func (p *Presenter) SelectionChanged() <-chan SelectionEvent { return p.selected.Subscribe() }

// Modified returns a subscription to modification events.
func (p *Presenter) Modified() <-chan ModifiedEvent { return p.modified.Subscribe() }

// OnSelection registers fn to run synchronously for every selection event.
func (p *Presenter) OnSelection(fn func(SelectionEvent)) { p.selected.Handle(fn) }

// OnModified registers fn to run synchronously for every modification event.
func (p *Presenter) OnModified(fn func(ModifiedEvent)) { p.modified.Handle(fn) }

// Selection returns the selected targets.
func (p *Presenter) Selection() []value.Value { return p.selection.Values() }

// Root returns the root editor.
func (p *Presenter) Root() *editor.Node { return p.root }

// Tree returns the arena of the editor tree.
func (p *Presenter) Tree() *editor.Tree { return p.tree }

// Panel returns the scroll panel the tree is built into.
func (p *Presenter) Panel() layout.Scrollable { return p.panel }

// Find returns the editor bound to a dotted member path, or nil.
func (p *Presenter) Find(path string) *editor.Node { return p.root.Find(path) }

// Logger implements editor.Host.
func (p *Presenter) Logger() *slog.Logger { return p.log }

// UndoSink implements editor.Host.
func (p *Presenter) UndoSink() editor.UndoSink { return p.opts.Undo }

// NotifyModified implements editor.Host.
func (p *Presenter) NotifyModified(n *editor.Node, paths []string) {
	p.log.Debug("modified", "path", n.Path(), "paths", paths)
	p.modified.Notify(ModifiedEvent{Node: n, Paths: paths})
}
