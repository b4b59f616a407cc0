// Package undo records edits made by the inspector as before/after
// snapshots of the edited objects.
//
// Scope protocol:
//  1. Begin(objects, label) - snapshot every object
//  2. [edits are applied to the objects]
//  3. End() - snapshot again and push an Entry when anything changed
//
// Undo restores the before snapshots of the newest applied entry, Redo the
// after snapshots of the oldest undone one. Pushing an entry discards every
// undone entry.
package undo

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/joshuapare/propkit/inspect/editor"
	"github.com/joshuapare/propkit/pkg/value"
)

// DefaultLimit is the number of entries kept when Options.Limit is zero.
const DefaultLimit = 100

var (
	// ErrScopeActive indicates Begin, Undo or Redo while a scope is open.
	ErrScopeActive = errors.New("undo: scope already active")

	// ErrScopeClosed indicates End or Rollback on a finished scope.
	ErrScopeClosed = errors.New("undo: scope already closed")

	// ErrNothingToUndo indicates Undo with no applied entries.
	ErrNothingToUndo = errors.New("undo: nothing to undo")

	// ErrNothingToRedo indicates Redo with no undone entries.
	ErrNothingToRedo = errors.New("undo: nothing to redo")

	// ErrNotRestorable indicates an object the snapshotter cannot write back.
	ErrNotRestorable = errors.New("undo: object cannot be restored")
)

// Snapshotter captures and restores the state of one object.
type Snapshotter interface {
	Snapshot(obj value.Value) (value.Value, error)
	Restore(obj value.Value, snap value.Value) error
}

// ReflectSnapshotter snapshots objects held by pointer, copying the visible
// fields of the pointee. Hidden and unexported fields are not recorded and
// are left alone on restore.
type ReflectSnapshotter struct{}

func (ReflectSnapshotter) Snapshot(obj value.Value) (value.Value, error) {
	rv, err := pointee(obj)
	if err != nil {
		return value.Value{}, err
	}
	return value.FromReflect(rv), nil
}

func (ReflectSnapshotter) Restore(obj value.Value, snap value.Value) error {
	rv, err := pointee(obj)
	if err != nil {
		return err
	}
	return value.Assign(rv, snap)
}

func pointee(obj value.Value) (reflect.Value, error) {
	if obj.Kind() != value.RefKind || obj.IsNil() {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrNotRestorable, obj)
	}
	rv := reflect.ValueOf(obj.Ref())
	if rv.Kind() != reflect.Pointer {
		return reflect.Value{}, fmt.Errorf("%w: %s is not a pointer", ErrNotRestorable, rv.Type())
	}
	return rv.Elem(), nil
}

// Options configures a History. The zero value is usable.
type Options struct {
	Limit       int         // Maximum entries kept. Default: DefaultLimit
	Snapshotter Snapshotter // Default: ReflectSnapshotter
}

// Entry is one recorded edit.
type Entry struct {
	Label   string
	Objects []value.Value
	Before  []value.Value
	After   []value.Value
	Time    time.Time
}

// Changed returns the indices of the objects whose snapshots differ.
func (e Entry) Changed() []int {
	var out []int
	for i := range e.Objects {
		if !e.Before[i].Equal(e.After[i]) {
			out = append(out, i)
		}
	}
	return out
}

// History is a bounded undo/redo stack.
//
// History is NOT thread-safe. Only one goroutine should use it at a time.
type History struct {
	opts    Options
	entries []Entry
	applied int // entries[:applied] can be undone, the rest redone
	open    *Scope
}

// New returns an empty history.
func New(opts Options) *History {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Snapshotter == nil {
		opts.Snapshotter = ReflectSnapshotter{}
	}
	return &History{opts: opts}
}

// Begin snapshots objects and opens a scope. Only one scope may be open.
func (h *History) Begin(objects []value.Value, label string) (*Scope, error) {
	if h.open != nil {
		return nil, ErrScopeActive
	}
	before, err := h.snapshot(objects)
	if err != nil {
		return nil, fmt.Errorf("begin %q: %w", label, err)
	}
	h.open = &Scope{
		h:       h,
		label:   label,
		objects: append([]value.Value(nil), objects...),
		before:  before,
	}
	return h.open, nil
}

// Sink adapts h to the editor's undo sink.
func (h *History) Sink() editor.UndoSink { return sink{h} }

type sink struct{ h *History }

func (s sink) Begin(objects []value.Value, label string) (editor.UndoScope, error) {
	sc, err := s.h.Begin(objects, label)
	if err != nil {
		return nil, err
	}
	return sc, nil
}

// Undo restores the newest applied entry and returns it.
func (h *History) Undo() (Entry, error) {
	if h.open != nil {
		return Entry{}, ErrScopeActive
	}
	if h.applied == 0 {
		return Entry{}, ErrNothingToUndo
	}
	e := h.entries[h.applied-1]
	if err := h.restore(e.Objects, e.Before); err != nil {
		return Entry{}, fmt.Errorf("undo %q: %w", e.Label, err)
	}
	h.applied--
	return e, nil
}

// Redo reapplies the oldest undone entry and returns it.
func (h *History) Redo() (Entry, error) {
	if h.open != nil {
		return Entry{}, ErrScopeActive
	}
	if h.applied == len(h.entries) {
		return Entry{}, ErrNothingToRedo
	}
	e := h.entries[h.applied]
	if err := h.restore(e.Objects, e.After); err != nil {
		return Entry{}, fmt.Errorf("redo %q: %w", e.Label, err)
	}
	h.applied++
	return e, nil
}

func (h *History) CanUndo() bool { return h.open == nil && h.applied > 0 }
func (h *History) CanRedo() bool { return h.open == nil && h.applied < len(h.entries) }

// Len returns the number of entries, undone ones included.
func (h *History) Len() int { return len(h.entries) }

// Applied returns the number of entries that can be undone.
func (h *History) Applied() int { return h.applied }

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Clear drops every entry. An open scope stays open.
func (h *History) Clear() {
	h.entries = nil
	h.applied = 0
}

// InScope reports whether a scope is open.
func (h *History) InScope() bool { return h.open != nil }

func (h *History) push(e Entry) {
	h.entries = append(h.entries[:h.applied], e)
	if over := len(h.entries) - h.opts.Limit; over > 0 {
		h.entries = append(h.entries[:0], h.entries[over:]...)
	}
	h.applied = len(h.entries)
}

func (h *History) snapshot(objects []value.Value) ([]value.Value, error) {
	out := make([]value.Value, len(objects))
	for i, obj := range objects {
		snap, err := h.opts.Snapshotter.Snapshot(obj)
		if err != nil {
			return nil, fmt.Errorf("snapshot object %d: %w", i, err)
		}
		out[i] = snap
	}
	return out, nil
}

func (h *History) restore(objects, snaps []value.Value) error {
	for i, obj := range objects {
		if err := h.opts.Snapshotter.Restore(obj, snaps[i]); err != nil {
			return fmt.Errorf("restore object %d: %w", i, err)
		}
	}
	return nil
}

// Scope is an open undo transaction.
type Scope struct {
	h       *History
	label   string
	objects []value.Value
	before  []value.Value
	done    bool
}

// End snapshots the objects again and records an entry when any of them
// changed. A scope without changes leaves the history untouched.
func (s *Scope) End() error {
	if s.done {
		return ErrScopeClosed
	}
	s.done = true
	s.h.open = nil

	after, err := s.h.snapshot(s.objects)
	if err != nil {
		return fmt.Errorf("end %q: %w", s.label, err)
	}
	e := Entry{
		Label:   s.label,
		Objects: s.objects,
		Before:  s.before,
		After:   after,
		Time:    time.Now(),
	}
	if len(e.Changed()) == 0 {
		return nil
	}
	s.h.push(e)
	return nil
}

// Rollback restores the before snapshots and closes the scope without
// recording anything.
func (s *Scope) Rollback() error {
	if s.done {
		return ErrScopeClosed
	}
	s.done = true
	s.h.open = nil
	return s.h.restore(s.objects, s.before)
}
