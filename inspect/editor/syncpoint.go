package editor

import (
	"errors"
	"fmt"

	"github.com/joshuapare/propkit/inspect/dirty"
	"github.com/joshuapare/propkit/pkg/value"
)

// DefaultUndoLabel names undo entries of sync points without a label.
const DefaultUndoLabel = "Edit"

// SyncOptions configures a sync point.
type SyncOptions struct {
	// Sink opens the undo scope. When nil the host's sink is used; with
	// neither, edits are written without undo.
	Sink UndoSink

	// Objects returns the instances an undo snapshot covers. The default is
	// the nearest container at or above the node that holds references or
	// the selection.
	Objects func(n *Node) []value.Value

	// Label names the undo entry.
	Label string
}

// syncPoint is the state a Node carries when it is an undo boundary.
//
// States are Clean and Dirty. Any OnDirty reaching the node makes it Dirty;
// the next refresh takes the flag and resets it before running, so an edit
// made during that refresh is picked up by the following frame.
type syncPoint struct {
	opts  SyncOptions
	dirty bool
	paths *dirty.Tracker
}

func newSyncPoint(opts SyncOptions) *syncPoint {
	return &syncPoint{opts: opts, paths: dirty.NewTracker()}
}

func (s *syncPoint) markDirty(path string) {
	s.dirty = true
	s.paths.Add(path)
}

func (s *syncPoint) reset() {
	s.dirty = false
	s.paths.Reset()
}

// run executes body as the refresh of n. At most one undo scope is opened
// per call no matter how many edits were collected.
func (s *syncPoint) run(n *Node, body func() error) error {
	wasDirty := s.dirty
	paths := s.paths.Drain()
	s.dirty = false
	if !wasDirty {
		return body()
	}

	host := n.host
	var err error
	if sink := s.sink(host); sink != nil {
		err = s.wrap(n, sink, body)
	} else {
		err = body()
	}
	if host != nil {
		host.NotifyModified(n, paths)
	}
	return err
}

// wrap runs body inside one undo scope. A sink that fails to open a scope
// does not stop the edits; the failure is reported after they were applied.
func (s *syncPoint) wrap(n *Node, sink UndoSink, body func() error) error {
	scope, err := sink.Begin(s.objects(n), s.label())
	if err != nil {
		return errors.Join(body(), fmt.Errorf("%w: begin: %w", ErrUndo, err))
	}
	bodyErr := body()
	if err := scope.End(); err != nil {
		return errors.Join(bodyErr, fmt.Errorf("%w: end: %w", ErrUndo, err))
	}
	return bodyErr
}

func (s *syncPoint) sink(host Host) UndoSink {
	if s.opts.Sink != nil {
		return s.opts.Sink
	}
	if host != nil {
		return host.UndoSink()
	}
	return nil
}

func (s *syncPoint) label() string {
	if s.opts.Label != "" {
		return s.opts.Label
	}
	return DefaultUndoLabel
}

func (s *syncPoint) objects(n *Node) []value.Value {
	if s.opts.Objects != nil {
		return s.opts.Objects(n)
	}
	return UndoObjects(n)
}

// UndoObjects returns the default undo objects of n: the entries of the
// nearest container at or above n that is the selection or holds
// references. Value-typed members are covered by the objects that own them.
func UndoObjects(n *Node) []value.Value {
	for cur := n; cur != nil; cur = cur.Parent() {
		if c := cur.values; c != nil && (c.IsSelection() || holdsRefs(c)) {
			return c.Values()
		}
	}
	if n.values != nil {
		return n.values.Values()
	}
	return nil
}
