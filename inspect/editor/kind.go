package editor

import (
	"log/slog"

	"github.com/joshuapare/propkit/pkg/value"
)

// Kind is the capability set of one kind of editor. A Kind value is shared
// by every node it is attached to unless the kind keeps per-node state, in
// which case a fresh value is created per node (see editors.Registry).
type Kind interface {
	// Build composes n's layout and creates its child editors through b.
	// It runs with SetValue blocked.
	Build(b *Builder) error

	// Refresh pushes n's current values into widget state. It runs once per
	// frame with SetValue blocked, after n's values were pulled or written.
	Refresh(n *Node) error
}

// DirtyHandler overrides the default OnDirty behavior of forwarding to the
// parent and accepting the edit.
type DirtyHandler interface {
	OnDirty(n, editor *Node, v value.Value) bool
}

// ChildSyncer overrides how a node absorbs a descendant write. The default
// writes n's entries into its parent's entries through n's accessor.
type ChildSyncer interface {
	SyncChildValues(n, child *Node) error
}

// Cleaner is notified when a node is cleaned up so a kind can drop widget
// references it keeps outside the layout tree.
type Cleaner interface {
	Cleanup(n *Node)
}

// UndoSink opens undo scopes. A scope snapshots objects when it begins and
// again when it ends.
type UndoSink interface {
	Begin(objects []value.Value, label string) (UndoScope, error)
}

// UndoScope is an open undo transaction.
type UndoScope interface {
	End() error
}

// Host is the owner of an editor tree, usually a presenter.
type Host interface {
	Logger() *slog.Logger

	// UndoSink returns the default sink for sync points, or nil.
	UndoSink() UndoSink

	// NotifyModified is called after a dirty sync point refreshed. paths are
	// the coalesced member paths edited below it.
	NotifyModified(n *Node, paths []string)
}
