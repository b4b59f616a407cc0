// Package editor implements the editor node tree: the binding between a value
// container, a layout subtree and the kind that renders it.
//
// Every frame the host calls RefreshRoot on the root node. The pass walks the
// tree top-down; each node either pulls fresh values from its parent's
// container or, when a widget latched an edit through SetValue, writes the
// pending value into every selected target. Writes are pushed into the cached
// entries of value-typed ancestors so no ancestor reads a stale copy back.
// Sync point nodes wrap their whole pass in one undo scope whenever a
// descendant edit reached them since the previous frame.
//
// Kinds are attached through the Kind interface and receive a Builder while
// the node is being initialized; there is no package-level construction
// state.
package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/joshuapare/propkit/inspect/accessor"
	"github.com/joshuapare/propkit/inspect/layout"
	"github.com/joshuapare/propkit/inspect/values"
	"github.com/joshuapare/propkit/internal/logger"
	"github.com/joshuapare/propkit/pkg/value"
)

// Node is one editor in the tree. Nodes are allocated by a Tree and refer to
// each other by ID.
type Node struct {
	tree *Tree
	id   ID
	kind Kind

	host     Host
	layout   layout.Container
	parent   ID
	children []ID
	values   *values.Container

	initialized   bool
	setBlocked    bool
	pending       value.Value
	hasPending    bool
	rebuildQueued bool

	sync *syncPoint
}

// Initialize binds the node and builds its layout. Build runs with SetValue
// blocked and is followed by one immediate Refresh of the node.
func (n *Node) Initialize(host Host, lay layout.Container, vals *values.Container) error {
	if lay == nil {
		return ErrNoLayout
	}
	n.host = host
	n.layout = lay
	n.values = vals
	n.initialized = true

	n.setBlocked = true
	defer func() { n.setBlocked = false }()

	if err := n.kind.Build(&Builder{node: n, layout: lay}); err != nil {
		return fmt.Errorf("build %q: %w", n.Path(), err)
	}
	return n.kind.Refresh(n)
}

// AttachChild appends child to n's children. Children are refreshed in the
// order they were attached.
func (n *Node) AttachChild(child *Node) {
	if child.tree != n.tree {
		panic("editor: child belongs to another tree")
	}
	child.parent = n.id
	n.children = append(n.children, child.id)
}

// Cleanup releases every child, child-first, and clears the node's bindings.
// Pending writes are dropped. Calling Cleanup twice is safe.
func (n *Node) Cleanup() {
	for _, id := range n.children {
		if c := n.tree.Get(id); c != nil {
			c.Cleanup()
			n.tree.release(id)
		}
	}
	n.children = nil

	if c, ok := n.kind.(Cleaner); ok && n.initialized {
		c.Cleanup(n)
	}

	n.host = nil
	n.layout = nil
	n.parent = NoID
	n.values = nil
	n.pending = value.Value{}
	n.hasPending = false
	n.rebuildQueued = false
	n.initialized = false
	if n.sync != nil {
		n.sync.reset()
	}
}

// RebuildLayout tears the node down and builds it again in place. The node
// keeps its ID, parent and values, and the nearest scroll panel keeps its
// offset.
func (n *Node) RebuildLayout() error {
	if !n.initialized {
		return ErrNotInitialized
	}

	vals, host, lay, parent := n.values, n.host, n.layout, n.parent
	scroll := layout.NearestScrollable(lay)
	var offset float64
	if scroll != nil {
		offset = scroll.ScrollOffset()
	}

	lay.LockChildren()
	lay.DisposeChildren()
	n.Cleanup()
	n.parent = parent

	err := n.Initialize(host, lay, vals)
	lay.UnlockChildren()
	if scroll != nil {
		scroll.SetScrollOffset(offset)
	}
	return err
}

// RebuildLayoutOnRefresh queues a RebuildLayout. It runs during the node's
// next refresh, after its Refresh hook and before its children refresh, so a
// kind may call it from inside Refresh.
func (n *Node) RebuildLayoutOnRefresh() {
	n.rebuildQueued = true
}

// RefreshRoot runs one frame over the tree rooted at n. Errors raised by a
// subtree are logged and only abort that subtree; fatal errors such as a
// count mismatch or an undo sink failure are returned.
func (n *Node) RefreshRoot() error {
	if !n.initialized {
		return ErrNotInitialized
	}
	if n.parent != NoID {
		return ErrNotRoot
	}
	err := n.pass(nil, (*Node).RefreshRootChild)
	if err != nil && !isFatal(err) {
		n.logFailure(n, err)
		return nil
	}
	return err
}

// RefreshRootChild refreshes a direct child of the root. Children that share
// the root's selection have nothing to pull and only run their hook before
// descending.
func (n *Node) RefreshRootChild() error {
	if !n.initialized {
		return ErrNotInitialized
	}
	if p := n.Parent(); p == nil || p.parent != NoID {
		return ErrNotRoot
	}
	if n.values != nil && !n.values.IsSelection() {
		return n.RefreshInternal()
	}
	return n.pass(nil, (*Node).RefreshInternal)
}

// RefreshInternal is the per-frame step of a non-root node: write the pending
// edit or pull fresh values, run the Refresh hook, then refresh children.
func (n *Node) RefreshInternal() error {
	if !n.initialized {
		return ErrNotInitialized
	}
	parent := n.Parent()
	if parent == nil {
		return ErrDetached
	}
	return n.pass(func() error { return n.updateValues(parent) }, (*Node).RefreshInternal)
}

// pass runs update, the hook and the children of n, inside the undo scope
// of n when n is a sync point.
func (n *Node) pass(update func() error, step func(*Node) error) error {
	body := func() error {
		if update != nil {
			if err := update(); err != nil {
				return err
			}
		}
		if err := n.refreshHook(); err != nil {
			return err
		}
		if n.rebuildQueued {
			n.rebuildQueued = false
			if err := n.RebuildLayout(); err != nil {
				return err
			}
		}
		return n.refreshChildren(step)
	}
	if n.sync != nil {
		return n.sync.run(n, body)
	}
	return body()
}

func (n *Node) updateValues(parent *Node) error {
	if n.values == nil {
		return nil
	}
	if parent.values == nil {
		return ErrDetached
	}
	if !n.hasPending {
		return n.values.Refresh(parent.values)
	}

	v := n.pending
	n.pending, n.hasPending = value.Value{}, false
	if err := n.values.Set(parent.values, v); err != nil {
		return err
	}
	return n.propagateUp()
}

// propagateUp pushes a fresh write through the cached entries of value-typed
// ancestors. Ancestors holding references were mutated in place and stop the
// walk, as does the selection.
func (n *Node) propagateUp() error {
	for child := n; ; {
		a := child.Parent()
		if a == nil || a.values == nil || a.values.IsSelection() || holdsRefs(a.values) {
			return nil
		}
		if err := a.SyncChildValues(child); err != nil {
			return err
		}
		child = a
	}
}

func holdsRefs(c *values.Container) bool {
	for i := 0; i < c.Len(); i++ {
		if c.At(i).Kind() != value.RefKind {
			return false
		}
	}
	return c.Len() > 0
}

func (n *Node) refreshHook() error {
	n.setBlocked = true
	defer func() { n.setBlocked = false }()
	return n.kind.Refresh(n)
}

func (n *Node) refreshChildren(step func(*Node) error) error {
	for _, id := range slices.Clone(n.children) {
		c := n.tree.Get(id)
		if c == nil {
			continue
		}
		if err := step(c); err != nil {
			if isFatal(err) {
				return err
			}
			n.logFailure(c, err)
		}
	}
	return nil
}

func (n *Node) logFailure(at *Node, err error) {
	attrs := []any{"path", at.Path(), "error", err}
	var ae *values.AccessorError
	if errors.As(err, &ae) {
		attrs = append(attrs, "member", ae.Member, "index", ae.Index)
	}
	n.Logger().Warn("editor refresh aborted", attrs...)
}

// SetValue latches v as the node's pending write. It is a no-op while the
// node is refreshing, which keeps widget callbacks raised by Refresh from
// coming back as edits. The write happens during the next refresh; a second
// SetValue before then replaces the first.
func (n *Node) SetValue(v value.Value) {
	if n.setBlocked || n.values == nil || n.values.IsSelection() {
		return
	}
	if n.OnDirty(n, v) {
		n.pending, n.hasPending = v, true
	}
}

// OnDirty is raised on n when editor, n or one of its descendants, wants to
// write v. The return value decides whether n itself latches the edit.
//
// A sync point records the edit and stops the bubbling. Kinds implementing
// DirtyHandler decide for themselves; everything else uses DefaultOnDirty.
func (n *Node) OnDirty(editor *Node, v value.Value) bool {
	if n.sync != nil {
		n.sync.markDirty(editor.Path())
		return editor == n
	}
	if h, ok := n.kind.(DirtyHandler); ok {
		return h.OnDirty(n, editor, v)
	}
	return n.DefaultOnDirty(editor, v)
}

// DefaultOnDirty forwards the edit to the parent and accepts it.
func (n *Node) DefaultOnDirty(editor *Node, v value.Value) bool {
	if p := n.Parent(); p != nil {
		p.OnDirty(editor, v)
	}
	return true
}

// SyncChildValues absorbs a write that child just made into n's entries.
func (n *Node) SyncChildValues(child *Node) error {
	if s, ok := n.kind.(ChildSyncer); ok {
		return s.SyncChildValues(n, child)
	}
	return n.DefaultSyncChildValues(child)
}

// DefaultSyncChildValues writes n's entries, which already hold the child's
// write, into the entries of n's parent through n's accessor.
func (n *Node) DefaultSyncChildValues(child *Node) error {
	p := n.Parent()
	if p == nil || p.values == nil || n.values == nil || n.values.IsSelection() {
		return nil
	}
	return n.values.SetEach(p.values)
}

// ID returns the node's handle in its tree.
func (n *Node) ID() ID { return n.id }

// Tree returns the arena that owns the node.
func (n *Node) Tree() *Tree { return n.tree }

// Kind returns the node's kind.
func (n *Node) Kind() Kind { return n.kind }

// Parent returns the parent node, or nil for a root or a cleaned up node.
func (n *Node) Parent() *Node { return n.tree.Get(n.parent) }

// Children returns the live children in refresh order.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.children))
	for _, id := range n.children {
		if c := n.tree.Get(id); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Values returns the node's container, or nil after Cleanup.
func (n *Node) Values() *values.Container { return n.values }

// Layout returns the container the node builds into.
func (n *Node) Layout() layout.Container { return n.layout }

// Host returns the node's host, or nil after Cleanup.
func (n *Node) Host() Host { return n.host }

// Member returns the accessor the node is bound through, or nil.
func (n *Node) Member() accessor.Accessor {
	if n.values == nil {
		return nil
	}
	return n.values.Accessor()
}

func (n *Node) IsInitialized() bool { return n.initialized }
func (n *Node) IsSetBlocked() bool  { return n.setBlocked }
func (n *Node) IsRoot() bool        { return n.initialized && n.parent == NoID }
func (n *Node) IsSyncPoint() bool   { return n.sync != nil }

// IsDirty reports whether a sync point has unflushed descendant edits.
func (n *Node) IsDirty() bool { return n.sync != nil && n.sync.dirty }

// Pending returns the latched write, if any.
func (n *Node) Pending() (value.Value, bool) { return n.pending, n.hasPending }

// Logger returns the host's logger, falling back to the package logger.
func (n *Node) Logger() *slog.Logger {
	if n.host != nil {
		if l := n.host.Logger(); l != nil {
			return l
		}
	}
	return logger.L
}

// Path returns the dotted member path from the selection to n, for example
// "Transform.Position.X". Nodes bound to the selection contribute nothing.
func (n *Node) Path() string {
	var parts []string
	for cur := n; cur != nil; cur = cur.Parent() {
		if acc := cur.Member(); acc != nil {
			parts = append(parts, acc.Name())
		}
	}
	slices.Reverse(parts)
	return strings.Join(parts, ".")
}

// Find returns the first descendant of n, in refresh order, whose Path is
// path.
func (n *Node) Find(path string) *Node {
	for _, c := range n.Children() {
		if c.Member() != nil && c.Path() == path {
			return c
		}
		if found := c.Find(path); found != nil {
			return found
		}
	}
	return nil
}

// Walk calls fn for n and its descendants, parents first. Returning false
// skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		c.Walk(fn)
	}
}

func (n *Node) detach(child *Node) {
	n.children = slices.DeleteFunc(n.children, func(id ID) bool { return id == child.id })
	child.parent = NoID
}
