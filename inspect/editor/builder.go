package editor

import (
	"github.com/joshuapare/propkit/inspect/accessor"
	"github.com/joshuapare/propkit/inspect/layout"
	"github.com/joshuapare/propkit/inspect/values"
)

// Builder is handed to Kind.Build. It carries the node under construction and
// the layout container new rows go into.
type Builder struct {
	node   *Node
	layout layout.Container
}

// Node returns the node being built.
func (b *Builder) Node() *Node { return b.node }

// Layout returns the container rows are added to.
func (b *Builder) Layout() layout.Container { return b.layout }

// Values returns the node's container.
func (b *Builder) Values() *values.Container { return b.node.values }

// Member creates, attaches and initializes a child editor bound to acc over
// the node's values. The child builds into a panel of its own.
func (b *Builder) Member(acc accessor.Accessor, kind Kind) (*Node, error) {
	return b.member(b.node.tree.NewNode(kind), acc)
}

// SyncMember is Member for a child that is itself a sync point.
func (b *Builder) SyncMember(acc accessor.Accessor, kind Kind, opts SyncOptions) (*Node, error) {
	return b.member(b.node.tree.NewSyncPoint(kind, opts), acc)
}

// Selection creates a child editor that shares the node's selection
// container. It is how a root hands the selection to the kind that edits it.
func (b *Builder) Selection(kind Kind) (*Node, error) {
	if b.node.values == nil || !b.node.values.IsSelection() {
		return nil, ErrNotSelection
	}
	return b.attach(b.node.tree.NewNode(kind), b.node.values)
}

// Group adds a titled panel and returns a builder for the same node that
// adds into it.
func (b *Builder) Group(title string) *Builder {
	g := layout.NewGroup(title)
	b.layout.Add(g)
	return &Builder{node: b.node, layout: g}
}

// Label adds a text row.
func (b *Builder) Label(text string) *layout.Label {
	l := layout.NewLabel(text)
	b.layout.Add(l)
	return l
}

// Field adds an editable row.
func (b *Builder) Field(caption string) *layout.Field {
	f := layout.NewField(caption)
	b.layout.Add(f)
	return f
}

func (b *Builder) member(child *Node, acc accessor.Accessor) (*Node, error) {
	if b.node.values == nil {
		b.node.tree.release(child.id)
		return nil, ErrNotInitialized
	}
	vals, err := values.New(acc, b.node.values)
	if err != nil {
		b.node.tree.release(child.id)
		b.node.Logger().Warn("editor member unavailable",
			"path", b.node.Path(), "member", acc.Name(), "error", err)
		return nil, err
	}
	return b.attach(child, vals)
}

func (b *Builder) attach(child *Node, vals *values.Container) (*Node, error) {
	panel := layout.NewPanel()
	b.layout.Add(panel)
	b.node.AttachChild(child)

	if err := child.Initialize(b.node.host, panel, vals); err != nil {
		b.node.detach(child)
		child.Cleanup()
		b.node.tree.release(child.id)
		b.layout.Remove(panel)
		panel.Dispose()
		return nil, err
	}
	return child, nil
}
