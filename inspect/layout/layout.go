// Package layout is the in-memory element tree that editor nodes bind to.
//
// It models the small slice of a GUI toolkit the inspector engine depends on:
// elements with a parent link, containers that can dispose their children,
// lock their children while being rebuilt and perform layout, and a
// scrollable panel with a persisted offset. Geometry is row based: every
// header, label and field occupies one row.
//
// Renderers walk the tree with Walk; the terminal inspector renders rows with
// lipgloss, tests inspect the tree directly.
package layout

// Element is a node of the layout tree.
type Element interface {
	// Parent returns the containing element, or nil for a detached element.
	Parent() Container

	// SetParent moves the element under p. It does not add the element to
	// p's children; use Container.Add for that.
	SetParent(p Container)

	// Dispose releases the element and its callbacks.
	Dispose()

	// IsDisposed reports whether Dispose has been called.
	IsDisposed() bool

	// Row returns the row assigned by the last PerformLayout.
	Row() int

	setRow(int)
}

// Container is an element with ordered children.
type Container interface {
	Element

	Children() []Element
	Add(e Element)
	Remove(e Element)

	// DisposeChildren disposes and removes every child.
	DisposeChildren()

	// LockChildren suspends layout until the matching UnlockChildren.
	LockChildren()
	UnlockChildren()
	IsLocked() bool

	// PerformLayout assigns rows to the container's descendants.
	PerformLayout()
}

// Scrollable is a container with a persisted vertical offset.
type Scrollable interface {
	Container
	ScrollOffset() float64
	SetScrollOffset(off float64)
}

// NearestScrollable returns the closest scrollable ancestor of e, or e itself
// when it is scrollable. It returns nil when there is none.
func NearestScrollable(e Element) Scrollable {
	for cur := e; cur != nil; {
		if s, ok := cur.(Scrollable); ok {
			return s
		}
		p := cur.Parent()
		if p == nil {
			return nil
		}
		cur = p
	}
	return nil
}

// Walk visits the visible descendants of c in row order. Children of
// collapsed panels are skipped. Returning false from fn stops the walk.
func Walk(c Container, fn func(e Element, depth int) bool) {
	walk(c, 0, fn)
}

func walk(c Container, depth int, fn func(Element, int) bool) bool {
	for _, child := range c.Children() {
		if !fn(child, depth) {
			return false
		}
		sub, ok := child.(Container)
		if !ok {
			continue
		}
		if p, ok := sub.(*Panel); ok && p.Collapsed {
			continue
		}
		next := depth
		if p, ok := sub.(*Panel); ok && p.Title != "" {
			next++
		}
		if !walk(sub, next, fn) {
			return false
		}
	}
	return true
}

// rowsOf counts the rows occupied by e.
func rowsOf(e Element) int {
	c, ok := e.(Container)
	if !ok {
		return 1
	}
	rows := 0
	if p, ok := c.(*Panel); ok {
		if p.Title != "" {
			rows = 1
		}
		if p.Collapsed {
			return rows
		}
	}
	for _, child := range c.Children() {
		rows += rowsOf(child)
	}
	return rows
}

type base struct {
	parent   Container
	disposed bool
	row      int
}

func (b *base) Parent() Container     { return b.parent }
func (b *base) SetParent(p Container) { b.parent = p }
func (b *base) IsDisposed() bool      { return b.disposed }
func (b *base) Row() int              { return b.row }
func (b *base) setRow(r int)          { b.row = r }
