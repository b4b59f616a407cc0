package editors

import (
	"fmt"
	"strings"

	"github.com/joshuapare/propkit/inspect/accessor"
	"github.com/joshuapare/propkit/inspect/editor"
	"github.com/joshuapare/propkit/inspect/values"
)

// NothingSelected is the label of an object editor over an empty selection.
const NothingSelected = "(nothing selected)"

// Object edits a struct or reference member, or a whole selection, with one
// child editor per member shared by every target. Members edited by a nested
// object get a titled group.
//
// The layout depends on the targets' types and on which references are nil.
// When either changes, Refresh asks for a rebuild.
type Object struct {
	reg    *Registry
	member accessor.Member
	shape  string
}

// NewObject returns an object kind for m. The zero Member stands for the
// selection itself.
func NewObject(r *Registry, m accessor.Member) *Object {
	return &Object{reg: r, member: m}
}

func (k *Object) Build(b *editor.Builder) error {
	n := b.Node()
	vals := n.Values()
	k.shape = shapeOf(vals)

	if depth(n) >= k.reg.MaxDepth {
		b.Label("...")
		return nil
	}

	if n.Member() == nil && vals.Len() > 1 {
		b.Label(fmt.Sprintf("%d objects selected", vals.Len()))
	}

	members := accessor.CommonMembers(vals.Values())
	if len(members) == 0 {
		b.Label(summary(vals))
		return nil
	}

	for _, m := range members {
		if k.member.ReadOnly {
			m.ReadOnly = true
		}
		kind := k.reg.For(m)
		into := b
		_, grouped := kind.(*Object)
		if grouped {
			into = b.Group(m.Label)
		}
		if _, err := into.Member(m.Accessor, kind); err != nil {
			// One unreadable member must not hide the others.
			n.Logger().Debug("member skipped", "path", n.Path(), "member", m.Name, "error", err)
			if grouped {
				b.Layout().Remove(into.Layout())
			}
		}
	}
	return nil
}

func (k *Object) Refresh(n *editor.Node) error {
	if shapeOf(n.Values()) != k.shape {
		n.RebuildLayoutOnRefresh()
	}
	return nil
}

// Member returns the member the object edits; zero for a selection.
func (k *Object) Member() accessor.Member { return k.member }

// shapeOf summarizes what decides an object's layout: the count, the type of
// every entry and which references are nil.
func shapeOf(vals *values.Container) string {
	var b strings.Builder
	for i := 0; i < vals.Len(); i++ {
		v := vals.At(i)
		b.WriteString(v.Type())
		if v.IsNil() {
			b.WriteString("(nil)")
		}
		b.WriteByte('|')
	}
	return b.String()
}

func summary(vals *values.Container) string {
	switch {
	case vals.Len() == 0:
		return NothingSelected
	case vals.HasDifferentValues():
		return MixedText
	}
	return vals.At(0).String()
}

func depth(n *editor.Node) int {
	d := 0
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur.Member() != nil {
			d++
		}
	}
	return d
}

// Root returns the kind of a presenter's root node: it hands the selection
// to the registry's selection kind.
func (r *Registry) Root() editor.Kind { return rootKind{r} }

type rootKind struct{ r *Registry }

func (k rootKind) Build(b *editor.Builder) error {
	_, err := b.Selection(k.r.Selection())
	return err
}

func (rootKind) Refresh(*editor.Node) error { return nil }
