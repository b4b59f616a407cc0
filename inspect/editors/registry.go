// Package editors provides the stock editor kinds and the registry that picks
// one for each inspected member.
//
// Lookup order is the member's concrete Go type name, then its value kind,
// then a read-only display. Hosts register their own kinds for specific
// types to customize the inspector:
//
//	reg := editors.NewRegistry()
//	reg.Register("game.Color", func(r *editors.Registry, m accessor.Member) editor.Kind {
//		return newColorPicker(m)
//	})
package editors

import (
	"github.com/joshuapare/propkit/inspect/accessor"
	"github.com/joshuapare/propkit/inspect/editor"
	"github.com/joshuapare/propkit/pkg/value"
)

// Factory creates the kind for one node bound to m. Kinds returned by the
// stock factories keep per-node widget state, so a factory must return a new
// value on every call.
type Factory func(r *Registry, m accessor.Member) editor.Kind

// Registry maps members to editor kinds.
type Registry struct {
	byType map[string]Factory
	byKind map[value.Kind]Factory

	// MaxDepth bounds how deep objects nest; reference cycles stop there.
	MaxDepth int
}

// DefaultMaxDepth is the nesting limit of a new registry.
const DefaultMaxDepth = 8

// NewRegistry returns a registry with the stock kinds registered.
func NewRegistry() *Registry {
	r := &Registry{
		byType:   make(map[string]Factory),
		byKind:   make(map[value.Kind]Factory),
		MaxDepth: DefaultMaxDepth,
	}
	r.RegisterKind(value.BoolKind, func(_ *Registry, m accessor.Member) editor.Kind { return NewToggle(m) })
	r.RegisterKind(value.IntKind, func(_ *Registry, m accessor.Member) editor.Kind { return NewNumber(m) })
	r.RegisterKind(value.FloatKind, func(_ *Registry, m accessor.Member) editor.Kind { return NewNumber(m) })
	r.RegisterKind(value.StringKind, func(_ *Registry, m accessor.Member) editor.Kind { return NewText(m) })
	r.RegisterKind(value.EnumKind, func(_ *Registry, m accessor.Member) editor.Kind { return NewEnum(m) })
	r.RegisterKind(value.StructKind, func(r *Registry, m accessor.Member) editor.Kind { return NewObject(r, m) })
	r.RegisterKind(value.RefKind, func(r *Registry, m accessor.Member) editor.Kind { return NewObject(r, m) })
	return r
}

// Register binds a factory to a Go type name such as "main.Color" or
// "*main.Actor". It takes precedence over kind factories.
func (r *Registry) Register(typ string, f Factory) {
	r.byType[typ] = f
}

// RegisterKind binds a factory to a value kind.
func (r *Registry) RegisterKind(k value.Kind, f Factory) {
	r.byKind[k] = f
}

// For returns a new kind for m.
func (r *Registry) For(m accessor.Member) editor.Kind {
	if f, ok := r.byType[m.Type]; ok {
		return f(r, m)
	}
	if f, ok := r.byKind[m.Kind]; ok {
		return f(r, m)
	}
	return NewDisplay(m)
}

// Selection returns the kind that edits a whole selection.
func (r *Registry) Selection() editor.Kind {
	return NewObject(r, accessor.Member{})
}
