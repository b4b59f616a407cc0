package editors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/propkit/inspect/accessor"
	"github.com/joshuapare/propkit/inspect/editor"
	"github.com/joshuapare/propkit/inspect/layout"
	"github.com/joshuapare/propkit/pkg/value"
)

// MixedText is shown by a leaf whose selected targets disagree.
const MixedText = "(mixed)"

// ErrInvalidInput indicates text a leaf could not parse.
var ErrInvalidInput = errors.New("editors: invalid input")

// Leaf edits a scalar member through one field row. Typed edits arrive as
// field input, are parsed against the current value and latched with
// SetValue; Refresh writes the formatted value back into the field.
type Leaf struct {
	caption  string
	readOnly bool
	format   func(value.Value) string
	parse    func(text string, cur value.Value) (value.Value, error)

	field *layout.Field
}

// FieldOf returns the field row of a leaf node, or nil.
func FieldOf(n *editor.Node) *layout.Field {
	if l, ok := n.Kind().(*Leaf); ok {
		return l.field
	}
	return nil
}

func (k *Leaf) Build(b *editor.Builder) error {
	n := b.Node()
	k.field = b.Field(k.caption)
	k.field.SetReadOnly(k.readOnly)
	k.field.OnChange(func(text string) {
		if n.IsSetBlocked() {
			return
		}
		v, err := k.parse(text, n.Values().At(0))
		if err != nil {
			k.field.SetError(err.Error())
			return
		}
		k.field.SetError("")
		n.SetValue(v)
	})
	return nil
}

func (k *Leaf) Refresh(n *editor.Node) error {
	vals := n.Values()
	switch {
	case vals.Len() == 0:
		k.field.SetText("")
	case vals.HasDifferentValues():
		k.field.SetText(MixedText)
		k.field.SetMixed(true)
	default:
		k.field.SetText(k.format(vals.At(0)))
	}
	return nil
}

// OnDirty rejects edits of read-only members before anything is latched.
func (k *Leaf) OnDirty(n, ed *editor.Node, v value.Value) bool {
	if k.readOnly {
		return false
	}
	return n.DefaultOnDirty(ed, v)
}

func (k *Leaf) Cleanup(*editor.Node) { k.field = nil }

// Field returns the leaf's field row.
func (k *Leaf) Field() *layout.Field { return k.field }

// ReadOnly reports whether the leaf rejects edits.
func (k *Leaf) ReadOnly() bool { return k.readOnly }

func newLeaf(m accessor.Member) *Leaf {
	return &Leaf{caption: caption(m), readOnly: m.ReadOnly, format: value.Value.String}
}

func caption(m accessor.Member) string {
	if m.Label != "" {
		return m.Label
	}
	return accessor.Label(m.Name)
}

// NewLeaf returns a leaf with custom formatting and parsing, for types a
// host wants on one row instead of a group, such as colors.
func NewLeaf(m accessor.Member, format func(value.Value) string,
	parse func(text string, cur value.Value) (value.Value, error),
) *Leaf {
	k := newLeaf(m)
	k.format = format
	k.parse = parse
	return k
}

// NewToggle edits a bool member.
func NewToggle(m accessor.Member) *Leaf {
	k := newLeaf(m)
	k.parse = func(text string, cur value.Value) (value.Value, error) {
		b, err := strconv.ParseBool(strings.TrimSpace(text))
		if err != nil {
			return value.Value{}, fmt.Errorf("%w: %q is not a bool", ErrInvalidInput, text)
		}
		return value.Bool(b).Typed(cur.Type()), nil
	}
	return k
}

// NewNumber edits an int or float member. Integer members reject fractions
// and unsigned members reject signs.
func NewNumber(m accessor.Member) *Leaf {
	k := newLeaf(m)
	k.parse = func(text string, cur value.Value) (value.Value, error) {
		text = strings.TrimSpace(text)
		if cur.IsUnsigned() {
			u, err := strconv.ParseUint(text, 10, 64)
			if err != nil {
				return value.Value{}, fmt.Errorf("%w: %q is not an unsigned integer", ErrInvalidInput, text)
			}
			return value.Uint(u).Typed(cur.Type()), nil
		}
		if cur.Kind() == value.IntKind {
			i, err := strconv.ParseInt(text, 10, 64)
			if err != nil {
				return value.Value{}, fmt.Errorf("%w: %q is not an integer", ErrInvalidInput, text)
			}
			return value.Int(i).Typed(cur.Type()), nil
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return value.Value{}, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, text)
		}
		return value.Float(f).Typed(cur.Type()), nil
	}
	return k
}

// NewText edits a string member.
func NewText(m accessor.Member) *Leaf {
	k := newLeaf(m)
	k.parse = func(text string, cur value.Value) (value.Value, error) {
		return value.String(text).Typed(cur.Type()), nil
	}
	return k
}

// NewEnum edits an enum member. Input is a symbol, matched without regard
// to case, or an ordinal.
func NewEnum(m accessor.Member) *Leaf {
	k := newLeaf(m)
	k.parse = func(text string, cur value.Value) (value.Value, error) {
		text = strings.TrimSpace(text)
		for i, sym := range cur.Symbols() {
			if strings.EqualFold(sym, text) {
				return cur.WithOrdinal(int64(i))
			}
		}
		ord, err := strconv.ParseInt(text, 10, 64)
		if err != nil || ord < 0 || (len(cur.Symbols()) > 0 && ord >= int64(len(cur.Symbols()))) {
			return value.Value{}, fmt.Errorf("%w: %q is not one of %s", ErrInvalidInput, text,
				strings.Join(cur.Symbols(), ", "))
		}
		return cur.WithOrdinal(ord)
	}
	return k
}

// NewDisplay shows a member it cannot edit.
func NewDisplay(m accessor.Member) *Leaf {
	k := newLeaf(m)
	k.readOnly = true
	k.parse = func(string, value.Value) (value.Value, error) {
		return value.Value{}, fmt.Errorf("%w: %s is read-only", ErrInvalidInput, m.Name)
	}
	return k
}

// Cycle returns the enum symbol after cur, wrapping around. Hosts bind it to
// a key so enums can be stepped without typing.
func Cycle(cur value.Value, step int) (value.Value, error) {
	n := int64(len(cur.Symbols()))
	if n == 0 {
		return cur.WithOrdinal(cur.AsInt() + int64(step))
	}
	next := ((cur.AsInt()+int64(step))%n + n) % n
	return cur.WithOrdinal(next)
}
