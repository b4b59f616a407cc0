// Package value defines the value-kind sum type that flows through the
// inspector engine.
//
// A Value is one of a closed set of kinds: bool, int, float, string, struct,
// enum or reference. Struct values have value semantics: every Value holding a
// struct is an independent copy, and WithField returns a new copy rather than
// mutating the receiver. Reference values carry the identity of a live object
// (a Go pointer); writes through a reference reach the object itself.
//
// # Usage
//
//	v := value.Struct("Vec3",
//	    value.F("X", value.Float(1)),
//	    value.F("Y", value.Float(2)),
//	)
//	moved, _ := v.WithField("X", value.Float(5))
//	// v.Field("X") is still 1, moved.Field("X") is 5
package value

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrKindMismatch indicates an operation was applied to the wrong kind.
	ErrKindMismatch = errors.New("value: kind mismatch")

	// ErrNoField indicates a struct value has no field with the given name.
	ErrNoField = errors.New("value: no such field")

	// ErrNotAssignable indicates a Value cannot be stored into a Go location.
	ErrNotAssignable = errors.New("value: not assignable")
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	Invalid Kind = iota
	BoolKind
	IntKind
	FloatKind
	StringKind
	StructKind
	EnumKind
	RefKind
)

var kindNames = [...]string{
	Invalid:    "invalid",
	BoolKind:   "bool",
	IntKind:    "int",
	FloatKind:  "float",
	StringKind: "string",
	StructKind: "struct",
	EnumKind:   "enum",
	RefKind:    "ref",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Field is a named member of a struct value.
type Field struct {
	Name  string
	Value Value
	Tag   Tag // options of the Go struct field the value was bridged from
}

// F is shorthand for constructing a Field.
func F(name string, v Value) Field {
	return Field{Name: name, Value: v}
}

// Value is an immutable tagged union. The zero Value is Invalid.
type Value struct {
	kind   Kind
	typ    string  // runtime type name
	b      bool    // BoolKind
	i      int64   // IntKind, EnumKind ordinal
	u      uint64  // IntKind when unsigned
	uns    bool    // IntKind holds u instead of i
	f      float64 // FloatKind
	s      string  // StringKind, EnumKind symbol
	fields []Field // StructKind; never mutated after construction
	ref    any     // RefKind
	names  []string
}

// Bool returns a bool value.
func Bool(b bool) Value { return Value{kind: BoolKind, typ: "bool", b: b} }

// Int returns an int value of type "int".
func Int(i int64) Value { return Value{kind: IntKind, typ: "int", i: i} }

// Uint returns an unsigned int value of type "uint". The full uint64 range is
// kept.
func Uint(u uint64) Value { return Value{kind: IntKind, typ: "uint", u: u, uns: true} }

// Float returns a float value of type "float64".
func Float(f float64) Value { return Value{kind: FloatKind, typ: "float64", f: f} }

// String returns a string value.
func String(s string) Value { return Value{kind: StringKind, typ: "string", s: s} }

// Struct returns a struct value of the named type. The fields are copied.
func Struct(typ string, fields ...Field) Value {
	fs := make([]Field, len(fields))
	copy(fs, fields)
	return Value{kind: StructKind, typ: typ, fields: fs}
}

// Enum returns an enum value. names lists every symbol of the enum type in
// ordinal order and may be nil when unknown.
func Enum(typ string, ordinal int64, names []string) Value {
	v := Value{kind: EnumKind, typ: typ, i: ordinal, names: names}
	if ordinal >= 0 && ordinal < int64(len(names)) {
		v.s = names[ordinal]
	} else {
		v.s = strconv.FormatInt(ordinal, 10)
	}
	return v
}

// Ref returns a reference value for a live object. obj is usually a pointer;
// nil is allowed and yields a nil reference.
func Ref(obj any) Value {
	typ := "nil"
	if obj != nil {
		typ = fmt.Sprintf("%T", obj)
	}
	return Value{kind: RefKind, typ: typ, ref: obj}
}

// Typed returns a copy of v reporting typ as its runtime type. Only scalar
// kinds can be retyped; other kinds are returned unchanged.
func (v Value) Typed(typ string) Value {
	switch v.kind {
	case BoolKind, IntKind, FloatKind, StringKind:
		v.typ = typ
	}
	return v
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// Type returns the runtime type name of v.
func (v Value) Type() string { return v.typ }

// IsValid reports whether v holds any variant.
func (v Value) IsValid() bool { return v.kind != Invalid }

// IsNil reports whether v is invalid or a nil reference.
func (v Value) IsNil() bool {
	return v.kind == Invalid || (v.kind == RefKind && isNilRef(v.ref))
}

// AsBool returns the bool payload, or false for other kinds.
func (v Value) AsBool() bool { return v.kind == BoolKind && v.b }

// IsUnsigned reports whether v is an int value holding an unsigned payload.
func (v Value) IsUnsigned() bool { return v.kind == IntKind && v.uns }

// AsInt returns the integer payload. Enums yield their ordinal and floats are
// truncated. Unsigned payloads above math.MaxInt64 wrap; use AsUint for them.
func (v Value) AsInt() int64 {
	switch v.kind {
	case IntKind, EnumKind:
		if v.uns {
			return int64(v.u)
		}
		return v.i
	case FloatKind:
		return int64(v.f)
	}
	return 0
}

// AsUint returns the integer payload as unsigned. Negative ints wrap.
func (v Value) AsUint() uint64 {
	if v.uns {
		return v.u
	}
	return uint64(v.AsInt())
}

// AsFloat returns the float payload. Ints are converted.
func (v Value) AsFloat() float64 {
	switch v.kind {
	case FloatKind:
		return v.f
	case IntKind:
		if v.uns {
			return float64(v.u)
		}
		return float64(v.i)
	}
	return 0
}

// AsString returns the string payload, or the symbol for enums.
func (v Value) AsString() string {
	switch v.kind {
	case StringKind, EnumKind:
		return v.s
	}
	return ""
}

// Symbols returns the symbol names of an enum value's type.
func (v Value) Symbols() []string {
	if v.kind != EnumKind {
		return nil
	}
	out := make([]string, len(v.names))
	copy(out, v.names)
	return out
}

// WithOrdinal returns a copy of an enum value set to another ordinal.
func (v Value) WithOrdinal(ordinal int64) (Value, error) {
	if v.kind != EnumKind {
		return Value{}, fmt.Errorf("%w: %s is not an enum", ErrKindMismatch, v.kind)
	}
	return Enum(v.typ, ordinal, v.names), nil
}

// Ref returns the referenced object, or nil for other kinds.
func (v Value) Ref() any {
	if v.kind != RefKind {
		return nil
	}
	return v.ref
}

// NumField returns the number of fields of a struct value.
func (v Value) NumField() int { return len(v.fields) }

// Fields returns a copy of the fields of a struct value.
func (v Value) Fields() []Field {
	if v.kind != StructKind {
		return nil
	}
	out := make([]Field, len(v.fields))
	copy(out, v.fields)
	return out
}

// Field returns the named field of a struct value.
func (v Value) Field(name string) (Value, bool) {
	if v.kind != StructKind {
		return Value{}, false
	}
	for _, f := range v.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// WithField returns a copy of the struct value v with the named field replaced.
// The receiver is left untouched.
func (v Value) WithField(name string, fv Value) (Value, error) {
	if v.kind != StructKind {
		return Value{}, fmt.Errorf("%w: %s is not a struct", ErrKindMismatch, v.kind)
	}
	for i, f := range v.fields {
		if f.Name != name {
			continue
		}
		fs := make([]Field, len(v.fields))
		copy(fs, v.fields)
		fs[i].Value = fv
		v.fields = fs
		return v, nil
	}
	return Value{}, fmt.Errorf("%w: %s.%s", ErrNoField, v.typ, name)
}

// Equal reports whether v and o hold the same kind, type and payload. Struct
// values compare field by field; references compare by identity.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind || v.typ != o.typ {
		return false
	}
	switch v.kind {
	case Invalid:
		return true
	case BoolKind:
		return v.b == o.b
	case IntKind:
		return sameInt(v, o)
	case EnumKind:
		return v.i == o.i
	case FloatKind:
		return v.f == o.f
	case StringKind:
		return v.s == o.s
	case StructKind:
		if len(v.fields) != len(o.fields) {
			return false
		}
		for i := range v.fields {
			if v.fields[i].Name != o.fields[i].Name || !v.fields[i].Value.Equal(o.fields[i].Value) {
				return false
			}
		}
		return true
	case RefKind:
		return sameRef(v.ref, o.ref)
	}
	return false
}

// String formats v for display.
func (v Value) String() string {
	switch v.kind {
	case Invalid:
		return "<invalid>"
	case BoolKind:
		return strconv.FormatBool(v.b)
	case IntKind:
		if v.uns {
			return strconv.FormatUint(v.u, 10)
		}
		return strconv.FormatInt(v.i, 10)
	case FloatKind:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case StringKind:
		return v.s
	case EnumKind:
		return v.s
	case StructKind:
		var b strings.Builder
		b.WriteString(shortType(v.typ))
		b.WriteByte('{')
		for i, f := range v.fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name)
			b.WriteByte(':')
			b.WriteString(f.Value.String())
		}
		b.WriteByte('}')
		return b.String()
	case RefKind:
		if isNilRef(v.ref) {
			return "<nil>"
		}
		return "&" + shortType(strings.TrimPrefix(v.typ, "*"))
	}
	return v.kind.String()
}

// sameInt compares int payloads numerically, whatever their signedness.
func sameInt(a, b Value) bool {
	switch {
	case a.uns && b.uns:
		return a.u == b.u
	case !a.uns && !b.uns:
		return a.i == b.i
	case a.uns:
		return b.i >= 0 && uint64(b.i) == a.u
	}
	return a.i >= 0 && uint64(a.i) == b.u
}

func shortType(typ string) string {
	if i := strings.LastIndexByte(typ, '.'); i >= 0 {
		return typ[i+1:]
	}
	return typ
}
