package value

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Enumerator is implemented by integer-backed Go types that should surface as
// enum values. EnumNames lists the symbols in ordinal order.
type Enumerator interface {
	EnumNames() []string
}

var enumeratorType = reflect.TypeOf((*Enumerator)(nil)).Elem()

// TagName is the struct tag key consulted when bridging Go structs.
const TagName = "inspect"

// Tag holds the parsed options of an `inspect:"..."` struct tag.
type Tag struct {
	Hidden   bool // inspect:"-"
	ReadOnly bool // inspect:",readonly"
	Label    string
}

// ParseTag parses the inspect tag of a struct field. The first comma-separated
// element is an optional display label.
func ParseTag(st reflect.StructTag) Tag {
	raw, ok := st.Lookup(TagName)
	if !ok {
		return Tag{}
	}
	if raw == "-" {
		return Tag{Hidden: true}
	}
	parts := strings.Split(raw, ",")
	t := Tag{Label: parts[0]}
	for _, p := range parts[1:] {
		if p == "readonly" {
			t.ReadOnly = true
		}
	}
	return t
}

// Visible reports whether a struct field takes part in bridging: exported and
// not hidden by its tag.
func Visible(sf reflect.StructField) bool {
	return sf.IsExported() && !ParseTag(sf.Tag).Hidden
}

// FromGo converts a Go value into a Value. Pointers, maps, slices, funcs and
// channels become references; structs are copied field by field.
func FromGo(x any) Value {
	return FromReflect(reflect.ValueOf(x))
}

// FromReflect converts a reflected Go value into a Value.
func FromReflect(rv reflect.Value) Value {
	if !rv.IsValid() {
		return Ref(nil)
	}
	t := rv.Type()
	if isIntKind(t.Kind()) && t.Implements(enumeratorType) && rv.CanInterface() {
		names := rv.Interface().(Enumerator).EnumNames()
		return Enum(t.String(), ordinalOf(rv), names)
	}

	switch t.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()).Typed(t.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()).Typed(t.String())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(rv.Uint()).Typed(t.String())
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()).Typed(t.String())
	case reflect.String:
		return String(rv.String()).Typed(t.String())
	case reflect.Struct:
		fields := make([]Field, 0, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if !Visible(sf) {
				continue
			}
			fields = append(fields, Field{Name: sf.Name, Value: FromReflect(rv.Field(i)), Tag: ParseTag(sf.Tag)})
		}
		return Value{kind: StructKind, typ: t.String(), fields: fields}
	case reflect.Interface:
		if rv.IsNil() {
			return Ref(nil)
		}
		return FromReflect(rv.Elem())
	}

	if !rv.CanInterface() {
		return Value{}
	}
	return Ref(rv.Interface())
}

// Assign stores v into the settable Go location dst, converting between
// numeric widths as needed. Struct values are assigned field by field so that
// hidden fields of dst are preserved.
func Assign(dst reflect.Value, v Value) error {
	if !dst.CanSet() {
		return fmt.Errorf("%w: %s is not settable", ErrNotAssignable, dst.Type())
	}
	t := dst.Type()
	mismatch := func() error {
		return fmt.Errorf("%w: cannot assign %s to %s", ErrKindMismatch, v.kind, t)
	}

	switch t.Kind() {
	case reflect.Bool:
		if v.kind != BoolKind {
			return mismatch()
		}
		dst.SetBool(v.b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.kind != IntKind && v.kind != EnumKind {
			return mismatch()
		}
		if v.uns && v.u > math.MaxInt64 {
			return fmt.Errorf("%w: %d overflows %s", ErrNotAssignable, v.u, t)
		}
		i := v.AsInt()
		if dst.OverflowInt(i) {
			return fmt.Errorf("%w: %d overflows %s", ErrNotAssignable, i, t)
		}
		dst.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if v.kind != IntKind && v.kind != EnumKind {
			return mismatch()
		}
		if !v.uns && v.i < 0 {
			return fmt.Errorf("%w: %d overflows %s", ErrNotAssignable, v.i, t)
		}
		u := v.AsUint()
		if dst.OverflowUint(u) {
			return fmt.Errorf("%w: %d overflows %s", ErrNotAssignable, u, t)
		}
		dst.SetUint(u)
	case reflect.Float32, reflect.Float64:
		switch v.kind {
		case FloatKind:
			dst.SetFloat(v.f)
		case IntKind:
			dst.SetFloat(v.AsFloat())
		default:
			return mismatch()
		}
	case reflect.String:
		if v.kind != StringKind {
			return mismatch()
		}
		dst.SetString(v.s)
	case reflect.Struct:
		if v.kind != StructKind {
			return mismatch()
		}
		for _, f := range v.fields {
			sf, ok := t.FieldByName(f.Name)
			if !ok || !Visible(sf) {
				return fmt.Errorf("%w: %s.%s", ErrNoField, t, f.Name)
			}
			if err := Assign(dst.FieldByIndex(sf.Index), f.Value); err != nil {
				return fmt.Errorf("%s: %w", f.Name, err)
			}
		}
	default:
		if v.kind != RefKind {
			return mismatch()
		}
		if isNilRef(v.ref) {
			switch t.Kind() {
			case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
				dst.Set(reflect.Zero(t))
				return nil
			}
			return mismatch()
		}
		rv := reflect.ValueOf(v.ref)
		if !rv.Type().AssignableTo(t) {
			return fmt.Errorf("%w: %s to %s", ErrNotAssignable, rv.Type(), t)
		}
		dst.Set(rv)
	}
	return nil
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func ordinalOf(rv reflect.Value) int64 {
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint())
	}
	return rv.Int()
}

func isNilRef(r any) bool {
	if r == nil {
		return true
	}
	rv := reflect.ValueOf(r)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// sameRef compares references by identity without panicking on
// non-comparable dynamic types.
func sameRef(a, b any) bool {
	an, bn := isNilRef(a), isNilRef(b)
	if an || bn {
		return an && bn
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return ra.Pointer() == rb.Pointer()
	}
	if ra.Type().Comparable() {
		return a == b
	}
	return false
}
