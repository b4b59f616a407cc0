package accessor

import (
	"reflect"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/joshuapare/propkit/pkg/value"
)

// Member describes one inspectable member of a value.
type Member struct {
	Name     string
	Label    string
	Kind     value.Kind
	Type     string
	ReadOnly bool
	Accessor Accessor
}

// Members lists the members of v in declaration order. Struct values expose
// their fields; references expose the visible fields of the Go struct they
// point to. Other kinds have no members.
func Members(v value.Value) []Member {
	switch v.Kind() {
	case value.StructKind:
		fields := v.Fields()
		out := make([]Member, 0, len(fields))
		for _, f := range fields {
			out = append(out, member(f.Name, f.Tag, f.Value.Kind(), f.Value.Type()))
		}
		return out
	case value.RefKind:
		return goMembers(v)
	}
	return nil
}

func goMembers(v value.Value) []Member {
	if v.IsNil() {
		return nil
	}
	elem := reflect.ValueOf(v.Ref())
	for elem.Kind() == reflect.Pointer || elem.Kind() == reflect.Interface {
		if elem.IsNil() {
			return nil
		}
		elem = elem.Elem()
	}
	if elem.Kind() != reflect.Struct {
		return nil
	}

	t := elem.Type()
	out := make([]Member, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !value.Visible(sf) {
			continue
		}
		fv := value.FromReflect(elem.Field(i))
		out = append(out, member(sf.Name, value.ParseTag(sf.Tag), fv.Kind(), sf.Type.String()))
	}
	return out
}

// member applies the struct tag options of a field: its label and whether
// the accessor rejects writes.
func member(name string, tag value.Tag, kind value.Kind, typ string) Member {
	label := tag.Label
	if label == "" {
		label = Label(name)
	}
	fa := Field(name)
	if tag.ReadOnly {
		fa = fa.ReadOnly()
	}
	return Member{
		Name:     name,
		Label:    label,
		Kind:     kind,
		Type:     typ,
		ReadOnly: tag.ReadOnly,
		Accessor: fa,
	}
}

// CommonMembers returns the members of the first value that every other value
// also has, matched by name and kind, in the first value's order.
func CommonMembers(vals []value.Value) []Member {
	if len(vals) == 0 {
		return nil
	}
	common := Members(vals[0])
	for _, v := range vals[1:] {
		have := make(map[string]value.Kind)
		for _, m := range Members(v) {
			have[m.Name] = m.Kind
		}
		kept := common[:0]
		for _, m := range common {
			if k, ok := have[m.Name]; ok && k == m.Kind {
				kept = append(kept, m)
			}
		}
		common = kept
	}
	return common
}

// Label turns a Go member name into a display label: "maxHealth" and
// "MaxHealth" become "Max Health", "HTTPPort" becomes "HTTP Port".
func Label(name string) string {
	rs := []rune(name)
	var b strings.Builder
	for i, r := range rs {
		if i > 0 && unicode.IsUpper(r) {
			prev := rs[i-1]
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte(' ')
			}
		}
		if r == '_' {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(r)
	}
	return cases.Title(language.English, cases.NoLower).String(strings.Join(strings.Fields(b.String()), " "))
}
