package editors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/propkit/inspect/accessor"
	"github.com/joshuapare/propkit/inspect/editor"
	"github.com/joshuapare/propkit/inspect/layout"
	"github.com/joshuapare/propkit/inspect/values"
	"github.com/joshuapare/propkit/internal/testutil"
	"github.com/joshuapare/propkit/pkg/value"
)

type inspector struct {
	root  *editor.Node
	panel *layout.Scroll
}

func inspect(t *testing.T, reg *Registry, objs ...any) *inspector {
	t.Helper()
	sel := make([]value.Value, len(objs))
	for i, o := range objs {
		sel[i] = value.Ref(o)
	}
	root := editor.NewTree().NewSyncPoint(reg.Root(), editor.SyncOptions{})
	panel := layout.NewScroll(20)
	require.NoError(t, root.Initialize(nil, panel, values.NewSelection(sel)))
	return &inspector{root: root, panel: panel}
}

func (in *inspector) frame(t *testing.T) {
	t.Helper()
	require.NoError(t, in.root.RefreshRoot())
}

func (in *inspector) field(t *testing.T, path string) (*editor.Node, *layout.Field) {
	t.Helper()
	n := in.root.Find(path)
	require.NotNil(t, n, "no editor for %q", path)
	f := FieldOf(n)
	require.NotNil(t, f, "%q is not a leaf", path)
	return n, f
}

// rows renders the visible layout one line per row.
func rows(c layout.Container) []string {
	var out []string
	layout.Walk(c, func(e layout.Element, depth int) bool {
		pad := strings.Repeat("  ", depth)
		switch e := e.(type) {
		case *layout.Panel:
			if e.Title != "" {
				out = append(out, pad+"["+e.Title+"]")
			}
		case *layout.Field:
			out = append(out, pad+e.Caption+": "+e.Text())
		case *layout.Label:
			out = append(out, pad+e.Text)
		}
		return true
	})
	return out
}

func TestRegistry_For(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		name string
		kind value.Kind
		want string
	}{
		{"bool", value.BoolKind, "*editors.Leaf"},
		{"int", value.IntKind, "*editors.Leaf"},
		{"struct", value.StructKind, "*editors.Object"},
		{"ref", value.RefKind, "*editors.Object"},
		{"unknown", value.Invalid, "*editors.Leaf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := reg.For(accessor.Member{Name: "M", Kind: tt.kind})
			assert.Equal(t, tt.want, typeName(k))
		})
	}

	display := reg.For(accessor.Member{Name: "M"}).(*Leaf)
	assert.True(t, display.ReadOnly())

	a := reg.For(accessor.Member{Name: "M", Kind: value.IntKind})
	b := reg.For(accessor.Member{Name: "M", Kind: value.IntKind})
	assert.NotSame(t, a, b, "kinds are per node")
}

func TestRegistry_TypeOverride(t *testing.T) {
	reg := NewRegistry()
	var got accessor.Member
	reg.Register("testutil.Vec3", func(r *Registry, m accessor.Member) editor.Kind {
		got = m
		return NewDisplay(m)
	})

	in := inspect(t, reg, testutil.NewActors(t, 1)[0])

	assert.Equal(t, "Scale", got.Name)
	_, f := in.field(t, "Transform.Position")
	assert.Equal(t, "Position", f.Caption)
	assert.True(t, f.ReadOnly())
}

func typeName(k editor.Kind) string {
	switch k.(type) {
	case *Leaf:
		return "*editors.Leaf"
	case *Object:
		return "*editors.Object"
	}
	return "?"
}

func TestObject_Layout(t *testing.T) {
	in := inspect(t, NewRegistry(), testutil.NewActors(t, 1)[0])

	want := []string{
		"Name: actor-0",
		"Enabled: true",
		"Layer: Default",
		"Health: 100",
		"[Transform]",
		"  [Position]",
		"    X: 0",
		"    Y: 0",
		"    Z: 0",
		"  [Scale]",
		"    X: 1",
		"    Y: 1",
		"    Z: 1",
		"[Target]",
		"  <nil>",
		"ID: 1",
	}
	assert.Equal(t, want, rows(in.panel))
}

func TestObject_CommonMembers(t *testing.T) {
	actor := testutil.NewActors(t, 1)[0]
	light := &testutil.Light{Name: "sun", Enabled: true, Intensity: 2}
	in := inspect(t, NewRegistry(), actor, light)

	got := rows(in.panel)
	require.NotEmpty(t, got)
	assert.Equal(t, "2 objects selected", got[0])
	assert.Equal(t, "Name: "+MixedText, got[1])
	assert.Equal(t, "Enabled: true", got[2])
	assert.Equal(t, "[Transform]", got[3])
	assert.Nil(t, in.root.Find("Health"))
	assert.Nil(t, in.root.Find("Intensity"))
}

func TestObject_EmptySelection(t *testing.T) {
	in := inspect(t, NewRegistry())
	assert.Equal(t, []string{NothingSelected}, rows(in.panel))
	in.frame(t)
}

func TestObject_MaxDepth(t *testing.T) {
	reg := NewRegistry()
	reg.MaxDepth = 1
	in := inspect(t, reg, testutil.NewActors(t, 1)[0])

	got := rows(in.panel)
	assert.Contains(t, got, "[Transform]")
	assert.Contains(t, got, "  ...")
	assert.Nil(t, in.root.Find("Transform.Position"))
}

func TestObject_RebuildsWhenReferenceAppears(t *testing.T) {
	actor := testutil.NewActors(t, 1)[0]
	in := inspect(t, NewRegistry(), actor)
	require.Nil(t, in.root.Find("Target.Name"))

	actor.Target = &testutil.Actor{Name: "buddy"}
	in.frame(t)

	_, f := in.field(t, "Target.Name")
	assert.Equal(t, "buddy", f.Text())

	actor.Target = nil
	in.frame(t)
	assert.Nil(t, in.root.Find("Target.Name"))
}

func TestLeaf_InputWritesOnNextFrame(t *testing.T) {
	actors := testutil.NewActors(t, 2)
	in := inspect(t, NewRegistry(), actors[0], actors[1])

	n, f := in.field(t, "Health")
	f.Input("42.5")

	_, pending := n.Pending()
	require.True(t, pending)
	assert.Equal(t, 100.0, actors[0].Health)

	in.frame(t)
	assert.Equal(t, 42.5, actors[0].Health)
	assert.Equal(t, 42.5, actors[1].Health)
	assert.Equal(t, "42.5", f.Text())
	assert.False(t, in.root.IsDirty())
}

func TestLeaf_NestedInput(t *testing.T) {
	actor := testutil.NewActors(t, 1)[0]
	in := inspect(t, NewRegistry(), actor)

	_, f := in.field(t, "Transform.Scale.Y")
	f.Input("3")
	in.frame(t)

	assert.Equal(t, testutil.Vec3{X: 1, Y: 3, Z: 1}, actor.Transform.Scale)
}

func TestLeaf_InvalidInput(t *testing.T) {
	actor := testutil.NewActors(t, 1)[0]
	in := inspect(t, NewRegistry(), actor)

	n, f := in.field(t, "Health")
	f.Input("lots")

	assert.Contains(t, f.Error(), "not a number")
	_, pending := n.Pending()
	assert.False(t, pending)

	f.Input("5")
	assert.Empty(t, f.Error())
}

func TestLeaf_MixedValues(t *testing.T) {
	actors := testutil.NewActors(t, 2)
	in := inspect(t, NewRegistry(), actors[0], actors[1])

	_, name := in.field(t, "Name")
	assert.Equal(t, MixedText, name.Text())
	assert.True(t, name.Mixed())

	_, enabled := in.field(t, "Enabled")
	assert.Equal(t, "true", enabled.Text())
	assert.False(t, enabled.Mixed())

	actors[1].Name = actors[0].Name
	in.frame(t)
	assert.Equal(t, "actor-0", name.Text())
	assert.False(t, name.Mixed())
}

func TestLeaf_ReadOnly(t *testing.T) {
	actor := testutil.NewActors(t, 1)[0]
	in := inspect(t, NewRegistry(), actor)

	n, f := in.field(t, "ID")
	assert.True(t, f.ReadOnly())

	f.Input("7")
	n.SetValue(value.Int(7))
	_, pending := n.Pending()
	assert.False(t, pending)
	assert.False(t, in.root.IsDirty())

	in.frame(t)
	assert.Equal(t, 1, actor.ID)
}

func TestEnum_Input(t *testing.T) {
	actor := testutil.NewActors(t, 1)[0]
	in := inspect(t, NewRegistry(), actor)

	_, f := in.field(t, "Layer")

	f.Input("water")
	in.frame(t)
	assert.Equal(t, testutil.LayerWater, actor.Layer)
	assert.Equal(t, "Water", f.Text())

	f.Input("1")
	in.frame(t)
	assert.Equal(t, testutil.LayerUI, actor.Layer)

	f.Input("7")
	assert.Contains(t, f.Error(), "Default, UI, Water")
	assert.Equal(t, testutil.LayerUI, actor.Layer)
}

func TestToggle_Input(t *testing.T) {
	actor := testutil.NewActors(t, 1)[0]
	in := inspect(t, NewRegistry(), actor)

	_, f := in.field(t, "Enabled")
	f.Input("false")
	in.frame(t)
	assert.False(t, actor.Enabled)

	f.Input("maybe")
	assert.Contains(t, f.Error(), "not a bool")
}

func TestNumber_IntRejectsFraction(t *testing.T) {
	k := NewNumber(accessor.Member{Name: "Count"})
	_, err := k.parse("1.5", value.Int(1))
	assert.ErrorIs(t, err, ErrInvalidInput)

	v, err := k.parse(" 12 ", value.Int(1).Typed("uint8"))
	require.NoError(t, err)
	assert.Equal(t, int64(12), v.AsInt())
	assert.Equal(t, "uint8", v.Type())
}

func TestCycle(t *testing.T) {
	cur := value.Enum("Layer", 2, []string{"Default", "UI", "Water"})

	next, err := Cycle(cur, 1)
	require.NoError(t, err)
	assert.Equal(t, "Default", next.AsString())

	prev, err := Cycle(cur, -1)
	require.NoError(t, err)
	assert.Equal(t, "UI", prev.AsString())

	_, err = Cycle(value.Int(1), 1)
	assert.Error(t, err)
}

func TestRefreshEchoDoesNotDirty(t *testing.T) {
	actors := testutil.NewActors(t, 1)
	in := inspect(t, NewRegistry(), actors[0])

	actors[0].Name = "external"
	in.frame(t)
	in.frame(t)

	_, f := in.field(t, "Name")
	assert.Equal(t, "external", f.Text())
	assert.False(t, in.root.IsDirty())
	in.root.Walk(func(n *editor.Node) bool {
		_, pending := n.Pending()
		assert.False(t, pending, n.Path())
		return true
	})
}

type unitStats struct {
	Level int `inspect:",readonly"`
	Armor int `inspect:"Armor Class"`
}

type unit struct {
	Stats unitStats
}

func TestObject_NestedValueStructTags(t *testing.T) {
	u := &unit{Stats: unitStats{Level: 3, Armor: 10}}
	in := inspect(t, NewRegistry(), u)

	n, level := in.field(t, "Stats.Level")
	assert.True(t, level.ReadOnly())
	assert.Equal(t, "Level", level.Caption)

	level.Input("99")
	n.SetValue(value.Int(99))
	in.frame(t)
	assert.Equal(t, 3, u.Stats.Level)

	_, armor := in.field(t, "Stats.Armor")
	assert.Equal(t, "Armor Class", armor.Caption)
	assert.False(t, armor.ReadOnly())
	armor.Input("12")
	in.frame(t)
	assert.Equal(t, unitStats{Level: 3, Armor: 12}, u.Stats)
}

type gainConfig struct {
	Seed uint64
	Gain float64
}

type gainHolder struct {
	Cfg gainConfig
}

func TestLeaf_LargeUintSurvivesSiblingEdit(t *testing.T) {
	h := &gainHolder{Cfg: gainConfig{Seed: 1 << 63, Gain: 1}}
	in := inspect(t, NewRegistry(), h)

	_, seed := in.field(t, "Cfg.Seed")
	assert.Equal(t, "9223372036854775808", seed.Text())

	_, gain := in.field(t, "Cfg.Gain")
	gain.Input("2")
	in.frame(t)
	assert.Equal(t, gainConfig{Seed: 1 << 63, Gain: 2}, h.Cfg)

	seed.Input("18446744073709551615")
	require.Empty(t, seed.Error())
	in.frame(t)
	assert.Equal(t, uint64(1<<64-1), h.Cfg.Seed)

	seed.Input("-1")
	assert.Contains(t, seed.Error(), "not an unsigned integer")
}
