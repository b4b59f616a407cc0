package values

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/propkit/inspect/accessor"
	"github.com/joshuapare/propkit/internal/testutil"
	"github.com/joshuapare/propkit/pkg/value"
)

func TestNew_OneEntryPerTarget(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		actors := testutil.NewActors(t, n)
		sel := NewSelection(testutil.Selection(actors...))

		c, err := New(accessor.Field("Name"), sel)
		require.NoError(t, err)
		require.Equal(t, n, c.Len())
		for i, a := range actors {
			assert.Equal(t, a.Name, c.At(i).AsString())
		}
	}
}

func TestNew_AccessorError(t *testing.T) {
	boom := errors.New("boom")
	failing := accessor.New("Bad",
		func(value.Value) (value.Value, error) { return value.Value{}, boom },
		nil,
	)
	sel := NewSelection(testutil.Selection(testutil.NewActors(t, 2)...))

	_, err := New(failing, sel)
	var ae *AccessorError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "get", ae.Op)
	assert.Equal(t, "Bad", ae.Member)
	assert.Equal(t, 0, ae.Index)
	assert.ErrorIs(t, err, boom)
}

func TestNew_RecoversAccessorPanic(t *testing.T) {
	panicking := accessor.New("Panics",
		func(value.Value) (value.Value, error) { panic("kaboom") },
		nil,
	)
	sel := NewSelection(testutil.Selection(testutil.NewActors(t, 1)...))

	_, err := New(panicking, sel)
	var ae *AccessorError
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Error(), "kaboom")
}

func TestRefresh_PullsExternalChanges(t *testing.T) {
	actors := testutil.NewActors(t, 2)
	sel := NewSelection(testutil.Selection(actors...))
	c, err := New(accessor.Field("Health"), sel)
	require.NoError(t, err)

	actors[1].Health = 5
	require.NoError(t, c.Refresh(sel))
	assert.Equal(t, 5.0, c.At(1).AsFloat())
	assert.True(t, c.HasDifferentValues())
}

func TestRefresh_CountMismatch(t *testing.T) {
	actors := testutil.NewActors(t, 3)
	sel := NewSelection(testutil.Selection(actors...))
	c, err := New(accessor.Field("Name"), sel)
	require.NoError(t, err)

	smaller := NewSelection(testutil.Selection(actors[:2]...))
	assert.ErrorIs(t, c.Refresh(smaller), ErrCountMismatch)
	assert.ErrorIs(t, c.Set(smaller, value.String("x")), ErrCountMismatch)
}

func TestRefresh_KeepsEntriesOnFailure(t *testing.T) {
	calls := 0
	flaky := accessor.New("Flaky",
		func(value.Value) (value.Value, error) {
			calls++
			if calls > 2 {
				return value.Value{}, errors.New("gone")
			}
			return value.Int(int64(calls)), nil
		},
		nil,
	)
	sel := NewSelection(testutil.Selection(testutil.NewActors(t, 2)...))
	c, err := New(flaky, sel)
	require.NoError(t, err)

	require.Error(t, c.Refresh(sel))
	assert.Equal(t, []value.Value{value.Int(1), value.Int(2)}, c.Values())
}

func TestSet_Broadcast(t *testing.T) {
	actors := testutil.NewActors(t, 3)
	sel := NewSelection(testutil.Selection(actors...))
	c, err := New(accessor.Field("Health"), sel)
	require.NoError(t, err)

	require.NoError(t, c.Set(sel, value.Float(42)))
	for _, a := range actors {
		assert.Equal(t, 42.0, a.Health)
	}
	assert.False(t, c.HasDifferentValues())
	assert.Equal(t, 42.0, c.At(2).AsFloat())
}

func TestSet_StructParentCopies(t *testing.T) {
	actors := testutil.NewActors(t, 2)
	sel := NewSelection(testutil.Selection(actors...))
	transform, err := New(accessor.Field("Transform"), sel)
	require.NoError(t, err)
	pos, err := New(accessor.Field("Position"), transform)
	require.NoError(t, err)
	x, err := New(accessor.Field("X"), pos)
	require.NoError(t, err)

	require.NoError(t, x.Set(pos, value.Float(7)))

	for i := 0; i < pos.Len(); i++ {
		got, _ := pos.At(i).Field("X")
		assert.Equal(t, 7.0, got.AsFloat())
	}
	assert.Equal(t, 0.0, actors[0].Transform.Position.X, "copies do not reach the target until written up")

	require.NoError(t, pos.SetEach(transform))
	require.NoError(t, transform.SetEach(sel))
	assert.Equal(t, 7.0, actors[0].Transform.Position.X)
	assert.Equal(t, 7.0, actors[1].Transform.Position.X)
}

func TestSet_PartialFailureKeepsEarlierWrites(t *testing.T) {
	health := accessor.Field("Health")
	calls := 0
	flaky := accessor.New("Health", health.Get,
		func(inst *value.Value, v value.Value) error {
			calls++
			if calls == 2 {
				return errors.New("locked")
			}
			return health.Set(inst, v)
		},
	)
	actors := testutil.NewActors(t, 3)
	sel := NewSelection(testutil.Selection(actors...))
	c, err := New(flaky, sel)
	require.NoError(t, err)

	err = c.Set(sel, value.Float(42))
	var ae *AccessorError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "set", ae.Op)
	assert.Equal(t, 1, ae.Index)

	assert.Equal(t, 42.0, actors[0].Health, "first target stays written")
	assert.Equal(t, 100.0, actors[1].Health)
	assert.Equal(t, 100.0, actors[2].Health)
	assert.Equal(t, 42.0, c.At(0).AsFloat())
	assert.Equal(t, 100.0, c.At(1).AsFloat())
}

func TestSet_SelectionHasNoAccessor(t *testing.T) {
	sel := NewSelection(testutil.Selection(testutil.NewActors(t, 1)...))
	assert.ErrorIs(t, sel.Set(sel, value.Int(1)), ErrNotSelection)
	assert.ErrorIs(t, sel.SetEach(sel), ErrNotSelection)
	assert.True(t, sel.IsSelection())
}

func TestReset(t *testing.T) {
	actors := testutil.NewActors(t, 3)
	sel := NewSelection(testutil.Selection(actors[:1]...))
	require.NoError(t, sel.Reset(testutil.Selection(actors...)))
	assert.Equal(t, 3, sel.Len())

	c, err := New(accessor.Field("Name"), sel)
	require.NoError(t, err)
	assert.ErrorIs(t, c.Reset(nil), ErrNotSelection)
}

func TestDiffFlags(t *testing.T) {
	a := &testutil.Actor{}
	l := &testutil.Light{}
	var nilActor *testutil.Actor

	tests := []struct {
		name      string
		vals      []value.Value
		diffValue bool
		diffType  bool
	}{
		{"empty", nil, false, false},
		{"single", []value.Value{value.Int(1)}, false, false},
		{"equal", []value.Value{value.Int(1), value.Int(1)}, false, false},
		{"different", []value.Value{value.Int(1), value.Int(2)}, true, false},
		{"types", []value.Value{value.Ref(a), value.Ref(l)}, true, true},
		{"nil ref", []value.Value{value.Ref(a), value.Ref(nil)}, true, true},
		{"typed nil", []value.Value{value.Ref(a), value.Ref(nilActor)}, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewSelection(tt.vals)
			assert.Equal(t, tt.diffValue, c.HasDifferentValues())
			assert.Equal(t, tt.diffType, c.HasDifferentTypes())
			assert.Equal(t, len(tt.vals) == 1, c.IsSingleObject())
		})
	}
}
