package undo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/propkit/internal/testutil"
	"github.com/joshuapare/propkit/pkg/value"
)

// edit runs one scope over objs that applies fn.
func edit(t *testing.T, h *History, objs []value.Value, label string, fn func()) {
	t.Helper()
	sc, err := h.Begin(objs, label)
	require.NoError(t, err)
	fn()
	require.NoError(t, sc.End())
}

func TestScope_RecordsOneEntry(t *testing.T) {
	actors := testutil.NewActors(t, 2)
	h := New(Options{})

	edit(t, h, testutil.Selection(actors...), "Rename", func() {
		actors[0].Name = "hero"
		actors[1].Health = 5
	})

	require.Equal(t, 1, h.Len())
	e := h.Entries()[0]
	assert.Equal(t, "Rename", e.Label)
	assert.Equal(t, []int{0, 1}, e.Changed())

	before, ok := e.Before[0].Field("Name")
	require.True(t, ok)
	assert.Equal(t, "actor-0", before.AsString())
	assert.False(t, e.Time.IsZero())
}

func TestScope_NoChangeNoEntry(t *testing.T) {
	actors := testutil.NewActors(t, 1)
	h := New(Options{})

	edit(t, h, testutil.Selection(actors...), "Noop", func() {})

	assert.Zero(t, h.Len())
	assert.False(t, h.CanUndo())
}

func TestUndoRedo(t *testing.T) {
	actors := testutil.NewActors(t, 1)
	a := actors[0]
	h := New(Options{})
	objs := testutil.Selection(actors...)

	edit(t, h, objs, "Move", func() { a.Transform.Position.X = 10 })
	edit(t, h, objs, "Move", func() { a.Transform.Position.X = 20 })

	_, err := h.Undo()
	require.NoError(t, err)
	assert.Equal(t, 10.0, a.Transform.Position.X)

	_, err = h.Undo()
	require.NoError(t, err)
	assert.Equal(t, 0.0, a.Transform.Position.X)

	_, err = h.Undo()
	assert.ErrorIs(t, err, ErrNothingToUndo)

	_, err = h.Redo()
	require.NoError(t, err)
	assert.Equal(t, 10.0, a.Transform.Position.X)
	assert.True(t, h.CanRedo())
}

func TestPush_TruncatesRedoTail(t *testing.T) {
	actors := testutil.NewActors(t, 1)
	a := actors[0]
	h := New(Options{})
	objs := testutil.Selection(actors...)

	edit(t, h, objs, "one", func() { a.Health = 1 })
	edit(t, h, objs, "two", func() { a.Health = 2 })
	_, err := h.Undo()
	require.NoError(t, err)

	edit(t, h, objs, "three", func() { a.Health = 3 })

	require.Equal(t, 2, h.Len())
	assert.Equal(t, "three", h.Entries()[1].Label)
	_, err = h.Redo()
	assert.ErrorIs(t, err, ErrNothingToRedo)
}

func TestPush_Limit(t *testing.T) {
	actors := testutil.NewActors(t, 1)
	a := actors[0]
	h := New(Options{Limit: 2})
	objs := testutil.Selection(actors...)

	for i := 1; i <= 3; i++ {
		edit(t, h, objs, "step", func() { a.Health = float64(i) })
	}

	require.Equal(t, 2, h.Len())
	assert.Equal(t, 2, h.Applied())
	_, err := h.Undo()
	require.NoError(t, err)
	_, err = h.Undo()
	require.NoError(t, err)
	assert.Equal(t, 1.0, a.Health, "oldest entry was evicted")
}

func TestBegin_ScopeActive(t *testing.T) {
	h := New(Options{})
	objs := testutil.Selection(testutil.NewActors(t, 1)...)

	sc, err := h.Begin(objs, "outer")
	require.NoError(t, err)

	_, err = h.Begin(objs, "inner")
	assert.ErrorIs(t, err, ErrScopeActive)
	_, err = h.Undo()
	assert.ErrorIs(t, err, ErrScopeActive)

	require.NoError(t, sc.End())
	assert.ErrorIs(t, sc.End(), ErrScopeClosed)
}

func TestScope_Rollback(t *testing.T) {
	actors := testutil.NewActors(t, 1)
	h := New(Options{})

	sc, err := h.Begin(testutil.Selection(actors...), "Edit")
	require.NoError(t, err)
	actors[0].Name = "changed"

	require.NoError(t, sc.Rollback())
	assert.Equal(t, "actor-0", actors[0].Name)
	assert.Zero(t, h.Len())
	assert.False(t, h.InScope())
}

func TestReflectSnapshotter_PreservesHidden(t *testing.T) {
	a := &testutil.Actor{Name: "a", Notes: "keep"}
	snap, err := ReflectSnapshotter{}.Snapshot(value.Ref(a))
	require.NoError(t, err)

	a.Name = "b"
	a.Notes = "changed"
	require.NoError(t, ReflectSnapshotter{}.Restore(value.Ref(a), snap))

	assert.Equal(t, "a", a.Name)
	assert.Equal(t, "changed", a.Notes, "hidden fields are not part of the snapshot")
}

func TestReflectSnapshotter_NotRestorable(t *testing.T) {
	_, err := ReflectSnapshotter{}.Snapshot(value.Int(3))
	assert.ErrorIs(t, err, ErrNotRestorable)

	_, err = ReflectSnapshotter{}.Snapshot(value.Ref(nil))
	assert.ErrorIs(t, err, ErrNotRestorable)

	h := New(Options{})
	_, err = h.Begin([]value.Value{value.Int(3)}, "Edit")
	assert.ErrorIs(t, err, ErrNotRestorable)
	assert.False(t, h.InScope())
}

type failingSnapshotter struct{ err error }

func (f failingSnapshotter) Snapshot(obj value.Value) (value.Value, error) { return obj, nil }
func (f failingSnapshotter) Restore(value.Value, value.Value) error        { return f.err }

func TestUndo_RestoreFailureKeepsPosition(t *testing.T) {
	boom := errors.New("boom")
	h := New(Options{Snapshotter: failingSnapshotter{err: boom}})
	h.push(Entry{
		Label:   "x",
		Objects: []value.Value{value.Int(1)},
		Before:  []value.Value{value.Int(1)},
		After:   []value.Value{value.Int(2)},
	})

	_, err := h.Undo()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, h.Applied())
}

func TestSink_AdaptsHistory(t *testing.T) {
	actors := testutil.NewActors(t, 1)
	h := New(Options{})

	sc, err := h.Sink().Begin(testutil.Selection(actors...), "Edit")
	require.NoError(t, err)
	actors[0].Enabled = false
	require.NoError(t, sc.End())
	assert.Equal(t, 1, h.Len())

	_, err = h.Sink().Begin([]value.Value{value.Int(1)}, "Edit")
	assert.Error(t, err)
}
