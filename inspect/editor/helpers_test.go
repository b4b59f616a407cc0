package editor

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/propkit/inspect/accessor"
	"github.com/joshuapare/propkit/inspect/layout"
	"github.com/joshuapare/propkit/inspect/values"
	"github.com/joshuapare/propkit/internal/logger"
	"github.com/joshuapare/propkit/pkg/value"
)

// recordingHost is a test implementation of Host.
type recordingHost struct {
	logs     bytes.Buffer
	log      *slog.Logger
	sink     UndoSink
	modified [][]string
	modNodes []*Node
}

func newHost(sink UndoSink) *recordingHost {
	h := &recordingHost{sink: sink}
	h.log = logger.New(&h.logs, slog.LevelDebug, true)
	return h
}

func (h *recordingHost) Logger() *slog.Logger { return h.log }
func (h *recordingHost) UndoSink() UndoSink   { return h.sink }

func (h *recordingHost) NotifyModified(n *Node, paths []string) {
	h.modNodes = append(h.modNodes, n)
	h.modified = append(h.modified, paths)
}

// recordingSink is a test implementation of UndoSink.
type recordingSink struct {
	begins    []beginCall
	ends      int
	failBegin error
	failEnd   error

	// onBegin runs when a scope opens, before any edit of the frame.
	onBegin func()
}

type beginCall struct {
	objects []value.Value
	label   string
}

type recordingScope struct{ s *recordingSink }

func (s *recordingSink) Begin(objects []value.Value, label string) (UndoScope, error) {
	if s.failBegin != nil {
		return nil, s.failBegin
	}
	s.begins = append(s.begins, beginCall{objects: objects, label: label})
	if s.onBegin != nil {
		s.onBegin()
	}
	return recordingScope{s}, nil
}

func (r recordingScope) End() error {
	r.s.ends++
	return r.s.failEnd
}

// testKind builds one field row and the listed members, and records the
// first entry of its container on every refresh.
type testKind struct {
	members []testMember
	noField bool

	builds     int
	seen       []value.Value
	cleaned    int
	buildErr   error
	refreshErr error
	onRefresh  func(n *Node)
}

type testMember struct {
	acc  accessor.Accessor
	kind Kind
	sync *SyncOptions
}

func (k *testKind) Build(b *Builder) error {
	k.builds++
	if k.buildErr != nil {
		return k.buildErr
	}
	if !k.noField {
		b.Field("value")
	}
	for _, m := range k.members {
		var err error
		if m.sync != nil {
			_, err = b.SyncMember(m.acc, m.kind, *m.sync)
		} else {
			_, err = b.Member(m.acc, m.kind)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (k *testKind) Refresh(n *Node) error {
	if k.onRefresh != nil {
		k.onRefresh(n)
	}
	if n.Values().Len() > 0 {
		k.seen = append(k.seen, n.Values().At(0))
	}
	return k.refreshErr
}

func (k *testKind) Cleanup(*Node) { k.cleaned++ }

func (k *testKind) last() value.Value { return k.seen[len(k.seen)-1] }

// rejectKind refuses every edit, the way read-only editors do.
type rejectKind struct{ testKind }

func (k *rejectKind) OnDirty(*Node, *Node, value.Value) bool { return false }

// selectionKind is the root kind: it hands the selection to child.
type selectionKind struct {
	child Kind
}

func (k *selectionKind) Build(b *Builder) error {
	_, err := b.Selection(k.child)
	return err
}

func (k *selectionKind) Refresh(*Node) error { return nil }

// actorKinds mirrors testutil.Actor:
//
//	Name, Health, Transform{Position{X, Y, Z}}
type actorKinds struct {
	object, name, health, transform, position, x, y, z *testKind
}

func newActorKinds() *actorKinds {
	k := &actorKinds{
		object:    &testKind{noField: true},
		name:      &testKind{},
		health:    &testKind{},
		transform: &testKind{noField: true},
		position:  &testKind{noField: true},
		x:         &testKind{},
		y:         &testKind{},
		z:         &testKind{},
	}
	k.position.members = []testMember{
		{acc: accessor.Field("X"), kind: k.x},
		{acc: accessor.Field("Y"), kind: k.y},
		{acc: accessor.Field("Z"), kind: k.z},
	}
	k.transform.members = []testMember{{acc: accessor.Field("Position"), kind: k.position}}
	k.object.members = []testMember{
		{acc: accessor.Field("Name"), kind: k.name},
		{acc: accessor.Field("Health"), kind: k.health},
		{acc: accessor.Field("Transform"), kind: k.transform},
	}
	return k
}

// fixture is a built root over a selection.
type fixture struct {
	tree   *Tree
	root   *Node
	scroll *layout.Scroll
	host   *recordingHost
}

func buildRoot(t *testing.T, host *recordingHost, sel []value.Value, kind Kind) *fixture {
	t.Helper()

	tree := NewTree()
	root := tree.NewSyncPoint(&selectionKind{child: kind}, SyncOptions{})
	scroll := layout.NewScroll(4)
	require.NoError(t, root.Initialize(host, scroll, values.NewSelection(sel)))
	return &fixture{tree: tree, root: root, scroll: scroll, host: host}
}

func (f *fixture) node(t *testing.T, path string) *Node {
	t.Helper()
	n := f.root.Find(path)
	require.NotNil(t, n, "no editor for %q", path)
	return n
}

func (f *fixture) frame(t *testing.T) {
	t.Helper()
	require.NoError(t, f.root.RefreshRoot())
}
