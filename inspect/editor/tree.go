package editor

// ID is a handle to a node slot in a Tree. The zero ID refers to no node.
type ID uint32

// NoID is the absent node handle.
const NoID ID = 0

// Tree is the arena that owns every node of one editor hierarchy. Nodes
// refer to their parent and children by ID, never by pointer, so a cleaned up
// subtree cannot be reached through stale links: its slots are released and
// Get returns nil for them.
//
// The tree is NOT thread-safe. It is meant to be driven from the host's UI
// loop.
type Tree struct {
	slots []*Node // slots[id-1]
	free  []ID
}

// NewTree returns an empty arena.
func NewTree() *Tree {
	return &Tree{}
}

// NewNode allocates a plain editor node for kind.
func (t *Tree) NewNode(kind Kind) *Node {
	n := &Node{tree: t, kind: kind}
	n.id = t.alloc(n)
	return n
}

// NewSyncPoint allocates a sync point node for kind.
func (t *Tree) NewSyncPoint(kind Kind, opts SyncOptions) *Node {
	n := t.NewNode(kind)
	n.sync = newSyncPoint(opts)
	return n
}

// Get returns the live node for id, or nil.
func (t *Tree) Get(id ID) *Node {
	if id == NoID || int(id) > len(t.slots) {
		return nil
	}
	return t.slots[id-1]
}

// Len returns the number of live nodes.
func (t *Tree) Len() int {
	return len(t.slots) - len(t.free)
}

func (t *Tree) alloc(n *Node) ID {
	if k := len(t.free); k > 0 {
		id := t.free[k-1]
		t.free = t.free[:k-1]
		t.slots[id-1] = n
		return id
	}
	t.slots = append(t.slots, n)
	return ID(len(t.slots))
}

// release frees the slot of id. The node itself must already be cleaned up.
func (t *Tree) release(id ID) {
	if t.Get(id) == nil {
		return
	}
	t.slots[id-1] = nil
	t.free = append(t.free, id)
}
