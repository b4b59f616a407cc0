// Package dirty tracks the member paths edited below a sync point since its
// last flush.
//
// The tracker only appends while edits arrive; sorting, de-duplication and
// coalescing happen when the paths are drained. A path is coalesced into an
// ancestor path that is itself dirty: "Transform" absorbs
// "Transform.Position.X". The empty path stands for the whole selection and
// absorbs everything.
package dirty

import (
	"sort"
	"strings"
)

// defaultPathCapacity is the pre-allocated capacity for recorded paths.
const defaultPathCapacity = 16

// Tracker accumulates dirty member paths.
//
// NOT thread-safe. Only one goroutine should use it at a time.
type Tracker struct {
	paths []string
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		paths: make([]string, 0, defaultPathCapacity),
	}
}

// Add records a dirty path.
func (t *Tracker) Add(path string) {
	t.paths = append(t.paths, path)
}

// Len returns the number of raw, uncoalesced paths.
func (t *Tracker) Len() int {
	return len(t.paths)
}

// Reset clears all recorded paths.
func (t *Tracker) Reset() {
	t.paths = t.paths[:0]
}

// Coalesced returns the sorted, coalesced paths without clearing them.
func (t *Tracker) Coalesced() []string {
	return coalesce(t.paths)
}

// Drain returns the coalesced paths and clears the tracker.
func (t *Tracker) Drain() []string {
	out := coalesce(t.paths)
	t.Reset()
	return out
}

// coalesce sorts paths, drops duplicates and drops paths covered by a dirty
// ancestor. Sorting puts every ancestor directly before its descendants, so
// one pass comparing against the last kept path is enough.
func coalesce(paths []string) []string {
	if len(paths) == 0 {
		return nil
	}

	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.Strings(sorted)

	merged := make([]string, 0, len(sorted))
	for _, p := range sorted {
		if n := len(merged); n > 0 && covers(merged[n-1], p) {
			continue
		}
		merged = append(merged, p)
	}
	return merged
}

// covers reports whether ancestor is p or a path prefix of p.
func covers(ancestor, p string) bool {
	if ancestor == "" || ancestor == p {
		return true
	}
	return strings.HasPrefix(p, ancestor) && p[len(ancestor)] == '.'
}
