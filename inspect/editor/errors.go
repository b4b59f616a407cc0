package editor

import (
	"errors"

	"github.com/joshuapare/propkit/inspect/values"
)

var (
	// ErrNotInitialized indicates an operation on a node that was never
	// initialized or has been cleaned up.
	ErrNotInitialized = errors.New("editor: node not initialized")

	// ErrNotRoot indicates a root-only entry point was called on a child.
	ErrNotRoot = errors.New("editor: not a root node")

	// ErrDetached indicates a non-root refresh on a node without a parent.
	ErrDetached = errors.New("editor: node has no parent")

	// ErrNoLayout indicates Initialize was called without a layout container.
	ErrNoLayout = errors.New("editor: nil layout container")

	// ErrNotSelection indicates Builder.Selection was used below a member.
	ErrNotSelection = errors.New("editor: parent does not hold a selection")

	// ErrUndo wraps failures raised by an undo sink.
	ErrUndo = errors.New("editor: undo sink failed")
)

// isFatal reports whether err must stop the whole refresh pass. Everything
// else aborts only the subtree that raised it.
func isFatal(err error) bool {
	return errors.Is(err, values.ErrCountMismatch) || errors.Is(err, ErrUndo)
}
