// Package values implements the value container: an ordered snapshot of one
// member value per selected target.
//
// A container is computed from its parent container through an accessor:
// entry i is accessor.Get(parent[i]). Selection containers sit at the top of
// a tree, hold the raw targets and have no accessor.
//
// The number of entries is fixed for the lifetime of a container. A selection
// that changes size must discard and rebuild every container derived from it;
// Refresh reports ErrCountMismatch when that rule is broken.
package values

import (
	"errors"
	"fmt"

	"github.com/joshuapare/propkit/inspect/accessor"
	"github.com/joshuapare/propkit/pkg/value"
)

var (
	// ErrCountMismatch indicates a container was refreshed against a parent
	// with a different number of entries.
	ErrCountMismatch = errors.New("values: container count mismatch")

	// ErrNotSelection indicates a selection-only operation on a member container.
	ErrNotSelection = errors.New("values: not a selection container")
)

// AccessorError wraps a failure raised by an accessor for one entry.
type AccessorError struct {
	Op     string // "get" or "set"
	Member string
	Index  int
	Err    error
}

func (e *AccessorError) Error() string {
	return fmt.Sprintf("values: %s %s[%d]: %v", e.Op, e.Member, e.Index, e.Err)
}

func (e *AccessorError) Unwrap() error { return e.Err }

// Container holds one value per selected target.
type Container struct {
	acc  accessor.Accessor
	vals []value.Value
}

// NewSelection returns a selection container over the given targets.
func NewSelection(targets []value.Value) *Container {
	vals := make([]value.Value, len(targets))
	copy(vals, targets)
	return &Container{vals: vals}
}

// New computes a container for acc over every entry of parent.
func New(acc accessor.Accessor, parent *Container) (*Container, error) {
	c := &Container{acc: acc, vals: make([]value.Value, len(parent.vals))}
	for i := range parent.vals {
		v, err := get(acc, parent.vals[i], i)
		if err != nil {
			return nil, err
		}
		c.vals[i] = v
	}
	return c, nil
}

// Refresh re-reads every entry from parent. Entries are only replaced when all
// reads succeed.
func (c *Container) Refresh(parent *Container) error {
	if len(parent.vals) != len(c.vals) {
		return fmt.Errorf("%w: parent has %d entries, container has %d",
			ErrCountMismatch, len(parent.vals), len(c.vals))
	}
	if c.acc == nil {
		return nil
	}
	fresh := make([]value.Value, len(c.vals))
	for i := range parent.vals {
		v, err := get(c.acc, parent.vals[i], i)
		if err != nil {
			return err
		}
		fresh[i] = v
	}
	copy(c.vals, fresh)
	return nil
}

// Set broadcasts v into every entry of parent and records it as this
// container's value for every target. Entries are written in order; if the
// accessor fails on one, the entries before it stay written and nothing is
// rolled back.
func (c *Container) Set(parent *Container, v value.Value) error {
	if len(parent.vals) != len(c.vals) {
		return fmt.Errorf("%w: parent has %d entries, container has %d",
			ErrCountMismatch, len(parent.vals), len(c.vals))
	}
	if c.acc == nil {
		return ErrNotSelection
	}
	for i := range parent.vals {
		if err := set(c.acc, &parent.vals[i], v, i); err != nil {
			return err
		}
		c.vals[i] = v
	}
	return nil
}

// SetEach writes this container's own entries into the matching entries of
// parent, one value per target. Like Set, it stops at the first failing
// entry without undoing earlier writes.
func (c *Container) SetEach(parent *Container) error {
	if len(parent.vals) != len(c.vals) {
		return fmt.Errorf("%w: parent has %d entries, container has %d",
			ErrCountMismatch, len(parent.vals), len(c.vals))
	}
	if c.acc == nil {
		return ErrNotSelection
	}
	for i := range parent.vals {
		if err := set(c.acc, &parent.vals[i], c.vals[i], i); err != nil {
			return err
		}
	}
	return nil
}

// Reset replaces the targets of a selection container.
func (c *Container) Reset(targets []value.Value) error {
	if c.acc != nil {
		return ErrNotSelection
	}
	c.vals = append(c.vals[:0], targets...)
	return nil
}

// Accessor returns the accessor, or nil for a selection container.
func (c *Container) Accessor() accessor.Accessor { return c.acc }

// IsSelection reports whether c holds raw targets.
func (c *Container) IsSelection() bool { return c.acc == nil }

// Len returns the number of entries.
func (c *Container) Len() int { return len(c.vals) }

// At returns entry i.
func (c *Container) At(i int) value.Value { return c.vals[i] }

// Values returns a copy of the entries.
func (c *Container) Values() []value.Value {
	out := make([]value.Value, len(c.vals))
	copy(out, c.vals)
	return out
}

// IsSingleObject reports whether the container has exactly one entry.
func (c *Container) IsSingleObject() bool { return len(c.vals) == 1 }

// HasDifferentValues reports whether any two entries differ.
func (c *Container) HasDifferentValues() bool {
	for i := 1; i < len(c.vals); i++ {
		if !c.vals[0].Equal(c.vals[i]) {
			return true
		}
	}
	return false
}

// HasDifferentTypes reports whether any two entries have different runtime
// types. Nil references report the type "nil".
func (c *Container) HasDifferentTypes() bool {
	for i := 1; i < len(c.vals); i++ {
		if c.vals[0].Type() != c.vals[i].Type() {
			return true
		}
	}
	return false
}

// get calls acc.Get, converting errors and panics into *AccessorError.
func get(acc accessor.Accessor, inst value.Value, i int) (v value.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &AccessorError{Op: "get", Member: acc.Name(), Index: i, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	v, err = acc.Get(inst)
	if err != nil {
		return value.Value{}, &AccessorError{Op: "get", Member: acc.Name(), Index: i, Err: err}
	}
	return v, nil
}

func set(acc accessor.Accessor, inst *value.Value, v value.Value, i int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &AccessorError{Op: "set", Member: acc.Name(), Index: i, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	if err := acc.Set(inst, v); err != nil {
		return &AccessorError{Op: "set", Member: acc.Name(), Index: i, Err: err}
	}
	return nil
}
