// Package accessor provides type-erased get/set capabilities bound to one
// member of an inspected value.
//
// An Accessor reads a member from an instance and writes a member into an
// instance. Instances are value.Value: struct instances are value copies, so
// Set replaces *instance with an updated copy; reference instances point at
// live Go objects, so Set writes through to the object and leaves *instance
// unchanged.
package accessor

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/joshuapare/propkit/pkg/value"
)

var (
	// ErrNoMember indicates the instance has no member with the accessor's name.
	ErrNoMember = errors.New("accessor: no such member")

	// ErrNilInstance indicates a read or write through a nil reference.
	ErrNilInstance = errors.New("accessor: nil instance")

	// ErrReadOnly indicates a write to a read-only member.
	ErrReadOnly = errors.New("accessor: member is read-only")
)

// Accessor gets and sets one member on an instance.
type Accessor interface {
	// Name returns the member name.
	Name() string

	// Get reads the member from instance.
	Get(instance value.Value) (value.Value, error)

	// Set writes v into the member of *instance.
	Set(instance *value.Value, v value.Value) error
}

// GetFunc reads a member from an instance.
type GetFunc func(instance value.Value) (value.Value, error)

// SetFunc writes a member into an instance.
type SetFunc func(instance *value.Value, v value.Value) error

type funcAccessor struct {
	name string
	get  GetFunc
	set  SetFunc
}

// New returns an accessor backed by functions. A nil set makes the member
// read-only.
func New(name string, get GetFunc, set SetFunc) Accessor {
	return &funcAccessor{name: name, get: get, set: set}
}

func (a *funcAccessor) Name() string { return a.name }

func (a *funcAccessor) Get(instance value.Value) (value.Value, error) {
	return a.get(instance)
}

func (a *funcAccessor) Set(instance *value.Value, v value.Value) error {
	if a.set == nil {
		return fmt.Errorf("%w: %s", ErrReadOnly, a.name)
	}
	return a.set(instance, v)
}

// FieldAccessor accesses a named field of a struct value or of the Go struct
// behind a reference value.
type FieldAccessor struct {
	name     string
	readOnly bool
}

// Field returns an accessor for the named field.
func Field(name string) *FieldAccessor {
	return &FieldAccessor{name: name}
}

// ReadOnly returns a copy of the accessor that rejects writes.
func (a *FieldAccessor) ReadOnly() *FieldAccessor {
	return &FieldAccessor{name: a.name, readOnly: true}
}

func (a *FieldAccessor) Name() string { return a.name }

func (a *FieldAccessor) Get(instance value.Value) (value.Value, error) {
	switch instance.Kind() {
	case value.StructKind:
		v, ok := instance.Field(a.name)
		if !ok {
			return value.Value{}, fmt.Errorf("%w: %s.%s", ErrNoMember, instance.Type(), a.name)
		}
		return v, nil
	case value.RefKind:
		fv, err := a.goField(instance)
		if err != nil {
			return value.Value{}, err
		}
		return value.FromReflect(fv), nil
	}
	return value.Value{}, fmt.Errorf("%w: %s on %s", ErrNoMember, a.name, instance.Kind())
}

func (a *FieldAccessor) Set(instance *value.Value, v value.Value) error {
	if a.readOnly {
		return fmt.Errorf("%w: %s", ErrReadOnly, a.name)
	}
	switch instance.Kind() {
	case value.StructKind:
		nv, err := instance.WithField(a.name, v)
		if err != nil {
			return err
		}
		*instance = nv
		return nil
	case value.RefKind:
		fv, err := a.goField(*instance)
		if err != nil {
			return err
		}
		return value.Assign(fv, v)
	}
	return fmt.Errorf("%w: %s on %s", ErrNoMember, a.name, instance.Kind())
}

func (a *FieldAccessor) goField(instance value.Value) (reflect.Value, error) {
	if instance.IsNil() {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrNilInstance, a.name)
	}
	elem := reflect.ValueOf(instance.Ref())
	for elem.Kind() == reflect.Pointer || elem.Kind() == reflect.Interface {
		if elem.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: %s", ErrNilInstance, a.name)
		}
		elem = elem.Elem()
	}
	if elem.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: %s on %s", ErrNoMember, a.name, elem.Type())
	}
	sf, ok := elem.Type().FieldByName(a.name)
	if !ok || !value.Visible(sf) {
		return reflect.Value{}, fmt.Errorf("%w: %s.%s", ErrNoMember, elem.Type(), a.name)
	}
	return elem.FieldByIndex(sf.Index), nil
}
