package ecs

import (
	"fmt"
	"math"

	"github.com/rotisserie/eris"
)

// ReferenceState tracks the outstanding accesses to a DynamicCell.
//
//	0        no access
//	n > 0    n shared accesses
//	-1       one exclusive access
type ReferenceState int

const (
	stateNone      ReferenceState = 0
	stateExclusive ReferenceState = -1
)

// Shared reports the number of live shared accesses.
func (s ReferenceState) Shared() int {
	if s > 0 {
		return int(s)
	}
	return 0
}

// Exclusive reports whether an exclusive access is live.
func (s ReferenceState) Exclusive() bool {
	return s == stateExclusive
}

// Free reports whether no access is live.
func (s ReferenceState) Free() bool {
	return s == stateNone
}

func (s ReferenceState) String() string {
	switch {
	case s == stateNone:
		return "Not Borrowed"
	case s == stateExclusive:
		return "Exclusive"
	default:
		return fmt.Sprintf("Shared(%d)", int(s))
	}
}

func (s ReferenceState) acquireShared() (ReferenceState, bool) {
	if s == stateExclusive || s == math.MaxInt {
		return s, false
	}
	return s + 1, true
}

func (s ReferenceState) acquireExclusive() (ReferenceState, bool) {
	if s != stateNone {
		return s, false
	}
	return stateExclusive, true
}

func (s ReferenceState) releaseShared() ReferenceState {
	if s <= stateNone {
		panic("ecs: released a shared access that was not held (state " + s.String() + ")")
	}
	return s - 1
}

func (s ReferenceState) releaseExclusive() ReferenceState {
	if s != stateExclusive {
		panic("ecs: released an exclusive access that was not held (state " + s.String() + ")")
	}
	return stateNone
}

// DynamicCell owns exactly one value of a dynamically tagged type together with its ReferenceState.
type DynamicCell struct {
	key   TypeKey
	value any // always a *T where KeyOf[T]() == key
	state ReferenceState
}

func newCell[T any](value T) *DynamicCell {
	ptr := new(T)
	*ptr = value
	return &DynamicCell{
		key:   KeyOf[T](),
		value: ptr,
	}
}

// Key returns the type key of the stored value.
func (c *DynamicCell) Key() TypeKey {
	return c.key
}

// State returns the current access state.
func (c *DynamicCell) State() ReferenceState {
	return c.state
}

// Ref is a shared access to a value of type T.
// Release must be called once the access is no longer needed; defer it right after acquiring.
type Ref[T any] struct {
	ptr      *T
	cell     *DynamicCell
	released bool
}

// Get returns a copy of the referenced value.
func (r *Ref[T]) Get() T {
	if r.released {
		panic("ecs: use of a released Ref[" + r.cell.key.Name() + "]")
	}
	return *r.ptr
}

// Release ends the shared access. Calling Release more than once has no effect.
func (r *Ref[T]) Release() {
	if r.released {
		return
	}
	r.released = true
	r.cell.state = r.cell.state.releaseShared()
}

// RefMut is an exclusive access to a value of type T.
// Release must be called once the access is no longer needed; defer it right after acquiring.
type RefMut[T any] struct {
	ptr      *T
	cell     *DynamicCell
	released bool
}

// Get returns a pointer to the referenced value. The pointer must not outlive the access.
func (r *RefMut[T]) Get() *T {
	if r.released {
		panic("ecs: use of a released RefMut[" + r.cell.key.Name() + "]")
	}
	return r.ptr
}

// Release ends the exclusive access. Calling Release more than once has no effect.
func (r *RefMut[T]) Release() {
	if r.released {
		return
	}
	r.released = true
	r.cell.state = r.cell.state.releaseExclusive()
}

func borrow[T any](c *DynamicCell) (*Ref[T], error) {
	ptr, ok := c.value.(*T)
	if !ok {
		return nil, eris.Errorf("ecs: cell %s does not hold %T", c.key.Name(), ptr)
	}
	next, ok := c.state.acquireShared()
	if !ok {
		return nil, eris.Wrapf(ErrBorrowConflict, "shared access to %s while %s", c.key.Name(), c.state)
	}
	c.state = next
	return &Ref[T]{ptr: ptr, cell: c}, nil
}

func borrowMut[T any](c *DynamicCell) (*RefMut[T], error) {
	ptr, ok := c.value.(*T)
	if !ok {
		return nil, eris.Errorf("ecs: cell %s does not hold %T", c.key.Name(), ptr)
	}
	next, ok := c.state.acquireExclusive()
	if !ok {
		return nil, eris.Wrapf(ErrBorrowConflict, "exclusive access to %s while %s", c.key.Name(), c.state)
	}
	c.state = next
	return &RefMut[T]{ptr: ptr, cell: c}, nil
}
