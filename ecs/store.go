package ecs

import (
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/rotisserie/eris"
)

// DynamicStore maps each TypeKey to at most one DynamicCell.
// Entities keep their components in one, the World keeps its resources in another.
// All access through Get, GetMut, Read and Write is borrow checked.
type DynamicStore struct {
	cells *intmap.Map[TypeKey, *DynamicCell]
	keys  []TypeKey
}

// NewDynamicStore creates an empty store.
func NewDynamicStore() *DynamicStore {
	return &DynamicStore{
		cells: intmap.New[TypeKey, *DynamicCell](8),
	}
}

// Insert stores value under its type. It fails with ErrDuplicateComponent, leaving the
// store untouched, if a value of that type is already present.
func Insert[T any](s *DynamicStore, value T) error {
	key := KeyOf[T]()
	if s.cells.Has(key) {
		return eris.Wrapf(ErrDuplicateComponent, "type %s", key.Name())
	}
	s.put(newCell(value))
	return nil
}

func (s *DynamicStore) put(cell *DynamicCell) {
	s.cells.Put(cell.key, cell)
	idx, _ := slices.BinarySearch(s.keys, cell.key)
	s.keys = slices.Insert(s.keys, idx, cell.key)
}

// Has reports whether a value of type T is stored. It never takes an access.
func Has[T any](s *DynamicStore) bool {
	return s.cells.Has(KeyOf[T]())
}

// HasKey reports whether a value with the given type key is stored. It never takes an access.
func (s *DynamicStore) HasKey(key TypeKey) bool {
	return s.cells.Has(key)
}

// Len returns the number of stored values.
func (s *DynamicStore) Len() int {
	return len(s.keys)
}

// Keys returns the sorted keys of all stored values.
func (s *DynamicStore) Keys() []TypeKey {
	return slices.Clone(s.keys)
}

// State returns the access state of the value stored under key.
func (s *DynamicStore) State(key TypeKey) (ReferenceState, bool) {
	cell, ok := s.cells.Get(key)
	if !ok {
		return stateNone, false
	}
	return cell.state, true
}

// Archetype returns the archetype formed by the stored types.
func (s *DynamicStore) Archetype() Archetype {
	return ArchetypeOf(s.keys...)
}

// Get acquires a shared access to the stored T.
// ok is false when no T is stored; err wraps ErrBorrowConflict when an exclusive access is live.
func Get[T any](s *DynamicStore) (ref *Ref[T], ok bool, err error) {
	cell, ok := s.cells.Get(KeyOf[T]())
	if !ok {
		return nil, false, nil
	}
	ref, err = borrow[T](cell)
	if err != nil {
		return nil, true, err
	}
	return ref, true, nil
}

// GetMut acquires an exclusive access to the stored T.
// ok is false when no T is stored; err wraps ErrBorrowConflict when any other access is live.
func GetMut[T any](s *DynamicStore) (ref *RefMut[T], ok bool, err error) {
	cell, ok := s.cells.Get(KeyOf[T]())
	if !ok {
		return nil, false, nil
	}
	ref, err = borrowMut[T](cell)
	if err != nil {
		return nil, true, err
	}
	return ref, true, nil
}

// Read calls fn with the stored T under a shared access that is released when fn returns or panics.
func Read[T any](s *DynamicStore, fn func(T)) (bool, error) {
	ref, ok, err := Get[T](s)
	if !ok || err != nil {
		return ok, err
	}
	defer ref.Release()
	fn(ref.Get())
	return true, nil
}

// Write calls fn with the stored T under an exclusive access that is released when fn returns or panics.
func Write[T any](s *DynamicStore, fn func(*T)) (bool, error) {
	ref, ok, err := GetMut[T](s)
	if !ok || err != nil {
		return ok, err
	}
	defer ref.Release()
	fn(ref.Get())
	return true, nil
}

// GetUnchecked returns a pointer to the stored T without any borrow tracking, or nil if absent.
//
// UNCHECKED: the caller is responsible for not aliasing a value that is borrowed elsewhere.
func GetUnchecked[T any](s *DynamicStore) *T {
	cell, ok := s.cells.Get(KeyOf[T]())
	if !ok {
		return nil
	}
	ptr, _ := cell.value.(*T)
	return ptr
}

// AcquireMut takes a checked exclusive access to the value stored under key without knowing its type.
// The returned value is the stored *T; release must be called exactly once when done.
// It is meant for reflection-driven tooling such as inspectors.
func (s *DynamicStore) AcquireMut(key TypeKey) (value any, release func(), err error) {
	cell, ok := s.cells.Get(key)
	if !ok {
		return nil, nil, eris.Wrapf(ErrNotFound, "type %s", key.Name())
	}
	next, ok := cell.state.acquireExclusive()
	if !ok {
		return nil, nil, eris.Wrapf(ErrBorrowConflict, "exclusive access to %s while %s", key.Name(), cell.state)
	}
	cell.state = next

	released := false
	return cell.value, func() {
		if released {
			return
		}
		released = true
		cell.state = cell.state.releaseExclusive()
	}, nil
}
