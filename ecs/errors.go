package ecs

import "github.com/rotisserie/eris"

var (
	// ErrDuplicateComponent is returned when a value of an already stored type is inserted
	// into a DynamicStore, either as an entity component or as a World resource.
	ErrDuplicateComponent = eris.New("component already exists")

	// ErrAlreadyInserted is returned when an entity that already owns an EntityId is inserted again.
	ErrAlreadyInserted = eris.New("entity already inserted")

	// ErrSpawnFailed is returned when an entity could not be stored in its archetype partition.
	ErrSpawnFailed = eris.New("could not spawn entity")

	// ErrInvalidInsertionIndex reports a slot that is not the end of its archetype partition.
	// World.Insert only ever appends, so it never returns this error; it names the failure
	// for code that places entities at explicit indices.
	ErrInvalidInsertionIndex = eris.New("invalid insertion index")

	// ErrBorrowConflict is returned when shared or exclusive access is requested while
	// an incompatible access to the same value is outstanding.
	ErrBorrowConflict = eris.New("borrow conflict")

	// ErrNotFound is returned by operations that require an entity or value to exist.
	// Lookups and queries report absence with ok=false instead.
	ErrNotFound = eris.New("not found")
)
