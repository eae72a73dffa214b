package ecs

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// EntityId locates an inserted entity: the archetype partition it lives in and its slot index.
// Slots are never reused, so an id that stopped resolving never resolves again.
// The zero EntityId never resolves.
type EntityId struct {
	archetype Archetype
	index     int
	set       bool
}

// NewEntityId creates an EntityId from an archetype and slot index.
// A hand-built id resolves to whatever entity occupies that slot; use the ids returned by Insert.
func NewEntityId(archetype Archetype, index int) EntityId {
	return EntityId{archetype: archetype, index: index, set: true}
}

// Archetype returns the archetype partition of the entity.
func (id EntityId) Archetype() Archetype {
	return id.archetype
}

// Index returns the slot index within the archetype partition.
func (id EntityId) Index() int {
	return id.index
}

// Equal reports whether both ids name the same slot.
func (id EntityId) Equal(other EntityId) bool {
	return id.index == other.index && id.archetype.Equal(other.archetype)
}

func (id EntityId) String() string {
	return fmt.Sprintf("Entity(%d@%s)", id.index, id.archetype)
}

// Entity is a set of components plus, once inserted into a World, its EntityId.
type Entity struct {
	id         *EntityId
	removed    bool
	components *DynamicStore
}

// NewEntity creates a detached entity with no components.
func NewEntity() *Entity {
	return &Entity{components: NewDynamicStore()}
}

// ID returns the entity's id; ok is false before insertion and after removal.
func (e *Entity) ID() (EntityId, bool) {
	if e.id == nil {
		return EntityId{}, false
	}
	return *e.id, true
}

// Inserted reports whether the entity currently lives in a World.
func (e *Entity) Inserted() bool {
	return e.id != nil
}

// Removed reports whether the entity was removed from a World.
func (e *Entity) Removed() bool {
	return e.removed
}

// Archetype returns the archetype formed by the entity's components.
func (e *Entity) Archetype() Archetype {
	if e.id != nil {
		return e.id.archetype
	}
	return e.components.Archetype()
}

// Components exposes the entity's component store.
func (e *Entity) Components() *DynamicStore {
	return e.components
}

func (e *Entity) setID(id EntityId) {
	e.id = &id
}

func (e *Entity) detach() {
	e.id = nil
	e.removed = true
}

func (e *Entity) describe() string {
	if e.id != nil {
		return e.id.String()
	}
	return "Entity(" + e.components.Archetype().String() + ")"
}

// AddComponent attaches value to a detached entity.
// Composition is fixed once the entity is inserted, so this fails with ErrAlreadyInserted afterwards.
func AddComponent[T any](e *Entity, value T) error {
	if e.id != nil || e.removed {
		return eris.Wrapf(ErrAlreadyInserted, "cannot add %s to %s", KeyOf[T]().Name(), e.describe())
	}
	return Insert(e.components, value)
}

// HasComponent reports whether the entity has a component of type T.
func HasComponent[T any](e *Entity) bool {
	return Has[T](e.components)
}

// GetComponent acquires a shared access to the entity's T component.
func GetComponent[T any](e *Entity) (*Ref[T], bool, error) {
	return Get[T](e.components)
}

// GetComponentMut acquires an exclusive access to the entity's T component.
func GetComponentMut[T any](e *Entity) (*RefMut[T], bool, error) {
	return GetMut[T](e.components)
}

// ReadComponent calls fn with the entity's T component under a scoped shared access.
func ReadComponent[T any](e *Entity, fn func(T)) (bool, error) {
	return Read(e.components, fn)
}

// WriteComponent calls fn with the entity's T component under a scoped exclusive access.
func WriteComponent[T any](e *Entity, fn func(*T)) (bool, error) {
	return Write(e.components, fn)
}

// EntityBuilder accumulates components for a new entity and inserts it into its World on Build.
// The first failing insertion is remembered and every later InsertComponent becomes a no-op.
type EntityBuilder struct {
	world  *World
	entity *Entity
	err    error
}

// InsertComponent adds value to the entity under construction.
func InsertComponent[T any](b *EntityBuilder, value T) *EntityBuilder {
	if b.err != nil {
		return b
	}
	if err := AddComponent(b.entity, value); err != nil {
		b.err = err
	}
	return b
}

// Err returns the first error raised while building, if any.
func (b *EntityBuilder) Err() error {
	return b.err
}

// Entity returns the entity under construction.
func (b *EntityBuilder) Entity() *Entity {
	return b.entity
}

// Build inserts the entity into the World. It returns the builder's first error, if any,
// in which case nothing is inserted.
func (b *EntityBuilder) Build() (*Entity, error) {
	if b.err != nil {
		return nil, b.err
	}
	if _, err := b.world.Insert(b.entity); err != nil {
		return nil, err
	}
	return b.entity, nil
}
