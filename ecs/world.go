package ecs

import (
	"iter"

	"github.com/google/uuid"
	"github.com/kamstrup/intmap"
	"github.com/plus3/ambrosia/statsd"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// partition holds every entity of one archetype, in insertion order.
// A removed entity leaves a nil slot behind; slots are never compacted or reused.
type partition struct {
	archetype Archetype
	slots     []*Entity
	live      int
}

// World owns all entities, partitioned by archetype, the global resources and the registered systems.
// A World is not safe for concurrent use.
type World struct {
	id   uuid.UUID
	name string

	index      *intmap.Map[uint64, []*partition]
	partitions []*partition
	entities   int

	resources *DynamicStore
	commands  *Commands
	systems   []registeredSystem
	tick      uint64

	logger  zerolog.Logger
	metrics *statsd.Emitter
}

// NewWorld creates an empty World.
func NewWorld(opts ...Option) *World {
	w := &World{
		id:        uuid.New(),
		index:     intmap.New[uint64, []*partition](64),
		resources: NewDynamicStore(),
		commands:  newCommands(),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.metrics == nil {
		w.metrics = statsd.NoOp()
	}

	ctx := w.logger.With().Str("world_id", w.id.String())
	if w.name != "" {
		ctx = ctx.Str("world", w.name)
	}
	w.logger = ctx.Logger()
	return w
}

// ID returns the unique id of this World instance.
func (w *World) ID() uuid.UUID {
	return w.id
}

// Name returns the name given with WithName.
func (w *World) Name() string {
	return w.name
}

// Logger returns the World's logger.
func (w *World) Logger() *zerolog.Logger {
	return &w.logger
}

// Commands returns the World's deferred command buffer.
func (w *World) Commands() *Commands {
	return w.commands
}

// Resources returns the store holding the World's global resources.
func (w *World) Resources() *DynamicStore {
	return w.resources
}

func (w *World) lookup(archetype Archetype) *partition {
	bucket, ok := w.index.Get(archetype.Hash())
	if !ok {
		return nil
	}
	for _, p := range bucket {
		if p.archetype.Equal(archetype) {
			return p
		}
	}
	return nil
}

func (w *World) partitionFor(archetype Archetype) *partition {
	if p := w.lookup(archetype); p != nil {
		return p
	}
	p := &partition{archetype: archetype}
	hash := archetype.Hash()
	bucket, _ := w.index.Get(hash)
	w.index.Put(hash, append(bucket, p))
	w.partitions = append(w.partitions, p)
	w.logger.Debug().Stringer("archetype", archetype).Msg("archetype created")
	return p
}

// Spawn starts building an entity that is inserted into this World on Build.
func (w *World) Spawn() *EntityBuilder {
	return &EntityBuilder{world: w, entity: NewEntity()}
}

// Insert stores the entity in the partition of its archetype and assigns its EntityId.
// On failure the World and the entity are left unchanged.
func (w *World) Insert(e *Entity) (EntityId, error) {
	if e == nil {
		return EntityId{}, eris.Wrap(ErrSpawnFailed, "nil entity")
	}
	if e.id != nil || e.removed {
		return EntityId{}, eris.Wrapf(ErrAlreadyInserted, "entity %s", e.describe())
	}

	archetype := e.components.Archetype()
	p := w.partitionFor(archetype)

	id := NewEntityId(archetype, len(p.slots))
	p.slots = append(p.slots, e)
	e.setID(id)
	p.live++
	w.entities++
	return id, nil
}

// Get resolves an id to its entity in constant time.
// Only ids returned by Insert are meaningful; the zero EntityId never resolves.
func (w *World) Get(id EntityId) (*Entity, bool) {
	if !id.set {
		return nil, false
	}
	p := w.lookup(id.archetype)
	if p == nil || id.index < 0 || id.index >= len(p.slots) {
		return nil, false
	}
	e := p.slots[id.index]
	return e, e != nil
}

// Remove clears the entity's slot and detaches it. The id never resolves again.
func (w *World) Remove(id EntityId) (*Entity, bool) {
	e, ok := w.Get(id)
	if !ok {
		return nil, false
	}
	p := w.lookup(id.archetype)
	p.slots[id.index] = nil
	p.live--
	w.entities--
	e.detach()
	return e, true
}

// RemoveEntity removes e from the World if it is currently inserted in it.
func (w *World) RemoveEntity(e *Entity) (*Entity, bool) {
	id, ok := e.ID()
	if !ok {
		return nil, false
	}
	if found, ok := w.Get(id); !ok || found != e {
		return nil, false
	}
	return w.Remove(id)
}

// Iter yields every live entity, grouped by archetype in the order archetypes were first seen.
func (w *World) Iter() iter.Seq[*Entity] {
	return w.QueryEntities(NewQuery())
}

// QueryEntities yields every live entity whose archetype matches q.
// Matching is evaluated against the live World each time the sequence is ranged over.
func (w *World) QueryEntities(q Query) iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for _, p := range w.partitions {
			if p.live == 0 || !q.Matches(p.archetype) {
				continue
			}
			for i := 0; i < len(p.slots); i++ {
				e := p.slots[i]
				if e == nil {
					continue
				}
				if !yield(e) {
					return
				}
			}
		}
	}
}

// QueryOne returns the first entity matching q.
func (w *World) QueryOne(q Query) (*Entity, bool) {
	for e := range w.QueryEntities(q) {
		return e, true
	}
	return nil, false
}

// Count returns the number of live entities matching q.
func (w *World) Count(q Query) int {
	count := 0
	for _, p := range w.partitions {
		if q.Matches(p.archetype) {
			count += p.live
		}
	}
	return count
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	return w.entities
}

// ArchetypeCount returns the number of archetype partitions created so far.
func (w *World) ArchetypeCount() int {
	return len(w.partitions)
}

// Archetypes returns every archetype the World has stored an entity of.
func (w *World) Archetypes() []Archetype {
	archetypes := make([]Archetype, len(w.partitions))
	for i, p := range w.partitions {
		archetypes[i] = p.archetype
	}
	return archetypes
}

// InsertResource stores a global resource. Only one resource per type may exist.
func InsertResource[T any](w *World, value T) error {
	if err := Insert(w.resources, value); err != nil {
		return eris.Wrap(err, "insert resource")
	}
	return nil
}

// HasResource reports whether a resource of type T exists.
func HasResource[T any](w *World) bool {
	return Has[T](w.resources)
}

// GetResource acquires a shared access to the T resource.
func GetResource[T any](w *World) (*Ref[T], bool, error) {
	return Get[T](w.resources)
}

// GetResourceMut acquires an exclusive access to the T resource.
func GetResourceMut[T any](w *World) (*RefMut[T], bool, error) {
	return GetMut[T](w.resources)
}

// ReadResource calls fn with the T resource under a scoped shared access.
func ReadResource[T any](w *World, fn func(T)) (bool, error) {
	return Read(w.resources, fn)
}

// WriteResource calls fn with the T resource under a scoped exclusive access.
func WriteResource[T any](w *World, fn func(*T)) (bool, error) {
	return Write(w.resources, fn)
}
