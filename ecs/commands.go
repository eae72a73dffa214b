package ecs

import (
	"errors"

	"github.com/rotisserie/eris"
)

// Commands buffers structural changes requested while systems run.
// The buffer is flushed at the end of every World.Tick: removals first, then insertions, then deferred functions.
type Commands struct {
	inserts []*Entity
	removes []EntityId
	defers  []func()
	errs    []error
}

func newCommands() *Commands {
	return &Commands{}
}

// Insert queues an entity insertion.
func (c *Commands) Insert(e *Entity) {
	c.inserts = append(c.inserts, e)
}

// Spawn queues the entity currently held by the builder. Builder errors surface when the buffer is flushed.
func (c *Commands) Spawn(b *EntityBuilder) {
	if b.err != nil {
		c.errs = append(c.errs, b.err)
		return
	}
	c.inserts = append(c.inserts, b.entity)
}

// Remove queues an entity removal.
func (c *Commands) Remove(id EntityId) {
	c.removes = append(c.removes, id)
}

// Defer queues a function to run after all queued insertions and removals.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.inserts) + len(c.removes) + len(c.defers) + len(c.errs)
}

// flush applies all queued operations to the World and resets the buffer.
func (c *Commands) flush(w *World) error {
	if c.Len() == 0 {
		return nil
	}

	removes, inserts, defers, errs := c.removes, c.inserts, c.defers, c.errs
	c.removes, c.inserts, c.defers, c.errs = nil, nil, nil, nil

	for _, id := range removes {
		if _, ok := w.Remove(id); !ok {
			errs = append(errs, eris.Wrapf(ErrNotFound, "queued removal of %s", id))
		}
	}

	for _, e := range inserts {
		if _, err := w.Insert(e); err != nil {
			errs = append(errs, err)
		}
	}

	for _, fn := range defers {
		fn()
	}

	return errors.Join(errs...)
}
