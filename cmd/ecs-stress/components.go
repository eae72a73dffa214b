package main

import (
	"math/rand"

	"github.com/plus3/ambrosia/ecs"
)

type (
	Comp0 struct{ Value int }
	Comp1 struct{ Value int }
	Comp2 struct{ Value int }
	Comp3 struct{ Value int }
	Comp4 struct{ Value int }
	Comp5 struct{ Value float64 }
	Comp6 struct{ Value float64 }
	Comp7 struct{ X, Y float64 }
)

type componentKind struct {
	key    ecs.TypeKey
	insert func(b *ecs.EntityBuilder, rng *rand.Rand) *ecs.EntityBuilder
	bump   func(e *ecs.Entity) error
}

func intKind[T any](set func(*T, int), get func(T) int) componentKind {
	return componentKind{
		key: ecs.KeyOf[T](),
		insert: func(b *ecs.EntityBuilder, rng *rand.Rand) *ecs.EntityBuilder {
			var v T
			set(&v, rng.Intn(1000))
			return ecs.InsertComponent(b, v)
		},
		bump: func(e *ecs.Entity) error {
			_, err := ecs.WriteComponent(e, func(v *T) { set(v, get(*v)+1) })
			return err
		},
	}
}

func floatKind[T any](set func(*T, float64), get func(T) float64) componentKind {
	return componentKind{
		key: ecs.KeyOf[T](),
		insert: func(b *ecs.EntityBuilder, rng *rand.Rand) *ecs.EntityBuilder {
			var v T
			set(&v, rng.Float64())
			return ecs.InsertComponent(b, v)
		},
		bump: func(e *ecs.Entity) error {
			_, err := ecs.WriteComponent(e, func(v *T) { set(v, get(*v)*1.0001) })
			return err
		},
	}
}

var kinds = []componentKind{
	intKind(func(c *Comp0, v int) { c.Value = v }, func(c Comp0) int { return c.Value }),
	intKind(func(c *Comp1, v int) { c.Value = v }, func(c Comp1) int { return c.Value }),
	intKind(func(c *Comp2, v int) { c.Value = v }, func(c Comp2) int { return c.Value }),
	intKind(func(c *Comp3, v int) { c.Value = v }, func(c Comp3) int { return c.Value }),
	intKind(func(c *Comp4, v int) { c.Value = v }, func(c Comp4) int { return c.Value }),
	floatKind(func(c *Comp5, v float64) { c.Value = v }, func(c Comp5) float64 { return c.Value }),
	floatKind(func(c *Comp6, v float64) { c.Value = v }, func(c Comp6) float64 { return c.Value }),
	floatKind(func(c *Comp7, v float64) { c.X, c.Y = v, v }, func(c Comp7) float64 { return c.X }),
}

// ComponentCount is the number of distinct component types the workload draws from.
var ComponentCount = len(kinds)

// newRandomEntity builds an entity carrying n distinct random component types.
func newRandomEntity(world *ecs.World, rng *rand.Rand, n int) *ecs.EntityBuilder {
	if n > len(kinds) {
		n = len(kinds)
	}
	b := world.Spawn()
	for _, i := range rng.Perm(len(kinds))[:n] {
		b = kinds[i].insert(b, rng)
	}
	return b
}

// SpawnRandomEntity inserts an entity carrying n distinct random component types.
func SpawnRandomEntity(world *ecs.World, rng *rand.Rand, n int) (*ecs.Entity, error) {
	return newRandomEntity(world, rng, n).Build()
}

// RegisterStressSystems adds one update system per adjacent component pair plus a churn system
// that removes and respawns entities through the World's Commands.
func RegisterStressSystems(world *ecs.World, rng *rand.Rand, churn int) error {
	for i := range kinds {
		kind, other := kinds[i], kinds[(i+1)%len(kinds)]
		query := ecs.QueryFor(kind.key, other.key)
		system := ecs.SystemFunc(func(w *ecs.World) error {
			for e := range w.QueryEntities(query) {
				if err := kind.bump(e); err != nil {
					return err
				}
			}
			return nil
		})
		if err := world.AddSystem(system, len(kinds)-i); err != nil {
			return err
		}
	}
	if churn <= 0 {
		return nil
	}
	return world.AddSystem(&churnSystem{rng: rng, count: churn}, -1)
}

type churnSystem struct {
	rng   *rand.Rand
	count int
	seen  []ecs.EntityId
}

func (s *churnSystem) Name() string { return "ChurnSystem" }

func (s *churnSystem) Execute(w *ecs.World) error {
	s.seen = s.seen[:0]
	for e := range w.Iter() {
		if id, ok := e.ID(); ok {
			s.seen = append(s.seen, id)
		}
		if len(s.seen) >= s.count*4 {
			break
		}
	}

	commands := w.Commands()
	for i := 0; i < s.count && len(s.seen) > 0; i++ {
		j := s.rng.Intn(len(s.seen))
		commands.Remove(s.seen[j])
		s.seen[j] = s.seen[len(s.seen)-1]
		s.seen = s.seen[:len(s.seen)-1]
		commands.Spawn(newRandomEntity(w, s.rng, s.rng.Intn(len(kinds))+1))
	}
	return nil
}
