// Package log renders World state as structured zerolog events.
package log

import (
	"github.com/rs/zerolog"

	"github.com/plus3/ambrosia/ecs"
)

func loadArchetypeIntoArrayLogger(archetype ecs.ArchetypeStats, arrayLogger *zerolog.Array) *zerolog.Array {
	dictLogger := zerolog.Dict()
	dictLogger = dictLogger.Uint64("archetype_hash", archetype.Hash)
	dictLogger = dictLogger.Strs("components", archetype.ComponentTypes)
	dictLogger = dictLogger.Int("entities", archetype.EntityCount)
	return arrayLogger.Dict(dictLogger)
}

func loadArchetypesToEvent(event *zerolog.Event, world *ecs.World) *zerolog.Event {
	stats := world.CollectStats()
	event.Int("total_archetypes", stats.ArchetypeCount)
	event.Int("total_entities", stats.TotalEntityCount)
	arrayLogger := zerolog.Arr()
	for _, archetype := range stats.ArchetypeBreakdown {
		arrayLogger = loadArchetypeIntoArrayLogger(archetype, arrayLogger)
	}
	return event.Array("archetypes", arrayLogger)
}

func loadSystemsToEvent(event *zerolog.Event, world *ecs.World) *zerolog.Event {
	names := world.SystemNames()
	event.Int("total_systems", len(names))
	arrayLogger := zerolog.Arr()
	for _, name := range names {
		arrayLogger = arrayLogger.Str(name)
	}
	return event.Array("systems", arrayLogger)
}

func loadResourcesToEvent(event *zerolog.Event, world *ecs.World) *zerolog.Event {
	keys := world.Resources().Keys()
	event.Int("total_resources", len(keys))
	arrayLogger := zerolog.Arr()
	for _, key := range keys {
		arrayLogger = arrayLogger.Str(key.Name())
	}
	return event.Array("resources", arrayLogger)
}

// Archetypes logs every archetype partition with its live entity count.
func Archetypes(logger *zerolog.Logger, world *ecs.World, level zerolog.Level) {
	loadArchetypesToEvent(logger.WithLevel(level), world).Send()
}

// Systems logs the registered systems in execution order.
func Systems(logger *zerolog.Logger, world *ecs.World, level zerolog.Level) {
	loadSystemsToEvent(logger.WithLevel(level), world).Send()
}

// Resources logs the types of the World's global resources.
func Resources(logger *zerolog.Logger, world *ecs.World, level zerolog.Level) {
	loadResourcesToEvent(logger.WithLevel(level), world).Send()
}

// Entity logs an entity's id and component types.
func Entity(logger *zerolog.Logger, level zerolog.Level, entity *ecs.Entity) {
	event := logger.WithLevel(level)
	if id, ok := entity.ID(); ok {
		event.Int("entity_index", id.Index())
		event.Uint64("archetype_hash", id.Archetype().Hash())
	}
	event.Strs("components", entity.Archetype().Names())
	event.Bool("removed", entity.Removed())
	event.Send()
}

// World logs archetypes, systems and resources in a single event.
func World(logger *zerolog.Logger, world *ecs.World, level zerolog.Level) {
	event := logger.WithLevel(level)
	event = loadArchetypesToEvent(event, world)
	event = loadSystemsToEvent(event, world)
	event = loadResourcesToEvent(event, world)
	event.Send()
}

// CreateSystemLogger creates a sub logger with the entry {"system": systemName}.
func CreateSystemLogger(logger *zerolog.Logger, systemName string) *zerolog.Logger {
	newLogger := logger.With().Str("system", systemName).Logger()
	return &newLogger
}
