package ecs

// WorldStats provides a snapshot of World composition.
type WorldStats struct {
	TotalEntityCount   int
	ArchetypeCount     int
	ResourceCount      int
	ResourceTypes      []string
	ArchetypeBreakdown []ArchetypeStats
}

// ArchetypeStats describes one archetype partition.
type ArchetypeStats struct {
	Hash           uint64
	ComponentTypes []string
	EntityCount    int
	SlotCount      int
}

// CollectStats gathers entity, archetype and resource counts.
func (w *World) CollectStats() *WorldStats {
	stats := &WorldStats{
		TotalEntityCount:   w.entities,
		ArchetypeCount:     len(w.partitions),
		ResourceCount:      w.resources.Len(),
		ArchetypeBreakdown: make([]ArchetypeStats, 0, len(w.partitions)),
	}

	for _, key := range w.resources.Keys() {
		stats.ResourceTypes = append(stats.ResourceTypes, key.Name())
	}

	for _, p := range w.partitions {
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			Hash:           p.archetype.Hash(),
			ComponentTypes: p.archetype.Names(),
			EntityCount:    p.live,
			SlotCount:      len(p.slots),
		})
	}

	return stats
}
