package ecs

// ComponentTypeStats describes one catalog entry in a stats snapshot.
type ComponentTypeStats struct {
	ID    ComponentID
	Name  string
	Size  uintptr
	Count int
}

// WorldStats is a point-in-time snapshot of world occupancy, used by the
// debug UI and the stress tool.
type WorldStats struct {
	Entities       int
	Capacity       int
	FreeSlots      int
	ComponentTypes []ComponentTypeStats
	Singletons     []string
}

// CollectStats walks the masks and returns a fresh stats snapshot.
func (w *World) CollectStats() *WorldStats {
	stats := &WorldStats{
		Entities:       w.Len(),
		Capacity:       w.Cap(),
		FreeSlots:      len(w.ids.freeList),
		ComponentTypes: make([]ComponentTypeStats, w.registry.Len()),
	}
	for i := range stats.ComponentTypes {
		id := ComponentID(i)
		stats.ComponentTypes[i] = ComponentTypeStats{
			ID:   id,
			Name: w.registry.TypeOf(id).String(),
			Size: w.registry.Size(id),
		}
	}
	for i := uint32(0); i < w.ids.nextIndex; i++ {
		w.masks[i].ForEach(func(id ComponentID) {
			stats.ComponentTypes[id].Count++
		})
	}
	for t := range w.singletons {
		stats.Singletons = append(stats.Singletons, t.String())
	}
	return stats
}
