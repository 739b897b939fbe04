package ecs_test

import (
	"fmt"

	"github.com/plus3/hive/ecs"
)

// ExampleView demonstrates mask-filtered views. A view matches every entity
// whose presence mask contains all required components, and unpacks pointers
// into the caller's struct. Views iterate on-demand, making them ideal for
// one-off queries, tools, or situations outside of a system update.
func ExampleView() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Direction](registry)
	ecs.RegisterComponent[Health](registry)
	w := ecs.NewWorld(registry)

	player := w.Create()
	ecs.Assign(w, player.ID(), Position{X: 10, Y: 20})
	ecs.Assign(w, player.ID(), Direction{DX: 1, DY: 0})
	ecs.Assign(w, player.ID(), Health{Current: 100, Max: 100})

	view := ecs.NewView[struct {
		*Position
		*Direction
	}](w)

	if item := view.Get(player.ID()); item != nil {
		fmt.Printf("Player at (%.0f, %.0f) moving (%.0f, %.0f)\n",
			item.Position.X, item.Position.Y, item.Direction.DX, item.Direction.DY)
	}

	// Output:
	// Player at (10, 20) moving (1, 0)
}

// ExampleView_Iter shows iterating over all entities matching a view. The
// iterator yields (EntityId, T) pairs in ascending entity index order, so
// results are deterministic for a given creation order.
func ExampleView_Iter() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Direction](registry)
	w := ecs.NewWorld(registry)

	for i := 0; i < 3; i++ {
		e := w.Create()
		ecs.Assign(w, e.ID(), Position{X: float32(i) * 10})
		ecs.Assign(w, e.ID(), Direction{DX: 1})
	}
	bystander := w.Create()
	ecs.Assign(w, bystander.ID(), Position{X: 100})

	view := ecs.NewView[struct {
		*Position
		*Direction
	}](w)

	for _, item := range view.Iter() {
		item.Position.X += item.Direction.DX
		fmt.Printf("New position: %.0f\n", item.Position.X)
	}
	fmt.Printf("Matched: %d\n", view.Count())

	// Output:
	// New position: 1
	// New position: 11
	// New position: 21
	// Matched: 3
}

// ExampleView_optional demonstrates optional components. A field tagged
// ecs:"optional" does not filter; it is nil when the entity lacks the
// component, letting one view handle both cases.
func ExampleView_optional() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Health](registry)
	w := ecs.NewWorld(registry)

	a := w.Create()
	ecs.Assign(w, a.ID(), Position{X: 10})
	ecs.Assign(w, a.ID(), Health{Current: 50, Max: 100})

	b := w.Create()
	ecs.Assign(w, b.ID(), Position{X: 30})

	view := ecs.NewView[struct {
		Position *Position
		Health   *Health `ecs:"optional"`
	}](w)

	for _, item := range view.Iter() {
		if item.Health != nil {
			fmt.Printf("Entity at %.0f with health %d/%d\n",
				item.Position.X, item.Health.Current, item.Health.Max)
		} else {
			fmt.Printf("Invulnerable entity at %.0f\n", item.Position.X)
		}
	}

	// Output:
	// Entity at 10 with health 50/100
	// Invulnerable entity at 30
}
