package main

import (
	"math/rand"

	"github.com/plus3/hive/ecs"
)

type Position struct {
	X, Y, Z float64
}

type Velocity struct {
	DX, DY, DZ float64
}

type Health struct {
	Current, Max int32
}

type Lifetime struct {
	Remaining float64
}

type Spin struct {
	Angle, Rate float64
}

type Label struct {
	Value string
}

func registerStressComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Lifetime](registry)
	ecs.RegisterPackedComponent[Spin](registry)
	ecs.RegisterComponent[Label](registry)
}

const stressComponentCount = 6

// spawnRandomEntity creates an entity with Position plus a random subset of
// the remaining component types, so masks land in a spread of combinations.
func spawnRandomEntity(w *ecs.World, rng *rand.Rand) {
	e := w.Create()
	id := e.ID()

	ecs.Assign(w, id, Position{X: rng.Float64() * 100, Y: rng.Float64() * 100})
	if rng.Intn(2) == 0 {
		ecs.Assign(w, id, Velocity{DX: rng.Float64() - 0.5, DY: rng.Float64() - 0.5})
	}
	if rng.Intn(3) == 0 {
		ecs.Assign(w, id, Health{Current: 100, Max: 100})
	}
	if rng.Intn(4) == 0 {
		ecs.Assign(w, id, Lifetime{Remaining: rng.Float64() * 5})
	}
	if rng.Intn(4) == 0 {
		ecs.Assign(w, id, Spin{Rate: rng.Float64() * 10})
	}
}
