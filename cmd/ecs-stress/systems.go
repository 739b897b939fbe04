package main

import (
	"math/rand"

	"github.com/plus3/hive/ecs"
)

type movementSystem struct {
	Moving ecs.Query[struct {
		*Position
		*Velocity
	}]
}

func (s *movementSystem) Update(frame *ecs.Frame) {
	for _, m := range s.Moving.Iter() {
		m.Position.X += m.Velocity.DX * frame.DeltaTime
		m.Position.Y += m.Velocity.DY * frame.DeltaTime
		m.Position.Z += m.Velocity.DZ * frame.DeltaTime
	}
}

type spinSystem struct {
	Spinning ecs.Query[struct{ *Spin }]
}

func (s *spinSystem) Update(frame *ecs.Frame) {
	for _, m := range s.Spinning.Iter() {
		m.Spin.Angle += m.Spin.Rate * frame.DeltaTime
	}
}

// lifetimeSystem expires entities through the command buffer, which is where
// the allocator's recycle path gets its exercise.
type lifetimeSystem struct {
	Doomed ecs.Query[struct{ *Lifetime }]
}

func (s *lifetimeSystem) Update(frame *ecs.Frame) {
	for id, m := range s.Doomed.Iter() {
		m.Lifetime.Remaining -= frame.DeltaTime
		if m.Lifetime.Remaining <= 0 {
			frame.Commands.Destroy(id)
		}
	}
}

// churnSystem keeps the population roiling: every tick it spawns replacements
// so expired slots are recycled with bumped versions.
type churnSystem struct {
	rng     *rand.Rand
	perTick int
}

func (s *churnSystem) Update(frame *ecs.Frame) {
	for i := 0; i < s.perTick; i++ {
		frame.Commands.Spawn(
			Position{X: s.rng.Float64() * 100},
			Lifetime{Remaining: s.rng.Float64() * 3},
		)
	}
}

const stressSystemCount = 4

func registerStressSystems(reg *ecs.Systems, rng *rand.Rand, churnPerTick int) {
	reg.Add(&movementSystem{})
	reg.Add(&spinSystem{})
	reg.Add(&lifetimeSystem{})
	reg.Add(&churnSystem{rng: rng, perTick: churnPerTick})
}
