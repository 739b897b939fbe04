package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/hive/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovementSystem struct {
	Moving ecs.Query[struct {
		*Position
		*Direction
	}]
}

func (m *MovementSystem) Update(frame *ecs.Frame) {
	for item := range m.Moving.Values() {
		item.Position.X += item.Direction.DX * float32(frame.DeltaTime)
		item.Position.Y += item.Direction.DY * float32(frame.DeltaTime)
	}
}

type DecaySystem struct {
	configured bool
	updates    int
}

func (d *DecaySystem) Update(frame *ecs.Frame) {
	d.updates++
	for id := range frame.World.Entities() {
		if ecs.Has[Health](frame.World, id) {
			h := ecs.ComponentOf[Health](frame.World, id).Get()
			h.Current--
			if h.Current <= 0 {
				frame.Commands.Destroy(id)
			}
		}
	}
}

func (d *DecaySystem) Configure(events *ecs.EventBus) {
	d.configured = true
}

type ExplosionEvent struct {
	Origin ecs.EntityId
}

type ExplosionSystem struct {
	received []ExplosionEvent
}

func (e *ExplosionSystem) Update(frame *ecs.Frame) {}

func (e *ExplosionSystem) Configure(events *ecs.EventBus) {
	ecs.Subscribe(events, func(ev ExplosionEvent) {
		e.received = append(e.received, ev)
	})
}

func TestSystemsUpdateMovesEntities(t *testing.T) {
	w := newTestWorld()
	reg := ecs.NewSystems(w, ecs.NewEventBus())

	e := w.Create()
	ecs.Assign(w, e.ID(), Position{X: 1})
	ecs.Assign(w, e.ID(), Direction{DX: 2})

	reg.Add(&MovementSystem{})
	reg.Configure()
	ecs.Update[MovementSystem](reg, 0.5)

	assert.InDelta(t, 2.0, ecs.ComponentOf[Position](w, e.ID()).Get().X, 1e-6)
}

func TestSystemsUpdateBeforeConfigurePanics(t *testing.T) {
	w := newTestWorld()
	reg := ecs.NewSystems(w, ecs.NewEventBus())
	reg.Add(&MovementSystem{})

	assert.Panics(t, func() {
		ecs.Update[MovementSystem](reg, 0.1)
	})
	assert.Panics(t, func() {
		reg.UpdateAll(0.1)
	})
}

func TestSystemsGetUnknownPanics(t *testing.T) {
	w := newTestWorld()
	reg := ecs.NewSystems(w, ecs.NewEventBus())

	assert.Panics(t, func() {
		ecs.SystemOf[MovementSystem](reg)
	})
}

func TestSystemsGetReturnsInstance(t *testing.T) {
	w := newTestWorld()
	reg := ecs.NewSystems(w, ecs.NewEventBus())

	sys := &DecaySystem{}
	reg.Add(sys)
	assert.Same(t, sys, ecs.SystemOf[DecaySystem](reg))
}

func TestSystemsConfigureRunsCallbacks(t *testing.T) {
	w := newTestWorld()
	reg := ecs.NewSystems(w, ecs.NewEventBus())

	sys := &DecaySystem{}
	reg.Add(sys)
	reg.Configure()
	assert.True(t, sys.configured)
}

func TestSystemsDuplicateAddReplaces(t *testing.T) {
	w := newTestWorld()
	reg := ecs.NewSystems(w, ecs.NewEventBus())

	first := &DecaySystem{}
	second := &DecaySystem{}
	reg.Add(first)
	reg.Add(second)
	reg.Configure()

	reg.UpdateAll(0.1)
	assert.Equal(t, 0, first.updates)
	assert.Equal(t, 1, second.updates)
	assert.Same(t, second, ecs.SystemOf[DecaySystem](reg))
}

func TestSystemsCommandsFlushAfterPass(t *testing.T) {
	w := newTestWorld()
	reg := ecs.NewSystems(w, ecs.NewEventBus())

	e := w.Create()
	ecs.Assign(w, e.ID(), Health{Current: 1, Max: 1})

	reg.Add(&DecaySystem{})
	reg.Configure()
	reg.UpdateAll(1.0)

	// The decayed entity was destroyed by the deferred command buffer.
	assert.False(t, w.Valid(e.ID()))
}

func TestSystemsEventDelivery(t *testing.T) {
	w := newTestWorld()
	events := ecs.NewEventBus()
	reg := ecs.NewSystems(w, events)

	sys := &ExplosionSystem{}
	reg.Add(sys)
	reg.Configure()

	e := w.Create()
	ecs.Publish(events, ExplosionEvent{Origin: e.ID()})

	require.Len(t, sys.received, 1)
	assert.Equal(t, e.ID(), sys.received[0].Origin)
}

func TestSystemsStats(t *testing.T) {
	w := newTestWorld()
	reg := ecs.NewSystems(w, ecs.NewEventBus())

	reg.Add(&MovementSystem{})
	reg.Add(&DecaySystem{})
	reg.Configure()

	reg.UpdateAll(0.1)
	reg.UpdateAll(0.1)

	stats := reg.Stats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(4), stats.TotalExecutions)
	require.Len(t, stats.Systems, 2)
	assert.Equal(t, "MovementSystem", stats.Systems[0].Name)
	assert.Equal(t, int64(2), stats.Systems[0].ExecutionCount)
	assert.GreaterOrEqual(t, stats.Systems[0].MaxDuration, stats.Systems[0].MinDuration)
}

func TestSystemsRunStopsOnCancel(t *testing.T) {
	w := newTestWorld()
	reg := ecs.NewSystems(w, ecs.NewEventBus())

	sys := &DecaySystem{}
	reg.Add(sys)
	reg.Configure()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	reg.Run(ctx, 5*time.Millisecond)

	assert.Greater(t, sys.updates, 0)
}

func TestQueryRequiresExecute(t *testing.T) {
	w := newTestWorld()

	q := ecs.NewQuery[struct{ *Position }](w)
	assert.Panics(t, func() {
		for range q.Iter() {
			t.Fatal("unreachable")
		}
	})

	e := w.Create()
	ecs.Assign(w, e.ID(), Position{X: 1})
	q.Execute()

	count := 0
	for id, item := range q.Iter() {
		count++
		assert.Equal(t, e.ID(), id)
		assert.Equal(t, float32(1), item.Position.X)
	}
	assert.Equal(t, 1, count)
}

func TestQuerySnapshotIsStable(t *testing.T) {
	w := newTestWorld()

	q := ecs.NewQuery[struct{ *Position }](w)
	e := w.Create()
	ecs.Assign(w, e.ID(), Position{})
	q.Execute()

	// Entities spawned after Execute are invisible until the next Execute.
	later := w.Create()
	ecs.Assign(w, later.ID(), Position{})

	count := 0
	for range q.Iter() {
		count++
	}
	assert.Equal(t, 1, count)

	q.Execute()
	count = 0
	for range q.Iter() {
		count++
	}
	assert.Equal(t, 2, count)
}
