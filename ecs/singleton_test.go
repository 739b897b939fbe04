package ecs_test

import (
	"testing"

	"github.com/plus3/hive/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gameClock struct {
	Elapsed float64
}

func TestSingletonCreatedOnFirstAccess(t *testing.T) {
	w := newTestWorld()

	s := ecs.NewSingleton[gameClock](w)
	require.NotNil(t, s.Get())
	assert.True(t, s.Exists())
	assert.Equal(t, 0.0, s.Get().Elapsed)
}

func TestSingletonInitializer(t *testing.T) {
	w := newTestWorld()

	s := ecs.NewSingleton(w, gameClock{Elapsed: 10})
	assert.Equal(t, 10.0, s.Get().Elapsed)
}

func TestSingletonSharedInstance(t *testing.T) {
	w := newTestWorld()

	a := ecs.NewSingleton[gameClock](w)
	b := ecs.NewSingleton[gameClock](w)

	a.Get().Elapsed = 5
	assert.Equal(t, 5.0, b.Get().Elapsed)
	assert.Same(t, a.Get(), b.Get())
}

func TestAddSingletonDuplicatePanics(t *testing.T) {
	w := newTestWorld()

	ecs.AddSingleton(w, gameClock{})
	assert.Panics(t, func() {
		ecs.AddSingleton(w, gameClock{})
	})
}

type clockSystem struct {
	Clock ecs.Singleton[gameClock]
}

func (c *clockSystem) Update(frame *ecs.Frame) {
	c.Clock.Get().Elapsed += frame.DeltaTime
}

func TestSingletonFieldInitializedByRegistry(t *testing.T) {
	w := newTestWorld()
	ecs.AddSingleton(w, gameClock{})

	reg := ecs.NewSystems(w, ecs.NewEventBus())
	reg.Add(&clockSystem{})
	reg.Configure()

	reg.UpdateAll(0.25)
	reg.UpdateAll(0.25)

	s := ecs.NewSingleton[gameClock](w)
	assert.InDelta(t, 0.5, s.Get().Elapsed, 1e-9)
}
