package ecs_test

import "github.com/plus3/hive/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Direction struct {
	DX, DY float32
}

type Health struct {
	Current int
	Max     int
}

type Name struct {
	Value string
}

type AI struct {
	State int
}

// Custom primitive types for testing non-struct components
type Score int32
type Temperature float64

// Tracker counts drop-hook invocations through a shared counter.
type Tracker struct {
	ID int
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Direction](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[AI](registry)
	ecs.RegisterComponent[Score](registry)
	ecs.RegisterComponent[Temperature](registry)
	return registry
}

func newTestWorld() *ecs.World {
	return ecs.NewWorld(newTestRegistry())
}
