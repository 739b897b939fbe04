package ecs

import "reflect"

// Singleton provides access to a single component instance owned by the
// World but not attached to any entity. Use it for global simulation state
// such as input snapshots or configuration.
type Singleton[T any] struct {
	w      *World
	cached *T
}

// AddSingleton stores v as the world's single T instance and returns its
// address. Panics if a T singleton already exists.
func AddSingleton[T any](w *World, v T) *T {
	t := reflect.TypeFor[T]()
	if w.singletons == nil {
		w.singletons = make(map[reflect.Type]any, 8)
	}
	if _, ok := w.singletons[t]; ok {
		panic("ecs: singleton " + t.String() + " already exists")
	}
	p := &v
	w.singletons[t] = p
	return p
}

// NewSingleton returns a Singleton accessor for T, creating the instance if
// it does not exist yet (with the optional initializer, else the zero value).
// The instance is guaranteed to exist after the call.
func NewSingleton[T any](w *World, initializer ...T) *Singleton[T] {
	s := &Singleton[T]{w: w}
	if s.lookup() == nil {
		var v T
		if len(initializer) > 0 {
			v = initializer[0]
		}
		AddSingleton(w, v)
	}
	s.cached = s.lookup()
	return s
}

// Init wires the Singleton to a world. Called by the system registry through
// reflection during system registration.
func (s *Singleton[T]) Init(w *World) {
	s.w = w
	s.cached = s.lookup()
}

// Get returns the singleton instance, or nil if it was never added.
func (s *Singleton[T]) Get() *T {
	if s.cached == nil {
		s.cached = s.lookup()
	}
	return s.cached
}

// Exists reports whether the singleton has been added to the world.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

func (s *Singleton[T]) lookup() *T {
	if s.w == nil || s.w.singletons == nil {
		return nil
	}
	if p, ok := s.w.singletons[reflect.TypeFor[T]()]; ok {
		return p.(*T)
	}
	return nil
}
