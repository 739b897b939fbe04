package ecs

import "iter"

// Query wraps a View with per-frame result caching. The system registry
// executes every Query field of its systems before an update pass, so system
// code iterates over a stable snapshot instead of re-scanning masks.
type Query[T any] struct {
	view *View[T]
	w    *World

	cachedEntities   []EntityId
	cachedComponents []T
	cacheValid       bool
}

// NewQuery creates a Query over the given world.
func NewQuery[T any](w *World) *Query[T] {
	return &Query[T]{view: NewView[T](w), w: w}
}

// Init initializes or re-initializes the Query. Called by the system
// registry through reflection during system registration.
func (q *Query[T]) Init(w *World) {
	q.view = NewView[T](w)
	q.w = w
	q.cacheValid = false
}

// Execute rebuilds the entity and component caches for this frame. Called
// automatically before systems run.
func (q *Query[T]) Execute() {
	q.cachedEntities = q.cachedEntities[:0]
	q.cachedComponents = q.cachedComponents[:0]
	for id, item := range q.view.Iter() {
		q.cachedEntities = append(q.cachedEntities, id)
		q.cachedComponents = append(q.cachedComponents, item)
	}
	q.cacheValid = true
}

// Iter yields the cached (EntityId, T) pairs. Panics if Execute has not run
// this frame.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.cacheValid {
		panic("ecs: Query.Iter() called before Query.Execute()")
	}
	return func(yield func(EntityId, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Values yields the cached component structs only.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.cacheValid {
		panic("ecs: Query.Values() called before Query.Execute()")
	}
	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}
