package ecs

import "weak"

// Entity is a trivially copyable handle: the World pointer plus a
// generation-tagged id. All operations defer to the World.
type Entity struct {
	w  *World
	id EntityId
}

// ID returns the underlying entity id.
func (e Entity) ID() EntityId {
	return e.id
}

// World returns the owning World.
func (e Entity) World() *World {
	return e.w
}

// Valid reports whether the handle still names a live entity.
func (e Entity) Valid() bool {
	return e.w != nil && e.w.Valid(e.id)
}

// Mask returns the entity's component presence mask.
func (e Entity) Mask() Mask {
	return e.w.MaskOf(e.id)
}

// Destroy tears the entity down and invalidates this handle.
func (e *Entity) Destroy() {
	e.w.Destroy(e.id)
	e.id = InvalidId
	e.w = nil
}

// Component is a value handle to one component of one entity. It is valid iff
// the entity is live and its presence bit for T is set.
type Component[T any] struct {
	w  *World
	id EntityId
}

// Entity returns the id this handle belongs to.
func (c Component[T]) Entity() EntityId {
	return c.id
}

// Valid reports whether the component can be dereferenced.
func (c Component[T]) Valid() bool {
	return c.w != nil && Has[T](c.w, c.id)
}

// Get returns a pointer to the stored component. Dereferencing through an
// invalid handle is a usage error and panics.
func (c Component[T]) Get() *T {
	if !c.Valid() {
		panic("ecs: dereference through invalid component handle")
	}
	cid := ComponentIDFor[T](c.w.registry)
	return (*T)(c.w.store.cols[cid].ptr(c.id.Index()))
}

// Remove destroys the component, firing the removed observer first. A no-op
// if the component is already gone.
func (c Component[T]) Remove() {
	Remove[T](c.w, c.id)
}

// EntityRef is a stable, shareable reference to an entity. Unlike the plain
// Entity handle it is actively invalidated (Id zeroed) when the entity is
// destroyed, so long-lived holders can poll Valid without keeping a stale
// generation around. Refs for the same id are shared through a weak table.
type EntityRef struct {
	Id EntityId
	w  *World
}

// Valid reports whether the referenced entity is still live.
func (r *EntityRef) Valid() bool {
	return r != nil && r.Id != InvalidId && r.w.Valid(r.Id)
}

// Ref returns the shared stable reference for id, creating it on first use.
// Returns nil for a stale id.
func (w *World) Ref(id EntityId) *EntityRef {
	if !w.Valid(id) {
		return nil
	}
	if wp, ok := w.refs.Get(id); ok {
		if ref := wp.Value(); ref != nil {
			return ref
		}
		w.refs.Del(id)
	}
	ref := &EntityRef{Id: id, w: w}
	w.refs.Put(id, weak.Make(ref))
	return ref
}

// invalidateRef zeroes the outstanding ref for id, if any holder survives.
func (w *World) invalidateRef(id EntityId) {
	wp, ok := w.refs.Get(id)
	if !ok {
		return
	}
	if ref := wp.Value(); ref != nil {
		ref.Id = InvalidId
	}
	w.refs.Del(id)
}
