package ecs

import "unsafe"

// Observer callbacks run inline on the calling thread at well-defined points
// of the entity lifecycle. The World holds exactly one slot per event kind;
// registering replaces the previous callback and registering nil clears the
// slot, so an unobserved World pays only a nil check.
//
// An observer must not assign to or remove from the entity it is being
// notified about. Mutating other entities is permitted.

// OnEntityCreated installs the callback fired after an entity is allocated.
func OnEntityCreated(w *World, fn func(EntityId)) {
	w.onCreated = fn
}

// OnEntityDestroyed installs the callback fired after an entity's components
// are destroyed and its mask cleared, just before its version bumps.
func OnEntityDestroyed(w *World, fn func(EntityId)) {
	w.onDestroyed = fn
}

// OnComponentAdded installs the callback fired after a T is constructed on an
// entity. The pointer is live and stable until the component is removed (or,
// for packed columns, until the next structural change to that column).
func OnComponentAdded[T any](w *World, fn func(EntityId, *T)) {
	cid := ComponentIDFor[T](w.registry)
	if fn == nil {
		w.added[cid] = nil
		return
	}
	w.added[cid] = func(id EntityId, p unsafe.Pointer) {
		fn(id, (*T)(p))
	}
}

// OnComponentRemoved installs the callback fired just before a T is
// destroyed. The value is still live and addressable inside the callback.
func OnComponentRemoved[T any](w *World, fn func(EntityId, *T)) {
	cid := ComponentIDFor[T](w.registry)
	if fn == nil {
		w.removed[cid] = nil
		return
	}
	w.removed[cid] = func(id EntityId, p unsafe.Pointer) {
		fn(id, (*T)(p))
	}
}
