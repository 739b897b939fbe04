package ecs

import (
	"reflect"
	"unsafe"
	"weak"

	"github.com/kamstrup/intmap"
)

// World combines the ID space, the component catalog and the storage backend.
// It owns the per-entity presence masks and dispatches lifecycle observers.
//
// A World is strictly single-threaded; callers serialize access externally or
// shard work across World instances. Do not copy a World after first use: the
// storage columns and observer closures assume a stable address.
type World struct {
	registry *ComponentRegistry
	store    *Storage
	ids      idSpace
	masks    []Mask

	onCreated   func(EntityId)
	onDestroyed func(EntityId)
	added       []func(EntityId, unsafe.Pointer)
	removed     []func(EntityId, unsafe.Pointer)

	refs       *intmap.Map[EntityId, weak.Pointer[EntityRef]]
	singletons map[reflect.Type]any
}

// NewWorld builds a World over the given catalog and seals it. The set of
// component types is fixed from this point on.
func NewWorld(registry *ComponentRegistry) *World {
	store := NewStorage(registry)
	return &World{
		registry: registry,
		store:    store,
		added:    make([]func(EntityId, unsafe.Pointer), registry.Len()),
		removed:  make([]func(EntityId, unsafe.Pointer), registry.Len()),
		refs:     intmap.New[EntityId, weak.Pointer[EntityRef]](256),
	}
}

// Registry returns the sealed component catalog.
func (w *World) Registry() *ComponentRegistry {
	return w.registry
}

// Storage exposes the raw memory backend, mainly for tooling and tests.
func (w *World) Storage() *Storage {
	return w.store
}

// Create allocates a fresh entity, preferring a recycled slot. The returned
// handle is valid and its mask is empty.
func (w *World) Create() Entity {
	index, version := w.ids.allocate()
	w.accommodate()
	w.masks[index] = Mask{}
	id := NewEntityId(index, version)
	if w.onCreated != nil {
		w.onCreated(id)
	}
	return Entity{w: w, id: id}
}

// CreateMany allocates n entities, reserving capacity once up front.
func (w *World) CreateMany(n int) []Entity {
	w.ids.reserve(int(w.ids.nextIndex) + n)
	w.accommodate()
	out := make([]Entity, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, w.Create())
	}
	return out
}

// Valid reports whether id names the current generation of its slot. Safe on
// any id, including InvalidId.
func (w *World) Valid(id EntityId) bool {
	return id != InvalidId && w.ids.valid(id.Index(), id.Version())
}

// Destroy tears down the entity: the removed observer fires for each present
// component in catalog order with the value still live, the slots are
// destroyed, then the mask is cleared, the destroyed observer fires, the
// version bumps and the index returns to the free list. Panics on a stale id.
func (w *World) Destroy(id EntityId) {
	w.assertValid(id)
	index := id.Index()
	mask := w.masks[index]
	w.store.applyPresent(mask, index, func(cid ComponentID, p unsafe.Pointer) {
		if fn := w.removed[cid]; fn != nil {
			fn(id, p)
		}
	})
	w.store.destroyPresent(mask, index)
	w.masks[index] = Mask{}
	if w.onDestroyed != nil {
		w.onDestroyed(id)
	}
	w.invalidateRef(id)
	w.ids.release(index)
}

// Reset destroys every live entity in ascending index order, then releases
// the storage blocks. The catalog and observers survive; entity capacity
// does not.
func (w *World) Reset() {
	for id := range w.Entities() {
		w.Destroy(id)
	}
	w.store.Reset()
	w.ids.reset()
	w.masks = w.masks[:0]
	w.refs = intmap.New[EntityId, weak.Pointer[EntityRef]](256)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.ids.live()
}

// Cap returns the number of entity slots ever materialized.
func (w *World) Cap() int {
	return w.ids.capacity()
}

// MaskOf returns the entity's component presence mask. Panics on a stale id.
func (w *World) MaskOf(id EntityId) Mask {
	w.assertValid(id)
	return w.masks[id.Index()]
}

func (w *World) assertValid(id EntityId) {
	if !w.Valid(id) {
		panic("ecs: stale entity handle")
	}
}

// accommodate grows the mask array and storage to the current ID capacity.
func (w *World) accommodate() {
	n := w.ids.capacity()
	for len(w.masks) < n {
		w.masks = append(w.masks, Mask{})
	}
	w.store.Resize(n)
}

// Assign constructs T on the entity from a copy of v, sets the presence bit
// and fires the added observer. Panics if the id is stale or the entity
// already has a T.
func Assign[T any](w *World, id EntityId, v T) Component[T] {
	p := assignSlot[T](w, id)
	*p = v
	w.notifyAdded(ComponentIDFor[T](w.registry), id, unsafe.Pointer(p))
	return Component[T]{w: w, id: id}
}

// AssignZero constructs a zero-valued T in place, for callers that fill the
// component through the returned handle.
func AssignZero[T any](w *World, id EntityId) Component[T] {
	p := assignSlot[T](w, id)
	w.notifyAdded(ComponentIDFor[T](w.registry), id, unsafe.Pointer(p))
	return Component[T]{w: w, id: id}
}

func assignSlot[T any](w *World, id EntityId) *T {
	w.assertValid(id)
	cid := ComponentIDFor[T](w.registry)
	index := id.Index()
	if w.masks[index].Has(cid) {
		panic("ecs: duplicate component " + w.registry.TypeOf(cid).String())
	}
	p := (*T)(w.store.cols[cid].create(index))
	w.masks[index].Set(cid)
	return p
}

func (w *World) notifyAdded(cid ComponentID, id EntityId, p unsafe.Pointer) {
	if fn := w.added[cid]; fn != nil {
		fn(id, p)
	}
}

// Remove destroys the entity's T, firing the removed observer first with the
// value still live. A no-op when the entity has no T. Panics on a stale id.
func Remove[T any](w *World, id EntityId) {
	w.assertValid(id)
	cid := ComponentIDFor[T](w.registry)
	index := id.Index()
	if !w.masks[index].Has(cid) {
		return
	}
	if fn := w.removed[cid]; fn != nil {
		fn(id, w.store.cols[cid].ptr(index))
	}
	w.store.cols[cid].destroy(index)
	w.masks[index].Clear(cid)
}

// Has reports whether id is valid and the entity has a T. Never panics.
func Has[T any](w *World, id EntityId) bool {
	if !w.Valid(id) {
		return false
	}
	return w.masks[id.Index()].Has(ComponentIDFor[T](w.registry))
}

// ComponentOf returns a handle to the entity's T. The handle is valid iff the
// presence bit is set. Panics on a stale id.
func ComponentOf[T any](w *World, id EntityId) Component[T] {
	w.assertValid(id)
	return Component[T]{w: w, id: id}
}

// Components2 returns handles for two component types at once.
func Components2[A, B any](w *World, id EntityId) (Component[A], Component[B]) {
	w.assertValid(id)
	return Component[A]{w: w, id: id}, Component[B]{w: w, id: id}
}

// Components3 returns handles for three component types at once.
func Components3[A, B, C any](w *World, id EntityId) (Component[A], Component[B], Component[C]) {
	w.assertValid(id)
	return Component[A]{w: w, id: id}, Component[B]{w: w, id: id}, Component[C]{w: w, id: id}
}

// assignAny is the type-erased assign used by Commands. The component value
// is copied into the slot through reflection.
func (w *World) assignAny(id EntityId, component any) {
	w.assertValid(id)
	t, v := normalizeComponent(component)
	cid, ok := w.registry.idOf(t)
	if !ok {
		panic("ecs: component type " + t.String() + " not registered")
	}
	index := id.Index()
	if w.masks[index].Has(cid) {
		panic("ecs: duplicate component " + t.String())
	}
	p := w.store.cols[cid].create(index)
	reflectCopy(t, p, v)
	w.masks[index].Set(cid)
	w.notifyAdded(cid, id, p)
}

// ComponentByType returns a live pointer to the entity's component of the
// given reflected type, boxed as an interface, or nil when the entity lacks
// it or the type is not in the catalog. Intended for debug tooling; typed
// access goes through ComponentOf.
func (w *World) ComponentByType(id EntityId, t reflect.Type) any {
	w.assertValid(id)
	cid, ok := w.registry.idOf(t)
	if !ok || !w.masks[id.Index()].Has(cid) {
		return nil
	}
	return reflect.NewAt(t, w.store.cols[cid].ptr(id.Index())).Interface()
}

// removeByID is the type-erased remove used by Commands.
func (w *World) removeByID(id EntityId, cid ComponentID) {
	w.assertValid(id)
	index := id.Index()
	if !w.masks[index].Has(cid) {
		return
	}
	if fn := w.removed[cid]; fn != nil {
		fn(id, w.store.cols[cid].ptr(index))
	}
	w.store.cols[cid].destroy(index)
	w.masks[index].Clear(cid)
}
