package ecs

import (
	"reflect"
	"unsafe"
)

// ComponentID is the dense, 0-based position of a component type in the
// catalog. The per-entity mask width equals the number of registered types.
type ComponentID uint8

type componentInfo struct {
	typ       reflect.Type
	size      uintptr
	id        ComponentID
	newColumn func() column
}

// ComponentRegistry is the component catalog: the fixed set of component
// types a World operates on. Each Storage/World pair owns its own registry,
// so independent worlds can coexist without interference.
//
// The catalog is sealed when a World is built from it; registering after that
// panics. cmd/ecsgen can generate the registration calls from source so the
// dense IDs stay stable across builds.
type ComponentRegistry struct {
	infos   []componentInfo
	typeMap map[reflect.Type]ComponentID
	offsets []uintptr
	sizeSum uintptr
	sealed  bool
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		typeMap: make(map[reflect.Type]ComponentID, 16),
	}
}

// RegisterComponent registers component type T with the contiguous-block
// storage layout and returns its dense ID. Registering the same type twice
// returns the existing ID.
func RegisterComponent[T any](r *ComponentRegistry) ComponentID {
	return register[T](r, func() column { return &blockColumn[T]{} })
}

// RegisterComponentWithDrop registers T with a drop hook that runs exactly
// once for every stored component instance, just before its slot is released
// (remove, entity destroy, or world reset). The value is still live and
// addressable when the hook runs.
func RegisterComponentWithDrop[T any](r *ComponentRegistry, drop func(*T)) ComponentID {
	return register[T](r, func() column {
		return &blockColumn[T]{drop: drop}
	})
}

// RegisterPackedComponent registers T with the packed column layout: dense,
// cache-ordered records with tail-swap deletion. Pointers into a packed
// column are invalidated by any create or destroy of that component type.
func RegisterPackedComponent[T any](r *ComponentRegistry) ComponentID {
	return register[T](r, func() column { return &packedColumn[T]{} })
}

// RegisterPackedComponentWithDrop is RegisterPackedComponent with a drop hook.
func RegisterPackedComponentWithDrop[T any](r *ComponentRegistry, drop func(*T)) ComponentID {
	return register[T](r, func() column {
		return &packedColumn[T]{drop: drop}
	})
}

func register[T any](r *ComponentRegistry, factory func() column) ComponentID {
	if r.sealed {
		panic("ecs: cannot register components after a World has been built")
	}
	t := reflect.TypeFor[T]()
	if id, ok := r.typeMap[t]; ok {
		return id
	}
	if len(r.infos) >= MaxComponentTypes {
		panic("ecs: too many component types (max 256)")
	}
	id := ComponentID(len(r.infos))
	r.infos = append(r.infos, componentInfo{
		typ:       t,
		size:      unsafe.Sizeof(*new(T)),
		id:        id,
		newColumn: factory,
	})
	r.typeMap[t] = id
	return id
}

// ComponentIDFor returns the dense ID of T. Panics if T was never registered.
func ComponentIDFor[T any](r *ComponentRegistry) ComponentID {
	id, ok := r.typeMap[reflect.TypeFor[T]()]
	if !ok {
		panic("ecs: component type " + reflect.TypeFor[T]().String() + " not registered")
	}
	return id
}

// idOf is the reflect-typed lookup used by the type-erased paths (Commands,
// debug tooling).
func (r *ComponentRegistry) idOf(t reflect.Type) (ComponentID, bool) {
	id, ok := r.typeMap[t]
	return id, ok
}

// Len returns the number of registered component types.
func (r *ComponentRegistry) Len() int {
	return len(r.infos)
}

// TypeOf returns the reflect.Type registered under id.
func (r *ComponentRegistry) TypeOf(id ComponentID) reflect.Type {
	return r.infos[id].typ
}

// Size returns sizeof(T) for the type registered under id.
func (r *ComponentRegistry) Size(id ComponentID) uintptr {
	return r.infos[id].size
}

// Offset returns the sum of sizes of all catalog types preceding id: the
// byte offset of id inside a full entity record. The block layout stores
// types in separate columns, so this is catalog geometry, not an address.
func (r *ComponentRegistry) Offset(id ComponentID) uintptr {
	return r.offsets[id]
}

// SizeSum returns the total bytes per entity with every component present.
func (r *ComponentRegistry) SizeSum() uintptr {
	return r.sizeSum
}

// seal freezes the catalog and computes the record geometry.
func (r *ComponentRegistry) seal() {
	if r.sealed {
		return
	}
	r.sealed = true
	r.offsets = make([]uintptr, len(r.infos))
	var sum uintptr
	for i, info := range r.infos {
		r.offsets[i] = sum
		sum += info.size
	}
	r.sizeSum = sum
}
