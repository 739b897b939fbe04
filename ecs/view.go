package ecs

import (
	"iter"
	"reflect"
	"slices"
	"unsafe"
)

// View is a lazy filtered iteration over entities whose mask contains every
// component named by T. The type parameter T is a struct of component-pointer
// fields; embedded fields are required, named fields may carry the tag
// `ecs:"optional"` to be filled with nil when absent instead of filtering.
//
// Iteration order is ascending entity index, stable under insertions: an
// index recycled mid-scan is only revisited if the scan has not reached it,
// and indices past the capacity snapshot taken at Iter are never visited.
// Destroying an entity mid-scan is safe; its zeroed mask no longer matches.
type View[T any] struct {
	w           *World
	ids         []ComponentID
	optional    []bool
	fieldOffset []uintptr
	mask        Mask
}

// NewView creates a view for the component set described by struct type T.
// Every field must be a pointer to a registered component type, and at least
// one field must be required.
func NewView[T any](w *World) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("ecs: View type parameter must be a struct")
	}

	v := &View[T]{w: w}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Ptr {
			panic("ecs: View struct fields must be pointer types")
		}
		cid, ok := w.registry.idOf(field.Type.Elem())
		if !ok {
			panic("ecs: component type " + field.Type.Elem().String() + " not registered")
		}

		isOptional := false
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				isOptional = true
			default:
				panic("ecs: invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
		}

		v.ids = append(v.ids, cid)
		v.optional = append(v.optional, isOptional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
		if !isOptional {
			v.mask.Set(cid)
		}
	}
	if v.mask.IsZero() {
		panic("ecs: View needs at least one required component")
	}
	return v
}

// Mask returns the required-component mask this view filters by.
func (v *View[T]) Mask() Mask {
	return v.mask
}

// populate writes component pointers into the result struct through the
// pre-computed field offsets. Reports false if a required bit is clear.
func (v *View[T]) populate(resultPtr unsafe.Pointer, index uint32, m Mask) bool {
	for i, cid := range v.ids {
		fieldPtr := unsafe.Pointer(uintptr(resultPtr) + v.fieldOffset[i])
		if !m.Has(cid) {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}
		*(*unsafe.Pointer)(fieldPtr) = v.w.store.cols[cid].ptr(index)
	}
	return true
}

// Get returns the populated view struct for one entity, or nil if the entity
// is missing a required component. Panics on a stale id.
func (v *View[T]) Get(id EntityId) *T {
	v.w.assertValid(id)
	index := id.Index()
	var result T
	if !v.populate(unsafe.Pointer(&result), index, v.w.masks[index]) {
		return nil
	}
	return &result
}

// GetRef resolves a stable reference and unpacks it, or nil if invalidated.
func (v *View[T]) GetRef(ref *EntityRef) *T {
	if !ref.Valid() {
		return nil
	}
	return v.Get(ref.Id)
}

// Iter yields (EntityId, T) for every matching entity in ascending index
// order. The capacity snapshot is taken here; entities that extend capacity
// during the scan are not visited.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		limit := v.w.ids.nextIndex
		var result T
		resultPtr := unsafe.Pointer(&result)
		for i := uint32(0); i < limit; i++ {
			m := v.w.masks[i]
			if !m.ContainsAll(v.mask) {
				continue
			}
			if !v.populate(resultPtr, i, m) {
				continue
			}
			if !yield(v.w.ids.idFor(i), result) {
				return
			}
		}
	}
}

// Values yields only the unpacked component structs.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Count scans the view and returns the number of matching entities.
func (v *View[T]) Count() int {
	n := 0
	limit := v.w.ids.nextIndex
	for i := uint32(0); i < limit; i++ {
		if v.w.masks[i].ContainsAll(v.mask) {
			n++
		}
	}
	return n
}

// EntitiesWith yields every entity whose mask contains all the given
// components, ascending by index, without unpacking. This is the raw
// mask-filtered view for callers that do not want a struct projection.
func (w *World) EntitiesWith(ids ...ComponentID) iter.Seq[EntityId] {
	mask := MaskOf(ids...)
	if mask.IsZero() {
		panic("ecs: EntitiesWith needs at least one component")
	}
	return func(yield func(EntityId) bool) {
		limit := w.ids.nextIndex
		for i := uint32(0); i < limit; i++ {
			if !w.masks[i].ContainsAll(mask) {
				continue
			}
			if !yield(w.ids.idFor(i)) {
				return
			}
		}
	}
}

// Entities yields every live entity in ascending index order, ignoring
// masks. The free list is snapshotted and sorted lazily when iteration
// begins; a cursor walks it in parallel to skip dead slots cheaply.
func (w *World) Entities() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		limit := w.ids.nextIndex
		free := slices.Clone(w.ids.freeList)
		slices.Sort(free)
		fi := 0
		for i := uint32(0); i < limit; i++ {
			for fi < len(free) && free[fi] < i {
				fi++
			}
			if fi < len(free) && free[fi] == i {
				fi++
				continue
			}
			if !yield(w.ids.idFor(i)) {
				return
			}
		}
	}
}
