package ecs

import (
	"reflect"
	"unsafe"
)

// Commands buffers structural mutations so systems can queue spawns, destroys
// and component changes while a scan is in flight. The buffer is flushed by
// the system registry at the end of each update pass: destroys first, then
// removes, adds, spawns and deferred functions.
type Commands struct {
	spawns   []spawnCommand
	destroys []EntityId
	adds     []addComponentCommand
	removes  []removeComponentCommand
	defers   []func()
}

// NewCommands creates an empty command buffer. The system registry creates
// one per frame; standalone use is fine as long as Flush runs outside any
// scan.
func NewCommands() *Commands {
	return &Commands{}
}

type spawnCommand struct {
	components []any
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity EntityId
	cid    ComponentID
}

// Spawn queues creation of an entity carrying the given component values.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// Destroy queues destruction of an entity.
func (c *Commands) Destroy(id EntityId) {
	c.destroys = append(c.destroys, id)
}

// Add queues assignment of a component value to an entity.
func (c *Commands) Add(id EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{entity: id, component: component})
}

// Remove queues removal of a component from an entity.
func (c *Commands) Remove(id EntityId, cid ComponentID) {
	c.removes = append(c.removes, removeComponentCommand{entity: id, cid: cid})
}

// Defer queues an arbitrary function to run after all structural changes.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Flush applies all queued operations to the world and resets the buffer.
// Operations against entities destroyed earlier in the same flush are
// silently dropped.
func (c *Commands) Flush(w *World) {
	destroyed := make(map[EntityId]bool, len(c.destroys))
	for _, id := range c.destroys {
		if w.Valid(id) {
			w.Destroy(id)
		}
		destroyed[id] = true
	}

	for _, cmd := range c.removes {
		if !destroyed[cmd.entity] && w.Valid(cmd.entity) {
			w.removeByID(cmd.entity, cmd.cid)
		}
	}

	for _, cmd := range c.adds {
		if !destroyed[cmd.entity] && w.Valid(cmd.entity) {
			w.assignAny(cmd.entity, cmd.component)
		}
	}

	for _, cmd := range c.spawns {
		e := w.Create()
		for _, comp := range cmd.components {
			w.assignAny(e.ID(), comp)
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.destroys = c.destroys[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}

// normalizeComponent accepts a component as a value or a pointer and returns
// its registered type plus a value to copy from.
func normalizeComponent(component any) (reflect.Type, reflect.Value) {
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()
	if t.Kind() == reflect.Map || t.Kind() == reflect.Chan || t.Kind() == reflect.Func {
		panic("ecs: components cannot be maps, channels, or functions")
	}
	return t, v
}

// reflectCopy copies src into the raw slot p, which holds a T of type t.
func reflectCopy(t reflect.Type, p unsafe.Pointer, src reflect.Value) {
	reflect.NewAt(t, p).Elem().Set(src)
}
