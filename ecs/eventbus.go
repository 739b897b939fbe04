package ecs

import "reflect"

// MaxEventTypes is the maximum number of distinct event types one bus can
// carry.
const MaxEventTypes = 256

// EventBus is a typed, multi-subscriber event channel for decoupled
// communication between systems. Handlers run synchronously in subscription
// order on the publishing goroutine; Publish does not allocate.
//
// This is the multi-subscriber complement to the World's single-slot
// observers: lifecycle observers belong to the World, everything else
// (input, collisions, game events) goes through a bus.
type EventBus struct {
	eventTypeMap    map[reflect.Type]uint8
	handlers        [MaxEventTypes][]interface{}
	nextEventTypeID uint8
}

// NewEventBus creates an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{eventTypeMap: make(map[reflect.Type]uint8, 16)}
}

// Subscribe registers a handler for events of type T, appended after any
// existing handlers for that type.
func Subscribe[T any](bus *EventBus, handler func(T)) {
	id := bus.eventTypeID(reflect.TypeFor[T]())
	if cap(bus.handlers[id]) == 0 {
		bus.handlers[id] = make([]interface{}, 0, 4)
	}
	bus.handlers[id] = append(bus.handlers[id], handler)
}

// Publish delivers event to every subscribed handler, synchronously and in
// subscription order. Publishing a type nobody subscribed to is a no-op.
func Publish[T any](bus *EventBus, event T) {
	if id, ok := bus.eventTypeMap[reflect.TypeFor[T]()]; ok {
		for _, h := range bus.handlers[id] {
			h.(func(T))(event)
		}
	}
}

func (bus *EventBus) eventTypeID(t reflect.Type) uint8 {
	if bus.eventTypeMap == nil {
		bus.eventTypeMap = make(map[reflect.Type]uint8)
	}
	if id, ok := bus.eventTypeMap[t]; ok {
		return id
	}
	if len(bus.eventTypeMap) >= MaxEventTypes {
		panic("ecs: too many event types")
	}
	id := bus.nextEventTypeID
	bus.nextEventTypeID++
	bus.eventTypeMap[t] = id
	return id
}
