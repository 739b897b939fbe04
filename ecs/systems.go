package ecs

import (
	"context"
	"reflect"
	"strings"
	"time"
)

// Frame is the per-update context handed to systems: the world, the elapsed
// time, and a Commands buffer for structural changes that must wait until
// the pass is over.
type Frame struct {
	World     *World
	DeltaTime float64
	Commands  *Commands
}

func newFrame(dt float64, w *World) *Frame {
	return &Frame{World: w, DeltaTime: dt, Commands: NewCommands()}
}

// System is a named update routine that mutates the world once per frame.
type System interface {
	Update(frame *Frame)
}

// Configurer is the optional capability for systems that need one-time setup,
// typically to subscribe to events.
type Configurer interface {
	Configure(events *EventBus)
}

type queryExecuter interface {
	Execute()
}

// Systems is a typed registry of update routines: at most one live instance
// per concrete system type, executed in registration order. Update panics
// until Configure has run once.
type Systems struct {
	w      *World
	events *EventBus

	order      []System
	byType     map[reflect.Type]System
	stats      []*systemStats
	queries    []queryExecuter
	configured bool
}

// NewSystems creates a registry bound to a world and an event bus.
func NewSystems(w *World, events *EventBus) *Systems {
	return &Systems{
		w:      w,
		events: events,
		byType: make(map[reflect.Type]System),
	}
}

// Add registers a system keyed by its concrete type and initializes its
// Query and Singleton fields. Adding a second instance of the same type
// replaces the first in place, keeping its execution slot.
func (s *Systems) Add(system System) {
	s.initializeFields(system)

	t := concreteType(system)
	if prev, ok := s.byType[t]; ok {
		for i, existing := range s.order {
			if existing == prev {
				s.order[i] = system
				s.stats[i] = newSystemStats(t.Name())
				break
			}
		}
		s.byType[t] = system
		s.rebuildQueries()
		return
	}

	s.byType[t] = system
	s.order = append(s.order, system)
	s.stats = append(s.stats, newSystemStats(t.Name()))
}

// SystemOf returns the registered instance of S. Panics if no S was added.
func SystemOf[S any](s *Systems) *S {
	t := reflect.TypeFor[S]()
	sys, ok := s.byType[t]
	if !ok {
		panic("ecs: system " + t.String() + " not registered")
	}
	return any(sys).(*S)
}

// Configure runs each system's optional Configure callback once, in
// registration order, and arms the registry for updates.
func (s *Systems) Configure() {
	for _, sys := range s.order {
		if c, ok := sys.(Configurer); ok {
			c.Configure(s.events)
		}
	}
	s.configured = true
}

// Update runs a single system by type with the given delta time, then
// flushes its command buffer. Panics if Configure has not run.
func Update[S any](s *Systems, dt float64) {
	s.assertConfigured()
	t := reflect.TypeFor[S]()
	sys, ok := s.byType[t]
	if !ok {
		panic("ecs: system " + t.String() + " not registered")
	}
	s.executeQueries()
	frame := newFrame(dt, s.w)
	for i, registered := range s.order {
		if registered == sys {
			s.runTimed(i, sys, frame)
			break
		}
	}
	frame.Commands.Flush(s.w)
}

// UpdateAll runs every system once in registration order, sharing one frame,
// then flushes the accumulated commands.
func (s *Systems) UpdateAll(dt float64) {
	s.assertConfigured()
	s.executeQueries()
	frame := newFrame(dt, s.w)
	for i, sys := range s.order {
		s.runTimed(i, sys, frame)
	}
	frame.Commands.Flush(s.w)
}

// Run executes UpdateAll at the given interval until the context is
// cancelled. Delta time is measured from the previous tick.
func (s *Systems) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.UpdateAll(dt)
		}
	}
}

func (s *Systems) assertConfigured() {
	if !s.configured {
		panic("ecs: Systems.Configure must run before updates")
	}
}

func (s *Systems) runTimed(i int, sys System, frame *Frame) {
	start := time.Now()
	sys.Update(frame)
	s.stats[i].record(time.Since(start))
}

func (s *Systems) executeQueries() {
	for _, q := range s.queries {
		q.Execute()
	}
}

// initializeFields wires Query and Singleton struct fields of the system to
// this registry's world. Fields are recognized by type name prefix and must
// expose an Init method.
func (s *Systems) initializeFields(system System) {
	v := reflect.ValueOf(system)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}
		typeName := field.Type().Name()
		if !strings.HasPrefix(typeName, "Query[") && !strings.HasPrefix(typeName, "Singleton[") {
			continue
		}
		initMethod := field.Addr().MethodByName("Init")
		if !initMethod.IsValid() {
			panic("ecs: Init method not found on field " + v.Type().Field(i).Name)
		}
		initMethod.Call([]reflect.Value{reflect.ValueOf(s.w)})
		if q, ok := field.Addr().Interface().(queryExecuter); ok && strings.HasPrefix(typeName, "Query[") {
			s.queries = append(s.queries, q)
		}
	}
}

func (s *Systems) rebuildQueries() {
	s.queries = s.queries[:0]
	for _, sys := range s.order {
		v := reflect.ValueOf(sys)
		if v.Kind() == reflect.Ptr {
			v = v.Elem()
		}
		if v.Kind() != reflect.Struct {
			continue
		}
		for i := 0; i < v.NumField(); i++ {
			field := v.Field(i)
			if !field.CanSet() || field.Kind() != reflect.Struct {
				continue
			}
			if !strings.HasPrefix(field.Type().Name(), "Query[") {
				continue
			}
			if q, ok := field.Addr().Interface().(queryExecuter); ok {
				s.queries = append(s.queries, q)
			}
		}
	}
}

func concreteType(system System) reflect.Type {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// SystemStats is a snapshot of one system's execution timing.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// RegistryStats aggregates execution statistics for all systems.
type RegistryStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

type systemStats struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func newSystemStats(name string) *systemStats {
	return &systemStats{name: name, minDuration: time.Duration(1<<63 - 1)}
}

func (st *systemStats) record(d time.Duration) {
	st.executionCount++
	st.lastDuration = d
	st.totalDuration += d
	if d < st.minDuration {
		st.minDuration = d
	}
	if d > st.maxDuration {
		st.maxDuration = d
	}
}

// Stats returns a snapshot of system execution statistics.
func (s *Systems) Stats() *RegistryStats {
	stats := &RegistryStats{
		SystemCount: len(s.order),
		Systems:     make([]SystemStats, len(s.stats)),
	}
	var totalExecs int64
	for i, internal := range s.stats {
		avg := time.Duration(0)
		if internal.executionCount > 0 {
			avg = internal.totalDuration / time.Duration(internal.executionCount)
		}
		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avg,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}
	stats.TotalExecutions = totalExecs
	return stats
}
