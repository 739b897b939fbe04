package ecs_test

import (
	"fmt"

	"github.com/plus3/hive/ecs"
)

// ExampleCommands demonstrates the deferred mutation buffer. Structural
// changes queue up and apply together on Flush, so they are safe to issue
// while a scan over the world is in flight.
func ExampleCommands() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Health](registry)
	w := ecs.NewWorld(registry)

	doomed := w.Create()
	ecs.Assign(w, doomed.ID(), Position{})

	cmds := ecs.NewCommands()
	cmds.Spawn(Position{X: 5}, Health{Current: 10, Max: 10})
	cmds.Destroy(doomed.ID())
	cmds.Defer(func() {
		fmt.Println("after structural changes")
	})

	fmt.Println("before flush:", w.Len())
	cmds.Flush(w)
	fmt.Println("after flush:", w.Len())
	fmt.Println("doomed valid:", w.Valid(doomed.ID()))

	// Output:
	// before flush: 1
	// after structural changes
	// after flush: 1
	// doomed valid: false
}
