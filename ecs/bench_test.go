package ecs_test

import (
	"testing"

	"github.com/plus3/hive/ecs"
)

func BenchmarkCreateDestroy(b *testing.B) {
	w := newTestWorld()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e := w.Create()
		w.Destroy(e.ID())
	}
}

func BenchmarkAssignRemove(b *testing.B) {
	w := newTestWorld()
	e := w.Create()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ecs.Assign(w, e.ID(), Position{X: 1, Y: 2})
		ecs.Remove[Position](w, e.ID())
	}
}

func BenchmarkComponentGet(b *testing.B) {
	w := newTestWorld()
	e := w.Create()
	ecs.Assign(w, e.ID(), Position{X: 1})
	h := ecs.ComponentOf[Position](w, e.ID())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = h.Get().X
	}
}

func benchWorldWith(n int, everyPos, everyDir int) *ecs.World {
	w := newTestWorld()
	for i, e := range w.CreateMany(n) {
		if i%everyPos == 0 {
			ecs.Assign(w, e.ID(), Position{X: float32(i)})
		}
		if i%everyDir == 0 {
			ecs.Assign(w, e.ID(), Direction{DX: 1})
		}
	}
	return w
}

func BenchmarkViewIterDense(b *testing.B) {
	w := benchWorldWith(10000, 1, 1)
	view := ecs.NewView[struct {
		*Position
		*Direction
	}](w)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, item := range view.Iter() {
			item.Position.X += item.Direction.DX
		}
	}
}

func BenchmarkViewIterSparse(b *testing.B) {
	w := benchWorldWith(10000, 2, 3)
	view := ecs.NewView[struct {
		*Position
		*Direction
	}](w)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, item := range view.Iter() {
			item.Position.X += item.Direction.DX
		}
	}
}

func BenchmarkQueryCachedIter(b *testing.B) {
	w := benchWorldWith(10000, 2, 3)
	q := ecs.NewQuery[struct {
		*Position
		*Direction
	}](w)
	q.Execute()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, item := range q.Iter() {
			item.Position.X += item.Direction.DX
		}
	}
}

func BenchmarkEventBusPublish(b *testing.B) {
	bus := ecs.NewEventBus()
	total := 0
	ecs.Subscribe(bus, func(e damageEvent) { total += e.Amount })
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ecs.Publish(bus, damageEvent{Amount: 1})
	}
}
