package ecs_test

import (
	"testing"

	"github.com/plus3/hive/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewMatchesBothComponents(t *testing.T) {
	w := newTestWorld()

	// Five entities, mixed presence. Only two carry both Position and
	// Direction.
	both1 := w.Create()
	ecs.Assign(w, both1.ID(), Position{X: 1})
	ecs.Assign(w, both1.ID(), Direction{DX: 1})

	posOnly := w.Create()
	ecs.Assign(w, posOnly.ID(), Position{X: 2})

	both2 := w.Create()
	ecs.Assign(w, both2.ID(), Position{X: 3})
	ecs.Assign(w, both2.ID(), Direction{DX: 3})

	dirOnly := w.Create()
	ecs.Assign(w, dirOnly.ID(), Direction{DX: 4})

	w.Create() // empty

	view := ecs.NewView[struct {
		*Position
		*Direction
	}](w)

	var got []ecs.EntityId
	for id, item := range view.Iter() {
		got = append(got, id)
		assert.Equal(t, item.Position.X, item.Direction.DX)
	}
	assert.Equal(t, []ecs.EntityId{both1.ID(), both2.ID()}, got)
	assert.Equal(t, 2, view.Count())
}

func TestViewFilterCounts(t *testing.T) {
	w := newTestWorld()

	// 150 entities: Position on every second, Direction on every third.
	for i, e := range w.CreateMany(150) {
		if i%2 == 0 {
			ecs.Assign(w, e.ID(), Position{X: float32(i)})
		}
		if i%3 == 0 {
			ecs.Assign(w, e.ID(), Direction{DX: float32(i)})
		}
	}

	positions := ecs.NewView[struct{ *Position }](w)
	directions := ecs.NewView[struct{ *Direction }](w)
	both := ecs.NewView[struct {
		*Position
		*Direction
	}](w)

	assert.Equal(t, 75, positions.Count())
	assert.Equal(t, 50, directions.Count())
	assert.Equal(t, 25, both.Count())
}

func TestViewAscendingIndexOrder(t *testing.T) {
	w := newTestWorld()

	for _, e := range w.CreateMany(20) {
		ecs.Assign(w, e.ID(), Position{})
	}

	view := ecs.NewView[struct{ *Position }](w)
	prev := int64(-1)
	for id := range view.Iter() {
		assert.Greater(t, int64(id.Index()), prev)
		prev = int64(id.Index())
	}
}

func TestViewScanBoundary(t *testing.T) {
	w := newTestWorld()

	for _, e := range w.CreateMany(10) {
		ecs.Assign(w, e.ID(), Position{})
	}

	view := ecs.NewView[struct{ *Position }](w)
	visited := 0
	for range view.Iter() {
		// Entities extending capacity mid-scan must not be visited.
		spawned := w.Create()
		ecs.Assign(w, spawned.ID(), Position{})
		visited++
	}
	assert.Equal(t, 10, visited)
}

func TestViewDestroyDuringIteration(t *testing.T) {
	w := newTestWorld()

	entities := w.CreateMany(10)
	for _, e := range entities {
		ecs.Assign(w, e.ID(), Position{})
	}

	// Destroying a not-yet-visited entity mid-scan skips it.
	victim := entities[7].ID()
	view := ecs.NewView[struct{ *Position }](w)
	var visited []ecs.EntityId
	for id := range view.Iter() {
		if id == entities[2].ID() {
			w.Destroy(victim)
		}
		visited = append(visited, id)
	}
	assert.Len(t, visited, 9)
	assert.NotContains(t, visited, victim)
}

func TestViewUnpacksPointers(t *testing.T) {
	w := newTestWorld()

	e := w.Create()
	ecs.Assign(w, e.ID(), Position{X: 1, Y: 2})
	ecs.Assign(w, e.ID(), Health{Current: 50, Max: 100})

	view := ecs.NewView[struct {
		*Position
		*Health
	}](w)

	item := view.Get(e.ID())
	require.NotNil(t, item)
	assert.Equal(t, float32(1), item.Position.X)
	assert.Equal(t, 50, item.Health.Current)

	// Writes through unpacked pointers hit storage.
	item.Position.X = 99
	assert.Equal(t, float32(99), ecs.ComponentOf[Position](w, e.ID()).Get().X)
}

func TestViewGetMissingRequired(t *testing.T) {
	w := newTestWorld()

	e := w.Create()
	ecs.Assign(w, e.ID(), Position{})

	view := ecs.NewView[struct {
		*Position
		*Direction
	}](w)
	assert.Nil(t, view.Get(e.ID()))
}

func TestViewOptionalComponent(t *testing.T) {
	w := newTestWorld()

	plain := w.Create()
	ecs.Assign(w, plain.ID(), Position{X: 1})

	armored := w.Create()
	ecs.Assign(w, armored.ID(), Position{X: 2})
	ecs.Assign(w, armored.ID(), Health{Current: 10})

	view := ecs.NewView[struct {
		*Position
		Health *Health `ecs:"optional"`
	}](w)

	matched := 0
	for id, item := range view.Iter() {
		matched++
		if id == plain.ID() {
			assert.Nil(t, item.Health)
		} else {
			require.NotNil(t, item.Health)
			assert.Equal(t, 10, item.Health.Current)
		}
	}
	assert.Equal(t, 2, matched)
}

func TestViewRequiresRequiredComponent(t *testing.T) {
	w := newTestWorld()

	assert.Panics(t, func() {
		ecs.NewView[struct {
			Health *Health `ecs:"optional"`
		}](w)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct{ X int }](w)
	})
}

func TestEntitiesWith(t *testing.T) {
	w := newTestWorld()
	r := w.Registry()

	a := w.Create()
	ecs.Assign(w, a.ID(), Position{})
	ecs.Assign(w, a.ID(), Direction{})
	b := w.Create()
	ecs.Assign(w, b.ID(), Position{})

	var got []ecs.EntityId
	for id := range w.EntitiesWith(ecs.ComponentIDFor[Position](r), ecs.ComponentIDFor[Direction](r)) {
		got = append(got, id)
	}
	assert.Equal(t, []ecs.EntityId{a.ID()}, got)
}

func TestAllEntities(t *testing.T) {
	w := newTestWorld()

	entities := w.CreateMany(6)
	w.Destroy(entities[1].ID())
	w.Destroy(entities[4].ID())

	var got []ecs.EntityId
	for id := range w.Entities() {
		got = append(got, id)
	}
	assert.Equal(t, []ecs.EntityId{
		entities[0].ID(), entities[2].ID(), entities[3].ID(), entities[5].ID(),
	}, got)
}

func TestAllEntitiesIncludesComponentless(t *testing.T) {
	w := newTestWorld()

	w.Create()
	e := w.Create()
	ecs.Assign(w, e.ID(), Position{})

	count := 0
	for range w.Entities() {
		count++
	}
	assert.Equal(t, 2, count)
}

func TestViewEarlyBreak(t *testing.T) {
	w := newTestWorld()

	for _, e := range w.CreateMany(10) {
		ecs.Assign(w, e.ID(), Position{})
	}

	view := ecs.NewView[struct{ *Position }](w)
	visited := 0
	for range view.Iter() {
		visited++
		if visited == 3 {
			break
		}
	}
	assert.Equal(t, 3, visited)
}
