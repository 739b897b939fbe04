package debugui

import "github.com/plus3/hive/ecs"

// SpawnDebugUI creates one entity per debug window and wires each window's
// render method into an ImguiItem. Storage pointers are stable, so the render
// closures can capture the stored window state directly.
func SpawnDebugUI(w *ecs.World) {
	ecs.NewSingleton[ImguiInputState](w)

	browserEntity := w.Create()
	browser := ecs.Assign(w, browserEntity.ID(), NewEntityBrowserComponent(100)).Get()
	ecs.Assign(w, browserEntity.ID(), ImguiItem{Render: func() {
		browser.Render(w)
	}})

	inspectorEntity := w.Create()
	inspector := ecs.Assign(w, inspectorEntity.ID(), NewComponentInspectorComponent()).Get()
	ecs.Assign(w, inspectorEntity.ID(), ImguiItem{Render: func() {
		inspector.Render(w, browser.GetSelectedEntity())
	}})

	catalogEntity := w.Create()
	catalog := ecs.Assign(w, catalogEntity.ID(), NewCatalogViewerComponent()).Get()
	ecs.Assign(w, catalogEntity.ID(), ImguiItem{Render: func() {
		catalog.Render(w)
	}})

	timer := NewFrameTimer()
	statsEntity := w.Create()
	stats := ecs.Assign(w, statsEntity.ID(), NewPerformanceStatsComponent(120)).Get()
	ecs.Assign(w, statsEntity.ID(), ImguiItem{Render: func() {
		stats.Render(w, timer.GetDeltaTime())
	}})

	debuggerEntity := w.Create()
	debugger := ecs.Assign(w, debuggerEntity.ID(), NewViewDebuggerComponent()).Get()
	ecs.Assign(w, debuggerEntity.ID(), ImguiItem{Render: func() {
		debugger.Render(w)
	}})
}

// RegisterDebugUIComponents adds the debug window component types to the
// catalog. Call before the World is built; the catalog seals at that point.
func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[EntityBrowserComponent](registry)
	ecs.RegisterComponent[ComponentInspectorComponent](registry)
	ecs.RegisterComponent[CatalogViewerComponent](registry)
	ecs.RegisterComponent[PerformanceStatsComponent](registry)
	ecs.RegisterComponent[ViewDebuggerComponent](registry)
}
