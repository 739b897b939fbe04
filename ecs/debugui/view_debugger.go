package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/hive/ecs"
)

func NewViewDebuggerComponent() ViewDebuggerComponent {
	return ViewDebuggerComponent{
		selectedComponentTypes: make(map[string]bool),
	}
}

// Render lets the user toggle component types and shows how many entities a
// view filtered on that set would match, plus the first few matching IDs.
func (vd *ViewDebuggerComponent) Render(w *ecs.World) {
	if !imgui.BeginV("View Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	registry := w.Registry()

	imgui.Text("Required components:")
	var selected []ecs.ComponentID
	for i := 0; i < registry.Len(); i++ {
		cid := ecs.ComponentID(i)
		name := registry.TypeOf(cid).String()
		checked := vd.selectedComponentTypes[name]
		if imgui.Checkbox(name, &checked) {
			vd.selectedComponentTypes[name] = checked
		}
		if checked {
			selected = append(selected, cid)
		}
	}

	imgui.Separator()

	if len(selected) == 0 {
		imgui.Text("Select at least one component type")
		imgui.End()
		return
	}

	const maxShown = 20
	count := 0
	var shown []ecs.EntityId
	for id := range w.EntitiesWith(selected...) {
		count++
		if len(shown) < maxShown {
			shown = append(shown, id)
		}
	}

	imgui.Text(fmt.Sprintf("Matching entities: %d", count))
	for _, id := range shown {
		imgui.BulletText(fmt.Sprintf("%d (slot %d.%d)", id, id.Index(), id.Version()))
	}
	if count > maxShown {
		imgui.Text(fmt.Sprintf("... and %d more", count-maxShown))
	}

	imgui.End()
}
