package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/hive/ecs"
)

func NewCatalogViewerComponent() CatalogViewerComponent {
	return CatalogViewerComponent{sortAscending: true}
}

// Render shows the component catalog: one row per registered type with its
// dense ID, size and live instance count.
func (cv *CatalogViewerComponent) Render(w *ecs.World) {
	if !imgui.BeginV("Component Catalog", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := w.CollectStats()

	imgui.Text(fmt.Sprintf("Registered types: %d / %d", len(stats.ComponentTypes), ecs.MaxComponentTypes))
	imgui.Text(fmt.Sprintf("Record size (all types): %d bytes", w.Registry().SizeSum()))
	imgui.Separator()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable
	if imgui.BeginTableV("CatalogTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("ID")
		imgui.TableSetupColumn("Type")
		imgui.TableSetupColumn("Size")
		imgui.TableSetupColumn("Live")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			cv.sortColumn = int(spec.ColumnIndex())
			cv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortSpecs.SetSpecsDirty(false)
		}

		rows := make([]ecs.ComponentTypeStats, len(stats.ComponentTypes))
		copy(rows, stats.ComponentTypes)
		cv.sortRows(rows)

		for _, row := range rows {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.ID))
			imgui.TableNextColumn()
			imgui.Text(row.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d B", row.Size))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Count))
		}

		imgui.EndTable()
	}

	imgui.End()
}

func (cv *CatalogViewerComponent) sortRows(rows []ecs.ComponentTypeStats) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		var less bool

		switch cv.sortColumn {
		case 0:
			less = a.ID < b.ID
		case 1:
			less = a.Name < b.Name
		case 2:
			less = a.Size < b.Size
		case 3:
			less = a.Count < b.Count
		default:
			less = a.ID < b.ID
		}

		if !cv.sortAscending {
			return !less
		}
		return less
	})
}
