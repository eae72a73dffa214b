package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ambrosia/ecs"
)

type ArchetypeInfo struct {
	Hash           uint64
	ComponentTypes []string
	EntityCount    int
	SlotCount      int
}

type ArchetypeViewerCache struct {
	archetypes    []ArchetypeInfo
	sortColumn    int
	sortAscending bool
}

type ArchetypeViewerComponent struct {
	cache         *ArchetypeViewerCache
	selectedHash  *uint64
	sortColumn    int
	sortAscending bool
}

func NewArchetypeViewerComponent() ArchetypeViewerComponent {
	return ArchetypeViewerComponent{
		cache: &ArchetypeViewerCache{
			sortColumn:    2,
			sortAscending: false,
		},
		sortColumn:    2,
		sortAscending: false,
	}
}

// Render draws the archetype table and returns the hash of a row clicked this frame.
func (av *ArchetypeViewerComponent) Render(w *ecs.World) *uint64 {
	if !imgui.BeginV("Archetype Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	av.refresh(w)

	maxEntityCount := 0
	for _, arch := range av.cache.archetypes {
		if arch.EntityCount > maxEntityCount {
			maxEntityCount = arch.EntityCount
		}
	}

	var clicked *uint64

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ArchetypeTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Archetype")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Entities")
		imgui.TableSetupColumn("Slots")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			av.sortColumn = int(spec.ColumnIndex())
			av.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			av.cache.sortColumn = av.sortColumn
			av.cache.sortAscending = av.sortAscending
			av.sortArchetypes()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, arch := range av.cache.archetypes {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := av.selectedHash != nil && *av.selectedHash == arch.Hash
			if imgui.SelectableBoolV(fmt.Sprintf("0x%X", arch.Hash), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				hash := arch.Hash
				clicked = &hash
				av.selectedHash = &hash
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(arch.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", arch.EntityCount))

			if maxEntityCount > 0 {
				barWidth := float32(arch.EntityCount) / float32(maxEntityCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", arch.SlotCount))
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked
}

// refresh rebuilds the rows from the World's statistics.
func (av *ArchetypeViewerComponent) refresh(w *ecs.World) {
	stats := w.CollectStats()
	av.cache.archetypes = BuildArchetypeInfo(stats)
	av.sortArchetypes()
}

// BuildArchetypeInfo converts World statistics into archetype rows.
func BuildArchetypeInfo(stats *ecs.WorldStats) []ArchetypeInfo {
	rows := make([]ArchetypeInfo, 0, len(stats.ArchetypeBreakdown))
	for _, arch := range stats.ArchetypeBreakdown {
		rows = append(rows, ArchetypeInfo{
			Hash:           arch.Hash,
			ComponentTypes: arch.ComponentTypes,
			EntityCount:    arch.EntityCount,
			SlotCount:      arch.SlotCount,
		})
	}
	return rows
}

func (av *ArchetypeViewerComponent) sortArchetypes() {
	sortArchetypeInfo(av.cache.archetypes, av.cache.sortColumn, av.cache.sortAscending)
}

func sortArchetypeInfo(rows []ArchetypeInfo, column int, ascending bool) {
	less := func(a, b ArchetypeInfo) bool {
		switch column {
		case 0:
			return a.Hash < b.Hash
		case 1:
			return strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 3:
			return a.SlotCount < b.SlotCount
		default:
			return a.EntityCount < b.EntityCount
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !ascending {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}
