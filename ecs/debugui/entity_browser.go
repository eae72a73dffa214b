package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ambrosia/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityId
	ArchetypeHash  uint64
	ComponentTypes []string
}

type EntityBrowserCache struct {
	entities      []EntityInfo
	sortColumn    int
	sortAscending bool
}

// EntityBrowserComponent lists live entities with text and archetype filters.
type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selected           *ecs.EntityId
	filterText         string
	filterArchetype    *uint64
	maxEntitiesPerPage int
	currentPage        int
}

func NewEntityBrowserComponent(maxEntitiesPerPage int) EntityBrowserComponent {
	return EntityBrowserComponent{
		cache: &EntityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowserComponent) Render(w *ecs.World) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.cache.entities = CollectEntities(w)
	eb.sortEntities()

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterArchetype = nil
	}

	filtered := FilterEntities(eb.cache.entities, eb.filterText, eb.filterArchetype)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Slot")
		imgui.TableSetupColumn("Archetype")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sortEntities()
			sortSpecs.SetSpecsDirty(false)
		}

		startIdx := eb.currentPage * eb.maxEntitiesPerPage
		endIdx := min(startIdx+eb.maxEntitiesPerPage, len(filtered))

		for i := startIdx; i < endIdx; i++ {
			entity := filtered[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selected != nil && eb.selected.Equal(entity.ID)
			label := fmt.Sprintf("%d##%x", entity.ID.Index(), entity.ArchetypeHash)
			if imgui.SelectableBoolV(label, isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				id := entity.ID
				eb.selected = &id
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", entity.ArchetypeHash))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))
		}

		imgui.EndTable()
	}

	if len(filtered) > eb.maxEntitiesPerPage {
		totalPages := (len(filtered) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

// CollectEntities lists every live entity of w.
func CollectEntities(w *ecs.World) []EntityInfo {
	entities := make([]EntityInfo, 0, w.EntityCount())
	for e := range w.Iter() {
		id, ok := e.ID()
		if !ok {
			continue
		}
		entities = append(entities, EntityInfo{
			ID:             id,
			ArchetypeHash:  id.Archetype().Hash(),
			ComponentTypes: id.Archetype().Names(),
		})
	}
	return entities
}

// FilterEntities keeps the entities whose slot, archetype or component names contain text,
// restricted to one archetype when archetype is non-nil.
func FilterEntities(entities []EntityInfo, text string, archetype *uint64) []EntityInfo {
	if text == "" && archetype == nil {
		return entities
	}

	filtered := make([]EntityInfo, 0, len(entities))
	filterLower := strings.ToLower(text)

	for _, entity := range entities {
		if archetype != nil && entity.ArchetypeHash != *archetype {
			continue
		}

		if text != "" {
			idStr := fmt.Sprintf("%d", entity.ID.Index())
			archStr := fmt.Sprintf("0x%x", entity.ArchetypeHash)
			componentsStr := strings.ToLower(strings.Join(entity.ComponentTypes, " "))

			if !strings.Contains(idStr, filterLower) &&
				!strings.Contains(archStr, filterLower) &&
				!strings.Contains(componentsStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}

func (eb *EntityBrowserComponent) sortEntities() {
	ascending := eb.cache.sortAscending
	column := eb.cache.sortColumn
	less := func(a, b EntityInfo) bool {
		switch column {
		case 1:
			return a.ArchetypeHash < b.ArchetypeHash
		case 2:
			return strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		default:
			return a.ID.Index() < b.ID.Index()
		}
	}

	sort.SliceStable(eb.cache.entities, func(i, j int) bool {
		a, b := eb.cache.entities[i], eb.cache.entities[j]
		if !ascending {
			return less(b, a)
		}
		return less(a, b)
	})
}

// Selected returns the id of the selected entity, if any.
func (eb *EntityBrowserComponent) Selected() *ecs.EntityId {
	return eb.selected
}
