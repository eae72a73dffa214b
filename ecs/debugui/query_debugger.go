package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ambrosia/ecs"
)

type QueryDebuggerCache struct {
	componentTypes     []string
	keys               map[string]ecs.TypeKey
	lastArchetypeCount int
}

// QueryDebuggerComponent builds a Query interactively and shows the archetypes it matches.
type QueryDebuggerComponent struct {
	included map[string]bool
	excluded map[string]bool
	cache    *QueryDebuggerCache
}

func NewQueryDebuggerComponent() QueryDebuggerComponent {
	return QueryDebuggerComponent{
		included: make(map[string]bool),
		excluded: make(map[string]bool),
		cache: &QueryDebuggerCache{
			lastArchetypeCount: -1,
		},
	}
}

func (qd *QueryDebuggerComponent) Render(w *ecs.World) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	qd.rebuildCacheIfNeeded(w)

	imgui.Text("Include / Exclude Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.included = make(map[string]bool)
		qd.excluded = make(map[string]bool)
	}

	for _, compType := range qd.cache.componentTypes {
		include := qd.included[compType]
		if imgui.Checkbox("##inc"+compType, &include) {
			setFlag(qd.included, compType, include)
		}
		imgui.SameLine()
		exclude := qd.excluded[compType]
		if imgui.Checkbox(compType+"##exc", &exclude) {
			setFlag(qd.excluded, compType, exclude)
		}
	}

	imgui.Separator()

	query := qd.Query()
	imgui.Text(query.String())

	matching := MatchingArchetypes(w, query)
	totalEntities := 0
	for _, arch := range matching {
		totalEntities += arch.EntityCount
	}

	imgui.Text(fmt.Sprintf("Matching Archetypes: %d", len(matching)))
	imgui.Text(fmt.Sprintf("Matching Entities: %d", totalEntities))

	if imgui.TreeNodeStr("Archetype Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryArchTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Archetype")
			imgui.TableSetupColumn("All Components")
			imgui.TableSetupColumn("Entity Count")
			imgui.TableHeadersRow()

			for _, arch := range matching {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(fmt.Sprintf("0x%X", arch.Hash))

				imgui.TableSetColumnIndex(1)
				imgui.Text(fmt.Sprintf("%v", arch.ComponentTypes))

				imgui.TableSetColumnIndex(2)
				imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

func setFlag(flags map[string]bool, name string, on bool) {
	if on {
		flags[name] = true
	} else {
		delete(flags, name)
	}
}

// Query builds the query described by the checked boxes.
func (qd *QueryDebuggerComponent) Query() ecs.Query {
	q := ecs.NewQuery()
	for _, name := range qd.cache.componentTypes {
		key := qd.cache.keys[name]
		if qd.included[name] {
			q = q.Include(key)
		}
		if qd.excluded[name] {
			q = q.Exclude(key)
		}
	}
	return q
}

// MatchingArchetypes returns the archetype rows of w selected by q.
func MatchingArchetypes(w *ecs.World, q ecs.Query) []ArchetypeInfo {
	stats := w.CollectStats()
	rows := BuildArchetypeInfo(stats)
	archetypes := w.Archetypes()

	matching := make([]ArchetypeInfo, 0, len(rows))
	for i, archetype := range archetypes {
		if q.Matches(archetype) {
			matching = append(matching, rows[i])
		}
	}
	return matching
}

func (qd *QueryDebuggerComponent) rebuildCacheIfNeeded(w *ecs.World) {
	current := w.ArchetypeCount()
	if qd.cache.lastArchetypeCount == current {
		return
	}
	qd.cache.lastArchetypeCount = current

	qd.cache.keys = make(map[string]ecs.TypeKey)
	for _, archetype := range w.Archetypes() {
		for _, key := range archetype.Keys() {
			qd.cache.keys[key.Name()] = key
		}
	}

	qd.cache.componentTypes = make([]string, 0, len(qd.cache.keys))
	for name := range qd.cache.keys {
		qd.cache.componentTypes = append(qd.cache.componentTypes, name)
	}
	sort.Strings(qd.cache.componentTypes)
}
