package debugui

import "github.com/plus3/ambrosia/ecs"

// DebugUI holds the state of every debug window.
type DebugUI struct {
	Browser     EntityBrowserComponent
	Inspector   ComponentInspectorComponent
	Archetypes  ArchetypeViewerComponent
	Performance PerformanceStatsComponent
	Queries     QueryDebuggerComponent
	Timer       *FrameTimer
}

// NewDebugUI creates the debug windows with their default settings.
func NewDebugUI() *DebugUI {
	return &DebugUI{
		Browser:     NewEntityBrowserComponent(100),
		Inspector:   NewComponentInspectorComponent(),
		Archetypes:  NewArchetypeViewerComponent(),
		Performance: NewPerformanceStatsComponent(120),
		Queries:     NewQueryDebuggerComponent(),
		Timer:       NewFrameTimer(),
	}
}

// Render draws every debug window against w.
func (ui *DebugUI) Render(w *ecs.World) {
	if hash := ui.Archetypes.Render(w); hash != nil {
		ui.Browser.filterArchetype = hash
		ui.Browser.currentPage = 0
	}
	ui.Browser.Render(w)
	ui.Inspector.Render(w, ui.Browser.Selected())
	ui.Performance.Render(w, ui.Timer.GetDeltaTime())
	ui.Queries.Render(w)
}

// SpawnDebugUI spawns an ImguiItem entity rendering the debug windows and
// registers the ImguiSystem that drives it.
func SpawnDebugUI(w *ecs.World, priority int) (*DebugUI, error) {
	ui := NewDebugUI()
	b := ecs.InsertComponent(w.Spawn(), ImguiItem{Render: func() { ui.Render(w) }})
	if _, err := b.Build(); err != nil {
		return nil, err
	}
	if err := w.AddSystem(&ImguiSystem{}, priority); err != nil {
		return nil, err
	}
	return ui, nil
}
