// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// It manages ImGui rendering and input state through ECS components, resources and systems.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ambrosia/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a World resource.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem defers the render function of every ImguiItem to the end of the tick
// and refreshes the ImguiInputState resource.
type ImguiSystem struct {
	items ecs.Query
}

// Name implements the optional system naming used by the scheduler.
func (i *ImguiSystem) Name() string {
	return "ImguiSystem"
}

// Initialize inserts the ImguiInputState resource if it is missing.
func (i *ImguiSystem) Initialize(w *ecs.World) error {
	i.items = ecs.QueryFor(ecs.KeyOf[ImguiItem]())
	if ecs.HasResource[ImguiInputState](w) {
		return nil
	}
	return ecs.InsertResource(w, ImguiInputState{})
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(w *ecs.World) error {
	io := imgui.CurrentIO()
	if _, err := ecs.WriteResource(w, func(state *ImguiInputState) {
		state.WantCaptureMouse = io.WantCaptureMouse()
		state.WantCaptureKeyboard = io.WantCaptureKeyboard()
	}); err != nil {
		return err
	}

	for e := range w.QueryEntities(i.items) {
		if _, err := ecs.ReadComponent(e, func(item ImguiItem) {
			if item.Render != nil {
				w.Commands().Defer(item.Render)
			}
		}); err != nil {
			return err
		}
	}
	return nil
}
