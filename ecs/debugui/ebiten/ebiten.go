// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ambrosia/ecs"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// Use this to integrate Dear ImGui rendering into Ebiten game loops.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend window and disables imgui.ini persistence.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: backend}
}

// Install stores the backend as a World resource.
func Install(w *ecs.World, backend *ImguiBackend) error {
	return ecs.InsertResource(w, *backend)
}

// TickFrame runs one World tick inside an ImGui frame, so render functions deferred
// by the ImguiSystem execute between BeginFrame and EndFrame.
func (b *ImguiBackend) TickFrame(w *ecs.World) error {
	b.BeginFrame()
	defer b.EndFrame()
	return w.Tick()
}
