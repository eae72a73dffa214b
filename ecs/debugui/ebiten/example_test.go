package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ambrosia/ecs"
	"github.com/plus3/ambrosia/ecs/debugui"
	debugui_ebiten "github.com/plus3/ambrosia/ecs/debugui/ebiten"
)

// Game implements ebiten.Game and integrates the ECS with ImGui rendering.
type Game struct {
	world   *ecs.World
	backend *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	// Systems run inside the ImGui frame; ImguiItem renders are flushed at the end of the tick.
	return g.backend.TickFrame(g.world)
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Draw game content to screen
	// ...

	// Draw ImGui overlay on top
	g.backend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	backend := debugui_ebiten.NewImguiBackend("ECS ImGui Example", 1280, 720)

	world := ecs.NewWorld()
	if err := debugui_ebiten.Install(world, backend); err != nil {
		panic(err)
	}

	// Spawn entities with ImGui render functions
	_, err := ecs.InsertComponent(world.Spawn(), debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Debug Window")
			imgui.Text("Hello from ECS!")
			imgui.End()
		},
	}).Build()
	if err != nil {
		panic(err)
	}

	if _, err := debugui.SpawnDebugUI(world, 100); err != nil {
		panic(err)
	}

	game := &Game{world: world, backend: backend}
	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
