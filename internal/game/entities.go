package game

import (
	"image/color"

	"github.com/plus3/ambrosia/ecs"
)

// The helpers below chain on an EntityBuilder. Once one insertion fails, the rest are skipped
// and Build reports the first error.

// AsNamed adds a Named component.
func AsNamed(b *ecs.EntityBuilder, name string) *ecs.EntityBuilder {
	return ecs.InsertComponent(b, Named{Name: name})
}

// AsDebugged adds Named and an empty Debug component.
func AsDebugged(b *ecs.EntityBuilder, name string) *ecs.EntityBuilder {
	return ecs.InsertComponent(AsNamed(b, name), NewDebug())
}

// AsPositioned adds a Position.
func AsPositioned(b *ecs.EntityBuilder, x, y int, priority uint8) *ecs.EntityBuilder {
	return ecs.InsertComponent(b, NewPosition(x, y, priority))
}

// AsRenderable adds a Position and a Glyph.
func AsRenderable(b *ecs.EntityBuilder, x, y int, priority uint8, char rune, fg, bg color.RGBA) *ecs.EntityBuilder {
	return ecs.InsertComponent(AsPositioned(b, x, y, priority), Glyph{Char: char, FG: fg, BG: bg})
}

// AsPlayer turns the entity into the player: named, debugged, drawn on top, followed by the camera.
func AsPlayer(b *ecs.EntityBuilder, name string, x, y int) *ecs.EntityBuilder {
	b = AsRenderable(AsDebugged(b, name), x, y, 255, PlayerGlyph, PlayerColor, BackgroundColor)
	b = ecs.InsertComponent(b, Camera{})
	b = ecs.InsertComponent(b, Player{})
	return ecs.InsertComponent(b, NewViewshed(11.5))
}

// SpawnPlayer builds and inserts the player entity.
func SpawnPlayer(w *ecs.World, name string, x, y int) (*ecs.Entity, error) {
	return AsPlayer(w.Spawn(), name, x, y).Build()
}

// Setup inserts the demo's resources and registers its systems.
func Setup(w *ecs.World) error {
	if err := ecs.InsertResource(w, DefaultTheme()); err != nil {
		return err
	}
	if err := ecs.InsertResource(w, Viewport{Size: ScreenSize, Center: Vector{X: ScreenSize.X / 2, Y: ScreenSize.Y / 2}}); err != nil {
		return err
	}
	if err := ecs.InsertResource(w, MoveIntent{}); err != nil {
		return err
	}

	systems := []struct {
		system   ecs.System
		priority int
	}{
		{&TickSystem{}, 100},
		{&MovementSystem{}, 50},
		{&ViewshedSystem{}, 40},
		{&CameraSystem{}, 30},
		{&DebugSystem{MinLevel: DebugNone}, -100},
	}
	for _, entry := range systems {
		if err := w.AddSystem(entry.system, entry.priority); err != nil {
			return err
		}
	}
	return nil
}
