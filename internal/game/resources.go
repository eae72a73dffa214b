package game

import "image/color"

var (
	PlayerGlyph     = '@'
	PlayerColor     = color.RGBA{R: 255, G: 255, A: 255}
	BackgroundColor = color.RGBA{A: 255}
)

// ScreenSize is the size of the grid in cells.
var ScreenSize = Vector{X: 120, Y: 80}

// TickCounter counts completed ticks.
type TickCounter struct {
	Ticks uint64
}

// Theme holds the UI palette.
type Theme struct {
	UI                color.RGBA
	Background        color.RGBA
	TerrainVisible    color.RGBA
	TerrainDiscovered color.RGBA
}

// DefaultTheme returns the stock palette.
func DefaultTheme() Theme {
	return Theme{
		UI:                color.RGBA{R: 150, G: 150, B: 150, A: 255},
		Background:        BackgroundColor,
		TerrainVisible:    color.RGBA{R: 200, G: 200, B: 200, A: 255},
		TerrainDiscovered: color.RGBA{R: 80, G: 80, B: 80, A: 255},
	}
}

// Viewport is the visible window onto the grid, in cells.
type Viewport struct {
	Size   Vector
	Center Vector
}

// Walkable keeps movement inside the viewport bounds.
func (v Viewport) Walkable(p Vector) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < v.Size.X && p.Y < v.Size.Y
}

// Origin returns the grid cell drawn at the top-left corner.
func (v Viewport) Origin() Vector {
	return Vector{X: v.Center.X - v.Size.X/2, Y: v.Center.Y - v.Size.Y/2}
}

// MoveIntent is the movement requested by input for the current tick.
type MoveIntent struct {
	Delta Vector
}
