// Package game holds the roguelike demo's components, resources, entity helpers and systems.
package game

import "math"

// Vector is an integer grid coordinate.
type Vector struct {
	X, Y int
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

// Distance returns the euclidean distance between v and o.
func (v Vector) Distance(o Vector) float64 {
	dx := float64(v.X - o.X)
	dy := float64(v.Y - o.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
