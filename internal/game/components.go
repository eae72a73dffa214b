package game

//go:generate stringer -type=DebugLevel -trimprefix=Debug

import (
	"fmt"
	"image/color"
	"math"
)

// Position places an entity on the grid. Higher priority draws on top.
type Position struct {
	Coords   Vector
	Priority uint8
}

// NewPosition creates a Position.
func NewPosition(x, y int, priority uint8) Position {
	return Position{Coords: Vector{X: x, Y: y}, Priority: priority}
}

// Walkable reports whether a grid cell can be entered.
type Walkable interface {
	Walkable(v Vector) bool
}

// TryMove moves by delta if the destination is walkable.
func (p *Position) TryMove(area Walkable, delta Vector) bool {
	return p.TrySet(area, p.Coords.Add(delta))
}

// TrySet moves to target if it is walkable.
func (p *Position) TrySet(area Walkable, target Vector) bool {
	if !area.Walkable(target) {
		return false
	}
	p.Coords = target
	return true
}

// DebugLevel orders debug messages by severity.
type DebugLevel uint8

const (
	DebugNone DebugLevel = iota
	DebugInfo
	DebugWarning
	DebugError
	DebugCritical
)

// DebugMessage is one diagnostic attached to an entity.
type DebugMessage struct {
	Level   DebugLevel
	Reason  string
	Message string
}

func (m DebugMessage) String() string {
	return fmt.Sprintf("%s(%d): %s", m.Reason, m.Level, m.Message)
}

// Debug collects diagnostics for an entity, keyed by reason.
type Debug struct {
	MaxLevel DebugLevel
	Messages map[string]DebugMessage
}

// NewDebug creates an empty Debug component.
func NewDebug() Debug {
	return Debug{Messages: make(map[string]DebugMessage)}
}

// Clear drops every message.
func (d *Debug) Clear() {
	d.MaxLevel = DebugNone
	clear(d.Messages)
}

// AddMessage records a message, replacing any earlier message with the same reason.
func (d *Debug) AddMessage(level DebugLevel, reason, message string) {
	if level >= d.MaxLevel {
		d.MaxLevel = level
	}
	if d.Messages == nil {
		d.Messages = make(map[string]DebugMessage)
	}
	d.Messages[reason] = DebugMessage{Level: level, Reason: reason, Message: message}
}

// Count returns the number of messages.
func (d Debug) Count() int {
	return len(d.Messages)
}

// Named gives an entity a display name.
type Named struct {
	Name string
}

// Glyph renders an entity as a single character.
type Glyph struct {
	Char rune
	FG   color.RGBA
	BG   color.RGBA
}

// Camera marks the entity the viewport follows.
type Camera struct{}

// Player marks the player-controlled entity.
type Player struct{}

// Viewshed tracks the cells an entity can see within a radius.
type Viewshed struct {
	ViewDistance float64
	dirty        bool
	visible      map[Vector]struct{}
}

// NewViewshed creates a dirty viewshed that is computed on its first update.
func NewViewshed(distance float64) Viewshed {
	return Viewshed{ViewDistance: distance, dirty: true, visible: make(map[Vector]struct{})}
}

// MarkDirty schedules a recomputation.
func (v *Viewshed) MarkDirty() {
	v.dirty = true
}

// Dirty reports whether the viewshed needs recomputing.
func (v *Viewshed) Dirty() bool {
	return v.dirty
}

// Update recomputes the visible cells around center if the viewshed is dirty.
// A cell is visible if it is within ViewDistance and, when sees is non-nil, sees reports it.
// It returns true if the view was recalculated.
func (v *Viewshed) Update(center Vector, sees func(from, to Vector) bool) bool {
	if !v.dirty {
		return false
	}
	v.dirty = false
	v.visible = make(map[Vector]struct{})

	top := int(math.Floor(float64(center.Y) - v.ViewDistance))
	bottom := int(math.Ceil(float64(center.Y) + v.ViewDistance))
	left := int(math.Floor(float64(center.X) - v.ViewDistance))
	right := int(math.Ceil(float64(center.X) + v.ViewDistance))

	for x := left; x <= right; x++ {
		for y := top; y <= bottom; y++ {
			pos := Vector{X: x, Y: y}
			if center.Distance(pos) > v.ViewDistance {
				continue
			}
			if sees != nil && !sees(center, pos) {
				continue
			}
			v.visible[pos] = struct{}{}
		}
	}
	return true
}

// Contains reports whether pos is visible.
func (v *Viewshed) Contains(pos Vector) bool {
	_, ok := v.visible[pos]
	return ok
}

// VisibleCount returns the number of visible cells.
func (v *Viewshed) VisibleCount() int {
	return len(v.visible)
}
