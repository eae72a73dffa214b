package game

import (
	"sort"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/plus3/ambrosia/ecs"
	ecslog "github.com/plus3/ambrosia/ecs/log"
)

// TickSystem advances the TickCounter resource once per tick.
type TickSystem struct{}

func (s *TickSystem) Initialize(w *ecs.World) error {
	if ecs.HasResource[TickCounter](w) {
		return nil
	}
	return ecs.InsertResource(w, TickCounter{})
}

func (s *TickSystem) Execute(w *ecs.World) error {
	_, err := ecs.WriteResource(w, func(c *TickCounter) { c.Ticks++ })
	return err
}

// MovementSystem applies the MoveIntent resource to every Player, keeping it inside the Viewport.
type MovementSystem struct {
	players ecs.Query
}

func (s *MovementSystem) Initialize(*ecs.World) error {
	s.players = ecs.QueryFor(ecs.KeyOf[Player](), ecs.KeyOf[Position]())
	return nil
}

func (s *MovementSystem) Execute(w *ecs.World) error {
	intent, ok, err := ecs.GetResourceMut[MoveIntent](w)
	if err != nil || !ok {
		return err
	}
	defer intent.Release()

	delta := intent.Get().Delta
	if delta == (Vector{}) {
		return nil
	}
	intent.Get().Delta = Vector{}

	viewport, ok, err := ecs.GetResource[Viewport](w)
	if err != nil {
		return err
	}
	if !ok {
		return eris.Wrap(ecs.ErrNotFound, "viewport resource")
	}
	defer viewport.Release()
	area := viewport.Get()

	for e := range w.QueryEntities(s.players) {
		var moved bool
		if _, err := ecs.WriteComponent(e, func(p *Position) { moved = p.TryMove(area, delta) }); err != nil {
			return err
		}
		if !moved {
			continue
		}
		if _, err := ecs.WriteComponent(e, func(v *Viewshed) { v.MarkDirty() }); err != nil {
			return err
		}
	}
	return nil
}

// ViewshedSystem recomputes dirty viewsheds around their entity's position.
type ViewshedSystem struct {
	// Sees decides line of sight; nil treats every cell in range as visible.
	Sees func(from, to Vector) bool

	viewers ecs.Query
}

func (s *ViewshedSystem) Initialize(*ecs.World) error {
	s.viewers = ecs.QueryFor(ecs.KeyOf[Viewshed](), ecs.KeyOf[Position]())
	return nil
}

func (s *ViewshedSystem) Execute(w *ecs.World) error {
	for e := range w.QueryEntities(s.viewers) {
		pos, ok, err := ecs.GetComponent[Position](e)
		if err != nil || !ok {
			return err
		}
		center := pos.Get().Coords
		pos.Release()

		if _, err := ecs.WriteComponent(e, func(v *Viewshed) { v.Update(center, s.Sees) }); err != nil {
			return err
		}
	}
	return nil
}

// CameraSystem centers the Viewport on the Camera entity.
type CameraSystem struct {
	cameras ecs.Query
}

func (s *CameraSystem) Initialize(*ecs.World) error {
	s.cameras = ecs.QueryFor(ecs.KeyOf[Camera](), ecs.KeyOf[Position]())
	return nil
}

func (s *CameraSystem) Execute(w *ecs.World) error {
	camera, ok := w.QueryOne(s.cameras)
	if !ok {
		return nil
	}
	var center Vector
	if _, err := ecs.ReadComponent(camera, func(p Position) { center = p.Coords }); err != nil {
		return err
	}
	_, err := ecs.WriteResource(w, func(v *Viewport) { v.Center = center })
	return err
}

// DebugSystem logs the messages of every Debug entity whose highest level is at least MinLevel.
type DebugSystem struct {
	MinLevel DebugLevel
	// Logger receives the messages; the World's logger is used when nil.
	Logger *zerolog.Logger

	debugged ecs.Query
}

// SetLevel changes the minimum level that gets logged.
func (s *DebugSystem) SetLevel(level DebugLevel) {
	s.MinLevel = level
}

func (s *DebugSystem) Initialize(w *ecs.World) error {
	s.debugged = ecs.QueryFor(ecs.KeyOf[Debug]())
	if s.Logger == nil {
		s.Logger = ecslog.CreateSystemLogger(w.Logger(), "DebugSystem")
	}
	return nil
}

func (s *DebugSystem) Execute(w *ecs.World) error {
	for e := range w.QueryEntities(s.debugged) {
		debug, ok, err := ecs.GetComponent[Debug](e)
		if err != nil || !ok {
			return err
		}
		d := debug.Get()
		debug.Release()

		if d.MaxLevel < s.MinLevel || d.Count() == 0 {
			continue
		}

		name := entityName(e)
		reasons := make([]string, 0, len(d.Messages))
		for reason := range d.Messages {
			reasons = append(reasons, reason)
		}
		sort.Strings(reasons)

		for _, reason := range reasons {
			msg := d.Messages[reason]
			s.Logger.WithLevel(zerologLevel(msg.Level)).
				Str("entity", name).
				Str("reason", msg.Reason).
				Stringer("debug_level", msg.Level).
				Msg(msg.Message)
		}
	}
	return nil
}

func entityName(e *ecs.Entity) string {
	var name string
	if ok, err := ecs.ReadComponent(e, func(n Named) { name = n.Name }); ok && err == nil {
		return name
	}
	if id, ok := e.ID(); ok {
		return id.String()
	}
	return "Entity(?)"
}

func zerologLevel(level DebugLevel) zerolog.Level {
	switch level {
	case DebugInfo:
		return zerolog.InfoLevel
	case DebugWarning:
		return zerolog.WarnLevel
	case DebugError:
		return zerolog.ErrorLevel
	case DebugCritical:
		return zerolog.ErrorLevel
	default:
		return zerolog.DebugLevel
	}
}
