package main

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"github.com/plus3/ambrosia/ecs"
	"github.com/plus3/ambrosia/ecs/debugui"
	debugui_ebiten "github.com/plus3/ambrosia/ecs/debugui/ebiten"
	ecslog "github.com/plus3/ambrosia/ecs/log"
	"github.com/plus3/ambrosia/internal/config"
	"github.com/plus3/ambrosia/internal/game"
	"github.com/plus3/ambrosia/statsd"
)

const (
	CellWidth  = 8
	CellHeight = 12
)

var moveKeys = map[ebiten.Key]game.Vector{
	ebiten.KeyArrowUp:    {Y: -1},
	ebiten.KeyArrowDown:  {Y: 1},
	ebiten.KeyArrowLeft:  {X: -1},
	ebiten.KeyArrowRight: {X: 1},
}

type Game struct {
	world   *ecs.World
	backend *debugui_ebiten.ImguiBackend
	glyphs  ecs.Query
	logger  zerolog.Logger
}

func main() {
	rt, err := config.LoadRuntime()
	if err != nil {
		zerolog.New(os.Stderr).Fatal().Err(err).Msg("invalid configuration")
	}
	logger := rt.Logger()

	metrics := statsd.NoOp()
	if rt.StatsdAddress != "" {
		if metrics, err = statsd.New(rt.StatsdAddress, rt.StatsdTags); err != nil {
			logger.Warn().Err(err).Msg("statsd disabled")
			metrics = statsd.NoOp()
		}
	}
	defer metrics.Close()

	world := ecs.NewWorld(ecs.WithName("ambrosia"), ecs.WithLogger(logger), ecs.WithStatsd(metrics))
	if err := game.Setup(world); err != nil {
		logger.Fatal().Err(err).Msg("world setup failed")
	}
	if _, err := game.SpawnPlayer(world, "Hazel", game.ScreenSize.X/2, game.ScreenSize.Y/2); err != nil {
		logger.Fatal().Err(err).Msg("failed to spawn player")
	}

	width, height := game.ScreenSize.X*CellWidth, game.ScreenSize.Y*CellHeight
	backend := debugui_ebiten.NewImguiBackend("Ambrosia", width, height)
	if err := debugui_ebiten.Install(world, backend); err != nil {
		logger.Fatal().Err(err).Msg("failed to install imgui backend")
	}
	if _, err := debugui.SpawnDebugUI(world, -50); err != nil {
		logger.Fatal().Err(err).Msg("failed to spawn debug ui")
	}
	ecslog.World(world.Logger(), world, zerolog.DebugLevel)

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Ambrosia")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(rt.TickRate)

	g := &Game{
		world:   world,
		backend: backend,
		glyphs:  ecs.QueryFor(ecs.KeyOf[game.Position](), ecs.KeyOf[game.Glyph]()),
		logger:  logger,
	}
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		logger.Fatal().Err(err).Msg("game exited")
	}
}

func (g *Game) captured() bool {
	captured := false
	_, _ = ecs.ReadResource(g.world, func(state debugui.ImguiInputState) {
		captured = state.WantCaptureKeyboard
	})
	return captured
}

func (g *Game) readInput() error {
	if g.captured() {
		return nil
	}
	var delta game.Vector
	for key, dir := range moveKeys {
		if inpututil.IsKeyJustPressed(key) {
			delta = delta.Add(dir)
		}
	}
	if delta == (game.Vector{}) {
		return nil
	}
	_, err := ecs.WriteResource(g.world, func(intent *game.MoveIntent) {
		intent.Delta = delta
	})
	return err
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if err := g.readInput(); err != nil {
		return err
	}
	if err := g.backend.TickFrame(g.world); err != nil {
		g.logger.Warn().Err(err).Uint64("tick", g.world.TickCount()).Msg("tick failed")
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	theme := game.DefaultTheme()
	_, _ = ecs.ReadResource(g.world, func(t game.Theme) { theme = t })
	screen.Fill(theme.Background)

	var origin game.Vector
	_, _ = ecs.ReadResource(g.world, func(v game.Viewport) { origin = v.Origin() })

	for e := range g.world.QueryEntities(g.glyphs) {
		_, _ = ecs.ReadComponent(e, func(pos game.Position) {
			_, _ = ecs.ReadComponent(e, func(glyph game.Glyph) {
				x, y := pos.Coords.X-origin.X, pos.Coords.Y-origin.Y
				ebitenutil.DebugPrintAt(screen, string(glyph.Char), x*CellWidth, y*CellHeight)
			})
		})
	}

	g.backend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
