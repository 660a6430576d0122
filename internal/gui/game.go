// Package gui hosts a world in a native window rendered with Ebitengine.
package gui

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/nexustech101/particlebox/internal/config"
	"github.com/nexustech101/particlebox/internal/engine"
)

var (
	colBg        = color.RGBA{R: 10, G: 10, B: 12, A: 255}
	colHighlight = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colFallback  = color.RGBA{R: 180, G: 180, B: 180, A: 255}
)

// Game implements ebiten.Game around one world. World coordinates map
// 1:1 onto screen pixels, so the window size is the arena size.
type Game struct {
	world      *engine.World
	cfg        *config.Config
	paused     bool
	collisions int
	wallHits   int

	lastW, lastH int
	snap         []engine.Particle
	colors       map[string]color.RGBA
}

func New(cfg *config.Config, world *engine.World) *Game {
	return &Game{
		world:  world,
		cfg:    cfg,
		colors: make(map[string]color.RGBA),
	}
}

// Update handles input and advances the world once per tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.world.Reset()
		g.collisions = 0
		g.wallHits = 0
	}

	w, h := g.world.Bounds()
	mx, my := ebiten.CursorPosition()
	if mx < 0 || my < 0 || float64(mx) > w || float64(my) > h {
		g.world.ClearPointer()
	} else {
		g.world.PointAt(engine.Vec2{X: float64(mx), Y: float64(my)})
	}

	if g.paused {
		return nil
	}
	info := g.world.Advance()
	g.collisions += info.Collisions
	g.wallHits += info.WallHits
	return nil
}

// Draw renders every body as a filled disc, ringing the one under the
// cursor.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBg)

	g.snap = g.world.SnapshotInto(g.snap)
	for _, b := range g.snap {
		vector.DrawFilledCircle(screen,
			float32(b.Pos.X), float32(b.Pos.Y), float32(b.Radius), g.bodyColor(b.Color), true)
		if b.Highlight {
			vector.StrokeCircle(screen,
				float32(b.Pos.X), float32(b.Pos.Y), float32(b.Radius)+3, 1.5, colHighlight, true)
		}
	}

	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("%s  bodies %d  frame %d", g.cfg.Name, g.world.Count(), g.world.Frame()), 8, 8)
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("ke %.2f  collisions %d  wall hits %d",
			g.world.TotalKineticEnergy(), g.collisions, g.wallHits), 8, 24)
	if g.paused {
		ebitenutil.DebugPrintAt(screen, "paused (space resumes, R resets)", 8, 40)
	}
}

// Layout reports the window size as the logical screen size and keeps
// the arena bounds in sync with it. Bodies are never repositioned on
// resize; out-of-bounds ones re-enter through the wall pass.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.lastW || outsideHeight != g.lastH {
		g.lastW, g.lastH = outsideWidth, outsideHeight
		g.world.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// bodyColor decodes a #rrggbb string, memoized per distinct value.
func (g *Game) bodyColor(hex string) color.RGBA {
	if c, ok := g.colors[hex]; ok {
		return c
	}
	c := colFallback
	if len(hex) == 7 && hex[0] == '#' {
		if v, err := strconv.ParseUint(hex[1:], 16, 32); err == nil {
			c = color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
		}
	}
	g.colors[hex] = c
	return c
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config) error {
	world, err := cfg.NewWorld()
	if err != nil {
		return err
	}
	ebiten.SetWindowTitle("particlebox")
	ebiten.SetWindowSize(int(cfg.Width), int(cfg.Height))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	return ebiten.RunGame(New(cfg, world))
}
