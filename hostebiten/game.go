package hostebiten

import (
	"fmt"

	"github.com/riglab/motionrig/board"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Config holds optional configuration for [Run].
type Config struct {
	// Title sets the window title. Ignored on platforms without a title bar.
	Title string
	// Width and Height set the window size in device-independent pixels.
	// If zero, defaults to 640x480.
	Width, Height int

	// ShowStats overlays tick count, conflict count, and FPS/TPS in the
	// top-left corner.
	ShowStats bool
}

// Game implements [ebiten.Game] by ticking a board.Scheduler once per
// frame at the engine's configured tick rate.
type Game struct {
	scheduler *board.Scheduler
	w, h      int
	showStats bool
	ticks     uint64
	lastErr   error
}

// NewGame wraps scheduler in an ebiten.Game. Width/Height default to
// 640x480 when zero, matching Layout's reported size.
func NewGame(scheduler *board.Scheduler, cfg Config) *Game {
	w, h := cfg.Width, cfg.Height
	if w == 0 {
		w = 640
	}
	if h == 0 {
		h = 480
	}
	return &Game{scheduler: scheduler, w: w, h: h, showStats: cfg.ShowStats}
}

// Run creates an Ebitengine game loop around scheduler. For full control
// over the game loop, skip Run and call ebiten.RunGame with a [*Game] from
// [NewGame] directly.
func Run(scheduler *board.Scheduler, cfg Config) error {
	g := NewGame(scheduler, cfg)
	ebiten.SetWindowSize(g.w, g.h)
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	return ebiten.RunGame(g)
}

// Update steps the scheduler by one tick at ebiten's configured TPS and
// records the error for Draw's overlay, surfacing it to the caller too.
func (g *Game) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))
	g.lastErr = g.scheduler.Step(dt)
	g.ticks++
	return g.lastErr
}

// Draw renders the debug stats overlay when enabled. The scheduler itself
// has no visual representation; a host embedding board state into its own
// scene graph draws that separately.
func (g *Game) Draw(screen *ebiten.Image) {
	if !g.showStats {
		return
	}
	conflicts := 0
	if g.scheduler.Board != nil {
		conflicts = len(g.scheduler.Board.Conflicts())
	}
	status := "ok"
	if g.lastErr != nil {
		status = g.lastErr.Error()
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"ticks: %d\nconflicts: %d\nFPS: %.1f\nTPS: %.1f\nstatus: %s",
		g.ticks, conflicts, ebiten.ActualFPS(), ebiten.ActualTPS(), status,
	))
}

// Layout reports the fixed logical screen size configured via Config.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.w, g.h
}

// Ticks returns the number of Update calls processed so far.
func (g *Game) Ticks() uint64 { return g.ticks }
