package hostebiten

import (
	"testing"

	motionrig "github.com/riglab/motionrig"
	"github.com/riglab/motionrig/board"
	"github.com/riglab/motionrig/graph"

	"github.com/hajimehoshi/ebiten/v2"
)

func newSchedulerFixture(t *testing.T) *board.Scheduler {
	t.Helper()
	rt, err := graph.NewGraphRuntime(graph.GraphSpec{}, graph.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	eng := motionrig.NewEngine(motionrig.DefaultConfig())
	b := board.NewBoard()
	return board.NewScheduler(b, eng, rt, board.SinglePass, board.GraphBinding{})
}

func TestNewGameDefaultsSize(t *testing.T) {
	g := NewGame(newSchedulerFixture(t), Config{})
	w, h := g.Layout(0, 0)
	if w != 640 || h != 480 {
		t.Errorf("Layout() = (%d,%d), want (640,480)", w, h)
	}
}

func TestNewGameHonorsConfiguredSize(t *testing.T) {
	g := NewGame(newSchedulerFixture(t), Config{Width: 320, Height: 240})
	w, h := g.Layout(0, 0)
	if w != 320 || h != 240 {
		t.Errorf("Layout() = (%d,%d), want (320,240)", w, h)
	}
}

func TestGameUpdateAdvancesTickCount(t *testing.T) {
	g := NewGame(newSchedulerFixture(t), Config{})
	if g.Ticks() != 0 {
		t.Fatalf("new game should start at 0 ticks, got %d", g.Ticks())
	}
	if err := g.Update(); err != nil {
		t.Fatalf("Update() returned error: %v", err)
	}
	if g.Ticks() != 1 {
		t.Errorf("Ticks() after one Update = %d, want 1", g.Ticks())
	}
}

func TestGameDrawDoesNotPanicWithStatsEnabled(t *testing.T) {
	g := NewGame(newSchedulerFixture(t), Config{ShowStats: true})
	if err := g.Update(); err != nil {
		t.Fatalf("Update() returned error: %v", err)
	}
	screen := ebiten.NewImage(640, 480)
	g.Draw(screen)
}

func TestGameDrawIsNoopWithStatsDisabled(t *testing.T) {
	g := NewGame(newSchedulerFixture(t), Config{ShowStats: false})
	screen := ebiten.NewImage(640, 480)
	g.Draw(screen)
}
