// Package hostebiten adapts the orchestrator board.Scheduler to an
// Ebitengine [ebiten.Game], so a deterministic animation/dataflow tick can
// be driven by a real game loop without the host writing its own glue.
//
// Rendering is out of scope for the runtime itself; this adapter draws only
// a debug stats overlay (tick count, conflict count, FPS/TPS).
//
//	game := hostebiten.NewGame(scheduler, hostebiten.Config{ShowStats: true})
//	ebiten.RunGame(game)
//
// [ebiten.Game]: https://pkg.go.dev/github.com/hajimehoshi/ebiten/v2#Game
package hostebiten
