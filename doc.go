// Package motionrig is a deterministic real-time animation runtime.
//
// motionrig advances a set of clip players each tick, samples keyframed
// tracks with eased interpolation, blends contributions that target the same
// destination, and emits a batch of typed writes for a host to apply (a game
// engine adapter, a browser UI, an orchestrator).
//
// # Quick start
//
//	eng := motionrig.NewEngine(motionrig.DefaultConfig())
//	clipID, _ := eng.LoadClip(clip)
//	playerID := eng.CreatePlayer("hero")
//	instID, _ := eng.AddInstance(playerID, clipID, motionrig.InstanceCfg{Weight: 1})
//	eng.Prebind(motionrig.IdentityResolver())
//	out := eng.Tick(1.0/60.0, motionrig.Inputs{})
//
// # Companion packages
//
// [github.com/riglab/motionrig/graph] evaluates a DAG of typed dataflow
// nodes (arithmetic, selectors, oscillators, filters, robotics IK) over
// staged host inputs, sharing this package's [Value]/[Shape]/[TypedPath]
// vocabulary. [github.com/riglab/motionrig/board] merges both engines'
// write batches into a shared last-writer-wins key/value board.
//
// Out of scope: rendering, scene graph management, asset loading pipelines,
// animation authoring, network transport, persistence. Host bindings (the
// browser glue, ECS adapters, a game-engine loop) are external collaborators
// reached only through this package's public contract; [motionrig/hostebiten]
// and [motionrig/ecs] are thin reference adapters, not part of the core.
package motionrig
