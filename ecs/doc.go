// Package ecs provides a Donburi adapter for the orchestrator board.
//
// [NewDonburiBoard] bridges board.Board updates and conflicts into a
// [Donburi] world as typed events. Subscribe to [EntryEventType] and
// [ConflictEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sub := ecs.NewDonburiBoard(world)
//	b.Subscribe(sub)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
