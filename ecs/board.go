package ecs

import (
	motionrig "github.com/riglab/motionrig"
	"github.com/riglab/motionrig/board"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EntryUpdatedEvent mirrors one board.Board entry update, carrying the
// path as its canonical string since donburi events are plain values, not
// interfaces, and TypedPath's slice field makes it a poor copy-by-value
// payload for repeated publish/subscribe.
type EntryUpdatedEvent struct {
	Path  string
	Entry board.BlackboardEntry
}

// ConflictEvent mirrors one board.ConflictLog.
type ConflictEvent struct {
	Path       string
	Previous   motionrig.Value
	New        motionrig.Value
	PrevEpoch  uint64
	NewEpoch   uint64
	PrevSource string
	NewSource  string
}

// EntryEventType is the Donburi event type for board entry updates.
var EntryEventType = events.NewEventType[EntryUpdatedEvent]()

// ConflictEventType is the Donburi event type for board conflicts.
var ConflictEventType = events.NewEventType[ConflictEvent]()

type donburiBoard struct {
	world donburi.World
}

// NewDonburiBoard returns a board.Subscriber that republishes every board
// update and conflict into world as typed Donburi events. ECS systems
// consume them with events.Subscribe and ProcessEvents, the same way the
// rest of this world's event traffic is drained.
func NewDonburiBoard(world donburi.World) board.Subscriber {
	return &donburiBoard{world: world}
}

func (s *donburiBoard) OnEntryUpdated(path motionrig.TypedPath, entry board.BlackboardEntry) {
	EntryEventType.Publish(s.world, EntryUpdatedEvent{Path: path.String(), Entry: entry})
}

func (s *donburiBoard) OnConflict(log board.ConflictLog) {
	ConflictEventType.Publish(s.world, ConflictEvent{
		Path:       log.Path.String(),
		Previous:   log.Previous,
		New:        log.New,
		PrevEpoch:  log.PrevEpoch,
		NewEpoch:   log.NewEpoch,
		PrevSource: log.PrevSource,
		NewSource:  log.NewSource,
	})
}
