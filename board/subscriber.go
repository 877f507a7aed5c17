package board

import motionrig "github.com/riglab/motionrig"

// Subscriber receives board updates as they are merged, letting a host (the
// ECS adapter, a debug view) republish board state without polling. Both
// methods are called synchronously from Merge, in merge order.
type Subscriber interface {
	OnEntryUpdated(path motionrig.TypedPath, entry BlackboardEntry)
	OnConflict(log ConflictLog)
}
