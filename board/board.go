// Package board implements the orchestrator (spec §4.10): a shared
// key/value blackboard merging write batches from the animation engine and
// the graph runtime, with last-writer-wins conflict logging and a choice of
// controller-pass scheduling.
package board

import (
	"sort"

	motionrig "github.com/riglab/motionrig"
)

// BlackboardEntry is one board slot (spec §3): the current value, its
// shape if the producing write declared one, the epoch it was written at,
// and which source ("anim", "graph", or a caller-chosen controller name)
// produced it.
type BlackboardEntry struct {
	Value    motionrig.Value
	Shape    motionrig.Shape
	HasShape bool
	Epoch    uint64
	Source   string
}

// ConflictLog records one overwrite of an existing board entry (spec §4.10:
// "every overwrite produces a ConflictLog{path, previous, new, epochs,
// sources}").
type ConflictLog struct {
	Path       motionrig.TypedPath
	Previous   motionrig.Value
	New        motionrig.Value
	PrevEpoch  uint64
	NewEpoch   uint64
	PrevSource string
	NewSource  string
}

// slot pairs a BlackboardEntry with the TypedPath it was written under.
// TypedPath itself is not map-key-safe (its Segments field is a slice), so
// the board keys its table by the path's canonical string and recovers the
// structured path from here when needed.
type slot struct {
	path  motionrig.TypedPath
	entry BlackboardEntry
}

// Board is the shared blackboard. It owns its entries and conflict log
// exclusively (spec §5): no locking, single-threaded cooperative use.
type Board struct {
	entries   map[string]slot
	conflicts []ConflictLog
	epoch     uint64
	subs      []Subscriber
}

// NewBoard returns an empty Board at epoch 0.
func NewBoard() *Board {
	return &Board{entries: make(map[string]slot)}
}

// Subscribe registers s to be notified of entry updates and conflicts as
// they are merged.
func (b *Board) Subscribe(s Subscriber) {
	b.subs = append(b.subs, s)
}

// Entry returns the current value at path, or false if nothing has been
// written there yet.
func (b *Board) Entry(path motionrig.TypedPath) (BlackboardEntry, bool) {
	s, ok := b.entries[path.String()]
	return s.entry, ok
}

// Conflicts returns the full conflict log accumulated so far, in merge
// order.
func (b *Board) Conflicts() []ConflictLog {
	return b.conflicts
}

// Merge applies every WriteOp in batch to the board under the given source
// label, in batch append order (spec §4.2: append order defines conflict
// resolution order). An overwrite of an existing entry appends a
// ConflictLog before the new value replaces it.
func (b *Board) Merge(batch motionrig.WriteBatch, source string) {
	b.epoch++
	for _, op := range batch.Ops {
		key := op.Path.String()
		prev, existed := b.entries[key]
		if existed {
			log := ConflictLog{
				Path: op.Path, Previous: prev.entry.Value, New: op.Value,
				PrevEpoch: prev.entry.Epoch, NewEpoch: b.epoch,
				PrevSource: prev.entry.Source, NewSource: source,
			}
			b.conflicts = append(b.conflicts, log)
			b.notifyConflict(log)
		}
		entry := BlackboardEntry{Value: op.Value, Shape: op.Shape, HasShape: op.HasShape, Epoch: b.epoch, Source: source}
		b.entries[key] = slot{path: op.Path, entry: entry}
		b.notifyEntry(op.Path, entry)
	}
}

func (b *Board) notifyEntry(path motionrig.TypedPath, e BlackboardEntry) {
	for _, s := range b.subs {
		s.OnEntryUpdated(path, e)
	}
}

func (b *Board) notifyConflict(log ConflictLog) {
	for _, s := range b.subs {
		s.OnConflict(log)
	}
}

// sortedPaths returns every entry's TypedPath in ascending string order,
// giving deterministic iteration over the board's map (spec §5 determinism).
func (b *Board) sortedPaths() []motionrig.TypedPath {
	keys := make([]string, 0, len(b.entries))
	for k := range b.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	paths := make([]motionrig.TypedPath, len(keys))
	for i, k := range keys {
		paths[i] = b.entries[k].path
	}
	return paths
}
