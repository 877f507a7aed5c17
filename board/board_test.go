package board

import (
	"testing"

	motionrig "github.com/riglab/motionrig"
)

func TestMergeAppliesWritesAsEntries(t *testing.T) {
	b := NewBoard()
	var batch motionrig.WriteBatch
	batch.Append(motionrig.WriteOp{Path: motionrig.MustPath("robot/x"), Value: motionrig.NewScalar(1)})
	b.Merge(batch, "graph")

	e, ok := b.Entry(motionrig.MustPath("robot/x"))
	if !ok {
		t.Fatal("expected an entry at robot/x")
	}
	if e.Value.AsScalar() != 1 || e.Source != "graph" {
		t.Errorf("entry = %+v, want value 1 source graph", e)
	}
}

func TestMergeOverwriteProducesConflictLog(t *testing.T) {
	b := NewBoard()
	path := motionrig.MustPath("robot/x")
	var first, second motionrig.WriteBatch
	first.Append(motionrig.WriteOp{Path: path, Value: motionrig.NewScalar(1)})
	second.Append(motionrig.WriteOp{Path: path, Value: motionrig.NewScalar(2)})

	b.Merge(first, "graph")
	if len(b.Conflicts()) != 0 {
		t.Fatal("first write to an empty board should not conflict")
	}
	b.Merge(second, "anim")
	conflicts := b.Conflicts()
	if len(conflicts) != 1 {
		t.Fatalf("expected exactly one conflict, got %d", len(conflicts))
	}
	c := conflicts[0]
	if c.Previous.AsScalar() != 1 || c.New.AsScalar() != 2 || c.PrevSource != "graph" || c.NewSource != "anim" {
		t.Errorf("conflict = %+v, unexpected fields", c)
	}
}

type recordingSubscriber struct {
	entries   int
	conflicts int
}

func (r *recordingSubscriber) OnEntryUpdated(motionrig.TypedPath, BlackboardEntry) { r.entries++ }
func (r *recordingSubscriber) OnConflict(ConflictLog)                             { r.conflicts++ }

func TestSubscriberReceivesEntryAndConflictNotifications(t *testing.T) {
	b := NewBoard()
	sub := &recordingSubscriber{}
	b.Subscribe(sub)

	path := motionrig.MustPath("robot/x")
	var batch motionrig.WriteBatch
	batch.Append(motionrig.WriteOp{Path: path, Value: motionrig.NewScalar(1)})
	b.Merge(batch, "graph")
	b.Merge(batch, "graph")

	if sub.entries != 2 {
		t.Errorf("entries notified = %d, want 2", sub.entries)
	}
	if sub.conflicts != 1 {
		t.Errorf("conflicts notified = %d, want 1", sub.conflicts)
	}
}
