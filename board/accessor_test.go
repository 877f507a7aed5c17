package board

import (
	"testing"

	motionrig "github.com/riglab/motionrig"
)

func TestBuildInputsTranslatesPlayerLevelWrites(t *testing.T) {
	b := NewBoard()
	var batch motionrig.WriteBatch
	batch.Append(motionrig.WriteOp{Path: motionrig.AnimPlayerPath(1, "seek"), Value: motionrig.NewScalar(2.5)})
	batch.Append(motionrig.WriteOp{Path: motionrig.AnimPlayerPath(1, "play"), Value: motionrig.NewBool(true)})
	b.Merge(batch, "test")

	in := BuildInputs(b)
	if len(in.PlayerCmds) != 2 {
		t.Fatalf("expected 2 player commands, got %d: %+v", len(in.PlayerCmds), in.PlayerCmds)
	}
	var sawPlay, sawSeek bool
	for _, c := range in.PlayerCmds {
		if c.PlayerID != 1 {
			t.Errorf("unexpected player id %d", c.PlayerID)
		}
		switch c.Kind {
		case motionrig.CmdPlay:
			sawPlay = true
		case motionrig.CmdSeek:
			sawSeek = true
			if c.SeekTime != 2.5 {
				t.Errorf("seek time = %f, want 2.5", c.SeekTime)
			}
		}
	}
	if !sawPlay || !sawSeek {
		t.Errorf("missing expected commands: play=%v seek=%v", sawPlay, sawSeek)
	}
}

func TestBuildInputsTranslatesInstanceLevelWrites(t *testing.T) {
	b := NewBoard()
	var batch motionrig.WriteBatch
	batch.Append(motionrig.WriteOp{Path: motionrig.AnimInstancePath(1, 3, "weight"), Value: motionrig.NewScalar(0.5)})
	b.Merge(batch, "test")

	in := BuildInputs(b)
	if len(in.InstanceUpdates) != 1 {
		t.Fatalf("expected 1 instance update, got %d", len(in.InstanceUpdates))
	}
	u := in.InstanceUpdates[0]
	if u.InstanceID != 3 || !u.SetWeight || u.Weight != 0.5 {
		t.Errorf("instance update = %+v, want instance 3 weight 0.5", u)
	}
}

func TestBuildInputsIgnoresNonAnimPaths(t *testing.T) {
	b := NewBoard()
	var batch motionrig.WriteBatch
	batch.Append(motionrig.WriteOp{Path: motionrig.MustPath("robot/x"), Value: motionrig.NewScalar(1)})
	b.Merge(batch, "test")

	in := BuildInputs(b)
	if len(in.PlayerCmds) != 0 || len(in.InstanceUpdates) != 0 {
		t.Errorf("expected no commands from a non-anim path, got %+v", in)
	}
}
