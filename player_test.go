package motionrig

import "testing"

func TestStepPlayerOncePlaybackEnded(t *testing.T) {
	p := newPlayer(1, "once")
	p.State = Playing
	p.WindowStart = 0

	events := stepPlayer(p, 0.5, 1.0)
	if len(events) != 0 {
		t.Fatalf("tick 1: unexpected events %v", events)
	}
	if p.LocalTime != 0.5 {
		t.Fatalf("tick 1: LocalTime = %f, want 0.5", p.LocalTime)
	}

	events = stepPlayer(p, 0.5, 1.0)
	if len(events) != 1 || events[0].Kind != EventPlaybackEnded {
		t.Fatalf("tick 2: expected PlaybackEnded, got %v", events)
	}
	if p.LocalTime != 1.0 {
		t.Errorf("tick 2: LocalTime = %f, want 1.0", p.LocalTime)
	}
	if p.State != Stopped {
		t.Errorf("tick 2: State = %v, want Stopped", p.State)
	}
}

func TestStepPlayerLoopWraps(t *testing.T) {
	p := newPlayer(1, "loop")
	p.State = Playing
	p.LoopMode = Loop
	p.WindowStart = 0

	stepPlayer(p, 1.5, 1.0) // 1.5 mod 1.0 == 0.5
	if p.LocalTime != 0.5 {
		t.Fatalf("LocalTime = %f, want 0.5 after wrap", p.LocalTime)
	}
}

func TestStepPlayerPingPongReflects(t *testing.T) {
	p := newPlayer(1, "pingpong")
	p.State = Playing
	p.LoopMode = PingPong
	p.Speed = 1
	p.WindowStart = 0

	// duration 2.0s, three dt=1.0 ticks: local_time 1.0, 2.0 (reflect), 1.0.
	stepPlayer(p, 1.0, 2.0)
	if p.LocalTime != 1.0 {
		t.Fatalf("tick 1: LocalTime = %f, want 1.0", p.LocalTime)
	}
	stepPlayer(p, 1.0, 2.0)
	if p.LocalTime != 2.0 {
		t.Fatalf("tick 2: LocalTime = %f, want 2.0", p.LocalTime)
	}
	stepPlayer(p, 1.0, 2.0)
	if p.LocalTime != 1.0 {
		t.Fatalf("tick 3: LocalTime = %f, want 1.0 after reflecting", p.LocalTime)
	}
}

func TestStepPlayerPausedDoesNotAdvance(t *testing.T) {
	p := newPlayer(1, "paused")
	p.State = Paused
	p.LocalTime = 0.3
	stepPlayer(p, 1.0, 2.0)
	if p.LocalTime != 0.3 {
		t.Errorf("paused player advanced: LocalTime = %f, want 0.3", p.LocalTime)
	}
}

func TestApplyPlayerCmdSeekRejectsNonFinite(t *testing.T) {
	p := newPlayer(1, "p")
	p.LocalTime = 0.5
	zero := float32(0)
	nan := zero / zero
	events := applyPlayerCmd(p, PlayerCmd{Kind: CmdSeek, SeekTime: nan}, 2.0)
	if len(events) != 1 || events[0].Kind != EventWarning {
		t.Fatalf("expected a Warning event for NaN seek, got %v", events)
	}
	if p.LocalTime != 0.5 {
		t.Errorf("LocalTime changed despite invalid seek: %f", p.LocalTime)
	}
}

func TestApplyPlayerCmdSeekClampsToWindow(t *testing.T) {
	p := newPlayer(1, "p")
	p.WindowStart = 1.0

	applyPlayerCmd(p, PlayerCmd{Kind: CmdSeek, SeekTime: 10.0}, 2.0)
	if p.LocalTime != 2.0 {
		t.Errorf("seek past window end: LocalTime = %f, want clamped to 2.0", p.LocalTime)
	}

	applyPlayerCmd(p, PlayerCmd{Kind: CmdSeek, SeekTime: -5.0}, 2.0)
	if p.LocalTime != 1.0 {
		t.Errorf("seek before window start: LocalTime = %f, want clamped to 1.0", p.LocalTime)
	}

	applyPlayerCmd(p, PlayerCmd{Kind: CmdSeek, SeekTime: 1.5}, 2.0)
	if p.LocalTime != 1.5 {
		t.Errorf("seek inside window: LocalTime = %f, want 1.5 unclamped", p.LocalTime)
	}
}

func TestApplyPlayerCmdStopResetsToWindowStart(t *testing.T) {
	p := newPlayer(1, "p")
	p.WindowStart = 0.25
	p.LocalTime = 1.5
	p.State = Playing
	applyPlayerCmd(p, PlayerCmd{Kind: CmdStop}, 2.0)
	if p.State != Stopped || p.LocalTime != 0.25 {
		t.Errorf("after Stop: state=%v time=%f, want Stopped,0.25", p.State, p.LocalTime)
	}
}

func TestInstanceLocalTimeClamps(t *testing.T) {
	inst := &Instance{StartOffset: 1, TimeScale: 1}
	if got := instanceLocalTime(inst, 0, 5); got != 0 {
		t.Errorf("before start offset: got %f, want 0", got)
	}
	if got := instanceLocalTime(inst, 10, 5); got != 5 {
		t.Errorf("beyond clip duration: got %f, want 5 (clamped)", got)
	}
}

func TestWrapMod(t *testing.T) {
	if got := wrapMod(-0.5, 2); got != 1.5 {
		t.Errorf("wrapMod(-0.5, 2) = %f, want 1.5", got)
	}
	if got := wrapMod(2.5, 2); got != 0.5 {
		t.Errorf("wrapMod(2.5, 2) = %f, want 0.5", got)
	}
}
