package motionrig

import "math"

// PlayerID and InstanceID identify engine-owned entries by id (spec §9:
// arena + index — no back-pointers, removal is by id).
type PlayerID uint32
type InstanceID uint32

// Player is a timeline: playback state, speed, loop behavior, and a window
// (spec §3). Instances live in the owning Engine's instance arena, keyed by
// id; Player only remembers which instance ids belong to it.
type Player struct {
	ID         PlayerID
	Name       string
	State      PlayState
	LocalTime  float32
	Speed      float32
	LoopMode   LoopMode
	WindowStart float32
	WindowEnd   *float32 // nil: engine derives an effective end from instances
	Instances   []InstanceID

	pingDir int8 // +1 or -1; internal PingPong direction, distinct from Speed's sign
}

// newPlayer constructs a Player in its initial Stopped state (spec §4.5),
// speed 1, LoopMode Once.
func newPlayer(id PlayerID, name string) *Player {
	return &Player{ID: id, Name: name, State: Stopped, Speed: 1, LoopMode: Once, pingDir: 1}
}

// Instance binds a clip to a player with weight, time scale, and offset
// (spec §3).
type Instance struct {
	ID          InstanceID
	PlayerID    PlayerID
	ClipID      ClipID
	Weight      float32
	TimeScale   float32
	StartOffset float32
	Enabled     bool
}

// InstanceCfg configures a new Instance at creation time.
type InstanceCfg struct {
	Weight      float32
	TimeScale   float32
	StartOffset float32
	Enabled     bool
}

// applyDefaults fills zero-value fields with their documented defaults,
// matching the teacher's "if max <= 0 { max = 128 }" idiom (particle.go).
func (c InstanceCfg) applyDefaults() InstanceCfg {
	if c.TimeScale == 0 {
		c.TimeScale = 1
	}
	return c
}

// applyPlayerCmd applies one PlayerCmd to p. Invalid seeks (NaN/infinite) are
// ignored and reported as a Warning event rather than mutating state
// (spec §4.5/§7). effectiveEnd is the player's current window end (spec
// §8: "seek outside window is clamped"), resolved by the caller since it
// depends on instance/clip state the player alone doesn't have.
func applyPlayerCmd(p *Player, cmd PlayerCmd, effectiveEnd float32) []Event {
	switch cmd.Kind {
	case CmdPlay:
		p.State = Playing
	case CmdPause:
		p.State = Paused
	case CmdStop:
		p.State = Stopped
		p.LocalTime = p.WindowStart
		p.pingDir = 1
	case CmdSeek:
		if math.IsNaN(float64(cmd.SeekTime)) || math.IsInf(float64(cmd.SeekTime), 0) {
			return []Event{{Kind: EventWarning, Message: "seek ignored: non-finite time", Fields: map[string]any{"player": p.ID}}}
		}
		p.LocalTime = clampFloat32(cmd.SeekTime, p.WindowStart, effectiveEnd)
	case CmdSetSpeed:
		p.Speed = cmd.Speed
	case CmdSetLoopMode:
		p.LoopMode = cmd.LoopMode
	case CmdSetWindow:
		p.WindowStart = cmd.WindowFrom
		if cmd.HasWindowTo {
			end := cmd.WindowTo
			p.WindowEnd = &end
		} else {
			p.WindowEnd = nil
		}
	}
	return nil
}

// stepPlayer advances p's local time by dt seconds at its current speed,
// against the window [p.WindowStart, effectiveEnd], per spec §4.5:
//
//   - Once: on reaching end, state -> Stopped at end; emits PlaybackEnded.
//   - Loop: wraps modulo (end - start).
//   - PingPong: reflects at boundaries; the player's stored Speed sign is
//     never mutated, only the internal direction flips.
//
// A zero-duration window (effectiveEnd == WindowStart) yields no samples but
// still emits PlaybackEnded immediately under Once (spec §8 boundary case).
func stepPlayer(p *Player, dt float32, effectiveEnd float32) []Event {
	if p.State != Playing {
		return nil
	}
	span := effectiveEnd - p.WindowStart
	advance := dt * p.Speed * float32(p.pingDir)

	if span <= 0 {
		if p.LoopMode == Once {
			p.State = Stopped
			p.LocalTime = p.WindowStart
			return []Event{{Kind: EventPlaybackEnded, Message: "playback ended", Fields: map[string]any{"player": p.ID}}}
		}
		return nil
	}

	t := p.LocalTime + advance

	switch p.LoopMode {
	case Once:
		if advance >= 0 && t >= effectiveEnd {
			p.LocalTime = effectiveEnd
			p.State = Stopped
			return []Event{{Kind: EventPlaybackEnded, Message: "playback ended", Fields: map[string]any{"player": p.ID}}}
		}
		if advance < 0 && t <= p.WindowStart {
			p.LocalTime = p.WindowStart
			p.State = Stopped
			return []Event{{Kind: EventPlaybackEnded, Message: "playback ended", Fields: map[string]any{"player": p.ID}}}
		}
		p.LocalTime = t
	case Loop:
		rel := t - p.WindowStart
		rel = wrapMod(rel, span)
		p.LocalTime = p.WindowStart + rel
	case PingPong:
		rel := t - p.WindowStart
		// Reflect rel into [0, span] via triangle-wave folding; flip the
		// internal direction whenever a boundary is crossed.
		period := 2 * span
		rel = wrapMod(rel, period)
		if rel > span {
			rel = period - rel
			p.pingDir = -p.pingDir
		}
		// pingDir already applied to `advance` above; detect boundary
		// crossing by folding, not by re-deriving direction from rel alone,
		// so a single large dt still ends in the correct direction.
		p.LocalTime = p.WindowStart + rel
	}
	return nil
}

// clampFloat32 clamps v to [lo, hi]. A degenerate window (hi <= lo)
// collapses to lo, matching stepPlayer's zero-duration-window handling.
func clampFloat32(v, lo, hi float32) float32 {
	if hi <= lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func wrapMod(v, m float32) float32 {
	if m <= 0 {
		return 0
	}
	r := float32(math.Mod(float64(v), float64(m)))
	if r < 0 {
		r += m
	}
	return r
}

// instanceLocalTime computes an instance's local sample time from its
// player's time, per spec §4.5: (player_time - start_offset) * time_scale,
// clamped to [0, clipDuration].
func instanceLocalTime(inst *Instance, playerTime, clipDuration float32) float32 {
	t := (playerTime - inst.StartOffset) * inst.TimeScale
	if t < 0 {
		return 0
	}
	if t > clipDuration {
		return clipDuration
	}
	return t
}
