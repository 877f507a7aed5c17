package motionrig

import "fmt"

// ClipID identifies a loaded clip within an Engine's clip store.
type ClipID uint32

// Keyframe anchors an interpolation sample at a given time (spec §3).
// Easing carries optional per-key control points: its Out pair is cp0 of the
// segment leaving this key and its In pair is cp1 of the segment arriving at
// this key (see segmentEasingFor).
type Keyframe struct {
	T        float32 // seconds, in [0, clip.Duration]
	Value    Value
	Easing   *SegmentEasing // nil uses the track's DefaultEasing
}

// SegmentEasing names the cubic-bezier control points for one segment
// (spec §4.4). A nil *SegmentEasing at the track level defaults to
// ease-in-out (0.42,0)-(0.58,1); linear tracks should set this explicitly to
// (0,0)-(1,1).
type SegmentEasing struct {
	// Out is this key's outgoing control point (cp0), In is the next key's
	// incoming control point (cp1). Track.DefaultEasing supplies both; a
	// per-Keyframe override may supply just one, the other falls back to
	// the track default.
	OutX, OutY float32
	InX, InY   float32
}

// DefaultEasing is the ease-in-out curve used when neither a track default
// nor a per-key override supplies control points (spec §4.4).
var DefaultEasing = SegmentEasing{OutX: 0.42, OutY: 0, InX: 0.58, InY: 1}

// LinearEasing is the identity bezier, used for step/linear tracks.
var LinearEasing = SegmentEasing{OutX: 0, OutY: 0, InX: 1, InY: 1}

// Track is a sequence of keyframes for one destination path, of one value
// Kind (spec §3). Keyframes must be strictly increasing in T and share Kind.
type Track struct {
	Path          string
	Kind          Kind
	Keyframes     []Keyframe
	DefaultEasing SegmentEasing
}

// AnimationData is a named, time-bounded collection of tracks (spec §3; the
// external/authoring name for what this package calls Clip).
type AnimationData struct {
	Name     string
	Duration float32 // seconds
	Tracks   []Track
}

// Validate checks the invariants in spec §3/§4.3: keyframes strictly
// increasing in T, all keyframes within a track share Kind, and
// Duration >= last key T across all tracks.
func (c AnimationData) Validate() error {
	if c.Duration < 0 {
		return newErr(ErrParse, map[string]any{"duration": c.Duration}, "%v: clip %q: negative duration", ErrParse, c.Name)
	}
	for ti, tr := range c.Tracks {
		if len(tr.Keyframes) == 0 {
			continue
		}
		last := tr.Keyframes[0].T
		for ki, kf := range tr.Keyframes {
			if kf.Value.Kind != tr.Kind {
				return newErr(ErrParse, map[string]any{"track": ti, "key": ki},
					"%v: clip %q track %q: keyframe %d kind %s does not match track kind %s",
					ErrParse, c.Name, tr.Path, ki, kf.Value.Kind, tr.Kind)
			}
			if ki > 0 && kf.T <= last {
				return newErr(ErrParse, map[string]any{"track": ti, "key": ki},
					"%v: clip %q track %q: keyframe %d time %f not strictly increasing after %f",
					ErrParse, c.Name, tr.Path, ki, kf.T, last)
			}
			last = kf.T
		}
		if last > c.Duration {
			return newErr(ErrParse, map[string]any{"track": ti},
				"%v: clip %q track %q: last keyframe at %f exceeds duration %f",
				ErrParse, c.Name, tr.Path, last, c.Duration)
		}
	}
	return nil
}

func (e SegmentEasing) String() string {
	return fmt.Sprintf("bezier(%.3f,%.3f,%.3f,%.3f)", e.OutX, e.OutY, e.InX, e.InY)
}
