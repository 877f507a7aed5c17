package motionrig

import (
	"encoding/json"
	"fmt"
)

// --- Engine-native JSON (spec §4.3 shape (a)) ---

type engineNativeClipJSON struct {
	Name     string               `json:"name"`
	Duration float32              `json:"duration"` // seconds
	Tracks   []engineNativeTrack  `json:"tracks"`
}

type engineNativeTrack struct {
	Path          string              `json:"path"`
	Keyframes     []engineNativeKey   `json:"keyframes"`
	DefaultEasing *bezierJSON         `json:"default_easing,omitempty"`
}

type engineNativeKey struct {
	T      float32     `json:"t"`
	Value  Value       `json:"value"`
	Easing *segmentEasingJSON `json:"easing,omitempty"`
}

type bezierJSON struct {
	OutX, OutY, InX, InY float32
}

type segmentEasingJSON struct {
	Out *bezierPoint `json:"out,omitempty"`
	In  *bezierPoint `json:"in,omitempty"`
}

type bezierPoint struct {
	X, Y float32
}

// ParseEngineNativeClip parses the engine-native authoring shape: duration
// in seconds, absolute key times, typed Values (spec §4.3 shape (a)).
func ParseEngineNativeClip(data []byte) (AnimationData, error) {
	var in engineNativeClipJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return AnimationData{}, fmt.Errorf("%w: engine-native clip: %v", ErrParse, err)
	}
	if in.Duration <= 0 {
		return AnimationData{}, newErr(ErrParse, nil, "%v: clip %q: duration must be > 0", ErrParse, in.Name)
	}
	out := AnimationData{Name: in.Name, Duration: in.Duration}
	for _, t := range in.Tracks {
		tr := Track{Path: t.Path, DefaultEasing: DefaultEasing}
		if t.DefaultEasing != nil {
			tr.DefaultEasing = SegmentEasing{OutX: t.DefaultEasing.OutX, OutY: t.DefaultEasing.OutY, InX: t.DefaultEasing.InX, InY: t.DefaultEasing.InY}
		}
		var kind Kind
		for i, k := range t.Keyframes {
			if i == 0 {
				kind = k.Value.Kind
			} else if k.Value.Kind != kind {
				return AnimationData{}, newErr(ErrParse, map[string]any{"track": t.Path, "key": i},
					"%v: track %q: keyframe %d kind %s mismatches track kind %s", ErrParse, t.Path, i, k.Value.Kind, kind)
			}
			kf := Keyframe{T: k.T, Value: k.Value}
			if k.Easing != nil {
				kf.Easing = resolveSegmentEasing(k.Easing, tr.DefaultEasing)
			}
			tr.Keyframes = append(tr.Keyframes, kf)
		}
		tr.Kind = kind
		out.Tracks = append(out.Tracks, tr)
	}
	if err := out.Validate(); err != nil {
		return AnimationData{}, err
	}
	return out, nil
}

func resolveSegmentEasing(j *segmentEasingJSON, fallback SegmentEasing) *SegmentEasing {
	se := fallback
	if j.Out != nil {
		se.OutX, se.OutY = j.Out.X, j.Out.Y
	}
	if j.In != nil {
		se.InX, se.InY = j.In.X, j.In.Y
	}
	return &se
}

// --- Stored/authoring JSON (spec §4.3 shape (b), §6) ---

type storedClipJSON struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Duration float32            `json:"duration"` // milliseconds
	Tracks   []storedTrackJSON  `json:"tracks"`
	Groups   json.RawMessage    `json:"groups,omitempty"`
}

type storedTrackJSON struct {
	ID           string            `json:"id"`
	AnimatableID string            `json:"animatableId"`
	Points       []storedPointJSON `json:"points"`
}

type storedPointJSON struct {
	ID          string              `json:"id"`
	Stamp       float32             `json:"stamp"` // normalized [0,1]
	Value       Value               `json:"value"`
	Transitions *storedTransitions  `json:"transitions,omitempty"`
}

type storedTransitions struct {
	In  *bezierPoint `json:"in,omitempty"`
	Out *bezierPoint `json:"out,omitempty"`
}

// ParseStoredClip parses the stored/authoring JSON shape: duration in
// milliseconds, per-key normalized stamps in [0,1], optional cubic-bezier
// control points (spec §4.3 shape (b), §6). The animatableId is taken
// directly as the track's canonical path; resolving host-specific
// animatable registries is a host concern, not this package's.
func ParseStoredClip(data []byte) (AnimationData, error) {
	var in storedClipJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return AnimationData{}, fmt.Errorf("%w: stored clip: %v", ErrParse, err)
	}
	if in.Duration <= 0 {
		return AnimationData{}, newErr(ErrParse, nil, "%v: clip %q: duration must be > 0", ErrParse, in.Name)
	}
	durationSec := in.Duration / 1000.0
	out := AnimationData{Name: in.Name, Duration: durationSec}
	for _, t := range in.Tracks {
		tr := Track{Path: t.AnimatableID, DefaultEasing: DefaultEasing}
		var kind Kind
		last := float32(-1)
		for i, p := range t.Points {
			if p.Stamp < 0 || p.Stamp > 1 {
				return AnimationData{}, newErr(ErrParse, map[string]any{"track": t.AnimatableID, "point": i},
					"%v: track %q: point %d stamp %f outside [0,1]", ErrParse, t.AnimatableID, i, p.Stamp)
			}
			tSec := p.Stamp * durationSec
			if i > 0 && tSec <= last {
				return AnimationData{}, newErr(ErrParse, map[string]any{"track": t.AnimatableID, "point": i},
					"%v: track %q: point %d time %f not strictly increasing after %f", ErrParse, t.AnimatableID, i, tSec, last)
			}
			last = tSec
			if i == 0 {
				kind = p.Value.Kind
			} else if p.Value.Kind != kind {
				return AnimationData{}, newErr(ErrParse, map[string]any{"track": t.AnimatableID, "point": i},
					"%v: track %q: point %d kind %s mismatches track kind %s", ErrParse, t.AnimatableID, i, p.Value.Kind, kind)
			}
			kf := Keyframe{T: tSec, Value: p.Value}
			if p.Transitions != nil {
				se := &segmentEasingJSON{In: p.Transitions.In, Out: p.Transitions.Out}
				kf.Easing = resolveSegmentEasing(se, tr.DefaultEasing)
			}
			tr.Keyframes = append(tr.Keyframes, kf)
		}
		tr.Kind = kind
		out.Tracks = append(out.Tracks, tr)
	}
	if err := out.Validate(); err != nil {
		return AnimationData{}, err
	}
	return out, nil
}
