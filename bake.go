package motionrig

import "math"

// BakingCfg configures BakeClip/BakeClipWithDerivatives: a uniform-rate
// resample across [Start, End] (spec §4.6).
type BakingCfg struct {
	FrameRate float32 // samples per second; zero means 30
	Start     float32
	End       float32 // zero means the clip's full duration
}

func (c BakingCfg) applyDefaults(duration float32) BakingCfg {
	if c.FrameRate <= 0 {
		c.FrameRate = 30
	}
	if c.End <= 0 {
		c.End = duration
	}
	return c
}

// BakedTrack is one track's uniformly-sampled values.
type BakedTrack struct {
	TargetPath string
	Values     []Value
}

// BakedClip is the offline-resampled form of a clip for baking UIs/bulk
// consumers (spec §4.6/§6): uniform frame rate across [Start, End].
type BakedClip struct {
	Tracks    []BakedTrack
	FrameRate float32
	Start     float32
	End       float32
}

// BakeClip samples every sampleable track of clip id at a uniform rate
// across [cfg.Start, cfg.End] (spec §4.6). Baking never fails outright for
// an individual track: a structured (non-sampleable) track or a track with
// zero keyframes is skipped, and a Warning event naming its path is appended
// to the returned events (consistent with spec §7: "baking returns with
// partial tracks and a warning list").
func (e *Engine) BakeClip(id ClipID, cfg BakingCfg) (BakedClip, []Event, error) {
	clip, ok := e.clips[id]
	if !ok {
		return BakedClip{}, nil, newErr(ErrNotFound, map[string]any{"clip": id}, "%v: clip %d", ErrNotFound, id)
	}
	cfg = cfg.applyDefaults(clip.Duration)

	out := BakedClip{FrameRate: cfg.FrameRate, Start: cfg.Start, End: cfg.End}
	var events []Event
	frames := frameCount(cfg.Start, cfg.End, cfg.FrameRate)

	for _, tr := range clip.Tracks {
		if !sampleable(tr.Kind) {
			events = append(events, Event{Kind: EventWarning, Message: "track kind not sampleable, skipped",
				Fields: map[string]any{"path": tr.Path}})
			continue
		}
		if len(tr.Keyframes) == 0 {
			events = append(events, Event{Kind: EventWarning, Message: "track has no keyframes, skipped",
				Fields: map[string]any{"path": tr.Path}})
			continue
		}
		bt := BakedTrack{TargetPath: tr.Path, Values: make([]Value, 0, frames)}
		for f := 0; f < frames; f++ {
			t := cfg.Start + float32(f)/cfg.FrameRate
			v, _ := SampleTrack(tr, t)
			bt.Values = append(bt.Values, v)
		}
		out.Tracks = append(out.Tracks, bt)
	}
	return out, events, nil
}

// BakeClipWithDerivatives bakes clip id per BakeClip, plus a parallel
// derivatives bundle of identical structure computed by symmetric
// finite-difference at ±epsilon around each sample (spec §4.6/§6).
// Quaternion derivatives are the documented componentwise-difference
// approximation (spec §9); Bool/Text tracks produce no derivative track.
func (e *Engine) BakeClipWithDerivatives(id ClipID, cfg BakingCfg, epsilon float32) (BakedClip, BakedClip, []Event, error) {
	if epsilon <= 0 {
		epsilon = 1e-3
	}
	baked, events, err := e.BakeClip(id, cfg)
	if err != nil {
		return BakedClip{}, BakedClip{}, nil, err
	}
	clip := e.clips[id]
	deriv := BakedClip{FrameRate: baked.FrameRate, Start: baked.Start, End: baked.End}

	tracksByPath := make(map[string]Track, len(clip.Tracks))
	for _, tr := range clip.Tracks {
		tracksByPath[tr.Path] = tr
	}

	frames := frameCount(cfg.applyDefaults(clip.Duration).Start, cfg.applyDefaults(clip.Duration).End, baked.FrameRate)
	for _, bt := range baked.Tracks {
		tr := tracksByPath[bt.TargetPath]
		if tr.Kind == KindBool || tr.Kind == KindText {
			continue
		}
		dt := BakedTrack{TargetPath: bt.TargetPath, Values: make([]Value, 0, frames)}
		for f := 0; f < frames; f++ {
			t := baked.Start + float32(f)/baked.FrameRate
			vp, okp := SampleTrack(tr, t+epsilon)
			vm, okm := SampleTrack(tr, t-epsilon)
			if !okp || !okm {
				dt.Values = append(dt.Values, Value{})
				continue
			}
			dt.Values = append(dt.Values, finiteDifference(vp, vm, 2*epsilon))
		}
		deriv.Tracks = append(deriv.Tracks, dt)
	}
	return baked, deriv, events, nil
}

func frameCount(start, end, rate float32) int {
	if end <= start || rate <= 0 {
		return 0
	}
	n := int(math.Floor(float64((end-start)*rate))) + 1
	if n < 0 {
		return 0
	}
	return n
}
