package motionrig

import "testing"

func TestBakeClipUniformFrameCount(t *testing.T) {
	e := NewEngine(DefaultConfig())
	clipID, err := e.LoadClip(clipWithScalarTrack("p", 1, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	baked, events, err := e.BakeClip(clipID, BakingCfg{FrameRate: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 {
		t.Fatalf("unexpected events: %v", events)
	}
	if len(baked.Tracks) != 1 {
		t.Fatalf("expected 1 baked track, got %d", len(baked.Tracks))
	}
	// [0,1] at 10 fps inclusive of both endpoints: 11 samples.
	if len(baked.Tracks[0].Values) != 11 {
		t.Fatalf("got %d samples, want 11", len(baked.Tracks[0].Values))
	}
}

func TestBakeClipFirstAndLastSampleMatchEndpoints(t *testing.T) {
	e := NewEngine(DefaultConfig())
	clipID, _ := e.LoadClip(clipWithScalarTrack("p", 1, 2, 8))
	baked, _, err := e.BakeClip(clipID, BakingCfg{FrameRate: 4})
	if err != nil {
		t.Fatal(err)
	}
	vals := baked.Tracks[0].Values
	if vals[0].AsScalar() != 2 {
		t.Errorf("first sample = %f, want 2", vals[0].AsScalar())
	}
	if vals[len(vals)-1].AsScalar() != 8 {
		t.Errorf("last sample = %f, want 8", vals[len(vals)-1].AsScalar())
	}
}

func TestBakeClipUnknownClipFails(t *testing.T) {
	e := NewEngine(DefaultConfig())
	if _, _, err := e.BakeClip(999, BakingCfg{}); err == nil {
		t.Fatal("expected ErrNotFound for unknown clip id")
	}
}

func TestBakeClipSkipsEmptyTracksWithWarning(t *testing.T) {
	e := NewEngine(DefaultConfig())
	clipID, _ := e.LoadClip(AnimationData{Name: "sparse", Duration: 1, Tracks: []Track{
		{Path: "empty", Kind: KindScalar, DefaultEasing: LinearEasing},
	}})
	baked, events, err := e.BakeClip(clipID, BakingCfg{FrameRate: 5})
	if err != nil {
		t.Fatal(err)
	}
	if len(baked.Tracks) != 0 {
		t.Fatalf("expected no baked tracks for an empty-keyframe track, got %d", len(baked.Tracks))
	}
	if len(events) != 1 || events[0].Kind != EventWarning {
		t.Fatalf("expected one Warning event, got %v", events)
	}
}

func TestBakeClipWithDerivativesParallelStructure(t *testing.T) {
	e := NewEngine(DefaultConfig())
	clipID, _ := e.LoadClip(clipWithScalarTrack("p", 2, 0, 10))
	baked, deriv, _, err := e.BakeClipWithDerivatives(clipID, BakingCfg{FrameRate: 10}, 1e-3)
	if err != nil {
		t.Fatal(err)
	}
	if len(baked.Tracks) != len(deriv.Tracks) {
		t.Fatalf("baked has %d tracks, derivatives has %d", len(baked.Tracks), len(deriv.Tracks))
	}
	if len(baked.Tracks[0].Values) != len(deriv.Tracks[0].Values) {
		t.Fatalf("baked has %d samples, derivatives has %d", len(baked.Tracks[0].Values), len(deriv.Tracks[0].Values))
	}
	mid := len(deriv.Tracks[0].Values) / 2
	got := deriv.Tracks[0].Values[mid].AsScalar()
	if got < 4.5 || got > 5.5 {
		t.Errorf("derivative at midpoint = %f, want ~5 (slope of 0->10 over 2s)", got)
	}
}

func TestBakeClipWithDerivativesOmitsBoolTrack(t *testing.T) {
	e := NewEngine(DefaultConfig())
	clipID, _ := e.LoadClip(AnimationData{Name: "b", Duration: 1, Tracks: []Track{
		{Path: "flag", Kind: KindBool, DefaultEasing: LinearEasing,
			Keyframes: []Keyframe{{T: 0, Value: NewBool(false)}, {T: 1, Value: NewBool(true)}}},
	}})
	_, deriv, _, err := e.BakeClipWithDerivatives(clipID, BakingCfg{FrameRate: 5}, 1e-3)
	if err != nil {
		t.Fatal(err)
	}
	if len(deriv.Tracks) != 0 {
		t.Fatalf("bool track should produce no derivative track, got %d", len(deriv.Tracks))
	}
}
