package motionrig

import "testing"

func TestAnimationDataValidateRejectsNonIncreasingKeys(t *testing.T) {
	clip := AnimationData{
		Name:     "bad",
		Duration: 2,
		Tracks: []Track{{
			Path: "p", Kind: KindScalar, DefaultEasing: LinearEasing,
			Keyframes: []Keyframe{
				{T: 1, Value: NewScalar(0)},
				{T: 0.5, Value: NewScalar(1)},
			},
		}},
	}
	if err := clip.Validate(); err == nil {
		t.Fatal("expected validation error for non-increasing keyframe times")
	}
}

func TestAnimationDataValidateRejectsKindMismatch(t *testing.T) {
	clip := AnimationData{
		Name:     "bad",
		Duration: 2,
		Tracks: []Track{{
			Path: "p", Kind: KindScalar, DefaultEasing: LinearEasing,
			Keyframes: []Keyframe{
				{T: 0, Value: NewScalar(0)},
				{T: 1, Value: NewVec2(1, 1)},
			},
		}},
	}
	if err := clip.Validate(); err == nil {
		t.Fatal("expected validation error for keyframe kind mismatch")
	}
}

func TestAnimationDataValidateRejectsDurationTooShort(t *testing.T) {
	clip := AnimationData{
		Name:     "bad",
		Duration: 1,
		Tracks: []Track{{
			Path: "p", Kind: KindScalar, DefaultEasing: LinearEasing,
			Keyframes: []Keyframe{{T: 0, Value: NewScalar(0)}, {T: 2, Value: NewScalar(1)}},
		}},
	}
	if err := clip.Validate(); err == nil {
		t.Fatal("expected validation error: last key exceeds duration")
	}
}

func TestAnimationDataValidateAcceptsWellFormedClip(t *testing.T) {
	clip := AnimationData{
		Name:     "good",
		Duration: 2,
		Tracks: []Track{{
			Path: "p", Kind: KindScalar, DefaultEasing: LinearEasing,
			Keyframes: []Keyframe{{T: 0, Value: NewScalar(0)}, {T: 2, Value: NewScalar(1)}},
		}},
	}
	if err := clip.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestAnimationDataValidateRejectsNegativeDuration(t *testing.T) {
	clip := AnimationData{Name: "bad", Duration: -1}
	if err := clip.Validate(); err == nil {
		t.Fatal("expected validation error for negative duration")
	}
}
