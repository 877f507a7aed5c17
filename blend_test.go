package motionrig

import (
	"math"
	"testing"
)

func TestBlendContributionsEmptyIsNotOk(t *testing.T) {
	_, ok, mismatched := BlendContributions(nil)
	if ok || mismatched {
		t.Fatal("empty contributions should be ok=false, mismatched=false")
	}
}

func TestBlendContributionsMismatchedKind(t *testing.T) {
	contribs := []Contribution{
		{Weight: 1, Value: NewScalar(1)},
		{Weight: 1, Value: NewVec2(1, 1)},
	}
	_, ok, mismatched := BlendContributions(contribs)
	if ok || !mismatched {
		t.Fatal("differing kinds should report mismatched=true")
	}
}

func TestBlendContributionsWeightedSumNoRenormalization(t *testing.T) {
	contribs := []Contribution{
		{Weight: 0.5, Value: NewScalar(10)},
		{Weight: 0.3, Value: NewScalar(20)},
	}
	out, ok, mismatched := BlendContributions(contribs)
	if !ok || mismatched {
		t.Fatal("expected a successful blend")
	}
	want := float32(0.5*10 + 0.3*20)
	if math.Abs(float64(out.AsScalar()-want)) > 1e-3 {
		t.Errorf("weighted sum = %f, want %f (weights must not renormalize to sum 1)", out.AsScalar(), want)
	}
}

func TestBlendContributionsVec3WeightedSum(t *testing.T) {
	contribs := []Contribution{
		{Weight: 1, Value: NewVec3(1, 0, 0)},
		{Weight: 1, Value: NewVec3(0, 1, 0)},
	}
	out, ok, _ := BlendContributions(contribs)
	if !ok {
		t.Fatal("expected a successful blend")
	}
	x, y, z := out.AsVec3()
	if x != 1 || y != 1 || z != 0 {
		t.Errorf("vec3 sum = (%f,%f,%f), want (1,1,0)", x, y, z)
	}
}

func TestBlendContributionsSingleContributionWeighted(t *testing.T) {
	out, ok, _ := BlendContributions([]Contribution{{Weight: 0.25, Value: NewScalar(8)}})
	if !ok {
		t.Fatal("expected a successful blend")
	}
	if out.AsScalar() != 2 {
		t.Errorf("single-contribution weighted scalar = %f, want 2 (0.25 * 8)", out.AsScalar())
	}
}

func TestBlendContributionsBoolPicksHighestWeight(t *testing.T) {
	contribs := []Contribution{
		{Weight: 0.2, Value: NewBool(false)},
		{Weight: 0.8, Value: NewBool(true)},
	}
	out, ok, _ := BlendContributions(contribs)
	if !ok || out.AsBool() != true {
		t.Error("bool blend should pick the highest-weight contribution")
	}
}

func TestBlendQuatStaysNormalized(t *testing.T) {
	contribs := []Contribution{
		{Weight: 0.5, Value: NewQuat(0, 0, 0, 1)},
		{Weight: 0.5, Value: NewQuat(0, 1, 0, 0)},
	}
	out, ok, _ := BlendContributions(contribs)
	if !ok {
		t.Fatal("expected a successful blend")
	}
	q := out.AsQuat()
	n := math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W))
	if math.Abs(n-1) > 1e-4 {
		t.Errorf("blended quaternion not normalized: |q| = %f", n)
	}
}

func TestBlendTransformBlendsSubFieldsIndependently(t *testing.T) {
	contribs := []Contribution{
		{Weight: 0.5, Value: NewTransform(Transform{Translation: [3]float32{0, 0, 0}, Rotation: Quat{0, 0, 0, 1}, Scale: [3]float32{1, 1, 1}})},
		{Weight: 0.5, Value: NewTransform(Transform{Translation: [3]float32{2, 0, 0}, Rotation: Quat{0, 0, 0, 1}, Scale: [3]float32{3, 1, 1}})},
	}
	out, ok, _ := BlendContributions(contribs)
	if !ok {
		t.Fatal("expected a successful blend")
	}
	tr := out.AsTransform()
	if math.Abs(float64(tr.Translation[0]-1)) > 1e-3 {
		t.Errorf("translation.x = %f, want 1", tr.Translation[0])
	}
	if math.Abs(float64(tr.Scale[0]-2)) > 1e-3 {
		t.Errorf("scale.x = %f, want 2", tr.Scale[0])
	}
}
