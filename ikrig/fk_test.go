package ikrig

import (
	"math"
	"testing"
)

func chainFor(t *testing.T) []Joint {
	t.Helper()
	m, err := ParseURDF([]byte(twoLinkArmURDF))
	if err != nil {
		t.Fatal(err)
	}
	chain, err := m.Chain("base", "ee")
	if err != nil {
		t.Fatal(err)
	}
	return chain
}

func TestSolveFullyExtendedAlongX(t *testing.T) {
	chain := chainFor(t)
	pose := Solve(chain, map[string]float32{"j1": 0, "j2": 0})
	if !approxVec(pose.Translation, Vec3{X: 2}) {
		t.Errorf("tip = %+v, want (2,0,0)", pose.Translation)
	}
}

func TestSolveFirstJointRotatesWholeArm(t *testing.T) {
	chain := chainFor(t)
	pose := Solve(chain, map[string]float32{"j1": float32(math.Pi / 2), "j2": 0})
	if !approxVec(pose.Translation, Vec3{Y: 2}) {
		t.Errorf("tip = %+v, want (0,2,0)", pose.Translation)
	}
}

func TestSolveMissingAnglesTreatedAsZero(t *testing.T) {
	chain := chainFor(t)
	pose := Solve(chain, nil)
	if !approxVec(pose.Translation, Vec3{X: 2}) {
		t.Errorf("tip with no angles given = %+v, want fully extended (2,0,0)", pose.Translation)
	}
}

func TestJointNamesMatchChainOrder(t *testing.T) {
	chain := chainFor(t)
	names := JointNames(chain)
	want := []string{"j1", "j2", "j3"}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("names[%d] = %q, want %q", i, names[i], n)
		}
	}
}

func approxVec(a, b Vec3) bool {
	const eps = 1e-3
	return math.Abs(float64(a.X-b.X)) < eps && math.Abs(float64(a.Y-b.Y)) < eps && math.Abs(float64(a.Z-b.Z)) < eps
}
