package ikrig

import (
	"errors"
	"testing"
)

func TestSolvePositionConvergesOnReachableTarget(t *testing.T) {
	chain := chainFor(t)
	target := Vec3{X: 0, Y: 2}
	angles, err := SolvePosition(chain, target, SolveConfig{MaxIters: 200, TolPos: 1e-3})
	if err != nil {
		t.Fatalf("expected convergence, got %v", err)
	}
	pose := Solve(chain, angles)
	if !approxVec(pose.Translation, target) {
		t.Errorf("solved tip = %+v, want %+v", pose.Translation, target)
	}
}

func TestSolvePositionUnreachableTargetFails(t *testing.T) {
	chain := chainFor(t)
	target := Vec3{X: 10} // arm reach is only 2 units
	_, err := SolvePosition(chain, target, SolveConfig{MaxIters: 50, TolPos: 1e-4})
	if err == nil {
		t.Fatal("expected SolverFailed for an unreachable target")
	}
	var sf *SolverFailure
	if !errors.As(err, &sf) {
		t.Fatalf("expected a *SolverFailure, got %T", err)
	}
	if sf.Residual <= 0 {
		t.Errorf("expected a positive residual, got %f", sf.Residual)
	}
	if len(sf.Angles) != 2 {
		t.Errorf("expected best-effort angles for both DoF, got %d", len(sf.Angles))
	}
}

func TestSolvePositionRejectsMismatchedWeights(t *testing.T) {
	chain := chainFor(t)
	_, err := SolvePosition(chain, Vec3{X: 1}, SolveConfig{Weights: []float32{1, 1, 1}})
	if !errors.Is(err, ErrInvalidArg) {
		t.Fatalf("expected ErrInvalidArg for a weights-length mismatch, got %v", err)
	}
}

func TestSolvePositionZeroPadsShortSeed(t *testing.T) {
	chain := chainFor(t)
	_, err := SolvePosition(chain, Vec3{X: 2}, SolveConfig{Seed: []float32{0.1}, MaxIters: 50})
	if err != nil {
		var sf *SolverFailure
		if !errors.As(err, &sf) {
			t.Fatalf("unexpected non-solver-failure error for a short seed: %v", err)
		}
	}
}

func TestSolvePoseConvergesOnReachableTarget(t *testing.T) {
	chain := chainFor(t)
	targetPos := Vec3{X: 2}
	targetRot := IdentityQuat()
	angles, err := SolvePose(chain, targetPos, targetRot, SolveConfig{MaxIters: 200, TolPos: 1e-3, TolRot: 1e-2})
	if err != nil {
		t.Fatalf("expected convergence, got %v", err)
	}
	pose := Solve(chain, angles)
	if !approxVec(pose.Translation, targetPos) {
		t.Errorf("solved tip = %+v, want %+v", pose.Translation, targetPos)
	}
}
