package ikrig

import (
	"fmt"
	"math"
)

// SolveConfig tunes the iterative Jacobian solver (spec §4.9).
type SolveConfig struct {
	MaxIters int
	TolPos   float32
	TolRot   float32
	Weights  []float32 // per-DoF, optional
	Seed     []float32 // per-DoF initial angles, optional
}

func (c SolveConfig) applyDefaults() SolveConfig {
	if c.MaxIters <= 0 {
		c.MaxIters = 100
	}
	if c.TolPos <= 0 {
		c.TolPos = 1e-4
	}
	if c.TolRot <= 0 {
		c.TolRot = 1e-3
	}
	return c
}

// dofJoints filters chain down to the joints with a variable DoF (revolute,
// continuous, prismatic); fixed joints contribute no column to the Jacobian.
func dofJoints(chain []Joint) []Joint {
	out := make([]Joint, 0, len(chain))
	for _, j := range chain {
		if j.Type != JointFixed {
			out = append(out, j)
		}
	}
	return out
}

func validateLengths(n int, weights, seed []float32) (map[string]float32, []float32, error) {
	if len(weights) > 0 && len(weights) != n {
		return nil, nil, fmt.Errorf("%w: weights length %d does not match DoF %d", ErrInvalidArg, len(weights), n)
	}
	if len(seed) > n {
		return nil, nil, fmt.Errorf("%w: seed length %d exceeds DoF %d", ErrInvalidArg, len(seed), n)
	}
	s := make([]float32, n)
	copy(s, seed) // zero-pads any remainder, per spec §4.9
	return nil, s, nil
}

// SolvePosition iteratively solves joint angles so the chain's tip reaches
// target in root-link space, via damped-least-squares Jacobian inversion
// (spec §4.9: "iterative Jacobian solver"). On non-convergence within
// MaxIters it returns a *SolverFailure carrying the best-effort angles and
// residual (spec §7/§8).
func SolvePosition(chain []Joint, target Vec3, cfg SolveConfig) (map[string]float32, error) {
	cfg = cfg.applyDefaults()
	dofs := dofJoints(chain)
	n := len(dofs)
	if n == 0 {
		return map[string]float32{}, nil
	}
	_, seed, err := validateLengths(n, cfg.Weights, cfg.Seed)
	if err != nil {
		return nil, err
	}
	weights := cfg.Weights
	if len(weights) == 0 {
		weights = onesFloat32(n)
	}

	angles := anglesFromSlice(dofs, seed)
	const eps = 1e-4
	const lambda = 0.5

	var residual float32
	for iter := 0; iter < cfg.MaxIters; iter++ {
		pose := Solve(chain, angles)
		err3 := subVec(target, pose.Translation)
		residual = vecLen(err3)
		if residual <= cfg.TolPos {
			return namedAngles(dofs, angles), nil
		}

		jac := make([][3]float32, n) // column-major: jac[i] = d(pose)/d(angle_i)
		for i, j := range dofs {
			orig := angles[j.Name]
			angles[j.Name] = orig + eps
			p2 := Solve(chain, angles)
			angles[j.Name] = orig
			d := scaleVec(subVec(p2.Translation, pose.Translation), 1/eps)
			jac[i] = [3]float32{d.X, d.Y, d.Z}
		}

		delta := dampedLeastSquaresSolve3(jac, err3, weights, lambda)
		for i, j := range dofs {
			angles[j.Name] += delta[i]
			angles[j.Name] = clampToLimit(j, angles[j.Name])
		}
	}
	return nil, &SolverFailure{Angles: namedAngles(dofs, angles), Residual: residual}
}

// SolvePose extends SolvePosition with an orientation target, weighting
// position and rotation error independently (spec §4.9 UrdfIkPose).
func SolvePose(chain []Joint, targetPos Vec3, targetRot Quat, cfg SolveConfig) (map[string]float32, error) {
	cfg = cfg.applyDefaults()
	dofs := dofJoints(chain)
	n := len(dofs)
	if n == 0 {
		return map[string]float32{}, nil
	}
	_, seed, err := validateLengths(n, cfg.Weights, cfg.Seed)
	if err != nil {
		return nil, err
	}
	weights := cfg.Weights
	if len(weights) == 0 {
		weights = onesFloat32(n)
	}

	angles := anglesFromSlice(dofs, seed)
	const eps = 1e-4
	const lambda = 0.5

	var posResidual, rotResidual float32
	for iter := 0; iter < cfg.MaxIters; iter++ {
		pose := Solve(chain, angles)
		posErr := subVec(targetPos, pose.Translation)
		rotErr := quatLogError(targetRot, pose.Rotation)
		posResidual = vecLen(posErr)
		rotResidual = vecLen(rotErr)
		if posResidual <= cfg.TolPos && rotResidual <= cfg.TolRot {
			return namedAngles(dofs, angles), nil
		}

		jacPos := make([][3]float32, n)
		jacRot := make([][3]float32, n)
		for i, j := range dofs {
			orig := angles[j.Name]
			angles[j.Name] = orig + eps
			p2 := Solve(chain, angles)
			angles[j.Name] = orig
			dp := scaleVec(subVec(p2.Translation, pose.Translation), 1/eps)
			dr := scaleVec(quatLogError(p2.Rotation, pose.Rotation), 1/eps)
			jacPos[i] = [3]float32{dp.X, dp.Y, dp.Z}
			jacRot[i] = [3]float32{dr.X, dr.Y, dr.Z}
		}

		deltaPos := dampedLeastSquaresSolve3(jacPos, posErr, weights, lambda)
		deltaRot := dampedLeastSquaresSolve3(jacRot, rotErr, weights, lambda)
		for i, j := range dofs {
			angles[j.Name] += deltaPos[i] + deltaRot[i]
			angles[j.Name] = clampToLimit(j, angles[j.Name])
		}
	}
	residual := posResidual
	if rotResidual > residual {
		residual = rotResidual
	}
	return nil, &SolverFailure{Angles: namedAngles(dofs, angles), Residual: residual}
}

func clampToLimit(j Joint, angle float32) float32 {
	if !j.HasLimits {
		return angle
	}
	if angle < j.LowerLimit {
		return j.LowerLimit
	}
	if angle > j.UpperLimit {
		return j.UpperLimit
	}
	return angle
}

func anglesFromSlice(dofs []Joint, seed []float32) map[string]float32 {
	m := make(map[string]float32, len(dofs))
	for i, j := range dofs {
		m[j.Name] = seed[i]
	}
	return m
}

func namedAngles(dofs []Joint, angles map[string]float32) map[string]float32 {
	out := make(map[string]float32, len(dofs))
	for _, j := range dofs {
		out[j.Name] = angles[j.Name]
	}
	return out
}

func onesFloat32(n int) []float32 {
	w := make([]float32, n)
	for i := range w {
		w[i] = 1
	}
	return w
}

func subVec(a, b Vec3) Vec3 { return Vec3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z} }

func vecLen(v Vec3) float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

// quatLogError approximates the rotation error between a and b as a
// small-angle axis-scaled vector (twice the vector part of a * conj(b)),
// adequate for Jacobian-based convergence without a full log-map.
func quatLogError(a, b Quat) Vec3 {
	bConj := Quat{X: -b.X, Y: -b.Y, Z: -b.Z, W: b.W}
	d := mulQuat(a, bConj)
	if d.W < 0 {
		d = Quat{X: -d.X, Y: -d.Y, Z: -d.Z, W: -d.W}
	}
	return Vec3{X: 2 * d.X, Y: 2 * d.Y, Z: 2 * d.Z}
}

// dampedLeastSquaresSolve3 solves for delta in a weighted damped-least-
// squares sense: minimize ||J*delta - err||^2 + lambda*||delta||^2, where J
// is an n x 3 Jacobian (one 3-vector column per DoF) and weights scale each
// DoF's contribution. Solved via the normal equations on the 3x3 system
// J*Wn*J^T (small, fixed size, no general matrix library needed).
func dampedLeastSquaresSolve3(jac [][3]float32, err3 Vec3, weights []float32, lambda float32) []float32 {
	n := len(jac)
	// JWJt = J * diag(w) * J^T, a 3x3 matrix (since each jac[i] is a 3-vector,
	// "J^T" here is the n x 3 matrix transposed relative to jac's n x 3 layout).
	var m [3][3]float32
	for i := 0; i < n; i++ {
		w := weights[i]
		col := [3]float32{jac[i][0], jac[i][1], jac[i][2]}
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				m[r][c] += w * col[r] * col[c]
			}
		}
	}
	for i := 0; i < 3; i++ {
		m[i][i] += lambda
	}
	rhs := [3]float32{err3.X, err3.Y, err3.Z}
	y := solve3x3(m, rhs)

	delta := make([]float32, n)
	for i := 0; i < n; i++ {
		w := weights[i]
		delta[i] = w * (jac[i][0]*y[0] + jac[i][1]*y[1] + jac[i][2]*y[2])
	}
	return delta
}

// solve3x3 solves m*x = rhs via Cramer's rule.
func solve3x3(m [3][3]float32, rhs [3]float32) [3]float32 {
	det := m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
	if det == 0 {
		return [3]float32{}
	}
	inv := 1 / det
	var x [3]float32
	for col := 0; col < 3; col++ {
		mc := m
		mc[0][col], mc[1][col], mc[2][col] = rhs[0], rhs[1], rhs[2]
		d := mc[0][0]*(mc[1][1]*mc[2][2]-mc[1][2]*mc[2][1]) -
			mc[0][1]*(mc[1][0]*mc[2][2]-mc[1][2]*mc[2][0]) +
			mc[0][2]*(mc[1][0]*mc[2][1]-mc[1][1]*mc[2][0])
		x[col] = d * inv
	}
	return x
}
