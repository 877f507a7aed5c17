package ikrig

import "math"

// IdentityQuat is the no-rotation quaternion.
func IdentityQuat() Quat { return Quat{W: 1} }

func quatFromAxisAngle(axis Vec3, angle float32) Quat {
	n := normalize(axis)
	half := angle / 2
	s := float32(math.Sin(float64(half)))
	return Quat{X: n.X * s, Y: n.Y * s, Z: n.Z * s, W: float32(math.Cos(float64(half)))}
}

func normalize(v Vec3) Vec3 {
	mag := float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
	if mag == 0 {
		return Vec3{X: 1}
	}
	return Vec3{X: v.X / mag, Y: v.Y / mag, Z: v.Z / mag}
}

// mulQuat composes rotations: applying the result rotates first by b, then
// by a (a * b, Hamilton product, matching standard parent*child composition).
func mulQuat(a, b Quat) Quat {
	return Quat{
		X: a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y,
		Y: a.W*b.Y - a.X*b.Z + a.Y*b.W + a.Z*b.X,
		Z: a.W*b.Z + a.X*b.Y - a.Y*b.X + a.Z*b.W,
		W: a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
	}
}

func rotateVec(q Quat, v Vec3) Vec3 {
	// v' = q * v * q_conj, via the standard expanded form.
	qv := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	uvX := qv.Y*v.Z - qv.Z*v.Y
	uvY := qv.Z*v.X - qv.X*v.Z
	uvZ := qv.X*v.Y - qv.Y*v.X
	uuvX := qv.Y*uvZ - qv.Z*uvY
	uuvY := qv.Z*uvX - qv.X*uvZ
	uuvZ := qv.X*uvY - qv.Y*uvX
	return Vec3{
		X: v.X + 2*(q.W*uvX+uuvX),
		Y: v.Y + 2*(q.W*uvY+uuvY),
		Z: v.Z + 2*(q.W*uvZ+uuvZ),
	}
}

func addVec(a, b Vec3) Vec3 { return Vec3{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z} }
func scaleVec(v Vec3, s float32) Vec3 { return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s} }

// composePose applies child onto parent: translate by parent's rotation
// applied to child's translation, then add parent's translation; rotations
// multiply parent*child.
func composePose(parent, child Pose) Pose {
	return Pose{
		Translation: addVec(parent.Translation, rotateVec(parent.Rotation, child.Translation)),
		Rotation:    mulQuat(parent.Rotation, child.Rotation),
	}
}

func normalizeQuat(q Quat) Quat {
	mag := float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
	if mag == 0 {
		return IdentityQuat()
	}
	return Quat{X: q.X / mag, Y: q.Y / mag, Z: q.Z / mag, W: q.W / mag}
}
