package motionrig

import "math"

// sampleable reports the value kinds clips may sample; structured
// containers (record/array/list/tuple/enum) are not sampled — clips only
// carry scalar-family tracks (spec §4.4).
func sampleable(k Kind) bool {
	switch k {
	case KindScalar, KindVec2, KindVec3, KindVec4, KindColor, KindVector, KindQuat, KindTransform, KindBool, KindText:
		return true
	default:
		return false
	}
}

// SampleTrack evaluates tr at local time t seconds, clamping to the first/
// last key at the endpoints and easing each interior segment per spec §4.4.
// ok is false only when the track has no keyframes (there is nothing to
// sample); a single-keyframe track returns that key's value for all t.
func SampleTrack(tr Track, t float32) (Value, bool) {
	n := len(tr.Keyframes)
	if n == 0 {
		return Value{}, false
	}
	if n == 1 || t <= tr.Keyframes[0].T {
		return tr.Keyframes[0].Value, true
	}
	last := tr.Keyframes[n-1]
	if t >= last.T {
		return last.Value, true
	}

	// Find the segment [i, i+1] containing t.
	i := 0
	for i < n-1 && tr.Keyframes[i+1].T < t {
		i++
	}
	p0 := tr.Keyframes[i]
	p1 := tr.Keyframes[i+1]

	span := p1.T - p0.T
	var u float32
	if span > 0 {
		u = (t - p0.T) / span
	}

	se := segmentEasingFor(tr, p0, p1)
	s := EaseBezier(u, se)

	return interpolate(tr.Kind, p0.Value, p1.Value, s), true
}

// segmentEasingFor resolves the effective control points for the segment
// from p0 to p1: cp0 = p0.transitions.out ?? track default; cp1 =
// p1.transitions.in ?? track default (spec §4.4).
func segmentEasingFor(tr Track, p0, p1 Keyframe) SegmentEasing {
	def := tr.DefaultEasing
	out := SegmentEasing{OutX: def.OutX, OutY: def.OutY, InX: def.InX, InY: def.InY}
	if p0.Easing != nil {
		out.OutX, out.OutY = p0.Easing.OutX, p0.Easing.OutY
	}
	if p1.Easing != nil {
		out.InX, out.InY = p1.Easing.InX, p1.Easing.InY
	}
	return out
}

// interpolate blends v0 -> v1 at eased parameter s according to kind
// (spec §4.4). Bool/Text step: hold v0 until s reaches 1.
func interpolate(kind Kind, v0, v1 Value, s float32) Value {
	switch kind {
	case KindScalar:
		return NewScalar(lerp(v0.scalar, v1.scalar, s))
	case KindVec2:
		x0, y0 := v0.AsVec2()
		x1, y1 := v1.AsVec2()
		return NewVec2(lerp(x0, x1, s), lerp(y0, y1, s))
	case KindVec3:
		x0, y0, z0 := v0.AsVec3()
		x1, y1, z1 := v1.AsVec3()
		return NewVec3(lerp(x0, x1, s), lerp(y0, y1, s), lerp(z0, z1, s))
	case KindVec4:
		a0 := v0.vec
		a1 := v1.vec
		return NewVec4(lerp(a0[0], a1[0], s), lerp(a0[1], a1[1], s), lerp(a0[2], a1[2], s), lerp(a0[3], a1[3], s))
	case KindColor:
		c0, c1 := v0.AsColor(), v1.AsColor()
		return NewColor(lerp(c0.R, c1.R, s), lerp(c0.G, c1.G, s), lerp(c0.B, c1.B, s), lerp(c0.A, c1.A, s))
	case KindVector:
		a, b := v0.AsVector(), v1.AsVector()
		n := len(a)
		if len(b) < n {
			n = len(b)
		}
		out := make([]float32, n)
		for i := 0; i < n; i++ {
			out[i] = lerp(a[i], b[i], s)
		}
		return NewVector(out)
	case KindQuat:
		return NewQuatValue(nlerp(v0.AsQuat(), v1.AsQuat(), s))
	case KindTransform:
		t0, t1 := v0.AsTransform(), v1.AsTransform()
		var tr Transform
		for i := 0; i < 3; i++ {
			tr.Translation[i] = lerp(t0.Translation[i], t1.Translation[i], s)
			tr.Scale[i] = lerp(t0.Scale[i], t1.Scale[i], s)
		}
		tr.Rotation = nlerp(t0.Rotation, t1.Rotation, s)
		return NewTransform(tr)
	case KindBool:
		if s >= 1 {
			return v1
		}
		return v0
	case KindText:
		if s >= 1 {
			return v1
		}
		return v0
	default:
		return v0
	}
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }

// NewQuatValue wraps a Quat as a Value (convenience over NewQuat(x,y,z,w)).
func NewQuatValue(q Quat) Value { return NewQuat(q.X, q.Y, q.Z, q.W) }

// nlerp performs shortest-arc normalized-lerp: if dot(q0,q1) < 0, negate q1,
// then lerp and normalize (spec §4.4). This also guarantees the hemisphere
// alignment property in spec §8: dot(result, q0) >= 0.
func nlerp(q0, q1 Quat, t float32) Quat {
	dot := q0.X*q1.X + q0.Y*q1.Y + q0.Z*q1.Z + q0.W*q1.W
	if dot < 0 {
		q1 = Quat{-q1.X, -q1.Y, -q1.Z, -q1.W}
	}
	r := Quat{
		X: lerp(q0.X, q1.X, t),
		Y: lerp(q0.Y, q1.Y, t),
		Z: lerp(q0.Z, q1.Z, t),
		W: lerp(q0.W, q1.W, t),
	}
	return normalizeQuat(r)
}

func normalizeQuat(q Quat) Quat {
	n := float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
	if n == 0 {
		return Quat{0, 0, 0, 1}
	}
	return Quat{q.X / n, q.Y / n, q.Z / n, q.W / n}
}
