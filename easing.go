package motionrig

import "github.com/tanema/gween/ease"

// bezierInversionTolerance and bezierInversionMaxIters bound the Newton
// iteration used to invert the cubic-bezier-in-x curve (spec §4.4).
const (
	bezierInversionTolerance = 1e-5
	bezierInversionMaxIters  = 10
)

// cubicBezierXAt evaluates the x-component of a cubic bezier with fixed
// endpoints P0=(0,0), P3=(1,1) and control points cp0=(x1,y1), cp1=(x2,y2),
// at parameter u in [0,1].
func cubicBezierXAt(u, x1, x2 float32) float32 {
	mu := 1 - u
	return 3*mu*mu*u*x1 + 3*mu*u*u*x2 + u*u*u
}

func cubicBezierYAt(u, y1, y2 float32) float32 {
	mu := 1 - u
	return 3*mu*mu*u*y1 + 3*mu*u*u*y2 + u*u*u
}

// cubicBezierDXAt is d/du of cubicBezierXAt, used by Newton iteration.
func cubicBezierDXAt(u, x1, x2 float32) float32 {
	mu := 1 - u
	return 3*mu*mu*x1 + 6*mu*u*(x2-x1) + 3*u*u*(1-x2)
}

// invertBezierU solves x(u) = xTarget for u in [0,1] given control points
// (x1,x2), using Newton iteration with a bisection fallback, matching
// spec §4.4: tolerance 1e-5, iteration cap 10. No pack library performs
// arbitrary-control-point bezier inversion (gween's ease package only ships
// fixed named curves), so this is implemented directly against the spec.
func invertBezierU(xTarget, x1, x2 float32) float32 {
	if xTarget <= 0 {
		return 0
	}
	if xTarget >= 1 {
		return 1
	}

	u := xTarget // initial guess: identity is a good starting point for monotone x(u)
	for i := 0; i < bezierInversionMaxIters; i++ {
		x := cubicBezierXAt(u, x1, x2) - xTarget
		if absF32(x) < bezierInversionTolerance {
			return u
		}
		dx := cubicBezierDXAt(u, x1, x2)
		if absF32(dx) < 1e-6 {
			break
		}
		u -= x / dx
		if u < 0 || u > 1 {
			break
		}
	}

	// Bisection fallback for non-convergent or out-of-range Newton steps.
	lo, hi := float32(0), float32(1)
	for i := 0; i < 40; i++ {
		mid := (lo + hi) / 2
		x := cubicBezierXAt(mid, x1, x2)
		if absF32(x-xTarget) < bezierInversionTolerance {
			return mid
		}
		if x < xTarget {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// EaseBezier evaluates the eased parameter s for raw progress u given a
// segment's easing control points (spec §4.4): s = cubic-bezier(u; cp0, cp1)
// where the curve's x is inverted to recover the parameter, then y is
// evaluated at that parameter.
func EaseBezier(u float32, se SegmentEasing) float32 {
	if u <= 0 {
		return 0
	}
	if u >= 1 {
		return 1
	}
	solved := invertBezierU(u, se.OutX, se.InX)
	return cubicBezierYAt(solved, se.OutY, se.InY)
}

// EaseNamed adapts a gween named curve (ease.TweenFunc) to the
// progress-in-progress-out shape used elsewhere in this package (grounded on
// the teacher's animation.go TweenGroup/gween integration). It is a
// standalone helper: Track has no field selecting a named curve, and
// SampleTrack always eases with bezier control points.
func EaseNamed(fn ease.TweenFunc, u float32) float32 {
	// gween TweenFuncs are sampled as f(position, begin, change, duration);
	// begin=0, change=1, duration=1 yields the normalized ease value at u.
	return fn(u, 0, 1, 1)
}

func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
