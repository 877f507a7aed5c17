package graph

import (
	"math"

	motionrig "github.com/riglab/motionrig"
)

// springState is Spring's retained per-node state (position, velocity),
// generalized from the teacher's particle.go per-tick mutable simulation
// state (a pooled array of position/velocity/life fields updated each
// frame) down to a single scalar spring tracked across evaluate_all calls
// via the runtime's stateful cache.
type springState struct {
	pos, vel float32
}

// evalSpring advances a critically-damped-capable spring toward "target"
// using semi-implicit (symplectic) Euler (spec §4.9): velocity integrates
// acceleration first, then position integrates the updated velocity.
func evalSpring(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	st, _ := ctx.rt.statefulCache[ctx.node.ID].(*springState)
	if st == nil {
		st = &springState{}
	}
	target := ctx.ins["target"].AsScalar()
	stiffness := ctx.scalarParam("stiffness", 100)
	damping := ctx.scalarParam("damping", 10)
	mass := ctx.scalarParam("mass", 1)
	if mass <= 0 {
		mass = 1
	}

	accel := (stiffness*(target-st.pos) - damping*st.vel) / mass
	st.vel += accel * ctx.dt
	st.pos += st.vel * ctx.dt

	ctx.rt.statefulCache[ctx.node.ID] = st
	return outOf(motionrig.NewScalar(st.pos)), nil, nil
}

// dampState is Damp's retained output, carried across ticks the same way.
type dampState struct {
	value float32
	init  bool
}

// evalDamp exponentially decays toward "target" with the given half-life
// (spec §4.9). The first evaluation snaps directly to target (no prior
// state to decay from).
func evalDamp(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	st, _ := ctx.rt.statefulCache[ctx.node.ID].(*dampState)
	if st == nil {
		st = &dampState{}
	}
	target := ctx.ins["target"].AsScalar()
	if !st.init {
		st.value = target
		st.init = true
	} else {
		halfLife := ctx.scalarParam("half_life", 0.1)
		if halfLife <= 0 {
			st.value = target
		} else {
			decay := float32(math.Exp(-math.Ln2 * float64(ctx.dt) / float64(halfLife)))
			st.value = target + (st.value-target)*decay
		}
	}
	ctx.rt.statefulCache[ctx.node.ID] = st
	return outOf(motionrig.NewScalar(st.value)), nil, nil
}

// slewState is Slew's retained output.
type slewState struct {
	value float32
	init  bool
}

// evalSlew rate-limits movement toward "target" (spec §4.9).
func evalSlew(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	st, _ := ctx.rt.statefulCache[ctx.node.ID].(*slewState)
	if st == nil {
		st = &slewState{}
	}
	target := ctx.ins["target"].AsScalar()
	if !st.init {
		st.value = target
		st.init = true
	} else {
		rate := ctx.scalarParam("rate", 1)
		maxStep := rate * ctx.dt
		delta := target - st.value
		if delta > maxStep {
			delta = maxStep
		} else if delta < -maxStep {
			delta = -maxStep
		}
		st.value += delta
	}
	ctx.rt.statefulCache[ctx.node.ID] = st
	return outOf(motionrig.NewScalar(st.value)), nil, nil
}
