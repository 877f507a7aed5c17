package graph

import (
	"math"

	motionrig "github.com/riglab/motionrig"
)

// evalTime emits the runtime's accumulated time (spec §4.9: "Time (emits
// runtime accumulated time)").
func evalTime(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	return outOf(motionrig.NewScalar(ctx.time)), nil, nil
}

// evalOscillator computes sin(2*pi*frequency*t + phase) (spec §4.9), with t
// taken as the runtime's accumulated time.
func evalOscillator(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	freq := ctx.ins["frequency"].AsScalar()
	phase := ctx.ins["phase"].AsScalar()
	theta := 2*math.Pi*float64(freq)*float64(ctx.time) + float64(phase)
	return outOf(motionrig.NewScalar(float32(math.Sin(theta)))), nil, nil
}
