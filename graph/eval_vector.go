package graph

import (
	"math"

	motionrig "github.com/riglab/motionrig"
)

// evalVectorBinary mirrors evalBinary but always emits a Vector (never
// collapses a single-leaf result back to Scalar), matching the vector-family
// node outputs declared in the schema.
func evalVectorBinary(op func(a, b float32) float32, pad float32) nodeEvalFunc {
	return func(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
		af := ctx.ins["a"].FlattenInto(nil)
		bf := ctx.ins["b"].FlattenInto(nil)
		if len(af) > 1 && len(bf) > 1 && len(af) != len(bf) {
			ctx.warnLengthMismatch(len(af), len(bf))
		}
		n := len(af)
		if len(bf) > n {
			n = len(bf)
		}
		out := make([]float32, n)
		for i := 0; i < n; i++ {
			x, y := pad, pad
			if i < len(af) {
				x = af[i]
			}
			if i < len(bf) {
				y = bf[i]
			}
			out[i] = op(x, y)
		}
		return outOf(motionrig.NewVector(out)), nil, nil
	}
}

func evalVectorScale(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	s := ctx.ins["scale"].AsScalar()
	in := ctx.ins["in"].FlattenInto(nil)
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = v * s
	}
	return outOf(motionrig.NewVector(out)), nil, nil
}

func evalVectorNormalize(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	in := ctx.ins["in"].FlattenInto(nil)
	var sumSq float64
	for _, v := range in {
		sumSq += float64(v) * float64(v)
	}
	mag := float32(math.Sqrt(sumSq))
	out := make([]float32, len(in))
	if mag > 0 {
		for i, v := range in {
			out[i] = v / mag
		}
	}
	return outOf(motionrig.NewVector(out)), nil, nil
}

func evalVectorDot(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	af := ctx.ins["a"].FlattenInto(nil)
	bf := ctx.ins["b"].FlattenInto(nil)
	var sum float32
	n := len(af)
	if len(bf) < n {
		n = len(bf)
	}
	for i := 0; i < n; i++ {
		sum += af[i] * bf[i]
	}
	return outOf(motionrig.NewScalar(sum)), nil, nil
}

func evalVectorCross(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	ax, ay, az := ctx.ins["a"].AsVec3()
	bx, by, bz := ctx.ins["b"].AsVec3()
	cx := ay*bz - az*by
	cy := az*bx - ax*bz
	cz := ax*by - ay*bx
	return outOf(motionrig.NewVec3(cx, cy, cz)), nil, nil
}

func evalVectorLength(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	in := ctx.ins["in"].FlattenInto(nil)
	var sumSq float64
	for _, v := range in {
		sumSq += float64(v) * float64(v)
	}
	return outOf(motionrig.NewScalar(float32(math.Sqrt(sumSq)))), nil, nil
}

func evalVectorIndex(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	idx := int(ctx.scalarParam("index", 0))
	in := ctx.ins["in"].FlattenInto(nil)
	if idx < 0 || idx >= len(in) {
		return nil, nil, taggedErr(motionrig.ErrInvalidArg, map[string]any{"node": ctx.node.ID, "index": idx},
			"graph: node %q index %d out of range (len %d)", ctx.node.ID, idx, len(in))
	}
	return outOf(motionrig.NewScalar(in[idx])), nil, nil
}

// evalSplit partitions "in" into consecutive runs of length sizes[0],
// sizes[1], ... emitted as out0, out1, ... (spec §4.9: "Split (partitions by
// sizes)"). Split output count is dynamic, hence not enumerated in the
// schema's fixed Outputs list.
func evalSplit(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	in := ctx.ins["in"].FlattenInto(nil)
	sizesVal, _ := ctx.param("sizes")
	sizes := sizesVal.FlattenInto(nil)
	out := make(map[string]motionrig.Value, len(sizes))
	pos := 0
	for i, sz := range sizes {
		n := int(sz)
		if pos+n > len(in) {
			return nil, nil, taggedErr(motionrig.ErrInvalidArg, map[string]any{"node": ctx.node.ID},
				"graph: node %q split sizes exceed input length %d", ctx.node.ID, len(in))
		}
		out[portIndex("out", i)] = motionrig.NewVector(in[pos : pos+n])
		pos += n
	}
	return out, nil, nil
}

func portIndex(base string, i int) string {
	digits := [10]byte{}
	n := len(digits)
	if i == 0 {
		return base + "0"
	}
	for i > 0 {
		n--
		digits[n] = byte('0' + i%10)
		i /= 10
	}
	return base + string(digits[n:])
}

// evalJoin concatenates every variadic "in"/"inN" input's flattened leaves
// in ascending port order (spec §4.9: "Join (concatenates in port order)").
func evalJoin(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	var out []float32
	for _, v := range variadicValues(ctx, "in") {
		out = v.FlattenInto(out)
	}
	return outOf(motionrig.NewVector(out)), nil, nil
}

// evalWeightedSumVector sums weight_i * vector_i across the variadic "in"
// group without renormalizing (spec §4.4's "weights never renormalize
// silently" invariant, extended to the graph's vector nodes). Weights come
// from a parallel "weights" param vector indexed by ascending port order.
func evalWeightedSumVector(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	vs := variadicValues(ctx, "in")
	weights := paramWeights(ctx, len(vs))
	var out []float32
	for i, v := range vs {
		leaves := v.FlattenInto(nil)
		out = accumulateScaled(out, leaves, weights[i])
	}
	return outOf(motionrig.NewVector(out)), nil, nil
}

// evalBlendWeightedAverage is WeightedSumVector normalized by the sum of
// weights, matching the distinction between a raw weighted sum and a
// weighted average.
func evalBlendWeightedAverage(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	vs := variadicValues(ctx, "in")
	weights := paramWeights(ctx, len(vs))
	var out []float32
	var total float32
	for i, v := range vs {
		leaves := v.FlattenInto(nil)
		out = accumulateScaled(out, leaves, weights[i])
		total += weights[i]
	}
	if total != 0 {
		for i := range out {
			out[i] /= total
		}
	}
	return outOf(motionrig.NewVector(out)), nil, nil
}

func paramWeights(ctx *evalContext, n int) []float32 {
	wv, ok := ctx.param("weights")
	w := wv.FlattenInto(nil)
	if !ok || len(w) < n {
		out := make([]float32, n)
		for i := range out {
			if i < len(w) {
				out[i] = w[i]
			} else {
				out[i] = 1
			}
		}
		return out
	}
	return w
}

func accumulateScaled(dst, src []float32, weight float32) []float32 {
	if dst == nil {
		dst = make([]float32, len(src))
	}
	for i, v := range src {
		if i < len(dst) {
			dst[i] += v * weight
		} else {
			dst = append(dst, v*weight)
		}
	}
	return dst
}
