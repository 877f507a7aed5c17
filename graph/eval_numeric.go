package graph

import (
	"math"

	motionrig "github.com/riglab/motionrig"
)

func sinf(x float32) float32 { return float32(math.Sin(float64(x))) }
func cosf(x float32) float32 { return float32(math.Cos(float64(x))) }
func tanf(x float32) float32 { return float32(math.Tan(float64(x))) }

// evalBinary builds an evaluator for the fixed-arity numeric nodes
// (Add/Sub/Mul/Div): componentwise after alignment to the longer operand,
// shorter padded with pad: zero for Add/Sub, one for Mul/Div (spec §4.9).
func evalBinary(op func(a, b float32) float32, pad float32) nodeEvalFunc {
	return func(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
		a, b := ctx.ins["a"], ctx.ins["b"]
		return componentwiseBinary(ctx, a, b, op, pad)
	}
}

func evalBinaryPow(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	return componentwiseBinary(ctx, ctx.ins["a"], ctx.ins["b"], func(a, b float32) float32 {
		return float32(math.Pow(float64(a), float64(b)))
	}, 1)
}

func evalBinaryLog(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	return componentwiseBinary(ctx, ctx.ins["a"], ctx.ins["b"], func(a, base float32) float32 {
		return float32(math.Log(float64(a)) / math.Log(float64(base)))
	}, 1)
}

// componentwiseBinary applies op to the flattened scalar leaves of a and b,
// padding the shorter operand with pad (spec §4.9: "shorter padded with zero
// for add/sub, one for mul/div"). Scalar results stay Scalar; multi-leaf
// results become Vector. A length mismatch between two multi-leaf operands
// is logged once per frame on ctx (spec §4.9), not silently padded through.
func componentwiseBinary(ctx *evalContext, a, b motionrig.Value, op func(x, y float32) float32, pad float32) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	af := a.FlattenInto(nil)
	bf := b.FlattenInto(nil)
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
	if n == 1 {
		return outOf(motionrig.NewScalar(out[0])), nil, nil
	}
	return outOf(motionrig.NewVector(out)), nil, nil
}

func outOf(v motionrig.Value) map[string]motionrig.Value {
	return map[string]motionrig.Value{"out": v}
}

func evalUnary(op func(float32) float32) nodeEvalFunc {
	return func(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
		return outOf(motionrig.NewScalar(op(ctx.ins["in"].AsScalar()))), nil, nil
	}
}

// evalVariadicNumeric folds every "in"/"in0".."inN" input through op,
// starting from identity (spec §4.9: "variadic (Add/Multiply with >=1
// operand)").
func evalVariadicNumeric(op func(acc, v float32) float32, identity float32) nodeEvalFunc {
	return func(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
		acc := identity
		for _, v := range variadicValues(ctx, "in") {
			acc = op(acc, v.AsScalar())
		}
		return outOf(motionrig.NewScalar(acc)), nil, nil
	}
}

// variadicValues collects every input port belonging to group base, in
// ascending port-name order, for deterministic fold order.
func variadicValues(ctx *evalContext, base string) []motionrig.Value {
	names := make([]string, 0, len(ctx.ins))
	for port := range ctx.ins {
		if isVariadicMember(port, base) {
			names = append(names, port)
		}
	}
	sortStrings(names)
	vs := make([]motionrig.Value, 0, len(names))
	for _, name := range names {
		vs = append(vs, ctx.ins[name])
	}
	return vs
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

func evalComparison(cmp func(a, b float32) bool) nodeEvalFunc {
	return func(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
		r := cmp(ctx.ins["a"].AsScalar(), ctx.ins["b"].AsScalar())
		return outOf(motionrig.NewBool(r)), nil, nil
	}
}

func evalLogical(op func(a, b bool) bool) nodeEvalFunc {
	return func(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
		r := op(ctx.ins["a"].AsBool(), ctx.ins["b"].AsBool())
		return outOf(motionrig.NewBool(r)), nil, nil
	}
}

func evalNot(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	return outOf(motionrig.NewBool(!ctx.ins["a"].AsBool())), nil, nil
}

func evalIf(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	if ctx.ins["cond"].AsBool() {
		return outOf(ctx.ins["then"]), nil, nil
	}
	return outOf(ctx.ins["else"]), nil, nil
}

func evalClamp(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	v := ctx.ins["in"].AsScalar()
	lo := ctx.scalarParam("min", 0)
	hi := ctx.scalarParam("max", 1)
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return outOf(motionrig.NewScalar(v)), nil, nil
}

func evalRemap(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	v := ctx.ins["in"].AsScalar()
	inMin := ctx.scalarParam("in_min", 0)
	inMax := ctx.scalarParam("in_max", 1)
	outMin := ctx.scalarParam("out_min", 0)
	outMax := ctx.scalarParam("out_max", 1)
	span := inMax - inMin
	var t float32
	if span != 0 {
		t = (v - inMin) / span
	}
	return outOf(motionrig.NewScalar(outMin + t*(outMax-outMin))), nil, nil
}
