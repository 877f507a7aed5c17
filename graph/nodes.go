package graph

import motionrig "github.com/riglab/motionrig"

// evalContext carries everything one node's evaluator needs: its own spec
// (for params), resolved input values, accumulated time/dt, and the
// runtime's stateful-node cache and URDF cache.
type evalContext struct {
	node     NodeSpec
	ins      map[string]motionrig.Value
	dt       float32
	time     float32
	rt       *GraphRuntime
	warnings *[]motionrig.Event
}

func (c *evalContext) param(name string) (motionrig.Value, bool) {
	v, ok := c.node.Params[name]
	return v, ok
}

func (c *evalContext) scalarParam(name string, def float32) float32 {
	if v, ok := c.param(name); ok {
		return v.AsScalar()
	}
	return def
}

func (c *evalContext) textParam(name string) string {
	v, _ := c.param(name)
	return v.AsText()
}

// warnLengthMismatch records a vector-length-mismatch diagnostic for this
// node (spec §4.9: "logged once per frame"). Each node evaluates at most
// once per evaluate_all call, so one call here already satisfies "once per
// frame" without separate dedup bookkeeping. A nil warnings sink (direct
// evalContext construction in evaluator unit tests) is a silent no-op.
func (c *evalContext) warnLengthMismatch(lenA, lenB int) {
	if c.warnings == nil {
		return
	}
	*c.warnings = append(*c.warnings, motionrig.Event{
		Kind:    motionrig.EventWarning,
		Message: "vector length mismatch, shorter operand padded",
		Fields:  map[string]any{"node": c.node.ID, "len_a": lenA, "len_b": lenB},
	})
}

// nodeEvalFunc evaluates one node given resolved inputs, returning output
// port values and (optionally) their declared shapes. A non-nil error fails
// the whole node (spec §4.9).
type nodeEvalFunc func(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error)

// dispatch is the per-NodeType evaluator registry (spec §9: "dynamic node
// dispatch...a node type acts as a tagged variant; dispatch is a match on
// the variant"), modeled on the teacher's NodeType-keyed switch tables.
var dispatch = map[NodeType]nodeEvalFunc{
	NodeConstant:    evalConstant,
	NodeSlider:      evalSlider,
	NodeMultiSlider: evalMultiSlider,
	NodeInput:       evalInput,

	NodeAdd:   evalBinary(func(a, b float32) float32 { return a + b }, 0),
	NodeSub:   evalBinary(func(a, b float32) float32 { return a - b }, 0),
	NodeMul:   evalBinary(func(a, b float32) float32 { return a * b }, 1),
	NodeDiv:   evalBinary(func(a, b float32) float32 { return a / b }, 1),
	NodePower: evalBinaryPow,
	NodeLog:   evalBinaryLog,
	NodeAddN:  evalVariadicNumeric(func(acc, v float32) float32 { return acc + v }, 0),
	NodeMultiplyN: evalVariadicNumeric(func(acc, v float32) float32 { return acc * v }, 1),

	NodeSin: evalUnary(sinf),
	NodeCos: evalUnary(cosf),
	NodeTan: evalUnary(tanf),

	NodeGreaterThan: evalComparison(func(a, b float32) bool { return a > b }),
	NodeLessThan:    evalComparison(func(a, b float32) bool { return a < b }),
	NodeEqual:       evalComparison(func(a, b float32) bool { return a == b }),
	NodeNotEqual:    evalComparison(func(a, b float32) bool { return a != b }),

	NodeAnd: evalLogical(func(a, b bool) bool { return a && b }),
	NodeOr:  evalLogical(func(a, b bool) bool { return a || b }),
	NodeXor: evalLogical(func(a, b bool) bool { return a != b }),
	NodeNot: evalNot,
	NodeIf:  evalIf,

	NodeClamp: evalClamp,
	NodeRemap: evalRemap,

	NodeVectorAdd:    evalVectorBinary(func(a, b float32) float32 { return a + b }, 0),
	NodeVectorSub:    evalVectorBinary(func(a, b float32) float32 { return a - b }, 0),
	NodeVectorMul:    evalVectorBinary(func(a, b float32) float32 { return a * b }, 1),
	NodeVectorScale:  evalVectorScale,
	NodeVectorNorm:   evalVectorNormalize,
	NodeVectorDot:    evalVectorDot,
	NodeVectorCross:  evalVectorCross,
	NodeVectorLength: evalVectorLength,
	NodeVectorIndex:  evalVectorIndex,
	NodeSplit:        evalSplit,
	NodeJoin:         evalJoin,
	NodeWeightedSum:  evalWeightedSumVector,
	NodeBlendWeighted: evalBlendWeightedAverage,

	NodeTime:       evalTime,
	NodeOscillator: evalOscillator,

	NodeSpring: evalSpring,
	NodeDamp:   evalDamp,
	NodeSlew:   evalSlew,

	NodeUrdfFk:     evalUrdfFk,
	NodeUrdfIkPos:  evalUrdfIkPosition,
	NodeUrdfIkPose: evalUrdfIkPose,

	NodeOutput: evalOutput,
}

// evaluateNode looks up and runs n's evaluator against ins. warnings
// collects non-fatal per-node diagnostics (e.g. vector-length mismatches)
// accumulated across the whole evaluate_all call.
func (rt *GraphRuntime) evaluateNode(n NodeSpec, ins map[string]motionrig.Value, warnings *[]motionrig.Event) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	fn, ok := dispatch[n.Type]
	if !ok {
		return nil, nil, taggedErr(motionrig.ErrInvalidArg, map[string]any{"node": n.ID, "type": n.Type},
			"graph: no evaluator registered for type %q", n.Type)
	}
	ctx := &evalContext{node: n, ins: ins, dt: rt.dt, time: rt.time, rt: rt, warnings: warnings}
	return fn(ctx)
}
