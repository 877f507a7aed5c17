package graph

import motionrig "github.com/riglab/motionrig"

func evalConstant(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	v, _ := ctx.param("value")
	return outOf(v), nil, nil
}

func evalSlider(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	v, ok := ctx.param("value")
	if !ok {
		v = motionrig.NewScalar(0)
	}
	return outOf(v), nil, nil
}

func evalMultiSlider(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	v, _ := ctx.param("values")
	return outOf(v), nil, nil
}

// evalInput reads the staged value matching the node's "path" param (spec
// §4.9: "Input...reads staged value matching path; if declared shape
// mismatches staged shape and coercion is numeric-like, numerically coerce;
// if mismatch is structural, produce a null-of-declared-shape value filled
// with NaN and emit a warning"). No staged entry falls back to params.value
// (scenario §8.6).
func evalInput(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	path := ctx.textParam("path")
	def, hasDefault := ctx.param("value")
	if !hasDefault {
		def = motionrig.NewScalar(0)
	}

	entry, ok := ctx.rt.staged[path]
	if !ok || entry.visibleAt != ctx.rt.epoch {
		return outOf(def), nil, nil
	}

	if !entry.hasShape {
		return outOf(entry.value), nil, nil
	}
	declared := motionrig.ShapeOf(def)
	if motionrig.ShapeOf(entry.value).Equal(declared) {
		return outOf(entry.value), nil, nil
	}
	if coerced, ok := motionrig.CoerceTo(entry.value, declared); ok {
		return outOf(coerced), nil, nil
	}
	if ctx.warnings != nil {
		*ctx.warnings = append(*ctx.warnings, motionrig.Event{
			Kind:    motionrig.EventWarning,
			Message: "staged input shape mismatch, NaN-filled",
			Fields:  map[string]any{"node": ctx.node.ID, "path": path},
		})
	}
	return outOf(motionrig.NaNOfShape(declared)), map[string]motionrig.Shape{"out": declared}, nil
}

// evalOutput reads the "in" input and stages a write. The write queue itself
// is assembled by EvaluateAll (it needs the path param and output shape),
// so this evaluator only passes the value through as its "out" port. The
// Output schema declares no output ports, so ValidateSpec rejects any
// reference to one and Output nodes are always terminal.
func evalOutput(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	return outOf(ctx.ins["in"]), nil, nil
}
