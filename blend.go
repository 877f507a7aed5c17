package motionrig

// Contribution is one instance's sample for a single destination this tick:
// its blend weight and sampled value (spec §4.4).
type Contribution struct {
	Weight float32
	Value  Value
}

// BlendContributions reduces a destination's per-instance contributions to a
// single value, per spec §4.4's per-kind policy. Weights are never
// renormalized — the weighted-average case computes exactly Σ wᵢ·vᵢ
// componentwise, matching spec §8's invariant. ok is false when contribs is
// empty (the destination produced no samples this tick and is skipped
// entirely — absent contributions never zero it). mismatched reports a kind
// disagreement across contributions, in which case the destination is
// skipped (spec §4.4) and the caller should emit a Warning.
func BlendContributions(contribs []Contribution) (out Value, ok bool, mismatched bool) {
	if len(contribs) == 0 {
		return Value{}, false, false
	}
	kind := contribs[0].Value.Kind
	for _, c := range contribs[1:] {
		if c.Value.Kind != kind {
			return Value{}, false, true
		}
	}
	if len(contribs) == 1 {
		return weightScale(contribs[0].Value, contribs[0].Weight), true, false
	}

	switch kind {
	case KindScalar, KindVec2, KindVec3, KindVec4, KindColor, KindVector:
		return blendWeightedSum(kind, contribs), true, false
	case KindQuat:
		return blendQuat(contribs), true, false
	case KindTransform:
		return blendTransform(contribs), true, false
	case KindBool, KindText:
		// Step kinds have no numeric blend; the highest-weight contribution
		// wins, ties broken by first-seen (stable instance order upstream).
		best := contribs[0]
		for _, c := range contribs[1:] {
			if c.Weight > best.Weight {
				best = c
			}
		}
		return best.Value, true, false
	default:
		return Value{}, false, true
	}
}

// weightScale applies a weight to a single contribution's flattened numeric
// form; for a lone contributor this still must obey "sum is exactly
// Σ wᵢ·vᵢ" with a one-element sum. Non-numeric kinds pass through unscaled
// (weight has no meaning for a lone step/structured sample).
func weightScale(v Value, w float32) Value {
	switch v.Kind {
	case KindScalar, KindVec2, KindVec3, KindVec4, KindColor, KindVector:
		buf := v.FlattenInto(nil)
		for i := range buf {
			buf[i] *= w
		}
		return rebuildFlat(v.Kind, v, buf)
	default:
		return v
	}
}

func rebuildFlat(kind Kind, shapeLike Value, buf []float32) Value {
	switch kind {
	case KindScalar:
		return NewScalar(buf[0])
	case KindVec2:
		return NewVec2(buf[0], buf[1])
	case KindVec3:
		return NewVec3(buf[0], buf[1], buf[2])
	case KindVec4:
		return NewVec4(buf[0], buf[1], buf[2], buf[3])
	case KindColor:
		return NewColor(buf[0], buf[1], buf[2], buf[3])
	case KindVector:
		return NewVector(buf)
	case KindQuat:
		return NewQuat(buf[0], buf[1], buf[2], buf[3])
	case KindTransform:
		return NewTransform(Transform{
			Translation: [3]float32{buf[0], buf[1], buf[2]},
			Rotation:    Quat{buf[3], buf[4], buf[5], buf[6]},
			Scale:       [3]float32{buf[7], buf[8], buf[9]},
		})
	default:
		return shapeLike
	}
}

// blendWeightedSum computes the componentwise Σ wᵢ·vᵢ for the numeric-family
// kinds (spec §8: "sum of contributions ... is exactly Σ wᵢ·vᵢ").
func blendWeightedSum(kind Kind, contribs []Contribution) Value {
	n := contribs[0].Value.FlattenCount()
	sum := make([]float32, n)
	for _, c := range contribs {
		buf := c.Value.FlattenInto(nil)
		for i := 0; i < n && i < len(buf); i++ {
			sum[i] += c.Weight * buf[i]
		}
	}
	return rebuildFlat(kind, contribs[0].Value, sum)
}

// blendQuat folds all contributions via successive weighted NLERP, carrying
// hemisphere alignment through every step so the final result satisfies
// dot(result, contribs[0].Value) >= 0 (spec §8). This approximates a
// weighted quaternion average; true weighted averaging requires an
// eigen-decomposition the spec does not ask for.
func blendQuat(contribs []Contribution) Value {
	acc := contribs[0].Value.AsQuat()
	accWeight := contribs[0].Weight
	for _, c := range contribs[1:] {
		total := accWeight + c.Weight
		var t float32
		if total != 0 {
			t = c.Weight / total
		}
		acc = nlerp(acc, c.Value.AsQuat(), t)
		accWeight = total
	}
	return NewQuatValue(acc)
}

// blendTransform decomposes Transform into translation/scale (linear) and
// rotation (NLERP chain), blending each sub-field independently (spec §4.4).
func blendTransform(contribs []Contribution) Value {
	var sumT, sumS [3]float32
	for _, c := range contribs {
		t := c.Value.AsTransform()
		for i := 0; i < 3; i++ {
			sumT[i] += c.Weight * t.Translation[i]
			sumS[i] += c.Weight * t.Scale[i]
		}
	}
	rotContribs := make([]Contribution, len(contribs))
	for i, c := range contribs {
		rotContribs[i] = Contribution{Weight: c.Weight, Value: NewQuatValue(c.Value.AsTransform().Rotation)}
	}
	rot := blendQuat(rotContribs).AsQuat()
	return NewTransform(Transform{Translation: sumT, Rotation: rot, Scale: sumS})
}
