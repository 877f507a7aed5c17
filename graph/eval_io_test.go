package graph

import (
	"math"
	"testing"

	motionrig "github.com/riglab/motionrig"
)

func TestEvalConstantReturnsItsValueParam(t *testing.T) {
	out := runEval(t, NodeConstant, nil, map[string]motionrig.Value{"value": motionrig.NewScalar(7)})
	if out["out"].AsScalar() != 7 {
		t.Errorf("constant = %f, want 7", out["out"].AsScalar())
	}
}

func TestEvalSliderDefaultsToZero(t *testing.T) {
	out := runEval(t, NodeSlider, nil, nil)
	if out["out"].AsScalar() != 0 {
		t.Errorf("slider with no value param = %f, want 0", out["out"].AsScalar())
	}
}

func TestEvalMultiSliderReturnsValuesVector(t *testing.T) {
	out := runEval(t, NodeMultiSlider, nil, map[string]motionrig.Value{"values": motionrig.NewVector([]float32{1, 2, 3})})
	got := out["out"].AsVector()
	if len(got) != 3 || got[1] != 2 {
		t.Errorf("multi_slider values = %v, want [1 2 3]", got)
	}
}

func inputGraph(def motionrig.Value) GraphSpec {
	return GraphSpec{Nodes: []NodeSpec{
		{ID: "in", Type: NodeInput, Params: map[string]motionrig.Value{
			"path": motionrig.NewText("robot/x"), "value": def,
		}},
	}}
}

func TestEvalInputFallsBackToDefaultWhenNothingStaged(t *testing.T) {
	rt, err := NewGraphRuntime(inputGraph(motionrig.NewScalar(3)), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	res, err := rt.EvaluateAll()
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Nodes["in"]["out"].AsScalar(); got != 3 {
		t.Errorf("unstaged input = %f, want default 3", got)
	}
}

func TestEvalInputCoercesVectorToVec2WhenLengthsMatch(t *testing.T) {
	rt, err := NewGraphRuntime(inputGraph(motionrig.NewVec2(0, 0)), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	rt.StageInput("robot/x", motionrig.NewVector([]float32{1, 2}), motionrig.VectorShape(2), true)
	res, err := rt.EvaluateAll()
	if err != nil {
		t.Fatal(err)
	}
	x, y := res.Nodes["in"]["out"].AsVec2()
	if x != 1 || y != 2 {
		t.Errorf("coerced input = (%f,%f), want (1,2)", x, y)
	}
}

func TestEvalInputProducesNaNOnStructuralMismatch(t *testing.T) {
	rt, err := NewGraphRuntime(inputGraph(motionrig.NewScalar(0)), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	rt.StageInput("robot/x", motionrig.NewText("not a number"), motionrig.TextShape(), true)
	res, err := rt.EvaluateAll()
	if err != nil {
		t.Fatal(err)
	}
	got := res.Nodes["in"]["out"].AsScalar()
	if !math.IsNaN(float64(got)) {
		t.Errorf("structural mismatch should produce NaN, got %f", got)
	}
}

func TestEvalOutputPassesInputThroughAndEmitsWrite(t *testing.T) {
	g := GraphSpec{Nodes: []NodeSpec{
		constNode("val", 42),
		{ID: "out", Type: NodeOutput, Inputs: map[string]PortRef{"in": {Node: "val", Port: "out"}},
			Params: map[string]motionrig.Value{"path": motionrig.NewText("samples/out")}},
	}}
	rt, err := NewGraphRuntime(g, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	res, err := rt.EvaluateAll()
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Nodes["out"]["out"].AsScalar(); got != 42 {
		t.Errorf("output passthrough = %f, want 42", got)
	}
	if res.Writes.Len() != 1 {
		t.Fatalf("expected exactly one write, got %d", res.Writes.Len())
	}
}
