package graph

import (
	"testing"

	motionrig "github.com/riglab/motionrig"
)

func TestNewGraphRuntimeRejectsInvalidSpec(t *testing.T) {
	g := GraphSpec{Nodes: []NodeSpec{{ID: "a", Type: "bogus"}}}
	if _, err := NewGraphRuntime(g, DefaultConfig()); err == nil {
		t.Fatal("expected validation to fail for an unknown node type")
	}
}

func TestEvaluateAllSumsTwoConstants(t *testing.T) {
	g := GraphSpec{Nodes: []NodeSpec{
		constNode("a", 2),
		constNode("b", 3),
		{ID: "sum", Type: NodeAdd, Inputs: map[string]PortRef{
			"a": {Node: "a", Port: "out"}, "b": {Node: "b", Port: "out"},
		}},
	}}
	rt, err := NewGraphRuntime(g, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	res, err := rt.EvaluateAll()
	if err != nil {
		t.Fatal(err)
	}
	got := res.Nodes["sum"]["out"].AsScalar()
	if got != 5 {
		t.Errorf("sum = %f, want 5", got)
	}
}

func TestEvaluateAllOrdersProducersBeforeConsumers(t *testing.T) {
	g := GraphSpec{Nodes: []NodeSpec{
		{ID: "sum", Type: NodeAdd, Inputs: map[string]PortRef{
			"a": {Node: "a", Port: "out"}, "b": {Node: "b", Port: "out"},
		}},
		constNode("b", 10),
		constNode("a", 1),
	}}
	rt, err := NewGraphRuntime(g, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	idxOf := func(id NodeID) int {
		for i, n := range rt.order {
			if n == id {
				return i
			}
		}
		return -1
	}
	if idxOf("sum") <= idxOf("a") || idxOf("sum") <= idxOf("b") {
		t.Fatalf("expected sum to be scheduled after its producers, order=%v", rt.order)
	}
}

func TestEvaluateAllPropagatesErrorsDownstream(t *testing.T) {
	g := GraphSpec{Nodes: []NodeSpec{
		{ID: "idx", Type: NodeVectorIndex, Inputs: map[string]PortRef{"in": {Node: "vec", Port: "out"}},
			Params: map[string]motionrig.Value{"index": motionrig.NewScalar(5)}},
		{ID: "vec", Type: NodeConstant, Params: map[string]motionrig.Value{"value": motionrig.NewVec2(1, 2)}},
		{ID: "downstream", Type: NodeSin, Inputs: map[string]PortRef{"in": {Node: "idx", Port: "out"}}},
	}}
	rt, err := NewGraphRuntime(g, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	res, err := rt.EvaluateAll()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := res.Nodes["idx"]["out"]; ok {
		t.Error("expected idx's out-of-range index to poison its own output")
	}
	if _, ok := res.Nodes["downstream"]["out"]; ok {
		t.Error("expected downstream to fail when its input is poisoned")
	}
}

func TestStageInputVisibleOnNextEvaluateAllOnly(t *testing.T) {
	g := GraphSpec{Nodes: []NodeSpec{
		{ID: "in", Type: NodeInput, Params: map[string]motionrig.Value{
			"path": motionrig.NewText("robot/x"), "value": motionrig.NewScalar(0),
		}},
	}}
	rt, err := NewGraphRuntime(g, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	rt.StageInput("robot/x", motionrig.NewScalar(0.5), motionrig.Shape{}, false)

	res, err := rt.EvaluateAll()
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Nodes["in"]["out"].AsScalar(); got != 0.5 {
		t.Fatalf("first evaluate_all after staging: got %f, want 0.5", got)
	}

	res2, err := rt.EvaluateAll()
	if err != nil {
		t.Fatal(err)
	}
	if got := res2.Nodes["in"]["out"].AsScalar(); got != 0 {
		t.Fatalf("second evaluate_all without restaging: got %f, want default 0", got)
	}
}

func TestIdempotentLoadYieldsSameOrderAndOutputs(t *testing.T) {
	g := GraphSpec{Nodes: []NodeSpec{
		constNode("a", 1), constNode("b", 2),
		{ID: "sum", Type: NodeAdd, Inputs: map[string]PortRef{"a": {Node: "a", Port: "out"}, "b": {Node: "b", Port: "out"}}},
	}}
	rt1, err := NewGraphRuntime(g, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	rt2, err := NewGraphRuntime(g, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(rt1.order) != len(rt2.order) {
		t.Fatal("expected identical node counts in order")
	}
	for i := range rt1.order {
		if rt1.order[i] != rt2.order[i] {
			t.Fatalf("order diverged at %d: %v vs %v", i, rt1.order, rt2.order)
		}
	}
	r1, _ := rt1.EvaluateAll()
	r2, _ := rt2.EvaluateAll()
	if r1.Nodes["sum"]["out"].AsScalar() != r2.Nodes["sum"]["out"].AsScalar() {
		t.Fatal("expected identical evaluation outputs for identical specs")
	}
}
