package graph

import (
	"errors"
	"testing"

	motionrig "github.com/riglab/motionrig"
)

func constNode(id NodeID, v float32) NodeSpec {
	return NodeSpec{ID: id, Type: NodeConstant, Params: map[string]motionrig.Value{"value": motionrig.NewScalar(v)}}
}

func TestValidateSpecRejectsDuplicateIDs(t *testing.T) {
	g := GraphSpec{Nodes: []NodeSpec{constNode("a", 1), constNode("a", 2)}}
	if err := ValidateSpec(g); err == nil {
		t.Fatal("expected an error for duplicate node ids")
	}
}

func TestValidateSpecRejectsUnknownType(t *testing.T) {
	g := GraphSpec{Nodes: []NodeSpec{{ID: "a", Type: "bogus"}}}
	if err := ValidateSpec(g); err == nil {
		t.Fatal("expected an error for an unknown node type")
	}
}

func TestValidateSpecRejectsDanglingInputReference(t *testing.T) {
	g := GraphSpec{Nodes: []NodeSpec{
		{ID: "add", Type: NodeAdd, Inputs: map[string]PortRef{
			"a": {Node: "missing", Port: "out"},
			"b": {Node: "missing", Port: "out"},
		}},
	}}
	if err := ValidateSpec(g); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestValidateSpecRejectsMissingRequiredInput(t *testing.T) {
	g := GraphSpec{Nodes: []NodeSpec{
		constNode("a", 1),
		{ID: "add", Type: NodeAdd, Inputs: map[string]PortRef{"a": {Node: "a", Port: "out"}}},
	}}
	if err := ValidateSpec(g); !errors.Is(err, ErrInvalidArg) {
		t.Fatalf("expected ErrInvalidArg for a missing required input, got %v", err)
	}
}

func TestValidateSpecRejectsMissingRequiredParam(t *testing.T) {
	g := GraphSpec{Nodes: []NodeSpec{{ID: "c", Type: NodeConstant}}}
	if err := ValidateSpec(g); !errors.Is(err, ErrInvalidArg) {
		t.Fatalf("expected ErrInvalidArg for a missing required param, got %v", err)
	}
}

func TestValidateSpecDetectsCycle(t *testing.T) {
	g := GraphSpec{Nodes: []NodeSpec{
		{ID: "a", Type: NodeAdd, Inputs: map[string]PortRef{
			"a": {Node: "b", Port: "out"}, "b": {Node: "b", Port: "out"},
		}},
		{ID: "b", Type: NodeAdd, Inputs: map[string]PortRef{
			"a": {Node: "a", Port: "out"}, "b": {Node: "a", Port: "out"},
		}},
	}}
	if err := ValidateSpec(g); !errors.Is(err, ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}
}

func TestValidateSpecAcceptsWellFormedGraph(t *testing.T) {
	g := GraphSpec{Nodes: []NodeSpec{
		constNode("a", 1),
		constNode("b", 2),
		{ID: "sum", Type: NodeAdd, Inputs: map[string]PortRef{
			"a": {Node: "a", Port: "out"}, "b": {Node: "b", Port: "out"},
		}},
	}}
	if err := ValidateSpec(g); err != nil {
		t.Fatalf("expected a well-formed graph to validate, got %v", err)
	}
}
