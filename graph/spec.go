package graph

import (
	motionrig "github.com/riglab/motionrig"
)

// ValidateSpec checks the structural invariants in spec §4.7: node ids
// unique; every input reference targets an existing node+output; required
// ports/params present; no cycles. Shape compatibility is not a load-time
// check: a node's declared output shape is reconciled against what it
// actually produces per-evaluation (spec §4.9's coercion/NaN-poisoning
// path in evalInput and friends), since coercibility can depend on a
// staged input's runtime shape, not just the static spec.
//
// A validation failure aborts the whole load (spec §7: "CycleDetected at
// graph load aborts the load"); nothing partial is returned.
func ValidateSpec(g GraphSpec) error {
	seen := make(map[NodeID]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return taggedErr(motionrig.ErrInvalidArg, nil, "graph: node with empty id")
		}
		if seen[n.ID] {
			return taggedErr(motionrig.ErrInvalidArg, map[string]any{"id": n.ID}, "graph: duplicate node id %q", n.ID)
		}
		seen[n.ID] = true
		if _, ok := LookupSchema(n.Type); !ok {
			return taggedErr(motionrig.ErrInvalidArg, map[string]any{"id": n.ID, "type": n.Type},
				"graph: node %q has unknown type %q", n.ID, n.Type)
		}
	}

	for _, n := range g.Nodes {
		schema := schemaRegistry[n.Type]
		for port, ref := range n.Inputs {
			src, ok := g.NodeByID(ref.Node)
			if !ok {
				return taggedErr(motionrig.ErrNotFound, map[string]any{"node": n.ID, "port": port, "source": ref.Node},
					"graph: node %q input %q references unknown node %q", n.ID, port, ref.Node)
			}
			srcSchema := schemaRegistry[src.Type]
			if !hasOutputPort(srcSchema, src.Type, ref.Port) {
				return taggedErr(motionrig.ErrNotFound, map[string]any{"node": n.ID, "port": port, "source": ref.Node, "output": ref.Port},
					"graph: node %q input %q references unknown output port %q on %q", n.ID, port, ref.Port, ref.Node)
			}
		}
		if err := checkRequiredPorts(n, schema); err != nil {
			return err
		}
		if err := checkRequiredParams(n, schema); err != nil {
			return err
		}
	}

	if err := detectCycle(g); err != nil {
		return err
	}
	return nil
}

// hasOutputPort reports whether outputPort is a declared output of a node of
// type t. Split's outputs are dynamic (out0, out1, ...) and are accepted
// syntactically; the runtime rejects an out-of-range index at evaluation.
func hasOutputPort(schema NodeSchema, t NodeType, outputPort string) bool {
	if t == NodeSplit {
		return true
	}
	for _, p := range schema.Outputs {
		if p.Name == outputPort {
			return true
		}
	}
	return false
}

func checkRequiredPorts(n NodeSpec, schema NodeSchema) error {
	for _, p := range schema.Inputs {
		if _, ok := n.Inputs[p.Name]; !ok {
			return taggedErr(motionrig.ErrInvalidArg, map[string]any{"node": n.ID, "port": p.Name},
				"graph: node %q missing required input %q", n.ID, p.Name)
		}
	}
	if schema.Variadic != nil {
		count := 0
		for port := range n.Inputs {
			if isVariadicMember(port, schema.Variadic.Port) {
				count++
			}
		}
		if count < schema.Variadic.Min {
			return taggedErr(motionrig.ErrInvalidArg, map[string]any{"node": n.ID, "group": schema.Variadic.Port, "count": count},
				"graph: node %q variadic group %q needs at least %d inputs, got %d",
				n.ID, schema.Variadic.Port, schema.Variadic.Min, count)
		}
		if schema.Variadic.Max > 0 && count > schema.Variadic.Max {
			return taggedErr(motionrig.ErrInvalidArg, map[string]any{"node": n.ID, "group": schema.Variadic.Port, "count": count},
				"graph: node %q variadic group %q accepts at most %d inputs, got %d",
				n.ID, schema.Variadic.Port, schema.Variadic.Max, count)
		}
	}
	return nil
}

// isVariadicMember reports whether a port name belongs to a variadic group
// named base: either the bare name ("in") or an indexed form ("in0", "in1").
func isVariadicMember(port, base string) bool {
	if port == base {
		return true
	}
	if len(port) > len(base) && port[:len(base)] == base {
		return true
	}
	return false
}

func checkRequiredParams(n NodeSpec, schema NodeSchema) error {
	for _, p := range schema.Params {
		if p.HasDefault {
			continue
		}
		if _, ok := n.Params[p.Name]; !ok {
			return taggedErr(motionrig.ErrInvalidArg, map[string]any{"node": n.ID, "param": p.Name},
				"graph: node %q missing required param %q", n.ID, p.Name)
		}
	}
	return nil
}

// detectCycle runs a DFS coloring check over the input-reference graph,
// reporting CycleDetected with the offending node on the first back-edge
// found. Roots are visited in g.Nodes declaration order, but each node's
// inputs are walked in map iteration order, so which node of a cycle is
// named is not fixed. (Evaluation order is computed separately in runtime.go.)
func detectCycle(g GraphSpec) error {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[NodeID]int, len(g.Nodes))
	var visit func(id NodeID) error
	visit = func(id NodeID) error {
		color[id] = gray
		n, _ := g.NodeByID(id)
		for _, ref := range n.Inputs {
			switch color[ref.Node] {
			case gray:
				return taggedErr(motionrig.ErrCycleDetected, map[string]any{"node": id, "via": ref.Node},
					"graph: cycle detected through node %q", ref.Node)
			case white:
				if err := visit(ref.Node); err != nil {
					return err
				}
			}
		}
		color[id] = black
		return nil
	}
	for _, n := range g.Nodes {
		if color[n.ID] == white {
			if err := visit(n.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
