package graph

import (
	"sort"

	motionrig "github.com/riglab/motionrig"
)

// Config tunes a GraphRuntime (spec §4.8/§5/§9, mirroring the root package's
// EngineConfig idiom: documented zero-value defaults, no required fields).
type Config struct {
	// ScratchOutputCap hints the initial capacity of the per-evaluation
	// node-output map. Zero means 32.
	ScratchOutputCap int
}

func (c Config) applyDefaults() Config {
	if c.ScratchOutputCap <= 0 {
		c.ScratchOutputCap = 32
	}
	return c
}

// DefaultConfig returns a Config with every field at its documented default.
func DefaultConfig() Config { return Config{}.applyDefaults() }

// stagedEntry is one value staged via StageInput, tagged with the epoch it
// is visible during (spec §4.8/§9: "next-epoch" semantics as an explicit
// contract, not a timing accident).
type stagedEntry struct {
	value      motionrig.Value
	shape      motionrig.Shape
	hasShape   bool
	visibleAt  uint64
}

// outputVal is one output port's result: either a value or a poisoning error
// (spec §4.9: "Per-node errors abort only that node...downstream nodes
// observing errored inputs also fail").
type outputVal struct {
	value motionrig.Value
	shape motionrig.Shape
	err   error
}

// GraphRuntime is the scheduling/execution state over one GraphSpec (spec
// §3 "GraphRuntime"): topo order, per-node state cache, staged input table,
// current epoch, dt.
type GraphRuntime struct {
	spec   GraphSpec
	nodeAt map[NodeID]NodeSpec
	order  []NodeID

	config Config

	epoch uint64
	dt    float32
	time  float32

	staged map[string]stagedEntry

	statefulCache map[NodeID]any

	urdf *urdfCache
}

// NewGraphRuntime validates spec and computes its topological order once
// (spec §4.8: "Topological ordering is computed once per spec load").
func NewGraphRuntime(spec GraphSpec, cfg Config) (*GraphRuntime, error) {
	if err := ValidateSpec(spec); err != nil {
		return nil, err
	}
	order, err := topoOrder(spec)
	if err != nil {
		return nil, err
	}
	nodeAt := make(map[NodeID]NodeSpec, len(spec.Nodes))
	for _, n := range spec.Nodes {
		nodeAt[n.ID] = n
	}
	return &GraphRuntime{
		spec:          spec,
		nodeAt:        nodeAt,
		order:         order,
		config:        cfg.applyDefaults(),
		staged:        make(map[string]stagedEntry),
		statefulCache: make(map[NodeID]any),
		urdf:          newURDFCache(),
	}, nil
}

// topoOrder computes a Kahn's-algorithm topological sort with a stable
// ascending-id tiebreak among equally ranked nodes (spec §4.8), technique
// grounded on the pack's graph-algorithms reference (Kahn's algorithm over
// an adjacency list), reimplemented here directly since that reference
// library's types are shaped for numeric graph analysis, not a typed
// dataflow DAG.
func topoOrder(spec GraphSpec) ([]NodeID, error) {
	indegree := make(map[NodeID]int, len(spec.Nodes))
	dependents := make(map[NodeID][]NodeID, len(spec.Nodes))
	for _, n := range spec.Nodes {
		if _, ok := indegree[n.ID]; !ok {
			indegree[n.ID] = 0
		}
		for _, ref := range n.Inputs {
			indegree[n.ID]++
			dependents[ref.Node] = append(dependents[ref.Node], n.ID)
		}
	}

	ready := make([]NodeID, 0, len(spec.Nodes))
	for id, d := range indegree {
		if d == 0 {
			ready = append(ready, id)
		}
	}
	sortIDs(ready)

	order := make([]NodeID, 0, len(spec.Nodes))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)
		next := append([]NodeID(nil), dependents[id]...)
		sortIDs(next)
		for _, dep := range next {
			indegree[dep]--
			if indegree[dep] == 0 {
				ready = insertSorted(ready, dep)
			}
		}
	}
	if len(order) != len(spec.Nodes) {
		return nil, taggedErr(motionrig.ErrCycleDetected, nil, "graph: cycle detected during topological sort")
	}
	return order, nil
}

func sortIDs(ids []NodeID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

func insertSorted(ids []NodeID, id NodeID) []NodeID {
	i := sort.Search(len(ids), func(i int) bool { return ids[i] >= id })
	ids = append(ids, "")
	copy(ids[i+1:], ids[i:])
	ids[i] = id
	return ids
}

// SetTime sets the runtime's accumulated time, read by the Time node.
func (rt *GraphRuntime) SetTime(t float32) { rt.time = t }

// Step advances dt for the next evaluate_all's Time/stateful-filter nodes.
// It performs no evaluation itself (spec §6: set_time/step/evaluate_all are
// distinct calls).
func (rt *GraphRuntime) Step(dt float32) {
	rt.dt = dt
	rt.time += dt
}

// StageInput stages a value for the Input node whose path param matches
// (spec §4.8). The entry becomes visible starting with the evaluate_all
// that transitions the current epoch to the next one; it is consumed at
// most once and dropped at that epoch's end regardless of consumption
// (spec §8 "Epoch consumption").
func (rt *GraphRuntime) StageInput(path string, value motionrig.Value, shape motionrig.Shape, hasShape bool) {
	rt.staged[path] = stagedEntry{value: value, shape: shape, hasShape: hasShape, visibleAt: rt.epoch + 1}
}

// EvaluateResult is evaluate_all's return value (spec §6).
type EvaluateResult struct {
	Nodes    map[NodeID]map[string]motionrig.Value
	Writes   motionrig.WriteBatch
	Warnings []motionrig.Event
}

// EvaluateAll advances the epoch, evaluates every node in topological order,
// and returns the per-node output map and the accumulated WriteBatch (spec
// §4.8/§6).
func (rt *GraphRuntime) EvaluateAll() (EvaluateResult, error) {
	rt.epoch++
	rt.pruneStatefulCache()

	outputs := make(map[NodeID]map[string]outputVal, rt.config.ScratchOutputCap)
	var writes motionrig.WriteBatch
	var warnings []motionrig.Event

	for _, id := range rt.order {
		n := rt.nodeAt[id]
		ins, inErr := rt.resolveInputs(n, outputs)
		var out map[string]outputVal
		if inErr != nil {
			out = map[string]outputVal{"": {err: inErr}}
		} else {
			vals, shapes, evalErr := rt.evaluateNode(n, ins, &warnings)
			if evalErr != nil {
				out = map[string]outputVal{"": {err: evalErr}}
			} else {
				out = make(map[string]outputVal, len(vals))
				for port, v := range vals {
					sh, has := shapes[port]
					if !has {
						sh = motionrig.ShapeOf(v)
					}
					out[port] = outputVal{value: v, shape: sh}
				}
				if n.Type == NodeOutput {
					path, _ := n.Params["path"]
					if tp, err := motionrig.ParsePath(path.AsText()); err == nil {
						v := vals["out"]
						writes.Append(motionrig.WriteOp{Path: tp, Value: v, Shape: motionrig.ShapeOf(v), HasShape: true})
					}
				}
			}
		}
		outputs[id] = out
	}

	rt.gcStagedInputs()

	public := make(map[NodeID]map[string]motionrig.Value, len(outputs))
	for id, ports := range outputs {
		m := make(map[string]motionrig.Value, len(ports))
		for port, ov := range ports {
			if ov.err == nil {
				m[port] = ov.value
			}
		}
		public[id] = m
	}
	return EvaluateResult{Nodes: public, Writes: writes, Warnings: warnings}, nil
}

// resolveInputs gathers one node's input port values from upstream outputs,
// applying each PortRef's Selector. Any upstream error or selector failure
// fails the whole node (spec §4.9).
func (rt *GraphRuntime) resolveInputs(n NodeSpec, outputs map[NodeID]map[string]outputVal) (map[string]motionrig.Value, error) {
	ins := make(map[string]motionrig.Value, len(n.Inputs))
	for port, ref := range n.Inputs {
		srcOut, ok := outputs[ref.Node]
		if !ok {
			return nil, taggedErr(motionrig.ErrNotFound, map[string]any{"node": n.ID, "port": port},
				"graph: node %q input %q has no upstream output yet", n.ID, port)
		}
		ov, ok := srcOut[ref.Port]
		if !ok {
			return nil, taggedErr(motionrig.ErrNotFound, map[string]any{"node": n.ID, "port": port, "output": ref.Port},
				"graph: node %q input %q references missing output port %q", n.ID, port, ref.Port)
		}
		if ov.err != nil {
			return nil, taggedErr(motionrig.ErrInvalidArg, map[string]any{"node": n.ID, "port": port},
				"graph: node %q input %q poisoned by upstream error: %v", n.ID, port, ov.err)
		}
		v, err := ref.Selector.Apply(ov.value)
		if err != nil {
			return nil, err
		}
		ins[port] = v
	}
	return ins, nil
}

func (rt *GraphRuntime) gcStagedInputs() {
	for path, e := range rt.staged {
		if e.visibleAt <= rt.epoch {
			delete(rt.staged, path)
		}
	}
}

func (rt *GraphRuntime) pruneStatefulCache() {
	for id := range rt.statefulCache {
		if _, ok := rt.nodeAt[id]; !ok {
			delete(rt.statefulCache, id)
		}
	}
}
