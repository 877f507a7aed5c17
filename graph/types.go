// Package graph implements the node-graph evaluator: a typed DAG of nodes
// consuming staged host inputs and emitting a WriteBatch once per
// evaluate_all call.
package graph

import motionrig "github.com/riglab/motionrig"

// NodeType tags a node's variant, matching the lowercase discriminant used
// in the graph spec JSON wire form.
type NodeType string

const (
	NodeConstant     NodeType = "constant"
	NodeSlider       NodeType = "slider"
	NodeMultiSlider  NodeType = "multi_slider"
	NodeInput        NodeType = "input"
	NodeAdd          NodeType = "add"
	NodeSub          NodeType = "sub"
	NodeMul          NodeType = "mul"
	NodeDiv          NodeType = "div"
	NodePower        NodeType = "power"
	NodeLog          NodeType = "log"
	NodeAddN         NodeType = "add_n"
	NodeMultiplyN    NodeType = "multiply_n"
	NodeSin          NodeType = "sin"
	NodeCos          NodeType = "cos"
	NodeTan          NodeType = "tan"
	NodeGreaterThan  NodeType = "greater_than"
	NodeLessThan     NodeType = "less_than"
	NodeEqual        NodeType = "equal"
	NodeNotEqual     NodeType = "not_equal"
	NodeAnd          NodeType = "and"
	NodeOr           NodeType = "or"
	NodeNot          NodeType = "not"
	NodeXor          NodeType = "xor"
	NodeIf           NodeType = "if"
	NodeClamp        NodeType = "clamp"
	NodeRemap        NodeType = "remap"
	NodeVectorAdd    NodeType = "vector_add"
	NodeVectorSub    NodeType = "vector_subtract"
	NodeVectorMul    NodeType = "vector_multiply"
	NodeVectorScale  NodeType = "vector_scale"
	NodeVectorNorm   NodeType = "vector_normalize"
	NodeVectorDot    NodeType = "dot"
	NodeVectorCross  NodeType = "cross"
	NodeVectorLength NodeType = "length"
	NodeVectorIndex  NodeType = "index"
	NodeSplit        NodeType = "split"
	NodeJoin         NodeType = "join"
	NodeWeightedSum  NodeType = "weighted_sum_vector"
	NodeBlendWeighted NodeType = "blend_weighted_average"
	NodeTime         NodeType = "time"
	NodeOscillator   NodeType = "oscillator"
	NodeSpring       NodeType = "spring"
	NodeDamp         NodeType = "damp"
	NodeSlew         NodeType = "slew"
	NodeUrdfFk       NodeType = "urdf_fk"
	NodeUrdfIkPos    NodeType = "urdf_ik_position"
	NodeUrdfIkPose   NodeType = "urdf_ik_pose"
	NodeOutput       NodeType = "output"
)

// NodeID identifies a node within a GraphSpec. Node graph JSON uses
// human-chosen string ids ("osc", "freq", "out"), not numeric handles.
type NodeID string

// NodeSpec is one node declaration (spec §3: "{id, type, params, inputs}").
type NodeSpec struct {
	ID     NodeID
	Type   NodeType
	Params map[string]motionrig.Value
	Inputs map[string]PortRef
}

// PortRef is the resolved form of spec §3's "(source node id, output port,
// selector[])" input connection.
type PortRef struct {
	Node     NodeID
	Port     string
	Selector motionrig.Selector
}

// GraphSpec is the full node-graph declaration (spec §3: "{nodes[]}").
type GraphSpec struct {
	Nodes []NodeSpec
}

// NodeByID returns the spec for id, or false if absent.
func (g GraphSpec) NodeByID(id NodeID) (NodeSpec, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return NodeSpec{}, false
}
