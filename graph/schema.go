package graph

import motionrig "github.com/riglab/motionrig"

// PortSchema describes one input or output port: its name and the shape it
// requires (input) or declares (output).
type PortSchema struct {
	Name  string
	Shape motionrig.Shape
}

// ParamSchema describes one node parameter's expected kind and default.
type ParamSchema struct {
	Name     string
	Kind     motionrig.Kind
	HasDefault bool
	Default  motionrig.Value
}

// NodeSchema is one entry of the node type catalog (spec §4.7): input ports
// with required shape, a variadic group with min/max arity, output ports
// with declared shape, and typed params with defaults.
type NodeSchema struct {
	Inputs   []PortSchema
	Variadic *VariadicGroup
	Outputs  []PortSchema
	Params   []ParamSchema
}

// VariadicGroup describes a port name accepting N inputs (spec §4.9's
// variadic Add/Multiply, Join).
type VariadicGroup struct {
	Port string
	Min  int
	Max  int // zero means unbounded
}

func scalarPort(name string) PortSchema  { return PortSchema{Name: name, Shape: motionrig.ScalarShape()} }
func scalarOut() []PortSchema            { return []PortSchema{{Name: "out", Shape: motionrig.ScalarShape()}} }
func boolOut() []PortSchema              { return []PortSchema{{Name: "out", Shape: motionrig.BoolShape()}} }

func param(name string, k motionrig.Kind) ParamSchema { return ParamSchema{Name: name, Kind: k} }
func paramWithDefault(name string, v motionrig.Value) ParamSchema {
	return ParamSchema{Name: name, Kind: v.Kind, HasDefault: true, Default: v}
}

// schemaRegistry is the compile-time node type catalog (spec §4.7), modeled
// on the teacher's NodeType-keyed dispatch tables: a fixed switch over a tag,
// not an open plugin registry.
var schemaRegistry = map[NodeType]NodeSchema{
	NodeConstant: {
		Params:  []ParamSchema{param("value", motionrig.KindScalar)},
		Outputs: scalarOut(),
	},
	NodeSlider: {
		Params:  []ParamSchema{paramWithDefault("value", motionrig.NewScalar(0))},
		Outputs: scalarOut(),
	},
	NodeMultiSlider: {
		Params:  []ParamSchema{param("values", motionrig.KindVector)},
		Outputs: []PortSchema{{Name: "out", Shape: motionrig.VectorShape(0)}},
	},
	NodeInput: {
		Params:  []ParamSchema{param("path", motionrig.KindText), paramWithDefault("value", motionrig.NewScalar(0))},
		Outputs: scalarOut(),
	},
	NodeAdd:   binaryNumericSchema(),
	NodeSub:   binaryNumericSchema(),
	NodeMul:   binaryNumericSchema(),
	NodeDiv:   binaryNumericSchema(),
	NodePower: binaryNumericSchema(),
	NodeLog:   binaryNumericSchema(),
	NodeAddN: {
		Variadic: &VariadicGroup{Port: "in", Min: 1},
		Outputs:  scalarOut(),
	},
	NodeMultiplyN: {
		Variadic: &VariadicGroup{Port: "in", Min: 1},
		Outputs:  scalarOut(),
	},
	NodeSin: unaryNumericSchema(),
	NodeCos: unaryNumericSchema(),
	NodeTan: unaryNumericSchema(),
	NodeGreaterThan: {Inputs: []PortSchema{scalarPort("a"), scalarPort("b")}, Outputs: boolOut()},
	NodeLessThan:    {Inputs: []PortSchema{scalarPort("a"), scalarPort("b")}, Outputs: boolOut()},
	NodeEqual:       {Inputs: []PortSchema{scalarPort("a"), scalarPort("b")}, Outputs: boolOut()},
	NodeNotEqual:    {Inputs: []PortSchema{scalarPort("a"), scalarPort("b")}, Outputs: boolOut()},
	NodeAnd: {Inputs: []PortSchema{{Name: "a", Shape: motionrig.BoolShape()}, {Name: "b", Shape: motionrig.BoolShape()}}, Outputs: boolOut()},
	NodeOr:  {Inputs: []PortSchema{{Name: "a", Shape: motionrig.BoolShape()}, {Name: "b", Shape: motionrig.BoolShape()}}, Outputs: boolOut()},
	NodeNot: {Inputs: []PortSchema{{Name: "a", Shape: motionrig.BoolShape()}}, Outputs: boolOut()},
	NodeXor: {Inputs: []PortSchema{{Name: "a", Shape: motionrig.BoolShape()}, {Name: "b", Shape: motionrig.BoolShape()}}, Outputs: boolOut()},
	NodeIf: {
		Inputs:  []PortSchema{{Name: "cond", Shape: motionrig.BoolShape()}, scalarPort("then"), scalarPort("else")},
		Outputs: scalarOut(),
	},
	NodeClamp: {
		Inputs:  []PortSchema{scalarPort("in")},
		Params:  []ParamSchema{param("min", motionrig.KindScalar), param("max", motionrig.KindScalar)},
		Outputs: scalarOut(),
	},
	NodeRemap: {
		Inputs: []PortSchema{scalarPort("in")},
		Params: []ParamSchema{
			param("in_min", motionrig.KindScalar), param("in_max", motionrig.KindScalar),
			param("out_min", motionrig.KindScalar), param("out_max", motionrig.KindScalar),
		},
		Outputs: scalarOut(),
	},
	NodeVectorAdd:   vectorBinarySchema(),
	NodeVectorSub:   vectorBinarySchema(),
	NodeVectorMul:   vectorBinarySchema(),
	NodeVectorScale: {
		Inputs:  []PortSchema{{Name: "in", Shape: motionrig.VectorShape(0)}, scalarPort("scale")},
		Outputs: []PortSchema{{Name: "out", Shape: motionrig.VectorShape(0)}},
	},
	NodeVectorNorm: {
		Inputs:  []PortSchema{{Name: "in", Shape: motionrig.VectorShape(0)}},
		Outputs: []PortSchema{{Name: "out", Shape: motionrig.VectorShape(0)}},
	},
	NodeVectorDot: {
		Inputs:  []PortSchema{{Name: "a", Shape: motionrig.VectorShape(0)}, {Name: "b", Shape: motionrig.VectorShape(0)}},
		Outputs: scalarOut(),
	},
	NodeVectorCross: {
		Inputs:  []PortSchema{{Name: "a", Shape: motionrig.Vec3Shape()}, {Name: "b", Shape: motionrig.Vec3Shape()}},
		Outputs: []PortSchema{{Name: "out", Shape: motionrig.Vec3Shape()}},
	},
	NodeVectorLength: {
		Inputs:  []PortSchema{{Name: "in", Shape: motionrig.VectorShape(0)}},
		Outputs: scalarOut(),
	},
	NodeVectorIndex: {
		Inputs:  []PortSchema{{Name: "in", Shape: motionrig.VectorShape(0)}},
		Params:  []ParamSchema{param("index", motionrig.KindScalar)},
		Outputs: scalarOut(),
	},
	NodeSplit: {
		Inputs: []PortSchema{{Name: "in", Shape: motionrig.VectorShape(0)}},
		Params: []ParamSchema{param("sizes", motionrig.KindVector)},
		// Split's output port count is dynamic (one per size); the runtime
		// labels them out0, out1, ... and does not enumerate them here.
	},
	NodeJoin: {
		Variadic: &VariadicGroup{Port: "in", Min: 1},
		Outputs:  []PortSchema{{Name: "out", Shape: motionrig.VectorShape(0)}},
	},
	NodeWeightedSum: {
		Variadic: &VariadicGroup{Port: "in", Min: 1},
		Outputs:  []PortSchema{{Name: "out", Shape: motionrig.VectorShape(0)}},
	},
	NodeBlendWeighted: {
		Variadic: &VariadicGroup{Port: "in", Min: 1},
		Outputs:  []PortSchema{{Name: "out", Shape: motionrig.VectorShape(0)}},
	},
	NodeTime: {
		Outputs: scalarOut(),
	},
	NodeOscillator: {
		Inputs: []PortSchema{scalarPort("frequency"), scalarPort("phase")},
		Outputs: scalarOut(),
	},
	NodeSpring: {
		Inputs: []PortSchema{scalarPort("target")},
		Params: []ParamSchema{
			paramWithDefault("stiffness", motionrig.NewScalar(100)),
			paramWithDefault("damping", motionrig.NewScalar(10)),
			paramWithDefault("mass", motionrig.NewScalar(1)),
		},
		Outputs: scalarOut(),
	},
	NodeDamp: {
		Inputs:  []PortSchema{scalarPort("target")},
		Params:  []ParamSchema{paramWithDefault("half_life", motionrig.NewScalar(0.1))},
		Outputs: scalarOut(),
	},
	NodeSlew: {
		Inputs:  []PortSchema{scalarPort("target")},
		Params:  []ParamSchema{paramWithDefault("rate", motionrig.NewScalar(1))},
		Outputs: scalarOut(),
	},
	NodeUrdfFk: {
		Inputs: []PortSchema{{Name: "angles", Shape: motionrig.RecordShape()}},
		Params: []ParamSchema{
			param("xml", motionrig.KindText), param("root", motionrig.KindText), param("tip", motionrig.KindText),
		},
		Outputs: []PortSchema{{Name: "pose", Shape: motionrig.TransformShape()}, {Name: "joint_names", Shape: motionrig.ArrayShape(motionrig.TextShape())}},
	},
	NodeUrdfIkPos: {
		Inputs: []PortSchema{{Name: "target", Shape: motionrig.Vec3Shape()}},
		Params: []ParamSchema{
			param("xml", motionrig.KindText), param("root", motionrig.KindText), param("tip", motionrig.KindText),
			paramWithDefault("max_iters", motionrig.NewScalar(100)),
			paramWithDefault("tol_pos", motionrig.NewScalar(1e-4)),
		},
		Outputs: []PortSchema{{Name: "joint_angles", Shape: motionrig.RecordShape()}},
	},
	NodeUrdfIkPose: {
		Inputs: []PortSchema{{Name: "target_pos", Shape: motionrig.Vec3Shape()}, {Name: "target_rot", Shape: motionrig.QuatShape()}},
		Params: []ParamSchema{
			param("xml", motionrig.KindText), param("root", motionrig.KindText), param("tip", motionrig.KindText),
			paramWithDefault("max_iters", motionrig.NewScalar(100)),
			paramWithDefault("tol_pos", motionrig.NewScalar(1e-4)),
			paramWithDefault("tol_rot", motionrig.NewScalar(1e-3)),
		},
		Outputs: []PortSchema{{Name: "joint_angles", Shape: motionrig.RecordShape()}},
	},
	NodeOutput: {
		Inputs: []PortSchema{{Name: "in"}}, // shape is the producer's, not fixed
		Params: []ParamSchema{param("path", motionrig.KindText)},
	},
}

func binaryNumericSchema() NodeSchema {
	return NodeSchema{Inputs: []PortSchema{scalarPort("a"), scalarPort("b")}, Outputs: scalarOut()}
}

func unaryNumericSchema() NodeSchema {
	return NodeSchema{Inputs: []PortSchema{scalarPort("in")}, Outputs: scalarOut()}
}

func vectorBinarySchema() NodeSchema {
	return NodeSchema{
		Inputs:  []PortSchema{{Name: "a", Shape: motionrig.VectorShape(0)}, {Name: "b", Shape: motionrig.VectorShape(0)}},
		Outputs: []PortSchema{{Name: "out", Shape: motionrig.VectorShape(0)}},
	}
}

// LookupSchema returns the NodeSchema for t, or false if t is unknown.
func LookupSchema(t NodeType) (NodeSchema, bool) {
	s, ok := schemaRegistry[t]
	return s, ok
}
