package graph

import (
	"errors"
	"hash/fnv"

	motionrig "github.com/riglab/motionrig"
	"github.com/riglab/motionrig/ikrig"
)

// urdfCache memoizes parsed URDF models and resolved root->tip chains keyed
// by a hash of (xml, root, tip), so repeated evaluate_all calls over the
// same graph spec don't re-parse the document every tick (spec §4.9:
// "parses URDF once per (xml, root, tip) triple, hashed").
type urdfCache struct {
	models map[uint64]*ikrig.Model
	chains map[uint64][]ikrig.Joint
}

func newURDFCache() *urdfCache {
	return &urdfCache{models: make(map[uint64]*ikrig.Model), chains: make(map[uint64][]ikrig.Joint)}
}

func urdfCacheKey(xml, root, tip string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(xml))
	h.Write([]byte{0})
	h.Write([]byte(root))
	h.Write([]byte{0})
	h.Write([]byte(tip))
	return h.Sum64()
}

func (c *urdfCache) chainFor(xmlDoc, root, tip string) ([]ikrig.Joint, error) {
	key := urdfCacheKey(xmlDoc, root, tip)
	if chain, ok := c.chains[key]; ok {
		return chain, nil
	}
	model, err := ikrig.ParseURDF([]byte(xmlDoc))
	if err != nil {
		return nil, err
	}
	chain, err := model.Chain(root, tip)
	if err != nil {
		return nil, err
	}
	c.models[key] = model
	c.chains[key] = chain
	return chain, nil
}

func evalUrdfFk(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	chain, err := ctx.rt.urdf.chainFor(ctx.textParam("xml"), ctx.textParam("root"), ctx.textParam("tip"))
	if err != nil {
		return nil, nil, toGraphErr(ctx, err)
	}
	angles := recordToAngles(ctx.ins["angles"])
	pose := ikrig.Solve(chain, angles)
	return map[string]motionrig.Value{
		"pose":        poseToTransform(pose),
		"joint_names": jointNamesValue(chain),
	}, nil, nil
}

func evalUrdfIkPosition(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	chain, err := ctx.rt.urdf.chainFor(ctx.textParam("xml"), ctx.textParam("root"), ctx.textParam("tip"))
	if err != nil {
		return nil, nil, toGraphErr(ctx, err)
	}
	tx, ty, tz := ctx.ins["target"].AsVec3()
	cfg := ikrig.SolveConfig{
		MaxIters: int(ctx.scalarParam("max_iters", 100)),
		TolPos:   ctx.scalarParam("tol_pos", 1e-4),
		Weights:  paramFloatSlice(ctx, "weights"),
		Seed:     paramFloatSlice(ctx, "seed"),
	}
	angles, err := ikrig.SolvePosition(chain, ikrig.Vec3{X: tx, Y: ty, Z: tz}, cfg)
	var sf *ikrig.SolverFailure
	if errors.As(err, &sf) {
		return map[string]motionrig.Value{"joint_angles": anglesToRecord(sf.Angles)}, nil,
			taggedErr(motionrig.ErrSolverFailed, map[string]any{"node": ctx.node.ID, "residual": sf.Residual},
				"graph: node %q IK did not converge (residual %f)", ctx.node.ID, sf.Residual)
	}
	if err != nil {
		return nil, nil, toGraphErr(ctx, err)
	}
	return map[string]motionrig.Value{"joint_angles": anglesToRecord(angles)}, nil, nil
}

func evalUrdfIkPose(ctx *evalContext) (map[string]motionrig.Value, map[string]motionrig.Shape, error) {
	chain, err := ctx.rt.urdf.chainFor(ctx.textParam("xml"), ctx.textParam("root"), ctx.textParam("tip"))
	if err != nil {
		return nil, nil, toGraphErr(ctx, err)
	}
	px, py, pz := ctx.ins["target_pos"].AsVec3()
	rq := ctx.ins["target_rot"].AsQuat()
	cfg := ikrig.SolveConfig{
		MaxIters: int(ctx.scalarParam("max_iters", 100)),
		TolPos:   ctx.scalarParam("tol_pos", 1e-4),
		TolRot:   ctx.scalarParam("tol_rot", 1e-3),
		Weights:  paramFloatSlice(ctx, "weights"),
		Seed:     paramFloatSlice(ctx, "seed"),
	}
	angles, err := ikrig.SolvePose(chain, ikrig.Vec3{X: px, Y: py, Z: pz}, ikrig.Quat{X: rq.X, Y: rq.Y, Z: rq.Z, W: rq.W}, cfg)
	var sf *ikrig.SolverFailure
	if errors.As(err, &sf) {
		return map[string]motionrig.Value{"joint_angles": anglesToRecord(sf.Angles)}, nil,
			taggedErr(motionrig.ErrSolverFailed, map[string]any{"node": ctx.node.ID, "residual": sf.Residual},
				"graph: node %q IK did not converge (residual %f)", ctx.node.ID, sf.Residual)
	}
	if err != nil {
		return nil, nil, toGraphErr(ctx, err)
	}
	return map[string]motionrig.Value{"joint_angles": anglesToRecord(angles)}, nil, nil
}

func toGraphErr(ctx *evalContext, err error) error {
	tag := motionrig.ErrInvalidArg
	switch {
	case errors.Is(err, ikrig.ErrParse):
		tag = motionrig.ErrParse
	case errors.Is(err, ikrig.ErrNotFound):
		tag = motionrig.ErrNotFound
	}
	return taggedErr(tag, map[string]any{"node": ctx.node.ID}, "graph: node %q: %v", ctx.node.ID, err)
}

func anglesToRecord(angles map[string]float32) motionrig.Value {
	fields := make([]motionrig.RecordField, 0, len(angles))
	for name, a := range angles {
		fields = append(fields, motionrig.RecordField{Key: name, Value: motionrig.NewScalar(a)})
	}
	return motionrig.NewRecord(fields)
}

func recordToAngles(v motionrig.Value) map[string]float32 {
	out := make(map[string]float32)
	for _, f := range v.AsRecord() {
		out[f.Key] = f.Value.AsScalar()
	}
	return out
}

func poseToTransform(p ikrig.Pose) motionrig.Value {
	return motionrig.NewTransform(motionrig.Transform{
		Translation: [3]float32{p.Translation.X, p.Translation.Y, p.Translation.Z},
		Rotation:    motionrig.Quat{X: p.Rotation.X, Y: p.Rotation.Y, Z: p.Rotation.Z, W: p.Rotation.W},
		Scale:       [3]float32{1, 1, 1},
	})
}

func jointNamesValue(chain []ikrig.Joint) motionrig.Value {
	items := make([]motionrig.Value, len(chain))
	for i, j := range chain {
		items[i] = motionrig.NewText(j.Name)
	}
	return motionrig.NewArray(items)
}

func paramFloatSlice(ctx *evalContext, name string) []float32 {
	v, ok := ctx.param(name)
	if !ok {
		return nil
	}
	return v.FlattenInto(nil)
}
