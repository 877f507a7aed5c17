package ikrig

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// xmlRobot/xmlJoint/xmlOrigin/xmlAxis mirror the subset of the URDF schema
// FK/IK needs (link names are only used to find the root/tip chain; visual,
// collision, and inertial elements are ignored — this package computes
// kinematics, not rendering or physics).
type xmlRobot struct {
	Name   string     `xml:"name,attr"`
	Links  []xmlLink  `xml:"link"`
	Joints []xmlJoint `xml:"joint"`
}

type xmlLink struct {
	Name string `xml:"name,attr"`
}

type xmlJoint struct {
	Name   string    `xml:"name,attr"`
	Type   string    `xml:"type,attr"`
	Parent xmlLinkRef `xml:"parent"`
	Child  xmlLinkRef `xml:"child"`
	Origin xmlOrigin  `xml:"origin"`
	Axis   xmlAxis    `xml:"axis"`
	Limit  *xmlLimit  `xml:"limit"`
}

type xmlLinkRef struct {
	Link string `xml:"link,attr"`
}

type xmlOrigin struct {
	XYZ string `xml:"xyz,attr"`
	RPY string `xml:"rpy,attr"`
}

type xmlAxis struct {
	XYZ string `xml:"xyz,attr"`
}

type xmlLimit struct {
	Lower float32 `xml:"lower,attr"`
	Upper float32 `xml:"upper,attr"`
}

// ParseURDF parses a URDF document into a Model (spec §4.9: "UrdfFk parses
// URDF once per (xml, root, tip) triple"). An empty document is rejected
// per spec §7's "empty URDF errors".
func ParseURDF(data []byte) (*Model, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: empty URDF document", ErrInvalidArg)
	}
	var doc xmlRobot
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse URDF: %v", ErrParse, err)
	}

	joints := make([]Joint, 0, len(doc.Joints))
	for _, xj := range doc.Joints {
		origin, err := parseOrigin(xj.Origin)
		if err != nil {
			return nil, err
		}
		axis, err := parseAxis(xj.Axis)
		if err != nil {
			return nil, err
		}
		j := Joint{
			Name:   xj.Name,
			Type:   parseJointType(xj.Type),
			Parent: xj.Parent.Link,
			Child:  xj.Child.Link,
			Origin: origin,
			Axis:   axis,
		}
		if xj.Limit != nil {
			j.HasLimits = true
			j.LowerLimit = xj.Limit.Lower
			j.UpperLimit = xj.Limit.Upper
		}
		joints = append(joints, j)
	}
	if len(joints) == 0 {
		return nil, fmt.Errorf("%w: URDF document has no joints", ErrInvalidArg)
	}
	return &Model{Name: doc.Name, Joints: joints}, nil
}

func parseJointType(s string) JointType {
	switch s {
	case "revolute":
		return JointRevolute
	case "continuous":
		return JointContinuous
	case "prismatic":
		return JointPrismatic
	default:
		return JointFixed
	}
}

// parseOrigin reads a joint's <origin xyz="..." rpy="..."/>, defaulting
// each half independently per the URDF spec: xyz defaults to the zero
// vector, rpy defaults to no rotation. Rotation must default to
// IdentityQuat (W=1), not a zero-value Quat — a zero quaternion is not a
// valid rotation and collapses every composePose it touches.
func parseOrigin(o xmlOrigin) (Pose, error) {
	translation := Vec3{}
	if o.XYZ != "" {
		var err error
		translation, err = parseVec3(o.XYZ)
		if err != nil {
			return Pose{}, err
		}
	}
	rotation := IdentityQuat()
	if o.RPY != "" {
		rpy, err := parseVec3(o.RPY)
		if err != nil {
			return Pose{}, err
		}
		rotation = eulerToQuat(rpy)
	}
	return Pose{Translation: translation, Rotation: rotation}, nil
}

// eulerToQuat converts URDF roll-pitch-yaw (extrinsic XYZ, radians) to a
// quaternion: R = Rz(yaw) * Ry(pitch) * Rx(roll).
func eulerToQuat(rpy Vec3) Quat {
	roll := quatFromAxisAngle(Vec3{X: 1}, rpy.X)
	pitch := quatFromAxisAngle(Vec3{Y: 1}, rpy.Y)
	yaw := quatFromAxisAngle(Vec3{Z: 1}, rpy.Z)
	return mulQuat(yaw, mulQuat(pitch, roll))
}

func parseAxis(a xmlAxis) (Vec3, error) {
	if a.XYZ == "" {
		return Vec3{X: 1}, nil
	}
	return parseVec3(a.XYZ)
}

func parseVec3(s string) (Vec3, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return Vec3{}, fmt.Errorf("%w: expected 3 components in %q", ErrParse, s)
	}
	vals := make([]float32, 3)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return Vec3{}, fmt.Errorf("%w: %v", ErrParse, err)
		}
		vals[i] = float32(v)
	}
	return Vec3{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}

// Chain orders the joints from root to tip by following parent/child link
// names, the path FK/IK actually walk.
func (m *Model) Chain(root, tip string) ([]Joint, error) {
	childToJoint := make(map[string]Joint, len(m.Joints))
	for _, j := range m.Joints {
		childToJoint[j.Child] = j
	}
	var chain []Joint
	cur := tip
	for cur != root {
		j, ok := childToJoint[cur]
		if !ok {
			return nil, fmt.Errorf("%w: no path from %q to %q (stuck at link %q)", ErrNotFound, root, tip, cur)
		}
		chain = append([]Joint{j}, chain...)
		cur = j.Parent
	}
	return chain, nil
}
