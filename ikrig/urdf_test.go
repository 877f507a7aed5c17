package ikrig

import (
	"math"
	"testing"
)

const twoLinkArmURDF = `<?xml version="1.0"?>
<robot name="arm">
  <link name="base"/>
  <link name="link1"/>
  <link name="link2"/>
  <link name="ee"/>
  <joint name="j1" type="revolute">
    <parent link="base"/>
    <child link="link1"/>
    <origin xyz="0 0 0"/>
    <axis xyz="0 0 1"/>
    <limit lower="-3.1416" upper="3.1416"/>
  </joint>
  <joint name="j2" type="revolute">
    <parent link="link1"/>
    <child link="link2"/>
    <origin xyz="1 0 0"/>
    <axis xyz="0 0 1"/>
    <limit lower="-3.1416" upper="3.1416"/>
  </joint>
  <joint name="j3" type="fixed">
    <parent link="link2"/>
    <child link="ee"/>
    <origin xyz="1 0 0"/>
  </joint>
</robot>`

func TestParseURDFRejectsEmpty(t *testing.T) {
	if _, err := ParseURDF(nil); err == nil {
		t.Fatal("expected an error for an empty URDF document")
	}
}

func TestParseURDFRejectsMalformed(t *testing.T) {
	if _, err := ParseURDF([]byte(`not xml`)); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestParseURDFJointCount(t *testing.T) {
	m, err := ParseURDF([]byte(twoLinkArmURDF))
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Joints) != 3 {
		t.Fatalf("got %d joints, want 3", len(m.Joints))
	}
}

func TestModelChainOrdersRootToTip(t *testing.T) {
	m, err := ParseURDF([]byte(twoLinkArmURDF))
	if err != nil {
		t.Fatal(err)
	}
	chain, err := m.Chain("base", "ee")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"j1", "j2", "j3"}
	if len(chain) != len(want) {
		t.Fatalf("got %d joints in chain, want %d", len(chain), len(want))
	}
	for i, name := range want {
		if chain[i].Name != name {
			t.Errorf("chain[%d] = %q, want %q", i, chain[i].Name, name)
		}
	}
}

func TestModelChainUnreachableTipFails(t *testing.T) {
	m, err := ParseURDF([]byte(twoLinkArmURDF))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Chain("base", "nonexistent"); err == nil {
		t.Fatal("expected an error for an unreachable tip link")
	}
}

// TestParseOriginWithoutRPYDefaultsToIdentity guards against origin.Rotation
// silently ending up as a zero quaternion: a joint with no <origin rpy=...>
// must parse as IdentityQuat, not Go's zero Quat{0,0,0,0} (which composes to
// zero and collapses the whole downstream chain).
func TestParseOriginWithoutRPYDefaultsToIdentity(t *testing.T) {
	origin, err := parseOrigin(xmlOrigin{XYZ: "1 2 3"})
	if err != nil {
		t.Fatal(err)
	}
	if !approxVec(origin.Translation, Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("translation = %+v, want (1,2,3)", origin.Translation)
	}
	if !approxQuat(origin.Rotation, IdentityQuat()) {
		t.Errorf("rotation = %+v, want identity (no rpy given)", origin.Rotation)
	}
}

// TestParseOriginWithRPYRotatesAroundZ checks rpy parsing itself: a pure
// yaw of pi/2 about Z should rotate (1,0,0) to (0,1,0).
func TestParseOriginWithRPYRotatesAroundZ(t *testing.T) {
	origin, err := parseOrigin(xmlOrigin{RPY: "0 0 1.5707963"})
	if err != nil {
		t.Fatal(err)
	}
	rotated := rotateVec(origin.Rotation, Vec3{X: 1})
	if !approxVec(rotated, Vec3{Y: 1}) {
		t.Errorf("rotated (1,0,0) by rpy yaw pi/2 = %+v, want (0,1,0)", rotated)
	}
}

func approxQuat(a, b Quat) bool {
	const eps = 1e-3
	return math.Abs(float64(a.X-b.X)) < eps && math.Abs(float64(a.Y-b.Y)) < eps &&
		math.Abs(float64(a.Z-b.Z)) < eps && math.Abs(float64(a.W-b.W)) < eps
}
