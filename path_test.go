package motionrig

import "testing"

func TestParsePathSplitsNamespaceAndSegments(t *testing.T) {
	p, err := ParsePath("anim/player/3/instance/7/weight")
	if err != nil {
		t.Fatal(err)
	}
	if p.Namespace != "anim" {
		t.Errorf("Namespace = %q, want %q", p.Namespace, "anim")
	}
	if len(p.Segments) != 5 {
		t.Fatalf("Segments = %v, want 5 entries", p.Segments)
	}
	if p.String() != "anim/player/3/instance/7/weight" {
		t.Errorf("String() = %q", p.String())
	}
}

func TestParsePathRejectsEmpty(t *testing.T) {
	if _, err := ParsePath(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestIsAnimPlayerInstancePath(t *testing.T) {
	p := MustPath("anim/player/3/instance/7/weight")
	pid, iid, field, ok := p.IsAnimPlayer()
	if !ok {
		t.Fatal("expected IsAnimPlayer to match")
	}
	if pid != 3 || iid != 7 || field != "weight" {
		t.Errorf("got pid=%d iid=%d field=%q, want 3,7,weight", pid, iid, field)
	}
}

func TestIsAnimPlayerTopLevelField(t *testing.T) {
	p := MustPath("anim/player/3/speed")
	pid, iid, field, ok := p.IsAnimPlayer()
	if !ok {
		t.Fatal("expected IsAnimPlayer to match player-level field")
	}
	if pid != 3 || iid != 0 || field != "speed" {
		t.Errorf("got pid=%d iid=%d field=%q, want 3,0,speed", pid, iid, field)
	}
}

func TestIsAnimPlayerRejectsOtherNamespace(t *testing.T) {
	p := MustPath("robot/arm/ik_target")
	if _, _, _, ok := p.IsAnimPlayer(); ok {
		t.Fatal("expected non-anim namespace to not match IsAnimPlayer")
	}
}

func TestAnimPathBuilders(t *testing.T) {
	if got := AnimPlayerPath(3, "speed").String(); got != "anim/player/3/speed" {
		t.Errorf("AnimPlayerPath = %q", got)
	}
	if got := AnimInstancePath(3, 7, "weight").String(); got != "anim/player/3/instance/7/weight" {
		t.Errorf("AnimInstancePath = %q", got)
	}
}

func TestIdentityResolverNeverResolves(t *testing.T) {
	r := IdentityResolver()
	if _, ok := r("anything"); ok {
		t.Fatal("IdentityResolver should never resolve")
	}
}

func TestOutputKeyStringForms(t *testing.T) {
	if StringKey("foo").String() != "foo" {
		t.Error("StringKey.String() mismatch")
	}
	if IntKey(42).String() != "42" {
		t.Error("IntKey.String() mismatch")
	}
}
