package motionrig

import (
	"fmt"
	"strconv"
	"strings"
)

// TypedPath is the canonical destination identifier described in spec §3/§4.2
// (e.g. "anim/player/<pid>/instance/<iid>/<field>", "robot/Arm/ik_target").
// It holds a Segments slice, so it is not comparable and cannot itself be a
// map key; String() returns the canonical string for keyed lookups.
type TypedPath struct {
	raw       string
	Namespace string
	Segments  []string
}

// ParsePath splits a canonical path string into namespace + segments.
// The first '/'-delimited token is the namespace; the rest are segments.
// An empty string is rejected.
func ParsePath(s string) (TypedPath, error) {
	if s == "" {
		return TypedPath{}, newErr(ErrParse, nil, "%v: empty path", ErrParse)
	}
	parts := strings.Split(s, "/")
	return TypedPath{raw: s, Namespace: parts[0], Segments: parts[1:]}, nil
}

// MustPath parses s and panics on error. Intended for tests and literal
// construction of well-known paths, never for host input.
func MustPath(s string) TypedPath {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the canonical path string.
func (p TypedPath) String() string { return p.raw }

// IsAnimPlayer reports whether p addresses an animation player/instance
// command of the form "anim/player/<pid>/instance/<iid>/<field>" or
// "anim/player/<pid>/<field>", and extracts the parsed pieces. Used by the
// orchestrator (board §4.2/§4.10) to route board writes into Engine commands.
func (p TypedPath) IsAnimPlayer() (playerID, instanceID uint32, field string, ok bool) {
	if p.Namespace != "anim" || len(p.Segments) < 2 || p.Segments[0] != "player" {
		return 0, 0, "", false
	}
	pid, err := strconv.ParseUint(p.Segments[1], 10, 32)
	if err != nil {
		return 0, 0, "", false
	}
	rest := p.Segments[2:]
	if len(rest) >= 3 && rest[0] == "instance" {
		iid, err := strconv.ParseUint(rest[1], 10, 32)
		if err != nil {
			return 0, 0, "", false
		}
		return uint32(pid), uint32(iid), strings.Join(rest[2:], "/"), true
	}
	if len(rest) >= 1 {
		return uint32(pid), 0, strings.Join(rest, "/"), true
	}
	return uint32(pid), 0, "", false
}

// AnimPlayerPath builds the canonical path for a player-level field.
func AnimPlayerPath(playerID uint32, field string) TypedPath {
	s := fmt.Sprintf("anim/player/%d/%s", playerID, field)
	return MustPath(s)
}

// AnimInstancePath builds the canonical path for an instance-level field.
func AnimInstancePath(playerID, instanceID uint32, field string) TypedPath {
	s := fmt.Sprintf("anim/player/%d/instance/%d/%s", playerID, instanceID, field)
	return MustPath(s)
}

// OutputKey is an opaque destination key produced by Prebind: either the
// canonical path string (when unresolved) or a host-chosen integer.
type OutputKey struct {
	str    string
	num    uint64
	isNum  bool
}

func StringKey(s string) OutputKey  { return OutputKey{str: s} }
func IntKey(n uint64) OutputKey     { return OutputKey{num: n, isNum: true} }

// String renders the key for debugging/logging; integer keys render as
// decimal text.
func (k OutputKey) String() string {
	if k.isNum {
		return strconv.FormatUint(k.num, 10)
	}
	return k.str
}

// Resolver maps a canonical track path to a host-chosen opaque key during
// Prebind (spec §4.6). Returning ok=false leaves the canonical string as the
// key.
type Resolver func(path string) (OutputKey, bool)

// IdentityResolver returns a Resolver that never resolves — every path keeps
// its canonical string as its output key. Useful for tests and hosts that
// don't need opaque-key prebinding.
func IdentityResolver() Resolver {
	return func(string) (OutputKey, bool) { return OutputKey{}, false }
}
