package board

import motionrig "github.com/riglab/motionrig"

// BuildInputs scans the board for anim/player-namespaced entries and
// translates them into queued Engine commands (spec §4.2: "Animation
// controllers interpret specially namespaced board writes as player/
// instance commands using §4.2 accessors"). Entries are visited in
// ascending path order for determinism (spec §5); that order becomes the
// returned Inputs' command order.
func BuildInputs(b *Board) motionrig.Inputs {
	var in motionrig.Inputs
	for _, path := range b.sortedPaths() {
		entry, _ := b.Entry(path)
		pid, iid, field, ok := path.IsAnimPlayer()
		if !ok || field == "" {
			continue
		}
		if isInstancePath(path) {
			if upd, ok := instanceUpdateFor(iid, field, entry.Value); ok {
				in.InstanceUpdates = append(in.InstanceUpdates, upd)
			}
			continue
		}
		if cmd, ok := playerCmdFor(pid, field, entry.Value); ok {
			in.PlayerCmds = append(in.PlayerCmds, cmd)
		}
	}
	return in
}

// isInstancePath reports whether p addresses an instance-level field
// ("anim/player/<pid>/instance/<iid>/<field>") rather than a player-level
// one, by re-examining the segment p.IsAnimPlayer already validated.
func isInstancePath(p motionrig.TypedPath) bool {
	return len(p.Segments) >= 3 && p.Segments[2] == "instance"
}

func playerCmdFor(pid uint32, field string, v motionrig.Value) (motionrig.PlayerCmd, bool) {
	switch field {
	case "play":
		return motionrig.PlayerCmd{PlayerID: pid, Kind: motionrig.CmdPlay}, true
	case "pause":
		return motionrig.PlayerCmd{PlayerID: pid, Kind: motionrig.CmdPause}, true
	case "stop":
		return motionrig.PlayerCmd{PlayerID: pid, Kind: motionrig.CmdStop}, true
	case "seek":
		return motionrig.PlayerCmd{PlayerID: pid, Kind: motionrig.CmdSeek, SeekTime: v.AsScalar()}, true
	case "speed":
		return motionrig.PlayerCmd{PlayerID: pid, Kind: motionrig.CmdSetSpeed, Speed: v.AsScalar()}, true
	case "loop_mode":
		return motionrig.PlayerCmd{PlayerID: pid, Kind: motionrig.CmdSetLoopMode, LoopMode: parseLoopMode(v.AsText())}, true
	case "window":
		from, to := v.AsVec2()
		return motionrig.PlayerCmd{PlayerID: pid, Kind: motionrig.CmdSetWindow, WindowFrom: from, WindowTo: to, HasWindowTo: true}, true
	default:
		return motionrig.PlayerCmd{}, false
	}
}

func instanceUpdateFor(iid uint32, field string, v motionrig.Value) (motionrig.InstanceUpdate, bool) {
	switch field {
	case "weight":
		return motionrig.InstanceUpdate{InstanceID: iid, SetWeight: true, Weight: v.AsScalar()}, true
	case "time_scale":
		return motionrig.InstanceUpdate{InstanceID: iid, SetTimeScale: true, TimeScale: v.AsScalar()}, true
	case "start_offset":
		return motionrig.InstanceUpdate{InstanceID: iid, SetStartOffset: true, StartOffset: v.AsScalar()}, true
	case "enabled":
		return motionrig.InstanceUpdate{InstanceID: iid, SetEnabled: true, Enabled: v.AsBool()}, true
	default:
		return motionrig.InstanceUpdate{}, false
	}
}

func parseLoopMode(s string) motionrig.LoopMode {
	switch s {
	case "loop":
		return motionrig.Loop
	case "pingpong":
		return motionrig.PingPong
	default:
		return motionrig.Once
	}
}
