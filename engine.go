package motionrig

import (
	"math"
	"sort"
)

// Change is one destination's blended output value for this tick
// (spec §4.6). Derivative is populated only by TickWithDerivatives.
type Change struct {
	Player     PlayerID
	Key        OutputKey
	Value      Value
	Derivative *Value
}

// Outputs is the result of a Tick call (spec §4.6): the ordered set of
// Changes plus drained lifecycle/warning Events.
type Outputs struct {
	Changes []Change
	Events  []Event
}

// Engine owns a clip store, player registry, and scratch buffers exclusively
// (spec §5/§9). It is single-threaded cooperative: no public call suspends,
// and a single Engine must be owned by exactly one goroutine at a time.
// Arena + index: players and instances are both stored by id in flat maps,
// with no back-pointers, replacing the teacher's parent-pointer Node tree
// (node.go) for the same reason spec §9 prescribes it — removal by id
// without dangling references.
type Engine struct {
	config EngineConfig
	// Debug is a host-settable flag that the Engine does not read:
	// PerformanceWarning/Warning events are returned in Outputs only, and
	// nothing is written to stderr.
	Debug bool

	clips      map[ClipID]AnimationData
	nextClipID uint32

	players      map[PlayerID]*Player
	nextPlayerID uint32

	instances      map[InstanceID]*Instance
	nextInstanceID uint32

	outputKeys map[string]OutputKey // resolved by the last Prebind call

	// scratch is reused across ticks per spec §5 ("no allocator blocking").
	scratch struct {
		contribs map[string][]Contribution
		events   []Event
	}
}

// NewEngine constructs an Engine with the given configuration.
func NewEngine(cfg EngineConfig) *Engine {
	cfg = cfg.applyDefaults()
	e := &Engine{
		config:     cfg,
		clips:      make(map[ClipID]AnimationData),
		players:    make(map[PlayerID]*Player),
		instances:  make(map[InstanceID]*Instance),
		outputKeys: make(map[string]OutputKey),
	}
	e.scratch.contribs = make(map[string][]Contribution, cfg.ScratchContributionCap)
	return e
}

// LoadClip validates and stores data, returning its ClipID.
func (e *Engine) LoadClip(data AnimationData) (ClipID, error) {
	if err := data.Validate(); err != nil {
		return 0, err
	}
	e.nextClipID++
	id := ClipID(e.nextClipID)
	e.clips[id] = data
	return id, nil
}

// UnloadClip removes a clip, auto-detaching (removing) every instance that
// referenced it (spec §4.6). Reports whether the clip existed.
func (e *Engine) UnloadClip(id ClipID) bool {
	if _, ok := e.clips[id]; !ok {
		return false
	}
	delete(e.clips, id)
	for iid, inst := range e.instances {
		if inst.ClipID == id {
			e.detachInstance(iid)
		}
	}
	return true
}

func (e *Engine) detachInstance(id InstanceID) {
	inst, ok := e.instances[id]
	if !ok {
		return
	}
	if p, ok := e.players[inst.PlayerID]; ok {
		p.Instances = removeID(p.Instances, id)
	}
	delete(e.instances, id)
}

func removeID(ids []InstanceID, target InstanceID) []InstanceID {
	for i, id := range ids {
		if id == target {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// CreatePlayer creates a new Stopped player and returns its id.
func (e *Engine) CreatePlayer(name string) PlayerID {
	e.nextPlayerID++
	id := PlayerID(e.nextPlayerID)
	e.players[id] = newPlayer(id, name)
	return id
}

// RemovePlayer removes a player and all of its instances (spec §3: "Instance
// lifetime is bounded by its player; dropping a player drops all
// instances."). Reports whether the player existed.
func (e *Engine) RemovePlayer(id PlayerID) bool {
	p, ok := e.players[id]
	if !ok {
		return false
	}
	for _, iid := range p.Instances {
		delete(e.instances, iid)
	}
	delete(e.players, id)
	return true
}

// AddInstance binds clipID to playerID with cfg, returning the new
// InstanceID. Returns ErrNotFound if either id is unknown.
func (e *Engine) AddInstance(playerID PlayerID, clipID ClipID, cfg InstanceCfg) (InstanceID, error) {
	p, ok := e.players[playerID]
	if !ok {
		return 0, newErr(ErrNotFound, map[string]any{"player": playerID}, "%v: player %d", ErrNotFound, playerID)
	}
	if _, ok := e.clips[clipID]; !ok {
		return 0, newErr(ErrNotFound, map[string]any{"clip": clipID}, "%v: clip %d", ErrNotFound, clipID)
	}
	cfg = cfg.applyDefaults()
	e.nextInstanceID++
	id := InstanceID(e.nextInstanceID)
	e.instances[id] = &Instance{
		ID: id, PlayerID: playerID, ClipID: clipID,
		Weight: cfg.Weight, TimeScale: cfg.TimeScale,
		StartOffset: cfg.StartOffset, Enabled: cfg.Enabled,
	}
	p.Instances = append(p.Instances, id)
	return id, nil
}

// RemoveInstance detaches an instance from its player. Reports whether it
// existed.
func (e *Engine) RemoveInstance(id InstanceID) bool {
	if _, ok := e.instances[id]; !ok {
		return false
	}
	e.detachInstance(id)
	return true
}

// Prebind resolves every loaded clip's canonical track paths into opaque
// output keys via resolver, once per binding epoch (spec §4.6). Unresolved
// paths retain their canonical string as key.
func (e *Engine) Prebind(resolver Resolver) {
	seen := make(map[string]bool)
	for _, clip := range e.clips {
		for _, tr := range clip.Tracks {
			if seen[tr.Path] {
				continue
			}
			seen[tr.Path] = true
			if key, ok := resolver(tr.Path); ok {
				e.outputKeys[tr.Path] = key
			} else {
				e.outputKeys[tr.Path] = StringKey(tr.Path)
			}
		}
	}
}

func (e *Engine) outputKeyFor(path string) OutputKey {
	if k, ok := e.outputKeys[path]; ok {
		return k
	}
	return StringKey(path)
}

// sortedPlayerIDs returns player ids in ascending order (spec §4.6/§5: "in
// stable id order").
func (e *Engine) sortedPlayerIDs() []PlayerID {
	ids := make([]PlayerID, 0, len(e.players))
	for id := range e.players {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortedInstanceIDs(ids []InstanceID) []InstanceID {
	out := append([]InstanceID(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// applyInputs applies queued commands in array order before stepping
// (spec §5). Commands targeting unknown ids produce a Warning event instead
// of mutating state or aborting the tick.
func (e *Engine) applyInputs(in Inputs) []Event {
	var events []Event
	for _, cmd := range in.PlayerCmds {
		p, ok := e.players[PlayerID(cmd.PlayerID)]
		if !ok {
			events = append(events, Event{Kind: EventWarning, Message: "player command targets unknown id",
				Fields: map[string]any{"player": cmd.PlayerID, "tag": "NotFound"}})
			continue
		}
		events = append(events, applyPlayerCmd(p, cmd, e.effectivePlayerEnd(p))...)
	}
	for _, upd := range in.InstanceUpdates {
		inst, ok := e.instances[InstanceID(upd.InstanceID)]
		if !ok {
			events = append(events, Event{Kind: EventWarning, Message: "instance update targets unknown id",
				Fields: map[string]any{"instance": upd.InstanceID, "tag": "NotFound"}})
			continue
		}
		if upd.SetWeight {
			inst.Weight = upd.Weight
		}
		if upd.SetTimeScale {
			inst.TimeScale = upd.TimeScale
		}
		if upd.SetStartOffset {
			inst.StartOffset = upd.StartOffset
		}
		if upd.SetEnabled {
			inst.Enabled = upd.Enabled
		}
	}
	return events
}

// effectivePlayerEnd derives the player's window end when WindowEnd is nil:
// the longest reach among its enabled instances, start_offset + clip
// duration / time_scale (an Open Question the original spec leaves
// implementation-defined; documented in DESIGN.md).
func (e *Engine) effectivePlayerEnd(p *Player) float32 {
	if p.WindowEnd != nil {
		return *p.WindowEnd
	}
	end := p.WindowStart
	for _, iid := range p.Instances {
		inst, ok := e.instances[iid]
		if !ok || !inst.Enabled {
			continue
		}
		clip, ok := e.clips[inst.ClipID]
		if !ok {
			continue
		}
		scale := inst.TimeScale
		if scale == 0 {
			continue
		}
		reach := inst.StartOffset + clip.Duration/absF32(scale)
		if reach > end {
			end = reach
		}
	}
	return end
}

// Tick advances the engine by dt seconds, applying in's commands first, then
// stepping every player and sampling every enabled instance's tracks,
// blending per destination, and assembling Outputs (spec §4.6 tick
// algorithm steps 1-5).
func (e *Engine) Tick(dt float32, in Inputs) Outputs {
	events := e.applyInputs(in)

	for k := range e.scratch.contribs {
		delete(e.scratch.contribs, k)
	}

	playerIDs := e.sortedPlayerIDs()
	for _, pid := range playerIDs {
		p := e.players[pid]
		effEnd := e.effectivePlayerEnd(p)
		events = append(events, stepPlayer(p, dt, effEnd)...)
	}

	var kindOf = make(map[string]Kind, len(e.scratch.contribs))
	var destOrder []string
	mismatchedDest := make(map[string]bool)

	for _, pid := range playerIDs {
		p := e.players[pid]
		for _, iid := range sortedInstanceIDs(p.Instances) {
			inst, ok := e.instances[iid]
			if !ok || !inst.Enabled {
				continue
			}
			clip, ok := e.clips[inst.ClipID]
			if !ok {
				continue
			}
			localT := instanceLocalTime(inst, p.LocalTime, clip.Duration)
			for _, tr := range clip.Tracks {
				if !sampleable(tr.Kind) {
					continue
				}
				val, ok := SampleTrack(tr, localT)
				if !ok {
					continue
				}
				if existing, seen := kindOf[tr.Path]; seen && existing != tr.Kind {
					mismatchedDest[tr.Path] = true
					continue
				}
				if _, seen := kindOf[tr.Path]; !seen {
					kindOf[tr.Path] = tr.Kind
					destOrder = append(destOrder, tr.Path)
				}
				e.scratch.contribs[tr.Path] = append(e.scratch.contribs[tr.Path], Contribution{Weight: inst.Weight, Value: val})
			}
		}
	}

	var changes []Change
	for _, path := range destOrder {
		if mismatchedDest[path] {
			events = append(events, e.mixedKindEvent(path))
			continue
		}
		blended, ok, mismatched := BlendContributions(e.scratch.contribs[path])
		if mismatched {
			events = append(events, e.mixedKindEvent(path))
			continue
		}
		if !ok {
			continue
		}
		changes = append(changes, Change{Key: e.outputKeyFor(path), Value: blended})
	}

	events = e.applyEventBackpressure(events)
	return Outputs{Changes: changes, Events: events}
}

// mixedKindEvent reports a destination with disagreeing value kinds this
// tick. Tick never aborts mid-call, so StrictMixedKinds cannot turn this into
// a call-aborting error; instead it tags the event with ErrShapeMismatch
// instead of the default soft ErrWarning, so hosts that configured strict
// mode can treat it as fatal on their side (spec §4.4/§9 "deployment
// choice").
func (e *Engine) mixedKindEvent(path string) Event {
	tag := ErrWarning
	if e.config.StrictMixedKinds {
		tag = ErrShapeMismatch
	}
	return Event{Kind: EventWarning, Message: "mixed value kinds at destination",
		Fields: map[string]any{"path": path, "tag": tag.Error()}}
}

// applyEventBackpressure enforces MaxEventsPerTick (spec §4.6): oldest
// events are dropped, and a PerformanceWarning replaces them.
func (e *Engine) applyEventBackpressure(events []Event) []Event {
	max := e.config.MaxEventsPerTick
	if len(events) <= max {
		return events
	}
	dropped := len(events) - max + 1
	kept := append([]Event{{Kind: EventPerformanceWarning,
		Message: "event queue overflow: oldest events dropped",
		Fields:  map[string]any{"dropped": dropped}}}, events[dropped:]...)
	return kept
}

// TickWriteBatch performs the same stepping as Tick, but surfaces changes as
// WriteOps routed by canonical TypedPath instead of a prebound OutputKey
// (spec §4.6).
func (e *Engine) TickWriteBatch(dt float32, in Inputs) (WriteBatch, []Event) {
	out := e.Tick(dt, in)
	var batch WriteBatch
	for _, c := range out.Changes {
		p, err := ParsePath(c.Key.String())
		if err != nil {
			continue
		}
		batch.Append(WriteOp{Path: p, Value: c.Value, Shape: ShapeOf(c.Value), HasShape: true})
	}
	return batch, out.Events
}

// TickWithDerivatives performs Tick and additionally populates each Change's
// Derivative via a symmetric finite-difference pass at ±ε around each
// instance's local time (spec §4.6). Quaternion derivatives are computed
// componentwise — a documented approximation; the angular-velocity log-map
// upgrade is out of scope (spec §9). Non-numeric kinds (Bool/Text) yield a
// nil Derivative.
func (e *Engine) TickWithDerivatives(dt float32, in Inputs) Outputs {
	out := e.Tick(dt, in)
	eps := e.config.DerivativeEpsilon

	plus := make(map[string][]Contribution, len(e.scratch.contribs))
	minus := make(map[string][]Contribution, len(e.scratch.contribs))
	for _, pid := range e.sortedPlayerIDs() {
		p := e.players[pid]
		for _, iid := range sortedInstanceIDs(p.Instances) {
			inst, ok := e.instances[iid]
			if !ok || !inst.Enabled {
				continue
			}
			clip, ok := e.clips[inst.ClipID]
			if !ok {
				continue
			}
			localT := instanceLocalTime(inst, p.LocalTime, clip.Duration)
			for _, tr := range clip.Tracks {
				if !sampleable(tr.Kind) || tr.Kind == KindBool || tr.Kind == KindText {
					continue
				}
				if vp, ok := SampleTrack(tr, localT+eps); ok {
					plus[tr.Path] = append(plus[tr.Path], Contribution{Weight: inst.Weight, Value: vp})
				}
				if vm, ok := SampleTrack(tr, localT-eps); ok {
					minus[tr.Path] = append(minus[tr.Path], Contribution{Weight: inst.Weight, Value: vm})
				}
			}
		}
	}

	for i := range out.Changes {
		path := out.Changes[i].Key.String()
		pVal, pOK, pMismatch := BlendContributions(plus[path])
		mVal, mOK, mMismatch := BlendContributions(minus[path])
		if !pOK || !mOK || pMismatch || mMismatch {
			continue
		}
		d := finiteDifference(pVal, mVal, 2*eps)
		out.Changes[i].Derivative = &d
	}
	return out
}

func finiteDifference(plus, minus Value, denom float32) Value {
	pb := plus.FlattenInto(nil)
	mb := minus.FlattenInto(nil)
	n := len(pb)
	if len(mb) < n {
		n = len(mb)
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		if denom == 0 || math.IsNaN(float64(denom)) {
			out[i] = 0
			continue
		}
		out[i] = (pb[i] - mb[i]) / denom
	}
	return rebuildFlat(plus.Kind, plus, out)
}
