package motionrig

// EngineConfig configures an Engine (spec §4.6/§5/§9). All fields have a
// documented zero-value default, matching the teacher's EmitterConfig idiom
// of "if X <= 0, use a sane default" rather than requiring every field to be
// set.
type EngineConfig struct {
	// MaxEventsPerTick bounds the lifecycle/warning event queue drained each
	// tick; beyond this, the oldest events are dropped and a
	// PerformanceWarning is emitted (spec §4.6). Zero means 256.
	MaxEventsPerTick int
	// DerivativeEpsilon is ±ε used by the finite-difference derivative pass
	// (spec §4.6). Zero means 1e-3.
	DerivativeEpsilon float32
	// StrictMixedKinds changes how the fail-soft "mixed kinds at one
	// destination" policy (spec §4.4/§9) is reported: the event stays a
	// Warning, but its Fields["tag"] is ErrShapeMismatch instead of ErrWarning.
	StrictMixedKinds bool
	// ScratchContributionCap hints the initial capacity of the per-tick
	// destination -> contributions scratch map (spec §5: "scratch buffers
	// are reused across ticks"). Zero means 64.
	ScratchContributionCap int
}

func (c EngineConfig) applyDefaults() EngineConfig {
	if c.MaxEventsPerTick <= 0 {
		c.MaxEventsPerTick = 256
	}
	if c.DerivativeEpsilon <= 0 {
		c.DerivativeEpsilon = 1e-3
	}
	if c.ScratchContributionCap <= 0 {
		c.ScratchContributionCap = 64
	}
	return c
}

// DefaultConfig returns an EngineConfig with every field at its documented
// default.
func DefaultConfig() EngineConfig {
	return EngineConfig{}.applyDefaults()
}
