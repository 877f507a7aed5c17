package board

import (
	motionrig "github.com/riglab/motionrig"
	"github.com/riglab/motionrig/graph"
)

// PassMode selects how the Scheduler orders the animation and graph
// controllers' steps within one orchestrator tick (spec §4.10).
type PassMode int

const (
	// SinglePass steps animation, merges, then steps the graph.
	SinglePass PassMode = iota
	// TwoPass steps the graph, merges, steps animation, merges, then steps
	// the graph again — letting a graph output staged this tick feed back
	// into an animation command and a graph input alike within one tick.
	TwoPass
	// RateDecoupled steps each side at its own configured Hz, accumulating
	// dt between steps (spec §4.10: "independent Hz per side with dt
	// accumulation").
	RateDecoupled
)

// GraphBinding declares which board paths are staged into the graph runtime
// before it evaluates (spec §4.10: "Graph subscriptions declare which board
// paths are staged into the graph"). The graph's own Output-node writes are
// always republished to the board; no separate declaration is needed for
// that direction.
type GraphBinding struct {
	StagePaths []motionrig.TypedPath
}

// Scheduler runs one animation Engine and one graph.GraphRuntime against a
// shared Board, merging each controller's WriteBatch in pass order (spec
// §4.10).
type Scheduler struct {
	Board   *Board
	Anim    *motionrig.Engine
	Graph   *graph.GraphRuntime
	Mode    PassMode
	Binding GraphBinding

	// AnimHz/GraphHz configure RateDecoupled stepping; zero means "step
	// every Scheduler.Step call" (no accumulation).
	AnimHz, GraphHz float64

	animAccum, graphAccum float64
}

// NewScheduler builds a Scheduler over an existing Board, Engine, and
// GraphRuntime.
func NewScheduler(b *Board, anim *motionrig.Engine, gr *graph.GraphRuntime, mode PassMode, binding GraphBinding) *Scheduler {
	return &Scheduler{Board: b, Anim: anim, Graph: gr, Mode: mode, Binding: binding}
}

// Step advances the orchestrator by dt seconds, per s.Mode.
func (s *Scheduler) Step(dt float32) error {
	switch s.Mode {
	case TwoPass:
		if err := s.stepGraph(dt); err != nil {
			return err
		}
		s.stepAnim(dt)
		return s.stepGraph(dt)
	case RateDecoupled:
		return s.stepRateDecoupled(dt)
	default: // SinglePass
		s.stepAnim(dt)
		return s.stepGraph(dt)
	}
}

func (s *Scheduler) stepAnim(dt float32) {
	in := BuildInputs(s.Board)
	batch, _ := s.Anim.TickWriteBatch(dt, in)
	s.Board.Merge(batch, "anim")
}

func (s *Scheduler) stageBoardIntoGraph() {
	for _, path := range s.Binding.StagePaths {
		entry, ok := s.Board.Entry(path)
		if !ok {
			continue
		}
		s.Graph.StageInput(path.String(), entry.Value, entry.Shape, entry.HasShape)
	}
}

func (s *Scheduler) stepGraph(dt float32) error {
	s.stageBoardIntoGraph()
	s.Graph.Step(dt)
	res, err := s.Graph.EvaluateAll()
	if err != nil {
		return err
	}
	s.Board.Merge(res.Writes, "graph")
	return nil
}

// stepRateDecoupled accumulates dt per side and fires a step each time the
// accumulator reaches that side's configured period. A side with Hz <= 0
// steps once per call with the raw dt (no accumulation).
func (s *Scheduler) stepRateDecoupled(dt float32) error {
	if s.AnimHz <= 0 {
		s.stepAnim(dt)
	} else {
		s.animAccum += float64(dt)
		period := 1 / s.AnimHz
		for s.animAccum >= period {
			s.stepAnim(float32(period))
			s.animAccum -= period
		}
	}

	if s.GraphHz <= 0 {
		return s.stepGraph(dt)
	}
	s.graphAccum += float64(dt)
	period := 1 / s.GraphHz
	for s.graphAccum >= period {
		if err := s.stepGraph(float32(period)); err != nil {
			return err
		}
		s.graphAccum -= period
	}
	return nil
}
