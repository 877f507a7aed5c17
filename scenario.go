package motionrig

import (
	"encoding/json"
	"fmt"
)

// scenarioStep is a single action in a scripted scenario. Grounded on the
// teacher's testStep/TestRunner idiom (testrunner.go), replacing input
// injection/screenshot actions with tick/command/expectation actions.
type scenarioStep struct {
	Action string `json:"action"`

	// tick
	Dt float32 `json:"dt,omitempty"`

	// play / pause / stop / seek / set_speed / set_loop_mode / set_window
	Player   PlayerID `json:"player,omitempty"`
	Time     float32  `json:"time,omitempty"`
	Speed    float32  `json:"speed,omitempty"`
	LoopMode string   `json:"loop_mode,omitempty"`
	From     float32  `json:"from,omitempty"`
	To       float32  `json:"to,omitempty"`
	HasTo    bool     `json:"has_to,omitempty"`

	// expect_change / expect_event
	Path      string  `json:"path,omitempty"`
	Kind      string  `json:"kind,omitempty"`
	Tolerance float32 `json:"tolerance,omitempty"`
	Scalar    float32 `json:"scalar,omitempty"`
}

type scenarioScript struct {
	Steps []scenarioStep `json:"steps"`
}

// Scenario replays a scripted sequence of ticks, player commands, and value
// expectations against an Engine. It is a test and documentation tool: the
// literal end-to-end walkthroughs in the specification are expressed as
// scenario scripts and replayed by *_test.go, not hand-rolled per test.
type Scenario struct {
	Engine *Engine
	steps  []scenarioStep
	cursor int

	lastOutputs Outputs
}

// LoadScenario parses a JSON scenario script. Grounded on the teacher's
// LoadTestScript (testrunner.go): same "parse once, fail loud on zero
// steps" shape.
func LoadScenario(e *Engine, data []byte) (*Scenario, error) {
	var script scenarioScript
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, newErr(ErrParse, nil, "parse scenario: %v", err)
	}
	if len(script.Steps) == 0 {
		return nil, newErr(ErrParse, nil, "parse scenario: no steps")
	}
	return &Scenario{Engine: e, steps: script.Steps}, nil
}

// Done reports whether every step has run.
func (sc *Scenario) Done() bool { return sc.cursor >= len(sc.steps) }

// Step executes exactly one scenario step, returning a non-nil error if an
// expectation fails. Unlike the teacher's frame-gated TestRunner.step (which
// waits on injection queues), scenario steps have no implicit waiting: a
// "tick" step is the only action that advances time.
func (sc *Scenario) Step() error {
	if sc.Done() {
		return nil
	}
	st := sc.steps[sc.cursor]
	sc.cursor++

	pid := uint32(st.Player)
	switch st.Action {
	case "tick":
		sc.lastOutputs = sc.Engine.Tick(st.Dt, Inputs{})
	case "play":
		sc.lastOutputs = sc.Engine.Tick(0, Inputs{PlayerCmds: []PlayerCmd{{PlayerID: pid, Kind: CmdPlay}}})
	case "pause":
		sc.lastOutputs = sc.Engine.Tick(0, Inputs{PlayerCmds: []PlayerCmd{{PlayerID: pid, Kind: CmdPause}}})
	case "stop":
		sc.lastOutputs = sc.Engine.Tick(0, Inputs{PlayerCmds: []PlayerCmd{{PlayerID: pid, Kind: CmdStop}}})
	case "seek":
		sc.lastOutputs = sc.Engine.Tick(0, Inputs{PlayerCmds: []PlayerCmd{{PlayerID: pid, Kind: CmdSeek, SeekTime: st.Time}}})
	case "set_speed":
		sc.lastOutputs = sc.Engine.Tick(0, Inputs{PlayerCmds: []PlayerCmd{{PlayerID: pid, Kind: CmdSetSpeed, Speed: st.Speed}}})
	case "set_loop_mode":
		mode, err := parseLoopMode(st.LoopMode)
		if err != nil {
			return err
		}
		sc.lastOutputs = sc.Engine.Tick(0, Inputs{PlayerCmds: []PlayerCmd{{PlayerID: pid, Kind: CmdSetLoopMode, LoopMode: mode}}})
	case "set_window":
		sc.lastOutputs = sc.Engine.Tick(0, Inputs{PlayerCmds: []PlayerCmd{{PlayerID: pid, Kind: CmdSetWindow, WindowFrom: st.From, WindowTo: st.To, HasWindowTo: st.HasTo}}})
	case "expect_scalar":
		return sc.expectScalar(st.Path, st.Scalar, st.Tolerance)
	case "expect_event":
		return sc.expectEvent(st.Kind)
	case "expect_no_change":
		return sc.expectNoChange(st.Path)
	default:
		return newErr(ErrInvalidArg, map[string]any{"action": st.Action}, "scenario: unknown action %q", st.Action)
	}
	return nil
}

// Run drives the scenario to completion, stopping at the first failed
// expectation.
func (sc *Scenario) Run() error {
	for !sc.Done() {
		if err := sc.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (sc *Scenario) expectScalar(path string, want, tol float32) error {
	if tol <= 0 {
		tol = 1e-4
	}
	for _, ch := range sc.lastOutputs.Changes {
		if ch.Key.str != path && !(ch.Key.isNum && fmt.Sprintf("%d", ch.Key.num) == path) {
			continue
		}
		got := ch.Value.AsScalar()
		if absF32(got-want) > tol {
			return newErr(ErrInvalidArg, map[string]any{"path": path, "want": want, "got": got},
				"scenario: expected %s == %v, got %v", path, want, got)
		}
		return nil
	}
	return newErr(ErrInvalidArg, map[string]any{"path": path}, "scenario: no change emitted for %s", path)
}

func (sc *Scenario) expectNoChange(path string) error {
	for _, ch := range sc.lastOutputs.Changes {
		if ch.Key.str == path {
			return newErr(ErrInvalidArg, map[string]any{"path": path}, "scenario: unexpected change for %s", path)
		}
	}
	return nil
}

func (sc *Scenario) expectEvent(kind string) error {
	want, err := parseEventKind(kind)
	if err != nil {
		return err
	}
	for _, ev := range sc.lastOutputs.Events {
		if ev.Kind == want {
			return nil
		}
	}
	return newErr(ErrInvalidArg, map[string]any{"kind": kind}, "scenario: expected event %s not emitted", kind)
}

func parseLoopMode(s string) (LoopMode, error) {
	switch s {
	case "once":
		return Once, nil
	case "loop":
		return Loop, nil
	case "ping_pong", "pingpong":
		return PingPong, nil
	default:
		return 0, newErr(ErrInvalidArg, map[string]any{"loop_mode": s}, "scenario: unknown loop mode %q", s)
	}
}

func parseEventKind(s string) (EventKind, error) {
	switch s {
	case "playback_ended":
		return EventPlaybackEnded, nil
	case "warning":
		return EventWarning, nil
	case "performance_warning":
		return EventPerformanceWarning, nil
	default:
		return 0, newErr(ErrInvalidArg, map[string]any{"kind": s}, "scenario: unknown event kind %q", s)
	}
}
