package motionrig

// PlayState is a Player's playback state (spec §3/§4.5).
type PlayState uint8

const (
	Stopped PlayState = iota
	Playing
	Paused
)

func (s PlayState) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// LoopMode controls how a Player's local time behaves at its window
// boundaries (spec §3/§4.5).
type LoopMode uint8

const (
	Once LoopMode = iota
	Loop
	PingPong
)

// PlayerCmdKind identifies a queued command targeting a Player (spec §4.5).
type PlayerCmdKind uint8

const (
	CmdPlay PlayerCmdKind = iota
	CmdPause
	CmdStop
	CmdSeek
	CmdSetSpeed
	CmdSetLoopMode
	CmdSetWindow
)

// PlayerCmd is one queued command. Only the fields relevant to Kind are
// read; the rest are ignored.
type PlayerCmd struct {
	PlayerID   uint32
	Kind       PlayerCmdKind
	SeekTime   float32
	Speed      float32
	LoopMode   LoopMode
	WindowFrom float32
	WindowTo   float32
	HasWindowTo bool
}

// InstanceUpdate queues a change to an Instance's configuration, applied
// atomically before stepping (spec §4.5).
type InstanceUpdate struct {
	InstanceID  uint32
	SetWeight   bool
	Weight      float32
	SetTimeScale bool
	TimeScale   float32
	SetStartOffset bool
	StartOffset float32
	SetEnabled  bool
	Enabled     bool
}

// Inputs carries all commands applied before a tick steps (spec §4.5/§4.6).
// Commands are applied in array order before stepping, per spec §5.
type Inputs struct {
	PlayerCmds      []PlayerCmd
	InstanceUpdates []InstanceUpdate
}
