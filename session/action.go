package session

import "github.com/plus3/blockfall/sim"

// Action is an input delivered to a running session.
type Action = sim.Event

const (
	Tick      = sim.EventTick
	SpeedUp   = sim.EventSpeedUp
	MoveLeft  = sim.EventMoveLeft
	MoveRight = sim.EventMoveRight
	Rotate    = sim.EventRotate
	Pause     = sim.EventPause
	Resume    = sim.EventResume
)
