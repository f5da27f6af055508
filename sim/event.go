package sim

// Event is the external occurrence that starts a frame.
type Event int

const (
	EventTick Event = iota
	EventSpeedUp
	EventMoveLeft
	EventMoveRight
	EventRotate
	EventPause
	EventResume
)

var eventNames = [...]string{
	EventTick:      "tick",
	EventSpeedUp:   "speed-up",
	EventMoveLeft:  "move-left",
	EventMoveRight: "move-right",
	EventRotate:    "rotate",
	EventPause:     "pause",
	EventResume:    "resume",
}

func (e Event) String() string {
	if e < 0 || int(e) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[e]
}

// Gravity reports whether the event advances the active piece downward.
func (e Event) Gravity() bool {
	return e == EventTick || e == EventSpeedUp
}
