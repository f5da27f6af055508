package sim

// System is one stage of the per-event pipeline. Systems run in registration order and
// may keep their own state between frames.
type System interface {
	Execute(frame *Frame)
}
