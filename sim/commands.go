package sim

// NoticeKind identifies what happened during a frame.
type NoticeKind int

const (
	NoticeLocked NoticeKind = iota
	NoticeLinesCleared
	NoticeGameOver
	NoticePaused
	NoticeResumed
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeLocked:
		return "locked"
	case NoticeLinesCleared:
		return "lines-cleared"
	case NoticeGameOver:
		return "game-over"
	case NoticePaused:
		return "paused"
	case NoticeResumed:
		return "resumed"
	}
	return "unknown"
}

// Notice reports a game event to whoever flushes the frame's commands.
type Notice struct {
	Kind  NoticeKind
	Piece string
	Lines int
	Score int
}

// Commands buffers work that must happen after every system has seen the frame.
type Commands struct {
	notices []Notice
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Emit queues a notice.
func (c *Commands) Emit(n Notice) {
	c.notices = append(c.notices, n)
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending returns the number of queued notices and deferred functions.
func (c *Commands) Pending() int {
	return len(c.notices) + len(c.defers)
}

// Flush hands every notice to sink in emission order, then runs the deferred
// functions, and resets the buffer.
func (c *Commands) Flush(sink func(Notice)) {
	if sink != nil {
		for _, n := range c.notices {
			sink(n)
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	c.notices = c.notices[:0]
	c.defers = c.defers[:0]
}
