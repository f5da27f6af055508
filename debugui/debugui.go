// Package debugui draws Dear ImGui windows that inspect a running session: frame
// timing, scheduler statistics and session counters.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/session"
)

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input. The
// frontend stops forwarding keys to the session while a debug window has focus.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay owns every debug window.
type Overlay struct {
	Input InputState

	perf    *PerformanceStats
	session *SessionStats
}

// NewOverlay creates the debug windows with historyFrames samples of frame timing.
func NewOverlay(historyFrames int) *Overlay {
	return &Overlay{
		perf:    NewPerformanceStats(historyFrames),
		session: &SessionStats{},
	}
}

// Render draws all windows for s. Call it between the backend's BeginFrame and
// EndFrame.
func (o *Overlay) Render(s *session.Session, deltaTime float32) {
	io := imgui.CurrentIO()
	o.Input.WantCaptureMouse = io.WantCaptureMouse()
	o.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	if s == nil {
		return
	}
	o.perf.Render(s.SchedulerStats(), deltaTime)
	o.session.Render(s)
}
