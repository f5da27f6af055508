package debugui

import (
	"fmt"
	"slices"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/session"
)

// SessionStats shows the game state and the session counters.
type SessionStats struct{}

func (ss *SessionStats) Render(s *session.Session) {
	snap := s.Snapshot()
	tally := s.Tally()

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 330), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(300, 260), imgui.CondOnce)
	if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("ID: %s", s.ID()))
	imgui.Text(fmt.Sprintf("Status: %s", snap.Status))
	imgui.Text(fmt.Sprintf("Tick Interval: %s", s.Interval()))
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Score: %d", snap.Score))
	imgui.Text(fmt.Sprintf("Lines: %d", snap.Lines))
	imgui.Text(fmt.Sprintf("Pieces: %d", snap.Pieces))

	if imgui.TreeNodeStr("Spawns") {
		labels := make([]string, 0, len(tally.Spawns))
		for label := range tally.Spawns {
			labels = append(labels, label)
		}
		slices.Sort(labels)
		for _, label := range labels {
			imgui.BulletText(fmt.Sprintf("%s: %d", label, tally.Spawns[label]))
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Clears") {
		for lines := 1; lines <= 4; lines++ {
			imgui.BulletText(fmt.Sprintf("%d at once: %d", lines, tally.Clears[lines]))
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Actions") {
		for a := session.Tick; a <= session.Resume; a++ {
			imgui.BulletText(fmt.Sprintf("%s: %d", a, tally.Actions[a.String()]))
		}
		imgui.TreePop()
	}

	imgui.End()
}
