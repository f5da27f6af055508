package main

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/blockfall/debugui"
	"github.com/plus3/blockfall/session"
)

const frameHistorySize = 120

// debugLayer draws the ImGui overlay on top of the game.
type debugLayer struct {
	backend *ebitenbackend.EbitenBackend
	overlay *debugui.Overlay
}

// EnableDebug creates the ImGui backend and its window. It replaces the plain
// ebiten window setup.
func (g *Game) EnableDebug(width, height int) {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow("blockfall", width, height)
	imgui.CurrentIO().SetIniFilename("")

	g.debug = &debugLayer{
		backend: backend,
		overlay: debugui.NewOverlay(frameHistorySize),
	}
}

func (d *debugLayer) BeginFrame() {
	d.backend.BeginFrame()
}

func (d *debugLayer) EndFrame(s *session.Session) {
	d.overlay.Render(s, float32(1.0/max(ebiten.ActualTPS(), 1)))
	d.backend.EndFrame()
}

func (d *debugLayer) WantsKeyboard() bool {
	return d.overlay.Input.WantCaptureKeyboard
}

func (d *debugLayer) Draw(screen *ebiten.Image) {
	d.backend.Draw(screen)
}

func (d *debugLayer) Layout(outsideWidth, outsideHeight int) {
	d.backend.Layout(outsideWidth, outsideHeight)
}
