package main

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	log "github.com/sirupsen/logrus"

	"github.com/plus3/blockfall/session"
	"github.com/plus3/blockfall/tetris"
)

const (
	sidePanelCells = 6
	margin         = 1
	lineHeight     = 16
)

var (
	backgroundColor = color.RGBA{24, 24, 32, 255}
	wellColor       = color.RGBA{40, 40, 52, 255}
)

// keyBindings maps keys to session actions; several keys may share an action.
var keyBindings = map[ebiten.Key]session.Action{
	ebiten.KeyArrowLeft:  session.MoveLeft,
	ebiten.KeyA:          session.MoveLeft,
	ebiten.KeyArrowRight: session.MoveRight,
	ebiten.KeyD:          session.MoveRight,
	ebiten.KeyArrowUp:    session.Rotate,
	ebiten.KeyW:          session.Rotate,
	ebiten.KeyArrowDown:  session.SpeedUp,
	ebiten.KeyS:          session.SpeedUp,
	ebiten.KeySpace:      session.SpeedUp,
}

// Game implements ebiten.Game on top of a running session.
type Game struct {
	ctx  context.Context
	opts session.Options
	log  *log.Entry
	cell int

	session *session.Session
	debug   *debugLayer
}

func NewGame(ctx context.Context, opts session.Options, logger *log.Entry, cell int) (*Game, error) {
	g := &Game{ctx: ctx, opts: opts, log: logger, cell: cell}
	if err := g.restart(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) restart() error {
	if g.session != nil {
		g.session.Stop()
	}

	s, err := session.New(g.opts, g.log)
	if err != nil {
		return err
	}
	if err := s.Start(g.ctx); err != nil {
		return err
	}
	g.session = s
	return nil
}

// Close stops the running session.
func (g *Game) Close() {
	if g.session != nil {
		g.session.Stop()
	}
}

// WindowSize is the pixel size of the board plus the side panel.
func (g *Game) WindowSize() (int, int) {
	w := (g.opts.Rules.Width + sidePanelCells + 3*margin) * g.cell
	h := (g.opts.Rules.Height + 2*margin) * g.cell
	return w, h
}

func (g *Game) Update() error {
	if g.debug != nil {
		g.debug.BeginFrame()
		// restart may replace the session during this update
		defer func() { g.debug.EndFrame(g.session) }()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.debug != nil && g.debug.WantsKeyboard() {
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		return g.restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if g.session.Snapshot().Status == tetris.Paused {
			g.session.Send(session.Resume)
		} else {
			g.session.Send(session.Pause)
		}
	}

	for key, action := range keyBindings {
		if inpututil.IsKeyJustPressed(key) {
			g.session.Send(action)
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	snap := g.session.Snapshot()
	cell := float32(g.cell)
	originX := float32(margin) * cell
	originY := float32(margin) * cell

	vector.DrawFilledRect(screen, originX, originY, float32(snap.Width)*cell, float32(snap.Height)*cell, wellColor, false)

	for y := range snap.Height {
		for x := range snap.Width {
			if c := snap.At(x, y); c.Filled {
				g.drawCell(screen, originX, originY, x, y, c.Color)
			}
		}
	}
	for _, c := range snap.Active.Cells {
		if c.Y >= 0 {
			g.drawCell(screen, originX, originY, c.X, c.Y, snap.Active.Color)
		}
	}

	panelX := originX + float32(snap.Width+margin)*cell
	ebitenutil.DebugPrintAt(screen, "NEXT", int(panelX), int(originY))
	for _, c := range snap.Next.Cells {
		g.drawCell(screen, panelX, originY+float32(lineHeight), c.X, c.Y, snap.Next.Color)
	}

	infoY := int(originY) + 6*g.cell
	lines := []string{
		fmt.Sprintf("SCORE  %d", snap.Score),
		fmt.Sprintf("LINES  %d", snap.Lines),
		fmt.Sprintf("PIECES %d", snap.Pieces),
		fmt.Sprintf("SPEED  %s", g.session.Interval().Round(time.Millisecond)),
	}
	switch snap.Status {
	case tetris.Paused:
		lines = append(lines, "", "PAUSED", "P to resume")
	case tetris.Ended:
		lines = append(lines, "", "GAME OVER", "R to restart")
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, int(panelX), infoY+i*lineHeight)
	}

	if g.debug != nil {
		g.debug.Draw(screen)
	}
}

func (g *Game) drawCell(screen *ebiten.Image, originX, originY float32, x, y int, c tetris.Color) {
	size := float32(g.cell)
	vector.DrawFilledRect(screen,
		originX+float32(x)*size+1, originY+float32(y)*size+1,
		size-2, size-2,
		color.RGBA{c.R, c.G, c.B, 255}, false)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.debug != nil {
		g.debug.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
