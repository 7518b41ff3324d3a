package ebitenhost

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/watchface"
)

// peekDuration is how long the simulated peek card takes to slide.
const peekDuration = 0.3

var peekCardColor = watchface.Color{R: 0.93, G: 0.93, B: 0.93, A: 1}

// Game implements ebiten.Game around a watchface.Engine. All engine calls
// happen on the game thread.
type Game struct {
	engine *watchface.Engine
	faces  *Faces
	size   int
	round  bool

	canvas    *Canvas
	overlay   *Canvas
	offscreen *ebiten.Image
	insetsSet bool

	runner       *watchface.TestRunner
	exitOnScript bool

	visible    bool
	ambient    bool
	lastMinute int

	peek      *watchface.PeekTween
	peekShown bool

	showFPS bool
	fps     *fpsOverlay
}

// NewGame wires a game to engine. The engine should already have received
// OnSurfaceCreated and OnPropertiesChanged.
func NewGame(engine *watchface.Engine, faces *Faces, cfg RunConfig) *Game {
	return &Game{
		engine:       engine,
		faces:        faces,
		size:         cfg.Size,
		round:        cfg.Round,
		runner:       cfg.Script,
		exitOnScript: cfg.ExitWhenScriptDone,
		visible:      true,
		lastMinute:   -1,
		showFPS:      cfg.ShowFPS,
	}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if !g.insetsSet {
		return nil
	}
	g.handleKeys()
	g.updatePeek()
	g.minuteTick(time.Now())
	if g.showFPS {
		if g.fps == nil {
			g.fps = newFPSOverlay()
		}
		g.fps.update(1.0/float64(ebiten.TPS()), g.engine.TickState().String())
	}

	if g.runner != nil {
		g.runner.Step(g.engine)
		if g.exitOnScript && g.runner.Done() && !g.engine.NeedsRedraw() {
			return ebiten.Termination
		}
	}
	g.engine.Pump()
	return nil
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.ambient = !g.ambient
		g.engine.OnAmbientModeChanged(g.ambient)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.visible = !g.visible
		g.engine.OnVisibilityChanged(g.visible)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.togglePeek()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.engine.Screenshot("manual")
		g.engine.Invalidate()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.showFPS = !g.showFPS
	}
}

// peekCard is the resting rect of the simulated card: the lower third.
func (g *Game) peekCard() watchface.Rect {
	s := float64(g.size)
	return watchface.Rect{Y: s * 2 / 3, Width: s, Height: s / 3}
}

func (g *Game) togglePeek() {
	g.peekShown = !g.peekShown
	if g.peekShown {
		g.peek = watchface.TweenPeekIn(g.peekCard(), float64(g.size), peekDuration, ease.OutCubic)
	} else {
		g.peek = watchface.TweenPeekOut(g.peekCard(), float64(g.size), peekDuration, ease.InCubic)
	}
}

func (g *Game) updatePeek() {
	if g.peek == nil {
		return
	}
	g.engine.OnPeekCardPositionUpdate(g.peek.Update(float32(1.0 / float64(ebiten.TPS()))))
	if g.peek.Done {
		g.peek = nil
	}
}

// minuteTick delivers the host's once-a-minute tick, which is what keeps
// the face current in ambient mode.
func (g *Game) minuteTick(now time.Time) {
	m := now.Minute()
	if g.lastMinute >= 0 && m != g.lastMinute {
		g.engine.OnTimeTick()
	}
	g.lastMinute = m
}

// Draw implements ebiten.Game. The engine only repaints the offscreen frame
// when it asked for a redraw.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.offscreen == nil {
		g.offscreen = ebiten.NewImage(g.size, g.size)
		g.canvas = NewCanvas(g.offscreen, g.faces)
		g.engine.Invalidate()
	}
	if g.engine.NeedsRedraw() {
		g.offscreen.Clear()
		g.engine.Draw(g.canvas, watchface.Rect{Width: float64(g.size), Height: float64(g.size)})
	}
	screen.DrawImage(g.offscreen, nil)
	if g.peekShown || g.peek != nil {
		g.drawPeekCard(screen)
	}
	if g.showFPS && g.fps != nil {
		g.fps.draw(screen)
	}
}

func (g *Game) drawPeekCard(screen *ebiten.Image) {
	r := g.peekCard()
	if g.peek != nil {
		r = g.peek.Rect()
	}
	if g.overlay == nil {
		g.overlay = NewCanvas(screen, g.faces)
	}
	g.overlay.SetTarget(screen)
	g.overlay.FillRect(r, peekCardColor)
}

// Layout implements ebiten.Game. The first call reports the insets.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if !g.insetsSet {
		g.engine.OnApplyInsets(g.round, g.size, g.size)
		g.engine.OnVisibilityChanged(g.visible)
		g.insetsSet = true
	}
	return g.size, g.size
}
