package ebitenhost

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often the overlay text is regenerated, in seconds.
const fpsRefresh = 0.5

// fpsOverlay shows FPS, TPS and the engine's tick state in the top-left
// corner. It redraws its own small image twice a second.
type fpsOverlay struct {
	img     *ebiten.Image
	elapsed float64
	text    string
}

func newFPSOverlay() *fpsOverlay {
	// 120x48 fits three lines of debug text.
	return &fpsOverlay{img: ebiten.NewImage(120, 48), elapsed: fpsRefresh}
}

func (o *fpsOverlay) update(dt float64, tick string) {
	o.elapsed += dt
	if o.elapsed < fpsRefresh {
		return
	}
	o.elapsed = 0
	o.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nTick: %s", ebiten.ActualFPS(), ebiten.ActualTPS(), tick)

	o.img.Clear()
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, o.text)
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	screen.DrawImage(o.img, nil)
}
