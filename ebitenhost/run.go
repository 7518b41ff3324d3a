package ebitenhost

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/watchface"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title string
	// Size is the edge of the square watch surface in pixels.
	Size  int
	Round bool
	// LowBitAmbient is reported once through OnPropertiesChanged.
	LowBitAmbient bool
	// Scale enlarges the window without changing the surface size.
	Scale float64
	// ShowFPS starts with the FPS overlay on. F toggles it.
	ShowFPS bool

	// Script, if set, replays host events one step per frame.
	Script *watchface.TestRunner
	// ExitWhenScriptDone closes the window once Script finishes.
	ExitWhenScriptDone bool
}

// Run opens a window, drives engine until the window closes, then tears
// the engine down with OnDestroy.
func Run(engine *watchface.Engine, cfg RunConfig) error {
	if cfg.Size <= 0 {
		cfg.Size = 320
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.Title == "" {
		cfg.Title = "watchface"
	}

	faces, err := DefaultFaces()
	if err != nil {
		return fmt.Errorf("load faces: %w", err)
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(int(float64(cfg.Size)*cfg.Scale), int(float64(cfg.Size)*cfg.Scale))
	ebiten.SetScreenClearedEveryFrame(false)

	engine.OnSurfaceCreated()
	engine.OnPropertiesChanged(cfg.LowBitAmbient)
	defer engine.OnDestroy()

	err = ebiten.RunGame(NewGame(engine, faces, cfg))
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
