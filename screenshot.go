package watchface

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// Screenshot queues a labeled screenshot to be captured at the end of the
// next Draw. The PNG is written to ScreenshotDir with a timestamped filename.
func (e *Engine) Screenshot(label string) {
	e.screenshotQueue = append(e.screenshotQueue, label)
}

// flushScreenshots renders state into an offscreen raster for every queued
// label and writes each as a PNG file. Called at the end of Draw.
func (e *Engine) flushScreenshots(state FrameState) {
	if len(e.screenshotQueue) == 0 {
		return
	}
	defer func() { e.screenshotQueue = e.screenshotQueue[:0] }()

	if err := os.MkdirAll(e.ScreenshotDir, 0o755); err != nil {
		e.logger.Warn("screenshot: mkdir failed", "dir", e.ScreenshotDir, "error", err)
		return
	}
	img, err := e.RenderImage(state)
	if err != nil {
		e.logger.Warn("screenshot: render failed", "error", err)
		return
	}

	stamp := e.clock.Now().Format("20060102_150405")
	for _, label := range e.screenshotQueue {
		path := filepath.Join(e.ScreenshotDir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			e.logger.Warn("screenshot failed", "error", err)
			continue
		}
		e.logger.Info("screenshot saved", "path", path)
	}
}

// RenderImage draws state into a new RGBA image sized to state.Bounds.
func (e *Engine) RenderImage(state FrameState) (*image.RGBA, error) {
	faces, err := DefaultTypefaces()
	if err != nil {
		return nil, err
	}
	w := int(math.Ceil(state.Bounds.Width))
	h := int(math.Ceil(state.Bounds.Height))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty bounds %v", state.Bounds)
	}
	canvas := NewRasterCanvas(w, h, faces)
	e.renderer.DrawFrame(canvas, state)
	return canvas.Image(), nil
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
