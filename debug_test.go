package watchface

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestCountBatches(t *testing.T) {
	f := NewFrame()
	f.FillRect(Rect{Width: 1, Height: 1}, ColorBlack)
	f.DrawText("a", 0, 0, Paint{Style: FontBold, Size: 40})
	f.DrawText("b", 0, 0, Paint{Style: FontBold, Size: 40})
	f.DrawText("c", 0, 0, Paint{Style: FontNormal, Size: 40})
	f.FillRect(Rect{Width: 1, Height: 1}, ColorWhite)

	if got := countBatches(f.Commands()); got != 4 {
		t.Errorf("countBatches = %d, want 4", got)
	}
}

func TestCountBatches_Empty(t *testing.T) {
	if got := countBatches(nil); got != 0 {
		t.Errorf("countBatches(nil) = %d, want 0", got)
	}
}

func TestDebugModeLogsFrames(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e := NewEngine(Options{Logger: logger, Debug: true})
	e.OnApplyInsets(true, 320, 320)

	buf.Reset()
	e.Draw(NewFrame(), testBounds)
	out := buf.String()
	if !strings.Contains(out, "frame drawn") || !strings.Contains(out, "commands=7") {
		t.Errorf("debug log = %q", out)
	}

	e.SetDebugMode(false)
	buf.Reset()
	e.Draw(NewFrame(), testBounds)
	if strings.Contains(buf.String(), "frame drawn") {
		t.Error("frame stats logged with debug off")
	}
}
