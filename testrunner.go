package watchface

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single host event in a test script.
type testStep struct {
	Action  string          `json:"action"`
	Label   string          `json:"label,omitempty"`
	Value   bool            `json:"value,omitempty"`
	Round   bool            `json:"round,omitempty"`
	Width   int             `json:"width,omitempty"`
	Height  int             `json:"height,omitempty"`
	Card    Rect            `json:"card,omitempty"`
	Path    string          `json:"path,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Zone    string          `json:"zone,omitempty"`
	Frames  int             `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"visible": true, "ambient": true, "lowbit": true, "insets": true,
	"peek": true, "payload": true, "tick": true, "timezone": true,
	"screenshot": true, "wait": true,
}

// TestRunner replays scripted host events against an Engine, one step per
// frame, for automated visual testing. Hosts call Step from their update
// loop.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Step runs the next scripted event against e. It must be called on the host
// thread.
func (r *TestRunner) Step(e *Engine) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "visible":
		e.OnVisibilityChanged(st.Value)
	case "ambient":
		e.OnAmbientModeChanged(st.Value)
	case "lowbit":
		e.OnPropertiesChanged(st.Value)
	case "insets":
		e.OnApplyInsets(st.Round, st.Width, st.Height)
	case "peek":
		e.OnPeekCardPositionUpdate(st.Card)
	case "payload":
		path := st.Path
		if path == "" {
			path = WeatherPath
		}
		e.deliver(path, st.Payload)
	case "tick":
		e.OnTimeTick()
	case "timezone":
		e.OnTimeZoneChanged(st.Zone)
	case "screenshot":
		e.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}

// deliver feeds a data item through the engine's channel as if the transport
// had received it, then runs the resulting post.
func (e *Engine) deliver(path string, data []byte) {
	if e.channel == nil {
		e.logger.Warn("scripted payload without a companion channel", "path", path)
		return
	}
	e.channel.receive(path, data)
	e.Pump()
}
