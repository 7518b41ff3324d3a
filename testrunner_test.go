package watchface

import "testing"

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "insets", "round": true, "width": 320, "height": 320},
			{"action": "visible", "value": true},
			{"action": "wait", "frames": 3},
			{"action": "screenshot", "label": "interactive"}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if st := runner.steps[0]; st.Action != "insets" || !st.Round || st.Width != 320 {
		t.Error("step 0 mismatch")
	}
	if st := runner.steps[1]; st.Action != "visible" || !st.Value {
		t.Error("step 1 mismatch")
	}
	if st := runner.steps[2]; st.Action != "wait" || st.Frames != 3 {
		t.Error("step 2 mismatch")
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	_, err := LoadTestScript([]byte(`not json`))
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadTestScript_Empty(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": []}`))
	if err == nil {
		t.Error("expected error for empty steps")
	}
}

func TestLoadTestScript_UnknownAction(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": [{"action": "click"}]}`))
	if err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestRunnerStep_HostEvents(t *testing.T) {
	fx := newEngineFixture(t)
	fx.start(t, false)

	data := []byte(`{"steps": [
		{"action": "lowbit", "value": true},
		{"action": "ambient", "value": true},
		{"action": "payload", "payload": {"high_temperature": "75°", "low_temperature": "58°", "weather_condition": 801}},
		{"action": "peek", "card": {"x": 0, "y": 200, "width": 320, "height": 120}},
		{"action": "timezone", "zone": "UTC"},
		{"action": "tick"}
	]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 6; i++ {
		runner.Step(fx.engine)
	}
	if !runner.Done() {
		t.Fatal("runner should be done after six steps")
	}

	e := fx.engine
	if e.Mode() != PowerAmbientNormal {
		t.Errorf("Mode = %v, want ambient (low-bit set after startup is ignored)", e.Mode())
	}
	w := e.Weather()
	if !w.IsSet() || *w.High != "75°" || *w.Condition != 801 {
		t.Errorf("weather = %+v", w)
	}
	if !e.Snapshot(testBounds).PeekCardShown {
		t.Error("peek card should be shown")
	}
}

func TestRunnerStep_PayloadOtherPath(t *testing.T) {
	fx := newEngineFixture(t)
	fx.start(t, false)

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "payload", "path": "/config", "payload": {"high_temperature": "1"}}]}`))
	if err != nil {
		t.Fatal(err)
	}
	runner.Step(fx.engine)
	if fx.engine.Weather().IsSet() {
		t.Error("payload on another path should be ignored")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	e := NewEngine(Options{Logger: discardLogger()})
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "after-wait"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	runner.Step(e) // wait: consumes frame 1
	runner.Step(e) // frame 2
	runner.Step(e) // frame 3
	if len(e.screenshotQueue) != 0 {
		t.Fatal("screenshot queued before the wait elapsed")
	}
	runner.Step(e)
	if len(e.screenshotQueue) != 1 || e.screenshotQueue[0] != "after-wait" {
		t.Errorf("queue = %v, want [after-wait]", e.screenshotQueue)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerDone(t *testing.T) {
	e := NewEngine(Options{Logger: discardLogger()})
	runner, _ := LoadTestScript([]byte(`{"steps": [{"action": "tick"}]}`))
	if runner.Done() {
		t.Error("runner should not start done")
	}
	runner.Step(e)
	if !runner.Done() {
		t.Error("runner should be done after its only step")
	}
	runner.Step(e) // no-op
}
