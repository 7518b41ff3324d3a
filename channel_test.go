package watchface

import (
	"context"
	"errors"
	"testing"
)

func newTestChannel(t *testing.T) (*ConnectionChannel, *fakeTransport, *stubIcons) {
	t.Helper()
	tr := newFakeTransport()
	icons := newStubIcons()
	ch := NewConnectionChannel(tr, icons, discardLogger())
	if err := ch.Connect(context.Background()); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	return ch, tr, icons
}

func TestChannelDeliversWeather(t *testing.T) {
	ch, tr, icons := newTestChannel(t)

	var got []WeatherState
	ch.OnPayload(func(w WeatherState) { got = append(got, w) })

	tr.send(WeatherPath, []byte(`{"high_temperature":"75°","low_temperature":"58°","weather_condition":200}`))

	if len(got) != 1 {
		t.Fatalf("handler calls = %d, want 1", len(got))
	}
	w := got[0]
	if !w.IsSet() || *w.High != "75°" || *w.Low != "58°" || *w.Condition != 200 {
		t.Errorf("state = %+v", w)
	}
	if w.IconInteractive != icons.get("art_storm") {
		t.Error("interactive icon should be art_storm")
	}
	if w.IconAmbient != icons.get("ic_storm") {
		t.Error("ambient icon should be ic_storm")
	}
}

func TestChannelIgnoresOtherPaths(t *testing.T) {
	ch, tr, _ := newTestChannel(t)
	calls := 0
	ch.OnPayload(func(WeatherState) { calls++ })

	tr.send("/settings", []byte(`{"high_temperature":"1"}`))
	tr.send("/weather/extra", []byte(`{"high_temperature":"1"}`))
	if calls != 0 {
		t.Errorf("handler calls = %d, want 0", calls)
	}
}

func TestChannelDropsNonObject(t *testing.T) {
	ch, tr, _ := newTestChannel(t)
	calls := 0
	ch.OnPayload(func(WeatherState) { calls++ })

	tr.send(WeatherPath, []byte(`[]`))
	if calls != 0 {
		t.Errorf("handler calls = %d, want 0", calls)
	}
}

func TestChannelMalformedFieldIsAbsent(t *testing.T) {
	ch, tr, _ := newTestChannel(t)
	var got WeatherState
	ch.OnPayload(func(w WeatherState) { got = w })

	tr.send(WeatherPath, []byte(`{"high_temperature":75,"low_temperature":"58°"}`))
	if !got.IsSet() {
		t.Fatal("state should be set")
	}
	if got.High != nil {
		t.Errorf("High = %q, want absent", *got.High)
	}
	if got.IconInteractive != nil || got.IconAmbient != nil {
		t.Error("no condition should mean no icons")
	}
}

func TestChannelMissingIcon(t *testing.T) {
	ch, tr, icons := newTestChannel(t)
	icons.missing["art_rain"] = true
	var got WeatherState
	ch.OnPayload(func(w WeatherState) { got = w })

	tr.send(WeatherPath, []byte(`{"high_temperature":"60°","weather_condition":500}`))
	if got.IconInteractive != nil {
		t.Error("missing interactive icon should be nil")
	}
	if got.IconAmbient == nil {
		t.Error("ambient icon should still decode")
	}
}

func TestChannelUnsubscribe(t *testing.T) {
	ch, tr, _ := newTestChannel(t)
	calls := 0
	unsub := ch.OnPayload(func(WeatherState) { calls++ })

	tr.send(WeatherPath, []byte(`{}`))
	unsub()
	unsub() // idempotent
	tr.send(WeatherPath, []byte(`{}`))

	if calls != 1 {
		t.Errorf("handler calls = %d, want 1", calls)
	}
}

func TestChannelConnectFailure(t *testing.T) {
	tr := newFakeTransport()
	tr.connectErr = errors.New("offline")
	ch := NewConnectionChannel(tr, nil, discardLogger())

	err := ch.Connect(context.Background())
	if err == nil || !errors.Is(err, tr.connectErr) {
		t.Fatalf("Connect err = %v, want wrapped offline", err)
	}
}

func TestChannelDisconnectIdempotent(t *testing.T) {
	ch, tr, _ := newTestChannel(t)
	ch.Disconnect()
	ch.Disconnect()

	if tr.disconnects != 1 {
		t.Errorf("transport disconnects = %d, want 1", tr.disconnects)
	}
	if tr.unsubs != 1 {
		t.Errorf("transport unsubscribes = %d, want 1", tr.unsubs)
	}
	if err := ch.Connect(context.Background()); !errors.Is(err, ErrChannelClosed) {
		t.Errorf("Connect after Disconnect err = %v, want ErrChannelClosed", err)
	}
}
