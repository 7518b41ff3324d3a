package companion

import (
	"context"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	mochi "github.com/mochi-mqtt/server/v2"
	"github.com/mochi-mqtt/server/v2/hooks/auth"
	"github.com/mochi-mqtt/server/v2/listeners"

	"github.com/phanxgames/watchface"
)

// startBroker runs an in-process MQTT broker on addr. Publish on the
// returned server goes through its inline client.
func startBroker(t *testing.T, addr string) *mochi.Server {
	t.Helper()
	srv := mochi.New(&mochi.Options{
		InlineClient: true,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err := srv.AddHook(new(auth.AllowHook), nil); err != nil {
		t.Fatalf("add auth hook: %v", err)
	}
	tcp := listeners.NewTCP(listeners.Config{ID: "tcp", Address: addr})
	if err := srv.AddListener(tcp); err != nil {
		t.Fatalf("listen on %s: %v", addr, err)
	}
	go func() { _ = srv.Serve() }()
	return srv
}

// freeAddr returns a loopback address with a port nothing is listening on.
func freeAddr(t *testing.T) (addr string, host string, port int) {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr = l.Addr().String()
	l.Close()

	host, p, err := net.SplitHostPort(addr)
	if err != nil {
		t.Fatalf("split %s: %v", addr, err)
	}
	port, err = strconv.Atoi(p)
	if err != nil {
		t.Fatalf("port %s: %v", p, err)
	}
	return addr, host, port
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitFor(timeout time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return cond()
}

func TestConnectMarksSessionConnected(t *testing.T) {
	addr, host, port := freeAddr(t)
	srv := startBroker(t, addr)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i := range 20 {
		tr := NewTransport(Options{Broker: host, Port: port, ClientID: "watch-" + strconv.Itoa(i)}, quietLogger())
		if err := tr.Connect(ctx); err != nil {
			t.Fatalf("connect %d: %v", i, err)
		}
		if !tr.IsConnected() {
			t.Fatalf("IsConnected after Connect %d = false, want true", i)
		}
		unsub, err := tr.Subscribe(func(string, []byte) {})
		if err != nil {
			t.Fatalf("subscribe right after connect %d: %v", i, err)
		}
		unsub()
		tr.Disconnect()
	}
}

func TestChannelReceivesRetainedWeather(t *testing.T) {
	addr, host, port := freeAddr(t)
	srv := startBroker(t, addr)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pub := NewPublisher(Options{Broker: host, Port: port, ClientID: "phone"}, quietLogger())
	if err := pub.Connect(ctx); err != nil {
		t.Fatalf("publisher connect: %v", err)
	}
	defer pub.Disconnect()

	high, low, code := "75°", "58°", 500
	if err := pub.PublishWeather(watchface.WeatherPayload{High: &high, Low: &low, Condition: &code}); err != nil {
		t.Fatalf("publish right after connect: %v", err)
	}

	tr := NewTransport(Options{Broker: host, Port: port, ClientID: "watch"}, quietLogger())
	ch := watchface.NewConnectionChannel(tr, watchface.NewSVGIcons(32), quietLogger())
	got := make(chan watchface.WeatherState, 4)
	defer ch.OnPayload(func(w watchface.WeatherState) { got <- w })()

	if err := ch.Connect(ctx); err != nil {
		t.Fatalf("channel connect: %v", err)
	}
	defer ch.Disconnect()

	select {
	case w := <-got:
		if !w.IsSet() || *w.High != high || *w.Low != low || *w.Condition != code {
			t.Fatalf("weather = %+v", w)
		}
	case <-ctx.Done():
		t.Fatal("retained weather never reached the channel")
	}

	// Live updates after the subscription arrive too.
	high = "80°"
	if err := pub.PublishWeather(watchface.WeatherPayload{High: &high}); err != nil {
		t.Fatalf("publish update: %v", err)
	}
	select {
	case w := <-got:
		if w.High == nil || *w.High != "80°" {
			t.Fatalf("update high = %v, want 80°", w.High)
		}
		if w.Low != nil {
			t.Errorf("update low = %q, want absent", *w.Low)
		}
	case <-ctx.Done():
		t.Fatal("live update never reached the channel")
	}
}

func TestSubscriptionRestoredAfterReconnect(t *testing.T) {
	addr, host, port := freeAddr(t)
	srv := startBroker(t, addr)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tr := NewTransport(Options{Broker: host, Port: port, ClientID: "watch-reconnect"}, quietLogger())
	if err := tr.Connect(ctx); err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer tr.Disconnect()

	paths := make(chan string, 8)
	unsub, err := tr.Subscribe(func(path string, _ []byte) { paths <- path })
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer unsub()

	srv.Close()
	if !waitFor(10*time.Second, func() bool { return !tr.IsConnected() }) {
		t.Fatal("client never noticed the broker going away")
	}

	srv = startBroker(t, addr)
	defer srv.Close()
	if !waitFor(20*time.Second, tr.IsConnected) {
		t.Fatal("client did not reconnect")
	}

	// The new broker has no subscriptions from the old session. Retained
	// data reaches the watch only if the transport subscribed again.
	if err := srv.Publish("sunshine/weather", []byte(`{"high_temperature":"70°"}`), true, 1); err != nil {
		t.Fatalf("broker publish: %v", err)
	}
	select {
	case p := <-paths:
		if p != watchface.WeatherPath {
			t.Errorf("path = %q, want %q", p, watchface.WeatherPath)
		}
	case <-ctx.Done():
		t.Fatal("no data item delivered after reconnect")
	}
}
