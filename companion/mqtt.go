// Package companion carries weather data items between the paired phone
// and the watch face over MQTT.
package companion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// DefaultTopicPrefix is the topic namespace data items live under.
const DefaultTopicPrefix = "sunshine"

// ErrStopped is returned by Connect after Disconnect.
var ErrStopped = errors.New("transport stopped")

// Options configures a Transport or Publisher.
type Options struct {
	Broker      string
	Port        int
	ClientID    string
	TopicPrefix string
}

func (o Options) prefix() string {
	p := strings.Trim(o.TopicPrefix, "/")
	if p == "" {
		return DefaultTopicPrefix
	}
	return p
}

// TopicForPath maps a data item path such as "/weather" onto its topic.
func TopicForPath(prefix, path string) string {
	return strings.Trim(prefix, "/") + "/" + strings.TrimPrefix(path, "/")
}

// PathForTopic maps a topic back onto its data item path. ok is false for
// topics outside prefix.
func PathForTopic(prefix, topic string) (path string, ok bool) {
	rest, found := strings.CutPrefix(topic, strings.Trim(prefix, "/")+"/")
	if !found || rest == "" {
		return "", false
	}
	return "/" + rest, true
}

// newClientOptions builds the paho options. onConnect runs on every
// successful connect, including automatic reconnects.
func newClientOptions(o Options, logger *slog.Logger, setConnected func(bool), onConnect func()) *mqtt.ClientOptions {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", o.Broker, o.Port))
	opts.SetClientID(o.ClientID)

	// Session settings
	opts.SetCleanSession(true)

	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(5 * time.Second)
	opts.SetMaxReconnectInterval(60 * time.Second)

	// Keepalive / timeouts
	opts.SetKeepAlive(30 * time.Second)
	opts.SetPingTimeout(10 * time.Second)

	// Callbacks keep internal state accurate
	opts.SetOnConnectHandler(func(_ mqtt.Client) {
		setConnected(true)
		logger.Info("mqtt connected", "broker", o.Broker, "port", o.Port)
		if onConnect != nil {
			onConnect()
		}
	})

	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		setConnected(false)
		logger.Warn("mqtt connection lost", "error", err)
	})
	return opts
}

// session is the connection state shared by Transport and Publisher.
type session struct {
	client    mqtt.Client
	logger    *slog.Logger
	mu        sync.RWMutex
	connected bool

	stopCh   chan struct{}
	stopOnce sync.Once
}

func newSession(o Options, logger *slog.Logger, onConnect func()) *session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &session{logger: logger, stopCh: make(chan struct{})}
	s.client = mqtt.NewClient(newClientOptions(o, logger, s.setConnected, onConnect))
	return s
}

// connect waits for the initial connection in a ctx/stop-aware loop.
func (s *session) connect(ctx context.Context) error {
	// Fail fast if already stopped.
	select {
	case <-s.stopCh:
		return ErrStopped
	default:
	}

	// Fast path.
	if s.IsConnected() {
		return nil
	}

	// With ConnectRetry(true), paho may keep retrying internally.
	token := s.client.Connect()

	const poll = 200 * time.Millisecond
	for {
		if token.WaitTimeout(poll) {
			if err := token.Error(); err != nil {
				return fmt.Errorf("mqtt connect: %w", err)
			}
			// paho runs OnConnect in its own goroutine after the token
			// completes, so the flag is set here too.
			s.setConnected(true)
			return nil
		}

		select {
		case <-ctx.Done():
			s.client.Disconnect(0)
			return ctx.Err()
		case <-s.stopCh:
			s.client.Disconnect(0)
			return ErrStopped
		default:
		}
	}
}

// IsConnected returns whether the client is connected.
func (s *session) IsConnected() bool {
	s.mu.RLock()
	connected := s.connected
	s.mu.RUnlock()
	return connected && s.client.IsConnected()
}

func (s *session) stop() {
	// Signal shutdown once (unblocks any connect loops).
	s.stopOnce.Do(func() { close(s.stopCh) })

	// Paho Disconnect quiesces in-flight work for the given ms; safe even
	// if already disconnected.
	if s.client != nil {
		s.client.Disconnect(250)
	}
	s.setConnected(false)
}

func (s *session) setConnected(v bool) {
	s.mu.Lock()
	s.connected = v
	s.mu.Unlock()
}
