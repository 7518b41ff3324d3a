package companion

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/phanxgames/watchface"
)

// Transport is a watchface.Transport over MQTT. It subscribes to every topic
// under the prefix and hands each message to the handler with the prefix
// stripped, so "sunshine/weather" arrives as "/weather".
type Transport struct {
	*session
	prefix string

	handlerMu sync.RWMutex
	handler   func(path string, data []byte)
}

var _ watchface.Transport = (*Transport)(nil)

// NewTransport builds a transport. Nothing is sent until Connect.
func NewTransport(o Options, logger *slog.Logger) *Transport {
	t := &Transport{prefix: o.prefix()}
	t.session = newSession(o, logger, t.resubscribe)
	return t
}

// Filter returns the subscription filter, "<prefix>/#".
func (t *Transport) Filter() string {
	return t.prefix + "/#"
}

// Connect establishes the broker connection, honoring ctx and Disconnect.
func (t *Transport) Connect(ctx context.Context) error {
	return t.connect(ctx)
}

// Subscribe registers handler for every data item. Retained messages are
// delivered right away, so a fresh subscriber sees the last weather update.
func (t *Transport) Subscribe(handler func(path string, data []byte)) (func(), error) {
	if !t.IsConnected() {
		return nil, fmt.Errorf("mqtt client not connected")
	}
	t.handlerMu.Lock()
	t.handler = handler
	t.handlerMu.Unlock()

	if err := t.subscribe(); err != nil {
		t.handlerMu.Lock()
		t.handler = nil
		t.handlerMu.Unlock()
		return nil, err
	}

	filter := t.Filter()
	var once sync.Once
	return func() {
		once.Do(func() {
			t.handlerMu.Lock()
			t.handler = nil
			t.handlerMu.Unlock()
			if t.IsConnected() {
				token := t.client.Unsubscribe(filter)
				token.WaitTimeout(2 * time.Second)
			}
		})
	}, nil
}

func (t *Transport) subscribe() error {
	filter := t.Filter()
	qos := byte(1) // At least once delivery

	token := t.client.Subscribe(filter, qos, func(_ mqtt.Client, msg mqtt.Message) {
		t.handleMessage(msg.Topic(), msg.Payload())
	})
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("subscribe timeout for topic %s", filter)
	}
	if token.Error() != nil {
		return fmt.Errorf("subscribe to %s: %w", filter, token.Error())
	}
	t.logger.Info("subscribed to mqtt topic", "topic", filter, "qos", qos)
	return nil
}

// resubscribe restores the subscription after a reconnect. Clean sessions
// drop subscriptions on the broker, and retained items are redelivered.
func (t *Transport) resubscribe() {
	t.handlerMu.RLock()
	active := t.handler != nil
	t.handlerMu.RUnlock()
	if !active {
		return
	}
	if err := t.subscribe(); err != nil {
		t.logger.Warn("mqtt resubscribe failed", "topic", t.Filter(), "error", err)
	}
}

func (t *Transport) handleMessage(topic string, payload []byte) {
	t.logger.Debug("received mqtt message", "topic", topic, "size", len(payload))

	path, ok := PathForTopic(t.prefix, topic)
	if !ok {
		t.logger.Warn("message outside topic prefix", "topic", topic, "prefix", t.prefix)
		return
	}
	t.handlerMu.RLock()
	h := t.handler
	t.handlerMu.RUnlock()
	if h != nil {
		h(path, payload)
	}
}

// Disconnect stops the transport and closes the MQTT connection.
// Idempotent and safe to call multiple times.
func (t *Transport) Disconnect() {
	t.stop()
	t.logger.Info("mqtt transport disconnected")
}
