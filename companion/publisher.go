package companion

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/phanxgames/watchface"
)

// Publisher sends data items the way the phone app does: retained, QoS 1,
// so a watch that connects later still gets the latest value.
type Publisher struct {
	*session
	prefix string
}

// NewPublisher builds a publisher. Nothing is sent until Connect.
func NewPublisher(o Options, logger *slog.Logger) *Publisher {
	return &Publisher{
		session: newSession(o, logger, nil),
		prefix:  o.prefix(),
	}
}

// Connect establishes the broker connection, honoring ctx and Disconnect.
func (p *Publisher) Connect(ctx context.Context) error {
	return p.connect(ctx)
}

// Publish sends data to the topic for path.
func (p *Publisher) Publish(path string, data []byte) error {
	if !p.IsConnected() {
		return fmt.Errorf("mqtt client not connected")
	}

	topic := TopicForPath(p.prefix, path)
	token := p.client.Publish(topic, 1, true, data) // retained
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout for topic %s", topic)
	}
	if token.Error() != nil {
		p.logger.Error("failed to publish data item", "topic", topic, "error", token.Error())
		return fmt.Errorf("publish %s: %w", path, token.Error())
	}

	p.logger.Debug("published data item", "topic", topic, "size", len(data))
	return nil
}

// PublishWeather encodes w and publishes it on the weather path.
func (p *Publisher) PublishWeather(w watchface.WeatherPayload) error {
	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("marshal weather: %w", err)
	}
	return p.Publish(watchface.WeatherPath, data)
}

// Disconnect stops the publisher and closes the MQTT connection.
// Idempotent and safe to call multiple times.
func (p *Publisher) Disconnect() {
	p.stop()
	p.logger.Info("mqtt publisher disconnected")
}
