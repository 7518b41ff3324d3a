package watchface

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Transport delivers companion data items. Subscribe's handler may be called
// from any goroutine.
type Transport interface {
	Connect(ctx context.Context) error
	Subscribe(handler func(path string, data []byte)) (unsubscribe func(), err error)
	Disconnect()
}

// ErrChannelClosed is returned by Connect after Disconnect.
var ErrChannelClosed = errors.New("connection channel closed")

// ConnectionChannel keeps the session to the companion data service and turns
// weather data items into WeatherState values.
type ConnectionChannel struct {
	transport Transport
	icons     IconSource
	logger    *slog.Logger

	mu       sync.Mutex
	handlers map[uint64]func(WeatherState)
	nextID   uint64
	unsub    func()
	closed   bool
}

// NewConnectionChannel wraps a transport. icons may be nil, in which case
// states carry no icons.
func NewConnectionChannel(t Transport, icons IconSource, logger *slog.Logger) *ConnectionChannel {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConnectionChannel{
		transport: t,
		icons:     icons,
		logger:    logger,
		handlers:  make(map[uint64]func(WeatherState)),
	}
}

// OnPayload registers handler for every received weather update and returns
// a function that removes it.
func (c *ConnectionChannel) OnPayload(handler func(WeatherState)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.handlers[id] = handler
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.handlers, id)
			c.mu.Unlock()
		})
	}
}

// Connect opens the session and subscribes to data items. Failures are
// logged and returned; they are not fatal and are not retried here.
func (c *ConnectionChannel) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrChannelClosed
	}
	c.mu.Unlock()

	if err := c.transport.Connect(ctx); err != nil {
		c.logger.Warn("companion connection failed", "error", err)
		return fmt.Errorf("connect: %w", err)
	}
	unsub, err := c.transport.Subscribe(c.receive)
	if err != nil {
		c.logger.Warn("companion subscribe failed", "error", err)
		return fmt.Errorf("subscribe: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		unsub()
		return ErrChannelClosed
	}
	c.unsub = unsub
	c.logger.Info("companion connected")
	return nil
}

// Disconnect unsubscribes and closes the session. It is idempotent.
func (c *ConnectionChannel) Disconnect() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	unsub := c.unsub
	c.unsub = nil
	clear(c.handlers)
	c.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	c.transport.Disconnect()
	c.logger.Info("companion disconnected")
}

// receive handles one data item from the transport.
func (c *ConnectionChannel) receive(path string, data []byte) {
	if path != WeatherPath {
		c.logger.Debug("ignoring data item", "path", path)
		return
	}
	payload, fieldErrs, err := DecodeWeatherPayload(data)
	if err != nil {
		c.logger.Warn("dropping weather payload", "error", err, "size", len(data))
		return
	}
	for _, fe := range fieldErrs {
		c.logger.Warn("malformed weather field", "error", fe)
	}

	state := c.buildState(payload)
	c.logger.Debug("weather updated",
		"high", derefOr(payload.High, ""),
		"low", derefOr(payload.Low, ""),
		"condition", derefOr(payload.Condition, -1),
	)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	handlers := make([]func(WeatherState), 0, len(c.handlers))
	for _, h := range c.handlers {
		handlers = append(handlers, h)
	}
	c.mu.Unlock()

	for _, h := range handlers {
		h(state)
	}
}

func (c *ConnectionChannel) buildState(p WeatherPayload) WeatherState {
	if p.Condition == nil || c.icons == nil {
		return NewWeatherState(p, nil, nil)
	}
	pair := IconsForCondition(*p.Condition)
	interactive, err := c.icons.Icon(pair.Interactive)
	if err != nil {
		c.logger.Warn("interactive icon unavailable", "key", pair.Interactive, "error", err)
		interactive = nil
	}
	ambient, err := c.icons.Icon(pair.Ambient)
	if err != nil {
		c.logger.Warn("ambient icon unavailable", "key", pair.Ambient, "error", err)
		ambient = nil
	}
	return NewWeatherState(p, interactive, ambient)
}

func derefOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
