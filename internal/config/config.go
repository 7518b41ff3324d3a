package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	AppEnv   string
	LogLevel slog.Level

	MQTTBroker      string
	MQTTPort        int
	MQTTClientID    string
	MQTTTopicPrefix string

	// WatchShape is "round" or "square"; WatchSize is the square surface
	// edge in pixels.
	WatchShape    string
	WatchSize     int
	LowBitAmbient bool
	Use24Hour     bool
	Locale        string

	// ResourcesFile is an optional YAML theme overlay.
	ResourcesFile string
	// ScreenshotDir is the absolute directory screenshots are written to.
	ScreenshotDir string
	// ScriptFile is an optional JSON host-event script.
	ScriptFile string
}

// IsRound reports whether the configured watch is round.
func (c Config) IsRound() bool {
	return c.WatchShape == "round"
}

func LoadFromEnv() (Config, error) {
	appEnv := envOr("APP_ENV", "dev")
	switch appEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", appEnv)
	}

	level, err := parseLogLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}

	broker := envOr("MQTT_BROKER", "localhost")

	portStr := envOr("MQTT_PORT", "1883")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid MQTT_PORT %q: %w", portStr, err)
	}
	if port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid MQTT_PORT %q (allowed: 1-65535)", portStr)
	}

	clientID := envOr("MQTT_CLIENT_ID", "watchface")
	prefix := envOr("MQTT_TOPIC_PREFIX", "sunshine")

	shape := strings.ToLower(envOr("WATCH_SHAPE", "round"))
	switch shape {
	case "round", "square":
	default:
		return Config{}, fmt.Errorf("invalid WATCH_SHAPE %q (allowed: round, square)", shape)
	}

	sizeStr := envOr("WATCH_SIZE", "320")
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid WATCH_SIZE %q: %w", sizeStr, err)
	}
	if size < 10 {
		return Config{}, fmt.Errorf("invalid WATCH_SIZE %q (minimum 10)", sizeStr)
	}

	lowBitStr := envOr("LOW_BIT_AMBIENT", "false")
	lowBit, err := strconv.ParseBool(lowBitStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid LOW_BIT_AMBIENT %q: %w", lowBitStr, err)
	}

	timeFormat := strings.ToLower(envOr("TIME_FORMAT", "12h"))
	switch timeFormat {
	case "12h", "24h":
	default:
		return Config{}, fmt.Errorf("invalid TIME_FORMAT %q (allowed: 12h, 24h)", timeFormat)
	}

	screenshotDir, err := filepath.Abs(envOr("SCREENSHOT_DIR", "screenshots"))
	if err != nil {
		return Config{}, fmt.Errorf("SCREENSHOT_DIR %q: %w", os.Getenv("SCREENSHOT_DIR"), err)
	}

	return Config{
		AppEnv:          appEnv,
		LogLevel:        level,
		MQTTBroker:      broker,
		MQTTPort:        port,
		MQTTClientID:    clientID,
		MQTTTopicPrefix: prefix,
		WatchShape:      shape,
		WatchSize:       size,
		LowBitAmbient:   lowBit,
		Use24Hour:       timeFormat == "24h",
		Locale:          envOr("LOCALE", "en-US"),
		ResourcesFile:   strings.TrimSpace(os.Getenv("RESOURCES_FILE")),
		ScreenshotDir:   screenshotDir,
		ScriptFile:      strings.TrimSpace(os.Getenv("SCRIPT_FILE")),
	}, nil
}

func envOr(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
