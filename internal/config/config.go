package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// Gesture canvas
	StartX        = 100.0 // Ball start position in pixels
	StartY        = 150.0
	BallRadius    = 10.0 // Ball radius in pixels
	CellWidthPx   = 8.0  // Pixels per terminal column
	CellHeightPx  = 16.0 // Pixels per terminal row
	LogPanelRatio = 0.5  // Share of the screen given to the gesture log

	// Sensors
	HistorySize        = 120 // Readings kept for sparklines
	DemoBaseTempC      = 21.5
	DemoBasePressure   = 1013.25 // hPa
	PlaceholderPending = "Fetching..."
	PlaceholderUnknown = "Unknown"

	// Screen
	TargetFPS = 30
	OwnerName = "Evan Tomak"

	// App
	AppName    = "SENSOR-PLAYGROUND"
	AppVersion = "1.0"
)

// Config holds runtime settings, populated from environment variables and
// overridden by command-line flags.
type Config struct {
	LogLevel string
	LogFile  string

	// Mapbox reverse geocoding. Empty token means offline lookup.
	MapboxToken     string
	MapboxTimeout   time.Duration
	MapboxCacheSize int

	// GPS receiver (NMEA over serial). Empty port means no GPS.
	GPSSerialPort string
	GPSBaudRate   int

	// BMP280/BME280 on I2C. Empty bus name means no hardware sensor.
	BMPI2CBus  string
	BMPI2CAddr uint16

	SensorPollInterval time.Duration

	// MQTT telemetry. Empty broker disables publishing.
	MQTTBroker      string
	MQTTClientID    string
	MQTTTopicPrefix string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	mapboxTimeout, err := parseDuration("MAPBOX_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	pollInterval, err := parseDuration("SENSOR_POLL_INTERVAL", "1s")
	if err != nil {
		return nil, err
	}

	baud, err := parsePositiveInt("GPS_BAUD_RATE", 9600)
	if err != nil {
		return nil, err
	}

	cacheSize, err := parsePositiveInt("MAPBOX_CACHE_SIZE", 256)
	if err != nil {
		return nil, err
	}

	addr, err := parseI2CAddr(envOrDefault("BMP_I2C_ADDR", "0x76"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		LogLevel:           envOrDefault("PLAYGROUND_LOG_LEVEL", "info"),
		LogFile:            os.Getenv("PLAYGROUND_LOG_FILE"),
		MapboxToken:        os.Getenv("MAPBOX_TOKEN"),
		MapboxTimeout:      mapboxTimeout,
		MapboxCacheSize:    cacheSize,
		GPSSerialPort:      os.Getenv("GPS_SERIAL_PORT"),
		GPSBaudRate:        baud,
		BMPI2CBus:          os.Getenv("BMP_I2C_BUS"),
		BMPI2CAddr:         addr,
		SensorPollInterval: pollInterval,
		MQTTBroker:         os.Getenv("MQTT_BROKER"),
		MQTTClientID:       envOrDefault("MQTT_CLIENT_ID", "sensor-playground"),
		MQTTTopicPrefix:    envOrDefault("MQTT_TOPIC_PREFIX", "playground"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks fields that flags may have changed after Load.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.MQTTBroker != "" && c.MQTTClientID == "" {
		return errors.New("MQTT_CLIENT_ID is required when MQTT_BROKER is set")
	}
	if c.MQTTBroker != "" && strings.TrimSpace(c.MQTTTopicPrefix) == "" {
		return errors.New("MQTT_TOPIC_PREFIX is required when MQTT_BROKER is set")
	}
	return nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid log level %q", s)
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	s := envOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, s)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return n, nil
}

func parseI2CAddr(s string) (uint16, error) {
	n, err := strconv.ParseUint(s, 0, 16)
	if err != nil || n > 0x7F {
		return 0, fmt.Errorf("invalid BMP_I2C_ADDR %q", s)
	}
	return uint16(n), nil
}
