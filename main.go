package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"sensor-playground/internal/app"
	"sensor-playground/internal/config"
	"sensor-playground/internal/location"
	"sensor-playground/internal/sensors"
	"sensor-playground/internal/telemetry"
)

var (
	flagDemo       bool
	flagScreen     string
	flagGPSPort    string
	flagBMPBus     string
	flagMQTTBroker string
	flagLogFile    string
	flagLogLevel   string
)

// Demo location: Bloomington, Indiana.
var demoFix = location.StaticFix{Latitude: 39.1682, Longitude: -86.5252, Source: "demo"}

func main() {
	rootCmd := &cobra.Command{
		Use:   "playground",
		Short: "Sensor Playground - ambient sensors and a gesture canvas in your terminal",
		Long: `Sensor Playground shows your city and state, the ambient temperature and
the air pressure, and opens a gesture canvas where you drag a ball with the
mouse while a log reports each move and double tap.

Reads a BMP280/BME280 over I2C and an NMEA GPS receiver over serial.
Use --demo for simulated sensors and location without hardware.`,
		RunE: run,
	}

	rootCmd.Flags().BoolVar(&flagDemo, "demo", false, "Run with simulated sensors and location (no hardware required)")
	rootCmd.Flags().StringVar(&flagScreen, "screen", "sensors", "Screen to open first: sensors or gesture")
	rootCmd.Flags().StringVar(&flagGPSPort, "gps-port", "", "Serial port of the NMEA GPS receiver (overrides GPS_SERIAL_PORT)")
	rootCmd.Flags().StringVar(&flagBMPBus, "bmp-bus", "", "I2C bus of the BMP280/BME280 sensor (overrides BMP_I2C_BUS)")
	rootCmd.Flags().StringVar(&flagMQTTBroker, "mqtt-broker", "", "MQTT broker URL for telemetry (overrides MQTT_BROKER)")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (overrides PLAYGROUND_LOG_FILE)")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides PLAYGROUND_LOG_LEVEL)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	screen, err := app.ParseScreen(flagScreen)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	clock := clockwork.NewRealClock()

	opts := app.Options{
		Demo:    flagDemo,
		Screen:  screen,
		Clock:   clock,
		Logger:  logger,
		Sensors: newSensorSource(cfg, clock, logger),
		Locator: newLocator(cfg, logger),
	}

	if cfg.MQTTBroker != "" {
		pub, err := telemetry.Connect(cfg.MQTTBroker, cfg.MQTTClientID, cfg.MQTTTopicPrefix, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "\nWarning: %v\nContinuing without telemetry.\n\n", err)
		} else {
			defer pub.Close()
			opts.Publisher = pub
		}
	}

	model := app.New(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithFPS(config.TargetFPS),
	)

	// Start sources with reference to the tea program
	if err := model.StartSources(p); err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
		fmt.Fprintln(os.Stderr, "Reading the I2C sensor usually needs elevated permissions.")
		fmt.Fprintln(os.Stderr, "Try one of:")
		fmt.Fprintln(os.Stderr, "  sudo ./playground")
		fmt.Fprintln(os.Stderr, "  sudo usermod -aG i2c,dialout $USER")
		fmt.Fprintln(os.Stderr, "  ./playground --demo    (demo mode, no hardware needed)")
		return err
	}
	defer model.Stop()

	_, err = p.Run()
	return err
}

// applyFlags lets explicitly set flags win over the environment.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("gps-port") {
		cfg.GPSSerialPort = flagGPSPort
	}
	if flags.Changed("bmp-bus") {
		cfg.BMPI2CBus = flagBMPBus
	}
	if flags.Changed("mqtt-broker") {
		cfg.MQTTBroker = flagMQTTBroker
	}
	if flags.Changed("log-file") {
		cfg.LogFile = flagLogFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
}

// newLogger builds the app logger. The TUI owns stdout, so logs go to a file
// or nowhere.
func newLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, closeFn, nil
}

func newSensorSource(cfg *config.Config, clock clockwork.Clock, logger *slog.Logger) sensors.Source {
	if flagDemo || cfg.BMPI2CBus == "" {
		if !flagDemo {
			logger.Info("no I2C bus configured, sensor values stay at zero")
			return nil
		}
		return sensors.NewMockSource(config.DemoBaseTempC, config.DemoBasePressure,
			cfg.SensorPollInterval, clock, clock.Now().UnixNano())
	}
	return sensors.NewBMPSource(cfg.BMPI2CBus, cfg.BMPI2CAddr, cfg.SensorPollInterval, clock,
		logger.With("component", "bmp280"))
}

func newLocator(cfg *config.Config, logger *slog.Logger) *location.Locator {
	var geocoder location.Geocoder
	switch {
	case cfg.MapboxToken != "":
		client := location.NewMapboxClient(cfg.MapboxToken, cfg.MapboxTimeout, logger.With("component", "mapbox"))
		geocoder = location.NewCachedGeocoder(client, cfg.MapboxCacheSize)
	case flagDemo:
		geocoder = location.StaticGeocoder{Place: location.Place{City: "Bloomington", State: "Indiana"}}
	default:
		logger.Info("no MAPBOX_TOKEN configured, location stays pending")
		return nil
	}

	var fixes location.FixSource
	switch {
	case flagDemo:
		fixes = demoFix
	case cfg.GPSSerialPort != "":
		fixes = location.NewSerialGPS(cfg.GPSSerialPort, cfg.GPSBaudRate, logger.With("component", "gps"))
	default:
		logger.Info("no GPS serial port configured, location stays pending")
		return nil
	}

	return location.NewLocator(fixes, geocoder, cfg.MapboxTimeout, config.PlaceholderUnknown,
		logger.With("component", "locator"))
}
