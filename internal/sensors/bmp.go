package sensors

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/bmxx80"
	"periph.io/x/host/v3"
)

// envSensor is the part of *bmxx80.Dev the poller uses.
type envSensor interface {
	Sense(e *physic.Env) error
	Halt() error
}

// BMPSource polls a BMP280/BME280 on an I2C bus for temperature and pressure.
type BMPSource struct {
	busName  string
	addr     uint16
	interval time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger

	bus     i2c.BusCloser
	dev     envSensor
	program Sender
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewBMPSource creates a source for the sensor at addr on busName ("1",
// "/dev/i2c-1", or "" for the first bus).
func NewBMPSource(busName string, addr uint16, interval time.Duration, clock clockwork.Clock, logger *slog.Logger) *BMPSource {
	return &BMPSource{
		busName:  busName,
		addr:     addr,
		interval: interval,
		clock:    clock,
		logger:   logger,
	}
}

// Start opens the bus, initializes the sensor and begins polling.
func (s *BMPSource) Start(p Sender) error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("periph host init: %w", err)
	}

	bus, err := i2creg.Open(s.busName)
	if err != nil {
		return fmt.Errorf("open I2C bus %q: %w", s.busName, err)
	}

	dev, err := bmxx80.NewI2C(bus, s.addr, &bmxx80.DefaultOpts)
	if err != nil {
		_ = bus.Close()
		return fmt.Errorf("BMP init at 0x%02X: %w", s.addr, err)
	}

	s.bus = bus
	s.start(p, dev)
	s.logger.Info("BMP sensor initialized", "bus", s.busName, "addr", fmt.Sprintf("0x%02X", s.addr), "device", dev.String())
	return nil
}

func (s *BMPSource) start(p Sender, dev envSensor) {
	s.program = p
	s.dev = dev

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		poll(ctx, s.clock, s.interval, s.sense)
	}()
}

func (s *BMPSource) sense(now time.Time) {
	var e physic.Env
	if err := s.dev.Sense(&e); err != nil {
		s.logger.Warn("BMP sense failed", "error", err)
		return
	}

	pressureHPa := float64(e.Pressure) / float64(physic.Pascal) / 100.0 // 1 hPa = 100 Pa
	s.program.Send(ReadingMsg{Kind: KindTemperature, Value: e.Temperature.Celsius(), At: now, Source: "bmp280"})
	s.program.Send(ReadingMsg{Kind: KindPressure, Value: pressureHPa, At: now, Source: "bmp280"})
}

// Stop halts polling and releases the sensor.
func (s *BMPSource) Stop() {
	if s.cancel != nil {
		s.cancel()
		<-s.done
		s.cancel = nil
	}
	if s.dev != nil {
		if err := s.dev.Halt(); err != nil {
			s.logger.Warn("BMP halt failed", "error", err)
		}
		s.dev = nil
	}
	if s.bus != nil {
		_ = s.bus.Close()
		s.bus = nil
	}
}
