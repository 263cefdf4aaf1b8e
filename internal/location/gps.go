package location

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	nmea "github.com/adrianmo/go-nmea"
	serial "github.com/jacobsa/go-serial/serial"
)

// SerialGPS reads NMEA sentences from a GPS receiver on a serial port. Each
// call to Fix opens the port, waits for the first valid fix and closes it
// again, so the receiver is only held while a location is being requested.
type SerialGPS struct {
	portName string
	baudRate int
	logger   *slog.Logger
}

// NewSerialGPS creates a GPS fix source on portName (e.g. /dev/ttyUSB0).
func NewSerialGPS(portName string, baudRate int, logger *slog.Logger) *SerialGPS {
	return &SerialGPS{portName: portName, baudRate: baudRate, logger: logger}
}

func (g *SerialGPS) Fix(ctx context.Context) (Fix, error) {
	opts := serial.OpenOptions{
		PortName:        g.portName,
		BaudRate:        uint(g.baudRate),
		DataBits:        8,
		StopBits:        1,
		MinimumReadSize: 1,
		ParityMode:      serial.PARITY_NONE,
	}

	port, err := serial.Open(opts)
	if err != nil {
		return Fix{}, fmt.Errorf("open GPS port %s: %w", g.portName, err)
	}
	defer port.Close()
	g.logger.Info("GPS serial port opened", "port", g.portName, "baud", g.baudRate)

	// Closing the port unblocks a pending read when ctx is cancelled.
	stop := context.AfterFunc(ctx, func() { _ = port.Close() })
	defer stop()

	fix, err := ReadFix(ctx, port, g.logger)
	if err != nil {
		return Fix{}, err
	}
	fix.Source = "gps:" + g.portName
	return fix, nil
}

// ReadFix scans NMEA sentences from r and returns the first valid RMC or GGA
// position. It returns ErrNoFix if r ends first.
func ReadFix(ctx context.Context, r io.Reader, logger *slog.Logger) (Fix, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return Fix{}, err
		}

		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "$") {
			continue
		}

		sentence, err := nmea.Parse(line)
		if err != nil {
			// noisy receivers emit partial sentences
			logger.Debug("NMEA parse error", "error", err, "line", line)
			continue
		}

		switch m := sentence.(type) {
		case nmea.RMC:
			if m.Validity == nmea.ValidRMC {
				return Fix{Latitude: m.Latitude, Longitude: m.Longitude}, nil
			}
		case nmea.GGA:
			if m.FixQuality != nmea.Invalid {
				return Fix{Latitude: m.Latitude, Longitude: m.Longitude}, nil
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return Fix{}, err
	}
	if err := scanner.Err(); err != nil {
		return Fix{}, fmt.Errorf("read NMEA: %w", err)
	}
	return Fix{}, ErrNoFix
}
