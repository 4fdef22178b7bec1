// Package link mirrors outbound commands onto the flight controller's serial
// port as newline-delimited CSV.
//
// Wire format (mover -> flight controller):
//
//	PLANE_ID,LAT,LON,ALT,PARAM,COMMAND_ID
package link

import (
	"errors"
	"fmt"
	"io"
	"sync"

	serial "go.bug.st/serial"

	"mover-service/internal/config"
	"mover-service/internal/types"
)

// Link wraps an open serial port.
type Link struct {
	mu   sync.Mutex
	port io.WriteCloser
	dev  string
}

// ModeFromConfig translates the configured line settings into a serial mode.
func ModeFromConfig(cfg config.SerialConfig) (*serial.Mode, error) {
	mode := &serial.Mode{
		BaudRate: cfg.Baud,
		DataBits: cfg.DataBits,
	}

	switch cfg.Parity {
	case "", "none":
		mode.Parity = serial.NoParity
	case "even":
		mode.Parity = serial.EvenParity
	case "odd":
		mode.Parity = serial.OddParity
	default:
		return nil, fmt.Errorf("unsupported parity %q", cfg.Parity)
	}

	switch cfg.StopBits {
	case 0, 1:
		mode.StopBits = serial.OneStopBit
	case 2:
		mode.StopBits = serial.TwoStopBits
	default:
		return nil, fmt.Errorf("unsupported stop bits %d", cfg.StopBits)
	}

	return mode, nil
}

// Open opens and configures the serial device.
func Open(cfg config.SerialConfig) (*Link, error) {
	mode, err := ModeFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	p, err := serial.Open(cfg.Device, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial %s: %w", cfg.Device, err)
	}
	return &Link{port: p, dev: cfg.Device}, nil
}

func newLink(port io.WriteCloser, dev string) *Link {
	return &Link{port: port, dev: dev}
}

func (l *Link) Device() string {
	return l.dev
}

// FormatCommand renders a command as one CSV line without the newline.
func FormatCommand(c types.Command) string {
	return fmt.Sprintf("%d,%.7f,%.7f,%.2f,%.2f,%d",
		c.PlaneID, c.Latitude, c.Longitude, c.Altitude, c.Param, c.CommandID)
}

// PublishCommand writes c followed by '\n'.
func (l *Link) PublishCommand(c types.Command) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.port == nil {
		return errors.New("serial port not open")
	}
	if _, err := l.port.Write([]byte(FormatCommand(c) + "\n")); err != nil {
		return fmt.Errorf("serial write to %s failed: %w", l.dev, err)
	}
	return nil
}

// Close closes the underlying port. Closing twice is a no-op.
func (l *Link) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.port == nil {
		return nil
	}
	err := l.port.Close()
	l.port = nil
	return err
}
