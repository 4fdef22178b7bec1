package hardware

import (
	"fmt"
	"sort"
	"sync"

	"github.com/warthog618/go-gpiocdev"

	"mover-service/internal/config"
	"mover-service/internal/logger"
)

// LinuxHardwareIO drives the mode indicator outputs through the GPIO
// character device.
type LinuxHardwareIO struct {
	logger   *logger.Logger
	consumer string
	mappings map[string]config.GPIOLine
	chips    map[int]*gpiocdev.Chip
	lines    map[string]*gpiocdev.Line
	mu       sync.Mutex
}

func NewLinuxHardwareIO(cfg config.GPIOConfig, l *logger.Logger) *LinuxHardwareIO {
	return &LinuxHardwareIO{
		logger:   l,
		consumer: cfg.Consumer,
		mappings: cfg.Lines,
		chips:    make(map[int]*gpiocdev.Chip),
		lines:    make(map[string]*gpiocdev.Line),
	}
}

// Initialize requests every configured line as an output driven low.
func (io *LinuxHardwareIO) Initialize() error {
	io.mu.Lock()
	defer io.mu.Unlock()

	io.logger.Infof("Initializing GPIO outputs")

	names := make([]string, 0, len(io.mappings))
	for name := range io.mappings {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		mapping := io.mappings[name]
		chip, ok := io.chips[mapping.Chip]
		if !ok {
			var err error
			chip, err = gpiocdev.NewChip(fmt.Sprintf("gpiochip%d", mapping.Chip))
			if err != nil {
				io.releaseLocked()
				return fmt.Errorf("failed to open GPIO chip %d: %w", mapping.Chip, err)
			}
			io.chips[mapping.Chip] = chip
		}

		line, err := chip.RequestLine(mapping.Line,
			gpiocdev.AsOutput(0),
			gpiocdev.WithConsumer(io.consumer))
		if err != nil {
			io.releaseLocked()
			return fmt.Errorf("failed to request GPIO line %d: %w", mapping.Line, err)
		}

		io.lines[name] = line
		io.logger.Infof("Configured DO %s: chip=%d, line=%d", name, mapping.Chip, mapping.Line)
	}

	return nil
}

func (io *LinuxHardwareIO) WriteDigitalOutput(channel string, value bool) error {
	io.mu.Lock()
	line, ok := io.lines[channel]
	io.mu.Unlock()
	if !ok {
		return fmt.Errorf("unknown output channel: %s", channel)
	}

	val := 0
	if value {
		val = 1
	}
	if err := line.SetValue(val); err != nil {
		return fmt.Errorf("failed to set %s: %w", channel, err)
	}
	io.logger.Debugf("Set %s=%v", channel, value)
	return nil
}

// Cleanup drives all outputs low and releases lines and chips.
func (io *LinuxHardwareIO) Cleanup() {
	io.mu.Lock()
	defer io.mu.Unlock()
	io.releaseLocked()
}

// releaseLocked requires io.mu. It is also used to undo a partial Initialize.
func (io *LinuxHardwareIO) releaseLocked() {
	for name, line := range io.lines {
		if err := line.SetValue(0); err != nil {
			io.logger.Warnf("Failed to reset %s: %v", name, err)
		}
		line.Close()
		io.logger.Debugf("Closed GPIO line for %s", name)
	}
	io.lines = make(map[string]*gpiocdev.Line)

	for id, chip := range io.chips {
		chip.Close()
		io.logger.Debugf("Closed GPIO chip %d", id)
	}
	io.chips = make(map[int]*gpiocdev.Chip)
}
