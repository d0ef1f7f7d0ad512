//go:build linux

package buzzer

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// RealSounder drives the buzzer through a GPIO output line.
type RealSounder struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// NewRealSounder requests the buzzer pin as an output, deasserted.
func NewRealSounder(pin int) (*RealSounder, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request buzzer pin %d: %w", pin, err)
	}

	return &RealSounder{chip: chip, line: line}, nil
}

// Pulse asserts the line for on, then deasserts and holds for off. The
// blocking is deliberate: pulse duration is part of the alert contract
// and the control loop owns the only reference to the output.
func (s *RealSounder) Pulse(on, off time.Duration) error {
	if err := s.line.SetValue(1); err != nil {
		return fmt.Errorf("assert buzzer: %w", err)
	}
	time.Sleep(on)

	if err := s.line.SetValue(0); err != nil {
		return fmt.Errorf("deassert buzzer: %w", err)
	}
	time.Sleep(off)

	return nil
}

// Close deasserts the buzzer and releases GPIO resources. The pin is
// reconfigured to input with pull-down (matching Pi boot defaults) so the
// buzzer stays silent across restarts.
func (s *RealSounder) Close() error {
	var errs []error

	if s.line != nil {
		if err := s.line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("deassert buzzer: %w", err))
		}
		if err := s.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure buzzer pin: %w", err))
		}
		if err := s.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close buzzer pin: %w", err))
		}
	}
	if s.chip != nil {
		if err := s.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
