// Package buzzer drives the audible alert output with hardware
// abstraction. The real implementation uses the Linux GPIO character
// device. The fake implementation allows testing without hardware.
package buzzer

import "time"

// Sounder emits alert pulses.
type Sounder interface {
	// Pulse asserts the output for on, deasserts it, then holds for off.
	// It blocks for the combined duration.
	Pulse(on, off time.Duration) error

	// Close releases GPIO resources.
	Close() error
}

// DefaultPin is the BCM pin number driving the buzzer transistor.
const DefaultPin = 21

// Default pulse shape.
const (
	DefaultPulseOn  = 200 * time.Millisecond
	DefaultPulseOff = 100 * time.Millisecond
)
