//go:build !linux

package buzzer

import (
	"errors"
	"time"
)

// RealSounder is not available on non-Linux platforms.
type RealSounder struct{}

// NewRealSounder returns an error on non-Linux platforms.
func NewRealSounder(pin int) (*RealSounder, error) {
	return nil, errors.New("buzzer: not supported on this platform (requires Linux)")
}

// Pulse is not implemented on non-Linux platforms.
func (s *RealSounder) Pulse(on, off time.Duration) error {
	return errors.New("buzzer: not supported")
}

// Close is not implemented on non-Linux platforms.
func (s *RealSounder) Close() error {
	return nil
}
