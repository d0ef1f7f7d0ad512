//go:build !linux

package sensor

import "errors"

// RealProbe is not available on non-Linux platforms.
type RealProbe struct{}

// NewRealProbe returns an error on non-Linux platforms.
func NewRealProbe() (*RealProbe, error) {
	return nil, errors.New("sensor: not supported on this platform (requires Linux)")
}

// ReadCelsius is not implemented on non-Linux platforms.
func (p *RealProbe) ReadCelsius() (float64, error) {
	return 0, errors.New("sensor: not supported")
}

// Close is not implemented on non-Linux platforms.
func (p *RealProbe) Close() error {
	return nil
}
