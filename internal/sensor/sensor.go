// Package sensor provides water temperature readings with hardware
// abstraction. The real implementation reads a DS18B20 probe over the
// Linux 1-wire bus. The fake implementation allows testing without
// hardware.
package sensor

import "github.com/sweeney/recirc-alarm/internal/logic"

// Probe reads the water temperature.
type Probe interface {
	// ReadCelsius returns the current reading in degrees Celsius. A
	// disconnected probe reports logic.FaultSentinel; implausible
	// outliers are passed through unfiltered and classified downstream.
	ReadCelsius() (float64, error)

	// Close releases sensor resources.
	Close() error
}

// Disconnected is a probe that always reports the fault sentinel. It
// stands in for the real probe when initialization fails, so the device
// keeps running and keeps the fault visible instead of dying.
type Disconnected struct{}

// ReadCelsius always returns the fault sentinel.
func (Disconnected) ReadCelsius() (float64, error) {
	return logic.FaultSentinel, nil
}

// Close is a no-op.
func (Disconnected) Close() error {
	return nil
}
