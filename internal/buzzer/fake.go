package buzzer

import "time"

// PulseRecord is one recorded Pulse call.
type PulseRecord struct {
	On  time.Duration
	Off time.Duration
}

// FakeSounder records pulses for test assertions. It never sleeps.
type FakeSounder struct {
	// Pulses contains all recorded Pulse calls in order.
	Pulses []PulseRecord

	// PulseError, if set, will be returned by Pulse.
	PulseError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeSounder creates a FakeSounder for testing.
func NewFakeSounder() *FakeSounder {
	return &FakeSounder{}
}

// Pulse records the pulse without blocking.
func (f *FakeSounder) Pulse(on, off time.Duration) error {
	if f.PulseError != nil {
		return f.PulseError
	}
	f.Pulses = append(f.Pulses, PulseRecord{On: on, Off: off})
	return nil
}

// Close marks the sounder as closed.
func (f *FakeSounder) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded pulses.
func (f *FakeSounder) Reset() {
	f.Pulses = nil
	f.PulseError = nil
	f.Closed = false
}
