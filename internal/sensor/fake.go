package sensor

import "errors"

// FakeProbe is a test double that returns scripted temperature readings.
type FakeProbe struct {
	// Samples contains scripted readings in degrees Celsius.
	// Each call to ReadCelsius consumes the next sample.
	Samples []float64

	// index tracks current position in Samples
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by ReadCelsius()
	ReadError error
}

// NewFakeProbe creates a FakeProbe with the given samples.
func NewFakeProbe(samples []float64) *FakeProbe {
	return &FakeProbe{Samples: samples}
}

// ReadCelsius returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakeProbe) ReadCelsius() (float64, error) {
	if f.ReadError != nil {
		return 0, f.ReadError
	}

	if len(f.Samples) == 0 {
		return 0, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	return sample, nil
}

// Close marks the probe as closed.
func (f *FakeProbe) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the probe to the beginning of samples.
func (f *FakeProbe) Reset() {
	f.index = 0
	f.Closed = false
}
