//go:build linux

package sensor

import (
	"fmt"

	"periph.io/x/conn/v3/onewire"
	"periph.io/x/conn/v3/onewire/onewirereg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ds18b20"
	"periph.io/x/host/v3"

	"github.com/sweeney/recirc-alarm/internal/logic"
)

// DS18B20 family code on the 1-wire bus.
const familyDS18B20 = 0x28

// RealProbe reads a DS18B20 temperature probe over the Linux 1-wire bus.
type RealProbe struct {
	bus onewire.BusCloser
	dev *ds18b20.Dev
}

// NewRealProbe opens the first available 1-wire bus and attaches to the
// first DS18B20 found on it.
func NewRealProbe() (*RealProbe, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}

	bus, err := onewirereg.Open("")
	if err != nil {
		return nil, fmt.Errorf("open 1-wire bus: %w", err)
	}

	addrs, err := bus.Search(false)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("search 1-wire bus: %w", err)
	}

	var addr onewire.Address
	found := false
	for _, a := range addrs {
		if byte(a) == familyDS18B20 {
			addr = a
			found = true
			break
		}
	}
	if !found {
		bus.Close()
		return nil, fmt.Errorf("no DS18B20 on 1-wire bus (%d devices)", len(addrs))
	}

	dev, err := ds18b20.New(bus, addr, 10)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("init ds18b20 %#x: %w", uint64(addr), err)
	}

	return &RealProbe{bus: bus, dev: dev}, nil
}

// ReadCelsius triggers a conversion and returns the temperature. A failed
// read reports the fault sentinel alongside the error so the caller's
// display path and log path both see the fault.
func (p *RealProbe) ReadCelsius() (float64, error) {
	var env physic.Env
	if err := p.dev.Sense(&env); err != nil {
		return logic.FaultSentinel, fmt.Errorf("sense ds18b20: %w", err)
	}
	return env.Temperature.Celsius(), nil
}

// Close releases the 1-wire bus.
func (p *RealProbe) Close() error {
	if err := p.dev.Halt(); err != nil {
		p.bus.Close()
		return fmt.Errorf("halt ds18b20: %w", err)
	}
	return p.bus.Close()
}
