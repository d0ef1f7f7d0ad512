package logic

import "fmt"

// FaultSentinel is the reading the probe reports when it is disconnected
// (the DS18B20 "device disconnected" value).
const FaultSentinel = -127.0

// GlitchCeiling is the plausibility ceiling in degrees Celsius. No
// recirculation loop reaches this; anything above it is treated as bus
// noise rather than real data or a hard fault.
const GlitchCeiling = 80.0

// Classification describes how an incoming reading is treated.
type Classification string

const (
	ReadingValid  Classification = "VALID"
	ReadingFault  Classification = "FAULT"
	ReadingGlitch Classification = "GLITCH"
)

// Classify sorts a reading into one of the three disjoint categories.
// The sentinel is checked before the ceiling so a disconnected probe is
// never mistaken for noise.
func Classify(c float64) Classification {
	switch {
	case c == FaultSentinel:
		return ReadingFault
	case c > GlitchCeiling:
		return ReadingGlitch
	default:
		return ReadingValid
	}
}

// FormatCelsius formats a temperature for the display: one decimal place
// with a unit suffix.
func FormatCelsius(c float64) string {
	return fmt.Sprintf("%.1f C", c)
}

// FaultLines is the two-line message shown when the probe reports the
// fault sentinel. A hard fault always overwrites whatever was displayed.
func FaultLines() []string {
	return []string{"SENSOR", "DISCONNECTED"}
}

// FrameKind describes what the display should do this cycle.
type FrameKind string

const (
	// FrameTemperature shows a valid reading as large centered text.
	FrameTemperature FrameKind = "TEMPERATURE"

	// FrameFault shows the sensor-disconnected message.
	FrameFault FrameKind = "FAULT"

	// FrameRetain means a transient glitch was suppressed: no clear, no
	// redraw, whatever was last drawn stays on screen.
	FrameRetain FrameKind = "RETAIN"
)

// Frame is the rendering decision for one cycle.
type Frame struct {
	Kind  FrameKind
	Text  string   // temperature frames only
	Lines []string // fault frames only
}

// Renderer decides what the display should show for each incoming
// reading. It owns the last successfully displayed value; glitched
// readings never overwrite it.
type Renderer struct {
	lastValid  float64
	hasValid   bool
	faultShown bool
}

// NewRenderer creates a renderer with nothing displayed yet.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render classifies reading and returns the frame for this cycle.
func (r *Renderer) Render(reading float64) Frame {
	switch Classify(reading) {
	case ReadingFault:
		r.faultShown = true
		return Frame{Kind: FrameFault, Lines: FaultLines()}
	case ReadingGlitch:
		return Frame{Kind: FrameRetain}
	default:
		r.lastValid = reading
		r.hasValid = true
		r.faultShown = false
		return Frame{Kind: FrameTemperature, Text: FormatCelsius(reading)}
	}
}

// LastValid returns the last valid temperature that was rendered and
// whether one exists yet.
func (r *Renderer) LastValid() (float64, bool) {
	return r.lastValid, r.hasValid
}

// FaultShown reports whether the fault message is what the display
// currently shows.
func (r *Renderer) FaultShown() bool {
	return r.faultShown
}
