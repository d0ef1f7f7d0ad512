package internal

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sweeney/recirc-alarm/internal/buzzer"
	"github.com/sweeney/recirc-alarm/internal/display"
	"github.com/sweeney/recirc-alarm/internal/logic"
	"github.com/sweeney/recirc-alarm/internal/mqtt"
	"github.com/sweeney/recirc-alarm/internal/sensor"
)

// cycle runs one control-loop iteration against the fakes, mirroring the
// order in cmd/recirc-alarm: read, render, show, advance, pulse, publish.
func cycle(t *testing.T, now time.Time, probe sensor.Probe, screen *display.Screen, escalator *logic.Escalator, renderer *logic.Renderer, sounder *buzzer.FakeSounder, publisher *mqtt.FakePublisher) {
	t.Helper()

	reading, err := probe.ReadCelsius()
	if err != nil {
		reading = logic.FaultSentinel
	}

	frame := renderer.Render(reading)
	if err := screen.Show(frame); err != nil {
		t.Fatalf("display error: %v", err)
	}

	for _, event := range escalator.Advance(now) {
		if err := sounder.Pulse(buzzer.DefaultPulseOn, buzzer.DefaultPulseOff); err != nil {
			t.Fatalf("buzzer error: %v", err)
		}
		if event.Type == logic.EventEscalation {
			if err := publisher.Publish(event); err != nil {
				t.Fatalf("publish error: %v", err)
			}
		}
	}
}

// TestIntegrationEscalationTimeline runs a full session with valid readings
// and verifies the pulse timeline: one pulse each at t=61,121,181, then one
// per cycle after.
func TestIntegrationEscalationTimeline(t *testing.T) {
	probe := sensor.NewFakeProbe([]float64{42.0})
	surface := display.NewFakeSurface()
	screen := display.NewScreen(surface, display.DefaultWidth, display.DefaultHeight)
	sounder := buzzer.NewFakeSounder()
	publisher := mqtt.NewFakePublisher()

	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	escalator := logic.NewEscalator(start, logic.DefaultThresholds)
	renderer := logic.NewRenderer()

	pulsesBySecond := map[int]int{}
	for s := 0; s <= 186; s++ {
		before := len(sounder.Pulses)
		cycle(t, start.Add(time.Duration(s)*time.Second), probe, screen, escalator, renderer, sounder, publisher)
		if n := len(sounder.Pulses) - before; n > 0 {
			pulsesBySecond[s] = n
		}
	}

	for s := 0; s <= 60; s++ {
		if pulsesBySecond[s] != 0 {
			t.Errorf("t=%ds: expected no pulses before first threshold", s)
		}
	}
	for _, s := range []int{61, 121, 181, 182, 183, 184, 185, 186} {
		if pulsesBySecond[s] != 1 {
			t.Errorf("t=%ds: expected exactly 1 pulse, got %d", s, pulsesBySecond[s])
		}
	}
	if pulsesBySecond[62] != 0 || pulsesBySecond[120] != 0 || pulsesBySecond[180] != 0 {
		t.Error("pulses fired between thresholds")
	}

	// Only stage transitions reach the broker.
	if len(publisher.Events) != 3 {
		t.Fatalf("expected 3 published escalations, got %d", len(publisher.Events))
	}
	wantStages := []logic.Stage{logic.StageWarning2, logic.StageWarning3, logic.StageContinuous}
	for i, want := range wantStages {
		if publisher.Events[i].Stage != want {
			t.Errorf("published event %d: got %s, want %s", i, publisher.Events[i].Stage, want)
		}
	}

	// Payloads are well-formed.
	var parsed mqtt.Payload
	if err := json.Unmarshal(publisher.Payloads[0], &parsed); err != nil {
		t.Fatalf("invalid payload JSON: %v", err)
	}
	if parsed.Alarm.Stage != "WARNING_2" || parsed.Alarm.ElapsedSeconds != 61 {
		t.Errorf("unexpected first payload: %+v", parsed.Alarm)
	}
}

// TestIntegrationFaultAndRecovery: a fault sentinel shows the fault message
// immediately and a later valid reading restores the temperature display.
func TestIntegrationFaultAndRecovery(t *testing.T) {
	samples := []float64{
		36.5,                // t=0
		36.5,                // t=1
		logic.FaultSentinel, // t=2 (fault shows immediately)
		logic.FaultSentinel, // t=3
		37.2,                // t=4 (recovery)
	}
	probe := sensor.NewFakeProbe(samples)
	surface := display.NewFakeSurface()
	screen := display.NewScreen(surface, display.DefaultWidth, display.DefaultHeight)
	sounder := buzzer.NewFakeSounder()
	publisher := mqtt.NewFakePublisher()

	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	escalator := logic.NewEscalator(start, logic.DefaultThresholds)
	renderer := logic.NewRenderer()

	for s := 0; s < len(samples); s++ {
		cycle(t, start.Add(time.Duration(s)*time.Second), probe, screen, escalator, renderer, sounder, publisher)
	}

	texts := surface.Texts()
	want := []string{"36.5 C", "36.5 C", "SENSOR", "DISCONNECTED", "SENSOR", "DISCONNECTED", "37.2 C"}
	if len(texts) != len(want) {
		t.Fatalf("drawn texts: got %v, want %v", texts, want)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("text %d: got %q, want %q", i, texts[i], want[i])
		}
	}

	// Every non-glitch cycle flushes exactly once.
	if surface.Presents != 5 {
		t.Errorf("expected 5 presents, got %d", surface.Presents)
	}
}

// TestIntegrationGlitchSuppression verifies a glitched reading leaves the
// panel bit-for-bit untouched: no clear, no draw, no flush.
func TestIntegrationGlitchSuppression(t *testing.T) {
	samples := []float64{
		41.2,  // t=0
		250.0, // t=1 glitch, suppressed
		85.0,  // t=2 glitch (DS18B20 power-on value), suppressed
		12.0,  // t=3 plausible again, displayed immediately
	}
	probe := sensor.NewFakeProbe(samples)
	surface := display.NewFakeSurface()
	screen := display.NewScreen(surface, display.DefaultWidth, display.DefaultHeight)
	sounder := buzzer.NewFakeSounder()
	publisher := mqtt.NewFakePublisher()

	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	escalator := logic.NewEscalator(start, logic.DefaultThresholds)
	renderer := logic.NewRenderer()

	cycle(t, start, probe, screen, escalator, renderer, sounder, publisher)
	opsAfterFirst := len(surface.Ops)

	cycle(t, start.Add(1*time.Second), probe, screen, escalator, renderer, sounder, publisher)
	cycle(t, start.Add(2*time.Second), probe, screen, escalator, renderer, sounder, publisher)

	if len(surface.Ops) != opsAfterFirst {
		t.Errorf("glitch cycles issued %d surface ops, want 0", len(surface.Ops)-opsAfterFirst)
	}
	if last, ok := renderer.LastValid(); !ok || last != 41.2 {
		t.Errorf("displayed value changed across glitches: %v (ok=%v)", last, ok)
	}

	cycle(t, start.Add(3*time.Second), probe, screen, escalator, renderer, sounder, publisher)
	texts := surface.Texts()
	if texts[len(texts)-1] != "12.0 C" {
		t.Errorf("expected immediate display after glitch, got %q", texts[len(texts)-1])
	}
}

// TestIntegrationEscalatesThroughFault verifies the clock, not the sensor,
// owns escalation: a dead probe never delays the continuous alert.
func TestIntegrationEscalatesThroughFault(t *testing.T) {
	probe := sensor.Disconnected{}
	surface := display.NewFakeSurface()
	screen := display.NewScreen(surface, display.DefaultWidth, display.DefaultHeight)
	sounder := buzzer.NewFakeSounder()
	publisher := mqtt.NewFakePublisher()

	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	escalator := logic.NewEscalator(start, logic.DefaultThresholds)
	renderer := logic.NewRenderer()

	for s := 0; s <= 185; s++ {
		cycle(t, start.Add(time.Duration(s)*time.Second), probe, screen, escalator, renderer, sounder, publisher)
	}

	if escalator.Stage() != logic.StageContinuous {
		t.Errorf("expected CONTINUOUS with a dead probe, got %s", escalator.Stage())
	}
	// 3 escalations + 4 continuous pulses (t=182..185).
	if len(sounder.Pulses) != 7 {
		t.Errorf("expected 7 pulses, got %d", len(sounder.Pulses))
	}
	if texts := surface.Texts(); texts[0] != "SENSOR" {
		t.Errorf("expected fault message on screen, got %q", texts[0])
	}
}
