// Package logic contains pure business logic for the recirculation alarm.
// This package has NO external dependencies (no GPIO, I2C, MQTT, OS, or
// time.Sleep). Time is always injectable via time.Time parameters.
package logic

import "time"

// Stage represents the escalation stage of the alarm state machine.
// Stages are ordered and strictly monotonic within a run: the escalator
// never returns to an earlier stage short of a process restart.
type Stage int

const (
	StageIdle Stage = iota
	StageWarning1
	StageWarning2
	StageWarning3
	StageContinuous
)

// String returns the stage name used in logs, MQTT payloads and the
// status page.
func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "IDLE"
	case StageWarning1:
		return "WARNING_1"
	case StageWarning2:
		return "WARNING_2"
	case StageWarning3:
		return "WARNING_3"
	case StageContinuous:
		return "CONTINUOUS"
	}
	return "UNKNOWN"
}

// EventType represents an alarm event to be actuated and published.
type EventType string

const (
	// EventEscalation fires exactly once per stage transition.
	EventEscalation EventType = "ESCALATION"

	// EventContinuousPulse fires once per cycle while in the terminal
	// stage. It is actuated but not published per-cycle.
	EventContinuousPulse EventType = "CONTINUOUS_PULSE"
)

// Event represents one alarm pulse the control loop must emit.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Stage     Stage
	Elapsed   time.Duration
}

// Thresholds holds the run durations after which the escalator advances.
// A transition fires strictly after the threshold second has fully
// elapsed, never at it.
type Thresholds struct {
	// First ends Warning1 and enters Warning2.
	First time.Duration
	// Second ends Warning2 and enters Warning3.
	Second time.Duration
	// Final ends Warning3 and enters the terminal Continuous stage.
	Final time.Duration
}

// DefaultThresholds are the shipped escalation times.
var DefaultThresholds = Thresholds{
	First:  60 * time.Second,
	Second: 120 * time.Second,
	Final:  180 * time.Second,
}

// EventCounts tracks the number of emitted pulses since startup.
type EventCounts struct {
	Escalations      int
	ContinuousPulses int
}

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Stage     Stage
	Counts    EventCounts
}
