package logic

import "time"

// Escalator converts elapsed run time into an escalating sequence of
// discrete alarm pulses, ending in a continuous per-cycle alert.
//
// There is deliberately no disarm or reset: once the terminal stage is
// reached only a restart of the owning process silences the alarm, so an
// operator cannot mute it while the solenoid is still open.
type Escalator struct {
	thresholds    Thresholds
	stage         Stage
	startTime     time.Time
	eventCounts   EventCounts
	lastHeartbeat time.Time
}

// NewEscalator creates an escalator for a run that started at startTime.
// startTime is recorded once and never changes for the life of the run.
func NewEscalator(startTime time.Time, thresholds Thresholds) *Escalator {
	return &Escalator{
		thresholds:    thresholds,
		stage:         StageIdle,
		startTime:     startTime,
		lastHeartbeat: startTime,
	}
}

// Advance moves the state machine to the stage corresponding to now and
// returns the pulses the control loop must emit this cycle.
//
// Elapsed time is compared in whole seconds; the exact threshold second
// still belongs to the prior stage. If a slow cycle jumps past several
// thresholds at once, one escalation pulse is emitted per transition.
func (e *Escalator) Advance(now time.Time) []Event {
	elapsed := now.Sub(e.startTime)
	secs := int64(elapsed / time.Second)

	if e.stage == StageContinuous {
		e.eventCounts.ContinuousPulses++
		return []Event{{
			Timestamp: now,
			Type:      EventContinuousPulse,
			Stage:     StageContinuous,
			Elapsed:   elapsed,
		}}
	}

	// Idle exists only until the first cycle; arming is silent.
	if e.stage == StageIdle {
		e.stage = StageWarning1
	}

	var events []Event
	for {
		next, threshold, ok := e.nextTransition()
		if !ok || secs <= int64(threshold/time.Second) {
			break
		}
		e.stage = next
		e.eventCounts.Escalations++
		events = append(events, Event{
			Timestamp: now,
			Type:      EventEscalation,
			Stage:     next,
			Elapsed:   elapsed,
		})
	}
	return events
}

// nextTransition returns the stage entered when the current stage ends and
// the threshold that ends it. ok is false in the terminal stage.
func (e *Escalator) nextTransition() (next Stage, threshold time.Duration, ok bool) {
	switch e.stage {
	case StageWarning1:
		return StageWarning2, e.thresholds.First, true
	case StageWarning2:
		return StageWarning3, e.thresholds.Second, true
	case StageWarning3:
		return StageContinuous, e.thresholds.Final, true
	}
	return 0, 0, false
}

// Stage returns the current escalation stage.
func (e *Escalator) Stage() Stage {
	return e.stage
}

// StartTime returns the immutable run start time.
func (e *Escalator) StartTime() time.Time {
	return e.startTime
}

// EventCountsSnapshot returns a copy of the pulse counters.
func (e *Escalator) EventCountsSnapshot() EventCounts {
	return e.eventCounts
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since
// the last heartbeat (or startup). Returns nil if the interval has not
// elapsed, or if interval is <= 0 (disabled).
func (e *Escalator) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}

	if now.Sub(e.lastHeartbeat) < interval {
		return nil
	}

	e.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(e.startTime),
		Stage:     e.stage,
		Counts:    e.eventCounts,
	}
}
