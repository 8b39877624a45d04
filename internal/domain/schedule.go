package domain

import "time"

// SchedulerState is the two-state machine of the scheduling loop.
type SchedulerState string

const (
	StateIdle    SchedulerState = "idle"
	StateRunning SchedulerState = "running"
)

// Settings are the interactive scheduler knobs, read by the worker at the
// start of each wait phase.
type Settings struct {
	Interval time.Duration
	Model    string
}

// EventKind enumerates worker-to-UI notifications.
type EventKind string

const (
	EventCycleStarted  EventKind = "cycle_started"
	EventCycleFinished EventKind = "cycle_finished"
	EventCountdown     EventKind = "countdown"
	EventStopped       EventKind = "stopped"
)

// Event is posted by the background worker and consumed on the UI thread.
type Event struct {
	Kind      EventKind
	Manual    bool
	Result    CycleResult
	Remaining time.Duration
}
