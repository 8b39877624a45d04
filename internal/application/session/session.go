// Package session runs the scheduling loop for the interactive shell on a
// single background worker. The worker never touches display state; it posts
// domain.Events that the UI consumes on its own goroutine.
package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/doeshing/pingbot/internal/domain"
	"github.com/doeshing/pingbot/internal/ports"
)

const eventBuffer = 64

// Option customises a Session.
type Option func(*Session)

// WithTick overrides the countdown granularity.
func WithTick(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.tick = d
		}
	}
}

// Session is the interactive scheduler state plus its worker.
type Session struct {
	recorder ports.CycleRecorder
	tick     time.Duration

	events    chan domain.Event
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup

	running  atomic.Bool
	gen      atomic.Uint64
	interval atomic.Int64

	mu    sync.Mutex
	model string
}

// New creates an idle session.
func New(recorder ports.CycleRecorder, settings domain.Settings, opts ...Option) *Session {
	s := &Session{
		recorder: recorder,
		tick:     domain.CountdownTick,
		events:   make(chan domain.Event, eventBuffer),
		done:     make(chan struct{}),
		model:    settings.Model,
	}
	interval := settings.Interval
	if interval <= 0 {
		interval = domain.DefaultInterval
	}
	s.interval.Store(int64(interval))
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Events is the worker-to-UI hand-off.
func (s *Session) Events() <-chan domain.Event {
	return s.events
}

// Running reports whether the scheduled loop is active.
func (s *Session) Running() bool {
	return s.running.Load()
}

// Settings returns the current interval and model.
func (s *Session) Settings() domain.Settings {
	s.mu.Lock()
	model := s.model
	s.mu.Unlock()
	return domain.Settings{Interval: time.Duration(s.interval.Load()), Model: model}
}

// SetInterval changes the wait used from the next wait phase on.
func (s *Session) SetInterval(d time.Duration) error {
	if d <= 0 {
		return errors.New("interval must be positive")
	}
	s.interval.Store(int64(d))
	return nil
}

// SetModel changes the model used from the next cycle on.
func (s *Session) SetModel(model string) {
	s.mu.Lock()
	s.model = model
	s.mu.Unlock()
}

// Start launches the worker. It returns false when already running or closed.
func (s *Session) Start() bool {
	if s.closed() || !s.running.CompareAndSwap(false, true) {
		return false
	}
	gen := s.gen.Add(1)
	s.wg.Add(1)
	go s.loop(gen)
	return true
}

// Stop asks the worker to finish. An in-flight cycle runs to completion.
func (s *Session) Stop() {
	s.running.Store(false)
}

// PingNow runs one cycle outside the schedule. It does not touch the wait
// countdown and may overlap a scheduled cycle.
func (s *Session) PingNow() {
	if s.closed() {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.cycle(true)
	}()
}

// Close stops the loop and releases any worker blocked on the event channel.
// It does not wait for an in-flight cycle.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.running.Store(false)
		close(s.done)
	})
}

// Wait blocks until every worker goroutine has returned.
func (s *Session) Wait() {
	s.wg.Wait()
}

// WaitTimeout is Wait bounded by d. It reports whether the workers returned
// in time.
func (s *Session) WaitTimeout(d time.Duration) bool {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}

func (s *Session) loop(gen uint64) {
	defer s.wg.Done()
	defer func() {
		if !s.running.Load() {
			s.post(domain.Event{Kind: domain.EventStopped})
		}
	}()

	for s.active(gen) {
		s.cycle(false)
		if !s.wait(gen) {
			return
		}
	}
}

// wait sleeps for the interval read at its start, posting a countdown once
// per tick. It returns false when the loop should end.
func (s *Session) wait(gen uint64) bool {
	deadline := time.Now().Add(s.Settings().Interval)
	for s.active(gen) {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return true
		}
		s.postLossy(domain.Event{Kind: domain.EventCountdown, Remaining: remaining})

		step := s.tick
		if remaining < step {
			step = remaining
		}
		timer := time.NewTimer(step)
		select {
		case <-s.done:
			timer.Stop()
			return false
		case <-timer.C:
		}
	}
	return false
}

func (s *Session) cycle(manual bool) {
	model := s.Settings().Model
	s.post(domain.Event{Kind: domain.EventCycleStarted, Manual: manual})
	result := s.recorder.RunCycle(context.Background(), model)
	s.post(domain.Event{Kind: domain.EventCycleFinished, Manual: manual, Result: result})
}

func (s *Session) active(gen uint64) bool {
	return s.running.Load() && s.gen.Load() == gen && !s.closed()
}

func (s *Session) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

func (s *Session) post(ev domain.Event) {
	select {
	case s.events <- ev:
	case <-s.done:
	}
}

// postLossy drops the event when the UI is behind.
func (s *Session) postLossy(ev domain.Event) {
	select {
	case s.events <- ev:
	default:
	}
}
