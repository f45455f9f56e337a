// Package scheduler implements the idle-triggered activity state machine.
//
// A single goroutine drives ticks off a time.Ticker; each tick samples the
// idle sensor, decides whether an activity is due, and if so runs the
// mouse-move / scroll / macro sequence. Ticks are serialized: the loop body
// runs inline, including the deliberate pauses inside the sequence.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/telek/telek/internal/domain"
)

// stepPause separates enabled activity steps so the receiving application
// does not coalesce the injected events.
const stepPause = 100 * time.Millisecond

// Scheduler coordinates the idle sensor, input driver, and macro registry.
// It has two states, stopped and running; Start and Stop are idempotent.
type Scheduler struct {
	cfg    domain.SettingsProvider
	sensor domain.IdleSensor
	macros domain.MacroExecutor
	driver domain.InputDriver
	logger *zap.Logger

	// mu guards the whole decide+act+update critical section along with
	// the pattern accumulators, so a concurrent ForceActivity and a due
	// tick cannot interleave partial updates.
	mu          sync.Mutex
	running     bool
	lastAction  time.Time
	angle       float64 // circular pattern accumulator, [0, 2π)
	linearDir   int     // linear pattern direction, +1 or -1
	ticker      *time.Ticker
	tickPeriod  time.Duration
	stop        chan struct{}

	events chan domain.Event
	now    func() time.Time
	pause  func(time.Duration)
}

// New creates a stopped scheduler and subscribes it to configuration
// changes so the tick period follows check_interval.
func New(
	cfg domain.SettingsProvider,
	sensor domain.IdleSensor,
	macros domain.MacroExecutor,
	driver domain.InputDriver,
	logger *zap.Logger,
) *Scheduler {
	s := &Scheduler{
		cfg:       cfg,
		sensor:    sensor,
		macros:    macros,
		driver:    driver,
		logger:    logger,
		linearDir: 1,
		events:    make(chan domain.Event, 64),
		now:       time.Now,
		pause:     time.Sleep,
	}
	cfg.OnChange(s.OnConfigChanged)
	return s
}

// Events returns the channel carrying status and activity events. The
// channel is buffered; events are dropped rather than blocking a tick when
// no one is draining.
func (s *Scheduler) Events() <-chan domain.Event {
	return s.events
}

// Start begins periodic ticking at the configured check interval. No-op
// when already running.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.tickPeriod = s.cfg.Snapshot().CheckInterval
	s.ticker = time.NewTicker(s.tickPeriod)
	s.stop = make(chan struct{})
	go s.loop(s.ticker, s.stop)
	s.mu.Unlock()

	s.logger.Info("scheduler started", zap.Duration("check_interval", s.tickPeriod))
	s.emit(domain.EventStatus, "monitoring started")
}

// Stop cancels ticking. No-op when already stopped. A tick already in
// flight completes its rate-limit accounting harmlessly.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.ticker.Stop()
	close(s.stop)
	s.mu.Unlock()

	s.logger.Info("scheduler stopped")
	s.emit(domain.EventStatus, "monitoring stopped")
}

// IsRunning reports the current state.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// ForceActivity runs the activity sequence immediately, bypassing the idle
// and rate-limit checks. Performs nothing unless running.
func (s *Scheduler) ForceActivity() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.performActivity(s.cfg.Snapshot())
	s.lastAction = s.now()
	s.sensor.Reset()
}

// OnConfigChanged reschedules ticking when the check interval changed.
// lastAction is deliberately untouched.
func (s *Scheduler) OnConfigChanged() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	interval := s.cfg.Snapshot().CheckInterval
	if interval != s.tickPeriod {
		s.tickPeriod = interval
		s.ticker.Reset(interval)
		s.logger.Info("tick interval rescheduled", zap.Duration("check_interval", interval))
	}
}

func (s *Scheduler) loop(ticker *time.Ticker, stop chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.onTick()
		}
	}
}

// onTick is the per-interval handler: sample, decide, act, update.
// Unexpected panics are converted to a status event; the scheduler keeps
// running.
func (s *Scheduler) onTick() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("tick panicked", zap.Any("panic", r))
			s.emit(domain.EventStatus, fmt.Sprintf("Error: %v", r))
		}
	}()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}

	set := s.cfg.Snapshot()
	idle := s.sensor.Sample()
	now := s.now()

	due := set.Enabled &&
		idle >= set.IdleThreshold.Seconds() &&
		now.Sub(s.lastAction) >= set.MoveInterval

	if due {
		s.performActivity(set)
		s.lastAction = now
		s.sensor.Reset()
	}

	s.emit(domain.EventStatus, fmt.Sprintf("Idle: %.1fs, Threshold: %.0fs",
		idle, set.IdleThreshold.Seconds()))
}

// performActivity runs the fixed sequence: mouse move, scroll, one random
// macro. Each step is independently toggleable; enabled steps are separated
// by stepPause. Injection errors are reported as activity events and never
// abort the remaining steps. A fully-disabled sequence is still a
// "performed" activity for rate-limiting purposes.
//
// Callers must hold s.mu.
func (s *Scheduler) performActivity(set domain.Settings) {
	if set.MouseMoveEnabled {
		s.moveMouse(set)
		s.pause(stepPause)
	}
	if set.ScrollEnabled {
		s.scrollMouse(set)
		s.pause(stepPause)
	}
	if s.macros.IsEnabled() {
		if err := s.macros.ExecuteRandom(); err != nil {
			s.emit(domain.EventActivity, fmt.Sprintf("keyboard macro failed: %v", err))
		} else {
			s.emit(domain.EventActivity, "executed keyboard macro")
		}
	}
}

// emit publishes an event without ever blocking the tick path.
func (s *Scheduler) emit(kind domain.EventKind, text string) {
	ev := domain.Event{Kind: kind, Text: text, At: time.Now()}
	select {
	case s.events <- ev:
	default:
	}
}
