// Package sensor measures elapsed time since the last genuine user input.
//
// The primary strategy is an OS-level idle counter (HID idle time on macOS,
// the X11 screensaver extension on Linux, GetLastInputInfo on Windows).
// Whenever the probe fails, times out, or returns garbage, the sensor
// degrades to a self-tracked clock: seconds since Reset() was last called.
package sensor

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// probe is a platform-specific idle query. Implementations live in the
// probe_*.go files; a platform without one returns nil from newPlatformProbe.
type probe interface {
	// idleSeconds returns elapsed seconds since last user input.
	idleSeconds() (float64, error)
}

// Sensor implements domain.IdleSensor.
type Sensor struct {
	mu       sync.Mutex
	baseline time.Time
	probe    probe
	logger   *zap.Logger
}

// New creates a sensor with the platform probe for the current OS.
func New(logger *zap.Logger) *Sensor {
	return &Sensor{
		baseline: time.Now(),
		probe:    newPlatformProbe(logger),
		logger:   logger,
	}
}

// NewWithProbe creates a sensor with an explicit probe (for testing).
func NewWithProbe(p probe, logger *zap.Logger) *Sensor {
	return &Sensor{
		baseline: time.Now(),
		probe:    p,
		logger:   logger,
	}
}

// Sample returns a fresh idle reading in seconds. Probe failures never
// surface; they fall back to the self-tracked baseline.
func (s *Sensor) Sample() float64 {
	if s.probe != nil {
		idle, err := s.probe.idleSeconds()
		if err == nil && idle >= 0 {
			return idle
		}
		if err != nil {
			s.logger.Debug("idle probe failed, using fallback", zap.Error(err))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.baseline).Seconds()
}

// Reset sets the fallback baseline to now. The scheduler calls this right
// after performing a synthetic action so the injected input is not read as
// the user returning.
func (s *Sensor) Reset() {
	s.mu.Lock()
	s.baseline = time.Now()
	s.mu.Unlock()
}

// IsIdle reports whether the system has been idle for at least
// thresholdSeconds. The comparison is inclusive.
func (s *Sensor) IsIdle(thresholdSeconds float64) bool {
	return s.Sample() >= thresholdSeconds
}
