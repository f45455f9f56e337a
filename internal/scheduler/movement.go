package scheduler

import (
	"fmt"
	"math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/telek/telek/internal/domain"
)

// circularStep is the fixed angle increment per circular-pattern move.
const circularStep = 0.2

// edgeMargin keeps the linear pattern from pinning the cursor against a
// screen edge.
const edgeMargin = 10

// moveMouse computes the next cursor position from the configured pattern
// and drives the input driver. Callers must hold s.mu (the circular and
// linear patterns mutate accumulator state).
func (s *Scheduler) moveMouse(set domain.Settings) {
	x, y := s.driver.CursorPosition()
	width, height := s.driver.ScreenSize()

	nx, ny := s.nextPosition(set.MovementPattern, set.MoveDistance, x, y, width)

	// Destination always stays on screen.
	nx = clamp(nx, 0, width-1)
	ny = clamp(ny, 0, height-1)

	if err := s.driver.MoveTo(nx, ny); err != nil {
		s.logger.Warn("mouse move failed", zap.Error(err))
		s.emit(domain.EventActivity, fmt.Sprintf("error moving mouse: %v", err))
		return
	}
	s.emit(domain.EventActivity, fmt.Sprintf("mouse moved to (%d, %d)", nx, ny))
}

// nextPosition applies the movement pattern policy to the current position.
func (s *Scheduler) nextPosition(pattern domain.MovementPattern, distance, x, y, screenWidth int) (int, int) {
	switch pattern {
	case domain.PatternCircular:
		return s.circularPosition(x, y, distance)
	case domain.PatternLinear:
		return s.linearPosition(x, y, distance, screenWidth)
	default:
		return randomPosition(x, y, distance)
	}
}

// randomPosition offsets by a uniform angle and a uniform magnitude in
// (0, distance].
func randomPosition(x, y, distance int) (int, int) {
	angle := rand.Float64() * 2 * math.Pi
	mag := (1 - rand.Float64()) * float64(distance) // (0, distance]
	return x + int(math.Round(mag*math.Cos(angle))),
		y + int(math.Round(mag*math.Sin(angle)))
}

// circularPosition advances the persistent angle accumulator by a fixed
// step, wrapping at 2π.
func (s *Scheduler) circularPosition(x, y, distance int) (int, int) {
	s.angle += circularStep
	if s.angle >= 2*math.Pi {
		s.angle = 0
	}
	d := float64(distance)
	return x + int(math.Round(d*math.Cos(s.angle))),
		y + int(math.Round(d*math.Sin(s.angle)))
}

// linearPosition moves back and forth horizontally, flipping the persistent
// direction sign when the destination would breach the edge margin.
func (s *Scheduler) linearPosition(x, y, distance, screenWidth int) (int, int) {
	nx := x + distance*s.linearDir
	if nx <= edgeMargin || nx >= screenWidth-edgeMargin {
		s.linearDir = -s.linearDir
		nx = x + distance*s.linearDir
	}
	return nx, y
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
