package scheduler

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/telek/telek/internal/domain"
)

// scrollMouse applies the configured scroll pattern at the current cursor
// position. Exactly one axis moves per activity.
func (s *Scheduler) scrollMouse(set domain.Settings) {
	name, dx, dy := scrollOffsets(set.ScrollPattern, set.ScrollAmount)

	if err := s.driver.Scroll(dx, dy); err != nil {
		s.logger.Warn("scroll failed", zap.Error(err))
		s.emit(domain.EventActivity, fmt.Sprintf("error scrolling: %v", err))
		return
	}
	s.emit(domain.EventActivity, fmt.Sprintf("scrolled %s (%d clicks)", name, set.ScrollAmount))
}

// scrollOffsets resolves a pattern into a single-axis wheel offset.
// Positive dy scrolls up, positive dx scrolls right.
func scrollOffsets(pattern domain.ScrollPattern, amount int) (string, int, int) {
	switch pattern {
	case domain.ScrollUp:
		return "up", 0, amount
	case domain.ScrollDown:
		return "down", 0, -amount
	case domain.ScrollLeft:
		return "left", -amount, 0
	case domain.ScrollRight:
		return "right", amount, 0
	default:
		directions := []domain.ScrollPattern{
			domain.ScrollUp, domain.ScrollDown, domain.ScrollLeft, domain.ScrollRight,
		}
		return scrollOffsets(directions[rand.Intn(len(directions))], amount)
	}
}
