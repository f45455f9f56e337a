// Package infra implements infrastructure concerns (input injection,
// process, locking, persistence).
package infra

import (
	"fmt"

	"github.com/go-vgo/robotgo"
	"go.uber.org/zap"

	"github.com/telek/telek/internal/domain"
)

// RobotgoDriver implements domain.InputDriver using robotgo. robotgo can
// panic instead of returning an error when no display is attached, so every
// injection call recovers into an error at this boundary.
type RobotgoDriver struct {
	logger *zap.Logger
}

// NewInputDriver creates a robotgo-backed input driver.
func NewInputDriver(logger *zap.Logger) domain.InputDriver {
	return &RobotgoDriver{logger: logger}
}

// CursorPosition returns the current cursor coordinates.
func (d *RobotgoDriver) CursorPosition() (int, int) {
	return robotgo.Location()
}

// MoveTo moves the cursor to absolute screen coordinates.
func (d *RobotgoDriver) MoveTo(x, y int) (err error) {
	defer recoverInto(&err, "move")
	robotgo.Move(x, y)
	return nil
}

// Scroll scrolls by dx horizontal and dy vertical wheel clicks at the
// current cursor position.
func (d *RobotgoDriver) Scroll(dx, dy int) (err error) {
	defer recoverInto(&err, "scroll")
	robotgo.Scroll(dx, dy)
	return nil
}

// Tap presses key while holding the given modifiers.
func (d *RobotgoDriver) Tap(key string, modifiers ...string) (err error) {
	defer recoverInto(&err, "key tap")

	args := make([]interface{}, len(modifiers))
	for i, m := range modifiers {
		args[i] = m
	}
	if err := robotgo.KeyTap(key, args...); err != nil {
		return fmt.Errorf("key tap %q failed: %w", key, err)
	}
	return nil
}

// ScreenSize returns the primary display dimensions in pixels.
func (d *RobotgoDriver) ScreenSize() (int, int) {
	return robotgo.GetScreenSize()
}

func recoverInto(err *error, op string) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s panicked: %v", op, r)
	}
}

// Ensure RobotgoDriver implements domain.InputDriver.
var _ domain.InputDriver = (*RobotgoDriver)(nil)
