package domain

// IdleSensor reports elapsed seconds since the last genuine user input.
// Implementation: platform probe with a self-tracked fallback clock.
type IdleSensor interface {
	// Sample returns a fresh idle reading in seconds, always non-negative.
	// Probe failures degrade silently to the fallback value.
	Sample() float64

	// Reset sets the fallback baseline to now. Called right after a
	// synthetic action so the action itself is not read as user activity.
	Reset()

	// IsIdle reports whether Sample() >= threshold (inclusive).
	IsIdle(thresholdSeconds float64) bool
}

// InputDriver injects synthetic input at the OS boundary.
// Implementation: robotgo. Every method is fallible; injection failures are
// the caller's to report, never to propagate.
type InputDriver interface {
	// CursorPosition returns the current cursor coordinates.
	CursorPosition() (x, y int)

	// MoveTo moves the cursor to absolute screen coordinates.
	MoveTo(x, y int) error

	// Scroll scrolls by dx horizontal and dy vertical wheel clicks at the
	// current cursor position. Positive dy is up, positive dx is right.
	Scroll(dx, dy int) error

	// Tap presses a single key, optionally while holding modifiers.
	Tap(key string, modifiers ...string) error

	// ScreenSize returns the primary display dimensions in pixels.
	ScreenSize() (width, height int)
}

// MacroStore persists macro definitions. The registry treats persistence as
// a synchronous side effect after every mutation.
type MacroStore interface {
	// Load reads the macro file. A missing file yields an empty MacroFile
	// and no error.
	Load() (MacroFile, error)

	// Save writes the macro file atomically.
	Save(MacroFile) error
}

// ProcessManager handles OS process liveness checks.
// Implementation: uses gopsutil for cross-platform support.
type ProcessManager interface {
	// IsRunning checks if a PID exists and is running.
	IsRunning(pid int) bool

	// GetCurrentPID returns the current process PID.
	GetCurrentPID() int
}

// SettingsProvider supplies configuration to the scheduler. Snapshot is
// cheap and safe to call on every tick.
type SettingsProvider interface {
	// Snapshot returns the current effective settings.
	Snapshot() Settings

	// OnChange registers a callback fired after any settings mutation.
	OnChange(func())
}

// MacroExecutor is the slice of the macro registry the scheduler depends on.
type MacroExecutor interface {
	// IsEnabled reports the registry-wide switch.
	IsEnabled() bool

	// ExecuteRandom runs one randomly chosen enabled macro. The returned
	// error names the cause when nothing ran: switch off, no enabled
	// macro, or a failed injection.
	ExecuteRandom() error
}
