// Package domain contains core business entities and interfaces.
// This is the innermost layer in Clean Architecture - no external dependencies.
package domain

import "time"

// MovementPattern selects how the cursor offset is computed per activity.
type MovementPattern string

const (
	PatternRandom   MovementPattern = "random"
	PatternCircular MovementPattern = "circular"
	PatternLinear   MovementPattern = "linear"
)

// ScrollPattern selects the scroll direction per activity.
type ScrollPattern string

const (
	ScrollRandom ScrollPattern = "random"
	ScrollUp     ScrollPattern = "up"
	ScrollDown   ScrollPattern = "down"
	ScrollLeft   ScrollPattern = "left"
	ScrollRight  ScrollPattern = "right"
)

// Settings is the configuration snapshot the scheduler consumes on each tick.
// Values are already clamped to their valid ranges by the provider.
type Settings struct {
	Enabled          bool
	IdleThreshold    time.Duration // [3s, 18000s], default 300s
	MoveInterval     time.Duration // [5s, 300s], default 30s
	CheckInterval    time.Duration // [1s, 60s], default 5s
	MoveDistance     int           // pixels, [1, 50], default 5
	MovementPattern  MovementPattern
	MouseMoveEnabled bool
	ScrollEnabled    bool
	ScrollAmount     int // wheel clicks, [1, 200], default 3
	ScrollPattern    ScrollPattern
}

// Macro is a named key sequence the scheduler may inject while idle.
// Name is the registry's identity key. Execution picks one entry of Keys
// uniformly at random per run.
type Macro struct {
	Name         string   `json:"name"`
	Keys         []string `json:"keys"`
	DelaySeconds float64  `json:"delay"` // [0, 5]
	Description  string   `json:"description"`
	Enabled      bool     `json:"enabled"`
}

// ClaimRecord is the on-disk artifact representing the instance guard's
// exclusive claim. The flock on the file is the authority; the PID is a
// secondary staleness check for inspectors that do not hold the lock.
type ClaimRecord struct {
	PID int `json:"pid"`
}

// MacroFile is the persisted shape of the macro registry: the registry-wide
// switch plus all macro definitions.
type MacroFile struct {
	Enabled bool    `json:"enabled"`
	Macros  []Macro `json:"macros"`
}

// EventKind distinguishes scheduler event streams.
type EventKind string

const (
	// EventStatus summarizes the idle state; emitted on every tick and on
	// start/stop transitions.
	EventStatus EventKind = "status"
	// EventActivity reports a completed synthetic action or its failure.
	EventActivity EventKind = "activity"
)

// Event is what the scheduler publishes to its subscriber channel.
type Event struct {
	Kind EventKind
	Text string
	At   time.Time
}
