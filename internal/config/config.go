// Package config implements the YAML-backed settings provider.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/telek/telek/internal/domain"
)

// fileSettings is the on-disk shape. Durations are stored as plain seconds
// so the file stays editable by the settings UI and by hand.
type fileSettings struct {
	Enabled          bool   `yaml:"enabled"`
	IdleThreshold    int    `yaml:"idle_threshold"`
	MoveInterval     int    `yaml:"move_interval"`
	CheckInterval    int    `yaml:"check_interval"`
	MoveDistance     int    `yaml:"move_distance"`
	MovementPattern  string `yaml:"movement_pattern"`
	MouseMoveEnabled bool   `yaml:"mouse_move_enabled"`
	ScrollEnabled    bool   `yaml:"scroll_enabled"`
	ScrollAmount     int    `yaml:"scroll_amount"`
	ScrollPattern    string `yaml:"scroll_pattern"`
}

// Manager loads, clamps, and persists settings, and notifies listeners on
// every mutation. Implements domain.SettingsProvider.
type Manager struct {
	mu        sync.RWMutex
	path      string
	settings  domain.Settings
	listeners []func()
}

// DefaultSettings returns the factory configuration. The scheduler starts
// disabled so a fresh install never injects input before the user opts in.
func DefaultSettings() domain.Settings {
	return domain.Settings{
		Enabled:          false,
		IdleThreshold:    300 * time.Second,
		MoveInterval:     30 * time.Second,
		CheckInterval:    5 * time.Second,
		MoveDistance:     5,
		MovementPattern:  domain.PatternRandom,
		MouseMoveEnabled: true,
		ScrollEnabled:    true,
		ScrollAmount:     3,
		ScrollPattern:    domain.ScrollRandom,
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "telek", "config.yaml")
	}
	return filepath.Join(home, ".config", "telek", "config.yaml")
}

// Load reads settings from path, overlaying the file on the defaults and
// clamping every value to its valid range. A missing file is not an error;
// the defaults apply.
func Load(path string) (*Manager, error) {
	m := &Manager{path: path, settings: DefaultSettings()}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	fs := toFile(m.settings)
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	m.settings = clamp(fromFile(fs))
	return m, nil
}

// Snapshot returns the current effective settings.
func (m *Manager) Snapshot() domain.Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

// OnChange registers a callback fired after any settings mutation.
func (m *Manager) OnChange(fn func()) {
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

// Update applies fn to a copy of the settings, clamps the result, persists
// it, and notifies listeners.
func (m *Manager) Update(fn func(*domain.Settings)) error {
	m.mu.Lock()
	s := m.settings
	fn(&s)
	m.settings = clamp(s)
	listeners := append([]func(){}, m.listeners...)
	m.mu.Unlock()

	if err := m.save(); err != nil {
		return err
	}
	for _, l := range listeners {
		l()
	}
	return nil
}

// Path returns the backing file location.
func (m *Manager) Path() string {
	return m.path
}

func (m *Manager) save() error {
	m.mu.RLock()
	fs := toFile(m.settings)
	m.mu.RUnlock()

	data, err := yaml.Marshal(fs)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func toFile(s domain.Settings) fileSettings {
	return fileSettings{
		Enabled:          s.Enabled,
		IdleThreshold:    int(s.IdleThreshold / time.Second),
		MoveInterval:     int(s.MoveInterval / time.Second),
		CheckInterval:    int(s.CheckInterval / time.Second),
		MoveDistance:     s.MoveDistance,
		MovementPattern:  string(s.MovementPattern),
		MouseMoveEnabled: s.MouseMoveEnabled,
		ScrollEnabled:    s.ScrollEnabled,
		ScrollAmount:     s.ScrollAmount,
		ScrollPattern:    string(s.ScrollPattern),
	}
}

func fromFile(fs fileSettings) domain.Settings {
	return domain.Settings{
		Enabled:          fs.Enabled,
		IdleThreshold:    time.Duration(fs.IdleThreshold) * time.Second,
		MoveInterval:     time.Duration(fs.MoveInterval) * time.Second,
		CheckInterval:    time.Duration(fs.CheckInterval) * time.Second,
		MoveDistance:     fs.MoveDistance,
		MovementPattern:  domain.MovementPattern(fs.MovementPattern),
		MouseMoveEnabled: fs.MouseMoveEnabled,
		ScrollEnabled:    fs.ScrollEnabled,
		ScrollAmount:     fs.ScrollAmount,
		ScrollPattern:    domain.ScrollPattern(fs.ScrollPattern),
	}
}

// clamp forces every value into its documented valid range and falls back
// to the default pattern names on unrecognized values.
func clamp(s domain.Settings) domain.Settings {
	s.IdleThreshold = clampDuration(s.IdleThreshold, 3*time.Second, 18000*time.Second)
	s.MoveInterval = clampDuration(s.MoveInterval, 5*time.Second, 300*time.Second)
	s.CheckInterval = clampDuration(s.CheckInterval, 1*time.Second, 60*time.Second)
	s.MoveDistance = clampInt(s.MoveDistance, 1, 50)
	s.ScrollAmount = clampInt(s.ScrollAmount, 1, 200)

	switch s.MovementPattern {
	case domain.PatternRandom, domain.PatternCircular, domain.PatternLinear:
	default:
		s.MovementPattern = domain.PatternRandom
	}
	switch s.ScrollPattern {
	case domain.ScrollRandom, domain.ScrollUp, domain.ScrollDown, domain.ScrollLeft, domain.ScrollRight:
	default:
		s.ScrollPattern = domain.ScrollRandom
	}
	return s
}

func clampDuration(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
