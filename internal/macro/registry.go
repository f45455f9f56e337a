// Package macro stores named key-sequence definitions and executes them
// through the input driver.
package macro

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/telek/telek/internal/domain"
)

// Registry holds macro definitions behind a registry-wide on/off switch.
// Every mutation persists synchronously through the store. Implements
// domain.MacroExecutor.
type Registry struct {
	store   domain.MacroStore
	driver  domain.InputDriver
	logger  *zap.Logger
	enabled bool
	macros  []domain.Macro

	// pick selects an index in [0, n); replaced in tests.
	pick func(n int) int
}

// NewRegistry loads macros from the store, seeding and persisting the
// built-in defaults when the store is empty.
func NewRegistry(store domain.MacroStore, driver domain.InputDriver, logger *zap.Logger) (*Registry, error) {
	file, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load macros: %w", err)
	}

	r := &Registry{
		store:   store,
		driver:  driver,
		logger:  logger,
		enabled: file.Enabled,
		macros:  file.Macros,
		pick:    rand.Intn,
	}

	if len(r.macros) == 0 {
		r.macros = defaultMacros()
		if err := r.save(); err != nil {
			return nil, err
		}
		logger.Info("seeded default macros", zap.Int("count", len(r.macros)))
	}

	return r, nil
}

// defaultMacros is the built-in set installed on first run.
func defaultMacros() []domain.Macro {
	return []domain.Macro{
		{Name: "Refresh Page", Keys: []string{"f5"}, DelaySeconds: 0.1, Description: "Refresh the current page (F5)", Enabled: true},
		{Name: "Alt+Tab", Keys: []string{"alt+tab"}, DelaySeconds: 0.1, Description: "Switch between applications", Enabled: true},
		{Name: "Ctrl+Tab", Keys: []string{"ctrl+tab"}, DelaySeconds: 0.1, Description: "Switch between browser tabs", Enabled: true},
		{Name: "Space Bar", Keys: []string{"space"}, DelaySeconds: 0.1, Description: "Press space bar (useful for video players)", Enabled: true},
		{Name: "Arrow Keys", Keys: []string{"up", "down", "left", "right"}, DelaySeconds: 0.2, Description: "Random arrow key press", Enabled: true},
		{Name: "Ctrl+S", Keys: []string{"ctrl+s"}, DelaySeconds: 0.1, Description: "Save current document", Enabled: true},
		{Name: "Escape", Keys: []string{"escape"}, DelaySeconds: 0.1, Description: "Press escape key", Enabled: true},
	}
}

// Validate checks a macro definition before the registry accepts it.
func Validate(m domain.Macro) error {
	if m.Name == "" {
		return fmt.Errorf("macro name must not be empty")
	}
	if len(m.Keys) == 0 {
		return fmt.Errorf("macro %q has no keys", m.Name)
	}
	if m.DelaySeconds < 0 || m.DelaySeconds > 5 {
		return fmt.Errorf("macro %q delay %.2fs outside [0, 5]", m.Name, m.DelaySeconds)
	}
	for _, k := range m.Keys {
		if !ValidateToken(k) {
			return fmt.Errorf("macro %q has unrecognized key token %q", m.Name, k)
		}
	}
	return nil
}

// Add appends a new macro and persists. A duplicate name or an invalid
// definition is rejected with the registry left unchanged.
func (r *Registry) Add(m domain.Macro) error {
	if err := Validate(m); err != nil {
		return err
	}
	for _, existing := range r.macros {
		if existing.Name == m.Name {
			return fmt.Errorf("macro %q already exists", m.Name)
		}
	}
	r.macros = append(r.macros, m)
	return r.save()
}

// Remove deletes a macro by name, reporting whether it existed.
func (r *Registry) Remove(name string) bool {
	for i, m := range r.macros {
		if m.Name == name {
			r.macros = append(r.macros[:i], r.macros[i+1:]...)
			if err := r.save(); err != nil {
				r.logger.Error("failed to persist macro removal", zap.Error(err))
			}
			return true
		}
	}
	return false
}

// Update replaces the macro named oldName, reporting whether it existed.
// The replacement must validate; an invalid one leaves the registry
// unchanged.
func (r *Registry) Update(oldName string, m domain.Macro) bool {
	if err := Validate(m); err != nil {
		r.logger.Warn("rejected macro update", zap.String("macro", oldName), zap.Error(err))
		return false
	}
	for i, existing := range r.macros {
		if existing.Name == oldName {
			r.macros[i] = m
			if err := r.save(); err != nil {
				r.logger.Error("failed to persist macro update", zap.Error(err))
			}
			return true
		}
	}
	return false
}

// Get returns the macro with the given name, or nil.
func (r *Registry) Get(name string) *domain.Macro {
	for _, m := range r.macros {
		if m.Name == name {
			copied := m
			return &copied
		}
	}
	return nil
}

// ListAll returns all macros in definition order.
func (r *Registry) ListAll() []domain.Macro {
	out := make([]domain.Macro, len(r.macros))
	copy(out, r.macros)
	return out
}

// ListEnabled returns the individually-enabled macros in definition order.
func (r *Registry) ListEnabled() []domain.Macro {
	var out []domain.Macro
	for _, m := range r.macros {
		if m.Enabled {
			out = append(out, m)
		}
	}
	return out
}

// SetEnabled flips the registry-wide switch and persists it. Individual
// macro Enabled flags are unaffected.
func (r *Registry) SetEnabled(enabled bool) {
	r.enabled = enabled
	if err := r.save(); err != nil {
		r.logger.Error("failed to persist macro switch", zap.Error(err))
	}
}

// IsEnabled reports the registry-wide switch.
func (r *Registry) IsEnabled() bool {
	return r.enabled
}

// ExecuteRandom runs one randomly chosen enabled macro. The returned error
// names the cause when nothing ran.
func (r *Registry) ExecuteRandom() error {
	if !r.enabled {
		return fmt.Errorf("keyboard macro step is disabled")
	}
	candidates := r.ListEnabled()
	if len(candidates) == 0 {
		return fmt.Errorf("no enabled keyboard macros")
	}
	return r.Execute(candidates[r.pick(len(candidates))])
}

// Execute injects one key token of the macro. A macro with several tokens
// presses exactly one, chosen uniformly, per execution.
func (r *Registry) Execute(m domain.Macro) error {
	if !m.Enabled {
		return fmt.Errorf("macro %q is disabled", m.Name)
	}
	if len(m.Keys) == 0 {
		return fmt.Errorf("macro %q has no keys", m.Name)
	}

	token := m.Keys[0]
	if len(m.Keys) > 1 {
		token = m.Keys[r.pick(len(m.Keys))]
	}

	key, mods := splitCombo(token)
	if key == "" {
		return fmt.Errorf("macro %q has an empty key token", m.Name)
	}

	if err := r.driver.Tap(key, mods...); err != nil {
		r.logger.Error("macro injection failed",
			zap.String("macro", m.Name),
			zap.String("token", token),
			zap.Error(err))
		return fmt.Errorf("macro %q injection failed: %w", m.Name, err)
	}

	time.Sleep(time.Duration(m.DelaySeconds * float64(time.Second)))

	r.logger.Debug("executed macro",
		zap.String("macro", m.Name),
		zap.String("token", token))
	return nil
}

func (r *Registry) save() error {
	file := domain.MacroFile{Enabled: r.enabled, Macros: r.macros}
	if err := r.store.Save(file); err != nil {
		return fmt.Errorf("failed to save macros: %w", err)
	}
	return nil
}
