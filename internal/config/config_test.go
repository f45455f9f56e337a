package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telek/telek/internal/domain"
)

func TestMissingFileYieldsDefaults(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	set := m.Snapshot()
	assert.False(t, set.Enabled)
	assert.Equal(t, 300*time.Second, set.IdleThreshold)
	assert.Equal(t, 30*time.Second, set.MoveInterval)
	assert.Equal(t, 5*time.Second, set.CheckInterval)
	assert.Equal(t, 5, set.MoveDistance)
	assert.Equal(t, domain.PatternRandom, set.MovementPattern)
	assert.True(t, set.MouseMoveEnabled)
	assert.True(t, set.ScrollEnabled)
	assert.Equal(t, 3, set.ScrollAmount)
	assert.Equal(t, domain.ScrollRandom, set.ScrollPattern)
}

func TestLoadOverlaysFileOnDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
enabled: true
idle_threshold: 60
movement_pattern: circular
scroll_pattern: down
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	m, err := Load(path)
	require.NoError(t, err)

	set := m.Snapshot()
	assert.True(t, set.Enabled)
	assert.Equal(t, 60*time.Second, set.IdleThreshold)
	assert.Equal(t, domain.PatternCircular, set.MovementPattern)
	assert.Equal(t, domain.ScrollDown, set.ScrollPattern)
	// Keys not present in the file keep their defaults.
	assert.Equal(t, 30*time.Second, set.MoveInterval)
}

func TestOutOfRangeValuesClamped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
idle_threshold: 999999
move_interval: 1
check_interval: 0
move_distance: 500
scroll_amount: 0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	m, err := Load(path)
	require.NoError(t, err)

	set := m.Snapshot()
	assert.Equal(t, 18000*time.Second, set.IdleThreshold)
	assert.Equal(t, 5*time.Second, set.MoveInterval)
	assert.Equal(t, 1*time.Second, set.CheckInterval)
	assert.Equal(t, 50, set.MoveDistance)
	assert.Equal(t, 1, set.ScrollAmount)
}

func TestUnrecognizedPatternsFallBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
movement_pattern: zigzag
scroll_pattern: diagonal
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	m, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, domain.PatternRandom, m.Snapshot().MovementPattern)
	assert.Equal(t, domain.ScrollRandom, m.Snapshot().ScrollPattern)
}

func TestMalformedFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestUpdatePersistsAndNotifies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	m, err := Load(path)
	require.NoError(t, err)

	notified := 0
	m.OnChange(func() { notified++ })

	err = m.Update(func(s *domain.Settings) {
		s.Enabled = true
		s.CheckInterval = 10 * time.Second
	})
	require.NoError(t, err)
	assert.Equal(t, 1, notified)

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, reloaded.Snapshot().Enabled)
	assert.Equal(t, 10*time.Second, reloaded.Snapshot().CheckInterval)
}

func TestUpdateClampsMutations(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	err = m.Update(func(s *domain.Settings) {
		s.MoveDistance = 9999
	})
	require.NoError(t, err)
	assert.Equal(t, 50, m.Snapshot().MoveDistance)
}
