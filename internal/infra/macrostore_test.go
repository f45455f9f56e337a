package infra

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telek/telek/internal/domain"
)

func TestLoadMissingFileYieldsEmpty(t *testing.T) {
	store := NewJSONMacroStore(filepath.Join(t.TempDir(), "macros.json"))

	file, err := store.Load()
	require.NoError(t, err)
	assert.False(t, file.Enabled)
	assert.Empty(t, file.Macros)
}

func TestSaveCreatesMissingDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "macros.json")
	store := NewJSONMacroStore(path)

	err := store.Save(domain.MacroFile{Enabled: true})
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	store := NewJSONMacroStore(filepath.Join(t.TempDir(), "macros.json"))

	in := domain.MacroFile{
		Enabled: true,
		Macros: []domain.Macro{
			{Name: "Save", Keys: []string{"ctrl+s"}, DelaySeconds: 0.1, Description: "save", Enabled: true},
			{Name: "Arrows", Keys: []string{"up", "down"}, DelaySeconds: 0.2, Enabled: false},
		},
	}
	require.NoError(t, store.Save(in))

	out, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSaveLeavesNoTempFilesBehind(t *testing.T) {
	dir := t.TempDir()
	store := NewJSONMacroStore(filepath.Join(dir, "macros.json"))

	require.NoError(t, store.Save(domain.MacroFile{}))
	require.NoError(t, store.Save(domain.MacroFile{Enabled: true}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "only the macro file itself should remain")
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macros.json")
	require.NoError(t, os.WriteFile(path, []byte("{truncated"), 0644))

	_, err := NewJSONMacroStore(path).Load()
	assert.Error(t, err)
}
