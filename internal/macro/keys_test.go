package macro

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateToken(t *testing.T) {
	tests := []struct {
		token string
		valid bool
	}{
		{"shift+cmd+ctrl+right", true},
		{"ctrl+bogus_key_xyz", false},
		{"f5", true},
		{"f12", true},
		{"f13", false},
		{"a", true},
		{"5", true},
		{"/", true},
		{"ctrl+s", true},
		{"alt+tab", true},
		{"option+command+escape", true},
		{"win+e", true},
		{"winleft+d", true},
		{"escape", true},
		{"esc", true},
		{"return", true},
		{"pageup", true},
		{"comma", true},
		{"bracket_left", true},
		{"Ctrl+S", true}, // case-insensitive
		{"", false},
		{"ctrl+", false},
		{"+", false},
		{"notakey", false},
		{"ctrl+alt+delete", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, ValidateToken(tt.token), "token %q", tt.token)
	}
}

func TestSplitComboResolvesKeyAndModifiers(t *testing.T) {
	tests := []struct {
		token string
		key   string
		mods  []string
	}{
		{"ctrl+s", "s", []string{"ctrl"}},
		{"shift+cmd+ctrl+right", "right", []string{"shift", "cmd", "ctrl"}},
		{"alt+tab", "tab", []string{"alt"}},
		{"space", "space", nil},
		{"escape", "esc", nil},
		{"return", "enter", nil},
		{"option+left", "left", []string{"alt"}},
		{"win+e", "e", []string{"cmd"}},
		{"control+comma", ",", []string{"ctrl"}},
	}

	for _, tt := range tests {
		key, mods := splitCombo(tt.token)
		assert.Equal(t, tt.key, key, "token %q", tt.token)
		assert.Equal(t, tt.mods, mods, "token %q", tt.token)
	}
}

func TestMapComponentPassesUnknownThrough(t *testing.T) {
	assert.Equal(t, "q", mapComponent("q"))
	assert.Equal(t, "f5", mapComponent("f5"))
}
