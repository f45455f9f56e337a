package macro

import (
	"strings"
	"unicode"
)

// modifiers maps accepted modifier spellings to robotgo modifier names.
// robotgo uses "cmd" for the meta key on every platform, so the Windows
// key aliases collapse onto it.
var modifiers = map[string]string{
	"ctrl":     "ctrl",
	"control":  "ctrl",
	"alt":      "alt",
	"option":   "alt",
	"shift":    "shift",
	"cmd":      "cmd",
	"command":  "cmd",
	"win":      "cmd",
	"windows":  "cmd",
	"winleft":  "cmd",
	"winright": "cmd",
}

// namedKeys maps accepted key spellings to robotgo key names.
var namedKeys = map[string]string{
	"up":    "up",
	"down":  "down",
	"left":  "left",
	"right": "right",

	"space":     "space",
	"enter":     "enter",
	"return":    "enter",
	"tab":       "tab",
	"escape":    "esc",
	"esc":       "esc",
	"backspace": "backspace",
	"delete":    "delete",
	"home":      "home",
	"end":       "end",
	"pageup":    "pageup",
	"pagedown":  "pagedown",
	"insert":    "insert",

	"comma":         ",",
	"period":        ".",
	"slash":         "/",
	"backslash":     "\\",
	"semicolon":     ";",
	"quote":         "'",
	"bracket_left":  "[",
	"bracket_right": "]",
	"minus":         "-",
	"equal":         "=",
	"backtick":      "`",
}

func isFunctionKey(s string) bool {
	if len(s) < 2 || len(s) > 3 || s[0] != 'f' {
		return false
	}
	switch s {
	case "f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8", "f9", "f10", "f11", "f12":
		return true
	}
	return false
}

func isPrintableChar(s string) bool {
	runes := []rune(s)
	return len(runes) == 1 && unicode.IsPrint(runes[0]) && !unicode.IsSpace(runes[0])
}

// validComponent reports whether a single token component is recognized.
func validComponent(c string) bool {
	if isPrintableChar(c) || isFunctionKey(c) {
		return true
	}
	if _, ok := modifiers[c]; ok {
		return true
	}
	_, ok := namedKeys[c]
	return ok
}

// ValidateToken reports whether a key-combination token such as
// "shift+cmd+ctrl+right" is valid: every +-joined component must be a
// printable character, a modifier, a function key, or a named key.
func ValidateToken(token string) bool {
	components := splitToken(token)
	if len(components) == 0 {
		return false
	}
	for _, c := range components {
		if !validComponent(c) {
			return false
		}
	}
	return true
}

// splitToken lowercases and splits a combination token. An empty component
// (as in "ctrl+") comes back as "" and fails validation downstream.
func splitToken(token string) []string {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	parts := strings.Split(token, "+")
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return parts
}

// mapComponent translates one component to its robotgo name. Unrecognized
// components pass through unchanged; validation has already excluded them
// from anything the driver will see.
func mapComponent(c string) string {
	if m, ok := modifiers[c]; ok {
		return m
	}
	if k, ok := namedKeys[c]; ok {
		return k
	}
	return c
}

// splitCombo resolves a validated token into the key to tap plus the
// modifiers to hold: the last component is the key, everything before it a
// modifier.
func splitCombo(token string) (key string, mods []string) {
	components := splitToken(token)
	if len(components) == 0 {
		return "", nil
	}
	for _, c := range components[:len(components)-1] {
		mods = append(mods, mapComponent(c))
	}
	return mapComponent(components[len(components)-1]), mods
}
