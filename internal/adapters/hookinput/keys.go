// Package hookinput observes input through a global event tap (gohook) and
// synthesizes clicks with robotgo. It backs the macOS build.
package hookinput

import "strings"

// keyName normalizes "KEY_F6" / "F6" to the lowercase names gohook uses.
func keyName(hotkey string) string {
	name := strings.ToLower(strings.TrimSpace(hotkey))
	return strings.TrimPrefix(name, "key_")
}

type Options struct {
	Hotkey string
}
