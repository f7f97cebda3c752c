//go:build !darwin

package hookinput

import (
	"fmt"

	"clicker/internal/core/autoclicker"
)

func NewPlatform(opts Options, logger autoclicker.Logger) (autoclicker.Platform, error) {
	return autoclicker.Platform{}, fmt.Errorf("event tap backend is only built on macOS")
}
