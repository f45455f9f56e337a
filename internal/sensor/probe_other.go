//go:build !darwin && !linux && !windows

package sensor

import "go.uber.org/zap"

// No OS idle counter on this platform; the sensor runs on its fallback
// clock alone.
func newPlatformProbe(_ *zap.Logger) probe {
	return nil
}
