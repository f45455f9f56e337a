//go:build darwin

package sensor

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const probeTimeout = 5 * time.Second

// hidProbe queries the IOKit HID idle counter via ioreg.
type hidProbe struct{}

func newPlatformProbe(_ *zap.Logger) probe {
	return &hidProbe{}
}

// idleSeconds parses `"HIDIdleTime" = <nanoseconds>` from ioreg output.
func (p *hidProbe) idleSeconds() (float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "ioreg", "-c", "IOHIDSystem", "-d", "4").Output()
	if err != nil {
		return 0, fmt.Errorf("ioreg failed: %w", err)
	}

	for _, line := range strings.Split(string(out), "\n") {
		if !strings.Contains(line, "HIDIdleTime") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		ns, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("unparsable HIDIdleTime: %w", err)
		}
		return float64(ns) / 1e9, nil
	}

	return 0, fmt.Errorf("HIDIdleTime not present in ioreg output")
}
