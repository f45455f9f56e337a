//go:build linux

package sensor

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/screensaver"
	"github.com/jezek/xgb/xproto"
	"go.uber.org/zap"
)

const probeTimeout = 5 * time.Second

// x11Probe queries idle time from the X11 MIT-SCREEN-SAVER extension over a
// lazily opened xgb connection, falling back to the xprintidle tool when X
// is unreachable. The connection is dropped and reopened on any X error so
// a display restart does not wedge the probe.
type x11Probe struct {
	mu            sync.Mutex
	conn          *xgb.Conn
	root          xproto.Window
	hasXprintidle bool
	logger        *zap.Logger
}

func newPlatformProbe(logger *zap.Logger) probe {
	_, err := exec.LookPath("xprintidle")
	return &x11Probe{
		hasXprintidle: err == nil,
		logger:        logger,
	}
}

func (p *x11Probe) idleSeconds() (float64, error) {
	idle, xerr := p.queryScreenSaver()
	if xerr == nil {
		return idle, nil
	}

	if p.hasXprintidle {
		idle, err := p.queryXprintidle()
		if err == nil {
			return idle, nil
		}
		return 0, fmt.Errorf("screensaver: %v, xprintidle: %w", xerr, err)
	}

	return 0, xerr
}

func (p *x11Probe) queryScreenSaver() (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil {
		conn, err := xgb.NewConn()
		if err != nil {
			return 0, fmt.Errorf("failed to connect to X: %w", err)
		}
		if err := screensaver.Init(conn); err != nil {
			conn.Close()
			return 0, fmt.Errorf("screensaver extension unavailable: %w", err)
		}
		p.conn = conn
		p.root = xproto.Setup(conn).DefaultScreen(conn).Root
	}

	reply, err := screensaver.QueryInfo(p.conn, xproto.Drawable(p.root)).Reply()
	if err != nil {
		p.conn.Close()
		p.conn = nil
		return 0, fmt.Errorf("screensaver query failed: %w", err)
	}

	return float64(reply.MsSinceUserInput) / 1000, nil
}

func (p *x11Probe) queryXprintidle() (float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "xprintidle").Output()
	if err != nil {
		return 0, fmt.Errorf("xprintidle failed: %w", err)
	}

	ms, err := strconv.ParseInt(strings.TrimSpace(string(out)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unparsable xprintidle output: %w", err)
	}
	return float64(ms) / 1000, nil
}
