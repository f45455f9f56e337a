package infra

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/telek/telek/internal/domain"
)

// InstanceGuard ensures at most one scheduler process runs on the host.
// The claim is an OS advisory file lock, so a crashed holder's claim is
// released automatically; the PID written into the file is a secondary
// staleness check for inspectors that do not hold the lock themselves.
type InstanceGuard struct {
	path   string
	pm     domain.ProcessManager
	logger *zap.Logger

	mu       sync.Mutex
	lockFile *os.File
}

// NewInstanceGuard creates a guard claiming the given path.
func NewInstanceGuard(path string, pm domain.ProcessManager, logger *zap.Logger) *InstanceGuard {
	return &InstanceGuard{path: path, pm: pm, logger: logger}
}

// DefaultClaimPath returns the well-known claim file location.
func DefaultClaimPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "telek", "telek.lock")
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Application Support", "telek", "telek.lock")
	}
	return filepath.Join(home, ".local", "state", "telek", "telek.lock")
}

// Acquire attempts a non-blocking exclusive claim. On success it records
// the current PID and returns true; on failure it returns false without
// blocking.
func (g *InstanceGuard) Acquire() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.lockFile != nil {
		return true
	}

	if err := os.MkdirAll(filepath.Dir(g.path), 0755); err != nil {
		g.logger.Error("failed to create claim dir", zap.Error(err))
		return false
	}

	f, err := os.OpenFile(g.path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		g.logger.Error("failed to open claim file", zap.Error(err))
		return false
	}

	if err := tryLockFile(f.Fd()); err != nil {
		_ = f.Close()
		return false
	}

	record := domain.ClaimRecord{PID: g.pm.GetCurrentPID()}
	data, _ := json.Marshal(record)
	if err := f.Truncate(0); err == nil {
		_, err = f.WriteAt(data, 0)
	}
	if err != nil {
		g.logger.Warn("failed to write claim record", zap.Error(err))
	}

	g.lockFile = f
	return true
}

// IsHeldByLiveProcess reads any existing claim record and probes the
// recorded PID. A claim left by a dead process is discarded and reported
// as not held.
func (g *InstanceGuard) IsHeldByLiveProcess() (bool, int) {
	data, err := os.ReadFile(g.path)
	if err != nil {
		return false, 0
	}

	var record domain.ClaimRecord
	if err := json.Unmarshal(data, &record); err != nil || record.PID == 0 {
		return false, 0
	}

	if g.pm.IsRunning(record.PID) {
		return true, record.PID
	}

	// Stale claim: the owning process is gone.
	if err := os.Remove(g.path); err != nil {
		g.logger.Warn("failed to remove stale claim", zap.Error(err))
	} else {
		g.logger.Info("removed stale claim", zap.Int("pid", record.PID))
	}
	return false, 0
}

// EnsureSingleInstance is the composed entry check: refuse when another
// live process holds the claim, otherwise acquire. Returns a descriptive
// error for the caller to surface when this instance must not start.
func (g *InstanceGuard) EnsureSingleInstance() error {
	if held, pid := g.IsHeldByLiveProcess(); held {
		return fmt.Errorf("telek is already running (PID %d)", pid)
	}
	if !g.Acquire() {
		// Another instance won the race between the check and the lock.
		return fmt.Errorf("telek is already running")
	}
	return nil
}

// Release relinquishes the claim and removes the record. Idempotent; safe
// to call even if the guard never acquired.
func (g *InstanceGuard) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.lockFile == nil {
		return
	}

	if err := unlockFile(g.lockFile.Fd()); err != nil {
		g.logger.Warn("failed to unlock claim", zap.Error(err))
	}
	_ = g.lockFile.Close()
	g.lockFile = nil

	if err := os.Remove(g.path); err != nil && !os.IsNotExist(err) {
		g.logger.Warn("failed to remove claim file", zap.Error(err))
	}
}
