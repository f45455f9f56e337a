//go:build integration

package integration

import (
	"encoding/json"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/telek/telek/internal/domain"
	"github.com/telek/telek/internal/infra"
	"github.com/telek/telek/internal/macro"
)

// nullDriver satisfies domain.InputDriver without touching the host.
type nullDriver struct{}

func (nullDriver) CursorPosition() (int, int)  { return 0, 0 }
func (nullDriver) MoveTo(x, y int) error       { return nil }
func (nullDriver) Scroll(dx, dy int) error     { return nil }
func (nullDriver) Tap(string, ...string) error { return nil }
func (nullDriver) ScreenSize() (int, int)      { return 1920, 1080 }

var _ = Describe("Instance guard lifecycle", func() {
	var (
		claimPath string
		pm        domain.ProcessManager
		logger    *zap.Logger
	)

	BeforeEach(func() {
		claimPath = filepath.Join(GinkgoT().TempDir(), "telek.lock")
		pm = infra.NewProcessManager()
		logger = zap.NewNop()
	})

	It("lets the first caller in and keeps the second out", func() {
		first := infra.NewInstanceGuard(claimPath, pm, logger)
		defer first.Release()
		Expect(first.EnsureSingleInstance()).To(Succeed())

		second := infra.NewInstanceGuard(claimPath, pm, logger)
		Expect(second.EnsureSingleInstance()).NotTo(Succeed())
	})

	It("records the live PID in the claim", func() {
		guard := infra.NewInstanceGuard(claimPath, pm, logger)
		defer guard.Release()
		Expect(guard.Acquire()).To(BeTrue())

		data, err := os.ReadFile(claimPath)
		Expect(err).NotTo(HaveOccurred())

		var record domain.ClaimRecord
		Expect(json.Unmarshal(data, &record)).To(Succeed())
		Expect(record.PID).To(Equal(os.Getpid()))
		Expect(pm.IsRunning(record.PID)).To(BeTrue())
	})

	It("sweeps a claim left by a dead process and admits the next caller", func() {
		deadPID := 1 << 22 // beyond the default pid_max on Linux
		data, _ := json.Marshal(domain.ClaimRecord{PID: deadPID})
		Expect(os.WriteFile(claimPath, data, 0600)).To(Succeed())

		guard := infra.NewInstanceGuard(claimPath, pm, logger)
		defer guard.Release()

		held, _ := guard.IsHeldByLiveProcess()
		Expect(held).To(BeFalse())
		Expect(claimPath).NotTo(BeAnExistingFile())
		Expect(guard.EnsureSingleInstance()).To(Succeed())
	})

	It("admits a third caller after the holder releases", func() {
		first := infra.NewInstanceGuard(claimPath, pm, logger)
		Expect(first.EnsureSingleInstance()).To(Succeed())

		second := infra.NewInstanceGuard(claimPath, pm, logger)
		Expect(second.EnsureSingleInstance()).NotTo(Succeed())

		first.Release()

		third := infra.NewInstanceGuard(claimPath, pm, logger)
		defer third.Release()
		Expect(third.EnsureSingleInstance()).To(Succeed())
	})
})

var _ = Describe("Macro registry persistence", func() {
	var storePath string

	BeforeEach(func() {
		storePath = filepath.Join(GinkgoT().TempDir(), "macros.json")
	})

	It("seeds defaults into a fresh store and reloads them", func() {
		store := infra.NewJSONMacroStore(storePath)
		registry, err := macro.NewRegistry(store, nullDriver{}, zap.NewNop())
		Expect(err).NotTo(HaveOccurred())
		Expect(registry.ListAll()).To(HaveLen(7))
		Expect(storePath).To(BeAnExistingFile())

		reloaded, err := macro.NewRegistry(infra.NewJSONMacroStore(storePath), nullDriver{}, zap.NewNop())
		Expect(err).NotTo(HaveOccurred())
		Expect(reloaded.ListAll()).To(Equal(registry.ListAll()))
	})

	It("persists mutations across registry instances", func() {
		store := infra.NewJSONMacroStore(storePath)
		registry, err := macro.NewRegistry(store, nullDriver{}, zap.NewNop())
		Expect(err).NotTo(HaveOccurred())

		Expect(registry.Add(domain.Macro{
			Name:         "Find",
			Keys:         []string{"ctrl+f"},
			DelaySeconds: 0.1,
			Enabled:      true,
		})).To(Succeed())
		registry.SetEnabled(true)
		Expect(registry.Remove("Escape")).To(BeTrue())

		reloaded, err := macro.NewRegistry(infra.NewJSONMacroStore(storePath), nullDriver{}, zap.NewNop())
		Expect(err).NotTo(HaveOccurred())
		Expect(reloaded.IsEnabled()).To(BeTrue())
		Expect(reloaded.Get("Find")).NotTo(BeNil())
		Expect(reloaded.Get("Escape")).To(BeNil())
	})
})
