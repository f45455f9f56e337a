// Package main is the CLI entry point for telek.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/telek/telek/internal/config"
	"github.com/telek/telek/internal/domain"
	"github.com/telek/telek/internal/infra"
	"github.com/telek/telek/internal/macro"
	"github.com/telek/telek/internal/scheduler"
	"github.com/telek/telek/internal/sensor"
)

var (
	// Version info (set via ldflags)
	Version   = "0.3.0"
	Commit    = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "telek",
	Short: "Keeps a workstation from appearing idle",
	Long: `telek watches system idle time and, once it crosses a threshold,
injects small synthetic input events (cursor motion, scrolling, keyboard
macros) so the machine never appears idle. Only one instance can run per
host.`,
	Version: Version,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the idle monitor in the foreground",
	Long: `Starts the activity scheduler and blocks until interrupted.
Refuses to start when another telek process already holds the instance
claim.`,
	RunE: runRun,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether telek is running and the effective settings",
	RunE:  runStatus,
}

var nudgeCmd = &cobra.Command{
	Use:   "nudge",
	Short: "Perform one activity sequence immediately and exit",
	Long: `Runs a single mouse-move / scroll / macro sequence without the
daemon, bypassing the idle check. Useful for verifying that input injection
works on this host.`,
	RunE: runNudge,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run:   runVersion,
}

var (
	verbose    bool
	foreground bool
	jsonOutput bool
)

func init() {
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log per-tick status lines")
	runCmd.Flags().BoolVarP(&foreground, "foreground", "f", false, "Log to stderr only, skipping the log file")
	versionCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(nudgeCmd)
	rootCmd.AddCommand(macrosCmd)
	rootCmd.AddCommand(versionCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := createLogger()
	defer func() { _ = logger.Sync() }()

	pm := infra.NewProcessManager()
	guard := infra.NewInstanceGuard(infra.DefaultClaimPath(), pm, logger)
	if err := guard.EnsureSingleInstance(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "Only one instance of telek can run at a time.")
		os.Exit(1)
	}
	defer guard.Release()

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}
	if !cfg.Snapshot().Enabled {
		logger.Warn("monitoring is disabled in config")
		fmt.Fprintf(os.Stderr, "telek is disabled; set enabled: true in %s to allow monitoring\n", cfg.Path())
		return nil
	}

	driver := infra.NewInputDriver(logger)
	store := infra.NewJSONMacroStore(infra.DefaultMacroPath())
	registry, err := macro.NewRegistry(store, driver, logger)
	if err != nil {
		return err
	}

	sens := sensor.New(logger)
	sched := scheduler.New(cfg, sens, registry, driver, logger)

	go logEvents(sched.Events(), logger)

	set := cfg.Snapshot()
	logger.Info("telek starting",
		zap.Int("pid", pm.GetCurrentPID()),
		zap.Duration("idle_threshold", set.IdleThreshold),
		zap.Duration("move_interval", set.MoveInterval),
		zap.Duration("check_interval", set.CheckInterval),
		zap.String("movement_pattern", string(set.MovementPattern)))

	sched.Start()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("received shutdown signal")
	sched.Stop()
	return nil
}

// logEvents drains the scheduler event channel into the logger. Per-tick
// status lines are noisy, so they stay at debug unless --verbose.
func logEvents(events <-chan domain.Event, logger *zap.Logger) {
	for ev := range events {
		switch ev.Kind {
		case domain.EventActivity:
			logger.Info("activity", zap.String("detail", ev.Text))
		default:
			if verbose {
				logger.Info("status", zap.String("detail", ev.Text))
			} else {
				logger.Debug("status", zap.String("detail", ev.Text))
			}
		}
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	logger := zap.NewNop()
	pm := infra.NewProcessManager()
	guard := infra.NewInstanceGuard(infra.DefaultClaimPath(), pm, logger)

	fmt.Println("\n=== telek Status ===")

	if held, pid := guard.IsHeldByLiveProcess(); held {
		fmt.Printf("Status: RUNNING (PID %d)\n", pid)
	} else {
		fmt.Println("Status: NOT RUNNING")
	}

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}
	set := cfg.Snapshot()

	fmt.Printf("\nConfig: %s\n", cfg.Path())
	fmt.Printf("  enabled:         %v\n", set.Enabled)
	fmt.Printf("  idle_threshold:  %s\n", set.IdleThreshold)
	fmt.Printf("  move_interval:   %s\n", set.MoveInterval)
	fmt.Printf("  check_interval:  %s\n", set.CheckInterval)
	fmt.Printf("  movement:        %s (distance %dpx, enabled %v)\n",
		set.MovementPattern, set.MoveDistance, set.MouseMoveEnabled)
	fmt.Printf("  scroll:          %s (%d clicks, enabled %v)\n",
		set.ScrollPattern, set.ScrollAmount, set.ScrollEnabled)

	fmt.Println("====================")
	return nil
}

func runNudge(cmd *cobra.Command, args []string) error {
	logger, _ := zap.NewDevelopment()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}

	driver := infra.NewInputDriver(logger)
	store := infra.NewJSONMacroStore(infra.DefaultMacroPath())
	registry, err := macro.NewRegistry(store, driver, logger)
	if err != nil {
		return err
	}

	sens := sensor.New(logger)
	sched := scheduler.New(cfg, sens, registry, driver, logger)

	fmt.Println("Performing one activity sequence...")
	sched.Start()
	sched.ForceActivity()
	sched.Stop()

	// The event channel is buffered, so everything the sequence emitted is
	// still there to drain after Stop.
	for {
		select {
		case ev := <-sched.Events():
			if ev.Kind == domain.EventActivity {
				fmt.Printf("  %s\n", ev.Text)
			}
		default:
			return nil
		}
	}
}

// createLogger builds the daemon logger, writing next to the claim file.
func createLogger() *zap.Logger {
	stateDir := filepath.Dir(infra.DefaultClaimPath())
	_ = os.MkdirAll(stateDir, 0755)

	logCfg := zap.NewProductionConfig()
	logCfg.OutputPaths = []string{filepath.Join(stateDir, "telek.log"), "stderr"}
	if foreground {
		logCfg.OutputPaths = []string{"stderr"}
	}
	logCfg.EncoderConfig.TimeKey = "time"
	logCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		logCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	logger, err := logCfg.Build()
	if err != nil {
		// Fallback to stderr if file logging fails
		logger, _ = zap.NewProduction()
	}
	return logger
}

func runVersion(cmd *cobra.Command, args []string) {
	if jsonOutput {
		fmt.Printf(`{"version":"%s","commit":"%s","build_time":"%s"}`+"\n",
			Version, Commit, BuildTime)
	} else {
		fmt.Printf("telek %s (commit: %s, built: %s)\n",
			Version, Commit, BuildTime)
	}
}

// keysFlag parses the comma-separated --keys value.
func keysFlag(raw string) []string {
	parts := strings.Split(raw, ",")
	var keys []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			keys = append(keys, p)
		}
	}
	return keys
}
