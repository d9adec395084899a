package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tandem-run/tandem/internal/config"
	"github.com/tandem-run/tandem/internal/emulator"
	"github.com/tandem-run/tandem/internal/extension"
	"github.com/tandem-run/tandem/internal/hook"
	"github.com/tandem-run/tandem/internal/ledger"
	"github.com/tandem-run/tandem/internal/logging"
	"github.com/tandem-run/tandem/internal/monitor"
	"github.com/tandem-run/tandem/internal/orchestrator"
	"github.com/tandem-run/tandem/internal/proc"
	"github.com/tandem-run/tandem/internal/profile"
)

// app bundles the wired collaborators a run command needs: configuration,
// the profile store, the console wrapper, the hook bus with all extensions
// registered, and the orchestrator/monitor pair built on top of them.
type app struct {
	cfg     *config.Config
	logger  *logging.Logger
	store   *profile.Store
	console *emulator.Console
	bus     *hook.Bus
	orch    *orchestrator.Orchestrator
	mon     *monitor.Monitor
	ledger  *ledger.Ledger
	notify  *ledger.NotifyList

	// killByPath fronts the process collaborator for down-all; tests
	// replace it.
	killByPath func(path string, grace time.Duration) (int, error)
}

// newApp loads configuration and wires every collaborator. The built-in
// completion recorder registers first, then the extension directory in
// lexical order, so extension files always see recorder decisions.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := logging.NopLogger()
	if cfg.Logging.Enabled {
		rotation := logging.DefaultRotationConfig()
		rotation.MaxSizeMB = cfg.Logging.MaxSizeMB
		rotation.MaxBackups = cfg.Logging.MaxBackups
		logger, err = logging.NewLoggerWithRotation(cfg.Paths.ResolveLogDir(), cfg.Logging.Level, rotation)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
	}

	out := cmd.OutOrStdout()

	led := openLedger(cfg)
	notify := openNotifyList(cfg)

	bus := hook.NewBus(logger, cfg.Hooks.CallTimeout())
	bus.Register(ledger.NewRecorder(led, notify, out))

	exts, err := extension.NewDirLoader(cfg.Paths.ResolveExtensionsDir(), logger).Load()
	if err != nil {
		_ = logger.Close()
		return nil, err
	}
	for _, ext := range exts {
		bus.Register(ext)
	}

	console := emulator.New(cfg.Emulator.ConsoleCommand, cfg.Emulator.CommandTimeout(), logger)

	return &app{
		cfg:     cfg,
		logger:  logger,
		store:   profile.NewStore(cfg.Paths.ResolveProfilesDir()),
		console: console,
		bus:     bus,
		orch: orchestrator.New(bus, console, orchestrator.Options{
			DefaultWaittime: cfg.Run.DefaultWaittime(),
			KillGrace:       cfg.Run.KillGracePeriod(),
			Out:             out,
			Logger:          logger,
		}),
		mon: monitor.New(console, monitor.Options{
			CheckEvery:  cfg.Monitor.CheckEverySeconds,
			MaxFailures: cfg.Monitor.MaxFailures,
			Out:         out,
			Logger:      logger,
		}),
		ledger:     led,
		notify:     notify,
		killByPath: proc.KillByPath,
	}, nil
}

// Close flushes and closes the diagnostic log.
func (a *app) Close() {
	if a.logger != nil {
		_ = a.logger.Close()
	}
}

// openLedger and openNotifyList root the two per-day stores under the
// state directory; ledger commands and newApp must agree on these paths.
func openLedger(cfg *config.Config) *ledger.Ledger {
	return ledger.NewLedger(filepath.Join(cfg.Paths.ResolveStateDir(), "completion"))
}

func openNotifyList(cfg *config.Config) *ledger.NotifyList {
	return ledger.NewNotifyList(filepath.Join(cfg.Paths.ResolveStateDir(), "notify"))
}
