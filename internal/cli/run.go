package cli

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/iamruinous/pica-emulator/internal/config"
	"github.com/iamruinous/pica-emulator/internal/control"
	"github.com/iamruinous/pica-emulator/internal/logging"
	"github.com/iamruinous/pica-emulator/internal/observer"
	"github.com/iamruinous/pica-emulator/internal/orchestrator"
	"github.com/iamruinous/pica-emulator/internal/server"
	"github.com/iamruinous/pica-emulator/internal/tui"
	"github.com/iamruinous/pica-emulator/pkg/geometry"
	"github.com/iamruinous/pica-emulator/pkg/uci"
)

var (
	dryRun      bool
	interactive bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the UCI emulator",
	Long: `Start the pica emulator.

Accepts UCI TCP connections on --uci-port, each representing one
virtual UWB device, and emulates ranging between them and any
configured fixed anchors. Events are fanned out to configured
observer sinks and a websocket control plane.

Use --interactive or -i to run with an interactive TUI.`,
	RunE: runEmulator,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate configuration without starting the service")
	runCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "run with interactive TUI")
	runCmd.Flags().Int("uci-port", 0, "UCI TCP listen port (overrides config)")
	runCmd.Flags().Int("http-port", 0, "control/observer HTTP port (overrides config)")
	runCmd.Flags().String("pcapng-dir", "", "directory to write per-device pcapng captures (enables capture)")

	_ = viper.BindPFlag("listen.uci_port", runCmd.Flags().Lookup("uci-port"))
	_ = viper.BindPFlag("listen.http_port", runCmd.Flags().Lookup("http-port"))
	_ = viper.BindPFlag("capture.dir", runCmd.Flags().Lookup("pcapng-dir"))
}

func runEmulator(_ *cobra.Command, _ []string) error {
	logCfg := logging.Config{
		Level:  viper.GetString("logging.level"),
		Format: viper.GetString("logging.format"),
	}

	if interactive {
		logCfg.Format = "text"
		logCfg.Level = "error"
	}

	if err := logging.Initialize(logCfg); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.Sync()

	if cfgFile := viper.ConfigFileUsed(); cfgFile != "" {
		logging.Info("using config file", zap.String("path", cfgFile))
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if viper.GetString("capture.dir") != "" {
		cfg.Capture.Enabled = true
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if dryRun {
		fmt.Println("Configuration is valid!")
		fmt.Printf("  UCI port: %d\n", cfg.Listen.UCIPort)
		fmt.Printf("  HTTP port: %d\n", cfg.Listen.HTTPPort)
		fmt.Printf("  Capture: enabled=%v dir=%s\n", cfg.Capture.Enabled, cfg.Capture.Dir)
		fmt.Printf("  Initial anchors: %d\n", len(cfg.World.InitialAnchors))
		enabledObservers := 0
		for _, o := range cfg.Observers {
			if o.Enabled {
				enabledObservers++
			}
		}
		fmt.Printf("  Observers: %d enabled\n", enabledObservers)
		return nil
	}

	if cfg.Capture.Enabled {
		if err := os.MkdirAll(cfg.Capture.Dir, 0o755); err != nil {
			return fmt.Errorf("pcapng dir %s is not usable: %w", cfg.Capture.Dir, err)
		}
		probe, err := os.CreateTemp(cfg.Capture.Dir, ".pcapng-write-check-*")
		if err != nil {
			return fmt.Errorf("pcapng dir %s is not writable: %w", cfg.Capture.Dir, err)
		}
		probe.Close()
		_ = os.Remove(probe.Name())
	}

	orch := orchestrator.New(logging.Named("orchestrator"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go orch.Run(ctx)

	if err := seedAnchors(orch, cfg.World.InitialAnchors); err != nil {
		return fmt.Errorf("failed to seed initial anchors: %w", err)
	}

	srv := server.New(cfg, orch, logging.Named("server"))
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("failed to start UCI listener: %w", err)
	}

	ctl := control.New(cfg, orch, logging.Named("control"))
	if err := ctl.Start(ctx); err != nil {
		return fmt.Errorf("failed to start control plane: %w", err)
	}

	mgr := observer.NewManager(cfg.Observers, logging.Named("observer"))
	go mgr.Run(ctx, orch)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if interactive {
		go func() {
			<-sigChan
			cancel()
		}()

		if err := tui.Run(orch); err != nil {
			logging.Error("TUI error", zap.Error(err))
		}
	} else {
		logging.Info("pica emulator is running. Press Ctrl+C to stop.",
			zap.Int("uci_port", cfg.Listen.UCIPort), zap.Int("http_port", cfg.Listen.HTTPPort))
		<-sigChan
		logging.Info("received shutdown signal")
	}

	cancel()
	_ = srv.Stop()
	_ = ctl.Stop()
	srv.Wait()
	ctl.Wait()

	return nil
}

func seedAnchors(orch *orchestrator.Orchestrator, anchors []config.AnchorConfig) error {
	for _, a := range anchors {
		mac, err := parseShortMacHex(a.Mac)
		if err != nil {
			return fmt.Errorf("anchor %s: %w", a.Mac, err)
		}
		pose := geometry.NewFromEuler(a.X, a.Y, a.Z, geometry.Euler{Yaw: a.Yaw, Pitch: a.Pitch, Roll: a.Roll})

		reply := make(chan orchestrator.Status, 1)
		orch.Inbox() <- orchestrator.CreateAnchorMsg{Mac: mac, Pose: pose, Reply: reply}
		if st := <-reply; !st.OK {
			return fmt.Errorf("anchor %s: %s", a.Mac, st.Error)
		}
	}
	return nil
}

func parseShortMacHex(s string) (uci.MacAddress, error) {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 2 {
		return uci.MacAddress{}, fmt.Errorf("expected 4 hex digits, got %q", s)
	}
	return uci.NewShortMac(b[0], b[1]), nil
}
