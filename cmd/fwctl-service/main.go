// Command fwctl-service exposes the mixer and panel state of a firewire
// audio unit as control elements.
//
// Usage:
//
//	fwctl-service [flags]
//
// Flags:
//
//	-config string      Configuration file path
//	-model string       Unit model (klive, itwin, k8, desktopk6, profire2626, ...)
//	-vendor-id uint     Vendor id used to detect the model
//	-model-id uint      Model id used to detect the model
//	-node string        Firewire character device, e.g. /dev/fw1
//	-hwdep string       ALSA hwdep device delivering notifications
//	-simulate           Run against an in-process unit
//	-interactive        Start the element shell
//	-log-level string   Log level: debug, info, warn, error (default "info")
//	-trace string       Protocol trace file
//	-snapshot string    Segment snapshot file (simulation only)
//
// Examples:
//
//	# Serve a Konnekt Live on /dev/fw1
//	fwctl-service -model klive -node /dev/fw1 -hwdep /dev/snd/hwC1D0
//
//	# Explore a simulated ScratchAmp
//	fwctl-service -model scratchamp -simulate -interactive
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fwaudio/fwctl-go/cmd/fwctl-service/interactive"
	"github.com/fwaudio/fwctl-go/pkg/config"
	"github.com/fwaudio/fwctl-go/pkg/ctl"
	fwlog "github.com/fwaudio/fwctl-go/pkg/log"
	"github.com/fwaudio/fwctl-go/pkg/persistence"
	"github.com/fwaudio/fwctl-go/pkg/service"
	"github.com/fwaudio/fwctl-go/pkg/transport"
	"github.com/fwaudio/fwctl-go/pkg/unit"
	"github.com/fwaudio/fwctl-go/pkg/version"
)

// Flag values. They override the configuration file when set.
var (
	configFile      string
	interactiveMode bool
	flagModel       string
	flagVendorID    uint
	flagModelID     uint
	flagNode        string
	flagHwdep       string
	flagSimulate    bool
	flagLogLevel    string
	flagTrace       string
	flagSnapshot    string
)

func init() {
	flag.StringVar(&configFile, "config", "", "Configuration file path")
	flag.BoolVar(&interactiveMode, "interactive", false, "Start the element shell")
	flag.StringVar(&flagModel, "model", "", "Unit model (klive, itwin, k8, desktopk6, profire2626, profire610, lacie, griffin, scratchamp)")
	flag.UintVar(&flagVendorID, "vendor-id", 0, "Vendor id used to detect the model")
	flag.UintVar(&flagModelID, "model-id", 0, "Model id used to detect the model")
	flag.StringVar(&flagNode, "node", "", "Firewire character device")
	flag.StringVar(&flagHwdep, "hwdep", "", "ALSA hwdep device delivering notifications")
	flag.BoolVar(&flagSimulate, "simulate", false, "Run against an in-process unit")
	flag.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.StringVar(&flagTrace, "trace", "", "Protocol trace file")
	flag.StringVar(&flagSnapshot, "snapshot", "", "Segment snapshot file (simulation only)")
}

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fwctl-service: %v\n", err)
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		slog.Error("fwctl-service failed", "error", err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return cfg, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "model":
			cfg.Model = flagModel
		case "vendor-id":
			cfg.VendorID = uint32(flagVendorID)
		case "model-id":
			cfg.ModelID = uint32(flagModelID)
		case "node":
			cfg.Node = flagNode
		case "hwdep":
			cfg.Hwdep = flagHwdep
		case "simulate":
			cfg.Simulate = flagSimulate
		case "log-level":
			cfg.LogLevel = flagLogLevel
		case "trace":
			cfg.Trace = flagTrace
		case "snapshot":
			cfg.Snapshot = flagSnapshot
		}
	})
	return cfg, cfg.Validate()
}

// unitHandle is everything main holds on to for one unit.
type unitHandle struct {
	kind     unit.Kind
	model    ctl.Model
	notifier transport.Notifier
	closers  []io.Closer

	// Simulation only.
	sim *unit.Simulation
}

func (h *unitHandle) Close() {
	for i := len(h.closers) - 1; i >= 0; i-- {
		if err := h.closers[i].Close(); err != nil {
			slog.Warn("close failed", "error", err)
		}
	}
}

func run(cfg config.Config) error {
	level, _ := config.ParseLevel(cfg.LogLevel)
	var out io.Writer = os.Stderr

	var shell *interactive.Shell
	if interactiveMode {
		var err error
		if shell, err = interactive.New(); err != nil {
			return err
		}
		defer shell.Close()
		out = shell.Stderr()
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	kind, err := cfg.Kind()
	if err != nil {
		return err
	}
	logger.Info("fwctl-service starting",
		"version", version.Daemon, "layout", version.Current, "model", kind, "simulate", cfg.Simulate)

	tracer, session, closeTrace, err := openTrace(cfg, logger, level)
	if err != nil {
		return err
	}
	defer closeTrace()

	h, err := openUnit(cfg, kind, tracer, session)
	if err != nil {
		return err
	}
	defer h.Close()

	svcConfig := service.DefaultConfig()
	svcConfig.MeasureInterval = cfg.MeasureInterval
	svcConfig.Name = kind.String()
	svcConfig.Logger = logger
	svcConfig.Tracer = tracer
	svcConfig.Session = session

	svc, err := service.New(h.model, ctl.NewMemoryCard(), h.notifier, svcConfig)
	if err != nil {
		return err
	}
	svc.OnEvent(func(e service.Event) {
		switch e.Type {
		case service.EventValueChanged:
			logger.Debug("element changed", "elem", e.Elem, "source", e.Source)
		default:
			logger.Warn("unit event", "type", e.Type, "error", e.Error)
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := svc.Start(ctx); err != nil {
		return err
	}
	logger.Info("service started", "state", svc.State(), "elements", len(svc.Elements()))

	if shell != nil {
		shell.Attach(svc, func() error { return saveSnapshot(cfg, h) })
		go shell.Run(ctx, cancel)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("received signal", "signal", sig)
	case <-ctx.Done():
	case <-svc.Done():
	}

	logger.Info("shutting down")
	if err := svc.Stop(); err != nil && !errors.Is(err, service.ErrNotStarted) {
		logger.Warn("stop failed", "error", err)
	}
	if err := saveSnapshot(cfg, h); err != nil {
		logger.Warn("snapshot not saved", "error", err)
	}
	return nil
}

// openTrace opens the protocol trace file. At debug level segment and
// control trace events are also written to the log.
func openTrace(cfg config.Config, logger *slog.Logger, level slog.Level) (fwlog.Logger, string, func(), error) {
	var loggers []fwlog.Logger
	closeFn := func() {}

	if cfg.Trace != "" {
		fl, err := fwlog.NewFileLogger(cfg.Trace, fwlog.WithMaxBytes(cfg.TraceMaxBytes))
		if err != nil {
			return nil, "", nil, fmt.Errorf("open trace: %w", err)
		}
		loggers = append(loggers, fl)
		closeFn = func() {
			if err := fl.Err(); err != nil {
				logger.Warn("trace incomplete", "path", cfg.Trace, "events", fl.Events(), "error", err)
			}
			_ = fl.Close()
		}
	}
	if level <= slog.LevelDebug {
		// Meter polling would flood the console with transactions.
		loggers = append(loggers, fwlog.OnlyLayers(fwlog.NewSlogAdapter(logger), fwlog.LayerSegment, fwlog.LayerControl))
	}
	if len(loggers) == 0 {
		return nil, "", closeFn, nil
	}
	return fwlog.NewMultiLogger(loggers...), fwlog.NewSessionID(), closeFn, nil
}

func openUnit(cfg config.Config, kind unit.Kind, tracer fwlog.Logger, session string) (*unitHandle, error) {
	h := &unitHandle{kind: kind}

	var deps unit.Deps
	if cfg.Simulate {
		h.sim = unit.NewSimulation(kind, cfg.Base)
		deps = h.sim.Deps(cfg.Base)
		h.notifier = h.sim.Notifier()
	} else {
		node, err := transport.OpenNode(cfg.Node)
		if err != nil {
			return nil, err
		}
		h.closers = append(h.closers, node)
		deps = unit.Deps{Transport: node, Base: cfg.Base}

		if cfg.Hwdep != "" {
			hw, err := transport.OpenHwdep(cfg.Hwdep)
			if err != nil {
				h.Close()
				return nil, err
			}
			h.closers = append(h.closers, hw)
			h.notifier = hw
		}
	}

	deps.Timeout = cfg.SegmentTimeout
	deps.FCPTimeout = cfg.FCPTimeout
	if tracer != nil {
		deps.Tracer = tracer
		deps.Session = session
		if deps.Transport != nil {
			deps.Transport = transport.WithTrace(deps.Transport, tracer, session, kind.String())
		}
	}

	m, err := unit.New(kind, deps)
	if err != nil {
		h.Close()
		return nil, err
	}
	h.model = m

	if err := restoreSnapshot(cfg, h); err != nil {
		h.Close()
		return nil, err
	}
	return h, nil
}

// restoreSnapshot seeds a simulated register unit from the snapshot file.
func restoreSnapshot(cfg config.Config, h *unitHandle) error {
	reg, ok := h.model.(unit.Registrar)
	if cfg.Snapshot == "" || h.sim == nil || h.sim.Memory == nil || !ok {
		return nil
	}

	snap, err := persistence.NewSnapshotStore(cfg.Snapshot).Load()
	if err != nil || snap == nil {
		return err
	}
	if err := snap.Restore(reg.Registry(), cfg.Base, h.sim.Memory); err != nil {
		return fmt.Errorf("restore %s: %w", cfg.Snapshot, err)
	}
	slog.Info("snapshot restored", "path", cfg.Snapshot, "saved", snap.SavedAt)
	return nil
}

func saveSnapshot(cfg config.Config, h *unitHandle) error {
	reg, ok := h.model.(unit.Registrar)
	if cfg.Snapshot == "" || h.sim == nil || !ok {
		return nil
	}
	return persistence.NewSnapshotStore(cfg.Snapshot).Save(persistence.Capture(reg.Registry(), cfg.Base))
}
