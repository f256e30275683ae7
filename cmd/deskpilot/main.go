package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/deskpilot/deskpilot/internal/logger"
	"github.com/deskpilot/deskpilot/pkg/computer"
	"github.com/deskpilot/deskpilot/pkg/config"
	"github.com/deskpilot/deskpilot/pkg/executor"
)

// Version info, injectable via ldflags.
var (
	Version   = "1.0.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// main only translates run's code into the process exit status. All the
// work, and every deferred teardown, lives in run: os.Exit skips
// deferred functions, and the driver session and process must be
// released on failed and cancelled runs too.
func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("deskpilot", flag.ContinueOnError)
	var (
		scriptPath  = fs.String("script", "", "path to a JSON action script to run")
		mock        = fs.Bool("mock", false, "record actions without touching the desktop")
		logLevel    = fs.String("log-level", "", "log level (debug, info, warn, error)")
		driverPath  = fs.String("driver-path", "", "override the driver executable path")
		driverPort  = fs.Int("driver-port", 0, "override the driver port")
		noDriver    = fs.Bool("no-driver", false, "disable the UI-Automation driver for this run")
		saveConfig  = fs.Bool("save", false, "save the effective configuration")
		showVersion = fs.Bool("version", false, "print version information")
		showHelp    = fs.Bool("help", false, "print usage")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		printVersion()
		return 0
	}
	if *showHelp {
		printHelp(fs)
		return 0
	}

	manager := config.NewManager()
	cfg, err := manager.Load()
	if err != nil {
		logger.Warn("config load failed, using defaults: %v", err)
	}

	// Flags win over file and environment.
	if *driverPath != "" {
		cfg.Driver.Path = *driverPath
	}
	if *driverPort > 0 {
		cfg.Driver.Port = *driverPort
	}
	if *noDriver {
		cfg.Driver.Enabled = false
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	logger.SetLevel(cfg.Logging.Level)
	if cfg.Logging.File != "" {
		if err := logger.Default().SetFile(true, cfg.Logging.File); err != nil {
			logger.Warn("log file unavailable: %v", err)
		}
	}

	if *saveConfig {
		if err := manager.Save(cfg); err != nil {
			logger.Error("save config: %v", err)
			return 1
		}
		logger.Info("configuration saved to %s", manager.ConfigFile())
	}

	if *scriptPath == "" {
		printHelp(fs)
		return 0
	}

	actions, err := executor.LoadScript(*scriptPath)
	if err != nil {
		logger.Error("%v", err)
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var opts []computer.Option
	if *mock {
		opts = append(opts, computer.WithMock())
	}
	comp := computer.New(cfg, opts...)

	if err := comp.Connect(ctx); err != nil {
		logger.Error("connect: %v", err)
		return 1
	}
	// Teardown runs on every exit path, cancellation included.
	defer func() {
		if err := comp.Disconnect(context.Background()); err != nil {
			logger.Warn("disconnect: %v", err)
		}
	}()

	exec := executor.New(comp, cfg)
	report := exec.Run(ctx, actions)

	out, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(out))

	if !report.Completed {
		return 1
	}
	return 0
}

func printVersion() {
	fmt.Printf("deskpilot %s\n", Version)
	fmt.Printf("  build time: %s\n", BuildTime)
	fmt.Printf("  git commit: %s\n", GitCommit)
}

func printHelp(fs *flag.FlagSet) {
	fmt.Println("deskpilot - desktop UI automation")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  deskpilot -script actions.json [flags]")
	fmt.Println()
	fmt.Println("Flags:")
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("The script is a JSON array of actions, e.g.:")
	fmt.Println(`  [{"type":"click","x":100,"y":200},{"type":"type_text","text":"hello"}]`)
}
