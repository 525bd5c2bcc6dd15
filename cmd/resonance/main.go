package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/resonance/engine/internal/app"
	"github.com/resonance/engine/internal/config"
	"github.com/resonance/engine/internal/layers"
)

const version = "0.2.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(cfg *config.Config) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Printf("\033[36;1m  │\033[0m %-41s \033[36;1m│\033[0m\n", "          Resonance engine  v"+version)
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mapplication:\033[0m %s \033[90m(%s)\033[0m\n", cfg.Application.Name, cfg.Window.Backend)
	if cfg.Application.Editor {
		fmt.Printf("  \033[1mmode:\033[0m editor\n")
	}
	fmt.Println()
}

func printStat(label string, value string) {
	dots := max(42-len(label)-len(value), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dots), value)
}

// ── Main ───────────────────────────────────────────────────────────

func run() error {
	profileMode := flag.String("profile", "", "write a cpu or mem profile to the working directory")
	editor := flag.Bool("editor", false, "start in editor mode")
	flag.Parse()

	// 1. Load config
	cfgPath := "config/engine.toml"
	if p := os.Getenv("RESONANCE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *editor {
		cfg.Application.Editor = true
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", *profileMode)
	}

	printBanner(cfg)

	// 3. Assemble layers and run
	ls := layers.Default(cfg.Application.Editor)
	printStat("layers", fmt.Sprint(len(ls)))
	printStat("start scene", cfg.Application.StartScene)
	if cfg.Logging.File != "" {
		printStat("log file", cfg.Logging.File)
	}

	a := app.New(app.Options{Config: cfg, Layers: ls, Log: log})
	if err := a.Run(); err != nil {
		return err
	}
	log.Info("shutdown complete", zap.Uint64("frames", a.Timing().FrameCount()))
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		if cfg.File != "" {
			zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		}
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
	}

	return zapCfg.Build()
}
