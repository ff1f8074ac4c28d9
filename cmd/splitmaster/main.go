// Command splitmaster is the entrypoint for the splitmaster CLI. It parses
// flags, validates config, and either runs system check (--check), a JSON
// task file (--tasks), or a single size split (--split).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/splitmaster/internal/check"
	"github.com/backmassage/splitmaster/internal/config"
	"github.com/backmassage/splitmaster/internal/display"
	"github.com/backmassage/splitmaster/internal/logging"
	"github.com/backmassage/splitmaster/internal/pipeline"
	"github.com/backmassage/splitmaster/internal/tasks"
)

func main() {
	// 1. Load config from defaults, environment, and CLI flags.
	cfg := config.DefaultConfig()
	if err := config.FromEnvironment(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "splitmaster: %v\n", err)
		os.Exit(1)
	}
	if err := config.ParseFlags(&cfg, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "splitmaster: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "splitmaster: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "splitmaster: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	display.PrintBanner()

	// 2. If user asked for system check, run it and exit successfully.
	if cfg.CheckOnly {
		check.RunCheck(&cfg, log)
		os.Exit(0)
	}

	// 3. Fail fast when the tools are missing.
	if err := check.CheckDeps(&cfg); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.Error("Cannot create output directory: %s", cfg.OutputDir)
		os.Exit(1)
	}

	log.Info("=== Splitmaster v%s ===", config.Version())

	// SIGINT/SIGTERM stop the batch between child invocations.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := pipeline.NewRunner(&cfg, log)

	var stats pipeline.RunStats
	if cfg.TaskFile != "" {
		f, err := tasks.Load(cfg.TaskFile)
		if err != nil {
			log.Error("%v", err)
			os.Exit(1)
		}
		stats = runner.RunFile(ctx, f)
	} else {
		stats = runner.RunSingleSplit(ctx)
	}

	if !stats.AllSucceeded() {
		os.Exit(1)
	}
}
