// Command batchblast is the CLI entrypoint for the BatchBlast batch runner.
//
// It parses flags, validates configuration and paths, and either runs
// system diagnostics (--check) or the discover/split/BLAST batch pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mingzapingin/BatchBlast/internal/blast"
	"github.com/mingzapingin/BatchBlast/internal/check"
	"github.com/mingzapingin/BatchBlast/internal/config"
	"github.com/mingzapingin/BatchBlast/internal/display"
	"github.com/mingzapingin/BatchBlast/internal/logging"
	"github.com/mingzapingin/BatchBlast/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" (no make), these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap. No logger exists yet, so errors go straight to
	// stderr; once NewLogger succeeds all output is captured in the batch log.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "batchblast: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "batchblast: %v\n", err)
		return 1
	}

	// Resolve and validate paths before the logger is created: the default
	// batch log lives in the output directory.
	if !cfg.CheckOnly {
		inputAbs, err := absPath(cfg.InputDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "batchblast: input not found: %s\n", cfg.InputDir)
			return 1
		}
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "batchblast: cannot create output directory: %s\n", cfg.OutputDir)
			return 1
		}
		outputAbs, err := absPath(cfg.OutputDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "batchblast: cannot resolve output path: %s\n", cfg.OutputDir)
			return 1
		}
		if err := cfg.ValidatePaths(inputAbs, outputAbs); err != nil {
			fmt.Fprintf(os.Stderr, "batchblast: %v\n", err)
			fmt.Fprintf(os.Stderr, "batchblast: choose an output path outside: %s\n", cfg.InputDir)
			return 1
		}
		if cfg.LogFile == "" {
			stamp := time.Now().Format("20060102_150405")
			cfg.LogFile = filepath.Join(cfg.OutputDir, "batch_log_"+stamp+".txt")
		}
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "batchblast: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available; everything goes through log from here on.
	display.PrintBanner()

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	log.Info("=== BatchBlast v%s (%s) ===", version, commit)
	log.Info("In:  %s", cfg.InputDir)
	log.Info("Out: %s", cfg.OutputDir)
	log.Info("")

	// Fail fast if blastn is unavailable; nothing has been submitted yet.
	if !cfg.DryRun {
		if err := check.CheckDeps(&cfg); err != nil {
			log.Error("%v", err)
			return 1
		}
	}

	// Phase 3: Signal handling. Cancel the context on SIGINT/SIGTERM so the
	// scheduler stops between jobs without leaving a partial log line.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing current job…")
		cancel()
	}()

	// Phase 4: Run the batch (discover → split → check → BLAST → convert).
	stats, err := pipeline.Run(ctx, &cfg, log, &blast.Job{Cfg: &cfg})
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	// Individual unit failures are recorded, not fatal: the batch is
	// resumable, so a re-run only redoes what is missing.
	if stats.Failed > 0 {
		log.Warn("%d job(s) failed; re-run the same command to retry them", stats.Failed)
	}
	return 0
}

// absPath returns the absolute, symlink-resolved path for safe comparison
// of input vs output directory hierarchies.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
