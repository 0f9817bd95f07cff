package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/mingzapingin/BatchBlast/internal/blast"
	"github.com/mingzapingin/BatchBlast/internal/config"
	"github.com/mingzapingin/BatchBlast/internal/display"
	"github.com/mingzapingin/BatchBlast/internal/fasta"
	"github.com/mingzapingin/BatchBlast/internal/logging"
)

// Queries at or below this length get a hint to use blastn-short.
const shortQueryThreshold = 50

// splitDirName is the folder under the output directory that holds generated
// single-record unit files. Units persist across runs; the scheduler never
// cleans them up.
const splitDirName = "split_seqs"

// Worker runs the external search for one single-record query file. The
// scheduler only sees this narrow interface, so tests substitute a fake
// without invoking any real process.
type Worker interface {
	Run(ctx context.Context, query string) blast.Result
}

// napFunc pauses between jobs; swapped for a recording stub in tests.
var napFunc = func(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// Run is the top-level batch entry point. It discovers input files, expands
// them into single-record units, skips units whose completion artifact
// already exists, and drives the worker over the rest sequentially with a
// randomized pause between jobs.
//
// A unit failure never aborts the run. The returned error is fatal only:
// zero discovered inputs, or an IO error while splitting.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, w Worker) (RunStats, error) {
	var stats RunStats

	files, err := Discover(cfg.InputDir, cfg.Include)
	if err != nil {
		return stats, fmt.Errorf("discover %s: %w", cfg.InputDir, err)
	}
	if len(files) == 0 {
		return stats, errors.New("no matching FASTA files found")
	}
	log.Info("Found %d FASTA files", len(files))

	// Split everything up front so running counts are exact from the first
	// unit. Splitting is idempotent: a re-run regenerates identical files.
	splitDir := filepath.Join(cfg.OutputDir, splitDirName)
	var units []string
	for _, f := range files {
		u, err := fasta.Split(f, splitDir, cfg.LineWidth)
		if err != nil {
			return stats, fmt.Errorf("split %s: %w", f, err)
		}
		if len(u) > 1 {
			log.Info("Split %s into %d sequences", filepath.Base(f), len(u))
		}
		units = append(units, u...)
	}

	stats.Total = len(units)
	log.Info("Total sequences to BLAST: %d", stats.Total)
	logBatchHeader(cfg, log)

	start := time.Now()
	for i, q := range units {
		stats.Current = i + 1

		if ctx.Err() != nil {
			log.Warn("Interrupted")
			break
		}

		ran := processUnit(ctx, cfg, log, w, q, &stats)

		// Polite back-off toward the remote service: pause after every real
		// invocation (success or failure), never after AlreadyDone, and not
		// after the last unit.
		if ran && i < len(units)-1 && ctx.Err() == nil {
			nap := napDuration(cfg.SleepMin, cfg.SleepMax)
			log.Info("Sleeping %ds ...", int(nap.Seconds()))
			napFunc(ctx, nap)
		}
	}

	logSummary(log, &stats)
	log.Info("All jobs finished in %s", display.FormatDuration(time.Since(start)))
	if log.FilePath() != "" {
		log.Info("Log saved to %s", log.FilePath())
	}
	return stats, nil
}

// processUnit handles one unit: completion check, short-query hint, worker
// invocation, outcome recording. Returns true when the worker was invoked
// (i.e. the remote service was hit), so the caller knows to pause.
func processUnit(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	w Worker,
	query string,
	stats *RunStats,
) bool {
	name := filepath.Base(query)

	if cfg.SkipDone && IsDone(query, cfg.OutputDir) {
		stats.AlreadyDone++
		log.Info("(%d/%d) %s (already done)", stats.Current, stats.Total, name)
		return false
	}

	if cfg.Task != config.TaskBlastnShort {
		if n, err := fasta.FirstRecordLength(query, shortQueryThreshold); err == nil && n > 0 && n <= shortQueryThreshold {
			log.Warn("(%d/%d) %s is only %d bp; NCBI recommends -task blastn-short for queries <= %d bp",
				stats.Current, stats.Total, name, n, shortQueryThreshold)
		}
	}

	log.Info("(%d/%d) BLAST %s", stats.Current, stats.Total, name)

	if cfg.DryRun {
		log.Success("(%d/%d) [DRY] would run blastn for %s", stats.Current, stats.Total, name)
		stats.Completed++
		return false
	}

	res := w.Run(ctx, query)
	if res.Err != nil {
		stats.Failed++
		log.Error("(%d/%d) %s failed: %v", stats.Current, stats.Total, name, res.Err)
		logStderr(log, res.Stderr)
		return true
	}

	stats.Completed++
	log.Success("(%d/%d) %s done in %s -> %s (%s)",
		stats.Current, stats.Total, name,
		display.FormatDuration(res.Elapsed),
		filepath.Base(res.ArtifactPath),
		display.FormatBytes(res.TSVBytes))
	return true
}

// napDuration draws a pause uniformly at random from the inclusive [min,max]
// second range.
func napDuration(minSec, maxSec int) time.Duration {
	if maxSec <= minSec {
		return time.Duration(minSec) * time.Second
	}
	return time.Duration(minSec+rand.Intn(maxSec-minSec+1)) * time.Second
}

// logStderr replays the tail of the worker's stderr so failures can be
// diagnosed from the batch log alone.
func logStderr(log *logging.Logger, stderr string) {
	if stderr == "" {
		return
	}
	log.Error("Last blastn output:")
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	start := 0
	if len(lines) > 20 {
		start = len(lines) - 20
	}
	for _, l := range lines[start:] {
		log.Error("  %s", l)
	}
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger) {
	log.Info("Database: %s, task: %s, max targets: %d", cfg.Database, cfg.Task, cfg.MaxTargetSeqs)
	if cfg.Filter != "" {
		label := cfg.FilterName
		if label == "" {
			label = "unnamed"
		}
		log.Info("Entrez filter: %s (%s)", cfg.Filter, label)
	}
	log.Info("Pause between jobs: %d-%d s", cfg.SleepMin, cfg.SleepMax)
	if !cfg.SkipDone {
		log.Warn("Force mode: existing results will be redone")
	}
	if cfg.DryRun {
		log.Warn("DRY RUN — no jobs will be submitted")
	}
	log.Info("")
}

func logSummary(log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	log.Info("Done: %d completed, %d already done, %d failed",
		stats.Completed, stats.AlreadyDone, stats.Failed)
}
