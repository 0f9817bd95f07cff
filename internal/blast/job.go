package blast

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mingzapingin/BatchBlast/internal/config"
	"github.com/mingzapingin/BatchBlast/internal/report"
)

// Result is the outcome of one worker invocation.
type Result struct {
	TSVPath      string        // Raw blastn output ("" if never written, may be removed when KeepTSV is off).
	ArtifactPath string        // Final spreadsheet; its presence marks the unit done.
	TSVBytes     int64         // Size of the raw TSV.
	Stderr       string        // Captured blastn stderr, for failure reports.
	Elapsed      time.Duration // Wall-clock time of the blastn call.
	Err          error         // Non-nil means the job failed; the batch continues.
}

// Job runs remote blastn for single-record query files. It implements the
// scheduler's Worker interface.
type Job struct {
	Cfg *config.Config
}

// Run executes blastn for one query, sanity-checks the TSV, and converts it
// to the spreadsheet completion artifact. Any failure is reported through
// Result.Err; the process exit status never aborts the batch.
func (j *Job) Run(ctx context.Context, query string) Result {
	tsv := OutputName(query, j.Cfg.OutputDir, j.Cfg.FilterName, time.Now())
	args := BuildArgs(j.Cfg, query, tsv)

	start := time.Now()
	stderr, err := execute(ctx, args, j.Cfg.Verbose)
	res := Result{TSVPath: tsv, Stderr: stderr, Elapsed: time.Since(start)}

	if err != nil {
		res.Err = fmt.Errorf("blastn: %w", err)
		return res
	}

	// blastn can exit zero and still write nothing (bad query, over-strict
	// filter). Treat an absent or empty TSV as failure.
	fi, err := os.Stat(tsv)
	if err != nil || fi.Size() == 0 {
		res.Err = fmt.Errorf("blastn finished but produced no results (check query and filter)")
		return res
	}
	res.TSVBytes = fi.Size()

	xlsx, err := report.ConvertTSV(tsv)
	if err != nil {
		res.Err = fmt.Errorf("convert %s: %w", tsv, err)
		return res
	}
	res.ArtifactPath = xlsx

	if !j.Cfg.KeepTSV {
		if err := os.Remove(tsv); err == nil {
			res.TSVPath = ""
		}
	}
	return res
}
