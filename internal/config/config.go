// Package config holds runtime configuration: defaults, the optional YAML
// config file, CLI flag parsing, and validation. Defaults match the original
// batch wrapper behavior (core_nt, megablast, 11-15 s pause, 70-column wrap).
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// --- Enum types for validated string fields ---

// Database selects the remote BLAST database.
type Database string

const (
	DatabaseNT     Database = "nt"      // Full nucleotide collection.
	DatabaseCoreNT Database = "core_nt" // Curated core subset (default).
)

// Task selects the blastn search task.
type Task string

const (
	TaskBlastn      Task = "blastn"
	TaskMegablast   Task = "megablast" // Default for batch runs.
	TaskDCMegablast Task = "dc-megablast"
	TaskBlastnShort Task = "blastn-short" // For queries <= ~50 bp.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by a YAML config file, and then mutated by [ParseFlags]
// before being passed (by pointer) to packages that need it.
type Config struct {
	// Paths (set from positional args).
	InputDir  string
	OutputDir string

	// BLAST invocation.
	Database      Database // -db argument. Default: "core_nt".
	Task          Task     // -task argument. Default: "megablast".
	Filter        string   // Entrez filter expression (-entrez_query). Optional.
	FilterName    string   // Short label embedded in output file names. Optional.
	MaxTargetSeqs int      // -max_target_seqs. Default: 200.

	// Discovery and splitting.
	Include   []string // Keyword whitelist on filenames (case-insensitive substring). Empty = keep all.
	LineWidth int      // Column width when re-wrapping split sequences. Default: 70.

	// Scheduling.
	SleepMin int // Minimum pause between jobs, seconds. Default: 11.
	SleepMax int // Maximum pause between jobs, seconds (inclusive). Default: 15.

	// Behavior flags.
	DryRun   bool
	SkipDone bool // Default: true. Cleared by --force.
	KeepTSV  bool // Default: true. Cleared by --no-tsv.

	// Display and logging.
	Verbose    bool
	ColorMode  ColorMode // Default: "auto".
	LogFile    string    // Batch log path; default is <output_dir>/batch_log_<ts>.txt.
	ConfigFile string    // Optional YAML config file (--config).
	CheckOnly  bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults matching the original
// batch wrapper. Used as the base before the config file and CLI flags apply.
func DefaultConfig() Config {
	return Config{
		Database:      DatabaseCoreNT,
		Task:          TaskMegablast,
		MaxTargetSeqs: 200,
		LineWidth:     70,
		SleepMin:      11,
		SleepMax:      15,
		SkipDone:      true,
		KeepTSV:       true,
		ColorMode:     ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks that enum fields hold valid values and numeric settings are
// sane. When not in CheckOnly mode, it also requires that both input and
// output directory paths are non-empty.
func (c *Config) Validate() error {
	switch c.Database {
	case DatabaseNT, DatabaseCoreNT:
		// valid
	default:
		return errors.New("invalid database (use 'nt' or 'core_nt')")
	}

	switch c.Task {
	case TaskBlastn, TaskMegablast, TaskDCMegablast, TaskBlastnShort:
		// valid
	default:
		return errors.New("invalid task (use 'blastn', 'megablast', 'dc-megablast' or 'blastn-short')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.SleepMin < 0 || c.SleepMax < c.SleepMin {
		return fmt.Errorf("invalid sleep range [%d,%d] (need 0 <= min <= max)", c.SleepMin, c.SleepMax)
	}
	if c.LineWidth <= 0 {
		return fmt.Errorf("invalid line width %d (must be positive)", c.LineWidth)
	}
	if c.MaxTargetSeqs <= 0 {
		return fmt.Errorf("invalid max target seqs %d (must be positive)", c.MaxTargetSeqs)
	}
	if c.FilterName != "" && strings.ContainsAny(c.FilterName, `/\`) {
		return fmt.Errorf("invalid filter name %q (embedded in file names, no path separators)", c.FilterName)
	}

	if c.CheckOnly {
		return nil
	}
	if c.InputDir == "" || c.OutputDir == "" {
		return errors.New("need exactly input_dir and output_dir")
	}
	return nil
}

// ValidatePaths ensures the resolved output directory is not inside (or equal
// to) the resolved input directory. This prevents discovery from picking up
// the split-unit files the scheduler itself writes under the output tree.
// Both arguments must be absolute, symlink-resolved paths.
func (c *Config) ValidatePaths(inputAbs, outputAbs string) error {
	sep := string(filepath.Separator)
	if outputAbs == inputAbs || strings.HasPrefix(outputAbs+sep, inputAbs+sep) {
		return errors.New("output directory must not be inside input directory")
	}
	return nil
}

// parseDatabase maps a user string to a Database value.
func parseDatabase(s string) (Database, error) {
	switch strings.ToLower(s) {
	case "nt":
		return DatabaseNT, nil
	case "core_nt":
		return DatabaseCoreNT, nil
	default:
		return "", fmt.Errorf("invalid database %q (use 'nt' or 'core_nt')", s)
	}
}

// parseTask maps a user string to a Task value.
func parseTask(s string) (Task, error) {
	switch strings.ToLower(s) {
	case "blastn":
		return TaskBlastn, nil
	case "megablast":
		return TaskMegablast, nil
	case "dc-megablast":
		return TaskDCMegablast, nil
	case "blastn-short":
		return TaskBlastnShort, nil
	default:
		return "", fmt.Errorf("invalid task %q (use 'blastn', 'megablast', 'dc-megablast' or 'blastn-short')", s)
	}
}
