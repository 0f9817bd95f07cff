package config

// This file implements CLI flag parsing and help text.
// The optional YAML config file (--config) is loaded before flags are
// registered, so flag values always win over file values.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// ParseFlags parses os.Args into cfg. On --help or --version it prints and
// exits. On error it returns non-nil (unknown flag, bad value, missing
// positional args). version is shown in --version and help output.
func ParseFlags(cfg *Config, version string) error {
	// The config file must apply before flag defaults are captured, so it is
	// located with a cheap pre-scan instead of a second Parse pass.
	if path := configFileArg(os.Args[1:]); path != "" {
		cfg.ConfigFile = path
		if err := LoadFile(path, cfg); err != nil {
			return err
		}
	}

	fs := flag.NewFlagSet("batchblast", flag.ContinueOnError)
	fs.Usage = func() { printUsage(version) }

	var extra extraFlags
	defineBlastFlags(fs, cfg)
	defineDiscoveryFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg, &extra)
	defineDisplayFlags(fs, cfg, &extra)
	defineUtilityFlags(fs, &extra)

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	applyExtraFlags(cfg, &extra)

	if extra.showHelp {
		printUsage(version)
		os.Exit(0)
	}
	if extra.showVersion {
		fmt.Fprintln(os.Stdout, "batchblast v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// extraFlags holds boolean flags that invert a default (e.g. force ->
// SkipDone=false) or trigger exit (showHelp, showVersion). Applied after Parse
// so Config defaults hold unless the user passes the flag.
type extraFlags struct {
	force       bool
	noTSV       bool
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineBlastFlags registers --db, --task, --filter, --filter-name, --max-targets.
func defineBlastFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Var(&databaseValue{&cfg.Database}, "db", "BLAST database: nt | core_nt")
	fs.Var(&taskValue{&cfg.Task}, "task", "BLAST task: blastn | megablast | dc-megablast | blastn-short")
	fs.Var(&taskValue{&cfg.Task}, "t", "Same as --task")
	fs.StringVar(&cfg.Filter, "filter", cfg.Filter, "Entrez filter expression (e.g. 'txid1762[Organism]')")
	fs.StringVar(&cfg.FilterName, "filter-name", cfg.FilterName, "Short label for the filter, embedded in output names")
	fs.StringVar(&cfg.FilterName, "n", cfg.FilterName, "Same as --filter-name")
	fs.IntVar(&cfg.MaxTargetSeqs, "max-targets", cfg.MaxTargetSeqs, "Maximum target sequences per query")
}

// defineDiscoveryFlags registers --include and --line-width.
func defineDiscoveryFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Var(&keywordListValue{&cfg.Include}, "include", "Keyword whitelist on filenames (comma-separated, repeatable)")
	fs.IntVar(&cfg.LineWidth, "line-width", cfg.LineWidth, "Column width for re-wrapped split sequences")
}

// defineBehaviorFlags registers sleep range, force, dry-run, no-tsv.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config, e *extraFlags) {
	fs.IntVar(&cfg.SleepMin, "sleep-min", cfg.SleepMin, "Minimum pause between jobs (seconds)")
	fs.IntVar(&cfg.SleepMax, "sleep-max", cfg.SleepMax, "Maximum pause between jobs (seconds)")
	fs.BoolVar(&e.force, "force", false, "Re-run units even when a completion artifact exists")
	fs.BoolVar(&e.force, "f", false, "Same as --force")
	fs.BoolVar(&e.noTSV, "no-tsv", false, "Delete the raw TSV after spreadsheet conversion")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Preview only; do not invoke blastn")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, e *extraFlags) {
	fs.BoolVar(&e.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&e.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output (tee blastn stderr)")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Batch log path (default: <output_dir>/batch_log_<ts>.txt)")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")
}

// defineUtilityFlags registers --config, --version and --help.
func defineUtilityFlags(fs *flag.FlagSet, e *extraFlags) {
	// --config is consumed by the pre-scan; registered here only so Parse accepts it.
	fs.String("config", "", "YAML config file (flags override file values)")
	fs.BoolVar(&e.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&e.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&e.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&e.showHelp, "h", false, "Same as --help")
}

// applyExtraFlags copies inverted flag values into cfg.
func applyExtraFlags(cfg *Config, e *extraFlags) {
	if e.force {
		cfg.SkipDone = false
	}
	if e.noTSV {
		cfg.KeepTSV = false
	}
	if e.noColor {
		cfg.ColorMode = ColorNever
	} else if e.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets InputDir and OutputDir from the two positional args
// when not in CheckOnly mode.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		return nil
	}
	if len(args) != 2 {
		return fmt.Errorf("need exactly input_dir and output_dir")
	}
	cfg.InputDir = NormalizeDirArg(args[0])
	cfg.OutputDir = NormalizeDirArg(args[1])
	return nil
}

// configFileArg scans raw args for --config/-config and returns its value, or
// "" when absent. Handles both "--config path" and "--config=path".
func configFileArg(args []string) string {
	for i, a := range args {
		name := strings.TrimLeft(a, "-")
		if name == a {
			continue // positional
		}
		if name == "config" {
			if i+1 < len(args) {
				return args[i+1]
			}
			return ""
		}
		if strings.HasPrefix(name, "config=") {
			return strings.TrimPrefix(name, "config=")
		}
	}
	return ""
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(version string) {
	const col1 = 30 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "BatchBlast v" + version + " — resumable batch wrapper for remote BLAST"},
		{"", ""},
		{"  batchblast [OPTIONS] <input_dir> <output_dir>", ""},
		{"", ""},
		{"BLAST", ""},
		{"  --db <nt|core_nt>", "BLAST database (default: core_nt)"},
		{"  -t, --task <name>", "blastn | megablast | dc-megablast | blastn-short (default: megablast)"},
		{"  --filter <expr>", "Entrez filter, e.g. 'txid1762[Organism]'"},
		{"  -n, --filter-name <label>", "Label for the filter, used in output file names"},
		{"  --max-targets <n>", "Maximum target sequences per query (default: 200)"},
		{"", ""},
		{"Discovery & splitting", ""},
		{"  --include <kw[,kw...]>", "Keep only FASTA files whose name contains a keyword"},
		{"  --line-width <n>", "Wrap width for split sequences (default: 70)"},
		{"", ""},
		{"Scheduling & behavior", ""},
		{"  --sleep-min <s>", "Minimum pause between jobs (default: 11)"},
		{"  --sleep-max <s>", "Maximum pause between jobs (default: 15)"},
		{"  -f, --force", "Re-run units even when results already exist"},
		{"  -d, --dry-run", "Preview only; do not invoke blastn"},
		{"  --no-tsv", "Delete the raw TSV after spreadsheet conversion"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  --config <path>", "YAML config file (flags override file values)"},
		{"  -l, --log <path>", "Batch log path (default: <output_dir>/batch_log_<ts>.txt)"},
		{"  -c, --check", "System diagnostics (blastn, BLASTDB)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapters so enum types (Database, Task) and the keyword list can
// be used with flag.Var.

type databaseValue struct{ p *Database }

func (d *databaseValue) String() string {
	if d.p == nil {
		return ""
	}
	return string(*d.p)
}

func (d *databaseValue) Set(s string) error {
	db, err := parseDatabase(s)
	if err != nil {
		return err
	}
	*d.p = db
	return nil
}

type taskValue struct{ p *Task }

func (t *taskValue) String() string {
	if t.p == nil {
		return ""
	}
	return string(*t.p)
}

func (t *taskValue) Set(s string) error {
	task, err := parseTask(s)
	if err != nil {
		return err
	}
	*t.p = task
	return nil
}

// keywordListValue accumulates comma-separated keywords; the flag may repeat.
type keywordListValue struct{ p *[]string }

func (k *keywordListValue) String() string {
	if k.p == nil {
		return ""
	}
	return strings.Join(*k.p, ",")
}

func (k *keywordListValue) Set(s string) error {
	for _, kw := range strings.Split(s, ",") {
		kw = strings.TrimSpace(kw)
		if kw != "" {
			*k.p = append(*k.p, kw)
		}
	}
	return nil
}
