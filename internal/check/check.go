// Package check provides system diagnostics (--check mode) and pre-batch
// dependency validation for the blastn executable.
package check

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/mingzapingin/BatchBlast/internal/config"
)

// ErrBlastnNotFound is returned by CheckDeps when blastn is not on PATH.
var ErrBlastnNotFound = errors.New("blastn not found on PATH (install NCBI BLAST+)")

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the interactive --check flow: blastn presence and version,
// configured database/task, and the BLASTDB environment. Informational only;
// returns false when the batch could not run at all.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkBlastn(log)
	log.Info("Database: %s, task: %s", cfg.Database, cfg.Task)
	if cfg.Filter != "" {
		log.Info("Entrez filter: %s", cfg.Filter)
	}

	if db := os.Getenv("BLASTDB"); db != "" {
		log.Info("BLASTDB=%s (used for local taxdb lookups; not required for -remote)", db)
	} else {
		log.Info("BLASTDB unset (fine for -remote searches)")
	}
	return ok
}

// checkBlastn verifies blastn is on PATH and logs its version string.
func checkBlastn(log Logger) bool {
	if _, err := exec.LookPath("blastn"); err != nil {
		log.Error("blastn not found")
		return false
	}
	cmd := exec.Command("blastn", "-version")
	out, err := cmd.Output()
	if err != nil {
		log.Warn("blastn found but -version failed: %v", err)
		return true
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("%s", firstLine)
	return true
}

// CheckDeps is the pre-batch validation: blastn must be on PATH before any
// unit is processed. Returns a sentinel error on failure.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath("blastn"); err != nil {
		return ErrBlastnNotFound
	}
	return nil
}
