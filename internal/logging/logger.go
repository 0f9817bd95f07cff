// Package logging provides the leveled batch logger: styled lines on the
// console, plain timestamped lines appended to the durable batch log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mingzapingin/BatchBlast/internal/config"
)

// Level tag styles. Populated by NewLogger; zero styles render plain text.
var (
	styleInfo    lipgloss.Style
	styleSuccess lipgloss.Style
	styleWarn    lipgloss.Style
	styleError   lipgloss.Style
	styleDebug   lipgloss.Style
)

// Logger provides leveled, optionally styled logging with an optional
// append-only file sink. The file always receives plain text so the batch log
// stays grep-able.
type Logger struct {
	mu       sync.Mutex
	color    bool
	file     *os.File
	filePath string
}

// NewLogger resolves the color mode, configures the lipgloss renderer, and
// opens cfg.LogFile for appending when set. Call Close() when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	l := &Logger{color: resolveColor(cfg.ColorMode)}

	// Pin the color profile so output is deterministic: --color works through
	// pipes and --no-color suppresses styling even on a TTY.
	if l.color {
		lipgloss.SetColorProfile(termenv.ANSI256)
	} else {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	styleInfo = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	styleSuccess = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	styleWarn = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	styleError = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	styleDebug = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))

	if cfg.LogFile != "" {
		dir := filepath.Dir(cfg.LogFile)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		l.filePath = cfg.LogFile
	}
	return l, nil
}

// FilePath returns the durable log path, or "" when no file sink is open.
func (l *Logger) FilePath() string { return l.filePath }

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func (l *Logger) line(level string, style lipgloss.Style, text string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	l.mu.Lock()
	defer l.mu.Unlock()
	plain := ts + " [" + level + "] " + text + "\n"
	out := io.Writer(os.Stdout)
	if level == "ERROR" {
		out = os.Stderr
	}
	if l.color {
		_, _ = io.WriteString(out, ts+" "+style.Render("["+level+"]")+" "+text+"\n")
	} else {
		_, _ = io.WriteString(out, plain)
	}
	if l.file != nil {
		_, _ = io.WriteString(l.file, plain)
	}
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.line("INFO", styleInfo, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.line("SUCCESS", styleSuccess, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line("WARN", styleWarn, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red), also to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line("ERROR", styleError, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan) only when verbose; no-op otherwise.
func (l *Logger) Debug(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	l.line("DEBUG", styleDebug, fmt.Sprintf(format, args...))
}

// resolveColor determines whether styled output should be enabled based on
// the configured mode, TTY detection, and the NO_COLOR env var
// (https://no-color.org).
func resolveColor(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default: // ColorAuto
		return isTerminal(os.Stdout) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// isTerminal reports whether f is attached to a TTY (character device).
func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
