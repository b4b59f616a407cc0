// Package logger holds the process-wide structured logger shared by the
// inspector engine and the propkit commands.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// L is the global logger. It discards everything until Init enables it.
var L = discard()

const (
	logPrefix     = "propkit-"
	logSuffix     = ".log"
	dateLayout    = "2006-01-02"
	retentionDays = 30
)

// Options configures Init.
type Options struct {
	Enabled bool       // If false, all logging is discarded
	Writer  io.Writer  // Destination. When nil a dated file under LogDir is used
	LogDir  string     // Directory for log files. Default: ~/.propkit/logs
	Level   slog.Level // Minimum level. Zero means Info
	Text    bool       // Text instead of JSON records
}

// Init configures L. Call it from main before anything logs.
func Init(opts Options) error {
	if !opts.Enabled {
		L = discard()
		return nil
	}

	w := opts.Writer
	if w == nil {
		f, err := openLogFile(opts.LogDir, time.Now())
		if err != nil {
			return err
		}
		w = f
	}

	L = New(w, opts.Level, opts.Text)
	return nil
}

// New returns a logger writing to w. It is what Init installs; tests use it
// to capture records.
func New(w io.Writer, level slog.Level, text bool) *slog.Logger {
	if level == 0 {
		level = slog.LevelInfo
	}
	hopts := &slog.HandlerOptions{Level: level}
	if text {
		return slog.New(slog.NewTextHandler(w, hopts))
	}
	return slog.New(slog.NewJSONHandler(w, hopts))
}

// Component returns L tagged with a component attribute.
func Component(name string) *slog.Logger {
	return L.With("component", name)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openLogFile(dir string, now time.Time) (*os.File, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".propkit", "logs")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	// Best effort; a stale file is not worth failing startup over.
	pruneLogs(dir, now.AddDate(0, 0, -retentionDays))

	name := filepath.Join(dir, logPrefix+now.Format(dateLayout)+logSuffix)
	return os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

// pruneLogs removes propkit-YYYY-MM-DD.log files dated before cutoff.
func pruneLogs(dir string, cutoff time.Time) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, logPrefix) || !strings.HasSuffix(name, logSuffix) {
			continue
		}
		day, err := time.Parse(dateLayout, strings.TrimSuffix(strings.TrimPrefix(name, logPrefix), logSuffix))
		if err != nil {
			continue
		}
		if day.Before(cutoff) {
			os.Remove(filepath.Join(dir, name))
		}
	}
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
