package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// SetupLogger builds a slog logger writing to the console and, when logDir is
// non-empty, to a per-ISO-week log file. File open failures degrade to
// console-only logging rather than failing startup.
func SetupLogger(logDir string, level string) *slog.Logger {
	writers := []io.Writer{os.Stdout}

	if logDir != "" {
		if file, err := openWeeklyLogFile(logDir); err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file, logging to console only: %v\n", err)
		} else {
			writers = append(writers, file)
		}
	}

	handler := slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level: parseLevel(level),
	})

	return slog.New(handler)
}

// openWeeklyLogFile opens (appending) the log file for the current ISO week,
// named app-YYYY-Www.log.
func openWeeklyLogFile(logDir string) (*os.File, error) {
	if err := os.MkdirAll(logDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	year, week := time.Now().ISOWeek()
	name := fmt.Sprintf("app-%d-W%02d.log", year, week)
	path := filepath.Join(logDir, name)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return file, nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
