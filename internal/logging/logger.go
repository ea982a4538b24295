// Package logging attaches a zerolog logger to the context, writing to the
// append-only transfer log file. The log line format is fixed
// ("YYYY-MM-DD HH:MM:SS - LEVEL - message") so operational tooling can tail
// the file across releases.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// DefaultLogFile is the transfer log location relative to the working
	// directory, matching what callers and docs reference.
	DefaultLogFile = "datasink_log.txt"

	timeFormat = "2006-01-02 15:04:05"

	maxLogSizeMB  = 10
	maxLogBackups = 3
	maxLogAgeDays = 30
)

// Config defines logger creation options.
type Config struct {
	// Writer overrides file logging when set (typically for tests).
	Writer io.Writer
	// LogFile is the log file path; DefaultLogFile when empty.
	LogFile string
	Level   zerolog.Level
}

// New creates a context carrying a logger that appends to the transfer log.
// The returned closer owns the underlying file handle; callers open it at
// process start and close it at shutdown.
func New(ctx context.Context, fs afero.Fs, config Config) (context.Context, io.Closer, error) {
	var writer io.Writer
	var closer io.Closer = nopCloser{}

	if config.Writer != nil {
		writer = config.Writer
	} else {
		if fs == nil {
			return nil, nil, errors.New("filesystem required when no writer provided")
		}
		logFile := config.LogFile
		if logFile == "" {
			logFile = DefaultLogFile
		}
		if dir := filepath.Dir(logFile); dir != "." {
			if err := fs.MkdirAll(dir, 0o750); err != nil {
				return nil, nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
			}
		}
		lj := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    maxLogSizeMB,
			MaxBackups: maxLogBackups,
			MaxAge:     maxLogAgeDays,
		}
		writer = lj
		closer = lj
	}

	logger := zerolog.New(plainWriter(writer)).With().
		Timestamp().
		Logger().
		Level(config.Level)

	return logger.WithContext(ctx), closer, nil
}

// Get retrieves the logger from the provided context, or a disabled logger
// if none is attached.
func Get(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// plainWriter renders events as "<timestamp> - <LEVEL> - <message>" lines.
func plainWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    true,
		TimeFormat: timeFormat,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			zerolog.MessageFieldName,
		},
		FormatLevel: func(i any) string {
			return fmt.Sprintf("- %s -", strings.ToUpper(fmt.Sprint(i)))
		},
		FormatMessage: func(i any) string {
			return fmt.Sprint(i)
		},
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
