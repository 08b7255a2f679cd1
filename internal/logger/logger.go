// Package logger holds the process-wide structured logger.
package logger

import (
	"io"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// L is the global logger instance. It discards all output until Init is called.
var L = slog.New(slog.NewTextHandler(io.Discard, nil))

const (
	logPrefix     = "nvramctl"
	maxSizeMB     = 1
	maxBackups    = 3
	retentionDays = 30
)

// Options configures the logger initialization.
type Options struct {
	Verbose bool      // debug level on stderr; warnings only otherwise
	LogFile string    // optional rotated JSON log file
	Stderr  io.Writer // defaults to os.Stderr
}

// Init configures logging. Call from main before any log calls. The returned
// function closes the log file, if any.
func Init(opts Options) (func() error, error) {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	level := charmlog.WarnLevel
	if opts.Verbose {
		level = charmlog.DebugLevel
	}
	console := charmlog.NewWithOptions(stderr, charmlog.Options{
		Prefix: logPrefix,
		Level:  level,
	})

	if opts.LogFile == "" {
		L = slog.New(console)
		return func() error { return nil }, nil
	}

	file := &lumberjack.Logger{
		Filename:   opts.LogFile,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     retentionDays,
	}
	L = slog.New(fanout{
		console,
		slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}),
	})
	return file.Close, nil
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }
