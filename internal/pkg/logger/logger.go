package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Options configures a Logger.
type Options struct {
	Level  string
	JSON   bool
	Output io.Writer
}

// Logger is a leveled, structured logger. Key-value pairs follow the message:
//
//	logger.Info("todo created", "id", id)
type Logger struct {
	*log.Logger
}

func New(opts Options) *Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	formatter := log.TextFormatter
	if opts.JSON {
		formatter = log.JSONFormatter
	}

	return &Logger{
		Logger: log.NewWithOptions(out, log.Options{
			Level:           ParseLevel(opts.Level),
			Formatter:       formatter,
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          "kubertodo",
		}),
	}
}

// ParseLevel maps debug|info|warn|error|fatal (case-insensitive) to a level.
// Anything else is info.
func ParseLevel(s string) log.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// With returns a child logger that always carries the given key-value pairs.
func (l *Logger) With(keyvals ...interface{}) *Logger {
	return &Logger{Logger: l.Logger.With(keyvals...)}
}

var (
	mu            sync.RWMutex
	defaultLogger = New(Options{Level: "info"})
)

// Init replaces the global logger. Call early during startup.
func Init(opts Options) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = New(opts)
}

// Default returns the global logger.
func Default() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// Package-level functions for easy access
func Debug(msg string, keyvals ...interface{}) { Default().Debug(msg, keyvals...) }
func Info(msg string, keyvals ...interface{})  { Default().Info(msg, keyvals...) }
func Warn(msg string, keyvals ...interface{})  { Default().Warn(msg, keyvals...) }
func Error(msg string, keyvals ...interface{}) { Default().Error(msg, keyvals...) }
