// Package logging wraps zap with a bounded ring of recent entries,
// read back through Recent, tagging every line with the subsystem
// ("router", "control", "macro", ...) that produced it.
package logging

import (
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is the severity of a log entry.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Entry is a single recorded log line, kept in the ring that Recent
// reads.
type Entry struct {
	Timestamp time.Time
	Level     Level
	Source    string
	Message   string
}

// Config controls how a Logger is built.
type Config struct {
	Level      Level
	MaxEntries int
	LogPath    string // empty disables the file core
}

// Logger is a thin façade over *zap.SugaredLogger plus a bounded ring
// of recent entries, one instance shared by every subsystem and
// distinguished by the source tag passed to each call.
type Logger struct {
	sugar      *zap.SugaredLogger
	mu         sync.Mutex
	entries    []Entry
	maxEntries int
	logFile    *os.File
}

// New builds a Logger from cfg.
func New(cfg Config) (*Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case LevelInfo:
		level = zapcore.InfoLevel
	case LevelWarn:
		level = zapcore.WarnLevel
	case LevelError:
		level = zapcore.ErrorLevel
	default:
		level = zapcore.DebugLevel
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(os.Stderr), level),
	}

	var logFile *os.File
	if cfg.LogPath != "" {
		f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			logFile = f
			cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(f), zapcore.DebugLevel))
		}
	}

	core := zapcore.NewTee(cores...)
	zl := zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel))

	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = 1000
	}

	return &Logger{
		sugar:      zl.Sugar(),
		entries:    make([]Entry, 0, maxEntries),
		maxEntries: maxEntries,
		logFile:    logFile,
	}, nil
}

func (l *Logger) record(level Level, source, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) >= l.maxEntries {
		l.entries = l.entries[1:]
	}
	l.entries = append(l.entries, Entry{Timestamp: time.Now(), Level: level, Source: source, Message: msg})
}

func (l *Logger) Debug(source, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.sugar.Debugw(msg, "source", source)
	l.record(LevelDebug, source, msg)
}

func (l *Logger) Info(source, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.sugar.Infow(msg, "source", source)
	l.record(LevelInfo, source, msg)
}

func (l *Logger) Warn(source, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.sugar.Warnw(msg, "source", source)
	l.record(LevelWarn, source, msg)
}

func (l *Logger) Error(source, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.sugar.Errorw(msg, "source", source)
	l.record(LevelError, source, msg)
}

// Recent returns the last n recorded entries (fewer if not enough have
// been recorded yet).
func (l *Logger) Recent(n int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n <= 0 || n >= len(l.entries) {
		out := make([]Entry, len(l.entries))
		copy(out, l.entries)
		return out
	}
	out := make([]Entry, n)
	copy(out, l.entries[len(l.entries)-n:])
	return out
}

// Close flushes the underlying zap core and closes the log file, if
// any.
func (l *Logger) Close() error {
	err := l.sugar.Sync()
	if l.logFile != nil {
		l.logFile.Close()
	}
	return err
}
